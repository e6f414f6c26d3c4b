package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team and roster data operations
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamsByCoachID(coachID uint, page, limit int) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error

	// Player operations
	AddPlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetPlayersByTeamID(teamID uint, page, limit int) ([]Player, int64, error)
	UpdatePlayer(player *Player) error
	RemovePlayer(id uint) error

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByCoachID(coachID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).Where("coach_id = ?", coachID)
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

// DeleteTeam removes the team and its roster together.
func (r *teamRepository) DeleteTeam(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Team{}, id).Error
	})
}

// --- Player Operations ---

func (r *teamRepository) AddPlayer(player *Player) error {
	return r.db.Create(player).Error
}

func (r *teamRepository) GetPlayerByID(id uint) (*Player, error) {
	var player Player
	if err := r.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *teamRepository) GetPlayersByTeamID(teamID uint, page, limit int) ([]Player, int64, error) {
	var players []Player
	var total int64

	query := r.db.Model(&Player{}).Where("team_id = ?", teamID)
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("shirt_number asc, name asc").Find(&players).Error; err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (r *teamRepository) UpdatePlayer(player *Player) error {
	return r.db.Save(player).Error
}

func (r *teamRepository) RemovePlayer(id uint) error {
	result := r.db.Delete(&Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
