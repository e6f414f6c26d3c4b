package attribute

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttributeRepository interface {
	CreateAttribute(attribute *Attribute) error
	GetAttributeByID(id uint) (*Attribute, error)
	GetAllAttributes(page, pageSize int, searchTerm, category string) ([]Attribute, int64, error)
	UpdateAttribute(attribute *Attribute) error
	DeleteAttribute(id uint) error
	FindAttributeByKey(key string) (*Attribute, error)

	// PlayerTarget methods
	SetPlayerTarget(target *PlayerTarget) error
	GetPlayerTargets(playerID uint) ([]PlayerTarget, error)
	RemovePlayerTarget(playerID uint, attributeKey string) error
	PlayerOwnedBy(playerID, coachID uint) (bool, error)
}

type attributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository creates a new instance of AttributeRepository.
func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

// --- Attribute Methods ---

func (r *attributeRepository) CreateAttribute(attribute *Attribute) error {
	return r.db.Create(attribute).Error
}

func (r *attributeRepository) GetAttributeByID(id uint) (*Attribute, error) {
	var attribute Attribute
	err := r.db.First(&attribute, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

func (r *attributeRepository) GetAllAttributes(page, pageSize int, searchTerm, category string) ([]Attribute, int64, error) {
	var attributes []Attribute
	var total int64

	query := r.db.Model(&Attribute{})

	if searchTerm != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+searchTerm+"%", "%"+searchTerm+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("category ASC, name ASC").Offset(offset).Limit(pageSize).Find(&attributes).Error; err != nil {
		return nil, 0, err
	}
	return attributes, total, nil
}

func (r *attributeRepository) UpdateAttribute(attribute *Attribute) error {
	return r.db.Save(attribute).Error
}

func (r *attributeRepository) DeleteAttribute(id uint) error {
	return r.db.Delete(&Attribute{}, id).Error
}

func (r *attributeRepository) FindAttributeByKey(key string) (*Attribute, error) {
	var attribute Attribute
	err := r.db.Where("key = ?", key).First(&attribute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// --- PlayerTarget Methods ---

// SetPlayerTarget upserts on (player_id, attribute_key) so re-targeting an
// attribute just refreshes its priority.
func (r *attributeRepository) SetPlayerTarget(target *PlayerTarget) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "attribute_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "updated_at"}),
	}).Create(target).Error
}

func (r *attributeRepository) GetPlayerTargets(playerID uint) ([]PlayerTarget, error) {
	var targets []PlayerTarget
	err := r.db.Where("player_id = ?", playerID).Order("priority ASC").Find(&targets).Error
	return targets, err
}

func (r *attributeRepository) RemovePlayerTarget(playerID uint, attributeKey string) error {
	result := r.db.Where("player_id = ? AND attribute_key = ?", playerID, attributeKey).Delete(&PlayerTarget{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PlayerOwnedBy reports whether the player sits on a team coached by the
// given coach.
func (r *attributeRepository) PlayerOwnedBy(playerID, coachID uint) (bool, error) {
	var count int64
	err := r.db.Table("players").
		Joins("JOIN teams ON teams.id = players.team_id").
		Where("players.id = ? AND teams.coach_id = ? AND players.deleted_at IS NULL", playerID, coachID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
