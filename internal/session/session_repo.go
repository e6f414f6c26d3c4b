package session

import (
	"errors"

	"github.com/TomWrigley-7/touchline/internal/planner"
	"gorm.io/gorm"
)

// SessionRepository defines the interface for session and assignment data
// operations. The assignment primitives are exactly what the planner
// engine's write plans need: creation, deletion, batch position rewrite,
// slot rewrite, duration write and block repointing.
type SessionRepository interface {
	CreateSession(session *Session) error
	GetSessionByID(id uint) (*Session, error)
	GetSessionsByCoachID(coachID uint, page, limit int) ([]Session, int64, error)
	UpdateSession(session *Session) error
	DeleteSession(id uint) error

	FetchAssignments(sessionID uint) ([]planner.Assignment, error)
	CreateAssignment(sessionID, blockID uint, position, slotIndex int, duration *int) (planner.Assignment, error)
	DeleteAssignment(assignmentID uint) error
	WritePositions(writes []planner.PositionWrite) error
	WriteSlotIndex(assignmentID uint, slotIndex int) error
	WriteDuration(assignmentIDs []uint, minutes int) error
	RepointAssignmentBlock(assignmentID, newBlockID uint) error

	WithTransaction(txFunc func(SessionRepository) error) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// --- Session operations ---

func (r *sessionRepository) CreateSession(session *Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) GetSessionByID(id uint) (*Session, error) {
	var s Session
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) GetSessionsByCoachID(coachID uint, page, limit int) ([]Session, int64, error) {
	var sessions []Session
	var total int64

	query := r.db.Model(&Session{}).Where("coach_id = ?", coachID)
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) UpdateSession(session *Session) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) DeleteSession(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Session{}, id).Error
	})
}

// --- Assignment primitives ---

func (r *sessionRepository) FetchAssignments(sessionID uint) ([]planner.Assignment, error) {
	var rows []Assignment
	err := r.db.Preload("Block").Preload("Block.Outcomes").
		Where("session_id = ?", sessionID).
		Order("position asc, slot_index asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]planner.Assignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, rows[i].ToPlanner())
	}
	return assignments, nil
}

func (r *sessionRepository) CreateAssignment(sessionID, blockID uint, position, slotIndex int, duration *int) (planner.Assignment, error) {
	row := Assignment{
		SessionID: sessionID,
		BlockID:   blockID,
		Position:  position,
		SlotIndex: slotIndex,
		Duration:  duration,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return planner.Assignment{}, err
	}

	// Re-read with the block resolved so the in-memory list can render
	// the new practice without another fetch.
	if err := r.db.Preload("Block").Preload("Block.Outcomes").First(&row, row.ID).Error; err != nil {
		return planner.Assignment{}, err
	}
	return row.ToPlanner(), nil
}

func (r *sessionRepository) DeleteAssignment(assignmentID uint) error {
	result := r.db.Delete(&Assignment{}, assignmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WritePositions applies a batch position rewrite, one UPDATE per new
// position, all inside a single transaction. Partial application is never
// left behind.
func (r *sessionRepository) WritePositions(writes []planner.PositionWrite) error {
	if len(writes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			err := tx.Model(&Assignment{}).
				Where("id IN ?", w.AssignmentIDs).
				Update("position", w.Position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) WriteSlotIndex(assignmentID uint, slotIndex int) error {
	return r.db.Model(&Assignment{}).Where("id = ?", assignmentID).Update("slot_index", slotIndex).Error
}

func (r *sessionRepository) WriteDuration(assignmentIDs []uint, minutes int) error {
	if len(assignmentIDs) == 0 {
		return nil
	}
	return r.db.Model(&Assignment{}).Where("id IN ?", assignmentIDs).Update("duration", minutes).Error
}

func (r *sessionRepository) RepointAssignmentBlock(assignmentID, newBlockID uint) error {
	result := r.db.Model(&Assignment{}).Where("id = ?", assignmentID).Update("block_id", newBlockID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepository) WithTransaction(txFunc func(SessionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&sessionRepository{db: tx})
	})
}
