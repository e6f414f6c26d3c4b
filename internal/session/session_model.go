// session/model.go
package session

import (
	"time"

	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/planner"
	"gorm.io/gorm"
)

// Session is one planned training session.
type Session struct {
	gorm.Model
	Title   string     `json:"title" gorm:"not null"`
	CoachID uint       `json:"coach_id" gorm:"index;not null"`
	TeamID  *uint      `json:"team_id,omitempty" gorm:"index"`
	Date    *time.Time `json:"date,omitempty"`
	Notes   string     `json:"notes"`
}

// Assignment is the persisted join record binding a catalog block to a
// session at a (position, slot) coordinate. The position/slot invariants
// are enforced by the planner engine, not by database constraints: batch
// position rewrites move several rows through each other, which a unique
// index would reject mid-transaction.
type Assignment struct {
	gorm.Model
	SessionID uint `json:"session_id" gorm:"index:idx_assignments_session_position;not null"`
	BlockID   uint `json:"block_id" gorm:"index;not null"`
	Position  int  `json:"position" gorm:"index:idx_assignments_session_position;not null"`
	SlotIndex int  `json:"slot_index" gorm:"not null"`
	// Duration is the assignment-local override in minutes.
	Duration *int                  `json:"duration,omitempty"`
	Block    block.BlockDefinition `json:"block" gorm:"foreignKey:BlockID"`
}

// ToPlanner converts the persisted row into the engine's flat record.
func (a *Assignment) ToPlanner() planner.Assignment {
	b := a.Block
	return planner.Assignment{
		ID:        a.ID,
		SessionID: a.SessionID,
		BlockID:   a.BlockID,
		Position:  a.Position,
		SlotIndex: a.SlotIndex,
		Duration:  a.Duration,
		Block:     &b,
	}
}

// --- request/response DTOs ---

type CreateSessionRequest struct {
	Title  string     `json:"title" binding:"required,min=2,max=150"`
	TeamID *uint      `json:"team_id"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes" binding:"max=2000"`
}

type UpdateSessionRequest struct {
	Title  *string    `json:"title" binding:"omitempty,min=2,max=150"`
	TeamID *uint      `json:"team_id"`
	Date   *time.Time `json:"date"`
	Notes  *string    `json:"notes" binding:"omitempty,max=2000"`
}

type AssignBlockRequest struct {
	BlockID uint `json:"block_id" binding:"required"`
}

type ReorderRequest struct {
	FromIndex *int `json:"from_index" binding:"required"`
	ToIndex   *int `json:"to_index" binding:"required"`
}

type SetDurationRequest struct {
	Minutes int `json:"minutes" binding:"required,gte=1,lte=180"`
}

type PracticeView struct {
	AssignmentID uint                   `json:"assignment_id"`
	BlockID      uint                   `json:"block_id"`
	SlotIndex    int                    `json:"slot_index"`
	Duration     *int                   `json:"duration,omitempty"`
	Block        *block.BlockDefinition `json:"block,omitempty"`
}

type GroupView struct {
	Position  int            `json:"position"`
	Duration  *int           `json:"duration,omitempty"` // group effective duration
	Practices []PracticeView `json:"practices"`
}

type SessionView struct {
	Session       *Session    `json:"session"`
	Groups        []GroupView `json:"groups"`
	TotalDuration int         `json:"total_duration"`
}

type EditBlockResponse struct {
	Block  *block.BlockDefinition `json:"block"`
	Copied bool                   `json:"copied"`
}

// BuildGroupViews renders derived groups for the API.
func BuildGroupViews(groups []planner.Group) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		view := GroupView{
			Position: g.Position,
			Duration: g.Practices[0].EffectiveDuration(),
		}
		for _, p := range g.Practices {
			view.Practices = append(view.Practices, PracticeView{
				AssignmentID: p.ID,
				BlockID:      p.BlockID,
				SlotIndex:    p.SlotIndex,
				Duration:     p.Duration,
				Block:        p.Block,
			})
		}
		views = append(views, view)
	}
	return views
}
