// block/model.go
package block

import (
	"errors"
	"fmt"

	"github.com/TomWrigley-7/touchline/internal/models"
	"gorm.io/gorm"
)

const (
	VisibilityPrivate = "private"
	VisibilityClub    = "club"
	VisibilityPublic  = "public"

	OrderTypeFirst  = "first"
	OrderTypeSecond = "second"

	// A block advertises at most 3 primary and 3 secondary outcomes.
	MaxOutcomesPerOrderType = 3
)

// BlockDefinition is a reusable drill in the catalog. Session assignments
// reference it; they never own it. Edits by non-creators go through the
// copy-on-write path in the session package.
type BlockDefinition struct {
	gorm.Model
	Title          string             `json:"title" gorm:"not null"`
	Description    string             `json:"description"`
	CoachingPoints models.StringSlice `json:"coaching_points,omitempty" gorm:"type:jsonb"`
	Duration       *int               `json:"duration,omitempty"` // minutes; nil = unspecified
	BallRollingPct *int               `json:"ball_rolling_pct,omitempty"`
	Diagram        models.JSONMap     `json:"diagram,omitempty" gorm:"type:jsonb"` // opaque: image URL or vector-diagram blob
	CreatorID      uint               `json:"creator_id" gorm:"index;not null"`
	ClubID         *uint              `json:"club_id,omitempty" gorm:"index"`
	Visibility     string             `json:"visibility" gorm:"index;default:'private'"`
	Outcomes       []BlockOutcome     `json:"outcomes" gorm:"constraint:OnDelete:CASCADE"`
}

// BlockOutcome tags a block with a development attribute it trains.
// Relevance is derived from the order type, never supplied by clients.
type BlockOutcome struct {
	gorm.Model
	BlockDefinitionID uint    `json:"-" gorm:"index;not null"`
	AttributeKey      string  `json:"attribute_key" gorm:"not null"`
	OrderType         string  `json:"order_type" gorm:"not null"` // first | second
	Relevance         float64 `json:"relevance" gorm:"not null"`
}

// RelevanceFor returns the fixed relevance weight for an outcome order type.
func RelevanceFor(orderType string) (float64, error) {
	switch orderType {
	case OrderTypeFirst:
		return 1.0, nil
	case OrderTypeSecond:
		return 0.5, nil
	default:
		return 0, fmt.Errorf("unknown outcome order type %q", orderType)
	}
}

// ValidateOutcomes checks the per-order-type caps and order types.
func ValidateOutcomes(outcomes []BlockOutcome) error {
	counts := map[string]int{}
	for _, o := range outcomes {
		if _, err := RelevanceFor(o.OrderType); err != nil {
			return err
		}
		if o.AttributeKey == "" {
			return errors.New("outcome attribute_key is required")
		}
		counts[o.OrderType]++
	}
	if counts[OrderTypeFirst] > MaxOutcomesPerOrderType {
		return fmt.Errorf("at most %d first-order outcomes allowed", MaxOutcomesPerOrderType)
	}
	if counts[OrderTypeSecond] > MaxOutcomesPerOrderType {
		return fmt.Errorf("at most %d second-order outcomes allowed", MaxOutcomesPerOrderType)
	}
	return nil
}

// ValidVisibility reports whether v is a recognised visibility level.
func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityClub || v == VisibilityPublic
}

// VisibleTo reports whether the block can be read by the given coach.
func (b *BlockDefinition) VisibleTo(coachID uint, clubID *uint) bool {
	if b.CreatorID == coachID {
		return true
	}
	switch b.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityClub:
		return b.ClubID != nil && clubID != nil && *b.ClubID == *clubID
	default:
		return false
	}
}

// Patch is a partial update to a block definition. Nil fields are left
// untouched; a non-nil Outcomes replaces the outcome list wholesale.
type Patch struct {
	Title          *string             `json:"title,omitempty"`
	Description    *string             `json:"description,omitempty"`
	CoachingPoints *models.StringSlice `json:"coaching_points,omitempty"`
	Duration       *int                `json:"duration,omitempty"`
	BallRollingPct *int                `json:"ball_rolling_pct,omitempty"`
	Diagram        *models.JSONMap     `json:"diagram,omitempty"`
	Outcomes       *[]OutcomeInput     `json:"outcomes,omitempty"`
}

// OutcomeInput is the client-facing outcome shape; relevance is derived.
type OutcomeInput struct {
	AttributeKey string `json:"attribute_key" binding:"required"`
	OrderType    string `json:"order_type" binding:"required,oneof=first second"`
}

// BuildOutcomes converts client outcome inputs into model rows with the
// derived relevance.
func BuildOutcomes(inputs []OutcomeInput) ([]BlockOutcome, error) {
	outcomes := make([]BlockOutcome, 0, len(inputs))
	for _, in := range inputs {
		relevance, err := RelevanceFor(in.OrderType)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, BlockOutcome{
			AttributeKey: in.AttributeKey,
			OrderType:    in.OrderType,
			Relevance:    relevance,
		})
	}
	if err := ValidateOutcomes(outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Apply overlays the patch onto the block in place.
func (p Patch) Apply(b *BlockDefinition) error {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.CoachingPoints != nil {
		b.CoachingPoints = *p.CoachingPoints
	}
	if p.Duration != nil {
		b.Duration = p.Duration
	}
	if p.BallRollingPct != nil {
		b.BallRollingPct = p.BallRollingPct
	}
	if p.Diagram != nil {
		b.Diagram = *p.Diagram
	}
	if p.Outcomes != nil {
		outcomes, err := BuildOutcomes(*p.Outcomes)
		if err != nil {
			return err
		}
		b.Outcomes = outcomes
	}
	return nil
}
