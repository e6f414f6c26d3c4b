// attribute/model.go
package attribute

import (
	"gorm.io/gorm"
)

const (
	CategoryTechnical = "technical"
	CategoryTactical  = "tactical"
	CategoryPhysical  = "physical"
	CategoryMental    = "mental"
)

// Attribute is a development attribute blocks can train, e.g. passing,
// scanning, stamina. Block outcomes reference attributes by key.
type Attribute struct {
	gorm.Model
	Key         string `json:"key" gorm:"unique;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"index;not null"` // technical | tactical | physical | mental
}

// PlayerTarget marks an attribute as a development focus for one player.
// One target per (player, attribute); re-setting updates the priority.
type PlayerTarget struct {
	gorm.Model
	PlayerID     uint   `json:"player_id" gorm:"uniqueIndex:idx_player_attribute;not null"`
	AttributeKey string `json:"attribute_key" gorm:"uniqueIndex:idx_player_attribute;not null"`
	Priority     int    `json:"priority" gorm:"default:1"`
}

// ValidCategory reports whether c is a recognised attribute category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTechnical, CategoryTactical, CategoryPhysical, CategoryMental:
		return true
	}
	return false
}
