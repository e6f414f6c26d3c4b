// team/model.go
package team

import (
	"gorm.io/gorm"
)

// Team is a squad a coach plans sessions for.
type Team struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	AgeGroup string `json:"age_group"` // e.g. U12, U15, senior
	Level    string `json:"level"`     // e.g. grassroots, academy, first team
	Notes    string `json:"notes"`
	CoachID  uint   `json:"coach_id" gorm:"index;not null"`
	ClubID   *uint  `json:"club_id,omitempty" gorm:"index"`
}

// Player is a roster entry on a team.
type Player struct {
	gorm.Model
	TeamID           uint   `json:"team_id" gorm:"index;not null"`
	Name             string `json:"name" gorm:"not null"`
	Position         string `json:"position"`
	ShirtNumber      *int   `json:"shirt_number,omitempty"`
	DevelopmentNotes string `json:"development_notes"`
}
