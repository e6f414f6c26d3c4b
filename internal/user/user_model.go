package user

import (
	"time"

	"gorm.io/gorm"
)

// User is a coach account. Clubs with several coaches share blocks through
// the club_id on the block catalog; every user still authenticates
// individually.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `gorm:"unique" json:"username"`
	Email    string `gorm:"unique" json:"email"`
	Password string `json:"-"`
	ClubID   *uint  `gorm:"index" json:"club_id,omitempty"`
	Roles    []Role `gorm:"many2many:user_roles" json:"roles"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}

type UserRole struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

// RefreshToken is an opaque server-side refresh token record.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
