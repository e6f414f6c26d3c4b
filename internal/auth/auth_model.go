package auth

import (
	"time"

	"github.com/TomWrigley-7/touchline/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Sam Carter"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"sam_carter"`
	Email    string `json:"email" binding:"required,email" example:"sam@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	ClubID   *uint  `json:"club_id,omitempty"`
}

type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"sam@example.com"` // email or username
	Password        string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`           // optional: specific token to invalidate
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"` // if true, revoke every token of the user
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ClubID    *uint     `json:"club_id,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	var roles []string
	for _, role := range u.Roles {
		roles = append(roles, role.Name)
	}

	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		ClubID:    u.ClubID,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
