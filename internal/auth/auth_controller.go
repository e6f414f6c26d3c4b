package auth

import (
	"net/http"
	"time"

	"github.com/TomWrigley-7/touchline/config"
	"github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/TomWrigley-7/touchline/pkg/responses"
	"github.com/TomWrigley-7/touchline/pkg/token"
	"github.com/TomWrigley-7/touchline/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthController handles registration, login and token lifecycle.
type AuthController struct {
	repo      user.UserRepository
	appConfig *config.Config
}

// NewAuthController creates a new auth controller.
func NewAuthController(repo user.UserRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

func (ac *AuthController) issueTokens(u *user.User) (*AuthResponse, error) {
	role := ""
	if len(u.Roles) > 0 {
		role = u.Roles[0].Name
	}

	accessToken, err := token.GenerateJWT(u.ID, role, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, err
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().AddDate(0, 0, ac.appConfig.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.CreateRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         FilterUserRecord(u),
	}, nil
}

// Register godoc
// @Summary Register a new coach account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if existing, _ := ac.repo.GetUserByEmail(req.Email); existing != nil {
		responses.SendError(c, http.StatusConflict, "Email is already registered")
		return
	}
	if existing, _ := ac.repo.GetUserByUsername(req.Username); existing != nil {
		responses.SendError(c, http.StatusConflict, "Username is already taken")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := &user.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		ClubID:   req.ClubID,
	}
	if err := ac.repo.CreateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return
	}
	if err := ac.repo.AssignRole(u.ID, "coach"); err != nil {
		responses.InternalServerError(c, "Failed to assign default role")
		return
	}

	// Re-read so the response carries the assigned role.
	u, err = ac.repo.GetUserByID(u.ID)
	if err != nil || u == nil {
		responses.InternalServerError(c, "Failed to load created account")
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Account created", resp)
}

// Login godoc
// @Summary Log in with email or username
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login data"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.LoginIdentifier)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up account")
		return
	}
	if u == nil {
		u, err = ac.repo.GetUserByUsername(req.LoginIdentifier)
		if err != nil {
			responses.InternalServerError(c, "Failed to look up account")
			return
		}
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged in", resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up refresh token")
		return
	}
	if rt == nil || rt.Revoked || rt.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	u, err := ac.repo.GetUserByID(rt.UserID)
	if err != nil || u == nil {
		responses.Unauthorized(c, "Account no longer exists")
		return
	}

	// Rotate: the old token is single-use.
	if err := ac.repo.RevokeRefreshToken(rt.Token); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Token refreshed", resp)
}

// Logout godoc
// @Summary Invalidate refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LogoutRequest true "Logout options"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.RevokeAllRefreshTokens(userID); err != nil {
			responses.InternalServerError(c, "Failed to revoke sessions")
			return
		}
	} else if req.RefreshToken != "" {
		if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
			responses.InternalServerError(c, "Failed to revoke token")
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Password change data"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil || u == nil {
		responses.Unauthorized(c, "Account not found")
		return
	}
	if !utils.CheckPassword(u.Password, req.OldPassword) {
		responses.Unauthorized(c, "Old password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}
	u.Password = hashed
	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update password")
		return
	}

	// Changing the password invalidates every open session.
	if err := ac.repo.RevokeAllRefreshTokens(userID); err != nil {
		responses.InternalServerError(c, "Failed to revoke sessions")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Password changed", nil)
}
