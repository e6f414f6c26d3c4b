package user

import (
	"errors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for coach-account data operations.
type UserRepository interface {
	CreateUser(user *User) error
	GetUserByID(id uint) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	UpdateUser(user *User) error
	GetUserRoles(userID uint) ([]string, error)
	AssignRole(userID uint, roleName string) error

	CreateRefreshToken(token *RefreshToken) error
	GetRefreshToken(token string) (*RefreshToken, error)
	RevokeRefreshToken(token string) error
	RevokeAllRefreshTokens(userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByUsername(username string) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateUser(user *User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) GetUserRoles(userID uint) ([]string, error) {
	var roles []string
	err := r.db.Table("roles").
		Select("roles.name").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Scan(&roles).Error
	return roles, err
}

func (r *userRepository) AssignRole(userID uint, roleName string) error {
	var role Role
	if err := r.db.Where("name = ?", roleName).FirstOrCreate(&role, Role{Name: roleName}).Error; err != nil {
		return err
	}
	return r.db.Create(&UserRole{UserID: userID, RoleID: role.ID}).Error
}

func (r *userRepository) CreateRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *userRepository) GetRefreshToken(token string) (*RefreshToken, error) {
	var rt RefreshToken
	if err := r.db.Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *userRepository) RevokeRefreshToken(token string) error {
	return r.db.Model(&RefreshToken{}).Where("token = ?", token).Update("revoked", true).Error
}

func (r *userRepository) RevokeAllRefreshTokens(userID uint) error {
	return r.db.Model(&RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error
}
