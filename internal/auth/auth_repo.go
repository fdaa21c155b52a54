package auth

import (
	"errors"

	"github.com/crickonnect/crickonnect-api/internal/user"
	"gorm.io/gorm"
)

// AuthRepository defines data operations needed by the auth workflow.
type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)

	SaveRefreshToken(t *user.RefreshToken) error
	GetRefreshToken(tokenStr string) (*user.RefreshToken, error)
	DeleteRefreshToken(tokenStr string) error
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) SaveRefreshToken(t *user.RefreshToken) error {
	return r.db.Create(t).Error
}

func (r *authRepository) GetRefreshToken(tokenStr string) (*user.RefreshToken, error) {
	var t user.RefreshToken
	if err := r.db.Where("token = ?", tokenStr).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *authRepository) DeleteRefreshToken(tokenStr string) error {
	return r.db.Where("token = ?", tokenStr).Delete(&user.RefreshToken{}).Error
}
