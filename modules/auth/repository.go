package auth

import (
	"context"
	"errors"

	domain "github.com/example/product-manager/domain/user"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository reads credential records using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// FindByUserName finds a user by username.
func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).First(&user, "user_name = ?", userName)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
