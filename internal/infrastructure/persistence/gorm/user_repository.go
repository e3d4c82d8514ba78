// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tasteai/v2/internal/domain/user"
	"github.com/tasteai/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// ErrUserNotFound indicates the requested user does not exist
var ErrUserNotFound = errors.New("user not found")

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := userToModel(u)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint failed") ||
			strings.Contains(result.Error.Error(), "duplicate key") {
			return errors.New("user with this email already exists")
		}
		return result.Error
	}

	return nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := userToModel(u)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// FindByID finds a user by ID. A missing user yields (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return modelToUser(&model), nil
}

// FindByEmail finds a user by email address. A missing user yields (nil, nil).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return modelToUser(&model), nil
}

// ExistsByEmail checks whether a user with the given email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

func modelToUser(m *UserModel) *user.User {
	return user.Reconstruct(
		m.ID,
		m.Email,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
		m.LastLoginAt,
	)
}
