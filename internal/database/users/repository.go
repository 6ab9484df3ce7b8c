// Package users provides database operations for the credential store.
//
// Usernames are case-insensitive: every write and lookup goes through Fold,
// so "Alice" and "alice" address the same row.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByUsername(ctx, "Alice")
package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
)

var ErrUserNotFound = errors.New("user not found")

// Fold returns the canonical stored form of a username.
func Fold(username string) string {
	return cases.Fold().String(username)
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser stores a user under the folded username with an already computed hash.
func (r *Repository) CreateUser(ctx context.Context, username, hash string) (*entities.User, error) {
	user := &entities.User{
		Username: Fold(username),
		Hash:     hash,
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ?", Fold(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether the folded username is already registered.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("username = ?", Fold(username)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}
