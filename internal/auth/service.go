package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/validate"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("Invalid username and/or password!")
)

// UserStore defines the credential store operations the service needs.
type UserStore interface {
	validate.UsernameLookup
	CreateUser(ctx context.Context, username, hash string) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
}

// Service handles registration and credential verification.
// It never touches the session; callers decide when to log a user in.
type Service struct {
	users  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register validates the form and stores a new user with a bcrypt hash.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*entities.User, error) {
	if err := validate.Registration(ctx, s.users, username, password, confirm); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		// A concurrent registration may have claimed the name after validation.
		if exists, lookupErr := s.users.UsernameExists(ctx, username); lookupErr == nil && exists {
			return nil, validate.ErrUsernameTaken
		}
		return nil, fmt.Errorf("register %q: %w", username, err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	if err := validate.Login(username, password); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.Hash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// IsUserError reports whether err should be shown to the submitter
// rather than treated as a server failure.
func IsUserError(err error) bool {
	return validate.IsValidationError(err) ||
		errors.Is(err, ErrInvalidCredentials)
}
