// Package validate checks form input before it reaches the store.
//
// Every check returns nil when the input is accepted, or one of the sentinel
// errors below whose message is shown to the user as is. Checks run in a
// fixed order and stop at the first violated rule, so only one reason is ever
// reported for a submission.
package validate

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	MinUsernameLength = 4
	MaxUsernameLength = 16
	MinPasswordLength = 4
	MaxPasswordLength = 20

	MinRating = 1
	MaxRating = 5
)

var (
	ErrUsernameRequired     = errors.New("Must Provide Username!")
	ErrPasswordRequired     = errors.New("Must Provide Password!")
	ErrConfirmationRequired = errors.New("Must Provide Second Password to validate!")
	ErrUsernameLength       = fmt.Errorf("Username length should be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	ErrPasswordLength       = fmt.Errorf("Password length should be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	ErrUsernameTaken        = errors.New("Username unavailable!")
	ErrPasswordMismatch     = errors.New("Passwords do not match!")

	ErrRatingRequired  = errors.New("You must submit a valid rating")
	ErrContextRequired = errors.New("You must leave a comment")
	ErrRatingRange     = errors.New("Invalid rating range")
)

var validationErrors = []error{
	ErrUsernameRequired,
	ErrPasswordRequired,
	ErrConfirmationRequired,
	ErrUsernameLength,
	ErrPasswordLength,
	ErrUsernameTaken,
	ErrPasswordMismatch,
	ErrRatingRequired,
	ErrContextRequired,
	ErrRatingRange,
}

// UsernameLookup reports whether a username is already registered.
// Implementations compare case-insensitively.
type UsernameLookup interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// IsValidationError reports whether err is a user-correctable rejection
// produced by this package.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Registration checks a sign-up form. It does not create the user.
// A failure of the username lookup is returned wrapped and is not a
// validation error.
func Registration(ctx context.Context, users UsernameLookup, username, password, confirm string) error {
	switch {
	case username == "":
		return ErrUsernameRequired
	case password == "":
		return ErrPasswordRequired
	case confirm == "":
		return ErrConfirmationRequired
	}

	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return ErrUsernameLength
	}
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || n > MaxPasswordLength {
		return ErrPasswordLength
	}

	taken, err := users.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username availability: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Login checks that both login fields were submitted. Credentials are
// verified by the auth service.
func Login(username, password string) error {
	switch {
	case username == "":
		return ErrUsernameRequired
	case password == "":
		return ErrPasswordRequired
	}
	return nil
}

// Review checks a review submission. A zero rating means the field was
// missing or not a number.
func Review(rating int, context string) error {
	switch {
	case rating == 0:
		return ErrRatingRequired
	case context == "":
		return ErrContextRequired
	case rating < MinRating || rating > MaxRating:
		return ErrRatingRange
	}
	return nil
}
