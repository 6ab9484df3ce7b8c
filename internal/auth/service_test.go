package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/validate"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewService(users.NewRepository(db), config.Auth{BcryptCost: bcrypt.MinCost}), db
}

func TestService_Register(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "pass1", "pass1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "bob1",
			password: "pass1",
			confirm:  "pass1",
			wantErr:  nil,
		},
		{
			name:     "missing username",
			username: "",
			password: "pass1",
			confirm:  "pass1",
			wantErr:  validate.ErrUsernameRequired,
		},
		{
			name:     "username too short",
			username: "bob",
			password: "pass1",
			confirm:  "pass1",
			wantErr:  validate.ErrUsernameLength,
		},
		{
			name:     "duplicate with different case",
			username: "alice",
			password: "pass1",
			confirm:  "pass1",
			wantErr:  validate.ErrUsernameTaken,
		},
		{
			name:     "mismatched passwords",
			username: "carol",
			password: "pass1",
			confirm:  "pass2",
			wantErr:  validate.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !IsUserError(err) {
				t.Errorf("expected %v to be a user error", err)
			}
		})
	}
}

func TestService_Register_StoresFoldedUsernameAndHash(t *testing.T) {
	svc, db := setupService(t)

	user, err := svc.Register(context.Background(), "Bob1", "pass1", "pass1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var stored entities.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.Username != "bob1" {
		t.Errorf("expected folded username 'bob1', got %q", stored.Username)
	}
	if stored.Hash == "pass1" || stored.Hash == "" {
		t.Errorf("expected bcrypt hash, got %q", stored.Hash)
	}
	if err := CheckPassword("pass1", stored.Hash); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestService_Register_RejectionLeavesStoreUntouched(t *testing.T) {
	svc, db := setupService(t)

	_, err := svc.Register(context.Background(), "bob1", "pass1", "pass2")
	if !errors.Is(err, validate.ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}

	var count int64
	db.Model(&entities.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no users, got %d", count)
	}
}

func TestService_MultibytePasswordRoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	password := strings.Repeat("😀", 20) // 20 characters, 80 bytes

	if _, err := svc.Register(ctx, "emoji", password, password); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "emoji", password); err != nil {
		t.Errorf("Authenticate failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "emoji", strings.Repeat("😀", 19)+"😁"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a different last character, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "bob1", "pass1", "pass1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "exact credentials",
			username: "bob1",
			password: "pass1",
			wantErr:  nil,
		},
		{
			name:     "username is case-insensitive",
			username: "BOB1",
			password: "pass1",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			username: "bob1",
			password: "pass2",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "pass1",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "missing username",
			username: "",
			password: "pass1",
			wantErr:  validate.ErrUsernameRequired,
		},
		{
			name:     "missing password",
			username: "bob1",
			password: "",
			wantErr:  validate.ErrPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.ID != registered.ID {
				t.Errorf("expected user %d, got %d", registered.ID, user.ID)
			}
		})
	}
}

func TestService_GetUserByID(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob1", "pass1", "pass1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	found, err := svc.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if found.Username != "bob1" {
		t.Errorf("expected bob1, got %q", found.Username)
	}

	if _, err := svc.GetUserByID(ctx, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(ErrInvalidCredentials) {
		t.Error("invalid credentials should be a user error")
	}
	if !IsUserError(validate.ErrPasswordMismatch) {
		t.Error("validation failures should be user errors")
	}
	if IsUserError(errors.New("database is locked")) {
		t.Error("store failures are not user errors")
	}
}
