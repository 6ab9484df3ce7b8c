package auth

import (
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// Session data keys
const (
	SessionKeyUserID  = "user_id"
	SessionKeyFlashes = "flashes"
)

var ErrNoSessionDatabase = errors.New("session store requires a database connection")

// sessionTableDDL creates the table each scs store expects, one statement
// per entry since not every driver accepts several in one Exec.
var sessionTableDDL = map[database.Dialect][]string{
	database.DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry)`,
	},
	database.DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			expiry TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
	},
	database.DialectMySQL: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token CHAR(43) PRIMARY KEY,
			data BLOB NOT NULL,
			expiry TIMESTAMP(6) NOT NULL,
			INDEX sessions_expiry_idx (expiry)
		)`,
	},
}

// newSessionStore picks the scs store matching the database dialect.
func newSessionStore(sqlDB *sql.DB, dialect database.Dialect) (scs.Store, error) {
	switch dialect {
	case database.DialectSQLite:
		return sqlite3store.New(sqlDB), nil
	case database.DialectPostgres:
		return postgresstore.New(sqlDB), nil
	case database.DialectMySQL:
		return mysqlstore.New(sqlDB), nil
	default:
		return nil, fmt.Errorf("no session store for dialect %q", dialect)
	}
}

// Flash categories, rendered as alert styles by the templates.
const (
	FlashSuccess = "success"
	FlashPrimary = "primary"
	FlashDanger  = "danger"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func init() {
	gob.Register([]FlashMessage{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager. Sessions persist
// in the "sessions" table of the application database, created on demand.
func NewSessionManager(sqlDB *sql.DB, dialect database.Dialect, cfg config.Auth) (*SessionManager, error) {
	if sqlDB == nil {
		return nil, ErrNoSessionDatabase
	}

	store, err := newSessionStore(sqlDB, dialect)
	if err != nil {
		return nil, err
	}
	for _, stmt := range sessionTableDDL[dialect] {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return nil, fmt.Errorf("create sessions table: %w", err)
		}
	}

	sm := scs.New()
	sm.Store = store

	// Zero keeps the scs default lifetime.
	if cfg.SessionLifetime > 0 {
		sm.Lifetime = cfg.SessionLifetime
		sm.IdleTimeout = cfg.SessionLifetime / 2
	}

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession records the user as the session principal.
// Call it only after the credentials have been verified.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Store user ID as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(user.ID))

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID retrieves the user ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// Flash queues a message for the next page render.
func (sm *SessionManager) Flash(ctx context.Context, category, message string) {
	flashes, _ := sm.Get(ctx, SessionKeyFlashes).([]FlashMessage)
	sm.Put(ctx, SessionKeyFlashes, append(flashes, FlashMessage{Category: category, Message: message}))
}

// PopFlashes returns and clears the queued messages.
func (sm *SessionManager) PopFlashes(ctx context.Context) []FlashMessage {
	flashes, _ := sm.Pop(ctx, SessionKeyFlashes).([]FlashMessage)
	return flashes
}
