package http

import (
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/ratings"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Searcher BookSearcher
	Books    BookFinder
	Reviews  ReviewStore
	Stats    StatsProvider
	Ratings  ratings.Provider

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	LoginLimiter   *auth.LoginLimiter // nil disables login throttling
	Renderer       *auth.Renderer
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	StaticPath string

	// Application info
	Version string
}
