package http

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	if cfg.StaticPath != "" {
		if _, err := os.Stat(cfg.StaticPath); err == nil {
			router.Static("/static", cfg.StaticPath)
		}
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Renderer, cfg.LoginLimiter)
	searchController := NewSearchController(cfg.Searcher, cfg.Renderer)
	booksController := NewBooksController(cfg.Books, cfg.Reviews, cfg.Ratings, cfg.Renderer)
	apiController := NewAPIController(cfg.Stats)

	// Health endpoints
	router.GET("/health", health.Status)

	// Public pages
	authController.RegisterRoutes(router)
	router.GET("/api/:isbn", apiController.BookStats)

	// Pages behind the session gate
	protected := router.Group("/", cfg.AuthMiddleware.RequireAuth())
	protected.GET("/", searchController.SearchPage)
	protected.POST("/", searchController.Search)
	protected.GET("/book/:isbn", booksController.BookPage)
	protected.POST("/book/:isbn", booksController.SubmitReview)

	return router
}
