// Package auth registers users, verifies credentials and keeps the
// logged-in principal in a server-side session.
//
// Credential checks and session changes are separate steps: Service.Authenticate
// only answers whether a username and password match, and the login handler
// then calls SessionManager.CreateSession.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # CSRF signing key, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5           # Failed logins before lockout (0 disables)
//	AUTH_RATE_LIMIT_WINDOW=15m          # Window for counting failures
//	AUTH_LOCKOUT_DURATION=30m           # Lockout length
//
// # Usage
//
//	authService := auth.NewService(users.NewRepository(db), cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, db.Dialect, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessions)
//	router.Use(sessions.SessionLoadSave(), authMiddleware.Handler())
//	router.GET("/", authMiddleware.RequireAuth(), index)
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)  // 0 when nobody is logged in
package auth
