// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Dialect selection from DATABASE_URL, migrations
//	├── users/           # Credential store (case-folded usernames, password hashes)
//	├── books/           # Catalog store: lookup, search, bulk import, review aggregation
//	└── reviews/         # Review store
//
// # Dialects
//
// DATABASE_URL selects the gorm driver: postgres:// and postgresql:// use
// PostgreSQL, mysql:// uses MySQL, anything else is treated as a SQLite path.
// Queries stick to SQL understood by all three (LOWER(...) LIKE LOWER(?) for
// case-insensitive matching).
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database.URL)
//	usersRepo := users.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//	reviewsRepo := reviews.NewRepository(db.DB)
//
// Each repository satisfies the small interfaces declared by its consumers
// (validate.UsernameLookup, catalog.Store, stats.Store, ...). The compile-time
// checks live in internal/interfaces.
package database
