// Package interfaces documents the core abstractions used throughout the application.
//
// Interfaces are declared by their consumers and kept small. Concrete types
// live in the database sub-packages and in internal/ratings; checks.go pins
// every pairing at compile time.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - auth.UserStore: Credential storage (internal/auth/service.go)
//   - validate.UsernameLookup: Case-insensitive username existence (internal/validate/validate.go)
//   - catalog.Store: Partial-match book search (internal/catalog/search.go)
//   - stats.Store: Per-ISBN review aggregation (internal/stats/stats.go)
//   - importers.BookStore: Bulk catalog writes (internal/importers/pipeline.go)
//   - http.BookFinder, http.ReviewStore: Book page data (internal/http/stores.go)
//
// ## Service Interfaces
//
//   - http.BookSearcher: Search form handling (internal/http/stores.go)
//   - http.StatsProvider: Public stats endpoint (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - ratings.Provider: External review counts by ISBN (internal/ratings/goodreads.go)
//
// # Adding a New Rating Source
//
// To show ratings from another service (e.g., Open Library):
//
//  1. Implement Provider in internal/ratings/
//
//     type OpenLibraryClient struct {
//         httpClient *http.Client
//         baseURL    string
//     }
//
//     func (c *OpenLibraryClient) ReviewCounts(ctx context.Context, isbn string) (*entities.ExternalRating, error)
//
//     var _ Provider = (*OpenLibraryClient)(nil)
//
//  2. Pass it as RouterConfig.Ratings in entrypoint.go
//
// Return ErrNotConfigured or ErrNotFound for expected gaps; the book page
// logs anything else and renders without the rating.
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading lists):
//
//  1. Create sub-package: internal/database/lists/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the entity in database.open's AutoMigrate call
//
//  4. Add a compile-time check to checks.go:
//
//     var _ http.ListStore = (*lists.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
