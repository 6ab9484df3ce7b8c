package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/catalog"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/http"
	"github.com/mrlokans/bookreviews/internal/importers"
	"github.com/mrlokans/bookreviews/internal/ratings"
	"github.com/mrlokans/bookreviews/internal/stats"
	"github.com/mrlokans/bookreviews/internal/validate"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Credential store
var _ auth.UserStore = (*users.Repository)(nil)
var _ validate.UsernameLookup = (*users.Repository)(nil)

// Catalog store
var _ catalog.Store = (*books.Repository)(nil)
var _ stats.Store = (*books.Repository)(nil)
var _ http.BookFinder = (*books.Repository)(nil)
var _ importers.BookStore = (*books.Repository)(nil)

// Review store
var _ http.ReviewStore = (*reviews.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.BookSearcher = (*catalog.Service)(nil)
var _ http.StatsProvider = (*stats.Service)(nil)

// =============================================================================
// External Services
// =============================================================================

// Provider implementations
var _ ratings.Provider = (*ratings.GoodreadsClient)(nil)
