package http

import (
	"context"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// Each controller depends only on the operations it calls. The concrete
// implementations are the repositories in internal/database and the
// services in internal/catalog and internal/stats.

// BookSearcher runs a catalog search from raw form input.
type BookSearcher interface {
	Search(ctx context.Context, criteria, term string) ([]entities.Book, error)
}

// BookFinder looks a single book up by ISBN.
type BookFinder interface {
	GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error)
}

// ReviewStore reads and writes reviews.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *entities.Review) error
	ListReviewsForBook(ctx context.Context, bookID uint) ([]entities.ReviewView, error)
}

// StatsProvider returns the public review aggregate for an ISBN.
type StatsProvider interface {
	BookStats(ctx context.Context, isbn string) (*entities.BookStats, error)
}
