// Package stats serves the public per-book review aggregate.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// ErrNotFound is returned when the ISBN is unknown or the book has no reviews.
var ErrNotFound = errors.New("ISBN not found")

// Store aggregates reviews per book. It returns books.ErrNoStats when the
// inner join of the book with its reviews is empty.
type Store interface {
	GetBookStats(ctx context.Context, isbn string) (*entities.BookStats, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// BookStats returns review count and average score for the book.
// A book without reviews is reported as ErrNotFound, not as a zero record.
func (s *Service) BookStats(ctx context.Context, isbn string) (*entities.BookStats, error) {
	result, err := s.store.GetBookStats(ctx, isbn)
	if err != nil {
		if errors.Is(err, books.ErrNoStats) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("book stats for %s: %w", isbn, err)
	}

	result.AverageScore = RoundScore(result.AverageScore)
	return result, nil
}

// RoundScore rounds to two decimal places the way %.2f formatting does.
func RoundScore(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
