// Package catalog implements book search over the catalog store.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookreviews/internal/entities"
)

var (
	ErrCriteriaRequired = errors.New("Must Provide Criteria!")
	ErrTermRequired     = errors.New("Must Provide Search Criteria")
)

// Store executes a case-insensitive LIKE match against one catalog column.
type Store interface {
	SearchBooks(ctx context.Context, field entities.SearchField, pattern string) ([]entities.Book, error)
}

// Service builds search queries from form input.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ParseField maps the submitted criteria onto a column. Anything other than
// "isbn" or "author" searches the title.
func ParseField(criteria string) entities.SearchField {
	switch entities.SearchField(criteria) {
	case entities.SearchFieldISBN:
		return entities.SearchFieldISBN
	case entities.SearchFieldAuthor:
		return entities.SearchFieldAuthor
	default:
		return entities.SearchFieldTitle
	}
}

// Pattern wraps term for a substring LIKE match.
func Pattern(term string) string {
	return "%" + term + "%"
}

// Search returns every book whose selected column contains term, ignoring case.
// An empty result is not an error.
func (s *Service) Search(ctx context.Context, criteria, term string) ([]entities.Book, error) {
	if criteria == "" {
		return nil, ErrCriteriaRequired
	}
	if term == "" {
		return nil, ErrTermRequired
	}

	books, err := s.store.SearchBooks(ctx, ParseField(criteria), Pattern(term))
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return books, nil
}

// IsInputError reports whether err was caused by missing search input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrCriteriaRequired) || errors.Is(err, ErrTermRequired)
}
