package importers

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// BookStore persists catalog rows.
type BookStore interface {
	ExistingISBNs(ctx context.Context, isbns []string) (map[string]bool, error)
	CreateBooks(ctx context.Context, books []entities.Book) (int, error)
}

// ImportResult summarizes one catalog import.
type ImportResult struct {
	BooksParsed   int
	BooksImported int
	BooksSkipped  int // already in the catalog
}

// Pipeline handles the common import workflow:
// parse → drop books already in the catalog → save in one transaction.
type Pipeline struct {
	store BookStore
}

// NewPipeline creates a new import pipeline backed by store.
func NewPipeline(store BookStore) *Pipeline {
	return &Pipeline{store: store}
}

// Import stores the books whose ISBN is not yet in the catalog. With dryRun
// set nothing is written and BooksImported reports what would be stored.
func (p *Pipeline) Import(ctx context.Context, books []entities.Book, dryRun bool) (ImportResult, error) {
	result := ImportResult{BooksParsed: len(books)}
	if len(books) == 0 {
		return result, nil
	}

	isbns := make([]string, len(books))
	for i, b := range books {
		isbns[i] = b.ISBN
	}

	existing, err := p.store.ExistingISBNs(ctx, isbns)
	if err != nil {
		return result, err
	}

	fresh := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if existing[b.ISBN] {
			result.BooksSkipped++
			continue
		}
		fresh = append(fresh, b)
	}

	if dryRun {
		result.BooksImported = len(fresh)
		return result, nil
	}

	imported, err := p.store.CreateBooks(ctx, fresh)
	if err != nil {
		return result, fmt.Errorf("import aborted, no books stored: %w", err)
	}
	result.BooksImported = imported

	return result, nil
}
