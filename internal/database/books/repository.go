// Package books provides database operations for the book catalog.
//
// Besides lookups, the repository owns the two catalog queries with real
// shape to them: the case-insensitive partial-match search and the
// books-reviews aggregation behind the public stats endpoint.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	found, err := repo.SearchBooks(ctx, entities.SearchFieldAuthor, "%tolkien%")
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNoStats      = errors.New("no reviews for book")
)

// importBatchSize bounds the number of rows per INSERT during bulk import.
const importBatchSize = 500

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByISBN retrieves a book by its exact ISBN.
func (r *Repository) GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %s: %w", isbn, err)
	}
	return &book, nil
}

// SearchBooks matches pattern (a LIKE pattern, wildcards included) against one
// catalog column, case-insensitively. Unknown fields search the title.
func (r *Repository) SearchBooks(ctx context.Context, field entities.SearchField, pattern string) ([]entities.Book, error) {
	var column string
	switch field {
	case entities.SearchFieldISBN:
		column = "isbn"
	case entities.SearchFieldAuthor:
		column = "author"
	default:
		column = "title"
	}

	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("LOWER("+column+") LIKE LOWER(?)", pattern).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search books by %s: %w", column, err)
	}
	return books, nil
}

// GetBookStats aggregates the reviews of the book with the given ISBN.
// The join is an inner join: a book without reviews yields ErrNoStats.
// AverageScore is returned unrounded.
func (r *Repository) GetBookStats(ctx context.Context, isbn string) (*entities.BookStats, error) {
	var rows []entities.BookStats
	err := r.db.WithContext(ctx).
		Table("books").
		Select("books.title AS title, books.author AS author, books.year AS year, books.isbn AS isbn, " +
			"COUNT(reviews.id) AS review_count, AVG(reviews.rating) AS average_score").
		Joins("INNER JOIN reviews ON books.id = reviews.book_id").
		Where("books.isbn = ?", isbn).
		Group("books.title, books.author, books.year, books.isbn").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews for %s: %w", isbn, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoStats
	}
	return &rows[0], nil
}

// CreateBooks inserts catalog rows in a single transaction and returns how many were stored.
func (r *Repository) CreateBooks(ctx context.Context, books []entities.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&books, importBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import books: %w", err)
	}
	return len(books), nil
}

// CountBooks returns the catalog size.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// ExistingISBNs returns the subset of isbns already in the catalog.
func (r *Repository) ExistingISBNs(ctx context.Context, isbns []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	for start := 0; start < len(isbns); start += importBatchSize {
		end := min(start+importBatchSize, len(isbns))

		var found []string
		err := r.db.WithContext(ctx).
			Model(&entities.Book{}).
			Where("isbn IN ?", isbns[start:end]).
			Pluck("isbn", &found).Error
		if err != nil {
			return nil, fmt.Errorf("failed to look up existing isbns: %w", err)
		}
		for _, isbn := range found {
			existing[isbn] = true
		}
	}
	return existing, nil
}
