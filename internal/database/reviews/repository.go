// Package reviews provides database operations for the review store.
package reviews

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview inserts a review. The referenced user and book are not checked
// beyond what the schema enforces.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	if err := r.db.WithContext(ctx).Omit("User", "Book").Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListReviewsForBook returns the book's reviews with their authors, newest first.
func (r *Repository) ListReviewsForBook(ctx context.Context, bookID uint) ([]entities.ReviewView, error) {
	var views []entities.ReviewView
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("users.id AS user_id, users.username AS username, reviews.context AS context, " +
			"reviews.rating AS rating, reviews.timestamp AS timestamp").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.timestamp DESC, reviews.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for book %d: %w", bookID, err)
	}
	return views, nil
}
