package entities

import (
	"time"
)

// User is a registered reviewer. Username is stored case-folded.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Hash      string    `gorm:"column:hash;size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a catalog entry. Books are created by the bulk importer only.
type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ISBN   string `gorm:"column:isbn;uniqueIndex;size:20;not null" json:"isbn"`
	Title  string `gorm:"index;size:512;not null" json:"title"`
	Author string `gorm:"index;size:256;not null" json:"author"`
	Year   int    `json:"year"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	BookID    uint      `gorm:"index;not null" json:"book_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Context   string    `gorm:"type:text;not null" json:"context"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Book Book `gorm:"foreignKey:BookID" json:"-"`
}

// SearchField is the catalog column a search term is matched against.
type SearchField string

const (
	SearchFieldISBN   SearchField = "isbn"
	SearchFieldAuthor SearchField = "author"
	SearchFieldTitle  SearchField = "title"
)

// BookStats is the public aggregate served by /api/:isbn.
type BookStats struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	ISBN         string  `json:"isbn"`
	ReviewCount  int64   `json:"review_count"`
	AverageScore float64 `json:"average_score"`
}

// ReviewView is a review joined with its author for the book page.
type ReviewView struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Context   string    `json:"context"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// ExternalRating is the aggregate reported by the external rating source.
type ExternalRating struct {
	ISBN                 string  `json:"isbn"`
	ISBN13               string  `json:"isbn13,omitempty"`
	RatingsCount         int     `json:"ratings_count"`
	ReviewsCount         int     `json:"reviews_count"`
	TextReviewsCount     int     `json:"text_reviews_count"`
	WorkRatingsCount     int     `json:"work_ratings_count"`
	WorkTextReviewsCount int     `json:"work_text_reviews_count"`
	AverageRating        float64 `json:"average_rating"`
}
