// Package ratings fetches externally sourced rating aggregates per ISBN.
package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// DefaultTimeout bounds a single review_counts call.
const DefaultTimeout = 5 * time.Second

var (
	ErrNotConfigured = errors.New("rating source API key is not configured")
	ErrNotFound      = errors.New("no external rating for ISBN")
)

// Provider returns the external aggregate for one ISBN.
type Provider interface {
	ReviewCounts(ctx context.Context, isbn string) (*entities.ExternalRating, error)
}

// GoodreadsClient queries the Goodreads review_counts endpoint.
type GoodreadsClient struct {
	httpClient *http.Client
	baseURL    string
	key        string
}

// NewGoodreadsClient creates a client. A non-positive timeout uses DefaultTimeout.
func NewGoodreadsClient(baseURL, key string, timeout time.Duration) *GoodreadsClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GoodreadsClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		key:     key,
	}
}

type reviewCountsResponse struct {
	Books []goodreadsBook `json:"books"`
}

type goodreadsBook struct {
	ID                   int64  `json:"id"`
	ISBN                 string `json:"isbn"`
	ISBN13               string `json:"isbn13"`
	RatingsCount         int    `json:"ratings_count"`
	ReviewsCount         int    `json:"reviews_count"`
	TextReviewsCount     int    `json:"text_reviews_count"`
	WorkRatingsCount     int    `json:"work_ratings_count"`
	WorkTextReviewsCount int    `json:"work_text_reviews_count"`
	AverageRating        string `json:"average_rating"` // sent as a quoted decimal
}

// ReviewCounts returns the first book entry reported for isbn.
func (c *GoodreadsClient) ReviewCounts(ctx context.Context, isbn string) (*entities.ExternalRating, error) {
	if c.key == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("isbns", isbn)
	endpoint := c.baseURL + "/book/review_counts.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch review counts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Books) == 0 {
		return nil, ErrNotFound
	}

	return convert(body.Books[0]), nil
}

func convert(b goodreadsBook) *entities.ExternalRating {
	avg, _ := strconv.ParseFloat(b.AverageRating, 64)
	return &entities.ExternalRating{
		ISBN:                 b.ISBN,
		ISBN13:               b.ISBN13,
		RatingsCount:         b.RatingsCount,
		ReviewsCount:         b.ReviewsCount,
		TextReviewsCount:     b.TextReviewsCount,
		WorkRatingsCount:     b.WorkRatingsCount,
		WorkTextReviewsCount: b.WorkTextReviewsCount,
		AverageRating:        avg,
	}
}
