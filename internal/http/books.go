package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/ratings"
	"github.com/mrlokans/bookreviews/internal/validate"
)

const msgReviewSubmitted = "Review submitted!"

// BooksController serves the book page and accepts reviews.
type BooksController struct {
	books    BookFinder
	reviews  ReviewStore
	ratings  ratings.Provider
	renderer *auth.Renderer
}

func NewBooksController(finder BookFinder, reviews ReviewStore, provider ratings.Provider, renderer *auth.Renderer) *BooksController {
	return &BooksController{
		books:    finder,
		reviews:  reviews,
		ratings:  provider,
		renderer: renderer,
	}
}

func bookPath(isbn string) string {
	return "/book/" + url.PathEscape(isbn)
}

// BookPage shows the book, its reviews newest first and the external rating
// when the rating source answers.
func (controller *BooksController) BookPage(c *gin.Context) {
	isbn := c.Param("isbn")
	ctx := c.Request.Context()

	book, err := controller.books.GetBookByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			controller.renderer.Render(c, http.StatusNotFound, "error.html", gin.H{
				"Title": "Not found",
				"error": "Book not found",
			})
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	reviews, err := controller.reviews.ListReviewsForBook(ctx, book.ID)
	if err != nil {
		respondInternalError(c, err, "load reviews")
		return
	}

	userID := GetUserID(c)
	reviewed := false
	for _, review := range reviews {
		if review.UserID == userID {
			reviewed = true
			break
		}
	}

	controller.renderer.Render(c, http.StatusOK, "book.html", gin.H{
		"Title":     book.Title,
		"Book":      book,
		"Reviews":   reviews,
		"Reviewed":  reviewed,
		"Goodreads": controller.externalRating(c, isbn),
	})
}

// externalRating returns nil when the rating source is unavailable; the page
// is rendered from local data alone in that case.
func (controller *BooksController) externalRating(c *gin.Context, isbn string) *entities.ExternalRating {
	if controller.ratings == nil {
		return nil
	}

	rating, err := controller.ratings.ReviewCounts(c.Request.Context(), isbn)
	if err != nil {
		if !errors.Is(err, ratings.ErrNotConfigured) && !errors.Is(err, ratings.ErrNotFound) {
			log.Printf("External rating lookup for %s failed: %v", isbn, err)
		}
		return nil
	}
	return rating
}

// SubmitReview stores a review by the logged-in user. The book id comes from
// the form and is not checked against the ISBN in the path.
func (controller *BooksController) SubmitReview(c *gin.Context) {
	isbn := c.Param("isbn")
	rating := parseRating(c.PostForm("rating"))
	text := c.PostForm("context")

	if err := validate.Review(rating, text); err != nil {
		controller.renderer.FlashRedirect(c, auth.FlashDanger, err.Error(), bookPath(isbn))
		return
	}

	bookID, ok := parseUintForm(c, "book_id")
	if !ok {
		return
	}

	review := &entities.Review{
		UserID:  GetUserID(c),
		BookID:  bookID,
		Rating:  rating,
		Context: text,
	}
	if err := controller.reviews.CreateReview(c.Request.Context(), review); err != nil {
		respondInternalError(c, err, "create review")
		return
	}

	controller.renderer.FlashRedirect(c, auth.FlashSuccess, msgReviewSubmitted, bookPath(isbn))
}
