package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/catalog"
)

const (
	msgNoBooks     = "No such books were found!"
	msgBooksLoaded = "Books Loaded!"
)

// SearchController serves the home page search form.
type SearchController struct {
	searcher BookSearcher
	renderer *auth.Renderer
}

func NewSearchController(searcher BookSearcher, renderer *auth.Renderer) *SearchController {
	return &SearchController{
		searcher: searcher,
		renderer: renderer,
	}
}

// SearchPage renders the empty search form.
func (controller *SearchController) SearchPage(c *gin.Context) {
	controller.renderer.Render(c, http.StatusOK, "index.html", gin.H{
		"Title": "Search",
	})
}

// Search runs the submitted query. Missing input and empty results are
// flashed and the user is sent back to the form.
func (controller *SearchController) Search(c *gin.Context) {
	criteria := c.PostForm("criteria")
	term := c.PostForm("book")

	books, err := controller.searcher.Search(c.Request.Context(), criteria, term)
	if err != nil {
		if catalog.IsInputError(err) {
			controller.renderer.FlashRedirect(c, auth.FlashDanger, err.Error(), "/")
			return
		}
		respondInternalError(c, err, "search books")
		return
	}

	if len(books) == 0 {
		controller.renderer.FlashRedirect(c, auth.FlashDanger, msgNoBooks, "/")
		return
	}

	controller.renderer.Flash(c, auth.FlashPrimary, msgBooksLoaded)
	controller.renderer.Render(c, http.StatusOK, "index.html", gin.H{
		"Title":    "Search",
		"Books":    books,
		"Criteria": criteria,
		"Query":    term,
	})
}
