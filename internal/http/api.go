package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/stats"
)

// APIError is the error body of the public API. The capitalized key is
// part of the published contract.
type APIError struct {
	Error string `json:"Error"`
}

// APIController serves the unauthenticated per-ISBN review aggregate.
type APIController struct {
	stats StatsProvider
}

func NewAPIController(provider StatsProvider) *APIController {
	return &APIController{stats: provider}
}

// BookStats answers GET /api/:isbn.
func (controller *APIController) BookStats(c *gin.Context) {
	isbn := c.Param("isbn")

	result, err := controller.stats.BookStats(c.Request.Context(), isbn)
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			c.JSON(http.StatusNotFound, APIError{Error: stats.ErrNotFound.Error()})
			return
		}
		respondInternalError(c, err, "book stats")
		return
	}

	c.JSON(http.StatusOK, result)
}
