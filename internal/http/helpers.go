package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/auth"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when no user is logged in.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// ErrorResponse is the standard error response format for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// parseUintForm extracts an unsigned integer from a form field.
// Returns the parsed value or responds with a 400 error and returns 0, false.
func parseUintForm(c *gin.Context, field string) (uint, bool) {
	id, err := strconv.ParseUint(c.PostForm(field), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+field)
		return 0, false
	}
	return uint(id), true
}

// parseRating coerces the rating form field. Anything that is not an
// integer becomes 0, which the validator reports as a missing rating.
func parseRating(value string) int {
	rating, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return rating
}
