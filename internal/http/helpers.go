package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/services"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondServiceError maps service-layer errors to status codes.
// Duplicate keys and validation failures are client errors.
func respondServiceError(c *gin.Context, err error, context string) {
	if errors.Is(err, services.ErrDuplicateKey) || errors.Is(err, services.ErrValidation) {
		respondBadRequest(c, err.Error())
		return
	}
	respondInternalError(c, err, context)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination extracts the skip/limit window from query parameters,
// defaulting to skip=0 limit=100. Negative values are client errors.
func parsePagination(c *gin.Context) (skip, limit int, ok bool) {
	skip, ok = parseNonNegativeQuery(c, "skip", 0)
	if !ok {
		return 0, 0, false
	}
	limit, ok = parseNonNegativeQuery(c, "limit", 100)
	if !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

func parseNonNegativeQuery(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return value, true
}
