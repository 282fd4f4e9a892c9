package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/palindromes/internal/database/detections"
)

const (
	detectionNotFound = "Detection not found"
	databaseErrorInfo = "A database error occurred."
)

// --- Response Types ---

// ErrorResponse is the error body for client errors. Detail carries the
// human-readable reason; Error repeats it for clients of the older format.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error,omitempty"`
}

// StorageErrorResponse is returned whenever the detection store fails.
// It never includes the underlying cause.
type StorageErrorResponse struct {
	Info string `json:"info"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: message, Error: message})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: detectionNotFound})
}

// respondStorageError logs err and sends the opaque database error body.
func respondStorageError(c *gin.Context, err error, context string) {
	var storageErr *detections.StorageError
	if errors.As(err, &storageErr) {
		log.Printf("Storage error (%s): op=%s: %v", context, storageErr.Op, storageErr.Err)
	} else {
		log.Printf("Storage error (%s): %v", context, err)
	}
	c.JSON(http.StatusInternalServerError, StorageErrorResponse{Info: databaseErrorInfo})
}

// respondInternalError logs the error and sends a generic 500 response.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}

// --- Parameter Parsing ---

// parseIDParam extracts an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, strconv.IntSize)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery reads a non-negative integer query parameter, falling back to def when absent.
func parseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return value, true
}
