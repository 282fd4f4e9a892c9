package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/palindromes/internal/audit"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

// DetectionStore persists and retrieves detection records.
type DetectionStore interface {
	Insert(ctx context.Context, text string, lang palindrome.Language, isPalindrome bool) (*entities.Detection, error)
	List(ctx context.Context, filter detections.Filter) ([]entities.Detection, error)
	ListAll(ctx context.Context) ([]entities.Detection, error)
	Get(ctx context.Context, id uint) (*entities.Detection, bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type PalindromeChecker interface {
	Check(text string, lang palindrome.Language) bool
}

// DetectionAuditor records detect and delete operations. Calls must not block.
type DetectionAuditor interface {
	LogDetect(record *entities.Detection, req audit.RequestInfo)
	LogDelete(id uint, deleted bool, req audit.RequestInfo)
}

// RequestArchiver keeps a raw copy of incoming detect requests.
type RequestArchiver interface {
	Archive(kind string, payload any) (string, error)
}

// --- Request / Response Types ---

type DetectRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"omitempty,palindrome_language"`
}

type DetectResponse struct {
	ID           uint                `json:"id"`
	IsPalindrome bool                `json:"is_palindrome"`
	Language     palindrome.Language `json:"language"`
	Timestamp    time.Time           `json:"timestamp"`
}

// DetectionSummary is one entry of the filtered palindrome listing.
type DetectionSummary struct {
	ID        uint                `json:"id"`
	Text      string              `json:"text"`
	Timestamp time.Time           `json:"timestamp"`
	Language  palindrome.Language `json:"language"`
}

type DetectionResponse struct {
	ID           uint                `json:"id"`
	Text         string              `json:"text"`
	Language     palindrome.Language `json:"language"`
	Timestamp    time.Time           `json:"timestamp"`
	IsPalindrome bool                `json:"is_palindrome"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toDetectionResponse(d entities.Detection) DetectionResponse {
	return DetectionResponse{
		ID:           d.ID,
		Text:         d.Text,
		Language:     d.Language,
		Timestamp:    d.Timestamp,
		IsPalindrome: d.IsPalindrome,
	}
}

// --- Controller ---

type DetectionsController struct {
	store    DetectionStore
	checker  PalindromeChecker
	auditor  DetectionAuditor
	archiver RequestArchiver
}

// NewDetectionsController creates the controller. auditor and archiver may be nil.
func NewDetectionsController(store DetectionStore, checker PalindromeChecker, auditor DetectionAuditor, archiver RequestArchiver) *DetectionsController {
	registerValidators()
	return &DetectionsController{
		store:    store,
		checker:  checker,
		auditor:  auditor,
		archiver: archiver,
	}
}

func requestInfo(c *gin.Context) audit.RequestInfo {
	return audit.RequestInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Detect checks the submitted text and stores the result.
// POST /detect
func (dc *DetectionsController) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, detectBindError(err, req))
		return
	}

	lang := palindrome.DefaultLanguage
	if req.Language != "" {
		parsed, err := palindrome.ParseLanguage(req.Language)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		lang = parsed
	}

	// Archive failures are logged, not returned.
	if dc.archiver != nil {
		if _, err := dc.archiver.Archive("detect", req); err != nil {
			log.Printf("Failed to archive detect request: %v", err)
		}
	}

	isPalindrome := dc.checker.Check(req.Text, lang)

	record, err := dc.store.Insert(c.Request.Context(), req.Text, lang, isPalindrome)
	if err != nil {
		respondStorageError(c, err, "detect")
		return
	}

	if dc.auditor != nil {
		dc.auditor.LogDetect(record, requestInfo(c))
	}

	c.JSON(http.StatusOK, DetectResponse{
		ID:           record.ID,
		IsPalindrome: record.IsPalindrome,
		Language:     record.Language,
		Timestamp:    record.Timestamp,
	})
}

// List returns stored palindromes, optionally filtered by language and date range.
// GET /detections?language=&from_date=&to_date=
func (dc *DetectionsController) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	records, err := dc.store.List(c.Request.Context(), filter)
	if err != nil {
		respondStorageError(c, err, "list detections")
		return
	}

	response := make([]DetectionSummary, 0, len(records))
	for _, d := range records {
		response = append(response, DetectionSummary{
			ID:        d.ID,
			Text:      d.Text,
			Timestamp: d.Timestamp,
			Language:  d.Language,
		})
	}
	c.JSON(http.StatusOK, response)
}

func parseFilter(c *gin.Context) (detections.Filter, error) {
	var filter detections.Filter

	if raw := c.Query("language"); raw != "" {
		lang, err := palindrome.ParseLanguage(raw)
		if err != nil {
			return filter, err
		}
		filter.Language = &lang
	}

	if raw := c.Query("from_date"); raw != "" {
		from, err := parseISODate(raw)
		if err != nil {
			return filter, fmt.Errorf("from_date: %w", err)
		}
		filter.From = &from
	}

	if raw := c.Query("to_date"); raw != "" {
		to, err := parseISODate(raw)
		if err != nil {
			return filter, fmt.Errorf("to_date: %w", err)
		}
		filter.To = &to
	}

	return filter, nil
}

// ListAll returns every stored detection, palindrome or not.
// GET /all
func (dc *DetectionsController) ListAll(c *gin.Context) {
	records, err := dc.store.ListAll(c.Request.Context())
	if err != nil {
		respondStorageError(c, err, "list all detections")
		return
	}

	response := make([]DetectionResponse, 0, len(records))
	for _, d := range records {
		response = append(response, toDetectionResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

// Get returns a single detection.
// GET /detections/:id
func (dc *DetectionsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, found, err := dc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "get detection")
		return
	}
	if !found {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, toDetectionResponse(*record))
}

// Delete removes a detection.
// DELETE /detections/:id
func (dc *DetectionsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := dc.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "delete detection")
		return
	}

	if dc.auditor != nil {
		dc.auditor.LogDelete(id, deleted, requestInfo(c))
	}

	if !deleted {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Success: true,
		Message: fmt.Sprintf("Detection of %d was deleted successfully", id),
	})
}
