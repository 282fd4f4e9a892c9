package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/palindromes/internal/database/detections"
)

type StatsStore interface {
	GetStats(ctx context.Context) (*detections.Stats, error)
}

type StatsController struct {
	store StatsStore
}

func NewStatsController(store StatsStore) *StatsController {
	return &StatsController{store: store}
}

// GetStats returns detection counts by outcome and language.
// GET /api/stats
func (sc *StatsController) GetStats(c *gin.Context) {
	stats, err := sc.store.GetStats(c.Request.Context())
	if err != nil {
		respondStorageError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
