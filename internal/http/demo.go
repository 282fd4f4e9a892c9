package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/palindromes/internal/demo"
)

type ReadOnlyController struct {
	middleware *demo.Middleware
}

func NewReadOnlyController(middleware *demo.Middleware) *ReadOnlyController {
	return &ReadOnlyController{middleware: middleware}
}

type ReadOnlyStatusResponse struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// GetStatus reports whether write operations are currently blocked.
// GET /api/readonly/status
func (rc *ReadOnlyController) GetStatus(c *gin.Context) {
	if !rc.middleware.IsEnabled() {
		c.JSON(http.StatusOK, ReadOnlyStatusResponse{
			Enabled: false,
			Message: "Read-only mode is not active",
		})
		return
	}

	c.JSON(http.StatusOK, ReadOnlyStatusResponse{
		Enabled: true,
		Message: "Read-only mode is active - write operations are blocked",
	})
}
