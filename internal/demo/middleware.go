package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReadOnlyMessage is returned to clients whose write request was blocked.
const ReadOnlyMessage = "This action is disabled in read-only mode"

// Middleware blocks write operations when the service runs read-only.
// GET, HEAD and OPTIONS always pass; other methods pass only for
// allowlisted paths.
type Middleware struct {
	enabled      bool
	allowedPaths []string
}

// NewMiddleware creates a read-only mode middleware. allowedPaths accept writes
// even when the mode is enabled, together with every path below them.
func NewMiddleware(enabled bool, allowedPaths ...string) *Middleware {
	return &Middleware{enabled: enabled, allowedPaths: allowedPaths}
}

func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsEnabled() {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"detail":    ReadOnlyMessage,
			"read_only": true,
		})
	}
}

// isAllowedPath matches whole path segments, so "/detect" allows
// "/detect/" but not "/detections/1".
func (m *Middleware) isAllowedPath(path string) bool {
	for _, allowed := range m.allowedPaths {
		if allowed == "" {
			continue
		}
		if path == allowed || strings.HasPrefix(path, strings.TrimSuffix(allowed, "/")+"/") {
			return true
		}
	}
	return false
}

// ContextKeyReadOnly stores the read-only flag in the request context.
const ContextKeyReadOnly = "read_only"

// InjectContext adds the read-only flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.IsEnabled())
		c.Next()
	}
}
