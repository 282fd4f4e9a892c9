package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.InjectContext())
	router.Use(m.Handler())
	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/detections", ok)
	router.HEAD("/detections", ok)
	router.OPTIONS("/detect", ok)
	router.POST("/detect", ok)
	router.DELETE("/detections/:id", ok)
	router.POST("/api/tasks/:type/run", ok)
	router.GET("/flag", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"read_only": c.GetBool(ContextKeyReadOnly)})
	})
	return router
}

func TestNewMiddleware(t *testing.T) {
	m := NewMiddleware(true)
	if !m.IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}

	m = NewMiddleware(false)
	if m.IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}

	var nilMiddleware *Middleware
	if nilMiddleware.IsEnabled() {
		t.Error("Expected nil middleware to be disabled")
	}
}

func TestMiddleware_AllowsReadRequests(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		req := httptest.NewRequest(method, "/detections", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", method, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/detect", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("OPTIONS: expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/detect"},
		{http.MethodDelete, "/detections/1"},
		{http.MethodPost, "/api/tasks/export_detections/run"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403, got %d", tt.method, tt.path, w.Code)
			continue
		}

		var response map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse JSON response: %v", err)
		}
		if response["detail"] != ReadOnlyMessage {
			t.Errorf("Expected detail %q, got %v", ReadOnlyMessage, response["detail"])
		}
		if response["read_only"] != true {
			t.Errorf("Expected read_only true, got %v", response["read_only"])
		}
	}
}

func TestMiddleware_AllowlistedPaths(t *testing.T) {
	router := newTestRouter(NewMiddleware(true, "/detect"))

	req := httptest.NewRequest(http.MethodPost, "/detect", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected allowlisted POST to pass, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/detections/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected DELETE to be blocked, got %d", w.Code)
	}
}

func TestMiddleware_DisabledPassesEverything(t *testing.T) {
	router := newTestRouter(NewMiddleware(false))

	req := httptest.NewRequest(http.MethodDelete, "/detections/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_InjectContext(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		router := newTestRouter(NewMiddleware(enabled))

		req := httptest.NewRequest(http.MethodGet, "/flag", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var response map[string]bool
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse JSON response: %v", err)
		}
		if response["read_only"] != enabled {
			t.Errorf("Expected read_only=%v, got %v", enabled, response["read_only"])
		}
	}
}

func TestMiddleware_IsAllowedPath(t *testing.T) {
	m := NewMiddleware(true, "/detect", "/api/tasks/", "")

	tests := []struct {
		path string
		want bool
	}{
		{"/detect", true},
		{"/detect/", true},
		{"/detections", false},
		{"/detections/1", false},
		{"/api/tasks", false},
		{"/api/tasks/export_detections/run", true},
		{"/", false},
	}

	for _, tt := range tests {
		if got := m.isAllowedPath(tt.path); got != tt.want {
			t.Errorf("isAllowedPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
