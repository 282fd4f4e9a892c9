package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	auditsvc "github.com/mrlokans/palindromes/internal/audit"
	"github.com/mrlokans/palindromes/internal/database"
	auditRepo "github.com/mrlokans/palindromes/internal/database/audit"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

const (
	englishPalindrome = "Able was I ere I saw Elba"
	spanishPalindrome = "Dábale arroz a la zorra el abad"
	notPalindrome     = "This is not a palindrome"
)

type testServer struct {
	router *gin.Engine
	db     *database.Database
	repo   *detections.Repository
	audit  *auditsvc.Service
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := database.DefaultConfig(filepath.Join(t.TempDir(), "palindromes.db"))
	cfg.LogLevel = logger.Silent
	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestServer wires the full router over a fresh file-backed database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := setupTestDB(t)
	repo := detections.NewRepository(db.DB)
	auditService := auditsvc.NewService(auditRepo.NewRepository(db.DB))
	t.Cleanup(auditService.Wait)

	router := NewRouter(RouterConfig{
		Detections: repo,
		Checker:    palindrome.NewChecker(),
		Database:   db,
		Counter:    repo,
		Stats:      repo,
		Auditor:    auditService,
		Audit:      auditService,
		Info:       ServiceInfo{Name: "palindromes", Description: "test", Version: "test"},
	})

	return &testServer{router: router, db: db, repo: repo, audit: auditService}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(s.router, method, path, body)
}

func doRequest(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			raw, _ = json.Marshal(b)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
