package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies that are nil leave their routes unregistered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// "/detect" and "/detect/" are both registered explicitly.
	router.RedirectTrailingSlash = false

	if cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.InjectContext())
		router.Use(cfg.ReadOnly.Handler())
	}

	api := router.Group(normalizePrefix(cfg.APIPrefix))

	health := NewHealthController(cfg.Database, cfg.Counter, cfg.Info.Version)
	detectionsController := NewDetectionsController(cfg.Detections, cfg.Checker, cfg.Auditor, cfg.Archiver)

	// Service endpoints
	api.GET("/", infoHandler(cfg.Info))
	api.GET("/ping", pingHandler)
	api.GET("/health", health.Status)

	// Detection endpoints
	api.POST("/detect", detectionsController.Detect)
	api.POST("/detect/", detectionsController.Detect)
	api.GET("/detections", detectionsController.List)
	api.GET("/all", detectionsController.ListAll)
	api.GET("/detections/:id", detectionsController.Get)
	api.DELETE("/detections/:id", detectionsController.Delete)

	if cfg.Stats != nil {
		statsController := NewStatsController(cfg.Stats)
		api.GET("/api/stats", statsController.GetStats)
	}

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		api.GET("/api/audit", auditController.GetAuditEvents)
		api.GET("/detections/:id/history", auditController.GetDetectionHistory)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/api/tasks/types", tasksController.ListTaskTypes)
		api.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	readOnlyController := NewReadOnlyController(cfg.ReadOnly)
	api.GET("/api/readonly/status", readOnlyController.GetStatus)

	return router
}

// normalizePrefix turns "", "/" and "api/v1/" into "", "" and "/api/v1".
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
