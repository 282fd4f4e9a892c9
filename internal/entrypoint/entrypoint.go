package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/palindromes/internal/audit"
	"github.com/mrlokans/palindromes/internal/config"
	"github.com/mrlokans/palindromes/internal/database"
	auditRepo "github.com/mrlokans/palindromes/internal/database/audit"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/demo"
	"github.com/mrlokans/palindromes/internal/exporters"
	http_controllers "github.com/mrlokans/palindromes/internal/http"
	"github.com/mrlokans/palindromes/internal/metrics"
	"github.com/mrlokans/palindromes/internal/palindrome"
	"github.com/mrlokans/palindromes/internal/scheduler"
	"github.com/mrlokans/palindromes/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds every long-lived component of a running service.
type App struct {
	Handler http.Handler

	db           *database.Database
	auditService *audit.Service
	taskClient   *tasks.Client
	scheduler    *scheduler.Scheduler
	cancel       context.CancelFunc
}

// NewApp opens the database and wires repositories, background workers and
// the HTTP router. Background workers are started before it returns.
func NewApp(cfg *config.Config, version string) (*App, error) {
	exportFormat, err := exporters.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_FORMAT: %w", err)
	}

	dbCfg := database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        logger.Warn,
	}
	if cfg.Global.Debug {
		dbCfg.LogLevel = logger.Info
	}

	db, err := database.NewDatabase(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{db: db}
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	repo := detections.NewRepository(db.DB)
	app.auditService = audit.NewService(auditRepo.NewRepository(db.DB))

	var checker http_controllers.PalindromeChecker = palindrome.NewChecker()

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		appMetrics, err = metrics.NewMetrics(registry)
		if err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
		checker = appMetrics.InstrumentChecker(checker)
	}

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)
	}

	routerCfg := http_controllers.RouterConfig{
		Detections: repo,
		Checker:    checker,
		Database:   db,
		Counter:    repo,
		Stats:      repo,
		Auditor:    app.auditService,
		Audit:      app.auditService,
		Metrics:    appMetrics,
		ReadOnly:   demoMiddleware,
		APIPrefix:  cfg.HTTP.APIPrefix,
		Info: http_controllers.ServiceInfo{
			Name:        cfg.Global.AppName,
			Description: cfg.Global.Description,
			Version:     version,
		},
	}

	var archivePruner tasks.ArchivePruner
	if cfg.Audit.ArchiveRequests {
		log.Printf("Archiving detect requests to %s", cfg.Audit.Dir)
		archiver := audit.NewArchiver(cfg.Audit.Dir)
		routerCfg.Archiver = archiver
		archivePruner = archiver
	}

	// Initialize task queue and scheduler if enabled
	if cfg.Tasks.Enabled {
		app.taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}

		app.taskClient.Register(
			tasks.NewExportDetectionsQueue(repo, app.auditService, tasks.ExportOptions{
				Dir:           cfg.Export.Dir,
				DefaultFormat: exportFormat,
			}),
			tasks.NewCleanupAuditEventsQueue(app.auditService, archivePruner),
		)
		app.taskClient.Start(ctx)
		routerCfg.TaskQueue = app.taskClient

		schedCfg := scheduler.Config{
			AuditSchedule:      cfg.Audit.CleanupSchedule,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}
		if cfg.Export.Enabled {
			schedCfg.ExportSchedule = cfg.Export.Schedule
			schedCfg.ExportFormat = string(exportFormat)
		}

		app.scheduler = scheduler.New(app.taskClient, schedCfg)
		if err := app.scheduler.Start(ctx); err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	} else {
		log.Printf("Task queue disabled - scheduled export and audit cleanup will not run")
	}

	router := http_controllers.NewRouter(routerCfg)
	app.Handler = http_controllers.WithCORS(router, cfg.HTTP.CORSAllowedOrigins)

	return app, nil
}

// Shutdown stops background work and closes the database. ctx bounds how long
// running tasks may take to finish.
func (a *App) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.taskClient != nil {
		a.taskClient.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.taskClient != nil {
		if err := a.taskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	a.auditService.Wait()
	if err := a.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: handler,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background workers stop after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting %s v%s", cfg.Global.AppName, version)

	if !cfg.Global.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	Serve(app.Handler, cfg, app.Shutdown)
}
