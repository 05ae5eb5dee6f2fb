package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"meterportal/internal/auth"
	"meterportal/internal/config"
	"meterportal/internal/database"
	"meterportal/internal/database/migration"
	handlers "meterportal/internal/http/handler"
	"meterportal/internal/http/middleware"
	"meterportal/internal/logging"
	"meterportal/internal/otel"
	"meterportal/internal/repository/postgres"
	"meterportal/internal/service"
	"meterportal/internal/storage"
	"meterportal/internal/warehouse"
)

// @title Meter Portal API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		logging.New(time.UTC).Fatal("config_load_failed", zap.Error(err))
	}

	log := logging.New(cfg.Location())
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_failed", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// PostgreSQL holds the participant group memberships
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	// Participant buckets, reached through the S3-compatible endpoint
	objStore, err := storage.NewMinIO(cfg.Storage)
	if err != nil {
		return err
	}

	wh := warehouse.NewBigQuery(cfg.Warehouse)
	defer func() {
		if err := wh.Close(); err != nil {
			log.Error("warehouse_close_failed", zap.Error(err))
		}
	}()
	catalog, err := warehouse.NewCatalog(cfg.Warehouse.Dataset)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.Issuer, cfg.Auth.SessionTTL, time.Now)
	if err != nil {
		return err
	}
	verifier := auth.NewTokenVerifier(cfg.Auth.TokenInfoURL, 10*time.Second, cfg.Auth.ClientID)

	modelMetrics, err := service.NewModelMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	// Initialize repositories and services
	groupRepo := postgres.NewGroupPostgres(db)
	accessSvc := service.NewAccessService(verifier, groupRepo, sessions, log)
	participantSvc := service.NewParticipantService(objStore, wh, catalog, log, service.ParticipantOptions{
		DashboardURL: cfg.Portal.DashboardURL,
		Concurrency:  cfg.Portal.Concurrency,
		Metrics:      modelMetrics,
	})
	portalSvc := service.NewPortalService(accessSvc, participantSvc, cfg.Portal.Projects, cfg.Portal.Concurrency, time.Now, log)
	dashboardSvc := service.NewDashboardService(accessSvc, wh, catalog, cfg.Portal.Projects, cfg.Portal.DashboardFor, log)
	uploadSvc := service.NewUploadService(objStore, accessSvc, cfg.Portal.Projects, cfg.Portal.PresignExpiry, time.Now, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 * 1024 * 1024,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, handlers.Services{
		Access:     accessSvc,
		Portal:     portalSvc,
		Dashboards: dashboardSvc,
		Uploads:    uploadSvc,
		Sessions:   sessions,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.SwaggerUI(cfg.AppHost))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}
