package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/beatlicense-api/internal/application/export"
	"github.com/sangkips/beatlicense-api/internal/application/service"
	"github.com/sangkips/beatlicense-api/internal/config"
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"github.com/sangkips/beatlicense-api/internal/infrastructure/database"
	"github.com/sangkips/beatlicense-api/internal/infrastructure/repository"
	"github.com/sangkips/beatlicense-api/internal/logging"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/handler"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/routes"
	"github.com/sangkips/beatlicense-api/pkg/coverstore"
	"github.com/sangkips/beatlicense-api/pkg/utils"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, database.NewGormLogger(logger, cfg.App.Debug), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// production schemas are owned by the platform's migrations
	if !cfg.App.IsProduction() {
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	if err := database.SeedDefaults(db, cfg.Report.DefaultCover, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	policy, err := report.ParseUnresolvedPolicy(cfg.Report.UnresolvedEarners)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid REPORT_UNRESOLVED_EARNERS")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Repositories
	salesRepo := repository.NewSalesSourceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	covers, err := coverstore.NewStoreFromConfig(cfg.Storage.CoverType, cfg.Storage.Path, cfg.Storage.CoverBaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize cover store, PDF exports will have no cover")
		covers = coverstore.NewNoneStore()
	}

	// Services
	reportService := service.NewSalesReportService(
		salesRepo,
		cfg.Report.MembershipPriceIDs,
		report.AggregateOptions{Unresolved: policy},
		logger,
	)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	exportService := service.NewExportService(
		reportService,
		settingsService,
		covers,
		export.NewCSVExporter(cfg.Report.CurrencySymbol),
		export.NewPDFExporter(cfg.Report.CurrencySymbol, cfg.Report.TopEarners, cfg.App.Name),
		logger,
	)

	handlers := &routes.Handlers{
		Report:   handler.NewReportHandler(reportService, exportService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     logger,
		Done:       ctx.Done(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// large PDF exports take a while to write
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", port).
			Str("env", cfg.App.Env).
			Str("cover_store", covers.Name()).
			Str("unresolved_earners", policy.String()).
			Msgf("Starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info().Msg("Server exited")
}
