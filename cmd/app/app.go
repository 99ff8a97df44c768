package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"autoClassifieds/internal/config"
	"autoClassifieds/internal/database"
	handlers "autoClassifieds/internal/handler"
	"autoClassifieds/internal/metrics"
	"autoClassifieds/internal/repository"
	"autoClassifieds/internal/service"
	"autoClassifieds/internal/storage"
	"autoClassifieds/internal/worker"
)

type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Expiry   *worker.ExpiryReporter
	Handler  http.Handler
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("error initializing MinIO: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services, err := service.NewService(repo, cfg, minioClient, collector)
	if err != nil {
		db.CloseDB()
		return nil, err
	}

	expiry, err := worker.NewExpiryReporter(repo.Listing, collector, cfg.ExpiryReportSchedule)
	if err != nil {
		db.CloseDB()
		return nil, err
	}

	router := NewRouter(RouterDeps{
		Handlers: handlers.NewHandlers(services, cfg),
		Tokens:   services.Tokens,
		Status:   collector,
		Metrics:  metrics.Handler(registry),
		HTTP:     cfg.HTTP,
	})

	return &App{
		DB:       db,
		Repo:     repo,
		Services: services,
		Expiry:   expiry,
		Handler:  router,
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
