package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/C-Senanayake/CVision/internal/api"
	"github.com/C-Senanayake/CVision/internal/config"
	"github.com/C-Senanayake/CVision/internal/github"
	"github.com/C-Senanayake/CVision/internal/logger"
	"github.com/C-Senanayake/CVision/internal/pdf"
	"github.com/C-Senanayake/CVision/internal/repository"
	"github.com/C-Senanayake/CVision/internal/service"
	"github.com/C-Senanayake/CVision/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.FromEnv())
	logger.SetDefault(appLogger)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}

	docRepo := repository.NewDocumentRepository(db)
	jobRepo := repository.NewJobRepository(db)

	ctx := context.Background()
	blobStore, err := storage.NewBlobStore(ctx, &cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize blob store: %v", err)
	}

	githubClient := github.NewClient(&github.Config{
		BaseURL:   cfg.GitHub.BaseURL,
		Token:     cfg.GitHub.Token,
		Timeout:   time.Duration(cfg.GitHub.TimeoutSeconds) * time.Second,
		MaxRepos:  cfg.GitHub.MaxRepos,
		MaxEvents: cfg.GitHub.MaxEvents,
	})
	aggregator := github.NewAggregator(githubClient)

	enrichService := service.NewEnrichService(aggregator)
	extractionService := service.NewExtractionService(&cfg.LLM)
	scoreService := service.NewScoreService(docRepo, jobRepo, service.NewLLMScoreOracle(&cfg.LLM))
	mailService := service.NewMailService(&cfg.Mail, service.NewGraphSender(&cfg.Mail), docRepo)
	exportService := service.NewExportService(docRepo, jobRepo)

	ingestService := service.NewIngestService(
		docRepo,
		jobRepo,
		blobStore,
		pdf.NewExtractor(),
		extractionService,
		enrichService,
		scoreService,
		mailService,
	)

	router := api.SetupRouter(&api.Deps{
		Config:       cfg,
		Logger:       appLogger,
		Documents:    docRepo,
		Jobs:         jobRepo,
		Blobs:        blobStore,
		GitHubClient: githubClient,
		Ingest:       ingestService,
		Enrich:       enrichService,
		Score:        scoreService,
		Mail:         mailService,
		Export:       exportService,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting API server on port %d (mode: %s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited")
}
