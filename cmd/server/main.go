package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/counsel"
	"github.com/stemsi/jinro-backend/internal/database"
	"github.com/stemsi/jinro-backend/internal/handler"
	"github.com/stemsi/jinro-backend/internal/logger"
	"github.com/stemsi/jinro-backend/internal/repository"
	"github.com/stemsi/jinro-backend/internal/router"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/validator"
	"github.com/stemsi/jinro-backend/internal/visual"
	"github.com/stemsi/jinro-backend/internal/worker"
)

// memoryQueueSize bounds pending history writes when Redis is not configured.
const memoryQueueSize = 256

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("data_source", cfg.DataSource).
		Str("history_backend", cfg.HistoryBackend).
		Msg("Starting Jinro counselling backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL / Redis (optional) ──────────────────────
	backends, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to backends")
	}
	defer backends.Close()

	// ─── Load Dataset ──────────────────────────────────────────────────
	store, err := repository.LoadDataset(ctx, cfg, backends.Pool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	stats := store.Stats()
	log.Info().
		Int("universities", stats.UniversityCount).
		Int("majors", stats.MajorCount).
		Int("latest_year", stats.LatestYear).
		Msg("Dataset loaded")

	// ─── Initialize Repositories ───────────────────────────────────────
	historyStore, err := repository.NewHistoryStore(cfg, backends.Pool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}
	sessionRepo := repository.NewSessionStore(cfg, backends.Redis)

	// ─── Initialize History Queue ──────────────────────────────────────
	var queue worker.Queue
	if backends.Redis != nil {
		queue = worker.NewRedisQueue(backends.Redis, config.WorkerKey.PersistHistoryQueue)
	} else {
		queue = worker.NewMemoryQueue(memoryQueueSize)
	}
	historyWorker := worker.NewHistoryWorker(queue, historyStore, log)

	// ─── Initialize Visualization ──────────────────────────────────────
	resolver := visual.NewResolver(store, cfg.ChartsEnabled)
	var renderer *visual.PNGRenderer
	if cfg.ChartsEnabled {
		renderer, err = visual.NewPNGRenderer(cfg.ChartFontPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize chart renderer")
		}
	}

	// ─── Initialize Services ──────────────────────────────────────────
	sessionService := service.NewSessionService(sessionRepo)
	chatService := service.NewChatService(counsel.NewResponder(store, nil), resolver, historyWorker, log)
	quizService := service.NewQuizService(nil, store)
	historyService := service.NewHistoryService(historyStore)
	dataService := service.NewDataService(store, resolver, renderer, backends.Redis, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Session:       handler.NewSessionHandler(sessionService, dataService),
		Chat:          handler.NewChatHandler(chatService, sessionService, log),
		Quiz:          handler.NewQuizHandler(quizService, sessionService, log),
		Visualization: handler.NewVisualizationHandler(dataService),
		History:       handler.NewHistoryHandler(historyService, log),
		Data:          handler.NewDataHandler(dataService, log),
		WS:            handler.NewWSHandler(chatService, sessionService, log, cfg.AllowedOrigins),
		System:        handler.NewSystemHandler(backends.Redis, backends.Pool, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		historyWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, sessionService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the history worker and wait for its queue to drain.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("History worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
