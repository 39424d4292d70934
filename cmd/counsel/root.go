package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/database"
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/history"
	"github.com/stemsi/jinro-backend/internal/logger"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/repository"
)

var (
	logLevelFlag string
	dataDirFlag  string
	jsonFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "counsel",
	Short: "진로 상담 챗봇 터미널 클라이언트",
	Long: `counsel runs the university counselling assistant in a terminal and manages
its data: interactive chat and aptitude quiz, chat history reports, and
moving the record sets between CSV files, PostgreSQL and Excel.

Configuration comes from the same environment variables (and .env) as the server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory with the CSV record sets (overrides DATA_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print machine-readable JSON where supported")
}

// app is what a subcommand needs from configuration and the backends.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	backends *database.Backends
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	// Logs go to stderr so the conversation on stdout stays readable.
	log := logger.SetupWriter(logLevelFlag, "pretty", os.Stderr)

	backends, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, backends: backends}, nil
}

func (a *app) Close() { a.backends.Close() }

func (a *app) dataset(ctx context.Context) (*dataset.Store, error) {
	store, err := repository.LoadDataset(ctx, a.cfg, a.backends.Pool)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return store, nil
}

func (a *app) history() (history.Store, error) {
	return repository.NewHistoryStore(a.cfg, a.backends.Pool)
}

// directHistory appends synchronously; the terminal client has no worker.
type directHistory struct{ store history.Store }

func (d directHistory) Enqueue(ctx context.Context, entry model.ChatHistoryEntry) error {
	return d.store.Append(ctx, entry)
}
