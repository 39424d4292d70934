package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/stemsi/jinro-backend/internal/database"
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/repository"
	"github.com/stemsi/jinro-backend/internal/visual"
)

var exportOutFlag string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the PostgreSQL record sets with the CSV files in the data directory",
	Long: `Reads university_info.csv, major_info.csv and admission_rate.csv from DATA_DIR (or --data-dir),
validates every row, then replaces the universities, majors and admission_rates
tables in a single transaction. Run "migrate up" first.`,
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the record sets to an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutFlag, "out", "o", "counsel-data.xlsx", "Output workbook path")
	rootCmd.AddCommand(importCmd, exportCmd)
}

// postgres returns the shared pool, connecting even when the configured
// backends do not otherwise need one.
func (a *app) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if a.backends.Pool != nil {
		return a.backends.Pool, nil
	}
	pool, err := database.NewPostgresPool(ctx, a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.backends.Pool = pool
	return pool, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := dataset.LoadCSV(a.cfg.DataDir)
	if err != nil {
		return err
	}
	pool, err := a.postgres(ctx)
	if err != nil {
		return err
	}
	if err := repository.NewDatasetRepository(pool).Import(ctx, store); err != nil {
		return err
	}

	st := store.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "가져오기 완료: 대학 %d곳, 학과 %d개, 진학률 %d개 연도\n",
		st.UniversityCount, st.MajorCount, len(store.AdmissionRates()))
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.dataset(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOutFlag)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := visual.WriteWorkbook(f, store); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s 에 저장했습니다.\n", exportOutFlag)
	return nil
}
