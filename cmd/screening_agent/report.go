package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/bias"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/learning"
	"github.com/jonathan/resume-screener/internal/types"
)

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Compute the bias and performance report over stored decisions",
	Long:  "Recomputes the derived bias report and performance metrics from persisted screening decisions and learning feedback. The report is a view; nothing is written.",
	RunE:  runReportCmd,
}

var (
	reportLimit       int
	reportDatabaseURL string
)

func init() {
	reportCommand.Flags().IntVar(&reportLimit, "limit", 0, "Restrict to the most recent N decisions (0 = all)")
	reportCommand.Flags().StringVar(&reportDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(reportCommand)
}

func runReportCmd(_ *cobra.Command, _ []string) error {
	databaseURL := reportDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	decisions, err := database.ListDecisions(ctx, reportLimit)
	if err != nil {
		return err
	}
	history, err := database.ListFeedback(ctx)
	if err != nil {
		return err
	}

	store := learning.NewStore(history)
	accuracyRate, hiringSuccessRate := store.Metrics()

	out := struct {
		BiasReport types.BiasReport         `json:"bias_report"`
		Metrics    types.PerformanceMetrics `json:"performance_metrics"`
		ComputedAt time.Time                `json:"computed_at"`
	}{
		BiasReport: bias.Report(decisions),
		Metrics: bias.Metrics(decisions, types.PerformanceMetrics{
			AccuracyRate:      accuracyRate,
			HiringSuccessRate: hiringSuccessRate,
		}, 0),
		ComputedAt: time.Now().UTC(),
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
