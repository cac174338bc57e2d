package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/assessment"
	"github.com/jonathan/resume-screener/internal/automation"
	"github.com/jonathan/resume-screener/internal/bias"
	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/decision"
	"github.com/jonathan/resume-screener/internal/learning"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/logger"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/source"
	"github.com/jonathan/resume-screener/internal/types"
)

var screenCommand = &cobra.Command{
	Use:   "screen",
	Short: "Screen a candidate batch against a job requirement",
	Long: `Runs the full screening pipeline: inference per candidate, learning
adjustment, automation rule evaluation, lifecycle transitions, and a bias
report over the batch.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScreenCmd,
}

var (
	screenConfigPath  string
	screenCandidates  string
	screenJob         string
	screenRules       string
	screenIntake      string
	screenAPIKey      string
	screenModel       string
	screenConcurrency int
	screenInterval    int
	screenVerbose     bool
	screenJSONLogs    bool
	screenDatabaseURL string
)

func init() {
	screenCommand.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	screenCommand.Flags().StringVarP(&screenCandidates, "candidates", "c", "", "Path to candidate batch JSON file")
	screenCommand.Flags().StringVarP(&screenJob, "job", "j", "", "Path to job requirement JSON file")
	screenCommand.Flags().StringVarP(&screenRules, "rules", "r", "", "Path to automation rule snapshot (defaults to built-in rules)")
	screenCommand.Flags().StringVar(&screenIntake, "intake", "", "Path to shared intake document text file (optional)")
	screenCommand.Flags().StringVar(&screenModel, "model", "", "Model tier: lite, standard, advanced")
	screenCommand.Flags().IntVar(&screenConcurrency, "concurrency", 0, "Maximum in-flight inference calls")
	screenCommand.Flags().IntVar(&screenInterval, "min-interval-ms", 0, "Minimum spacing between inference calls in milliseconds")
	screenCommand.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print detailed debug information")
	screenCommand.Flags().BoolVar(&screenJSONLogs, "json-logs", false, "Emit logs as JSON")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	screenCommand.Flags().StringVar(&screenAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for decision persistence and actuator audit records
	screenCommand.Flags().StringVar(&screenDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(screenCommand)
}

func runScreenCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedScreenConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(screenJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inputs
	candidates, err := source.LoadCandidates(cfg.Candidates)
	if err != nil {
		return err
	}
	job, err := source.LoadJob(cfg.Job)
	if err != nil {
		return err
	}
	intakeText, err := source.LoadIntake(cfg.Intake)
	if err != nil {
		return err
	}

	var rules []types.AutomationRule
	if cfg.Rules != "" {
		rules, err = source.LoadRules(cfg.Rules, schemas.ResolveSchemaPath(source.RulesSchemaPath))
		if err != nil {
			return err
		}
	}

	// Collaborators
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create inference client: %w", err)
	}
	defer func() { _ = client.Close() }()

	adapter := assessment.NewAdapter(client)
	if cfg.Model != "" {
		adapter = adapter.WithTier(llm.ModelTier(cfg.Model))
	}

	store := learning.NewStore(nil)
	actuators := automation.NewLogActuators(log)
	var writer decision.Writer

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		} else {
			defer database.Close()
			writer = database
			actuators = db.NewActuatorStore(database).Actuators()

			history, err := database.ListFeedback(ctx)
			if err != nil {
				log.Warn("failed to load learning history", zap.Error(err))
			} else {
				store = learning.NewStore(history)
				log.Info("seeded learning store", zap.Int("records", store.Len()))
			}
		}
	}

	engine := decision.NewEngine(adapter, store, writer, log)
	auto := automation.NewEngine(actuators, log)
	runner := pipeline.NewRunner(engine, auto, pipeline.Options{
		Concurrency: cfg.Concurrency,
		MinInterval: time.Duration(cfg.MinIntervalMS) * time.Millisecond,
		Rules:       rules,
	}, log)

	submissions := make([]pipeline.Submission, len(candidates))
	for i := range candidates {
		submissions[i] = pipeline.Submission{Candidate: candidates[i], IntakeText: intakeText}
	}

	started := time.Now()
	result, runErr := runner.Run(ctx, job, submissions)

	// A cancelled run still reports what it computed.
	summary := screenSummary(result, store, started)
	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode batch summary: %w", err)
	}
	fmt.Println(string(encoded))

	return runErr
}

func mergedScreenConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if screenConfigPath != "" {
		loaded, err := config.LoadConfig(screenConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// CLI overrides take priority, but only when explicitly set.
	if cmd.Flags().Changed("candidates") {
		cfg.Candidates = screenCandidates
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = screenJob
	}
	if cmd.Flags().Changed("rules") {
		cfg.Rules = screenRules
	}
	if cmd.Flags().Changed("intake") {
		cfg.Intake = screenIntake
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = screenModel
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = screenConcurrency
	}
	if cmd.Flags().Changed("min-interval-ms") {
		cfg.MinIntervalMS = screenInterval
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = screenVerbose
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = screenAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = screenDatabaseURL
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Model:         "standard",
		Concurrency:   4,
		MinIntervalMS: 1000,
	})

	if cfg.Candidates == "" {
		return cfg, fmt.Errorf("--candidates is required (via flag or config)")
	}
	if cfg.Job == "" {
		return cfg, fmt.Errorf("--job is required (via flag or config)")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return cfg, cfg.Validate()
}

type batchSummary struct {
	RunID      string                     `json:"run_id"`
	Decisions  []types.ScreeningDecision  `json:"decisions"`
	Candidates []types.Candidate          `json:"candidates"`
	Buckets    pipeline.ScoreBuckets      `json:"score_buckets"`
	Failures   []string                   `json:"failures,omitempty"`
	BiasReport types.BiasReport           `json:"bias_report"`
	Metrics    types.PerformanceMetrics   `json:"performance_metrics"`
	Actions    []executedActionSummary    `json:"executed_actions,omitempty"`
}

type executedActionSummary struct {
	RuleID string `json:"rule_id"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

func screenSummary(result *pipeline.BatchResult, store *learning.Store, started time.Time) batchSummary {
	summary := batchSummary{
		RunID:      result.RunID.String(),
		Decisions:  result.Decisions,
		Candidates: result.Candidates,
		Buckets:    result.Buckets,
		BiasReport: bias.Report(result.Decisions),
	}

	avgProcessing := time.Duration(0)
	if n := len(result.Decisions); n > 0 {
		avgProcessing = time.Since(started) / time.Duration(n)
	}
	accuracyRate, hiringSuccessRate := store.Metrics()
	summary.Metrics = bias.Metrics(result.Decisions, types.PerformanceMetrics{
		AccuracyRate:      accuracyRate,
		HiringSuccessRate: hiringSuccessRate,
	}, avgProcessing)

	for _, failure := range result.Failures {
		summary.Failures = append(summary.Failures,
			fmt.Sprintf("%s: %v", failure.CandidateID, failure.Err))
	}
	for _, action := range result.Actions {
		entry := executedActionSummary{RuleID: action.RuleID, Action: string(action.Action.Type)}
		if action.Err != nil {
			entry.Error = action.Err.Error()
		}
		summary.Actions = append(summary.Actions, entry)
	}
	return summary
}
