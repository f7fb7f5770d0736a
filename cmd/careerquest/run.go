package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/config"
	"digital.vasic.careerquest/pkg/conformance"
	"digital.vasic.careerquest/pkg/contract"
	"digital.vasic.careerquest/pkg/history"
	"digital.vasic.careerquest/pkg/logging"
	"digital.vasic.careerquest/pkg/monitor"
	"digital.vasic.careerquest/pkg/report"
	"digital.vasic.careerquest/pkg/runner"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	BaseURL      string
	ContractFile string
	ResultsDir   string
	HistoryDB    string
	MonitorAddr  string
	Delay        time.Duration
	Timeout      time.Duration
	NoHistory    bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full conformance suite",
		Long: `Run every conformance check in suite order against
the backend. Checks run strictly sequentially with a fixed delay
between them; a failing check is recorded and the run continues.

The exit code is zero only when every check passed.

Example:
  careerquest run --base-url http://localhost:8000
  careerquest run --delay 500ms --monitor-addr :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuite(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(
		&opts.BaseURL, "base-url", "",
		"backend base URL (overrides CAREERQUEST_BASE_URL)",
	)
	cmd.Flags().StringVar(
		&opts.ContractFile, "contract", "",
		"YAML file overriding the default backend contract",
	)
	cmd.Flags().StringVar(
		&opts.ResultsDir, "results-dir", "",
		"directory for result artifacts",
	)
	cmd.Flags().StringVar(
		&opts.HistoryDB, "history-db", "",
		"SQLite file for run history",
	)
	cmd.Flags().StringVar(
		&opts.MonitorAddr, "monitor-addr", "",
		"listen address for the live monitor (disabled if empty)",
	)
	cmd.Flags().DurationVar(
		&opts.Delay, "delay", 0,
		"delay between checks (overrides CAREERQUEST_DELAY)",
	)
	cmd.Flags().DurationVar(
		&opts.Timeout, "timeout", 0,
		"per-check timeout (overrides CAREERQUEST_TIMEOUT)",
	)
	cmd.Flags().BoolVar(
		&opts.NoHistory, "no-history", false,
		"skip recording the run in the history database",
	)

	return cmd
}

func runSuite(parent context.Context, opts *RunOptions) error {
	ctx, stop := signal.NotifyContext(
		parent, os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	logger, err := buildLogger(settings)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	ct := contract.Default()
	if opts.ContractFile != "" {
		if ct, err = contract.Load(opts.ContractFile); err != nil {
			return fmt.Errorf("load contract: %w", err)
		}
	}

	client := advisor.NewClient(
		settings.BaseURL,
		advisor.WithTimeout(settings.Timeout),
		advisor.WithLogger(logger),
	)

	suite, err := conformance.NewSuite(
		client,
		conformance.WithLogger(logger),
		conformance.WithContract(ct),
	)
	if err != nil {
		return fmt.Errorf("build suite: %w", err)
	}

	collector := monitor.NewEventCollector()
	stopMonitor := startMonitor(ctx, settings, collector, logger)
	defer stopMonitor()

	printer := report.NewPrinter(os.Stdout)
	historyLog := filepath.Join(
		settings.ResultsDir, "history.jsonl",
	)

	r := runner.NewRunner(
		runner.WithRegistry(suite.Registry),
		runner.WithLogger(logger),
		runner.WithTimeout(settings.Timeout),
		runner.WithDelay(settings.Delay),
		runner.WithResultHook(func(result *check.Result) {
			printer.PrintResult(result)
			collector.Emit(monitor.EventFromResult(result))
			if settings.ResultsDir != "" {
				if err := report.AppendToHistory(
					historyLog, result,
				); err != nil {
					logger.Warn("append history",
						logging.Err(err))
				}
			}
		}),
	)

	cfg := &check.Config{
		ResultsDir: settings.ResultsDir,
		Timeout:    settings.Timeout,
		Verbose:    settings.Verbose,
	}

	fmt.Printf("Running conformance suite against %s\n\n",
		settings.BaseURL)

	results, err := r.RunSequence(
		ctx, conformance.DefaultOrder(), cfg,
	)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	summary := report.BuildRunSummary(results, settings.BaseURL)
	collector.Emit(monitor.CheckEvent{Type: monitor.EventRunDone})
	printer.PrintSummary(summary)

	if settings.ResultsDir != "" {
		if err := report.SaveRunSummary(
			summary, settings.ResultsDir,
		); err != nil {
			logger.Warn("save summary", logging.Err(err))
		}
	}

	if !opts.NoHistory && settings.HistoryDB != "" {
		if err := recordRun(settings.HistoryDB, summary); err != nil {
			logger.Warn("record history", logging.Err(err))
		}
	}

	if !summary.Succeeded() {
		return fmt.Errorf(
			"%d of %d checks failed",
			summary.FailedChecks, summary.TotalChecks,
		)
	}
	return nil
}

// loadSettings layers flag overrides on top of env settings.
func loadSettings(opts *RunOptions) (config.Settings, error) {
	settings, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Settings{}, err
	}
	if opts.BaseURL != "" {
		settings.BaseURL = opts.BaseURL
	}
	if opts.ResultsDir != "" {
		settings.ResultsDir = opts.ResultsDir
	}
	if opts.HistoryDB != "" {
		settings.HistoryDB = opts.HistoryDB
	}
	if opts.MonitorAddr != "" {
		settings.MonitorAddr = opts.MonitorAddr
	}
	if opts.Delay > 0 {
		settings.Delay = opts.Delay
	}
	if opts.Timeout > 0 {
		settings.Timeout = opts.Timeout
	}
	if opts.Verbose {
		settings.Verbose = true
	}
	return settings, settings.Validate()
}

// buildLogger combines a console logger with a JSON file logger
// when a results directory is configured.
func buildLogger(
	settings config.Settings,
) (logging.Logger, error) {
	console := logging.NewConsoleLogger(settings.Verbose)
	if settings.ResultsDir == "" {
		return console, nil
	}

	if err := os.MkdirAll(settings.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	jsonLogger, err := logging.NewJSONLogger(logging.JSONConfig{
		OutputPath: filepath.Join(settings.ResultsDir, "run.log"),
		APIRequestLog: filepath.Join(
			settings.ResultsDir, "api_requests.jsonl",
		),
		APIResponseLog: filepath.Join(
			settings.ResultsDir, "api_responses.jsonl",
		),
		Level: logging.LevelDebug,
	})
	if err != nil {
		return nil, fmt.Errorf("create json logger: %w", err)
	}
	return logging.NewMultiLogger(console, jsonLogger), nil
}

// startMonitor starts the live monitor server when configured.
// The returned function stops it.
func startMonitor(
	ctx context.Context,
	settings config.Settings,
	collector *monitor.EventCollector,
	logger logging.Logger,
) func() {
	if settings.MonitorAddr == "" {
		return func() {}
	}

	dashboard := monitor.NewDashboardData(fmt.Sprintf(
		"run_%s", time.Now().Format("20060102_150405"),
	))
	server := monitor.NewWebSocketServer(
		settings.MonitorAddr, collector, dashboard,
	)
	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Warn("monitor server", logging.Err(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 2*time.Second,
		)
		defer cancel()
		_ = server.Stop(shutdownCtx)
	}
}

// recordRun persists the summary in the SQLite history store.
func recordRun(dbPath string, summary *report.RunSummary) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.SaveRun(summary)
}
