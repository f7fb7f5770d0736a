package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds runtime configuration for a conformance run.
// Values come from defaults, an optional .env file, and the
// process environment, in that order of precedence.
type Settings struct {
	// BaseURL is the root URL of the backend under test.
	BaseURL string
	// Timeout bounds each individual check execution.
	Timeout time.Duration
	// Delay is the pause between consecutive checks.
	Delay time.Duration
	// ResultsDir is where per-check and summary artifacts go.
	ResultsDir string
	// HistoryDB is the path of the SQLite run history database.
	// Empty disables history recording.
	HistoryDB string
	// MonitorAddr is the listen address of the live monitor
	// server. Empty disables the monitor.
	MonitorAddr string
	// Verbose enables debug-level console logging.
	Verbose bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		BaseURL:    "http://localhost:8000",
		Timeout:    15 * time.Second,
		Delay:      time.Second,
		ResultsDir: "results",
		HistoryDB:  "results/history.db",
	}
}

// Load builds Settings from defaults, the .env file at envPath
// (skipped silently when missing), and the process environment.
func Load(envPath string) (Settings, error) {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			// godotenv never overwrites variables already set in
			// the environment, which keeps OS env precedence.
			if err := godotenv.Load(envPath); err != nil {
				return Settings{}, fmt.Errorf("load env file %s: %w", envPath, err)
			}
		}
	}

	s := Defaults()
	s.BaseURL = getString("CAREERQUEST_BASE_URL", s.BaseURL)
	s.ResultsDir = getString("CAREERQUEST_RESULTS_DIR", s.ResultsDir)
	s.HistoryDB = getString("CAREERQUEST_HISTORY_DB", s.HistoryDB)
	s.MonitorAddr = getString("CAREERQUEST_MONITOR_ADDR", s.MonitorAddr)

	var err error
	if s.Timeout, err = getDuration("CAREERQUEST_TIMEOUT", s.Timeout); err != nil {
		return Settings{}, err
	}
	if s.Delay, err = getDuration("CAREERQUEST_DELAY", s.Delay); err != nil {
		return Settings{}, err
	}
	if s.Verbose, err = getBool("CAREERQUEST_VERBOSE", s.Verbose); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.Delay < 0 {
		return fmt.Errorf("delay cannot be negative, got %s", s.Delay)
	}
	return nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
