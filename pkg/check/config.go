package check

import "time"

// Config holds runtime configuration for a check execution.
type Config struct {
	// CheckID identifies which check this config is for.
	CheckID ID `json:"check_id"`

	// ResultsDir is the directory where result JSON files are
	// written. Empty disables result files.
	ResultsDir string `json:"results_dir"`

	// Timeout is the maximum duration for check execution.
	// A zero value means the runner default applies.
	Timeout time.Duration `json:"timeout"`

	// Verbose enables detailed logging output.
	Verbose bool `json:"verbose"`
}

// NewConfig creates a Config with defaults for a single check.
func NewConfig(id ID) *Config {
	return &Config{
		CheckID: id,
		Timeout: 15 * time.Second,
	}
}
