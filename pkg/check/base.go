package check

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/logging"
)

// BaseCheck provides a reusable foundation for building checks
// using the template method pattern. Embed this struct and
// implement Execute with the check's own logic.
type BaseCheck struct {
	id           ID
	name         string
	description  string
	category     string
	dependencies []ID
	config       *Config
	client       *advisor.Client
	session      *Session
	logger       logging.Logger
	engine       *assertion.Engine
}

// NewBaseCheck creates a BaseCheck with the given identity
// fields. Client, session, logger, and engine are set later via
// setters, usually by the suite constructor.
func NewBaseCheck(
	id ID,
	name, description, category string,
	deps []ID,
) BaseCheck {
	if deps == nil {
		deps = []ID{}
	}
	return BaseCheck{
		id:           id,
		name:         name,
		description:  description,
		category:     category,
		dependencies: deps,
		logger:       logging.NewNullLogger(),
		engine:       assertion.NewEngine(),
	}
}

// ID returns the check identifier.
func (b *BaseCheck) ID() ID { return b.id }

// Name returns the check name.
func (b *BaseCheck) Name() string { return b.name }

// Description returns the check description.
func (b *BaseCheck) Description() string { return b.description }

// Category returns the check category.
func (b *BaseCheck) Category() string { return b.category }

// Dependencies returns the check dependency IDs.
func (b *BaseCheck) Dependencies() []ID { return b.dependencies }

// Config returns the current runtime configuration, or nil if
// Configure has not been called.
func (b *BaseCheck) Config() *Config { return b.config }

// Client returns the advisor API client.
func (b *BaseCheck) Client() *advisor.Client { return b.client }

// Session returns the shared run session.
func (b *BaseCheck) Session() *Session { return b.session }

// Logger returns the configured logger.
func (b *BaseCheck) Logger() logging.Logger { return b.logger }

// SetClient sets the advisor API client used by this check.
func (b *BaseCheck) SetClient(c *advisor.Client) { b.client = c }

// SetSession sets the shared session used by this check.
func (b *BaseCheck) SetSession(s *Session) { b.session = s }

// SetLogger sets the logger used by this check.
func (b *BaseCheck) SetLogger(l logging.Logger) { b.logger = l }

// SetEngine sets the assertion engine used by this check.
func (b *BaseCheck) SetEngine(e *assertion.Engine) { b.engine = e }

// Configure stores the runtime config and ensures the results
// directory exists when one is set.
func (b *BaseCheck) Configure(config *Config) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	b.config = config

	if dir := b.ResultsDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(
				"create results dir %s: %w", dir, err,
			)
		}
	}
	return nil
}

// Validate performs basic precondition checks. Override to add
// session preconditions; call BaseCheck.Validate first.
func (b *BaseCheck) Validate(_ context.Context) error {
	if b.config == nil {
		return fmt.Errorf("check %s: not configured", b.id)
	}
	if b.client == nil {
		return fmt.Errorf("check %s: no advisor client", b.id)
	}
	if b.session == nil {
		return fmt.Errorf("check %s: no session", b.id)
	}
	return nil
}

// Cleanup is a no-op by default. The logger and client are owned
// by the suite, not individual checks.
func (b *BaseCheck) Cleanup(_ context.Context) error { return nil }

// RequireSubject returns an error when no subject user exists,
// meaning the create-user check has not passed.
func (b *BaseCheck) RequireSubject() error {
	if !b.session.HasSubject() {
		return fmt.Errorf(
			"check %s: no subject user available "+
				"(create-user did not pass)", b.id,
		)
	}
	return nil
}

// RequireCatalog returns an error when the quiz catalog has not
// been cached, meaning the list-quizzes check has not passed.
func (b *BaseCheck) RequireCatalog() error {
	if !b.session.HasCatalog() {
		return fmt.Errorf(
			"check %s: quiz catalog not cached "+
				"(list-quizzes did not pass)", b.id,
		)
	}
	return nil
}

// ResultsDir returns the results directory path for this check,
// or empty when result files are disabled.
func (b *BaseCheck) ResultsDir() string {
	if b.config == nil || b.config.ResultsDir == "" {
		return ""
	}
	return filepath.Join(b.config.ResultsDir, string(b.id))
}

// EvaluateAll runs the given assertions against named values
// using the check's assertion engine.
func (b *BaseCheck) EvaluateAll(
	defs []assertion.Definition,
	values map[string]any,
) []assertion.Result {
	return b.engine.EvaluateAll(defs, values)
}

// CreateResult builds a Result pre-populated with this check's
// identity and the given status and timing.
func (b *BaseCheck) CreateResult(
	status string,
	start time.Time,
	assertions []assertion.Result,
	outputs map[string]string,
	errMsg string,
) *Result {
	end := time.Now()
	return &Result{
		CheckID:    b.id,
		CheckName:  b.name,
		Status:     status,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		Assertions: assertions,
		Outputs:    outputs,
		Error:      errMsg,
	}
}

// FailedResult builds a failed Result carrying the given detail.
func (b *BaseCheck) FailedResult(
	start time.Time, detail string,
) *Result {
	return b.CreateResult(StatusFailed, start, nil, nil, detail)
}

// WriteJSONResult serializes a Result to a JSON file in the
// check's results directory. A disabled results directory is
// not an error.
func (b *BaseCheck) WriteJSONResult(r *Result) error {
	dir := b.ResultsDir()
	if dir == "" {
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	path := filepath.Join(dir, "result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}
