// Package runner provides the check execution engine: a strictly
// sequential, single-pass driver. Each check runs through its
// full lifecycle with a bounded timeout; a failing check never
// aborts the run. A fixed delay can be inserted between checks
// to avoid overwhelming a shared backend.
package runner

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/logging"
	"digital.vasic.careerquest/pkg/registry"
)

// Runner defines the interface for check execution.
type Runner interface {
	// Run executes a single check by ID.
	Run(
		ctx context.Context,
		id check.ID,
		config *check.Config,
	) (*check.Result, error)

	// RunAll executes all registered checks in dependency
	// order.
	RunAll(
		ctx context.Context,
		config *check.Config,
	) ([]*check.Result, error)

	// RunSequence executes the given checks in order,
	// verifying that dependencies have passed.
	RunSequence(
		ctx context.Context,
		ids []check.ID,
		config *check.Config,
	) ([]*check.Result, error)
}

// Hook is a function invoked before or after check execution.
type Hook func(
	ctx context.Context,
	c check.Check,
	cfg *check.Config,
) error

// ResultHook is invoked with each completed result, in run
// order. Used for immediate per-check reporting and monitoring.
type ResultHook func(result *check.Result)

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	registry    registry.Registry
	logger      logging.Logger
	timeout     time.Duration
	delay       time.Duration
	preHooks    []Hook
	postHooks   []Hook
	resultHooks []ResultHook
	metrics     *RunMetrics
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...Option) *DefaultRunner {
	r := &DefaultRunner{
		registry: registry.NewRegistry(),
		logger:   logging.NewNullLogger(),
		timeout:  15 * time.Second,
		metrics:  NewRunMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Metrics returns the counters collected during runs.
func (r *DefaultRunner) Metrics() *RunMetrics {
	return r.metrics
}

// Run executes a single check by ID.
func (r *DefaultRunner) Run(
	ctx context.Context,
	id check.ID,
	config *check.Config,
) (*check.Result, error) {
	c, err := r.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get check: %w", err)
	}
	result := r.executeCheck(ctx, c, config)
	r.emit(result)
	return result, nil
}

// RunAll executes all registered checks in dependency order.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
	config *check.Config,
) ([]*check.Result, error) {
	ordered, err := r.registry.DependencyOrder()
	if err != nil {
		return nil, fmt.Errorf("resolve dependency order: %w", err)
	}
	ids := make([]check.ID, len(ordered))
	for i, c := range ordered {
		ids[i] = c.ID()
	}
	return r.RunSequence(ctx, ids, config)
}

// RunSequence executes checks in the given order. A check whose
// dependency has not passed within this sequence is recorded as
// failed with a descriptive message and the run continues; one
// check's failure never halts the run.
func (r *DefaultRunner) RunSequence(
	ctx context.Context,
	ids []check.ID,
	config *check.Config,
) ([]*check.Result, error) {
	results := make([]*check.Result, 0, len(ids))
	passed := make(map[check.ID]bool, len(ids))

	for i, id := range ids {
		if i > 0 && r.delay > 0 {
			if err := sleepCtx(ctx, r.delay); err != nil {
				return results, err
			}
		}

		c, err := r.registry.Get(id)
		if err != nil {
			return results, fmt.Errorf("get check %s: %w", id, err)
		}

		if unmet := firstUnmetDep(c, passed); unmet != "" {
			result := &check.Result{
				CheckID:   id,
				CheckName: c.Name(),
				Status:    check.StatusFailed,
				StartTime: time.Now(),
				EndTime:   time.Now(),
				Error: fmt.Sprintf(
					"unmet dependency: %s did not pass", unmet,
				),
			}
			r.logEvent("check_dependency_unmet", id,
				logging.F("dependency", unmet),
			)
			r.metrics.RecordExecution(id, result.Status, 0)
			results = append(results, result)
			r.emit(result)
			continue
		}

		cfg := *config
		cfg.CheckID = id

		result := r.executeCheck(ctx, c, &cfg)
		r.metrics.RecordExecution(id, result.Status, result.Duration)
		for _, a := range result.Assertions {
			r.metrics.RecordAssertion(id, a.Passed)
		}

		results = append(results, result)
		r.emit(result)

		if result.Status == check.StatusPassed {
			passed[id] = true
		}
	}

	return results, nil
}

// executeCheck runs a single check through its full lifecycle:
// pre-hooks -> configure -> validate -> execute with timeout ->
// post-hooks -> cleanup. It always returns a terminal result.
func (r *DefaultRunner) executeCheck(
	ctx context.Context,
	c check.Check,
	config *check.Config,
) *check.Result {
	result := &check.Result{
		CheckID:   c.ID(),
		CheckName: c.Name(),
		Status:    check.StatusRunning,
		StartTime: time.Now(),
		Outputs:   make(map[string]string),
	}

	finish := func(status, errMsg string) *check.Result {
		result.Status = status
		result.Error = errMsg
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
		return result
	}

	r.logEvent("check_started", c.ID(),
		logging.F("check_name", c.Name()),
	)

	for _, hook := range r.preHooks {
		if err := hook(ctx, c, config); err != nil {
			return finish(check.StatusError,
				fmt.Sprintf("pre-hook failed: %v", err))
		}
	}

	if err := c.Configure(config); err != nil {
		r.logEvent("check_error", c.ID(), logging.Err(err))
		return finish(check.StatusError,
			fmt.Sprintf("configuration failed: %v", err))
	}

	// A validation failure is a missing precondition: the check
	// fails fast with a descriptive message instead of faulting.
	if err := c.Validate(ctx); err != nil {
		r.logEvent("check_precondition_failed", c.ID(),
			logging.Err(err),
		)
		return finish(check.StatusFailed, err.Error())
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = r.timeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	execResult, execErr := c.Execute(execCtx)

	if execCtx.Err() == context.DeadlineExceeded {
		r.logEvent("check_timeout", c.ID(),
			logging.F("timeout_seconds", timeout.Seconds()),
		)
		_ = c.Cleanup(ctx)
		return finish(check.StatusTimedOut,
			"check execution timed out")
	}

	if execErr != nil {
		r.logEvent("check_error", c.ID(), logging.Err(execErr))
		_ = c.Cleanup(ctx)
		return finish(check.StatusError,
			fmt.Sprintf("execution failed: %v", execErr))
	}

	if execResult != nil {
		result.Assertions = execResult.Assertions
		if execResult.Outputs != nil {
			result.Outputs = execResult.Outputs
		}
		if execResult.Error != "" {
			result.Error = execResult.Error
		}
	}

	// Final status comes from the assertions, unless the check
	// already reported a failure detail.
	status := check.StatusPassed
	if result.Error != "" {
		status = check.StatusFailed
	}
	for _, a := range result.Assertions {
		if !a.Passed {
			status = check.StatusFailed
			break
		}
	}
	finish(status, result.Error)

	for _, hook := range r.postHooks {
		if err := hook(ctx, c, config); err != nil {
			r.logEvent("post_hook_warning", c.ID(),
				logging.Err(err),
			)
		}
	}

	r.logEvent("check_completed", c.ID(),
		logging.F("status", result.Status),
		logging.F("duration_seconds", result.Duration.Seconds()),
	)

	if err := c.Cleanup(ctx); err != nil {
		r.logEvent("cleanup_warning", c.ID(), logging.Err(err))
	}

	return result
}

// emit delivers a result to every result hook.
func (r *DefaultRunner) emit(result *check.Result) {
	for _, hook := range r.resultHooks {
		hook(result)
	}
}

// logEvent emits a structured log entry.
func (r *DefaultRunner) logEvent(
	event string,
	id check.ID,
	fields ...logging.Field,
) {
	all := append(
		[]logging.Field{logging.F("check_id", string(id))},
		fields...,
	)
	r.logger.Info(event, all...)
}

// firstUnmetDep returns the first dependency of c that has not
// passed, or empty when all are met.
func firstUnmetDep(
	c check.Check,
	passed map[check.ID]bool,
) check.ID {
	for _, dep := range c.Dependencies() {
		if !passed[dep] {
			return dep
		}
	}
	return ""
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
