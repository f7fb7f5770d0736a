package runner

import (
	"time"

	"digital.vasic.careerquest/pkg/logging"
	"digital.vasic.careerquest/pkg/registry"
)

// Option configures a DefaultRunner.
type Option func(*DefaultRunner)

// WithRegistry sets the check registry used by the runner.
func WithRegistry(reg registry.Registry) Option {
	return func(r *DefaultRunner) {
		r.registry = reg
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) Option {
	return func(r *DefaultRunner) {
		r.logger = logger
	}
}

// WithTimeout sets the default execution timeout for checks
// that do not specify their own.
func WithTimeout(timeout time.Duration) Option {
	return func(r *DefaultRunner) {
		r.timeout = timeout
	}
}

// WithDelay sets a fixed pause inserted between consecutive
// checks. Zero disables the pause.
func WithDelay(delay time.Duration) Option {
	return func(r *DefaultRunner) {
		r.delay = delay
	}
}

// WithPreHook adds a pre-execution hook to the runner.
func WithPreHook(h Hook) Option {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-execution hook to the runner.
func WithPostHook(h Hook) Option {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithResultHook adds a hook invoked with every completed
// result in run order.
func WithResultHook(h ResultHook) Option {
	return func(r *DefaultRunner) {
		r.resultHooks = append(r.resultHooks, h)
	}
}
