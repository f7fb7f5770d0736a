// Package check defines the conformance check abstraction. Each
// check goes through a lifecycle: Configure -> Validate ->
// Execute -> Cleanup. Checks share one Session for the run and
// express ordering constraints via ID dependencies resolved by
// the runner.
package check

import "context"

// ID uniquely identifies a check.
type ID string

// Check is the interface every conformance check implements.
type Check interface {
	// ID returns the unique identifier for this check.
	ID() ID

	// Name returns the human-readable name of this check.
	Name() string

	// Description returns what this check verifies.
	Description() string

	// Category returns the category grouping for this check
	// (e.g., "core", "gamification", "roadmaps").
	Category() string

	// Dependencies returns the IDs of checks that must have
	// passed before this check can execute.
	Dependencies() []ID

	// Configure applies runtime configuration. Must be called
	// before Validate or Execute.
	Configure(config *Config) error

	// Validate checks that preconditions are met, including
	// session state populated by upstream checks.
	Validate(ctx context.Context) error

	// Execute runs the check and returns its result.
	Execute(ctx context.Context) (*Result, error)

	// Cleanup releases resources allocated during Configure
	// or Execute.
	Cleanup(ctx context.Context) error
}
