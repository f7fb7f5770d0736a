// Package assertion provides an extensible assertion evaluation
// engine for conformance checks. It ships with built-in
// evaluator types covering the advisor backend contract and
// supports custom evaluator registration.
package assertion

// Definition describes a single assertion to evaluate against a
// named check output.
type Definition struct {
	// Type is the evaluator type (e.g., "equals", "one_of",
	// "exact_count", "url_prefix").
	Type string `json:"type"`

	// Target is the name of the value to check.
	Target string `json:"target"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty"`

	// Values holds expected values for multi-value assertions
	// (e.g., "one_of", "covers_all", "has_keys").
	Values []any `json:"values,omitempty"`

	// Message is a human-readable description shown on failure.
	Message string `json:"message"`
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the value checked.
	Target string `json:"target"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`
}

// Evaluator is the function signature for assertion evaluators.
// It returns whether the assertion passed and a descriptive
// message.
type Evaluator func(assertion Definition, value any) (bool, string)
