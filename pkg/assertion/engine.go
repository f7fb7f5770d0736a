package assertion

import (
	"fmt"
	"sync"
)

// Engine evaluates assertions using a registry of evaluator
// functions. It is safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewEngine creates an Engine with all built-in evaluators
// pre-registered.
func NewEngine() *Engine {
	e := &Engine{
		evaluators: make(map[string]Evaluator),
	}
	e.registerDefaults()
	return e
}

// registerDefaults registers the built-in evaluators.
func (e *Engine) registerDefaults() {
	e.evaluators["equals"] = evaluateEquals
	e.evaluators["not_empty"] = evaluateNotEmpty
	e.evaluators["one_of"] = evaluateOneOf
	e.evaluators["positive"] = evaluatePositive
	e.evaluators["min_value"] = evaluateMinValue
	e.evaluators["exact_count"] = evaluateExactCount
	e.evaluators["min_count"] = evaluateMinCount
	e.evaluators["has_keys"] = evaluateHasKeys
	e.evaluators["url_prefix"] = evaluateURLPrefix
	e.evaluators["no_duplicates"] = evaluateNoDuplicates
	e.evaluators["covers_all"] = evaluateCoversAll
	e.evaluators["contains"] = evaluateContains
}

// Register adds a custom evaluator for the given assertion type.
// Returns an error if the type is already registered.
func (e *Engine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}
	e.evaluators[assertionType] = evaluator
	return nil
}

// HasEvaluator reports whether an evaluator is registered for
// the given assertion type.
func (e *Engine) HasEvaluator(assertionType string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}

// Evaluate runs a single assertion against the provided value.
func (e *Engine) Evaluate(
	assertion Definition,
	value any,
) Result {
	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	if !exists {
		return Result{
			Type:   assertion.Type,
			Target: assertion.Target,
			Passed: false,
			Message: fmt.Sprintf(
				"unknown assertion type: %s", assertion.Type,
			),
		}
	}

	passed, message := evaluator(assertion, value)

	return Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Expected: assertion.Value,
		Actual:   value,
		Passed:   passed,
		Message:  message,
	}
}

// EvaluateAll runs multiple assertions against a map of named
// values. Each assertion's Target field is used as the key into
// the values map. A missing target fails the assertion.
func (e *Engine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))
	for _, a := range assertions {
		value, ok := values[a.Target]
		if !ok {
			results = append(results, Result{
				Type:   a.Type,
				Target: a.Target,
				Passed: false,
				Message: fmt.Sprintf(
					"target not found: %s", a.Target,
				),
			})
			continue
		}
		results = append(results, e.Evaluate(a, value))
	}
	return results
}
