// Package registry provides check registration, discovery, and
// dependency-ordered retrieval.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.careerquest/pkg/check"
)

// Registry defines the interface for managing checks.
type Registry interface {
	// Register adds a check implementation.
	Register(c check.Check) error

	// Get retrieves a check by ID.
	Get(id check.ID) (check.Check, error)

	// List returns all registered checks sorted by ID.
	List() []check.Check

	// ListByCategory returns checks matching the given
	// category.
	ListByCategory(category string) []check.Check

	// DependencyOrder returns checks in topological
	// (dependency) order.
	DependencyOrder() ([]check.Check, error)

	// ValidateDependencies checks that every dependency
	// referenced by a check is also registered.
	ValidateDependencies() error

	// Clear removes all checks.
	Clear()

	// Count returns the number of registered checks.
	Count() int
}

// DefaultRegistry is the standard Registry implementation.
// It is safe for concurrent use.
type DefaultRegistry struct {
	mu     sync.RWMutex
	checks map[check.ID]check.Check
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		checks: make(map[check.ID]check.Check),
	}
}

// Register adds a check to the registry. Returns an error if a
// check with the same ID is already registered.
func (r *DefaultRegistry) Register(c check.Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if _, exists := r.checks[id]; exists {
		return fmt.Errorf("check already registered: %s", id)
	}
	r.checks[id] = c
	return nil
}

// Get retrieves a check by ID.
func (r *DefaultRegistry) Get(id check.ID) (check.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.checks[id]
	if !exists {
		return nil, fmt.Errorf("check not found: %s", id)
	}
	return c, nil
}

// List returns all registered checks sorted by ID.
func (r *DefaultRegistry) List() []check.Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]check.Check, 0, len(r.checks))
	for _, c := range r.checks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// ListByCategory returns checks matching the given category,
// sorted by ID.
func (r *DefaultRegistry) ListByCategory(
	category string,
) []check.Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []check.Check
	for _, c := range r.checks {
		if c.Category() == category {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// DependencyOrder returns checks in topological order using
// Kahn's algorithm. Returns an error if a dependency cycle is
// detected.
func (r *DefaultRegistry) DependencyOrder() ([]check.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return topologicalSort(r.checks)
}

// ValidateDependencies checks that every dependency referenced
// by a registered check is also registered. Returns the first
// missing dependency found.
func (r *DefaultRegistry) ValidateDependencies() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, c := range r.checks {
		for _, dep := range c.Dependencies() {
			if _, exists := r.checks[dep]; !exists {
				return fmt.Errorf(
					"check %s has unregistered dependency: %s",
					id, dep,
				)
			}
		}
	}
	return nil
}

// Clear removes all checks.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = make(map[check.ID]check.Check)
}

// Count returns the number of registered checks.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}
