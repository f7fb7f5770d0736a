package registry

import (
	"fmt"
	"sort"
	"strings"

	"digital.vasic.careerquest/pkg/check"
)

// topologicalSort orders checks using Kahn's algorithm. It
// returns an error if a cycle is detected.
func topologicalSort(
	checks map[check.ID]check.Check,
) ([]check.Check, error) {
	inDegree := make(map[check.ID]int, len(checks))
	dependents := make(map[check.ID][]check.ID, len(checks))

	for id, c := range checks {
		if _, exists := inDegree[id]; !exists {
			inDegree[id] = 0
		}
		for _, dep := range c.Dependencies() {
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	// Seed the queue with zero-degree nodes, sorted for
	// deterministic output.
	var queue []check.ID
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		return queue[i] < queue[j]
	})

	ordered := make([]check.Check, 0, len(checks))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if c, exists := checks[id]; exists {
			ordered = append(ordered, c)
		}

		neighbours := dependents[id]
		sort.Slice(neighbours, func(i, j int) bool {
			return neighbours[i] < neighbours[j]
		})

		for _, dep := range neighbours {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(ordered) != len(checks) {
		cycle := detectCycle(checks)
		return nil, fmt.Errorf(
			"circular dependency detected: %s", cycle,
		)
	}

	return ordered, nil
}

// detectCycle returns a human-readable description of a
// dependency cycle in the check graph. It uses iterative DFS
// with three colouring states.
func detectCycle(checks map[check.ID]check.Check) string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	colour := make(map[check.ID]int, len(checks))

	// Sort IDs for deterministic cycle detection.
	ids := make([]check.ID, 0, len(checks))
	for id := range checks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	for _, startID := range ids {
		if colour[startID] != white {
			continue
		}

		type frame struct {
			id    check.ID
			deps  []check.ID
			index int
		}

		stack := []frame{
			{id: startID, deps: getDeps(checks, startID)},
		}
		colour[startID] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.index >= len(top.deps) {
				colour[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.index]
			top.index++

			if colour[dep] == gray {
				// Found a cycle, reconstruct the path.
				path := []string{string(dep)}
				for _, f := range stack {
					path = append(path, string(f.id))
					if f.id == dep {
						break
					}
				}
				return strings.Join(path, " -> ")
			}

			if colour[dep] == white {
				colour[dep] = gray
				stack = append(stack, frame{
					id:   dep,
					deps: getDeps(checks, dep),
				})
			}
		}
	}

	return "unknown cycle"
}

// getDeps returns the sorted dependency IDs for a check.
func getDeps(
	checks map[check.ID]check.Check,
	id check.ID,
) []check.ID {
	c, ok := checks[id]
	if !ok {
		return nil
	}
	deps := c.Dependencies()
	sort.Slice(deps, func(i, j int) bool {
		return deps[i] < deps[j]
	})
	return deps
}
