package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.careerquest/pkg/check"
)

// stubCheck is a minimal check.Check for registry tests.
type stubCheck struct {
	id       check.ID
	category string
	deps     []check.ID
}

func (s *stubCheck) ID() check.ID              { return s.id }
func (s *stubCheck) Name() string              { return string(s.id) }
func (s *stubCheck) Description() string       { return "" }
func (s *stubCheck) Category() string          { return s.category }
func (s *stubCheck) Dependencies() []check.ID  { return s.deps }
func (s *stubCheck) Configure(*check.Config) error {
	return nil
}
func (s *stubCheck) Validate(context.Context) error { return nil }
func (s *stubCheck) Execute(
	context.Context,
) (*check.Result, error) {
	return &check.Result{CheckID: s.id}, nil
}
func (s *stubCheck) Cleanup(context.Context) error { return nil }

func stub(
	id check.ID, category string, deps ...check.ID,
) *stubCheck {
	return &stubCheck{id: id, category: category, deps: deps}
}

func TestDefaultRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(stub("health", "infra")))

	c, err := r.Get("health")
	require.NoError(t, err)
	assert.Equal(t, check.ID("health"), c.ID())
	assert.Equal(t, 1, r.Count())
}

func TestDefaultRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("health", "infra")))

	err := r.Register(stub("health", "infra"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultRegistry_Get_NotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDefaultRegistry_List_SortedByID(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("c", "x")))
	require.NoError(t, r.Register(stub("a", "x")))
	require.NoError(t, r.Register(stub("b", "y")))

	listed := r.List()

	require.Len(t, listed, 3)
	assert.Equal(t, check.ID("a"), listed[0].ID())
	assert.Equal(t, check.ID("b"), listed[1].ID())
	assert.Equal(t, check.ID("c"), listed[2].ID())
}

func TestDefaultRegistry_ListByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("a", "users")))
	require.NoError(t, r.Register(stub("b", "quizzes")))
	require.NoError(t, r.Register(stub("c", "users")))

	users := r.ListByCategory("users")

	require.Len(t, users, 2)
	assert.Equal(t, check.ID("a"), users[0].ID())
	assert.Equal(t, check.ID("c"), users[1].ID())
	assert.Empty(t, r.ListByCategory("roadmaps"))
}

func TestDefaultRegistry_DependencyOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("submit", "q", "user", "quizzes")))
	require.NoError(t, r.Register(stub("user", "u", "health")))
	require.NoError(t, r.Register(stub("quizzes", "q", "health")))
	require.NoError(t, r.Register(stub("health", "infra")))

	ordered, err := r.DependencyOrder()
	require.NoError(t, err)
	require.Len(t, ordered, 4)

	position := make(map[check.ID]int)
	for i, c := range ordered {
		position[c.ID()] = i
	}
	assert.Less(t, position["health"], position["user"])
	assert.Less(t, position["health"], position["quizzes"])
	assert.Less(t, position["user"], position["submit"])
	assert.Less(t, position["quizzes"], position["submit"])
}

func TestDefaultRegistry_DependencyOrder_Deterministic(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("b", "x")))
	require.NoError(t, r.Register(stub("a", "x")))
	require.NoError(t, r.Register(stub("c", "x")))

	first, err := r.DependencyOrder()
	require.NoError(t, err)
	second, err := r.DependencyOrder()
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
	}
}

func TestDefaultRegistry_DependencyOrder_Cycle(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("a", "x", "b")))
	require.NoError(t, r.Register(stub("b", "x", "a")))

	_, err := r.DependencyOrder()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestDefaultRegistry_ValidateDependencies(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("a", "x", "missing")))

	err := r.ValidateDependencies()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestDefaultRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stub("a", "x")))

	r.Clear()

	assert.Equal(t, 0, r.Count())
}
