package sysexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRegistryPromoteDue(t *testing.T) {
	r := NewEntityRegistry()
	q := NewScheduleQueue()

	a := newScriptedModel("a", 0, Infinite, nil)
	b := newScriptedModel("b", 5, Infinite, nil)
	r.Register(a)
	r.Register(b)

	assert.True(t, r.HasPending())

	promoted, err := r.PromoteDue(0, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, promoted)

	_, active := r.Active("a")
	assert.True(t, active)
	_, active = r.Active("b")
	assert.False(t, active)
	assert.True(t, q.Contains("a"))
	assert.False(t, q.Contains("b"))

	promoted, err = r.PromoteDue(5, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, promoted)
	assert.False(t, r.HasPending())
}

func TestEntityRegistryPromoteDueBatchesTies(t *testing.T) {
	r := NewEntityRegistry()
	q := NewScheduleQueue()

	a := newScriptedModel("a", 3, Infinite, nil)
	b := newScriptedModel("b", 3, Infinite, nil)
	r.Register(a)
	r.Register(b)

	promoted, err := r.PromoteDue(10, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, promoted)
}

func TestEntityRegistryPromoteDueDuplicateNameIsFatal(t *testing.T) {
	r := NewEntityRegistry()
	q := NewScheduleQueue()

	r.Register(newScriptedModel("dup", 0, Infinite, nil))
	r.Register(newScriptedModel("dup", 0, Infinite, nil))

	_, err := r.PromoteDue(0, q)
	require.Error(t, err)
	var dupErr *DuplicateNameError
	assert.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.Name)
}

func TestEntityRegistryDestroyDue(t *testing.T) {
	r := NewEntityRegistry()
	q := NewScheduleQueue()
	g := NewCouplingGraph()

	m := newScriptedModel("a", 0, 5, nil)
	r.Register(m)
	_, err := r.PromoteDue(0, q)
	require.NoError(t, err)
	g.Couple("a", "out", "b", "in")

	removed := r.DestroyDue(4, q, g)
	assert.Empty(t, removed)
	_, active := r.Active("a")
	assert.True(t, active)

	removed = r.DestroyDue(5, q, g)
	assert.Equal(t, []string{"a"}, removed)
	_, active = r.Active("a")
	assert.False(t, active)
	assert.False(t, q.Contains("a"))

	// RemoveOwner was called: a's coupling is gone.
	eps := g.Resolve("a", "out")
	assert.Equal(t, []Endpoint{{Model: catcherName, Port: catcherPort}}, eps)
}
