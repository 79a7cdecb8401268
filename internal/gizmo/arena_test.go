package gizmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaInsertGetRemove(t *testing.T) {
	var a arena
	h1 := a.insert(Object{Host: 10})
	h2 := a.insert(Object{Host: 20})
	assert.NotEqual(t, h1, h2)
	assert.False(t, h1.IsZero())
	assert.Equal(t, 2, a.len())

	obj, ok := a.get(h2)
	require.True(t, ok)
	assert.Equal(t, ObjectHandle(20), obj.Host)
	assert.Equal(t, h2, obj.Handle)

	removed, ok := a.remove(h1)
	require.True(t, ok)
	assert.Equal(t, ObjectHandle(10), removed.Host)
	assert.Equal(t, 1, a.len())

	_, ok = a.get(h1)
	assert.False(t, ok)
	_, ok = a.remove(h1)
	assert.False(t, ok, "double remove is a no-op")
}

func TestArenaStaleHandleAfterReuse(t *testing.T) {
	var a arena
	old := a.insert(Object{Host: 1})
	a.remove(old)

	reused := a.insert(Object{Host: 2})
	assert.Equal(t, old.Index, reused.Index, "slot is recycled")
	assert.NotEqual(t, old.Generation, reused.Generation)

	_, ok := a.get(old)
	assert.False(t, ok, "stale handle must not alias the new object")
	obj, ok := a.get(reused)
	require.True(t, ok)
	assert.Equal(t, ObjectHandle(2), obj.Host)
}

func TestArenaOutOfRange(t *testing.T) {
	var a arena
	_, ok := a.get(Handle{Index: 42, Generation: 1})
	assert.False(t, ok)
	_, ok = a.get(Handle{})
	assert.False(t, ok)
}

func TestArenaHandles(t *testing.T) {
	var a arena
	e1 := a.insert(Object{Ephemeral: true})
	p := a.insert(Object{})
	e2 := a.insert(Object{Ephemeral: true})

	assert.Equal(t, []Handle{e1, p, e2}, a.handles(false))
	assert.Equal(t, []Handle{e1, e2}, a.handles(true))
}
