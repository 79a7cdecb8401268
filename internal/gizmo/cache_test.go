package gizmo

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// materialBackend counts CreateMaterial calls and fails while fail is set.
type materialBackend struct {
	Backend
	created int
	fail    bool
}

func (b *materialBackend) CreateMaterial(c color.RGBA) (MaterialHandle, error) {
	if b.fail {
		return 0, errors.New("unavailable")
	}
	b.created++
	return MaterialHandle(b.created), nil
}

func TestMaterialCacheDedup(t *testing.T) {
	b := &materialBackend{}
	mc := NewMaterialCache(b)

	red1, err := mc.MaterialFor(color.RGBA{255, 0, 0, 255})
	require.NoError(t, err)
	red2, err := mc.MaterialFor(Red)
	require.NoError(t, err)
	blue, err := mc.MaterialFor(Blue)
	require.NoError(t, err)

	assert.Equal(t, red1, red2)
	assert.NotEqual(t, red1, blue)
	assert.Equal(t, 2, b.created)

	st := mc.Stats()
	assert.Equal(t, 2, st.Entries)
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(2), st.Misses)
}

func TestMaterialCacheAlphaIsPartOfKey(t *testing.T) {
	b := &materialBackend{}
	mc := NewMaterialCache(b)
	opaque, _ := mc.MaterialFor(color.RGBA{10, 20, 30, 255})
	faded, _ := mc.MaterialFor(color.RGBA{10, 20, 30, 128})
	assert.NotEqual(t, opaque, faded)
}

func TestMaterialCacheFailureNotCached(t *testing.T) {
	b := &materialBackend{fail: true}
	mc := NewMaterialCache(b)

	_, err := mc.MaterialFor(Green)
	require.Error(t, err)
	assert.Equal(t, 0, mc.Stats().Entries)

	b.fail = false
	h, err := mc.MaterialFor(Green)
	require.NoError(t, err)
	assert.Equal(t, MaterialHandle(1), h)
}

func TestColorKey(t *testing.T) {
	assert.Equal(t, uint32(0xff0000ff), ColorKey(Red))
	assert.Equal(t, uint32(0x01020304), ColorKey(color.RGBA{1, 2, 3, 4}))
	assert.Equal(t, Red, ColorFromFloats(1, 0, 0, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, ColorFromFloats(-1, -0.5, 0, 2))
}
