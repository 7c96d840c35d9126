package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tr := NewTracker(ReflectHost{})
	root := map[string]any{}
	child := map[string]any{}

	rootFrame, ok := tr.Enter(root, "window")
	require.True(t, ok)
	childFrame, ok := tr.Enter(child, "window.a")
	require.True(t, ok)

	t.Run("second entry is refused", func(t *testing.T) {
		_, ok := tr.Enter(root, "elsewhere")
		assert.False(t, ok)
	})

	t.Run("ancestors report their path", func(t *testing.T) {
		path, ok := tr.Ancestor(root)
		require.True(t, ok)
		assert.Equal(t, "window", path)
		path, ok = tr.Ancestor(child)
		require.True(t, ok)
		assert.Equal(t, "window.a", path)
	})

	t.Run("left containers are seen but not ancestors", func(t *testing.T) {
		tr.Leave(childFrame)
		assert.True(t, tr.Seen(child))
		_, ok := tr.Ancestor(child)
		assert.False(t, ok)
		_, ok = tr.Ancestor(root)
		assert.True(t, ok)
	})

	t.Run("unknown containers", func(t *testing.T) {
		other := map[string]any{}
		assert.False(t, tr.Seen(other))
		_, ok := tr.Ancestor(other)
		assert.False(t, ok)
	})

	t.Run("values without identity are always entered", func(t *testing.T) {
		f, ok := tr.Enter(point{}, "p")
		assert.True(t, ok)
		_, ok = tr.Enter(point{}, "p")
		assert.True(t, ok)
		tr.Leave(f)
		assert.False(t, tr.Seen(point{}))
	})

	tr.Leave(rootFrame)
	assert.Equal(t, 2, tr.Len())
	_, ok = tr.Ancestor(root)
	assert.False(t, ok)
}
