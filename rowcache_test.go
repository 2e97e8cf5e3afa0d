package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() (*RowCache[string], *fakeContainer, *textRenderer) {
	container := newFakeContainer(80, 10)
	renderer := &textRenderer{}
	return NewRowCache[string](container, map[string]Renderer[string]{"text": renderer}), container, renderer
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(fn func()) (err error) {
	defer func() {
		err, _ = recover().(error)
	}()
	fn()
	return nil
}

func TestRowCacheReuse(t *testing.T) {
	cache, container, renderer := newTestCache()

	row, stale := cache.Alloc("text")
	require.NotNil(t, row)
	assert.False(t, stale)
	assert.Equal(t, 1, renderer.templates)
	assert.Equal(t, "text", row.TemplateID)
	assert.False(t, container.Contains(row.Node))

	container.Insert(row.Node, nil)
	cache.Release(row)
	assert.False(t, container.Contains(row.Node))
	assert.Equal(t, 1, cache.Pooled("text"))

	again, stale := cache.Alloc("text")
	assert.Same(t, row, again)
	assert.False(t, stale)
	assert.Equal(t, 1, renderer.templates)
	assert.Equal(t, 0, cache.Pooled("text"))
}

func TestRowCacheTransaction(t *testing.T) {
	t.Run("reuse keeps the node attached", func(t *testing.T) {
		cache, container, _ := newTestCache()
		row, _ := cache.Alloc("text")
		container.Insert(row.Node, nil)

		cache.Transact(func() {
			cache.Release(row)
			assert.True(t, container.Contains(row.Node))

			again, stale := cache.Alloc("text")
			assert.Same(t, row, again)
			assert.True(t, stale)
		})
		assert.True(t, container.Contains(row.Node))
	})

	t.Run("removal is deferred", func(t *testing.T) {
		cache, container, _ := newTestCache()
		row, _ := cache.Alloc("text")
		container.Insert(row.Node, nil)

		cache.Transact(func() {
			cache.Release(row)
			assert.True(t, container.Contains(row.Node))
		})
		assert.False(t, container.Contains(row.Node))
	})

	t.Run("nested", func(t *testing.T) {
		cache, _, _ := newTestCache()
		assert.PanicsWithValue(t, ErrInTransaction, func() {
			cache.Transact(func() {
				cache.Transact(func() {})
			})
		})
		assert.NotPanics(t, func() { cache.Transact(func() {}) })
	})
}

func TestRowCacheMissingRenderer(t *testing.T) {
	cache, _, _ := newTestCache()
	err := recoverError(func() { cache.Alloc("image") })
	require.ErrorIs(t, err, ErrNoRenderer)
	assert.Contains(t, err.Error(), `"image"`)
}

func TestRowCacheDispose(t *testing.T) {
	cache, _, renderer := newTestCache()
	a, _ := cache.Alloc("text")
	b, _ := cache.Alloc("text")
	cache.Release(a)
	cache.Release(b)

	cache.Dispose()
	assert.Equal(t, 2, renderer.disposedTemplates)
	assert.Equal(t, 0, cache.Pooled("text"))
	assert.Nil(t, a.Template)
}
