package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryHistory(t *testing.T) {
	t.Run("empty initial is root", func(t *testing.T) {
		h := NewMemoryHistory("")
		assert.Equal(t, "/", h.Location())
		assert.Equal(t, 1, h.Len())
		assert.Equal(t, 0, h.Index())
	})

	t.Run("push and traverse", func(t *testing.T) {
		h := NewMemoryHistory("/a")
		h.Push("/b")
		h.Push("/c")

		assert.Equal(t, "/c", h.Location())
		assert.Equal(t, 2, h.Index())

		p, ok := h.Peek(-2)
		assert.True(t, ok)
		assert.Equal(t, "/a", p)
		assert.Equal(t, 2, h.Index())

		assert.True(t, h.Go(-1))
		assert.Equal(t, "/b", h.Location())

		_, ok = h.Peek(2)
		assert.False(t, ok)
		assert.False(t, h.Go(-2))
		assert.Equal(t, "/b", h.Location())
	})

	t.Run("push truncates forward entries", func(t *testing.T) {
		h := NewMemoryHistory("/a")
		h.Push("/b")
		h.Push("/c")
		h.Go(-2)
		h.Push("/d")

		assert.Equal(t, []string{"/a", "/d"}, h.Entries())
		assert.Equal(t, 1, h.Index())
	})

	t.Run("replace keeps position", func(t *testing.T) {
		h := NewMemoryHistory("/a")
		h.Push("/b")
		h.Replace("/x")

		assert.Equal(t, []string{"/a", "/x"}, h.Entries())
		assert.Equal(t, 1, h.Index())
	})

	t.Run("entries is a copy", func(t *testing.T) {
		h := NewMemoryHistory("/a")
		e := h.Entries()
		e[0] = "/z"
		assert.Equal(t, "/a", h.Location())
	})
}
