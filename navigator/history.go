package navigator

import "sync"

// History is the back/forward stack owned by the host environment. The
// navigator reads the current entry, peeks at neighbours before a
// traversal, and writes entries only once a navigation commits.
type History interface {
	// Location returns the current entry.
	Location() string
	// Push discards any forward entries and appends path.
	Push(path string)
	// Replace overwrites the current entry.
	Replace(path string)
	// Peek returns the entry delta steps away without moving.
	Peek(delta int) (string, bool)
	// Go moves delta steps and reports whether the entry existed.
	Go(delta int) bool
	// Len returns the number of entries.
	Len() int
	// Index returns the position of the current entry.
	Index() int
}

// MemoryHistory is an in-process History, used by the CLI session and in
// tests. It is safe for concurrent use.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory returns a history holding a single entry. An empty
// initial location means "/".
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{entries: []string{initial}}
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

func (h *MemoryHistory) Peek(delta int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.index + delta
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.index + delta
	if i < 0 || i >= len(h.entries) {
		return false
	}
	h.index = i
	return true
}

func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Entries returns a copy of all entries, oldest first.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
