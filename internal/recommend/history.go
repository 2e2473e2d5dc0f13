package recommend

import "sync"

// History tracks titles already recommended in this session. It only grows;
// nothing is persisted across process restarts.
type History struct {
	titles []string
	seen   map[string]bool
	mu     sync.RWMutex
}

// NewHistory creates an empty session history.
func NewHistory() *History {
	return &History{
		seen: make(map[string]bool),
	}
}

// Contains reports whether a title was already recommended.
func (h *History) Contains(title string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.seen[title]
}

// Add records a recommended title. Duplicates are ignored.
func (h *History) Add(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen[title] {
		return
	}
	h.seen[title] = true
	h.titles = append(h.titles, title)
}

// Titles returns the recommended titles in recommendation order.
func (h *History) Titles() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]string, len(h.titles))
	copy(result, h.titles)
	return result
}

// Len returns how many titles have been recommended.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.titles)
}
