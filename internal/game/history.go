package game

import "slices"

// History holds the names of the items purchased in the current batch.
// It never holds more than its limit.
type History struct {
	limit int
	names []string
}

// NewHistory returns an empty history holding at most limit names.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Contains reports whether name was purchased in the current batch.
func (h *History) Contains(name string) bool {
	return slices.Contains(h.names, name)
}

// Add appends name and reports whether it was added. Names already in the
// history and names exceeding the limit are rejected.
func (h *History) Add(name string) bool {
	if h.Contains(name) || h.Full() {
		return false
	}
	h.names = append(h.names, name)
	return true
}

// Len returns the number of names in the history.
func (h *History) Len() int { return len(h.names) }

// Full reports whether the history holds its limit of names.
func (h *History) Full() bool { return len(h.names) >= h.limit }

// Clear empties the history, starting a new batch.
func (h *History) Clear() { h.names = h.names[:0] }

// Names returns a copy of the names in purchase order.
func (h *History) Names() []string {
	return slices.Clone(h.names)
}
