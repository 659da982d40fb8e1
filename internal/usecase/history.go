package usecase

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// History is the bounded operation log, newest entry first
type History struct {
	clock    clock.Clock
	capacity int

	mu      sync.Mutex
	entries []models.HistoryEntry
}

// NewHistory creates an empty operation history
func NewHistory(clk clock.Clock, cfg *config.RuntimeConfig) *History {
	capacity := cfg.UI.HistoryCapacity
	if capacity <= 0 {
		capacity = config.DefaultUISettings().HistoryCapacity
	}
	return &History{
		clock:    clk,
		capacity: capacity,
		entries:  make([]models.HistoryEntry, 0, capacity),
	}
}

// Add records a completed action and evicts the oldest entry past capacity
func (h *History) Add(text string) models.HistoryEntry {
	entry := models.HistoryEntry{At: h.clock.Now(), Text: text}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.capacity {
		h.entries = h.entries[:h.capacity-1]
	}
	h.entries = append(h.entries, models.HistoryEntry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = entry
	return entry
}

// Entries returns a copy of the log, newest first
func (h *History) Entries() []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
