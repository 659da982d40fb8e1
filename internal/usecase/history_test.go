package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("newest first and bounded", func(t *testing.T) {
		clk := clock.NewMock()
		h := NewHistory(clk, testConfig())

		for i := 1; i <= 15; i++ {
			h.Add(fmt.Sprintf("op %d", i))
			clk.Add(time.Second)
			assert.LessOrEqual(t, h.Len(), 10)
		}

		entries := h.Entries()
		require.Len(t, entries, 10)
		for i, e := range entries {
			assert.Equal(t, fmt.Sprintf("op %d", 15-i), e.Text)
		}
		assert.True(t, entries[0].At.After(entries[9].At))
	})

	t.Run("entries carry a time prefix", func(t *testing.T) {
		clk := clock.NewMock()
		clk.Set(time.Date(2025, 1, 2, 13, 4, 5, 0, time.Local))
		h := NewHistory(clk, testConfig())

		e := h.Add("Created new vote: Pool Renovation")
		assert.Equal(t, "13:04:05: Created new vote: Pool Renovation", e.String())
	})

	t.Run("entries returns a copy", func(t *testing.T) {
		h := NewHistory(clock.NewMock(), testConfig())
		h.Add("a")
		entries := h.Entries()
		entries[0].Text = "mutated"
		assert.Equal(t, "a", h.Entries()[0].Text)
	})
}
