package usecase

import (
	"strconv"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// ExternalIDGenerator issues ledger keys of the form vote-<unixMillis>.
// Two ids requested within the same millisecond get consecutive values.
type ExternalIDGenerator struct {
	clock clock.Clock

	mu   sync.Mutex
	last int64
}

// NewExternalIDGenerator creates a generator
func NewExternalIDGenerator(clk clock.Clock) *ExternalIDGenerator {
	return &ExternalIDGenerator{clock: clk}
}

// Next returns a fresh external id
func (g *ExternalIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return models.ExternalIDPrefix + strconv.FormatInt(ms, 10)
}
