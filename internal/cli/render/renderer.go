package render

import "github.com/weightvote/weightvote-cli/internal/domain/models"

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*ProposalList] = (*ProposalsRenderer)(nil)
	_ Renderer[*models.Stats] = (*StatsRenderer)(nil)
)
