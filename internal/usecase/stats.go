package usecase

import (
	"time"

	"github.com/samber/lo"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// ComputeStats derives the aggregate statistics from a full proposal set.
// It is a pure function of its inputs: order of proposals does not matter.
func ComputeStats(proposals []*models.Proposal, now time.Time, recentWindow time.Duration) models.Stats {
	total := len(proposals)
	if total == 0 {
		return models.Stats{}
	}

	windowSecs := int64(recentWindow / time.Second)
	nowSecs := now.Unix()

	sum := lo.SumBy(proposals, func(p *models.Proposal) uint64 { return p.PublicWeight })

	return models.Stats{
		TotalVotes:    total,
		VerifiedVotes: lo.CountBy(proposals, func(p *models.Proposal) bool { return p.IsVerified }),
		AvgWeight:     float64(sum) / float64(total),
		RecentActivity: lo.CountBy(proposals, func(p *models.Proposal) bool {
			return nowSecs-p.CreatedAt < windowSecs
		}),
	}
}
