package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type statsView struct {
	TotalVotes     int     `json:"totalVotes" yaml:"totalVotes"`
	VerifiedVotes  int     `json:"verifiedVotes" yaml:"verifiedVotes"`
	AvgWeight      float64 `json:"avgWeight" yaml:"avgWeight"`
	RecentActivity int     `json:"recentActivity" yaml:"recentActivity"`
}

func toStatsView(s *models.Stats) statsView {
	return statsView(*s)
}

// StatsRenderer renders aggregate statistics
type StatsRenderer struct {
	out   io.Writer
	color bool
}

// NewStatsRenderer creates a new stats renderer
func NewStatsRenderer(out io.Writer, color bool) *StatsRenderer {
	return &StatsRenderer{out: out, color: color}
}

// Render prints one line per statistic
func (r *StatsRenderer) Render(stats *models.Stats) error {
	if !r.color {
		color.NoColor = true
	}

	label := color.New(color.Bold)
	title := cases.Title(language.English)
	rows := []struct {
		name  string
		value string
	}{
		{"total votes", printer.Sprintf("%d", stats.TotalVotes)},
		{"verified", printer.Sprintf("%d", stats.VerifiedVotes)},
		{"average weight", printer.Sprintf("%.0f", stats.AvgWeight)},
		{"recent activity", printer.Sprintf("%d", stats.RecentActivity)},
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "%s %s\n", label.Sprintf("%-16s", title.String(row.name)+":"), row.value)
	}
	return nil
}
