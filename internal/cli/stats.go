package cli

import (
	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics over all votes",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := loadProposals(cmd, app)
			if err != nil {
				return err
			}
			return render.NewStatsRenderer(cmd.OutOrStdout(), useColor(app)).Render(&result.Stats)
		}),
	}
}
