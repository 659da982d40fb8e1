package cli

import (
	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
)

// NewPingCmd creates the ping command
func NewPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the voting contract is deployed and responsive",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			available, err := app.CheckAvailability.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewWorkflowRenderer(cmd.OutOrStdout(), useColor(app)).RenderAvailability(available)
		}),
	}
}
