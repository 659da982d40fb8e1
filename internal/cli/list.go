package cli

import (
	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List votes recorded on the contract",
		Long: `List every vote recorded on the voting contract, in ledger order, followed
by aggregate statistics. Unverified weights show the public estimate prefixed
with "~"; verified weights show the decrypted value.`,
		Example: `  # List all votes
  wvote list

  # Machine readable output
  wvote list -o json`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			result, err := loadProposals(cmd, app)
			if err != nil {
				return err
			}

			snapshot := app.Session.Snapshot()
			list := &render.ProposalList{
				Contract:  snapshot.Contract,
				Account:   snapshot.Account,
				Proposals: result.Proposals,
				Stats:     result.Stats,
			}
			for _, f := range result.Failed {
				list.Failed = append(list.Failed, f.ExternalID)
			}

			renderer := render.NewProposalsRenderer(cmd.OutOrStdout(), useColor(app))
			return renderer.RenderAs(list, app.Config.Output)
		}),
	}

	return cmd
}

// loadProposals connects the session and returns its initial load, running a
// fresh refresh if the initial one failed.
func loadProposals(cmd *cobra.Command, app *app.App) (*usecase.RefreshResult, error) {
	result, err := app.ConnectSession.Run(cmd.Context())
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	return app.RefreshProposals.Run(cmd.Context(), usecase.RefreshOptions{ReportStatus: true})
}
