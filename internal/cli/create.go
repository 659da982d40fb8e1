package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/adapters/interactive"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	var params usecase.CreateProposalParams

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Create a vote with an encrypted weight",
		Long: `Create a vote on the contract. The weight is encrypted by the relayer
before submission; only a plaintext estimate is stored alongside it.
Missing fields are prompted for unless --non-interactive is set.`,
		Example: `  # Prompt for everything
  wvote create

  # Fully scripted
  wvote create --title "Parcel 12" --weight 1200 --non-interactive`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			if _, err := app.ConnectSession.Run(cmd.Context()); err != nil {
				return err
			}

			app.Session.OpenForm()
			filled, err := app.Selector.PromptCreateForm(params)
			if err != nil && !errors.Is(err, interactive.ErrNonInteractive) {
				return err
			}
			app.Session.UpdateForm(filled.Title, filled.Description, filled.Weight)

			result, err := app.CreateProposal.Run(cmd.Context(), filled)
			if err != nil {
				return err
			}

			return render.NewWorkflowRenderer(cmd.OutOrStdout(), useColor(app)).RenderCreated(result)
		}),
	}

	cmd.Flags().StringVarP(&params.Title, "title", "t", "", "Vote title")
	cmd.Flags().StringVarP(&params.Description, "description", "d", "", "Vote description")
	cmd.Flags().StringVarP(&params.Weight, "weight", "w", "", "Weight to encrypt (non-negative integer)")

	return cmd
}
