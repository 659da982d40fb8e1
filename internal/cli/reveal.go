package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/adapters/interactive"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// NewRevealCmd creates the reveal command
func NewRevealCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "reveal [id|title]",
		Aliases: []string{"decrypt"},
		Short:   "Decrypt a vote's weight and verify it on-chain",
		Long: `Request a public decryption of the vote's encrypted weight and submit the
decryption proof to the contract. A vote that is already verified is not
submitted again.

The vote is matched by exact id first, then by fuzzy title. Without an
argument an interactive picker lists the unverified votes.`,
		Example: `  wvote reveal vote-1718000000000
  wvote reveal parcel
  wvote reveal`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			loaded, err := loadProposals(cmd, app)
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			candidates := loaded.Proposals
			if !all {
				candidates = lo.Filter(candidates, func(p *models.Proposal, _ int) bool { return !p.IsVerified })
			}
			target, err := pickProposal(app.Selector, loaded.Proposals, candidates, query)
			if err != nil {
				return err
			}

			result, err := app.RevealWeight.Run(cmd.Context(), target)
			if err != nil {
				return err
			}

			return render.NewWorkflowRenderer(cmd.OutOrStdout(), useColor(app)).RenderRevealed(result)
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include verified votes in the interactive picker")

	return cmd
}

// pickProposal resolves a query to an external id, offering candidates when
// the query is empty. An id that is not loaded is passed through so the ledger
// can answer for it.
func pickProposal(selector *interactive.SelectorAdapter, proposals, candidates []*models.Proposal, query string) (string, error) {
	if query == "" {
		if len(candidates) == 0 {
			return "", fmt.Errorf("no unverified votes to reveal")
		}
		chosen, err := selector.SelectProposal(candidates, "Select vote to reveal")
		if err != nil {
			return "", err
		}
		return chosen.ExternalID, nil
	}

	matches := interactive.MatchProposals(proposals, query)
	switch len(matches) {
	case 0:
		return query, nil
	case 1:
		return matches[0].ExternalID, nil
	default:
		chosen, err := selector.SelectProposal(matches, fmt.Sprintf("Multiple votes match %q", query))
		if err != nil {
			return "", err
		}
		return chosen.ExternalID, nil
	}
}
