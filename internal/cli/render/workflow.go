package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// WorkflowRenderer renders the outcome of create, reveal and ping
type WorkflowRenderer struct {
	out   io.Writer
	color bool
}

// NewWorkflowRenderer creates a new workflow renderer
func NewWorkflowRenderer(out io.Writer, color bool) *WorkflowRenderer {
	return &WorkflowRenderer{out: out, color: color}
}

// RenderCreated prints the created proposal
func (r *WorkflowRenderer) RenderCreated(result *usecase.CreateProposalResult) error {
	r.setColor()
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created %s", color.New(color.FgCyan).Sprint(result.ExternalID))))
	fmt.Fprintf(r.out, "  Title:  %s\n", result.Title)
	fmt.Fprintf(r.out, "  Weight: %s (encrypted)\n", FormatNumber(result.Weight))
	fmt.Fprintf(r.out, "  Tx:     %s\n", result.TxHash.Hex())
	return nil
}

// RenderRevealed prints the outcome of a reveal
func (r *WorkflowRenderer) RenderRevealed(result *usecase.RevealResult) error {
	r.setColor()
	id := color.New(color.FgCyan).Sprint(result.ExternalID)
	switch {
	case result.AlreadyVerified && result.Weight != nil:
		fmt.Fprintf(r.out, "%s already verified: weight %s\n", id, FormatNumber(*result.Weight))
	case result.AlreadyVerified:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was verified by someone else first", result.ExternalID)))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Verified %s: weight %s", id, FormatNumber(*result.Weight))))
		fmt.Fprintf(r.out, "  Tx: %s\n", result.TxHash.Hex())
	}
	return nil
}

// RenderAvailability prints the liveness probe result
func (r *WorkflowRenderer) RenderAvailability(available bool) error {
	r.setColor()
	if available {
		fmt.Fprintln(r.out, FormatSuccess("Contract is available"))
	} else {
		fmt.Fprintln(r.out, FormatError("contract is not available"))
	}
	return nil
}

// RenderHistory prints the operation history, newest first
func (r *WorkflowRenderer) RenderHistory(entries []models.HistoryEntry) error {
	r.setColor()
	if len(entries) == 0 {
		return nil
	}
	color.New(color.Bold).Fprintln(r.out, "History:")
	for _, e := range entries {
		fmt.Fprintf(r.out, "  %s\n", e.String())
	}
	return nil
}

func (r *WorkflowRenderer) setColor() {
	if !r.color {
		color.NoColor = true
	}
}
