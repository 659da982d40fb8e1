package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ProposalList is the data behind `wvote list`
type ProposalList struct {
	Contract  common.Address
	Account   common.Address
	Proposals []*models.Proposal
	Stats     models.Stats
	Failed    []string
}

type proposalView struct {
	ExternalID     string    `json:"externalId" yaml:"externalId"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
	Creator        string    `json:"creator" yaml:"creator"`
	CreatedAt      time.Time `json:"createdAt" yaml:"createdAt"`
	PublicWeight   uint64    `json:"publicWeight" yaml:"publicWeight"`
	SecondaryValue uint64    `json:"secondaryValue" yaml:"secondaryValue"`
	Verified       bool      `json:"verified" yaml:"verified"`
	VerifiedWeight *uint64   `json:"verifiedWeight,omitempty" yaml:"verifiedWeight,omitempty"`
}

type listView struct {
	Contract  string         `json:"contract" yaml:"contract"`
	Proposals []proposalView `json:"proposals" yaml:"proposals"`
	Stats     statsView      `json:"stats" yaml:"stats"`
	Failed    []string       `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// ProposalsRenderer renders the proposal list
type ProposalsRenderer struct {
	out   io.Writer
	color bool
}

// NewProposalsRenderer creates a new proposals renderer
func NewProposalsRenderer(out io.Writer, color bool) *ProposalsRenderer {
	return &ProposalsRenderer{out: out, color: color}
}

// Render renders the list as a table
func (r *ProposalsRenderer) Render(list *ProposalList) error {
	return r.RenderAs(list, OutputTable)
}

// RenderAs renders the list in the given output format
func (r *ProposalsRenderer) RenderAs(list *ProposalList, format string) error {
	switch format {
	case "", OutputTable:
		return r.renderTable(list)
	case OutputJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(toListView(list))
	case OutputYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(toListView(list))
	default:
		return fmt.Errorf("unsupported output format %q (valid: table, json, yaml)", format)
	}
}

func (r *ProposalsRenderer) renderTable(list *ProposalList) error {
	if !r.color {
		color.NoColor = true
	}

	if len(list.Proposals) == 0 {
		color.New(color.FgYellow).Fprintln(r.out, "No votes found")
	} else {
		fmt.Fprintln(r.out, r.table(list.Proposals))
	}

	for _, id := range list.Failed {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("could not load %s", id)))
	}

	fmt.Fprintln(r.out)
	return NewStatsRenderer(r.out, r.color).Render(&list.Stats)
}

func (r *ProposalsRenderer) table(proposals []*models.Proposal) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatUpper

	t.AppendHeader(table.Row{"ID", "Title", "Weight", "Status", "Creator", "Created"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 3, Align: text.AlignRight},
	})

	for _, p := range proposals {
		t.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(p.ExternalID),
			p.Title,
			weightCell(p),
			statusCell(p),
			ShortAddress(p.Creator),
			formatTime(p.CreatedTime()),
		})
	}
	return t.Render()
}

func weightCell(p *models.Proposal) string {
	if p.IsVerified {
		return color.New(color.FgGreen, color.Bold).Sprint(FormatNumber(p.VerifiedWeight))
	}
	return color.New(color.Faint).Sprintf("~%s", FormatNumber(p.PublicWeight))
}

func statusCell(p *models.Proposal) string {
	if p.IsVerified {
		return color.New(color.FgGreen).Sprint("✓ verified")
	}
	return color.New(color.FgYellow).Sprint("🔒 encrypted")
}

func toListView(list *ProposalList) listView {
	view := listView{
		Contract:  list.Contract.Hex(),
		Proposals: make([]proposalView, 0, len(list.Proposals)),
		Stats:     toStatsView(&list.Stats),
		Failed:    list.Failed,
	}
	for _, p := range list.Proposals {
		pv := proposalView{
			ExternalID:     p.ExternalID,
			Title:          p.Title,
			Description:    p.Description,
			Creator:        p.Creator.Hex(),
			CreatedAt:      p.CreatedTime().UTC(),
			PublicWeight:   p.PublicWeight,
			SecondaryValue: p.SecondaryValue,
			Verified:       p.IsVerified,
		}
		if p.IsVerified {
			w := p.VerifiedWeight
			pv.VerifiedWeight = &w
		}
		view.Proposals = append(view.Proposals, pv)
	}
	return view
}
