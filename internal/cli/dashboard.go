package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/cli/render"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// dashboardBackend is what the dashboard drives
type dashboardBackend interface {
	Connect(ctx context.Context) error
	Refresh(ctx context.Context) error
	Reveal(ctx context.Context, externalID string) error
	Create(ctx context.Context, params usecase.CreateProposalParams) error
	OpenForm()
	UpdateForm(title, description, weight string)
}

// appBackend adapts the app's use cases to the dashboard
type appBackend struct {
	app *app.App
}

func (b appBackend) Connect(ctx context.Context) error {
	_, err := b.app.ConnectSession.Run(ctx)
	return err
}

func (b appBackend) Refresh(ctx context.Context) error {
	_, err := b.app.RefreshProposals.Run(ctx, usecase.RefreshOptions{ReportStatus: true})
	return err
}

func (b appBackend) Reveal(ctx context.Context, externalID string) error {
	_, err := b.app.RevealWeight.Run(ctx, externalID)
	return err
}

func (b appBackend) Create(ctx context.Context, params usecase.CreateProposalParams) error {
	_, err := b.app.CreateProposal.Run(ctx, params)
	return err
}

func (b appBackend) OpenForm() { b.app.Session.OpenForm() }

func (b appBackend) UpdateForm(title, description, weight string) {
	b.app.Session.UpdateForm(title, description, weight)
}

// snapshotMsg carries a session change into the event loop
type snapshotMsg usecase.Snapshot

// actionDoneMsg reports the end of a background action
type actionDoneMsg struct {
	action string
	err    error
}

const (
	formTitle = iota
	formDescription
	formWeight
	formFields
)

var formLabels = [formFields]string{"Title", "Description", "Weight"}

// dashboardModel is the bubbletea model for the live view
type dashboardModel struct {
	ctx     context.Context
	backend dashboardBackend

	snap    usecase.Snapshot
	cursor  int
	busy    map[string]bool
	lastErr string

	formOpen  bool
	formField int
	form      [formFields]string

	quitting bool
}

func newDashboardModel(ctx context.Context, backend dashboardBackend, snap usecase.Snapshot) dashboardModel {
	return dashboardModel{
		ctx:     ctx,
		backend: backend,
		snap:    snap,
		busy:    make(map[string]bool),
	}
}

// Init connects the session in the background
func (m dashboardModel) Init() tea.Cmd {
	return m.run("connect", m.backend.Connect)
}

// Update handles messages and updates the model
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = usecase.Snapshot(msg)
		if m.cursor >= len(m.snap.Proposals) {
			m.cursor = max(len(m.snap.Proposals)-1, 0)
		}
		return m, nil

	case actionDoneMsg:
		delete(m.busy, msg.action)
		m.lastErr = ""
		if msg.err != nil && !domain.IsBenign(msg.err) {
			m.lastErr = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.formOpen {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m dashboardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Proposals)-1 {
			m.cursor++
		}
	case "r":
		return m.start("refresh", m.backend.Refresh)
	case "enter":
		if len(m.snap.Proposals) == 0 {
			return m, nil
		}
		id := m.snap.Proposals[m.cursor].ExternalID
		return m.start("reveal "+id, func(ctx context.Context) error {
			return m.backend.Reveal(ctx, id)
		})
	case "n":
		m.formOpen = true
		m.formField = formTitle
		m.form = [formFields]string{}
		m.backend.OpenForm()
	}
	return m, nil
}

func (m dashboardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.formOpen = false
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.formField = (m.formField + 1) % formFields
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.formField = (m.formField + formFields - 1) % formFields
		return m, nil
	case tea.KeyBackspace:
		if v := []rune(m.form[m.formField]); len(v) > 0 {
			m.form[m.formField] = string(v[:len(v)-1])
		}
	case tea.KeySpace:
		m.form[m.formField] += " "
	case tea.KeyRunes:
		m.form[m.formField] += string(msg.Runes)
	case tea.KeyEnter:
		if m.formField < formWeight {
			m.formField++
			return m, nil
		}
		params := usecase.CreateProposalParams{
			Title:       m.form[formTitle],
			Description: m.form[formDescription],
			Weight:      m.form[formWeight],
		}
		m.formOpen = false
		return m.start("create", func(ctx context.Context) error {
			return m.backend.Create(ctx, params)
		})
	default:
		return m, nil
	}
	m.backend.UpdateForm(m.form[formTitle], m.form[formDescription], m.form[formWeight])
	return m, nil
}

// start runs an action unless the same action is already in flight
func (m dashboardModel) start(action string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	if m.busy[action] {
		return m, nil
	}
	m.busy[action] = true
	return m, m.run(action, fn)
}

func (m dashboardModel) run(action string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

// View renders the UI
func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	b.WriteString(color.New(color.FgCyan, color.Bold).Sprint("Encrypted-weight votes"))
	b.WriteString(faint.Sprintf("  [%s]", m.snap.Gate))
	if m.snap.Account != (common.Address{}) {
		b.WriteString(faint.Sprintf("  account %s", render.ShortAddress(m.snap.Account)))
	}
	b.WriteString("\n\n")

	if len(m.snap.Proposals) == 0 {
		if m.snap.Refreshing {
			b.WriteString(faint.Sprint("Loading votes...\n"))
		} else {
			b.WriteString(faint.Sprint("No votes yet. Press n to create one.\n"))
		}
	}
	for i, p := range m.snap.Proposals {
		cursor := " "
		if i == m.cursor {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}
		b.WriteString(fmt.Sprintf("%s %s %-32s %s\n", cursor, proposalBadge(p), truncate(p.Title, 32), proposalWeight(p)))
	}

	b.WriteString("\n")
	s := m.snap.Stats
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %s  %s %d\n",
		bold.Sprint("Total:"), s.TotalVotes,
		bold.Sprint("Verified:"), s.VerifiedVotes,
		bold.Sprint("Avg weight:"), render.FormatNumber(uint64(s.AvgWeight)),
		bold.Sprint("Recent:"), s.RecentActivity))

	if line := statusLine(m.snap.Status); line != "" {
		b.WriteString("\n" + line + "\n")
	} else if m.lastErr != "" {
		b.WriteString("\n" + render.FormatError(m.lastErr) + "\n")
	}

	if m.formOpen {
		b.WriteString("\n" + bold.Sprint("New vote") + "\n")
		for i, label := range formLabels {
			marker := " "
			if i == m.formField {
				marker = color.New(color.FgCyan).Sprint("▸")
			}
			b.WriteString(fmt.Sprintf("%s %-12s %s\n", marker, label+":", m.form[i]))
		}
		b.WriteString(color.New(color.FgYellow).Sprint("\nTab: next field  Enter: submit  Esc: cancel\n"))
		return b.String()
	}

	if len(m.snap.History) > 0 {
		b.WriteString("\n" + bold.Sprint("History") + "\n")
		for _, e := range m.snap.History {
			b.WriteString(faint.Sprintf("  %s\n", e.String()))
		}
	}

	b.WriteString(color.New(color.FgYellow).Sprint("\n↑/↓: move  Enter: reveal  n: new  r: refresh  q: quit\n"))
	return b.String()
}

func statusLine(status *usecase.ProgressEvent) string {
	if status == nil {
		return ""
	}
	switch status.Phase {
	case models.TxPhasePending:
		return color.New(color.FgCyan).Sprintf("⋯ %s", status.Message)
	case models.TxPhaseSuccess:
		return color.New(color.FgGreen).Sprintf("✓ %s", status.Message)
	default:
		return color.New(color.FgRed).Sprintf("✗ %s", status.Message)
	}
}

func proposalBadge(p *models.Proposal) string {
	if p.IsVerified {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return color.New(color.FgYellow).Sprint("🔒")
}

func proposalWeight(p *models.Proposal) string {
	if p.IsVerified {
		return color.New(color.FgGreen).Sprint(render.FormatNumber(p.VerifiedWeight))
	}
	return color.New(color.Faint).Sprintf("~%s", render.FormatNumber(p.PublicWeight))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "dashboard",
		Aliases:     []string{"ui"},
		Short:       "Live view of votes, status and history",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: withApp(func(cmd *cobra.Command, args []string, app *app.App) error {
			if app.Config.NonInteractive {
				return fmt.Errorf("dashboard requires an interactive terminal")
			}

			model := newDashboardModel(cmd.Context(), appBackend{app: app}, app.Session.Snapshot())
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))

			unsubscribe := app.Session.Subscribe(func(s usecase.Snapshot) {
				p.Send(snapshotMsg(s))
			})
			defer unsubscribe()

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		}),
	}
}
