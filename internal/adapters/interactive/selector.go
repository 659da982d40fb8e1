package interactive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// ErrNonInteractive is returned when a prompt is needed in non-interactive mode
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection and form prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectProposal picks one proposal from a list with fuzzy search
func (s *SelectorAdapter) SelectProposal(proposals []*models.Proposal, prompt string) (*models.Proposal, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals to choose from")
	}
	if len(proposals) == 1 {
		return proposals[0], nil
	}
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}

	options := formatProposalOptions(proposals)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return proposals[index], nil
}

// PromptCreateForm asks for any creation field that was not supplied
func (s *SelectorAdapter) PromptCreateForm(params usecase.CreateProposalParams) (usecase.CreateProposalParams, error) {
	if params.Title != "" && params.Weight != "" {
		return params, nil
	}
	if s.config.NonInteractive {
		return params, ErrNonInteractive
	}

	var err error
	if params.Title == "" {
		params.Title, err = s.run(promptui.Prompt{
			Label:    "Vote title",
			Validate: validateTitle,
		})
		if err != nil {
			return params, err
		}
	}
	if params.Description == "" {
		params.Description, err = s.run(promptui.Prompt{Label: "Description"})
		if err != nil {
			return params, err
		}
	}
	if params.Weight == "" {
		params.Weight, err = s.run(promptui.Prompt{
			Label:    "Vote weight (encrypted)",
			Validate: validateWeight,
		})
		if err != nil {
			return params, err
		}
	}
	return params, nil
}

// Confirm asks a yes/no question, defaulting to yes in non-interactive mode
func (s *SelectorAdapter) Confirm(label string) bool {
	if s.config.NonInteractive {
		return true
	}
	_, err := (&promptui.Prompt{Label: label, IsConfirm: true}).Run()
	return err == nil
}

func (s *SelectorAdapter) run(p promptui.Prompt) (string, error) {
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return strings.TrimSpace(v), nil
}

func validateTitle(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("title is required")
	}
	return nil
}

func validateWeight(input string) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(input), 10, 32); err != nil {
		return errors.New("weight must be a non-negative integer")
	}
	return nil
}

// formatProposalOptions creates display strings for proposal selection
func formatProposalOptions(proposals []*models.Proposal) []string {
	options := make([]string, len(proposals))
	for i, p := range proposals {
		title := color.New(color.FgWhite, color.Bold).Sprint(p.Title)
		id := color.New(color.FgBlue).Sprint(p.ExternalID)

		if p.IsVerified {
			badge := color.New(color.FgGreen).Sprint("[verified]")
			options[i] = fmt.Sprintf("%s %s (%s)", title, badge, id)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", title, id)
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// MatchProposals returns proposals whose id equals query or whose title
// fuzzy-matches it, best match first.
func MatchProposals(proposals []*models.Proposal, query string) []*models.Proposal {
	for _, p := range proposals {
		if p.ExternalID == query {
			return []*models.Proposal{p}
		}
	}

	titles := make([]string, len(proposals))
	for i, p := range proposals {
		titles[i] = p.Title
	}

	matches := fuzzy.Find(query, titles)
	out := make([]*models.Proposal, 0, len(matches))
	for _, m := range matches {
		out = append(out, proposals[m.Index])
	}
	return out
}
