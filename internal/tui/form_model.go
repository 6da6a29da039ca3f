package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/devtrack/internal/categorize"
	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/store"
)

// Step represents the current step in the wizard
type Step int

const (
	StepTitle Step = iota
	StepDescription
	StepCategory
	StepPriority
	StepTags
	StepSave
)

var stepLabels = []string{"Title", "Description", "Category", "Priority", "Tags"}

// FormValues pre-fills the form
type FormValues struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Tags        []string
}

// categorizedMsg carries a categorizer answer back into the update loop
type categorizedMsg struct {
	suggestion categorize.Suggestion
	err        error
}

// FormModel is the step wizard for a new ticket
type FormModel struct {
	ctx         context.Context
	store       TicketStore
	categorizer categorize.Categorizer
	log         *slog.Logger

	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	validationErr string
	status        string
	categorizing  bool

	// Outcome
	created   *models.Ticket
	warning   string
	err       error
	cancelled bool
}

// NewFormModel creates the form. c may be nil, which disables ctrl+a.
func NewFormModel(ctx context.Context, s TicketStore, c categorize.Categorizer, log *slog.Logger, prefilled FormValues) FormModel {
	inputs := make([]textinput.Model, len(stepLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepTitle].Placeholder = "Short summary of the problem (required)"
	inputs[StepTitle].CharLimit = 200
	inputs[StepDescription].Placeholder = "What is happening? (required, ctrl+a to auto-categorize)"
	inputs[StepDescription].CharLimit = 1000
	inputs[StepCategory].Placeholder = "Network, Access, Hardware... (required)"
	inputs[StepCategory].CharLimit = 50
	inputs[StepPriority].Placeholder = "low/medium/high or 1/2/3 (Enter for medium)"
	inputs[StepPriority].CharLimit = 10
	inputs[StepTags].Placeholder = "Comma-separated tags (Enter to skip)"
	inputs[StepTags].CharLimit = 200

	inputs[StepTitle].SetValue(prefilled.Title)
	inputs[StepDescription].SetValue(prefilled.Description)
	inputs[StepCategory].SetValue(prefilled.Category)
	inputs[StepPriority].SetValue(prefilled.Priority)
	inputs[StepTags].SetValue(strings.Join(prefilled.Tags, ", "))
	inputs[StepTitle].Focus()

	return FormModel{
		ctx:         ctx,
		store:       s,
		categorizer: c,
		log:         log,
		currentStep: StepTitle,
		inputs:      inputs,
	}
}

// Init initializes the model
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = min(max(m.width*2/3-10, 30), 80)
		}
		return m, nil

	case categorizedMsg:
		m.categorizing = false
		if msg.err != nil {
			m.validationErr = "Categorization failed: " + msg.err.Error()
			return m, nil
		}
		m.applySuggestion(msg.suggestion)
		m.status = fmt.Sprintf("Suggested %s / %s", msg.suggestion.Category, msg.suggestion.Priority)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "ctrl+a":
			return m.categorize()

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if err := m.validateStep(m.currentStep); err != "" {
				m.validationErr = err
				return m, nil
			}
			return m.moveStep(1)

		case "shift+tab", "up":
			return m.moveStep(-1)
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m FormModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// validateStep returns a message when the step's value cannot be saved
func (m FormModel) validateStep(step Step) string {
	switch step {
	case StepTitle, StepDescription, StepCategory:
		if m.value(step) == "" {
			return stepLabels[step] + " is required"
		}
	case StepPriority:
		if v := m.value(step); v != "" {
			if _, err := models.ParsePriority(v); err != nil {
				return "Invalid priority. Use: low, medium, high, 1, 2, or 3"
			}
		}
	}
	return ""
}

func (m FormModel) handleEnter() (FormModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep == StepSave {
		return m.createTicket()
	}
	if err := m.validateStep(m.currentStep); err != "" {
		m.validationErr = err
		return m, nil
	}
	return m.moveStep(1)
}

func (m FormModel) moveStep(delta int) (FormModel, tea.Cmd) {
	next := m.currentStep + Step(delta)
	if next < StepTitle || next > StepSave {
		return m, nil
	}
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
	}
	m.currentStep = next
	m.validationErr = ""
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// categorize asks the categorizer about the title and description
func (m FormModel) categorize() (FormModel, tea.Cmd) {
	if m.categorizer == nil || m.categorizing {
		return m, nil
	}
	content := strings.TrimSpace(m.value(StepTitle) + "\n" + m.value(StepDescription))
	if content == "" {
		m.validationErr = "Write a title or description to categorize"
		return m, nil
	}

	m.categorizing = true
	m.status = "Categorizing..."
	ctx, c, log := m.ctx, m.categorizer, m.log
	return m, func() tea.Msg {
		s, err := categorize.Normalize(ctx, c, content, log)
		return categorizedMsg{suggestion: s, err: err}
	}
}

// applySuggestion fills category and priority, and adds suggested tags to
// the ones already typed
func (m *FormModel) applySuggestion(s categorize.Suggestion) {
	if s.Category != "" {
		m.inputs[StepCategory].SetValue(s.Category)
	}
	m.inputs[StepPriority].SetValue(string(s.Priority))

	tags := splitTags(m.inputs[StepTags].Value())
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[strings.ToLower(t)] = true
	}
	for _, t := range s.Tags {
		if !seen[strings.ToLower(t)] {
			tags = append(tags, t)
			seen[strings.ToLower(t)] = true
		}
	}
	m.inputs[StepTags].SetValue(strings.Join(tags, ", "))
}

// Input returns the ticket the form currently describes
func (m FormModel) Input() (models.TicketInput, error) {
	for step := StepTitle; step < StepSave; step++ {
		if err := m.validateStep(step); err != "" {
			return models.TicketInput{}, errors.New(err)
		}
	}
	priority := models.PriorityMedium
	if v := m.value(StepPriority); v != "" {
		priority, _ = models.ParsePriority(v)
	}
	return models.TicketInput{
		Title:       m.value(StepTitle),
		Description: m.value(StepDescription),
		Category:    m.value(StepCategory),
		Priority:    priority,
		Tags:        splitTags(m.inputs[StepTags].Value()),
	}, nil
}

func (m FormModel) createTicket() (FormModel, tea.Cmd) {
	in, err := m.Input()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}

	ticket, err := m.store.AddTicket(m.ctx, in)
	if err != nil && !errors.Is(err, store.ErrPersistence) {
		m.err = err
		return m, tea.Quit
	}
	if err != nil {
		m.warning = err.Error()
	}
	m.created = &ticket
	return m, tea.Quit
}

// View renders the form
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("New ticket"))
	b.WriteString("\n\n")

	for i, label := range stepLabels {
		step := Step(i)
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		marker := "  "
		if step == m.currentStep {
			labelStyle = labelStyle.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
			marker = "› "
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s%-12s", marker, label)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	saveStyle := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder))
	if m.currentStep == StepSave {
		saveStyle = saveStyle.BorderForeground(lipgloss.Color(ColorAccentMain)).Bold(true)
	}
	b.WriteString("\n")
	b.WriteString(saveStyle.Render("Save"))
	b.WriteString("\n\n")

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.validationErr))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next · tab/shift+tab move · ctrl+a auto-categorize · esc cancel"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
