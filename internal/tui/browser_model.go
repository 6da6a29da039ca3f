package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/parser"
	"github.com/balkashynov/devtrack/internal/store"
	"github.com/balkashynov/devtrack/internal/views"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
)

// BrowserModel lists tickets with a details panel
type BrowserModel struct {
	ctx   context.Context
	store TicketStore

	width  int
	height int

	// Ticket data
	criteria views.Criteria
	tickets  []models.Ticket
	selected int // index in tickets

	// UI state
	focus  Focus
	search textinput.Model

	// Pagination
	currentPage    int
	ticketsPerPage int

	// Outcome
	warning     string
	trackTicket *models.Ticket
}

// NewBrowserModel creates a browser over the tickets in s matching c
func NewBrowserModel(ctx context.Context, s TicketStore, c views.Criteria) BrowserModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title, description, category or tag"
	search.CharLimit = 100
	search.SetValue(c.Query)
	search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	search.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := BrowserModel{
		ctx:            ctx,
		store:          s,
		criteria:       c,
		search:         search,
		ticketsPerPage: 10,
	}
	m.refresh()
	return m
}

// refresh reloads the ticket list from the store, keeping the selection on
// the same ticket when it is still listed
func (m *BrowserModel) refresh() {
	selectedID := 0
	if m.selected < len(m.tickets) {
		selectedID = m.tickets[m.selected].ID
	}

	m.tickets = views.Filter(m.store.Tickets(), m.criteria)
	m.selected = 0
	for i, t := range m.tickets {
		if t.ID == selectedID {
			m.selected = i
			break
		}
	}
	m.currentPage = 0
	if m.ticketsPerPage > 0 {
		m.currentPage = m.selected / m.ticketsPerPage
	}
}

// Init initializes the model
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header, column headers, pagination, help and borders
		m.ticketsPerPage = max(m.height-12, 3)
		m.currentPage = m.selected / m.ticketsPerPage
		m.search.Width = max(m.width-12, 10)
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			return m.moveSelection(-1), nil

		case "down", "j":
			return m.moveSelection(1), nil

		case "left", "h":
			return m.changePage(-1), nil

		case "right", "l":
			return m.changePage(1), nil

		case "/":
			m.focus = FocusSearch
			cmd := m.search.Focus()
			return m, cmd

		case "s":
			return m.cycleStatus(), nil

		case "t":
			if t, ok := m.current(); ok {
				m.trackTicket = &t
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// handleSearchKeys handles key input when in search mode. The list filters
// as the query is typed.
func (m BrowserModel) handleSearchKeys(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.focus = FocusTable
		m.criteria.Query = ""
		m.refresh()
		return m, nil

	case "enter":
		m.search.Blur()
		m.focus = FocusTable
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.criteria.Query = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m BrowserModel) current() (models.Ticket, bool) {
	if m.selected < 0 || m.selected >= len(m.tickets) {
		return models.Ticket{}, false
	}
	return m.tickets[m.selected], true
}

// cycleStatus moves the selected ticket to the next status in the workflow
func (m BrowserModel) cycleStatus() BrowserModel {
	t, ok := m.current()
	if !ok {
		return m
	}

	err := m.store.UpdateTicketStatus(m.ctx, t.ID, t.Status.Next())
	switch {
	case err == nil:
	case errors.Is(err, store.ErrPersistence):
		m.warning = err.Error()
	default:
		m.warning = fmt.Sprintf("could not update #%d: %v", t.ID, err)
	}
	m.refresh()
	return m
}

func (m BrowserModel) moveSelection(delta int) BrowserModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.tickets) {
		return m
	}
	m.selected = next
	m.currentPage = m.selected / m.ticketsPerPage
	return m
}

func (m BrowserModel) changePage(delta int) BrowserModel {
	pages := (len(m.tickets) + m.ticketsPerPage - 1) / m.ticketsPerPage
	page := m.currentPage + delta
	if page < 0 || page >= pages {
		return m
	}
	m.currentPage = page
	m.selected = min(page*m.ticketsPerPage, len(m.tickets)-1)
	return m
}

// View renders the browser
func (m BrowserModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	var details string
	if t, ok := m.current(); ok {
		details = renderTicketDetails(t, rightWidth)
	} else {
		details = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(rightWidth).
			Render("Select a ticket to view details")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTable(leftWidth), " ", details)

	bottom := m.renderHelpBar()
	if m.focus == FocusSearch || m.criteria.Query != "" {
		bottom = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorBorder)).
			Padding(0, 1).
			Width(m.width - 2).
			Render(m.search.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", content, "", bottom)
}

func (m BrowserModel) renderTable(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("Tickets"))
	b.WriteString("\n\n")

	if len(m.tickets) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render("No tickets found"))
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(ColorBorder)).Width(width).Render(b.String())
	}

	idWidth, statusWidth, prioWidth, timeWidth := 5, 12, 7, 7
	titleWidth := max(width-4-idWidth-statusWidth-prioWidth-timeWidth-8, 12)

	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s %*s",
		idWidth, "ID", titleWidth, "TITLE", statusWidth, "STATUS", prioWidth, "PRIO", timeWidth, "TIME")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Padding(0, 1).Render(headers))
	b.WriteString("\n\n")

	start := m.currentPage * m.ticketsPerPage
	end := min(start+m.ticketsPerPage, len(m.tickets))
	for i := start; i < end; i++ {
		t := m.tickets[i]

		// pad before colouring so ANSI codes don't skew the columns
		status := lipgloss.NewStyle().Foreground(StatusColor(t.Status)).
			Render(fmt.Sprintf("%-*s", statusWidth, t.Status))
		prio := lipgloss.NewStyle().Foreground(PriorityColor(t.Priority)).
			Render(fmt.Sprintf("%-*s", prioWidth, t.Priority))

		row := fmt.Sprintf("%-*s %-*s %s %s %*s",
			idWidth, fmt.Sprintf("#%d", t.ID),
			titleWidth, truncate(t.Title, titleWidth),
			status, prio,
			timeWidth, parser.FormatMinutes(t.TimeLoggedMinutes))

		if i == m.selected {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.ticketsPerPage < len(m.tickets) {
		pages := (len(m.tickets) + m.ticketsPerPage - 1) / m.ticketsPerPage
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1).
			Render(fmt.Sprintf("Page %d/%d (%d tickets)", m.currentPage+1, pages, len(m.tickets))))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderTicketDetails renders the bordered details panel shared by the
// browser and the tracker
func renderTicketDetails(t models.Ticket, width int) string {
	var b strings.Builder
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Width(width - 2).
		Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("\n\n")

	b.WriteString(label.Render("Status:   "))
	b.WriteString(lipgloss.NewStyle().Foreground(StatusColor(t.Status)).Bold(true).Render(string(t.Status)))
	b.WriteString("\n")
	b.WriteString(label.Render("Priority: "))
	b.WriteString(lipgloss.NewStyle().Foreground(PriorityColor(t.Priority)).Render(string(t.Priority)))
	b.WriteString("\n")
	b.WriteString(label.Render("Category: "))
	b.WriteString(accent.Render(t.Category))
	b.WriteString("\n")
	if len(t.Tags) > 0 {
		b.WriteString(label.Render("Tags:     "))
		b.WriteString(accent.Render("#" + strings.Join(t.Tags, " #")))
		b.WriteString("\n")
	}
	b.WriteString(label.Render("Logged:   "))
	b.WriteString(parser.FormatMinutes(t.TimeLoggedMinutes))
	b.WriteString("\n")
	b.WriteString(label.Render("Created:  "))
	b.WriteString(t.CreatedAt.Local().Format("Jan 02, 2006 15:04"))
	b.WriteString("\n")
	b.WriteString(label.Render("Updated:  "))
	b.WriteString(t.UpdatedAt.Local().Format("Jan 02, 2006 15:04"))
	b.WriteString("\n")

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Width(width - 2).
			Render(t.Description))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

func (m BrowserModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("↑/↓ nav · ←/→ page · / search · s next status · t track time · q/esc quit")
}

// truncate shortens s to at most n runes, marking the cut with ...
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
