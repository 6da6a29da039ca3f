package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/parser"
)

// TrackerModel times work on a single ticket
type TrackerModel struct {
	width  int
	height int
	ticket models.Ticket

	// Timer state
	now       func() time.Time
	startedAt time.Time
	elapsed   time.Duration

	// Animation state
	frame int

	// UI state
	stopping   bool // s pressed: log the elapsed time
	discarding bool // esc/q pressed: drop the timer
}

// trackerTickMsg is sent every second to update the timer
type trackerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTrackerModel starts a timer on ticket
func NewTrackerModel(ticket models.Ticket) TrackerModel {
	return newTrackerModel(ticket, time.Now)
}

func newTrackerModel(ticket models.Ticket, now func() time.Time) TrackerModel {
	return TrackerModel{
		ticket:    ticket,
		now:       now,
		startedAt: now(),
	}
}

// Minutes is the time to log for the run so far
func (m TrackerModel) Minutes() int {
	return parser.ElapsedMinutes(m.now().Sub(m.startedAt))
}

// Init starts the timer and animation tickers
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(trackerTick(), animationTick())
}

func trackerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return trackerTickMsg{} })
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })
}

// Update handles messages
func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done := m.stopping || m.discarding

	switch msg := msg.(type) {
	case trackerTickMsg:
		m.elapsed = m.now().Sub(m.startedAt)
		if done {
			return m, nil
		}
		return m, trackerTick()

	case animationTickMsg:
		m.frame = (m.frame + 1) % 4
		if done {
			return m, nil
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.discarding = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m TrackerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTimerPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		renderTicketDetails(m.ticket, rightWidth),
	)
	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func (m TrackerModel) renderTimerPanel(width, height int) string {
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	frames := []string{"◴", "◷", "◶", "◵"}
	header := fmt.Sprintf("%s  TRACKING TIME  %s", frames[m.frame], frames[m.frame])

	title := truncate(m.ticket.Title, width-4)

	var clock []string
	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		clock = append(clock, centered.Render(line))
	}

	components := []string{
		centered.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render(header),
		centered.Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Render(fmt.Sprintf("#%d", m.ticket.ID)),
		centered.Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true).Render(title),
		strings.Join(clock, "\n"),
		centered.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render(fmt.Sprintf("Started at %s · will log %s", m.startedAt.Format("15:04:05"), parser.FormatMinutes(m.Minutes()))),
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// bigDigits are 5x5 glyphs for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

func renderBigClock(d time.Duration) string {
	text := parser.FormatClock(d)
	if d < time.Hour {
		text = text[3:] // MM:SS
	}

	var lines [5]strings.Builder
	for _, r := range text {
		glyph := bigDigits[r]
		for i := range lines {
			lines[i].WriteString(glyph[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(out, "\n")
}

func (m TrackerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("s stop & log time · esc/q discard · ctrl+c quit")
}
