package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/backing"
	"github.com/balkashynov/devtrack/internal/categorize"
	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/store"
	"github.com/balkashynov/devtrack/internal/views"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(backing.NewMemory(),
		store.WithSeedCount(0),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, s.Init(context.Background()))
	for _, in := range []models.TicketInput{
		{Title: "Printer jam", Description: "Floor 2", Category: "Hardware", Priority: models.PriorityLow},
		{Title: "VPN drops", Description: "Every hour", Category: "Network", Priority: models.PriorityHigh},
		{Title: "Password reset", Description: "Locked out", Category: "Access", Priority: models.PriorityMedium},
	} {
		_, err := s.AddTicket(context.Background(), in)
		require.NoError(t, err)
	}
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestBrowserListsNewestFirst(t *testing.T) {
	m := NewBrowserModel(context.Background(), newStore(t), views.Criteria{})
	require.Len(t, m.tickets, 3)
	assert.Equal(t, 3, m.tickets[0].ID)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, updated.View(), "Password reset")
}

func TestBrowserSearchFilters(t *testing.T) {
	var m tea.Model = NewBrowserModel(context.Background(), newStore(t), views.Criteria{})
	m, _ = m.Update(key("/"))
	m = typeText(m, "vpn")

	b := m.(BrowserModel)
	require.Len(t, b.tickets, 1)
	assert.Equal(t, "VPN drops", b.tickets[0].Title)

	m, _ = m.Update(key("esc"))
	assert.Len(t, m.(BrowserModel).tickets, 3)
}

func TestBrowserCyclesStatus(t *testing.T) {
	s := newStore(t)
	var m tea.Model = NewBrowserModel(context.Background(), s, views.Criteria{})
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("s"))

	ticket, ok := s.GetTicketByID(2)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, ticket.Status)
	assert.Equal(t, 2, m.(BrowserModel).tickets[m.(BrowserModel).selected].ID)
	assert.Empty(t, m.(BrowserModel).warning)
}

func TestBrowserTrackQuits(t *testing.T) {
	var m tea.Model = NewBrowserModel(context.Background(), newStore(t), views.Criteria{})
	m, cmd := m.Update(key("t"))

	require.NotNil(t, m.(BrowserModel).trackTicket)
	assert.Equal(t, 3, m.(BrowserModel).trackTicket.ID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFormCreatesTicket(t *testing.T) {
	s := newStore(t)
	var m tea.Model = NewFormModel(context.Background(), s, nil, nil, FormValues{})

	m, _ = m.Update(key("enter"))
	assert.Equal(t, "Title is required", m.(FormModel).validationErr)

	m = typeText(m, "Outlook crashes")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "On startup")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "Software")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "3")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "#email, outlook")
	m, _ = m.Update(key("enter"))
	require.Equal(t, StepSave, m.(FormModel).currentStep)
	m, _ = m.Update(key("enter"))

	created := m.(FormModel).created
	require.NotNil(t, created)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, models.PriorityHigh, created.Priority)
	assert.Equal(t, []string{"email", "outlook"}, created.Tags)
	assert.Len(t, s.Tickets(), 4)
}

func TestFormRejectsBadPriority(t *testing.T) {
	m := NewFormModel(context.Background(), newStore(t), nil, nil, FormValues{
		Title: "T", Description: "D", Category: "C", Priority: "urgent",
	})
	m.currentStep = StepPriority

	updated, _ := m.Update(key("enter"))
	assert.Equal(t, StepPriority, updated.(FormModel).currentStep)
	assert.NotEmpty(t, updated.(FormModel).validationErr)
}

func TestFormCategorize(t *testing.T) {
	var m tea.Model = NewFormModel(context.Background(), newStore(t), categorize.NewKeywords(), nil, FormValues{
		Title:       "VPN is down",
		Description: "Cannot reach the network",
		Tags:        []string{"remote"},
	})

	m, cmd := m.Update(key("ctrl+a"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	in, err := m.(FormModel).Input()
	require.NoError(t, err)
	assert.Equal(t, "Network", in.Category)
	assert.Equal(t, models.PriorityHigh, in.Priority)
	assert.Equal(t, []string{"remote", "network", "vpn"}, in.Tags)
}

func TestTrackerMinutes(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTrackerModel(models.Ticket{ID: 7, Title: "VPN"}, func() time.Time { return now })
	assert.Equal(t, 1, m.Minutes())

	now = now.Add(12*time.Minute + 5*time.Second)
	assert.Equal(t, 13, m.Minutes())

	updated, cmd := m.Update(key("s"))
	assert.True(t, updated.(TrackerModel).stopping)
	require.NotNil(t, cmd)

	updated, _ = m.Update(key("esc"))
	assert.True(t, updated.(TrackerModel).discarding)
	assert.False(t, updated.(TrackerModel).stopping)
}

func TestRenderBigClock(t *testing.T) {
	short := renderBigClock(90 * time.Second)
	long := renderBigClock(2*time.Hour + 5*time.Second)
	assert.Len(t, splitLines(short), 5)
	assert.Greater(t, len(splitLines(long)[0]), len(splitLines(short)[0]))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
