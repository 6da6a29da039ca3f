package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/devtrack/internal/categorize"
	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/store"
	"github.com/balkashynov/devtrack/internal/views"
)

// TicketStore is the part of the store the TUI drives
type TicketStore interface {
	Tickets() []models.Ticket
	AddTicket(ctx context.Context, in models.TicketInput) (models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id int, status models.Status) error
	LogTimeForTicket(ctx context.Context, ticketID, minutes int, notes string) (models.TimeLog, error)
}

// RunBrowser opens the interactive ticket browser on the tickets matching c
func RunBrowser(ctx context.Context, s TicketStore, c views.Criteria, out io.Writer) error {
	model := NewBrowserModel(ctx, s, c)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return nil
	}
	if m.warning != "" {
		fmt.Fprintf(out, "Warning: %s\n", m.warning)
	}
	if m.trackTicket != nil {
		return RunTracker(ctx, s, *m.trackTicket, out)
	}
	return nil
}

// RunForm starts the interactive new ticket form
func RunForm(ctx context.Context, s TicketStore, c categorize.Categorizer, log *slog.Logger, prefilled FormValues, out io.Writer) error {
	model := NewFormModel(ctx, s, c, log, prefilled)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(FormModel); ok {
		switch {
		case m.cancelled:
			fmt.Fprintln(out, "Ticket creation cancelled.")
		case m.created != nil:
			if m.warning != "" {
				fmt.Fprintf(out, "Warning: %s\n", m.warning)
			}
			fmt.Fprintf(out, "Created ticket #%d: %s\n", m.created.ID, m.created.Title)
		case m.err != nil:
			fmt.Fprintf(out, "Error: %v\n", m.err)
		}
	}
	return nil
}

// RunTracker times work on ticket and logs it when stopped with s
func RunTracker(ctx context.Context, s TicketStore, ticket models.Ticket, out io.Writer) error {
	model := NewTrackerModel(ticket)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(TrackerModel)
	if !ok || !m.stopping {
		fmt.Fprintln(out, "Timer discarded, nothing logged.")
		return nil
	}

	entry, err := s.LogTimeForTicket(ctx, ticket.ID, m.Minutes(), "")
	if err != nil && !errors.Is(err, store.ErrPersistence) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	} else if err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	}
	fmt.Fprintf(out, "Logged %dm on ticket #%d: %s\n", entry.DurationMinutes, ticket.ID, ticket.Title)
	return nil
}
