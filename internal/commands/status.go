package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/models"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <ticket_id> <status>",
		Short: "Set the status of a ticket",
		Long: `Move a ticket to any status.

Statuses: open, in-progress, pending, resolved, closed

Usage:
  devtrack status 42 pending
  devtrack status 42 "In Progress"`,
		Args: cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			status, err := models.ParseStatus(strings.Join(args[1:], " "))
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			setStatus(cmd, a, args[0], status)
		},
	}
}

// newStatusShortcutCmds returns one command per common transition
func newStatusShortcutCmds(a *app) []*cobra.Command {
	shortcuts := []struct {
		use    string
		short  string
		status models.Status
	}{
		{"start", "Mark a ticket In Progress", models.StatusInProgress},
		{"resolve", "Mark a ticket Resolved", models.StatusResolved},
		{"close", "Mark a ticket Closed", models.StatusClosed},
		{"reopen", "Reopen a ticket", models.StatusOpen},
	}

	cmds := make([]*cobra.Command, 0, len(shortcuts))
	for _, sc := range shortcuts {
		status := sc.status
		cmds = append(cmds, &cobra.Command{
			Use:   sc.use + " <ticket_id>",
			Short: sc.short,
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				setStatus(cmd, a, args[0], status)
			},
		})
	}
	return cmds
}

func setStatus(cmd *cobra.Command, a *app, rawID string, status models.Status) {
	out := cmd.OutOrStdout()
	id, err := parseTicketID(rawID)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	if !report(out, a.store.UpdateTicketStatus(cmd.Context(), id, status)) {
		return
	}
	t, _ := a.store.GetTicketByID(id)
	fmt.Fprintf(out, "Ticket #%d is now %s: %s\n", t.ID, t.Status, t.Title)
}
