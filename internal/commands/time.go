package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/parser"
	"github.com/balkashynov/devtrack/internal/tui"
)

func newLogCmd(a *app) *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log <ticket_id> <duration>",
		Short: "Log time spent on a ticket",
		Long: `Record time spent on a ticket.

Durations: 45, 45m, 1h, 1h30m, 1.5h, 90min (up to 24h)

Usage:
  devtrack log 42 1h30m -n "Reinstalled VPN client"`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			id, err := parseTicketID(args[0])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			minutes, err := parser.ParseDuration(args[1])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			notes, _ := cmd.Flags().GetString("note")

			entry, err := a.store.LogTimeForTicket(cmd.Context(), id, minutes, notes)
			if !report(out, err) {
				return
			}
			fmt.Fprintf(out, "Logged %s on ticket #%d\n", parser.FormatMinutes(entry.DurationMinutes), entry.TicketID)
			if t, ok := a.store.GetTicketByID(id); ok {
				fmt.Fprintf(out, "Total on ticket: %s\n", parser.FormatMinutes(t.TimeLoggedMinutes))
			}
		},
	}
	logCmd.Flags().StringP("note", "n", "", "What the time was spent on")
	return logCmd
}

func newTrackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track <ticket_id>",
		Short: "Track time on a ticket with a live timer",
		Long: `Open a live timer for a ticket. Press s to stop and log the elapsed
time (rounded up to the minute), or esc to discard it.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			id, err := parseTicketID(args[0])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			t, ok := a.store.GetTicketByID(id)
			if !ok {
				fmt.Fprintf(out, "Error: Ticket #%d not found.\n", id)
				return
			}
			if err := tui.RunTracker(cmd.Context(), a.store, t, out); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		},
	}
}

func newLogsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logs [ticket_id]",
		Short: "Show time logs",
		Long:  "Show the time logs of one ticket, or of every ticket when no id is given",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			var logs []models.TimeLog
			if len(args) == 1 {
				id, err := parseTicketID(args[0])
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					return
				}
				logs = a.store.TimeLogsForTicket(id)
			} else {
				logs = a.store.TimeLogs()
			}

			if len(logs) == 0 {
				fmt.Fprintln(out, "No time logged yet.")
				return
			}
			printLogs(out, logs)

			total := 0
			for _, l := range logs {
				total += l.DurationMinutes
			}
			fmt.Fprintf(out, "\nTotal: %s across %d logs\n", parser.FormatMinutes(total), len(logs))
		},
	}
}

func printLogs(out io.Writer, logs []models.TimeLog) {
	for _, l := range logs {
		fmt.Fprintf(out, "  %s  #%-4d %7s  %s", l.LoggedAt.Local().Format("2006-01-02 15:04"), l.TicketID, parser.FormatMinutes(l.DurationMinutes), l.UserID)
		if l.Notes != "" {
			fmt.Fprintf(out, "  %s", l.Notes)
		}
		fmt.Fprintln(out)
	}
}
