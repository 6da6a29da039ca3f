package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/parser"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ticket_id>",
		Short: "Show a ticket and its time logs",
		Args:  cobra.ExactArgs(1),
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

			fmt.Fprintf(out, "#%d %s\n", t.ID, t.Title)
			printTicketMeta(out, t)
			fmt.Fprintf(out, "  Logged: %s\n", parser.FormatMinutes(t.TimeLoggedMinutes))
			fmt.Fprintf(out, "  Created: %s\n", t.CreatedAt.Local().Format("Jan 02, 2006 15:04"))
			fmt.Fprintf(out, "  Updated: %s\n", t.UpdatedAt.Local().Format("Jan 02, 2006 15:04"))
			fmt.Fprintf(out, "\n%s\n", t.Description)

			logs := a.store.TimeLogsForTicket(id)
			if len(logs) == 0 {
				return
			}
			fmt.Fprintf(out, "\nTime logs (%d):\n", len(logs))
			printLogs(out, logs)
		},
	}
}
