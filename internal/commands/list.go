package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/parser"
	"github.com/balkashynov/devtrack/internal/tui"
	"github.com/balkashynov/devtrack/internal/views"
)

func newListCmd(a *app) *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tickets",
		Long:    "List tickets, newest first, with optional filters for status, priority and text",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				return
			}
			criteria.Query, _ = cmd.Flags().GetString("search")
			runList(cmd, a, criteria)
		},
	}
	addFilterFlags(listCmd)
	listCmd.Flags().StringP("search", "q", "", "Filter by text in title, description, category or tags")
	return listCmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "", "Filter by status: open, in-progress, pending, resolved, closed")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority: low, medium, high")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().BoolP("interactive", "i", false, "Browse results in the interactive UI")
}

func criteriaFromFlags(cmd *cobra.Command) (views.Criteria, error) {
	var c views.Criteria
	if s, _ := cmd.Flags().GetString("status"); s != "" {
		status, err := models.ParseStatus(s)
		if err != nil {
			return c, err
		}
		c.Status = status
	}
	if p, _ := cmd.Flags().GetString("priority"); p != "" {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return c, err
		}
		c.Priority = priority
	}
	return c, nil
}

func runList(cmd *cobra.Command, a *app, criteria views.Criteria) {
	out := cmd.OutOrStdout()

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := tui.RunBrowser(cmd.Context(), a.store, criteria, out); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		return
	}

	tickets := views.Filter(a.store.Tickets(), criteria)
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		renderJSON(out, tickets)
		return
	}

	if len(tickets) == 0 {
		if criteria == (views.Criteria{}) {
			fmt.Fprintln(out, "No tickets found. Use 'devtrack add \"ticket title\"' to create your first ticket.")
		} else {
			fmt.Fprintln(out, "No tickets match your filters.")
		}
		return
	}
	renderTable(out, tickets)
}

// renderTable outputs tickets as a table sized for 80-column terminals
func renderTable(out io.Writer, tickets []models.Ticket) {
	fmt.Fprintf(out, "%-5s %-30s %-12s %-8s %-10s %s\n", "ID", "TITLE", "STATUS", "PRIORITY", "CATEGORY", "TIME")
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, t := range tickets {
		fmt.Fprintf(out, "%-5d %-30s %-12s %-8s %-10s %s\n",
			t.ID,
			clip(t.Title, 30),
			t.Status,
			t.Priority,
			clip(t.Category, 10),
			parser.FormatMinutes(t.TimeLoggedMinutes))
	}
}

// renderJSON outputs tickets in their stored JSON shape
func renderJSON(out io.Writer, tickets []models.Ticket) {
	data, err := json.MarshalIndent(tickets, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(data))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
