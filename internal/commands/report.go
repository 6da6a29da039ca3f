package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/parser"
	"github.com/balkashynov/devtrack/internal/views"
)

const barWidth = 30

func newReportCmd(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize tickets and logged time",
		Long: `Print a summary of the ticket store as text charts.

Reports:
  --by status     Tickets per status (default)
  --by priority   Tickets per priority
  --by created    Tickets created per --period (day, week, month)
  --by time       Logged hours per --group (category, priority, status)`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			by, _ := cmd.Flags().GetString("by")
			tickets := a.store.Tickets()

			if len(tickets) == 0 {
				fmt.Fprintln(out, "No tickets to report on.")
				return
			}

			switch strings.ToLower(by) {
			case "status":
				printCounts(out, "Tickets by status", views.CountByStatus(tickets))
			case "priority":
				printCounts(out, "Tickets by priority", views.CountByPriority(tickets))
			case "created":
				raw, _ := cmd.Flags().GetString("period")
				period, err := views.ParsePeriod(raw)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					return
				}
				buckets := views.BucketByCreated(tickets, period, time.Local)
				counts := make([]views.Count, len(buckets))
				for i, b := range buckets {
					counts[i] = views.Count{Key: b.Label(period), Count: b.Count}
				}
				printCounts(out, "Tickets created per "+string(period), counts)
			case "time":
				raw, _ := cmd.Flags().GetString("group")
				grouping, err := views.ParseGrouping(raw)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					return
				}
				printTotals(out, "Time logged by "+string(grouping), views.TimeLoggedBy(tickets, grouping))
			default:
				fmt.Fprintf(out, "Error: unknown report %q: use status, priority, created or time\n", by)
			}
		},
	}

	reportCmd.Flags().String("by", "status", "Report: status, priority, created, time")
	reportCmd.Flags().String("period", "week", "Bucket width for --by created: day, week, month")
	reportCmd.Flags().String("group", "category", "Grouping for --by time: category, priority, status")

	return reportCmd
}

func printCounts(out io.Writer, title string, counts []views.Count) {
	fmt.Fprintf(out, "%s\n\n", title)

	top, width := 0, 0
	for _, c := range counts {
		top = max(top, c.Count)
		width = max(width, len(c.Key))
	}
	for _, c := range counts {
		fmt.Fprintf(out, "  %-*s  %-*s %d\n", width, c.Key, barWidth, bar(c.Count, top), c.Count)
	}
}

func printTotals(out io.Writer, title string, totals []views.TimeTotal) {
	fmt.Fprintf(out, "%s\n\n", title)

	top, width := 0, 0
	for _, t := range totals {
		top = max(top, t.Minutes)
		width = max(width, len(displayKey(t.Key)))
	}
	for _, t := range totals {
		fmt.Fprintf(out, "  %-*s  %-*s %.2fh (%s)\n", width, displayKey(t.Key), barWidth, bar(t.Minutes, top), t.Hours(), parser.FormatMinutes(t.Minutes))
	}
}

func displayKey(k string) string {
	if k == "" {
		return "(none)"
	}
	return k
}

// bar scales n against top; any non-zero value gets at least one block
func bar(n, top int) string {
	if n <= 0 || top <= 0 {
		return ""
	}
	return strings.Repeat("█", max(1, n*barWidth/top))
}
