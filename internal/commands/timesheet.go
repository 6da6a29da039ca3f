package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/views"
)

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newTimesheetCmd(a *app) *cobra.Command {
	timesheetCmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Show a weekly timesheet of logged time",
		Long: `Show logged time per ticket and day for one calendar week (Monday to Sunday).

Example output:
  Ticket                   Mon    Tue    Wed    Thu    Fri    Sat    Sun    Total
  #3 VPN drops hourly      1h       -    30m      -      -      -      -   1h 30m
  Total                    1h       -    30m      -      -      -      -   1h 30m`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			weekOf := time.Now()
			if raw, _ := cmd.Flags().GetString("week-of"); raw != "" {
				d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
				if err != nil {
					fmt.Fprintf(out, "Error: invalid date %q: use YYYY-MM-DD\n", raw)
					return
				}
				weekOf = d
			}

			ts := views.WeeklyTimesheet(a.store.Tickets(), a.store.TimeLogs(), weekOf, time.Local)
			if len(ts.Rows) == 0 {
				fmt.Fprintf(out, "No time logged in the week of %s.\n", ts.WeekStart.Format("Jan 2, 2006"))
				return
			}
			renderTimesheet(out, ts)
		},
	}
	timesheetCmd.Flags().String("week-of", "", "Any date in the week to show (YYYY-MM-DD), default this week")
	return timesheetCmd
}

// renderTimesheet outputs the timesheet table, ticket names capped at 40 chars
func renderTimesheet(out io.Writer, ts views.Timesheet) {
	names := make([]string, len(ts.Rows))
	nameWidth := 20
	for i, row := range ts.Rows {
		title := row.Title
		if title == "" {
			title = "(deleted)"
		}
		names[i] = clip(fmt.Sprintf("#%d %s", row.TicketID, title), 40)
		nameWidth = max(nameWidth, len([]rune(names[i])))
	}

	fmt.Fprintf(out, "%-*s", nameWidth, "Ticket")
	for _, d := range dayNames {
		fmt.Fprintf(out, "  %6s", d)
	}
	fmt.Fprintf(out, "  %7s\n", "Total")
	separator := strings.Repeat("-", nameWidth+len(dayNames)*8+9)
	fmt.Fprintln(out, separator)

	for i, row := range ts.Rows {
		writeTimesheetRow(out, nameWidth, names[i], row.Minutes, row.Total())
	}

	fmt.Fprintln(out, separator)
	writeTimesheetRow(out, nameWidth, "Total", ts.DayTotals(), ts.Total())

	fmt.Fprintf(out, "\nWeek of %s to %s\n",
		ts.WeekStart.Format("Jan 2"),
		ts.WeekStart.AddDate(0, 0, 6).Format("Jan 2, 2006"))
}

func writeTimesheetRow(out io.Writer, nameWidth int, name string, minutes [7]int, total int) {
	fmt.Fprintf(out, "%-*s", nameWidth, name)
	for _, m := range minutes {
		fmt.Fprintf(out, "  %6s", cell(m))
	}
	fmt.Fprintf(out, "  %7s\n", cell(total))
}

func cell(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
