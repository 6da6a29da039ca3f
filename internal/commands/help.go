package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show comprehensive help for devtrack",
		Long:  `Display detailed help for all devtrack commands and flags.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				if target, _, err := cmd.Root().Find(args); err == nil && target != cmd.Root() {
					_ = target.Help()
					return
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), helpText)
		},
	}
}

const helpText = `
devtrack - CLI Helpdesk Tickets + Time Tracker

COMMANDS:

  add <title>             Create a new ticket with smart parsing
    -d, --description     What is happening
    -c, --category        Category, e.g. Network, Access, Hardware
    -t, --tags            Comma-separated tags
    -p, --priority        Priority: low|medium|high or 1-3
    --auto                Suggest missing category, priority and tags
    -i, --interactive     Open the form UI

    Smart syntax:
      #tags         Tags
      @category     Category
      +priority     Priority (low/medium/high)

    Example:
      devtrack add "VPN drops hourly #vpn @Network +high" -d "Every hour since Monday"

  ls                      List tickets, newest first
    -s, --status          Filter by status
    -p, --priority        Filter by priority
    -q, --search          Filter by text
    --json                JSON output
    -i, --interactive     Browse in the interactive UI

    Quick actions:
      up/down       Navigate tickets
      left/right    Change page
      /             Search
      s             Advance status
      t             Track time on selected ticket
      esc/q         Quit

  search <query>          Search tickets by text (same flags as ls)
  show <id>               Show a ticket with its time logs

  edit <id>               Change ticket fields
    --title, -d, -c, -p, -s, -t

  status <id> <status>    Set status: open|in-progress|pending|resolved|closed
  start <id>              Mark ticket In Progress
  resolve <id>            Mark ticket Resolved
  close <id>              Mark ticket Closed
  reopen <id>             Mark ticket Open

  log <id> <duration>     Log time, e.g. 45m, 1h30m, 1.5h
    -n, --note            What the time was spent on
  track <id>              Live timer; s logs the time, esc discards it
  logs [id]               Show time logs

  report                  Text charts of the ticket store
    --by                  status|priority|created|time
    --period              day|week|month (for --by created)
    --group               category|priority|status (for --by time)

  timesheet               Weekly timesheet of logged time
    --week-of             Any date in the week (YYYY-MM-DD)

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config                Config file (default ~/.devtrack/config.yaml)

Storage, logging and seeding are configured in the config file or with
DEVTRACK_* environment variables, e.g. DEVTRACK_STORAGE_DRIVER=sqlite.

`
