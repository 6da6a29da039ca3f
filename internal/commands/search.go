package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tickets by text",
		Long: `Search tickets by case-insensitive text match across title, description,
category and tags. Accepts the same filters as ls.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				return
			}
			criteria.Query = strings.Join(args, " ")
			runList(cmd, a, criteria)
		},
	}
	addFilterFlags(searchCmd)
	return searchCmd
}
