package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/models"
)

func newEditCmd(a *app) *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit <ticket_id>",
		Short: "Edit an existing ticket",
		Long: `Edit an existing ticket. Only the fields given as flags change.

Usage:
  devtrack edit 42 --title "VPN drops on wifi" --priority high
  devtrack edit 42 --tags vpn,wifi
  devtrack edit 42 --tags ""     - Remove all tags`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			id, err := parseTicketID(args[0])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}

			patch, err := patchFromFlags(cmd)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			if patch.IsEmpty() {
				fmt.Fprintln(out, "Nothing to change. Use --title, --description, --category, --priority, --status or --tags.")
				return
			}

			ticket, err := a.store.UpdateTicket(cmd.Context(), id, patch)
			if !report(out, err) {
				return
			}
			fmt.Fprintf(out, "Updated ticket #%d: %s\n", ticket.ID, ticket.Title)
			printTicketMeta(out, ticket)
		},
	}

	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("category", "c", "", "New category")
	editCmd.Flags().StringP("priority", "p", "", "New priority: low, medium, high, or 1-3")
	editCmd.Flags().StringP("status", "s", "", "New status")
	editCmd.Flags().StringSliceP("tags", "t", nil, "Replace tags")

	return editCmd
}

// patchFromFlags builds a patch from the flags the user actually set
func patchFromFlags(cmd *cobra.Command) (models.TicketPatch, error) {
	var patch models.TicketPatch
	flags := cmd.Flags()

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	patch.Title = str("title")
	patch.Description = str("description")
	patch.Category = str("category")

	if v := str("priority"); v != nil {
		p, err := models.ParsePriority(*v)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if v := str("status"); v != nil {
		s, err := models.ParseStatus(*v)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetStringSlice("tags")
		patch.Tags = &tags
	}
	return patch, nil
}
