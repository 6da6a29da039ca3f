package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/categorize"
	"github.com/balkashynov/devtrack/internal/models"
	"github.com/balkashynov/devtrack/internal/parser"
	"github.com/balkashynov/devtrack/internal/tui"
)

func newAddCmd(a *app) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add [ticket title]",
		Short: "Add a new ticket",
		Long: `Add a new support ticket.

Modes:
  Interactive: devtrack add -i (or just 'devtrack add' with no arguments)
  Quick: devtrack add "Printer jammed" -d "Floor 2 printer" -c Hardware
  Smart parsing: devtrack add "VPN drops hourly #vpn,remote @Network +high" -d "..."

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  @category   - Category
  +priority   - Priority (low/medium/high or 1/2/3)

With --auto, missing category, priority and tags are suggested from the
title and description.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			interactive, _ := cmd.Flags().GetBool("interactive")

			// If no args and not explicitly interactive, go interactive
			if len(args) == 0 {
				interactive = true
			}

			parsed := parser.ParseTitle(strings.Join(args, " "))
			values := formValues(cmd, parsed)

			if !interactive && len(parsed.Errors) > 0 {
				fmt.Fprintf(out, "Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
				fmt.Fprintln(out, "Opening interactive mode for confirmation...")
				interactive = true
			}

			if interactive {
				if err := tui.RunForm(cmd.Context(), a.store, a.categorizer, a.logger(), values, out); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
				return
			}

			runDirectAdd(cmd, a, values)
		},
	}

	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("description", "d", "", "What is happening")
	addCmd.Flags().StringP("category", "c", "", "Category, e.g. Network, Access, Hardware")
	addCmd.Flags().StringSliceP("tags", "t", []string{}, "Comma-separated tags")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	addCmd.Flags().Bool("auto", false, "Suggest category, priority and tags from the text")

	return addCmd
}

// formValues merges parsed title metadata with flags. Flags take precedence.
func formValues(cmd *cobra.Command, parsed parser.ParsedTicket) tui.FormValues {
	values := tui.FormValues{
		Title:    parsed.Title,
		Category: parsed.Category,
		Priority: string(parsed.Priority),
		Tags:     parsed.Tags,
	}

	if description, _ := cmd.Flags().GetString("description"); description != "" {
		values.Description = description
	}
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		values.Category = category
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		values.Tags = tags
	}
	if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
		values.Priority = priority
	}
	return values
}

// runDirectAdd creates the ticket without the TUI
func runDirectAdd(cmd *cobra.Command, a *app, values tui.FormValues) {
	out := cmd.OutOrStdout()

	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		content := strings.TrimSpace(values.Title + "\n" + values.Description)
		suggestion, err := categorize.Normalize(cmd.Context(), a.categorizer, content, a.logger())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		if values.Category == "" {
			values.Category = suggestion.Category
		}
		if values.Priority == "" {
			values.Priority = string(suggestion.Priority)
		}
		if len(values.Tags) == 0 {
			values.Tags = suggestion.Tags
		}
	}

	priority := models.PriorityMedium
	if values.Priority != "" {
		p, err := models.ParsePriority(values.Priority)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		priority = p
	}

	ticket, err := a.store.AddTicket(cmd.Context(), models.TicketInput{
		Title:       values.Title,
		Description: values.Description,
		Category:    values.Category,
		Priority:    priority,
		Tags:        values.Tags,
	})
	if !report(out, err) {
		return
	}

	fmt.Fprintf(out, "Created ticket #%d: %s\n", ticket.ID, ticket.Title)
	printTicketMeta(out, ticket)
}

func printTicketMeta(out io.Writer, t models.Ticket) {
	fmt.Fprintf(out, "  Category: %s\n", t.Category)
	fmt.Fprintf(out, "  Priority: %s\n", t.Priority)
	fmt.Fprintf(out, "  Status: %s\n", t.Status)
	if len(t.Tags) > 0 {
		fmt.Fprintf(out, "  Tags: %s\n", strings.Join(t.Tags, ", "))
	}
}
