// Package categorize suggests a category, priority and tags for a ticket
// from its free-text content.
package categorize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/balkashynov/devtrack/internal/models"
)

// ErrEmptyContent is returned when there is nothing to categorize
var ErrEmptyContent = errors.New("ticket content cannot be empty")

// Request is the text a categorizer reads
type Request struct {
	TicketContent string
}

// Result is a categorizer's raw suggestion. Priority is free text until
// normalized.
type Result struct {
	Category string
	Priority string
	Tags     []string
}

// Suggestion is a normalized Result ready to apply to a TicketInput
type Suggestion struct {
	Category string
	Priority models.Priority
	Tags     []string
}

// Categorizer suggests metadata for ticket content
type Categorizer interface {
	Categorize(ctx context.Context, req Request) (Result, error)
}

// Normalize runs c over content and coerces its answer into a Suggestion.
// An unrecognised priority becomes medium and is logged.
func Normalize(ctx context.Context, c Categorizer, content string, log *slog.Logger) (Suggestion, error) {
	if strings.TrimSpace(content) == "" {
		return Suggestion{}, ErrEmptyContent
	}

	res, err := c.Categorize(ctx, Request{TicketContent: content})
	if err != nil {
		return Suggestion{}, fmt.Errorf("categorizing ticket: %w", err)
	}

	priority := models.Priority(strings.ToLower(strings.TrimSpace(res.Priority)))
	if !priority.Valid() {
		if log != nil {
			log.Warn("categorizer returned unknown priority, using medium", "priority", res.Priority)
		}
		priority = models.PriorityMedium
	}

	return Suggestion{
		Category: strings.TrimSpace(res.Category),
		Priority: priority,
		Tags:     res.Tags,
	}, nil
}
