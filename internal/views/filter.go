// Package views derives read-only projections from ticket and time log
// snapshots: filtered lists, per-enum counts, creation histograms and
// logged-time breakdowns. Nothing here mutates its input.
package views

import (
	"sort"
	"strings"

	"github.com/balkashynov/devtrack/internal/models"
)

// Criteria selects tickets. Zero-valued fields match everything.
type Criteria struct {
	Status   models.Status
	Priority models.Priority
	// Query is matched case-insensitively against title, description,
	// category and tags
	Query string
}

// Filter returns the tickets matching c, in input order
func Filter(tickets []models.Ticket, c Criteria) []models.Ticket {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := []models.Ticket{}
	for _, t := range tickets {
		if c.Status != "" && t.Status != c.Status {
			continue
		}
		if c.Priority != "" && t.Priority != c.Priority {
			continue
		}
		if query != "" && !matches(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(t models.Ticket, query string) bool {
	fields := append([]string{t.Title, t.Description, t.Category}, t.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// Count is the number of tickets sharing a key
type Count struct {
	Key   string
	Count int
}

// CountByStatus counts tickets per status. Every status appears, in
// workflow order, even when its count is zero. Values outside the known set
// follow in name order so the counts always sum to len(tickets).
func CountByStatus(tickets []models.Ticket) []Count {
	return countBy(tickets, models.Statuses, func(t models.Ticket) models.Status { return t.Status })
}

// CountByPriority counts tickets per priority from low to high
func CountByPriority(tickets []models.Ticket) []Count {
	return countBy(tickets, models.Priorities, func(t models.Ticket) models.Priority { return t.Priority })
}

func countBy[K ~string](tickets []models.Ticket, known []K, key func(models.Ticket) K) []Count {
	counts := make(map[K]int, len(known))
	for _, t := range tickets {
		counts[key(t)]++
	}

	out := make([]Count, 0, len(counts))
	for _, k := range known {
		out = append(out, Count{Key: string(k), Count: counts[k]})
		delete(counts, k)
	}

	var extra []Count
	for k, n := range counts {
		extra = append(extra, Count{Key: string(k), Count: n})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Key < extra[j].Key })
	return append(out, extra...)
}
