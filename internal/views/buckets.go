package views

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/balkashynov/devtrack/internal/models"
)

// Period is the width of a creation histogram bucket
type Period string

const (
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
)

// ParsePeriod accepts day, week or month in any case
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Day, Week, Month:
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q: use day, week or month", s)
}

// Bucket counts the tickets created within one period
type Bucket struct {
	Start time.Time
	Count int
}

// Label renders the bucket start for display
func (b Bucket) Label(p Period) string {
	switch p {
	case Month:
		return b.Start.Format("Jan 2006")
	case Week:
		return "wk " + b.Start.Format("Jan 2")
	default:
		return b.Start.Format("Jan 2")
	}
}

// BucketByCreated groups tickets by the period their createdAt falls in,
// evaluated in loc. Only periods with tickets appear, oldest first.
func BucketByCreated(tickets []models.Ticket, p Period, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[time.Time]int)
	for _, t := range tickets {
		counts[periodStart(t.CreatedAt.In(loc), p)]++
	}

	out := make([]Bucket, 0, len(counts))
	for start, n := range counts {
		out = append(out, Bucket{Start: start, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func periodStart(t time.Time, p Period) time.Time {
	switch p {
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Week:
		return WeekStart(t)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// WeekStart returns midnight on the Monday of the calendar week containing t
func WeekStart(t time.Time) time.Time {
	daysFromMonday := int(t.Weekday()+6) % 7
	start := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}

// Grouping selects the key TimeLoggedBy groups tickets under
type Grouping string

const (
	ByCategory Grouping = "category"
	ByPriority Grouping = "priority"
	ByStatus   Grouping = "status"
)

// ParseGrouping accepts category, priority or status in any case
func ParseGrouping(s string) (Grouping, error) {
	switch g := Grouping(strings.ToLower(strings.TrimSpace(s))); g {
	case ByCategory, ByPriority, ByStatus:
		return g, nil
	}
	return "", fmt.Errorf("invalid grouping %q: use category, priority or status", s)
}

// TimeTotal is the logged time of one group
type TimeTotal struct {
	Key     string
	Minutes int
}

// Hours converts Minutes to hours rounded to two decimals
func (t TimeTotal) Hours() float64 {
	return math.Round(float64(t.Minutes)/60*100) / 100
}

// TimeLoggedBy sums timeLoggedMinutes per group, largest first with ties in
// key order. Groups with no logged time are included.
func TimeLoggedBy(tickets []models.Ticket, g Grouping) []TimeTotal {
	minutes := make(map[string]int)
	for _, t := range tickets {
		minutes[groupKey(t, g)] += t.TimeLoggedMinutes
	}

	out := make([]TimeTotal, 0, len(minutes))
	for k, m := range minutes {
		out = append(out, TimeTotal{Key: k, Minutes: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func groupKey(t models.Ticket, g Grouping) string {
	switch g {
	case ByPriority:
		return string(t.Priority)
	case ByStatus:
		return string(t.Status)
	default:
		return t.Category
	}
}
