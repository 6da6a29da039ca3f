package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a ticket
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts low/medium/high (any case), med, or 1/2/3
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority %q: use low, medium, high or 1-3", s)
}

// Status is the lifecycle state of a ticket
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusPending    Status = "Pending"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// Statuses lists every status in workflow order
var Statuses = []Status{StatusOpen, StatusInProgress, StatusPending, StatusResolved, StatusClosed}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status that follows s in workflow order, wrapping around
func (s Status) Next() Status {
	for i, known := range Statuses {
		if s == known {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusOpen
}

// ParseStatus matches a status name ignoring case, spaces, dashes and underscores,
// so "in-progress", "inprogress" and "In Progress" are all accepted
func ParseStatus(s string) (Status, error) {
	key := statusKey(s)
	for _, known := range Statuses {
		if statusKey(string(known)) == key {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: use open, in-progress, pending, resolved or closed", s)
}

func statusKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Ticket is a unit of trackable support work
type Ticket struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags,omitempty"`

	// TimeLoggedMinutes is the cached sum of DurationMinutes over the
	// ticket's time logs. Only the store writes it.
	TimeLoggedMinutes int `json:"timeLoggedMinutes"`
}

// Clone returns a copy that shares no memory with t
func (t Ticket) Clone() Ticket {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}

// TicketInput holds the caller-authored fields of a new ticket
type TicketInput struct {
	Title       string
	Description string
	Category    string
	Priority    Priority
	Tags        []string
}

// TicketPatch holds the fields to change on an existing ticket.
// Nil fields are left untouched. id, createdAt and timeLoggedMinutes
// cannot be patched.
type TicketPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *Priority
	Status      *Status
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing
func (p TicketPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.Status == nil && p.Tags == nil
}
