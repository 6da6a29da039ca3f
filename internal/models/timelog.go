package models

import "time"

// TimeLog records time spent against a ticket. Logs are never edited.
type TimeLog struct {
	ID              string    `json:"id"`
	TicketID        int       `json:"ticketId"`
	UserID          string    `json:"userId"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes,omitempty"`
	LoggedAt        time.Time `json:"loggedAt"`
}
