package views

import (
	"sort"
	"time"

	"github.com/balkashynov/devtrack/internal/models"
)

// Weekdays lists the timesheet columns, Monday first
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// TimesheetRow is one ticket's logged minutes per weekday
type TimesheetRow struct {
	TicketID int
	// Title is empty when the logs reference a ticket that no longer exists
	Title   string
	Minutes [7]int // indexed Monday=0
}

// Total is the row's minutes across the whole week
func (r TimesheetRow) Total() int {
	total := 0
	for _, m := range r.Minutes {
		total += m
	}
	return total
}

// Timesheet is the logged time of one calendar week
type Timesheet struct {
	WeekStart time.Time
	Rows      []TimesheetRow // ordered by ticket id
}

// DayTotals sums every row per weekday
func (ts Timesheet) DayTotals() [7]int {
	var totals [7]int
	for _, r := range ts.Rows {
		for i, m := range r.Minutes {
			totals[i] += m
		}
	}
	return totals
}

// Total is the minutes logged across the week
func (ts Timesheet) Total() int {
	total := 0
	for _, r := range ts.Rows {
		total += r.Total()
	}
	return total
}

// WeeklyTimesheet places every log made during the week containing weekOf
// under its ticket and weekday, evaluated in loc. Tickets without logs that
// week are omitted.
func WeeklyTimesheet(tickets []models.Ticket, logs []models.TimeLog, weekOf time.Time, loc *time.Location) Timesheet {
	if loc == nil {
		loc = time.UTC
	}
	start := WeekStart(weekOf.In(loc))
	end := start.AddDate(0, 0, 7)

	titles := make(map[int]string, len(tickets))
	for _, t := range tickets {
		titles[t.ID] = t.Title
	}

	rows := make(map[int]*TimesheetRow)
	for _, l := range logs {
		at := l.LoggedAt.In(loc)
		if at.Before(start) || !at.Before(end) {
			continue
		}
		row, ok := rows[l.TicketID]
		if !ok {
			row = &TimesheetRow{TicketID: l.TicketID, Title: titles[l.TicketID]}
			rows[l.TicketID] = row
		}
		row.Minutes[(int(at.Weekday())+6)%7] += l.DurationMinutes
	}

	ts := Timesheet{WeekStart: start, Rows: make([]TimesheetRow, 0, len(rows))}
	for _, r := range rows {
		ts.Rows = append(ts.Rows, *r)
	}
	sort.Slice(ts.Rows, func(i, j int) bool { return ts.Rows[i].TicketID < ts.Rows[j].TicketID })
	return ts
}
