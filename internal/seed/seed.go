// Package seed generates the sample tickets a fresh install starts with.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/balkashynov/devtrack/internal/models"
)

// DefaultCount is the number of tickets seeded on first run
const DefaultCount = 10

const seedWindowDays = 30

var sampleTitles = []string{
	"Login fails on the mobile app", "Admin dashboard UI improvements",
	"User report export produces an empty file", "Add a creation date filter to the product list",
	"Save button unresponsive on the billing form", "Optimize image loading in the gallery",
	"Layout broken in Firefox", "Add pagination to the orders table",
	"HTTP 500 when processing a payment", "Design a new onboarding flow",
	"Update dependencies with known vulnerabilities", "Investigate slow customer API",
	"Push notifications not delivered on iOS", "Change the primary theme colors",
	"Advanced search for the catalog", "Tax calculation error in invoicing",
	"Test the new live chat feature", "Intro video does not play",
	"Validate profile form fields", "Translate the app into French",
}

var sampleDescriptions = []string{
	"Users report they cannot sign in since the last release.",
	"The admin dashboard needs a redesign to be more intuitive.",
	"Exporting the user report as CSV produces an empty file.",
	"Product list needs a filter by creation date.",
	"The save button on the billing form is disabled or does not react.",
	"Gallery images take too long to load and hurt the experience.",
	"Several interface elements render incorrectly in Firefox.",
	"The orders table shows too many rows at once and needs pagination.",
	"Some users receive an HTTP 500 error when completing checkout.",
	"Propose and design a friendlier welcome flow for new users.",
	"Several dependencies have known vulnerabilities and must be updated.",
	"The endpoint returning the customer list has been very slow lately.",
	"Users on iOS devices are not receiving push notifications.",
	"Marketing requested a change to the primary and secondary palette.",
	"Implement catalog search that filters on several criteria at once.",
	"The invoicing module miscalculates taxes in some cases.",
	"The new chat feature needs thorough testing before launch.",
	"The promotional video on the home page fails in some browsers.",
	"Client-side validation is missing on the profile fields.",
	"The whole interface needs a French translation.",
}

var sampleCategories = []string{
	"Bug", "Improvement", "New Feature", "Technical Support", "UI/UX Design",
	"Performance", "Security", "Deployment", "Database",
}

var sampleTags = [][]string{
	{"login", "mobile", "auth"}, {"ui", "admin", "dashboard"}, {"export", "csv", "report"},
	{"filter", "product", "backend"}, {"form", "bug", "validation"}, {"performance", "images", "frontend"},
	{"browser", "firefox", "css"}, {"pagination", "orders", "list"}, {"payment", "error", "stripe"},
	{"design", "ux", "onboarding"}, {"security", "update", "vulnerability"}, {"api", "performance", "database"},
	{"push", "ios", "notification"}, {"design", "theme", "colors"}, {"search", "catalog", "elasticsearch"},
	{"billing", "bug", "calculation"}, {"testing", "chat", "qa"}, {"video", "bug", "multimedia"},
	{"validation", "profile", "frontend"}, {"translation", "i18n", "localization"},
}

// NewRand returns a generator seeded from the runtime's entropy source
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate returns count sample tickets with ids 1..count. It has no side
// effects; persisting the result is the caller's job.
func Generate(count int, now time.Time, rng *rand.Rand) []models.Ticket {
	if count <= 0 {
		return []models.Ticket{}
	}
	now = now.UTC().Truncate(time.Millisecond)
	tickets := make([]models.Ticket, 0, count)
	for i := 0; i < count; i++ {
		tickets = append(tickets, generateTicket(i, now, rng))
	}
	return tickets
}

func generateTicket(index int, now time.Time, rng *rand.Rand) models.Ticket {
	createdAt := now.AddDate(0, 0, -rng.IntN(seedWindowDays))
	status := models.Statuses[rng.IntN(len(models.Statuses))]

	// updatedAt lands anywhere between creation and now, never before creation
	span := now.Sub(createdAt)
	updatedAt := createdAt.Add(time.Duration(rng.Int64N(int64(span) + 1))).Truncate(time.Millisecond)
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	title := sampleTitles[index%len(sampleTitles)]
	if rng.Float64() > 0.8 {
		title += fmt.Sprintf(" - Incident #%d", rng.IntN(1000))
	}
	description := sampleDescriptions[index%len(sampleDescriptions)]
	if rng.Float64() > 0.5 {
		description += " Needs urgent attention."
	} else {
		description += " Please review when possible."
	}

	var tags []string
	if rng.Float64() > 0.3 {
		pool := sampleTags[index%len(sampleTags)]
		tags = append([]string(nil), pool[:rng.IntN(len(pool))+1]...)
	}

	return models.Ticket{
		ID:                index + 1,
		Title:             title,
		Description:       description,
		Category:          sampleCategories[index%len(sampleCategories)],
		Priority:          models.Priorities[index%len(models.Priorities)],
		Status:            status,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
		Tags:              tags,
		TimeLoggedMinutes: loggedMinutesFor(status, rng),
	}
}

// loggedMinutesFor approximates how much work a ticket in status would
// have accumulated. Finished tickets carry the most.
func loggedMinutesFor(status models.Status, rng *rand.Rand) int {
	switch status {
	case models.StatusResolved, models.StatusClosed:
		return rng.IntN(240) + 60
	case models.StatusInProgress:
		return rng.IntN(120)
	default:
		return rng.IntN(30)
	}
}
