package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/devtrack/internal/models"
)

var (
	tagRegex      = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	categoryRegex = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	priorityRegex = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
)

// ParsedTicket represents a ticket title parsed from the quick-add syntax
type ParsedTicket struct {
	Title    string
	Category string
	Tags     []string
	Priority models.Priority
	Errors   []string
}

// ParseTitle extracts metadata from a ticket title using natural syntax
// Syntax: "VPN keeps dropping #vpn,remote @Network +high"
func ParseTitle(input string) ParsedTicket {
	result := ParsedTicket{
		Tags:   []string{},
		Errors: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[1], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Extract category (@Category), first one wins
	if m := categoryRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Category = m[1]
		input = categoryRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+high, +3, +med)
	if m := priorityRegex.FindStringSubmatch(input); len(m) > 1 {
		if p, err := models.ParsePriority(m[1]); err == nil {
			result.Priority = p
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+m[1]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
