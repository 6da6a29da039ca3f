package categorize

import (
	"context"
	"sort"
	"strings"
)

// Rule maps keywords to a category and the tags it implies
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules covers the usual helpdesk categories
var DefaultRules = []Rule{
	{Category: "Network", Keywords: []string{"vpn", "wifi", "network", "dns", "internet", "proxy", "firewall"}},
	{Category: "Access", Keywords: []string{"password", "login", "sso", "locked", "account", "permission", "mfa"}},
	{Category: "Hardware", Keywords: []string{"printer", "laptop", "monitor", "keyboard", "mouse", "battery", "screen"}},
	{Category: "Software", Keywords: []string{"install", "update", "crash", "license", "app", "outlook", "excel"}},
	{Category: "Email", Keywords: []string{"email", "mailbox", "inbox", "spam", "calendar"}},
}

var (
	highWords = []string{"urgent", "asap", "outage", "down", "critical", "blocked", "cannot work", "production"}
	lowWords  = []string{"when possible", "minor", "cosmetic", "nice to have", "low priority"}
)

// Keywords is an offline categorizer driven by a keyword table
type Keywords struct {
	Rules []Rule
	// Fallback is the category when no rule matches
	Fallback string
}

// NewKeywords returns a Keywords categorizer over DefaultRules
func NewKeywords() *Keywords {
	return &Keywords{Rules: DefaultRules, Fallback: "General"}
}

// Categorize picks the rule with the most keyword hits. Matched keywords
// become tags.
func (k *Keywords) Categorize(_ context.Context, req Request) (Result, error) {
	text := strings.ToLower(req.TicketContent)

	best, bestHits := k.Fallback, 0
	tagSet := map[string]bool{}
	for _, rule := range k.Rules {
		hits := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				hits++
				tagSet[kw] = true
			}
		}
		if hits > bestHits {
			best, bestHits = rule.Category, hits
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return Result{Category: best, Priority: priorityOf(text), Tags: tags}, nil
}

func priorityOf(text string) string {
	for _, w := range highWords {
		if strings.Contains(text, w) {
			return "high"
		}
	}
	for _, w := range lowWords {
		if strings.Contains(text, w) {
			return "low"
		}
	}
	return "medium"
}
