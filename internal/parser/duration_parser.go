package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	compactRegex  = regexp.MustCompile(`^(?:(\d+(?:\.\d+)?)h)?(?:(\d+)m)?$`)
	relativeRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(minute|minutes|min|mins|hour|hours|hr|hrs)$`)
)

// maxMinutes caps a single entry at one day
const maxMinutes = 24 * 60

// ParseDuration parses a worked duration into whole minutes
// Supported formats:
// - plain minutes (e.g., "45")
// - compact units (e.g., "45m", "2h", "1h30m", "1.5h")
// - words (e.g., "2 hours", "30 min", "1 hour")
func ParseDuration(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("duration is required")
	}

	minutes, err := parseMinutes(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q. Use: 45, 45m, 1h30m, 1.5h or 2 hours", input)
	}
	if minutes < 1 {
		return 0, fmt.Errorf("duration must be at least 1 minute")
	}
	if minutes > maxMinutes {
		return 0, fmt.Errorf("duration must be at most 24 hours")
	}
	return minutes, nil
}

func parseMinutes(input string) (int, error) {
	if n, err := strconv.Atoi(input); err == nil {
		return n, nil
	}

	if m := relativeRegex.FindStringSubmatch(input); len(m) == 3 {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, err
		}
		if strings.HasPrefix(m[2], "h") {
			amount *= 60
		}
		return int(math.Round(amount)), nil
	}

	if m := compactRegex.FindStringSubmatch(input); m != nil && (m[1] != "" || m[2] != "") {
		total := 0.0
		if m[1] != "" {
			hours, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, err
			}
			total += hours * 60
		}
		if m[2] != "" {
			mins, err := strconv.Atoi(m[2])
			if err != nil {
				return 0, err
			}
			total += float64(mins)
		}
		return int(math.Round(total)), nil
	}

	return 0, fmt.Errorf("unsupported format")
}

// ElapsedMinutes converts a tracked duration to loggable minutes, rounding
// up any partial minute and never returning less than 1
func ElapsedMinutes(d time.Duration) int {
	minutes := int(math.Ceil(d.Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FormatMinutes formats minutes for display, e.g. "45m", "2h", "1h 30m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours, rest := minutes/60, minutes%60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// FormatClock formats a running duration as HH:MM:SS
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
