package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/devtrack/internal/models"
)

// Color constants for devtrack TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (teal theme)
	ColorAccentMain   = "#0EA5A4" // Logo, accent elements, active borders
	ColorAccentBright = "#5EEAD4" // Hover, highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors, high priority
	ColorSuccess = "#22C55E" // Resolved, confirmations
	ColorWarning = "#F59E0B" // Warnings, medium priority
	ColorInfo    = "#60A5FA" // In progress
)

// StatusColor is the colour a status is drawn in
func StatusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusInProgress:
		return lipgloss.Color(ColorInfo)
	case models.StatusPending:
		return lipgloss.Color(ColorWarning)
	case models.StatusResolved:
		return lipgloss.Color(ColorSuccess)
	case models.StatusClosed:
		return lipgloss.Color(ColorDisabledText)
	default:
		return lipgloss.Color(ColorSecondaryText)
	}
}

// PriorityColor is the colour a priority is drawn in
func PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return lipgloss.Color(ColorError)
	case models.PriorityMedium:
		return lipgloss.Color(ColorWarning)
	default:
		return lipgloss.Color(ColorSecondaryText)
	}
}
