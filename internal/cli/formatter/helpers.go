package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TripDates renders a date range as "Jun 1 – Jun 3, 2026 · 2 nights".
func TripDates(r domain.DateRange) string {
	from, to := r.From, r.To
	var span string
	switch {
	case from.Year() != to.Year():
		span = from.Format("Jan 2, 2006") + " – " + to.Format("Jan 2, 2006")
	case from.Month() != to.Month() || from.Day() != to.Day():
		span = from.Format("Jan 2") + " – " + to.Format("Jan 2, 2006")
	default:
		span = from.Format("Jan 2, 2006")
	}
	nights := r.Nights()
	unit := "nights"
	if nights == 1 {
		unit = "night"
	}
	return fmt.Sprintf("%s · %d %s", span, nights, unit)
}

// Travelers renders a traveler count with the right noun.
func Travelers(n int) string {
	if n == 1 {
		return "1 traveler"
	}
	return fmt.Sprintf("%d travelers", n)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
