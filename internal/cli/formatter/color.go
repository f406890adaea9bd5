package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ActivityStyle returns the color used for an activity type.
func ActivityStyle(t domain.ActivityType) lipgloss.Style {
	switch t {
	case domain.ActivityAccommodation:
		return StylePurple
	case domain.ActivityTransport:
		return StyleBlue
	case domain.ActivitySightseeing:
		return StyleGreen
	case domain.ActivityDining:
		return StyleYellow
	default:
		return StyleAqua
	}
}

// ActivityIcon returns a one-cell glyph for an activity type.
func ActivityIcon(t domain.ActivityType) string {
	switch t {
	case domain.ActivityAccommodation:
		return "⌂"
	case domain.ActivityTransport:
		return "➜"
	case domain.ActivitySightseeing:
		return "◉"
	case domain.ActivityDining:
		return "♨"
	default:
		return "★"
	}
}

// SyncIndicator renders the remote sync state of a progress session.
func SyncIndicator(s domain.SyncStatus) string {
	switch s {
	case domain.SyncSynced:
		return StyleGreen.Render("● synced")
	case domain.SyncPending:
		return StyleYellow.Render("◌ syncing")
	case domain.SyncDegraded:
		return StyleRed.Render("● offline, saved locally")
	default:
		return StyleDim.Render("○ local only")
	}
}

// TierBadge renders a budget tier with its tagline.
func TierBadge(t domain.BudgetTier) string {
	style := StyleGreen
	switch t {
	case domain.TierTravelEnthusiast:
		style = StyleBlue
	case domain.TierLuxury:
		style = StylePurple
	}
	badge := style.Bold(true).Render(t.Label())
	if tag := t.Tagline(); tag != "" {
		badge += " " + Dim("· "+tag)
	}
	return badge
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
