package formatter

import (
	"github.com/alexanderramin/horae/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text in the dim style.
func Dim(s string) string {
	return StyleDim.Render(s)
}

// StatusStyle returns the lipgloss style for an item status.
func StatusStyle(status domain.ItemStatus) lipgloss.Style {
	switch status {
	case domain.StatusDone:
		return StyleBlue
	case domain.StatusDelayed:
		return StyleRed
	case domain.StatusAtRisk:
		return StyleYellow
	case domain.StatusOnTrack:
		return StyleGreen
	default:
		return StyleDim
	}
}

// StatusLabel returns a colored status indicator such as "● AT RISK".
func StatusLabel(status domain.ItemStatus) string {
	switch status {
	case domain.StatusDone:
		return StyleBlue.Render("● DONE")
	case domain.StatusDelayed:
		return StyleRed.Render("● DELAYED")
	case domain.StatusAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.StatusOnTrack:
		return StyleGreen.Render("● ON TRACK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// SVG fill colors per status, matching the terminal palette.
func svgStatusFill(status domain.ItemStatus) string {
	switch status {
	case domain.StatusDone:
		return "#83a598"
	case domain.StatusDelayed:
		return "#fb4934"
	case domain.StatusAtRisk:
		return "#fabd2f"
	default:
		return "#8ec07c"
	}
}
