package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/telos/internal/domain"
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

// DepTypeStyle returns the lipgloss style for a dependency type.
func DepTypeStyle(t domain.DependencyType) lipgloss.Style {
	switch t {
	case domain.FinishToStart:
		return StyleGreen
	case domain.StartToStart:
		return StyleBlue
	case domain.FinishToFinish:
		return StylePurple
	case domain.StartToFinish:
		return StyleYellow
	default:
		return StyleDim
	}
}

// DepTypeLabel renders a colored dependency type tag such as "FS+2".
func DepTypeLabel(t domain.DependencyType, lagDays int) string {
	label := string(t)
	if lagDays > 0 {
		label = fmt.Sprintf("%s+%d", label, lagDays)
	} else if lagDays < 0 {
		label = fmt.Sprintf("%s%d", label, lagDays)
	}
	return DepTypeStyle(t).Render(label)
}

// PinnedMarker renders the pin indicator for pinned items.
func PinnedMarker(pinned bool) string {
	if pinned {
		return StyleYellow.Render("⚲")
	}
	return " "
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}
