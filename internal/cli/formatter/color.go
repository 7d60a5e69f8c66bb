package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kampus/tugasin/internal/domain"
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

// PriorityColor maps high to red, medium to yellow and low to green.
func PriorityColor(p domain.TaskPriority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityBadge returns a colored priority label such as "▲ HIGH".
func PriorityBadge(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ HIGH")
	case domain.PriorityMedium:
		return StyleYellow.Render("● MEDIUM")
	case domain.PriorityLow:
		return StyleGreen.Render("▼ LOW")
	default:
		return StyleDim.Render(string(p))
	}
}

// StatusPill returns a colored task status indicator.
func StatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.StatusPending:
		return StyleBlue.Render("○ Pending")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	default:
		return StyleDim.Render(string(s))
	}
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(c domain.TaskCategory) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(string(c[:1])) + string(c[1:])
	return StylePurple.Render(label)
}

// Checkbox renders a done or open checkbox.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
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
