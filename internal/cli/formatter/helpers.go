package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

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

// RelativeDateFrom returns a short relative label for t seen from now,
// counted in calendar days.
func RelativeDateFrom(t time.Time, now time.Time) string {
	t = t.In(now.Location())
	dayT := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	dayNow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Round(dayT.Sub(dayNow).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueStyled colors the relative due label by urgency. Completed tasks are
// always dimmed.
func DueStyled(due, now time.Time, completed bool) string {
	text := RelativeDateFrom(due, now)
	if completed {
		return StyleDim.Render(text)
	}
	hours := due.Sub(now).Hours()
	switch {
	case hours < 0:
		return StyleRed.Render(text)
	case hours <= 48:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate formats an absolute date like "Mon, Mar 9 2026".
func HumanDate(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to n visible runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Tags renders tags as "#a #b", or a dim dash when there are none.
func Tags(tags []string) string {
	if len(tags) == 0 {
		return Dim("--")
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return StyleBlue.Render(strings.Join(parts, " "))
}
