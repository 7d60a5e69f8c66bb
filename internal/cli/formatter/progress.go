package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a whole percentage.
// Green above 66, yellow from 33, red below.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderCountBar renders a proportional bar for one slice of a total, used by
// the status and category breakdowns.
func RenderCountBar(label string, count, total, width int) string {
	pct := 0
	if total > 0 {
		pct = count * 100 / total
	}
	filled := 0
	if total > 0 {
		filled = count * width / total
	}
	bar := StyleBlue.Render(strings.Repeat(filledBlock, filled)) + Dim(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("%-12s %s %2d (%d%%)", label, bar, count, pct)
}
