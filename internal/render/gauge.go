package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderUsageGauge produces a text gauge that fills left to right as usage
// increases (0=empty, 100=full). Colors shift green→yellow→red at the warn
// and crit thresholds (fractions of the window used).
func RenderUsageGauge(usedPercent float64, width int, warnThresh, critThresh float64) string {
	if width < 5 {
		width = 5
	}

	if usedPercent < 0 {
		return trackStyle.Render(strings.Repeat("─", width)) + dimStyle.Render(" N/A")
	}
	if usedPercent > 100 {
		usedPercent = 100
	}

	filled := int(usedPercent / 100 * float64(width))
	empty := width - filled

	var color lipgloss.Color
	switch {
	case usedPercent >= critThresh*100:
		color = colorCrit
	case usedPercent >= warnThresh*100:
		color = colorWarn
	default:
		color = colorOK
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	bar := filledStyle.Render(strings.Repeat("━", filled)) +
		trackStyle.Render(strings.Repeat("━", empty))

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return fmt.Sprintf("%s %s", bar, pctStyle.Render(fmt.Sprintf("%5.1f%%", usedPercent)))
}
