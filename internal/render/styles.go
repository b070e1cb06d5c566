package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/usagelens/usagelens/internal/normalize"
)

var (
	colorGreen    = lipgloss.Color("#A6E3A1")
	colorYellow   = lipgloss.Color("#F9E2AF")
	colorRed      = lipgloss.Color("#F38BA8")
	colorMauve    = lipgloss.Color("#CBA6F7")
	colorBlue     = lipgloss.Color("#89B4FA")
	colorSurface1 = lipgloss.Color("#45475A")
	colorText     = lipgloss.Color("#CDD6F4")
	colorSubtext  = lipgloss.Color("#A6ADC8")

	colorOK   = colorGreen
	colorWarn = colorYellow
	colorCrit = colorRed

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	trackStyle = lipgloss.NewStyle().
			Foreground(colorSurface1)
)

// planBadgeStyle colors the plan badge by classified tier, so a Max or
// Enterprise account is visually distinct from the free and pro defaults.
func planBadgeStyle(label string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch normalize.ClassifyPlan(label) {
	case normalize.TierEnterprise, normalize.TierTeam:
		return s.Foreground(colorBlue)
	case normalize.TierMax:
		return s.Foreground(colorMauve)
	case normalize.TierPro:
		return s.Foreground(colorGreen)
	default:
		return s.Foreground(colorSubtext)
	}
}
