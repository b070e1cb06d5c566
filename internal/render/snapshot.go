package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/usagelens/usagelens/internal/core"
)

const gaugeWidth = 30

// RenderSnapshot lays out a snapshot for terminal output: one gauge line
// per populated slot in declaration order, with reset countdowns and the
// plan badge. Unpopulated slots are omitted entirely.
func RenderSnapshot(snap core.Snapshot, warnThresh, critThresh float64) string {
	var b strings.Builder

	if snap.Status == core.StatusAuth {
		b.WriteString(labelStyle.Render("Sign-in required"))
		if snap.Message != "" {
			b.WriteString("\n" + dimStyle.Render(snap.Message))
		}
		return b.String()
	}

	if snap.Status == core.StatusNoData || len(snap.Slots) == 0 && snap.Plan == "" {
		b.WriteString(dimStyle.Render("No usage limits available"))
		if snap.Message != "" {
			b.WriteString("\n" + dimStyle.Render(snap.Message))
		}
		return b.String()
	}

	if snap.Plan != "" {
		b.WriteString(planBadgeStyle(snap.Plan).Render(snap.Plan))
		if snap.Email != "" {
			b.WriteString(dimStyle.Render(" · " + snap.Email))
		}
		b.WriteString("\n\n")
	}

	labelWidth := 0
	lines := make([][2]string, 0, len(core.SlotOrder))
	for _, slot := range core.SlotOrder {
		r := snap.Reading(slot)
		if r == nil {
			continue
		}

		label := slot.Label()
		if r.DisplayName != "" {
			label = r.DisplayName
		}
		if len(label) > labelWidth {
			labelWidth = len(label)
		}

		line := RenderUsageGauge(r.Utilization, gaugeWidth, warnThresh, critThresh)
		if r.ResetsAt != nil {
			line += dimStyle.Render("  resets " + FormatCountdown(time.Until(*r.ResetsAt)))
		}
		lines = append(lines, [2]string{label, line})
	}

	for _, l := range lines {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, l[0])))
		b.WriteString("  " + l[1] + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatCountdown renders a duration as a compact countdown ("4h 12m",
// "2d 3h"). Elapsed resets render as "now".
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	d = d.Round(time.Minute)

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("in %dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("in %dh %dm", hours, mins)
	default:
		return fmt.Sprintf("in %dm", mins)
	}
}
