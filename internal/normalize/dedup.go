package normalize

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/usagelens/usagelens/internal/core"
)

// Dedup collapses near-identical observations, keeping the first occurrence.
// Two candidates are duplicates when their normalized name, whole-percent
// utilization, and minute-truncated reset instant all agree. That much slack
// absorbs sub-percent float noise and sub-minute timestamp jitter between
// overlapping endpoints.
func Dedup(cands []core.Candidate) []core.Candidate {
	return lo.UniqBy(cands, dedupKey)
}

func dedupKey(c core.Candidate) string {
	reset := "none"
	if c.ResetsAt != nil {
		reset = c.ResetsAt.UTC().Truncate(time.Minute).Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%d|%s", NormalizeKey(c.Name), int(math.Round(c.Utilization)), reset)
}
