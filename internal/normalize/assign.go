package normalize

import (
	"sort"
	"time"

	"github.com/usagelens/usagelens/internal/core"
)

// genericNames are raw names that carry no display value: placeholders any
// payload might use, plus the internal window identifiers minted by the
// extractor. A reading bound from one of these falls back to the slot's own
// label in the presentation layer.
var genericNames = map[string]bool{
	"usage":   true,
	"limit":   true,
	"limits":  true,
	"quota":   true,
	"data":    true,
	"item":    true,
	"items":   true,
	"value":   true,
	"window":  true,
	"bucket":  true,
	"period":  true,
	"total":   true,
	"current": true,

	windowPrimary:    true,
	windowSecondary:  true,
	windowTertiary:   true,
	windowQuaternary: true,
	windowWeekly:     true,
	windowExtra:      true,
}

func hasMeaningfulName(c core.Candidate) bool {
	return !genericNames[NormalizeKey(c.Name)]
}

// Assign binds deduplicated candidates to canonical slots: greedy,
// highest-score-first over the slot priority order, each candidate consumed
// at most once. Slots whose best candidate misses the admission threshold
// stay empty until the fallback pass, which hands leftovers to empty slots
// in declaration order.
func Assign(cands []core.Candidate, now time.Time) map[core.Slot]core.Candidate {
	return AssignWithSpecs(cands, DefaultSlotSpecs(), now)
}

func AssignWithSpecs(cands []core.Candidate, specs map[core.Slot]SlotSpec, now time.Time) map[core.Slot]core.Candidate {
	assigned := make(map[core.Slot]core.Candidate)
	taken := make([]bool, len(cands))

	for _, slot := range assignOrder {
		spec, ok := specs[slot]
		if !ok {
			continue
		}

		best := -1
		bestScore := 0
		for i, c := range cands {
			if taken[i] {
				continue
			}
			score := spec.Score(c, now)
			if score < spec.MinScore {
				continue
			}
			if best < 0 || score > bestScore || (score == bestScore && preferCandidate(c, cands[best])) {
				best = i
				bestScore = score
			}
		}
		if best >= 0 {
			assigned[slot] = cands[best]
			taken[best] = true
		}
	}

	// Leftovers fill still-empty slots in declaration order, stably sorted:
	// meaningful names first, earlier resets next, name order last.
	leftovers := make([]core.Candidate, 0, len(cands))
	for i, c := range cands {
		if !taken[i] {
			leftovers = append(leftovers, c)
		}
	}
	sort.SliceStable(leftovers, func(i, j int) bool {
		return preferCandidate(leftovers[i], leftovers[j])
	})

	next := 0
	for _, slot := range core.SlotOrder {
		if next >= len(leftovers) {
			break
		}
		if _, ok := assigned[slot]; ok {
			continue
		}
		assigned[slot] = leftovers[next]
		next++
	}

	return assigned
}

// preferCandidate is the shared tie-break: meaningful display name, then
// earlier reset (absent resets last), then lexicographic name.
func preferCandidate(a, b core.Candidate) bool {
	am, bm := hasMeaningfulName(a), hasMeaningfulName(b)
	if am != bm {
		return am
	}
	switch {
	case a.ResetsAt != nil && b.ResetsAt == nil:
		return true
	case a.ResetsAt == nil && b.ResetsAt != nil:
		return false
	case a.ResetsAt != nil && b.ResetsAt != nil && !a.ResetsAt.Equal(*b.ResetsAt):
		return a.ResetsAt.Before(*b.ResetsAt)
	}
	return a.Name < b.Name
}

// BuildSnapshot runs dedup and assignment over extracted candidates and
// shapes the result for the presentation layer.
func BuildSnapshot(cands []core.Candidate, now time.Time) core.Snapshot {
	snap := core.NewSnapshot()
	snap.Timestamp = now

	assigned := Assign(Dedup(cands), now)
	for slot, c := range assigned {
		reading := &core.SlotReading{Utilization: c.Utilization, ResetsAt: c.ResetsAt}
		if hasMeaningfulName(c) {
			reading.DisplayName = c.Name
		}
		snap.Slots[slot] = reading
	}
	if len(snap.Slots) > 0 {
		snap.Status = core.StatusOK
	}
	return snap
}
