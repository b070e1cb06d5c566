package normalize

import (
	"strings"
	"time"

	"github.com/usagelens/usagelens/internal/core"
)

// SlotSpec is the declarative per-slot scoring configuration. Backend
// vocabulary lives here as data; the assignment engine is shared. The
// magnitudes are empirical calibration, not load-bearing constants. What
// matters is the ordering: specific aliases beat generic temporal hints,
// temporal hints beat reset-bucket bias, and wrong-category tokens push a
// candidate below threshold.
type SlotSpec struct {
	Slot core.Slot

	// MinScore is the admission threshold. Generic windows accept any
	// positive evidence; the overflow/credit slot demands a strong alias
	// match to avoid swallowing mislabeled windows.
	MinScore int

	// TokenWeights score individual normalized name tokens.
	TokenWeights map[string]int

	// PhraseWeights score multi-token aliases matched against the full
	// normalized name on underscore boundaries.
	PhraseWeights map[string]int

	// ResetBias adjusts the score from the hours remaining until reset.
	// Candidates without a reset instant get no adjustment.
	ResetBias func(hours float64) int
}

// assignOrder is the greedy priority order: most-specific slots first,
// the catch-all overflow pool last.
var assignOrder = []core.Slot{core.SlotModelA, core.SlotModelB, core.SlotPrimary, core.SlotSecondary, core.SlotOverflow}

func shortWindowBias(hours float64) int {
	switch {
	case hours < 0:
		return 0
	case hours <= 12:
		return 60
	case hours <= 36:
		return 20
	default:
		return -60
	}
}

func longWindowBias(hours float64) int {
	switch {
	case hours < 0:
		return 0
	case hours < 16:
		return -60
	case hours <= 240:
		return 60
	default:
		return 0
	}
}

// DefaultSlotSpecs returns the calibrated scoring table for the Claude-style
// usage backend vocabulary.
func DefaultSlotSpecs() map[core.Slot]SlotSpec {
	return map[core.Slot]SlotSpec{
		core.SlotModelA: {
			Slot:     core.SlotModelA,
			MinScore: 80,
			TokenWeights: map[string]int{
				"opus":     250,
				"tertiary": 200,
				"sonnet":   -250,
				"haiku":    -250,
				"extra":    -200,
				"credit":   -200,
			},
		},
		core.SlotModelB: {
			Slot:     core.SlotModelB,
			MinScore: 80,
			TokenWeights: map[string]int{
				"sonnet":     250,
				"quaternary": 200,
				"opus":       -250,
				"haiku":      -250,
				"extra":      -200,
				"credit":     -200,
			},
		},
		core.SlotPrimary: {
			Slot:     core.SlotPrimary,
			MinScore: 1,
			TokenWeights: map[string]int{
				"primary": 200,
				"5h":      250,
				"5hr":     250,
				"five":    120,
				"hourly":  120,
				"hour":    100,
				"session": 80,
				"seven":   -150,
				"7d":      -150,
				"week":    -150,
				"weekly":  -150,
				"day":     -80,
				"month":   -150,
				"monthly": -150,
				"opus":    -200,
				"sonnet":  -200,
				"extra":   -200,
				"credit":  -200,
				"credits": -200,
				"bonus":   -200,
				"review":  -200,
			},
			PhraseWeights: map[string]int{"five_hour": 250},
			ResetBias:     shortWindowBias,
		},
		core.SlotSecondary: {
			Slot:     core.SlotSecondary,
			MinScore: 1,
			TokenWeights: map[string]int{
				"secondary": 200,
				"7d":        250,
				"weekly":    120,
				"week":      120,
				"seven":     120,
				"day":       60,
				"monthly":   80,
				"month":     80,
				"five":      -150,
				"5h":        -150,
				"hourly":    -120,
				"hour":      -120,
				"opus":      -150,
				"sonnet":    -150,
				"extra":     -200,
				"credit":    -200,
				"credits":   -200,
				"bonus":     -200,
				"review":    -200,
			},
			PhraseWeights: map[string]int{"seven_day": 250},
			ResetBias:     longWindowBias,
		},
		core.SlotOverflow: {
			Slot:     core.SlotOverflow,
			MinScore: 120,
			TokenWeights: map[string]int{
				"extra":      220,
				"additional": 200,
				"bonus":      200,
				"overage":    200,
				"review":     200,
				"credit":     180,
				"credits":    180,
				"topup":      180,
				"prepaid":    160,
				// Strong matches for more specific slots must not land in
				// the catch-all pool.
				"opus":   -300,
				"sonnet": -300,
				"five":   -200,
				"seven":  -150,
				"hour":   -100,
				"week":   -150,
				"weekly": -150,
			},
			PhraseWeights: map[string]int{
				"extra_usage": 250,
				"code_review": 250,
			},
		},
	}
}

// Score computes the slot's desirability for a candidate at the given
// instant. Can be negative.
func (s SlotSpec) Score(c core.Candidate, now time.Time) int {
	name := NormalizeKey(c.Name)
	score := 0

	for _, tok := range Tokens(c.Name) {
		score += s.TokenWeights[tok]
	}
	for phrase, w := range s.PhraseWeights {
		if matchesPhrase(name, phrase) {
			score += w
		}
	}
	if s.ResetBias != nil && c.ResetsAt != nil {
		score += s.ResetBias(c.ResetsAt.Sub(now).Hours())
	}
	return score
}

// matchesPhrase reports whether phrase occurs in name on underscore
// boundaries ("seven_day" matches "seven_day_opus" but not "x_seven_dayy").
func matchesPhrase(name, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(name[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		leftOK := start == 0 || name[start-1] == '_'
		rightOK := end == len(name) || name[end] == '_'
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(name) {
			return false
		}
	}
}
