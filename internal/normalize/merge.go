package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/usagelens/usagelens/internal/core"
)

// ErrNoUsageData is the single terminal condition the core surfaces: no
// endpoint yielded a usable candidate and no plan label was found. Partial
// data never triggers it.
var ErrNoUsageData = errors.New("no usage data available")

// SourceResult is one endpoint's contribution to a merged snapshot. A
// source that failed outright carries only Err and contributes nothing.
type SourceResult struct {
	Name       string
	Candidates []core.Candidate
	Plan       string
	Email      string
	Err        error
}

// Merge combines per-endpoint extractions into one snapshot: first
// non-empty plan label in call order, union of all candidates deduplicated
// once, one assignment pass over the union. Callers must pass results in
// fixed call-declaration order, not completion order, to keep the output
// deterministic under concurrent fetches.
func Merge(results []SourceResult, now time.Time) (core.Snapshot, error) {
	all := lo.FlatMap(results, func(r SourceResult, _ int) []core.Candidate {
		return r.Candidates
	})

	plan, _ := lo.Coalesce(lo.Map(results, func(r SourceResult, _ int) string { return r.Plan })...)
	email, _ := lo.Coalesce(lo.Map(results, func(r SourceResult, _ int) string { return r.Email })...)

	deduped := Dedup(all)
	if len(deduped) == 0 && plan == "" {
		// Double-wrap so callers can both errors.Is the terminal condition
		// and errors.As the underlying transport failure.
		if lastErr := lastSourceError(results); lastErr != nil {
			return core.Snapshot{}, fmt.Errorf("%w: %w", ErrNoUsageData, lastErr)
		}
		return core.Snapshot{}, ErrNoUsageData
	}

	snap := BuildSnapshot(deduped, now)
	snap.Plan = plan
	snap.Email = email
	snap.Status = core.StatusOK
	return snap, nil
}

func lastSourceError(results []SourceResult) error {
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Err != nil {
			return results[i].Err
		}
	}
	return nil
}
