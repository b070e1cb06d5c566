package normalize

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/usagelens/usagelens/internal/core"
)

func TestMerge_FailedSourceContributesNothing(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	results := []SourceResult{
		{Name: "usage", Err: errors.New("network unreachable")},
		{Name: "profile", Candidates: []core.Candidate{
			{Name: "five_hour", Utilization: 33},
		}},
	}

	snap, err := Merge(results, now)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	primary := snap.Reading(core.SlotPrimary)
	if primary == nil || primary.Utilization != 33 {
		t.Errorf("primary = %+v, want utilization 33 from surviving source", primary)
	}
}

func TestMerge_DeduplicatesAcrossSources(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	reset := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	results := []SourceResult{
		{Candidates: []core.Candidate{{Name: "five_hour", Utilization: 33, ResetsAt: timePtr(reset)}}},
		{Candidates: []core.Candidate{{Name: "five_hour", Utilization: 33.2, ResetsAt: timePtr(reset.Add(5 * time.Second))}}},
	}

	snap, err := Merge(results, now)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	populated := 0
	for _, slot := range core.SlotOrder {
		if snap.Reading(slot) != nil {
			populated++
		}
	}
	if populated != 1 {
		t.Fatalf("%d slots populated, want 1 (cross-source duplicate must collapse)", populated)
	}
}

func TestMerge_PlanLabelFirstNonEmptyWins(t *testing.T) {
	now := time.Now()
	results := []SourceResult{
		{Candidates: []core.Candidate{{Name: "five_hour", Utilization: 10}}},
		{Plan: "Claude Max 20x"},
		{Plan: "Claude Pro"},
	}

	snap, err := Merge(results, now)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if snap.Plan != "Claude Max 20x" {
		t.Errorf("Plan = %q, want first non-empty in call order", snap.Plan)
	}
}

func TestMerge_PlanOnlyIsStillSuccess(t *testing.T) {
	snap, err := Merge([]SourceResult{{Plan: "Claude Pro"}}, time.Now())
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if snap.Plan != "Claude Pro" {
		t.Errorf("Plan = %q, want Claude Pro", snap.Plan)
	}
	if snap.Status != core.StatusOK {
		t.Errorf("Status = %v, want OK (partial data is success)", snap.Status)
	}
}

func TestMerge_NothingUsableIsTerminal(t *testing.T) {
	_, err := Merge([]SourceResult{{}, {}}, time.Now())
	if !errors.Is(err, ErrNoUsageData) {
		t.Fatalf("err = %v, want ErrNoUsageData", err)
	}
}

func TestMerge_TerminalErrorWrapsLastSourceError(t *testing.T) {
	first := errors.New("unauthorized")
	last := errors.New("gateway timeout")
	results := []SourceResult{
		{Err: first},
		{Err: last},
	}

	_, err := Merge(results, time.Now())
	if !errors.Is(err, ErrNoUsageData) {
		t.Fatalf("err = %v, want ErrNoUsageData", err)
	}
	if got := err.Error(); !strings.Contains(got, "gateway timeout") {
		t.Errorf("err = %q, want most recent source error mentioned", got)
	}
}

func TestMerge_TerminalErrorKeepsCauseInChain(t *testing.T) {
	cause := errors.New("session expired")
	results := []SourceResult{
		{Err: fmt.Errorf("usage: %w", cause)},
	}

	_, err := Merge(results, time.Now())
	if !errors.Is(err, ErrNoUsageData) {
		t.Fatalf("err = %v, want ErrNoUsageData", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want the source error reachable through the chain", err)
	}
}

func TestMerge_Deterministic(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	results := []SourceResult{
		{Candidates: []core.Candidate{
			{Name: "five_hour", Utilization: 10},
			{Name: "seven_day", Utilization: 20},
		}},
		{Candidates: []core.Candidate{
			{Name: "extra_usage", Utilization: 5},
		}, Plan: "Claude Pro"},
	}

	first, err := Merge(results, now)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Merge(results, now)
		if err != nil {
			t.Fatalf("run %d: Merge() error: %v", i, err)
		}
		for _, slot := range core.SlotOrder {
			a, b := first.Reading(slot), again.Reading(slot)
			if (a == nil) != (b == nil) {
				t.Fatalf("run %d: slot %s presence differs", i, slot)
			}
			if a != nil && a.Utilization != b.Utilization {
				t.Fatalf("run %d: slot %s utilization differs", i, slot)
			}
		}
	}
}
