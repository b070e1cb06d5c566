package core

import "time"

type Status string

const (
	StatusOK      Status = "OK"
	StatusAuth    Status = "AUTH_REQUIRED"
	StatusNoData  Status = "NO_DATA"
	StatusError   Status = "ERROR"
	StatusUnknown Status = "UNKNOWN"
)

// Slot is one of the fixed canonical usage-window buckets the renderer
// expects. The set is closed; backends vary only in how their payloads map
// onto it.
type Slot string

const (
	SlotPrimary   Slot = "primary"   // short rolling window (5h-class)
	SlotSecondary Slot = "secondary" // long rolling window (7d-class)
	SlotModelA    Slot = "model_a"   // model-specific sub-limit, opus-class
	SlotModelB    Slot = "model_b"   // model-specific sub-limit, sonnet-class
	SlotOverflow  Slot = "overflow"  // extra/prepaid credit pool
)

// SlotOrder is the declaration order: fallback fill and rendering both walk
// slots in this order.
var SlotOrder = []Slot{SlotPrimary, SlotSecondary, SlotModelA, SlotModelB, SlotOverflow}

func (s Slot) Label() string {
	switch s {
	case SlotPrimary:
		return "Session"
	case SlotSecondary:
		return "Weekly"
	case SlotModelA:
		return "Opus"
	case SlotModelB:
		return "Sonnet"
	case SlotOverflow:
		return "Extra usage"
	default:
		return string(s)
	}
}

// Candidate is a provisional usage-window observation pulled out of a raw
// payload, not yet bound to a slot.
type Candidate struct {
	Name        string     // best-effort semantic label
	Path        []string   // JSON path to the source object, debugging only
	Utilization float64    // percent consumed, clamped to [0,100]
	ResetsAt    *time.Time // nil when the payload carried nothing parseable
}

// SlotReading is one slot's normalized value inside a Snapshot.
type SlotReading struct {
	Utilization float64    `json:"utilization"`
	ResetsAt    *time.Time `json:"resets_at,omitempty"`
	DisplayName string     `json:"display_name,omitempty"` // empty means "use the slot's generic label"
}

// Snapshot is the sole boundary handed to the presentation layer. Every
// field can be absent; the renderer must degrade accordingly.
type Snapshot struct {
	Timestamp time.Time             `json:"timestamp"`
	Status    Status                `json:"status"`
	Slots     map[Slot]*SlotReading `json:"slots"`
	Plan      string                `json:"plan,omitempty"`
	Email     string                `json:"email,omitempty"`
	Message   string                `json:"message,omitempty"`
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Timestamp: time.Now(),
		Status:    StatusUnknown,
		Slots:     make(map[Slot]*SlotReading),
	}
}

// Reading returns the slot's reading, or nil when the slot is unpopulated.
func (s Snapshot) Reading(slot Slot) *SlotReading {
	if s.Slots == nil {
		return nil
	}
	return s.Slots[slot]
}

// WorstUtilization returns the highest utilization across populated slots,
// or -1 when no slot carries data.
func (s Snapshot) WorstUtilization() float64 {
	worst := float64(-1)
	for _, r := range s.Slots {
		if r != nil && r.Utilization > worst {
			worst = r.Utilization
		}
	}
	return worst
}
