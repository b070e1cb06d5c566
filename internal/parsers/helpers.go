package parsers

import (
	"strconv"
	"strings"
	"time"
)

// Epoch magnitudes: anything above epochMillisFloor is treated as
// milliseconds, anything above epochSecondsFloor as seconds. Smaller numbers
// are not timestamps (they are far more likely counters or durations).
const (
	epochSecondsFloor = 1e9
	epochMillisFloor  = 1e12
)

func ParseFloat(val string) *float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseEpoch interprets a numeric value as a unix timestamp. Returns false
// when the magnitude is too small to plausibly be one.
func ParseEpoch(v float64) (time.Time, bool) {
	switch {
	case v > epochMillisFloor:
		return time.UnixMilli(int64(v)).UTC(), true
	case v > epochSecondsFloor:
		return time.Unix(int64(v), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// timeLayouts is the string-parse ladder, tried in order. Layouts without a
// zone are interpreted as UTC.
var timeLayouts = []struct {
	layout string
	utc    bool
}{
	{layout: time.RFC3339Nano},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05", utc: true},
	{layout: "2006-01-02 15:04:05", utc: true},
}

// ParseTimestamp accepts an epoch (number or numeric string) or one of a
// small set of ISO-8601 variants. First successful parse wins.
func ParseTimestamp(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}

	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return ParseEpoch(f)
	}

	for _, l := range timeLayouts {
		layout := l.layout
		var t time.Time
		var err error
		if l.utc {
			t, err = time.ParseInLocation(layout, val, time.UTC)
		} else {
			t, err = time.Parse(layout, val)
		}
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseTimestampValue applies the same ladder to a decoded JSON value.
func ParseTimestampValue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case float64:
		return ParseEpoch(val)
	case string:
		return ParseTimestamp(val)
	default:
		return time.Time{}, false
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
