package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/usagelens/usagelens/internal/core"
	"github.com/usagelens/usagelens/internal/parsers"
)

// Internal window identifiers. Direct alias hits are named after these so
// that near-duplicate observations of the same bucket collapse in dedup and
// the display layer can fall back to its own generic labels.
const (
	windowPrimary    = "primary_window"
	windowSecondary  = "secondary_window"
	windowTertiary   = "tertiary_window"
	windowQuaternary = "quaternary_window"
	windowWeekly     = "weekly_window"
	windowExtra      = "extra_usage"
)

// windowAliases maps normalized child keys to the internal window identifier
// they denote. Backends rename these fields across endpoints and over time;
// extend here, not in code.
var windowAliases = map[string]string{
	"five_hour":            windowPrimary,
	"five_hour_window":     windowPrimary,
	"5h":                   windowPrimary,
	"5hr":                  windowPrimary,
	"hourly":               windowPrimary,
	"session":              windowPrimary,
	"seven_day":            windowSecondary,
	"seven_day_window":     windowSecondary,
	"7d":                   windowSecondary,
	"weekly":               windowSecondary,
	"seven_day_opus":       windowTertiary,
	"opus":                 windowTertiary,
	"seven_day_sonnet":     windowQuaternary,
	"sonnet":               windowQuaternary,
	"seven_day_cowork":     windowWeekly,
	"seven_day_oauth_apps": windowWeekly,
	"extra_usage":          windowExtra,
	"extra":                windowExtra,
	"additional_usage":     windowExtra,
	"overage":              windowExtra,
}

// Field alias tables for usage-period parsing, in preference order.
var (
	percentAliases   = []string{"utilization", "percentage", "percent_used", "used_percent", "usage_percent", "percent", "pct"}
	usedAliases      = []string{"used", "consumed", "current", "used_credits", "spent"}
	limitAliases     = []string{"limit", "max", "quota", "total", "cap", "monthly_limit"}
	remainingAliases = []string{"remaining", "left", "available"}
	nameAliases      = []string{"name", "label", "title", "slug", "model", "kind", "type"}
)

// Extract walks an arbitrary decoded JSON document and returns every
// usage-window observation it can derive. Malformed or ambiguous nodes are
// skipped, never reported; the dominant case for most payload nodes is
// "not a usage period".
func Extract(doc any) []core.Candidate {
	var out []core.Candidate
	walk(doc, nil, &out)
	return out
}

func walk(node any, path []string, out *[]core.Candidate) {
	switch v := node.(type) {
	case map[string]any:
		keys := sortedKeys(v)

		// Direct alias hits: a child keyed like a known window becomes a
		// candidate under the window's internal identifier. The child is
		// then considered consumed so the generic pass below doesn't emit
		// the same observation twice under a path-derived name.
		consumed := map[string]bool{}
		for _, key := range keys {
			window, ok := windowAliases[NormalizeKey(key)]
			if !ok {
				continue
			}
			child, ok := v[key].(map[string]any)
			if !ok {
				continue
			}
			if c, ok := parseUsagePeriod(child, childPath(path, key)); ok {
				c.Name = window
				*out = append(*out, c)
				consumed[key] = true
			}
		}

		if c, ok := parseUsagePeriod(v, path); ok {
			*out = append(*out, c)
		}

		for _, key := range keys {
			if consumed[key] {
				// Still descend: a consumed bucket may hold nested periods.
				child := v[key].(map[string]any)
				for _, ck := range sortedKeys(child) {
					walk(child[ck], childPath(childPath(path, key), ck), out)
				}
				continue
			}
			walk(v[key], childPath(path, key), out)
		}

	case []any:
		for i, item := range v {
			walk(item, childPath(path, strconv.Itoa(i)), out)
		}
	}
}

// parseUsagePeriod evaluates whether a single object carries enough numeric
// evidence to count as a usage window. Objects without a derivable
// utilization yield nothing.
func parseUsagePeriod(obj map[string]any, path []string) (core.Candidate, bool) {
	util, ok := deriveUtilization(obj)
	if !ok {
		return core.Candidate{}, false
	}

	c := core.Candidate{
		Name:        deriveName(obj, path),
		Path:        append([]string(nil), path...),
		Utilization: parsers.Clamp(util, 0, 100),
	}
	if t, ok := findReset(obj); ok {
		c.ResetsAt = &t
	}
	return c, true
}

func deriveUtilization(obj map[string]any) (float64, bool) {
	if v, ok := firstNumericField(obj, percentAliases); ok {
		return v, true
	}

	// Division requires a strictly positive denominator; a zero or missing
	// limit yields no candidate from this route.
	limit, hasLimit := firstNumericField(obj, limitAliases)
	if !hasLimit || limit <= 0 {
		return 0, false
	}
	if used, ok := firstNumericField(obj, usedAliases); ok {
		return used / limit * 100, true
	}
	if remaining, ok := firstNumericField(obj, remainingAliases); ok {
		return (limit - remaining) / limit * 100, true
	}
	return 0, false
}

// firstNumericField returns the value of the first alias (in preference
// order) present as a direct child with a numeric value.
func firstNumericField(obj map[string]any, aliases []string) (float64, bool) {
	normalized := normalizedFields(obj)
	for _, alias := range aliases {
		if v, ok := normalized[alias]; ok {
			if f, ok := asNumber(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func findReset(obj map[string]any) (time.Time, bool) {
	for _, key := range sortedKeys(obj) {
		nk := NormalizeKey(key)
		if !strings.Contains(nk, "reset") && !strings.Contains(nk, "expire") {
			continue
		}
		if t, ok := parsers.ParseTimestampValue(obj[key]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func deriveName(obj map[string]any, path []string) string {
	normalized := normalizedFields(obj)
	for _, alias := range nameAliases {
		if v, ok := normalized[alias]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	for i := len(path) - 1; i >= 0; i-- {
		if !isIndexSegment(path[i]) {
			return path[i]
		}
	}
	return "usage"
}

func normalizedFields(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for _, key := range sortedKeys(obj) {
		nk := NormalizeKey(key)
		if _, exists := out[nk]; !exists {
			out[nk] = obj[key]
		}
	}
	return out
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if f := parsers.ParseFloat(n); f != nil {
			return *f, true
		}
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func childPath(path []string, seg string) []string {
	next := make([]string, 0, len(path)+1)
	next = append(next, path...)
	return append(next, seg)
}
