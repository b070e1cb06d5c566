package fetch

import (
	"sort"
	"strings"
)

// Profile is the loose account metadata a profile-ish endpoint may carry.
// Every field is optional.
type Profile struct {
	Email       string
	DisplayName string
	PlanLabel   string
}

var planLabelKeys = []string{
	"plan", "plan_name", "plan_type", "subscription", "subscription_type",
	"rate_limit_tier", "billing_type", "tier",
}

// ScanProfile walks a decoded profile document for email, display name, and
// a plan-label-like string. Field naming drifts across endpoints, so this is
// a shallow recursive scan rather than a typed decode.
func ScanProfile(doc any) Profile {
	var p Profile
	scanProfile(doc, &p)
	return p
}

func scanProfile(node any, p *Profile) {
	obj, ok := node.(map[string]any)
	if !ok {
		if arr, ok := node.([]any); ok {
			for _, item := range arr {
				scanProfile(item, p)
			}
		}
		return
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s, isString := obj[key].(string)
		lk := strings.ToLower(key)
		switch {
		case isString && s != "" && p.Email == "" && strings.Contains(lk, "email"):
			p.Email = s
		case isString && s != "" && p.DisplayName == "" && (lk == "display_name" || lk == "displayname" || lk == "full_name"):
			p.DisplayName = s
		case isString && s != "" && p.PlanLabel == "" && isPlanKey(lk):
			p.PlanLabel = s
		}
	}

	for _, key := range keys {
		scanProfile(obj[key], p)
	}
}

func isPlanKey(lowerKey string) bool {
	for _, k := range planLabelKeys {
		if lowerKey == k {
			return true
		}
	}
	return false
}
