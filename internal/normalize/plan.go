package normalize

import "strings"

// PlanTier buckets the free-form plan label a backend reports.
type PlanTier string

const (
	TierFree       PlanTier = "free"
	TierPro        PlanTier = "pro"
	TierMax        PlanTier = "max"
	TierTeam       PlanTier = "team"
	TierEnterprise PlanTier = "enterprise"
	TierUnknown    PlanTier = "unknown"
)

// ClassifyPlan keyword-matches a plan label. More specific tiers are checked
// first since labels like "Claude Max 20x" also contain generic words.
func ClassifyPlan(label string) PlanTier {
	l := strings.ToLower(label)
	switch {
	case l == "":
		return TierUnknown
	case strings.Contains(l, "enterprise"):
		return TierEnterprise
	case strings.Contains(l, "team"):
		return TierTeam
	case strings.Contains(l, "max"):
		return TierMax
	case strings.Contains(l, "pro"):
		return TierPro
	case strings.Contains(l, "free"):
		return TierFree
	default:
		return TierUnknown
	}
}
