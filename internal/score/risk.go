package score

import (
	"fmt"

	"vouch/internal/model"
)

// RiskFactors accumulates human-readable risk strings from evidence.
// Each trigger fires independently; none of them scores anything. When
// nothing fires the list is exactly the no-concerns sentinel, so callers
// can distinguish "no risk" from a real one-item risk list.
func RiskFactors(ev *model.EvidenceSet) []string {
	var factors []string

	if ev.ScamCheck != nil && len(ev.ScamCheck.Reports) > 0 {
		factors = append(factors, fmt.Sprintf("%d consumer complaint(s) found", len(ev.ScamCheck.Reports)))
	}
	if ev.Credibility != nil && len(ev.Credibility.RedFlags) > 1 {
		factors = append(factors, "Multiple concerns identified in online presence")
	}
	if ev.Reviews != nil && ev.Reviews.RecentTrend == model.TrendDeclining {
		factors = append(factors, "Recent decline in customer satisfaction")
	}
	if ev.Presence != nil && len(ev.Presence.TrustedSites) < 2 {
		factors = append(factors, "Limited presence on trusted review platforms")
	}
	if ev.Reviews != nil && ev.Reviews.Sentiment.Negative > 15 {
		factors = append(factors, fmt.Sprintf("%d%% negative review sentiment", ev.Reviews.Sentiment.Negative))
	}

	if len(factors) == 0 {
		return []string{model.NoConcernsSentinel}
	}
	return factors
}
