package analytics

import (
	"fmt"
	"sort"
	"strings"

	"churn-metrics-hub/config"
)

// Recommendation priorities
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Recommendation is one action item for the dashboard, generated fresh per
// request and never persisted.
type Recommendation struct {
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Effort      string   `json:"effort"`
	Metrics     []string `json:"metrics,omitempty"`
}

// rule is one row of the decision table: a name for per-rule tests and an
// evaluator that emits zero or more recommendations for the given signals.
type rule struct {
	name string
	eval func(sig Signals, cfg config.AnalyticsConfig) []Recommendation
}

// ruleTable is evaluated in order; every rule fires independently of the
// others. Branch exclusivity (risk tiers, drop severity) lives inside the
// owning rule.
var ruleTable = []rule{
	{name: "risk-tier", eval: riskTierRule},
	{name: "drop-severity", eval: dropSeverityRule},
	{name: "load", eval: loadRule},
	{name: "basket-health", eval: basketHealthRule},
}

// Recommend runs the decision table over the signals and post-processes the
// result: dedupe by case-insensitive title (first occurrence wins), stable
// sort by descending priority weight, truncate to the configured cap.
func Recommend(sig Signals, cfg config.AnalyticsConfig) []Recommendation {
	var recs []Recommendation
	for _, r := range ruleTable {
		recs = append(recs, r.eval(sig, cfg)...)
	}

	recs = dedupeByTitle(recs)

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityWeight(recs[i].Priority) > priorityWeight(recs[j].Priority)
	})

	limit := cfg.MaxRecommendations
	if limit <= 0 {
		limit = 6
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// riskTierRule maps the churn risk to exactly one tier of two
// recommendations. Tier bounds are inclusive at the lower edge.
func riskTierRule(sig Signals, cfg config.AnalyticsConfig) []Recommendation {
	riskMetric := fmt.Sprintf("Churn risk %.2f%%", sig.RiskPct)

	switch {
	case sig.RiskPct >= cfg.HighRiskThreshold:
		return []Recommendation{
			{
				Priority:    PriorityHigh,
				Title:       "Launch win-back campaign",
				Description: "Target customers who have stopped visiting with a time-limited comeback offer.",
				Impact:      "Recovers a share of customers already drifting away",
				Effort:      "Medium - needs offer design and a send list",
				Metrics:     []string{riskMetric},
			},
			{
				Priority:    PriorityHigh,
				Title:       "Priority service recovery outreach",
				Description: "Have staff personally contact recent complainants and lapsed regulars before they churn for good.",
				Impact:      "Directly addresses the highest-risk relationships",
				Effort:      "Low - staff time only",
				Metrics:     []string{riskMetric},
			},
		}
	case sig.RiskPct >= cfg.MediumRiskThreshold:
		return []Recommendation{
			{
				Priority:    PriorityMedium,
				Title:       "Expand loyalty program enrollment",
				Description: "Push sign-ups at the register so at-risk customers accumulate a reason to return.",
				Impact:      "Raises repeat-visit odds for the wavering middle",
				Effort:      "Low - register prompt and signage",
				Metrics:     []string{riskMetric},
			},
			{
				Priority:    PriorityMedium,
				Title:       "Send personalized visit nudges",
				Description: "Remind customers who haven't visited this week with a small personalized incentive.",
				Impact:      "Keeps visit frequency from sliding further",
				Effort:      "Low - uses existing CRM sends",
				Metrics:     []string{riskMetric},
			},
		}
	default:
		return []Recommendation{
			{
				Priority:    PriorityLow,
				Title:       "Promote curated product bundles",
				Description: "Feature bundle deals to grow basket size while the customer base is stable.",
				Impact:      "Lifts revenue per visit at low risk",
				Effort:      "Low - merchandising change",
				Metrics:     []string{riskMetric},
			},
			{
				Priority:    PriorityLow,
				Title:       "Grow the CRM contact base",
				Description: "Collect contact permissions now so future campaigns have reach if risk rises.",
				Impact:      "Builds the channel later campaigns depend on",
				Effort:      "Low - opt-in prompt at checkout",
				Metrics:     []string{riskMetric},
			},
		}
	}
}

// dropSeverityRule reacts to the precomputed sales/transaction drop
// signals. OR semantics: either drop crossing a threshold is enough, and
// at most one severity fires.
func dropSeverityRule(sig Signals, cfg config.AnalyticsConfig) []Recommendation {
	dropMetrics := []string{
		fmt.Sprintf("Sales drop %.2f%%", sig.SalesDropPct),
		fmt.Sprintf("Transaction drop %.2f%%", sig.TransactionDropPct),
	}

	if sig.SalesDropPct > cfg.SevereDropThreshold || sig.TransactionDropPct > cfg.SevereDropThreshold {
		return []Recommendation{{
			Priority:    PriorityHigh,
			Title:       "Run a basket-builder promotion",
			Description: "Counter the sharp sales decline with a threshold promotion (spend X, get Y).",
			Impact:      "Stops the revenue slide this week",
			Effort:      "Medium - promo setup and margin give-back",
			Metrics:     dropMetrics,
		}}
	}
	if sig.SalesDropPct > cfg.ModerateDropThreshold || sig.TransactionDropPct > cfg.ModerateDropThreshold {
		return []Recommendation{{
			Priority:    PriorityMedium,
			Title:       "Offer lapsed-customer incentives",
			Description: "Send a modest offer to customers whose purchase cadence has slowed.",
			Impact:      "Arrests a moderate decline before it compounds",
			Effort:      "Low - single campaign send",
			Metrics:     dropMetrics,
		}}
	}
	return nil
}

// loadRule flags staffing pressure when traffic is heavy or one shift is
// carrying a disproportionate share of receipts.
func loadRule(sig Signals, cfg config.AnalyticsConfig) []Recommendation {
	if sig.Traffic < cfg.HighTrafficThreshold && sig.ShiftImbalancePct < cfg.ShiftImbalanceThreshold {
		return nil
	}
	return []Recommendation{{
		Priority:    PriorityMedium,
		Title:       "Rebalance shift staffing",
		Description: "Shift coverage toward the busiest window so service quality doesn't drive churn.",
		Impact:      "Protects service levels during peak load",
		Effort:      "Low - roster adjustment",
		Metrics: []string{
			fmt.Sprintf("Traffic %d customers", sig.Traffic),
			fmt.Sprintf("Shift imbalance %.2f%%", sig.ShiftImbalancePct),
		},
	}}
}

// basketHealthRule fires when today's basket has fallen materially below
// the weekly baseline. Requires a positive baseline to exist at all.
func basketHealthRule(sig Signals, cfg config.AnalyticsConfig) []Recommendation {
	if sig.WeeklyAvgBasket <= 0 || sig.BasketDeltaPct > cfg.BasketDropThreshold {
		return nil
	}
	return []Recommendation{{
		Priority:    PriorityMedium,
		Title:       "Push attach-rate upsells",
		Description: "Prompt add-on items at checkout to pull the average basket back to its weekly norm.",
		Impact:      "Closes the gap to the weekly basket baseline",
		Effort:      "Low - checkout prompt",
		Metrics: []string{
			fmt.Sprintf("Basket delta %.2f%%", sig.BasketDeltaPct),
			fmt.Sprintf("Weekly avg basket %.2f", sig.WeeklyAvgBasket),
		},
	}}
}

// priorityWeight orders priorities for the final sort. Unknown labels sink
// to Low rather than erroring.
func priorityWeight(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// dedupeByTitle drops later recommendations whose lowercase title was
// already seen, preserving discovery order.
func dedupeByTitle(recs []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(recs))
	out := recs[:0]
	for _, rec := range recs {
		key := strings.ToLower(rec.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}
