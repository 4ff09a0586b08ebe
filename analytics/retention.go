package analytics

import (
	models "churn-metrics-hub/database/models_pkg"
)

// RetentionReport estimates customer retention from week-over-week receipt
// ratios, falling back to the prediction when history is missing.
// RetentionRate + ChurnRate always equals 100 (up to rounding).
//
// The delta fields are nil when the pre-previous window is unavailable:
// a baseline computed from a fallback rate would fabricate a trend, so
// derivation propagates "unknown" instead.
type RetentionReport struct {
	RetentionRate     float64  `json:"retention_rate"`
	ChurnRate         float64  `json:"churn_rate"`
	RetentionDeltaPts *float64 `json:"retention_delta_pts,omitempty"`
	ChurnDeltaPts     *float64 `json:"churn_delta_pts,omitempty"`
	AtRiskCount       int      `json:"at_risk_count"`
}

// DeriveRetention computes the retention report from the account's history
// ordered oldest-first (at most the trailing 21 rows matter) and the latest
// prediction.
func DeriveRetention(history []models.ChurnMetric, pred *models.ChurnPrediction) RetentionReport {
	risk := RiskPercent(pred)

	if len(history) == 0 {
		// Prediction-only fallback: no receipts to compare
		rate := 100 - risk
		return RetentionReport{
			RetentionRate: Round2(rate),
			ChurnRate:     Round2(100 - rate),
		}
	}

	tw := TrailingWeeks(history)

	rate := 100 - risk
	if tw.Previous.Receipts > 0 {
		rate = clampPercent(float64(tw.Current.Receipts) / float64(tw.Previous.Receipts) * 100)
	}

	report := RetentionReport{
		RetentionRate: Round2(rate),
		ChurnRate:     Round2(100 - rate),
	}

	// Week-over-week delta needs a real baseline: the previous week's
	// retention against the pre-previous window. Left nil otherwise.
	if tw.PrePreviousAvailable && tw.PrePrevious.Receipts > 0 {
		baseline := float64(tw.Previous.Receipts) / float64(tw.PrePrevious.Receipts) * 100
		delta := Round2(rate - baseline)
		churnDelta := -delta
		report.RetentionDeltaPts = &delta
		report.ChurnDeltaPts = &churnDelta
	}

	latest := history[len(history)-1]
	report.AtRiskCount = int(Round0(float64(latest.CustomerTraffic) * risk / 100))

	return report
}

// clampPercent bounds a computed ratio to [0, 100] so the churn complement
// stays a valid percentage. Unlike NormalizePercent it never rescales.
func clampPercent(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}
