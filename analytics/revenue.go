package analytics

import (
	"churn-metrics-hub/config"
	models "churn-metrics-hub/database/models_pkg"
)

// monthDays scales a single day's profit to a monthly CLV horizon.
const monthDays = 30

// RevenueReport estimates the revenue exposure of the current churn risk
// from the single latest daily row.
type RevenueReport struct {
	AvgBasket       float64 `json:"avg_basket"`        // Today's sales / receipts
	CustomersAtRisk int     `json:"customers_at_risk"` // Traffic scaled by risk
	RevenueAtRisk   float64 `json:"revenue_at_risk"`
	RevenueSaved    float64 `json:"revenue_saved"` // Preventable share of at-risk revenue
	CLVImpact       float64 `json:"clv_impact"`
	RetentionCost   float64 `json:"retention_cost"`
	ROIPct          float64 `json:"roi_pct"`
}

// DeriveRevenue computes the revenue report from the latest row (nil reads
// as an all-zero day) and the latest prediction. All monetary outputs are
// floored at zero.
func DeriveRevenue(latest *models.ChurnMetric, pred *models.ChurnPrediction, cfg config.AnalyticsConfig) RevenueReport {
	var sales float64
	var receipts, traffic int
	if latest != nil {
		sales = latest.SalesVolume
		receipts = latest.ReceiptCount
		traffic = latest.CustomerTraffic
	}

	risk := RiskPercent(pred)
	avgBasket := SafeDivide(sales, float64(receipts))

	customersAtRisk := int(Round0(float64(traffic) * risk / 100))
	revenueAtRisk := floorZero(float64(customersAtRisk) * avgBasket)
	revenueSaved := floorZero(cfg.PreventableFraction * revenueAtRisk)

	monthlyProfit := avgBasket * float64(receipts) * monthDays * cfg.ProfitMargin
	clvImpact := floorZero(monthlyProfit * risk / 100 * cfg.PreventableFraction)

	retentionCost := floorZero(cfg.RetentionCostRate * sales)

	var roi float64
	if retentionCost > 0 {
		roi = (revenueSaved - retentionCost) / retentionCost * 100
	}

	return RevenueReport{
		AvgBasket:       Round2(avgBasket),
		CustomersAtRisk: customersAtRisk,
		RevenueAtRisk:   Round2(revenueAtRisk),
		RevenueSaved:    Round2(revenueSaved),
		CLVImpact:       Round2(clvImpact),
		RetentionCost:   Round2(retentionCost),
		ROIPct:          Round2(roi),
	}
}

func floorZero(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
