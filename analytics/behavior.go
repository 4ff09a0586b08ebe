package analytics

import (
	models "churn-metrics-hub/database/models_pkg"
)

// BehaviorReport summarizes an account's customer behavior over the last
// seven available days.
type BehaviorReport struct {
	AvgFrequency float64 `json:"avg_frequency"` // Receipts per day, whole number
	AvgValue     float64 `json:"avg_value"`     // Sales per day, currency
	AvgBasket    float64 `json:"avg_basket"`    // Avg sales / avg receipts, currency
	LoyaltyRate  float64 `json:"loyalty_rate"`  // 100 - churn risk, percent
}

// DeriveBehavior computes the behavior report from up to seven recent rows
// (any order; only totals matter) and the latest prediction. Fewer rows
// shrink the averaging denominator; zero rows yield zero averages with the
// loyalty rate still derived from the prediction.
func DeriveBehavior(recent []models.ChurnMetric, pred *models.ChurnPrediction) BehaviorReport {
	report := BehaviorReport{
		LoyaltyRate: Round2(100 - RiskPercent(pred)),
	}
	if len(recent) == 0 {
		return report
	}

	var totalReceipts int
	var totalSales float64
	for _, row := range recent {
		totalReceipts += row.ReceiptCount
		totalSales += row.SalesVolume
	}

	days := float64(len(recent))
	avgReceipts := float64(totalReceipts) / days
	avgSales := totalSales / days

	// Basket denominator is floored at 1, not zeroed: a window with sales
	// but no receipts reports the sales figure itself as the basket.
	basketDen := avgReceipts
	if basketDen < 1 {
		basketDen = 1
	}

	report.AvgFrequency = Round0(avgReceipts)
	report.AvgValue = Round2(avgSales)
	report.AvgBasket = Round2(avgSales / basketDen)
	return report
}
