package analytics

import (
	models "churn-metrics-hub/database/models_pkg"
)

// Signals is the normalized input to the recommendation rule engine,
// derived from an account's recent rows and its latest prediction.
type Signals struct {
	RiskPct            float64 // Normalized churn risk, 0-100
	TrendPct           float64 // Day-over-day traffic change, percent
	SalesDropPct       float64 // Precomputed by ingestion, 0 when absent
	TransactionDropPct float64 // Precomputed by ingestion, 0 when absent
	ShiftImbalancePct  float64 // Spread between busiest and quietest shift
	BasketDeltaPct     float64 // Today's basket vs weekly average, percent
	Traffic            int     // Today's customer traffic
	AvgBasket          float64 // Today's sales / receipts
	WeeklyAvgBasket    float64 // Weekly baseline basket, 0 when absent
}

// BuildSignals derives rule-engine signals from recent rows ordered
// most-recent-first. All inputs are optional: missing rows, shifts or
// baselines resolve to zero-valued signals, never errors.
func BuildSignals(recent []models.ChurnMetric, pred *models.ChurnPrediction) Signals {
	sig := Signals{RiskPct: RiskPercent(pred)}
	if len(recent) == 0 {
		return sig
	}

	today := recent[0]
	sig.Traffic = today.CustomerTraffic
	sig.SalesDropPct = floatOrZero(today.SalesDropPct)
	sig.TransactionDropPct = floatOrZero(today.TransactionDropPct)
	sig.AvgBasket = SafeDivide(today.SalesVolume, float64(today.ReceiptCount))
	sig.ShiftImbalancePct = shiftImbalance(today)

	if len(recent) > 1 {
		yesterday := recent[1].CustomerTraffic
		if yesterday > 0 {
			sig.TrendPct = float64(today.CustomerTraffic-yesterday) / float64(yesterday) * 100
		}
	}

	sig.WeeklyAvgBasket = weeklyAvgBasket(today)
	if sig.WeeklyAvgBasket > 0 {
		sig.BasketDeltaPct = (sig.AvgBasket - sig.WeeklyAvgBasket) / sig.WeeklyAvgBasket * 100
	}

	return sig
}

// RiskPercent resolves the latest prediction to a normalized 0-100 risk.
// A missing prediction reads as zero risk.
func RiskPercent(pred *models.ChurnPrediction) float64 {
	if pred == nil {
		return 0
	}
	return NormalizePercent(pred.RiskPercentage)
}

// shiftImbalance measures the relative spread between the busiest and
// quietest of the three daily shifts: (max - min) / max(1, max) * 100.
// All-zero (or absent) shift counts read as perfectly balanced.
func shiftImbalance(m models.ChurnMetric) float64 {
	counts := []int{
		intOrZero(m.MorningReceipts),
		intOrZero(m.SwingReceipts),
		intOrZero(m.GraveyardReceipts),
	}
	maxC, minC := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c > maxC {
			maxC = c
		}
		if c < minC {
			minC = c
		}
	}
	if maxC == 0 {
		return 0
	}
	return float64(maxC-minC) / float64(maxC) * 100
}

func weeklyAvgBasket(m models.ChurnMetric) float64 {
	sales := floatOrZero(m.WeeklyAvgSales)
	receipts := floatOrZero(m.WeeklyAvgReceipts)
	if sales <= 0 {
		return 0
	}
	return SafeDivide(sales, receipts)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
