package analytics

import (
	"testing"

	models "churn-metrics-hub/database/models_pkg"
)

// threeWeeks builds a 21-day oldest-first history with the given weekly
// receipt totals spread across each week's seven days.
func threeWeeks(prePrev, prev, current [7]int) []models.ChurnMetric {
	var receipts []int
	for _, week := range [][7]int{prePrev, prev, current} {
		receipts = append(receipts, week[:]...)
	}
	return makeDays(receipts...)
}

func TestDeriveRetentionFallback(t *testing.T) {
	// No history: everything comes from the prediction
	report := DeriveRetention(nil, predictionWithRisk(30))

	if report.RetentionRate != 70.0 {
		t.Errorf("RetentionRate = %v, want 70.0", report.RetentionRate)
	}
	if report.ChurnRate != 30.0 {
		t.Errorf("ChurnRate = %v, want 30.0", report.ChurnRate)
	}
	if report.AtRiskCount != 0 {
		t.Errorf("AtRiskCount = %v, want 0", report.AtRiskCount)
	}
	if report.RetentionDeltaPts != nil || report.ChurnDeltaPts != nil {
		t.Errorf("deltas should be nil without history")
	}
}

func TestDeriveRetentionThreeWeeks(t *testing.T) {
	// Current week 70 receipts, previous 70, pre-previous 50:
	// rate = 70/70 = 100.00, baseline = 70/50 = 140.00, delta = -40.00
	history := threeWeeks(
		[7]int{8, 7, 7, 7, 7, 7, 7},        // 50
		[7]int{10, 10, 10, 10, 10, 10, 10}, // 70
		[7]int{10, 10, 10, 10, 10, 10, 10}, // 70
	)

	report := DeriveRetention(history, nil)

	if report.RetentionRate != 100.0 {
		t.Errorf("RetentionRate = %v, want 100.0", report.RetentionRate)
	}
	if report.ChurnRate != 0.0 {
		t.Errorf("ChurnRate = %v, want 0.0", report.ChurnRate)
	}
	if report.RetentionDeltaPts == nil {
		t.Fatal("RetentionDeltaPts is nil, want -40.0")
	}
	if *report.RetentionDeltaPts != -40.0 {
		t.Errorf("RetentionDeltaPts = %v, want -40.0", *report.RetentionDeltaPts)
	}
	if report.ChurnDeltaPts == nil || *report.ChurnDeltaPts != 40.0 {
		t.Errorf("ChurnDeltaPts = %v, want 40.0", report.ChurnDeltaPts)
	}
}

func TestDeriveRetentionTwoWeeksNoDelta(t *testing.T) {
	// 14 days: rate computes, but no third window means no baseline and
	// therefore nil deltas - never a fallback-computed delta
	receipts := make([]int, 14)
	for i := range receipts {
		receipts[i] = 5
	}
	report := DeriveRetention(makeDays(receipts...), predictionWithRisk(25))

	if report.RetentionRate != 100.0 {
		t.Errorf("RetentionRate = %v, want 100.0", report.RetentionRate)
	}
	if report.RetentionDeltaPts != nil {
		t.Errorf("RetentionDeltaPts = %v, want nil", *report.RetentionDeltaPts)
	}
}

func TestDeriveRetentionShortHistoryUsesPrediction(t *testing.T) {
	// 5 days of history: no full previous window, rate falls back to the
	// prediction-derived value
	report := DeriveRetention(makeDays(5, 5, 5, 5, 5), predictionWithRisk(0.4))

	if report.RetentionRate != 60.0 {
		t.Errorf("RetentionRate = %v, want 60.0", report.RetentionRate)
	}
	if report.ChurnRate != 40.0 {
		t.Errorf("ChurnRate = %v, want 40.0", report.ChurnRate)
	}
}

func TestDeriveRetentionRateChurnComplement(t *testing.T) {
	histories := [][]models.ChurnMetric{
		nil,
		makeDays(1, 2, 3),
		makeDays(make([]int, 14)...),
		threeWeeks([7]int{3, 3, 3, 3, 3, 3, 3}, [7]int{2, 2, 2, 2, 2, 2, 2}, [7]int{4, 4, 4, 4, 4, 4, 4}),
	}
	risks := []float64{0, 0.5, 33, 80, 100}

	for _, history := range histories {
		for _, risk := range risks {
			report := DeriveRetention(history, predictionWithRisk(risk))
			if sum := report.RetentionRate + report.ChurnRate; sum < 99.99 || sum > 100.01 {
				t.Errorf("risk %v, %d days: retention %v + churn %v != 100",
					risk, len(history), report.RetentionRate, report.ChurnRate)
			}
		}
	}
}

func TestDeriveRetentionGrowthClamped(t *testing.T) {
	// Current week above previous: the rate clamps at 100 so the churn
	// complement never goes negative
	history := threeWeeks(
		[7]int{5, 5, 5, 5, 5, 5, 5},
		[7]int{5, 5, 5, 5, 5, 5, 5},
		[7]int{9, 9, 9, 9, 9, 9, 9},
	)
	report := DeriveRetention(history, nil)

	if report.RetentionRate != 100.0 {
		t.Errorf("RetentionRate = %v, want 100.0", report.RetentionRate)
	}
	if report.ChurnRate != 0.0 {
		t.Errorf("ChurnRate = %v, want 0.0", report.ChurnRate)
	}
}

func TestDeriveRetentionAtRiskCount(t *testing.T) {
	// Latest day's traffic scaled by the normalized risk
	receipts := make([]int, 21)
	for i := range receipts {
		receipts[i] = 10 // traffic = 30 per makeDays
	}
	report := DeriveRetention(makeDays(receipts...), predictionWithRisk(50))

	if report.AtRiskCount != 15 {
		t.Errorf("AtRiskCount = %v, want 15", report.AtRiskCount)
	}
}
