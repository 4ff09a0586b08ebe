package analytics

import (
	models "churn-metrics-hub/database/models_pkg"
)

// windowDays is the fixed size of every trailing comparison window.
const windowDays = 7

// WindowSum holds per-window receipt and traffic totals.
type WindowSum struct {
	Receipts int `json:"receipts"`
	Traffic  int `json:"traffic"`
}

// SumWindow sums receipts and traffic over rows[start..end] inclusive.
// Indices are clamped to [0, len(rows)-1]; an inverted or fully
// out-of-range request yields a zero sum rather than failing.
func SumWindow(rows []models.ChurnMetric, start, end int) WindowSum {
	var sum WindowSum
	n := len(rows)
	if n == 0 {
		return sum
	}
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	for i := start; i <= end; i++ {
		sum.Receipts += rows[i].ReceiptCount
		sum.Traffic += rows[i].CustomerTraffic
	}
	return sum
}

// TrailingWindows holds the three 7-day windows ending at the latest
// available date D: current (D-6..D), previous (D-13..D-7) and
// pre-previous (D-20..D-14). A window counts as available only when its
// full day range is covered by the input; an uncovered window stays
// zero-sum so downstream ratios fall back instead of dividing by a
// partial week.
type TrailingWindows struct {
	Current     WindowSum
	Previous    WindowSum
	PrePrevious WindowSum

	CurrentAvailable     bool
	PreviousAvailable    bool
	PrePreviousAvailable bool
}

// TrailingWeeks computes the three trailing windows from rows ordered
// oldest-first.
func TrailingWeeks(rows []models.ChurnMetric) TrailingWindows {
	n := len(rows)
	tw := TrailingWindows{
		CurrentAvailable:     n >= windowDays,
		PreviousAvailable:    n >= 2*windowDays,
		PrePreviousAvailable: n >= 3*windowDays,
	}
	if tw.CurrentAvailable {
		tw.Current = SumWindow(rows, n-windowDays, n-1)
	}
	if tw.PreviousAvailable {
		tw.Previous = SumWindow(rows, n-2*windowDays, n-windowDays-1)
	}
	if tw.PrePreviousAvailable {
		tw.PrePrevious = SumWindow(rows, n-3*windowDays, n-2*windowDays-1)
	}
	return tw
}

// Chronological returns a reversed copy of rows. The store hands back
// most-recent-first sequences; the window aggregator wants oldest-first.
func Chronological(rows []models.ChurnMetric) []models.ChurnMetric {
	out := make([]models.ChurnMetric, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row
	}
	return out
}
