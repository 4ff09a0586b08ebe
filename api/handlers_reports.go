package api

import (
	"net/http"
	"time"

	"churn-metrics-hub/analytics"
)

// Report API Handlers
//
// Every handler follows the same shape: resolve account context, try the
// report cache, otherwise read a point-in-time snapshot and run the single
// canonical deriver for the report type.

// handleBehaviorReport returns average visit frequency, spend and loyalty
// over the trailing week
func (s *Server) handleBehaviorReport(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	var report analytics.BehaviorReport
	if !s.reportCache.Get(ctx, accountID, "behavior", "", &report) {
		rows, err := s.repo.RecentMetrics(accountID, behaviorWindowDays)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load metrics", err)
			return
		}
		pred, err := s.repo.LatestPrediction(accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load prediction", err)
			return
		}

		report = analytics.DeriveBehavior(rows, pred)
		s.reportCache.Set(ctx, accountID, "behavior", "", report)
	}

	respondOK(w, map[string]interface{}{
		"report": report,
	})
}

// handleRevenueReport returns the revenue exposure of the current churn risk
func (s *Server) handleRevenueReport(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	var report analytics.RevenueReport
	if !s.reportCache.Get(ctx, accountID, "revenue", "", &report) {
		latest, err := s.repo.LatestMetric(accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load metrics", err)
			return
		}
		pred, err := s.repo.LatestPrediction(accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load prediction", err)
			return
		}

		report = analytics.DeriveRevenue(latest, pred, s.cfg.Analytics)
		s.reportCache.Set(ctx, accountID, "revenue", "", report)
	}

	respondOK(w, map[string]interface{}{
		"report": report,
	})
}

// handleRetentionReport returns the week-over-week retention proxy
func (s *Server) handleRetentionReport(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	var report analytics.RetentionReport
	if !s.reportCache.Get(ctx, accountID, "retention", "", &report) {
		rows, err := s.repo.RecentMetrics(accountID, retentionWindowDays)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load metrics", err)
			return
		}
		pred, err := s.repo.LatestPrediction(accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load prediction", err)
			return
		}

		report = analytics.DeriveRetention(analytics.Chronological(rows), pred)
		s.reportCache.Set(ctx, accountID, "retention", "", report)
	}

	respondOK(w, map[string]interface{}{
		"report": report,
	})
}

// summaryPayload bundles every report the dashboard renders on first paint
// into one response, computed from a single snapshot read.
type summaryPayload struct {
	Behavior        analytics.BehaviorReport   `json:"behavior"`
	Revenue         analytics.RevenueReport    `json:"revenue"`
	Retention       analytics.RetentionReport  `json:"retention"`
	Recommendations []analytics.Recommendation `json:"recommendations"`
	Prediction      *summaryPrediction         `json:"prediction,omitempty"`
}

type summaryPrediction struct {
	RiskPct   float64 `json:"risk_pct"`
	RiskLevel string  `json:"risk_level"`
	CreatedAt string  `json:"created_at"`
}

// handleSummaryReport returns all reports plus recommendations in one call.
// Same derivers as the individual endpoints, one query pass.
func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	var payload summaryPayload
	if !s.reportCache.Get(ctx, accountID, "summary", "", &payload) {
		rows, err := s.repo.RecentMetrics(accountID, retentionWindowDays)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load metrics", err)
			return
		}
		pred, err := s.repo.LatestPrediction(accountID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load prediction", err)
			return
		}

		behaviorRows := rows
		if len(behaviorRows) > behaviorWindowDays {
			behaviorRows = behaviorRows[:behaviorWindowDays]
		}

		payload = summaryPayload{
			Behavior:        analytics.DeriveBehavior(behaviorRows, pred),
			Retention:       analytics.DeriveRetention(analytics.Chronological(rows), pred),
			Recommendations: analytics.Recommend(analytics.BuildSignals(rows, pred), s.cfg.Analytics),
		}
		if len(rows) > 0 {
			payload.Revenue = analytics.DeriveRevenue(&rows[0], pred, s.cfg.Analytics)
		} else {
			payload.Revenue = analytics.DeriveRevenue(nil, pred, s.cfg.Analytics)
		}
		if pred != nil {
			payload.Prediction = &summaryPrediction{
				RiskPct:   analytics.Round2(analytics.RiskPercent(pred)),
				RiskLevel: pred.RiskLevel,
				CreatedAt: pred.CreatedAt.UTC().Format(time.RFC3339),
			}
		}

		s.reportCache.Set(ctx, accountID, "summary", "", payload)
	}

	respondOK(w, map[string]interface{}{
		"summary": payload,
	})
}

// reportKinds lists every cached payload a forced refresh must drop.
var reportKinds = []string{"behavior", "revenue", "retention", "summary", "recommendations"}

// handleRefreshReports drops the account's cached report payloads so the
// next fetch recomputes from a fresh snapshot. Backs the dashboard's
// refresh button; a no-op when caching is disabled.
func (s *Server) handleRefreshReports(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	for _, kind := range reportKinds {
		if err := s.reportCache.Invalidate(ctx, accountID, kind, ""); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to refresh reports", err)
			return
		}
	}

	respondOK(w, map[string]interface{}{
		"refreshed": reportKinds,
	})
}
