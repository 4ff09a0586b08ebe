package api

import (
	"net/http"

	"churn-metrics-hub/analytics"
)

// recommendationsPayload carries the ranked action list plus the signals
// that produced it, so the dashboard can show why a rule fired.
type recommendationsPayload struct {
	Recommendations []analytics.Recommendation `json:"recommendations"`
	Signals         analytics.Signals          `json:"signals"`
}

// handleRecommendations runs the decision table over the account's current
// signals and returns the ranked, deduplicated list (at most the configured
// cap, default 6).
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)
	ctx := r.Context()

	var payload recommendationsPayload
	if !s.reportCache.Get(ctx, accountID, "recommendations", "", &payload) {
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

		payload.Signals = analytics.BuildSignals(rows, pred)
		payload.Recommendations = analytics.Recommend(payload.Signals, s.cfg.Analytics)
		s.reportCache.Set(ctx, accountID, "recommendations", "", payload)
	}

	respondOK(w, map[string]interface{}{
		"recommendations": payload.Recommendations,
		"signals":         payload.Signals,
		"count":           len(payload.Recommendations),
	})
}
