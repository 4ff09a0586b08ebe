package api

import (
	"net/http"
	"time"
)

// handleRecentMetrics returns the raw daily rows the dashboard charts,
// oldest-first over the requested day span (default 30, capped at 90).
func (s *Server) handleRecentMetrics(w http.ResponseWriter, r *http.Request) {
	accountID := accountFrom(r)

	minDays, maxDays := 1, 90
	days := getIntParam(r, "days", 30, &minDays, &maxDays)

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.repo.MetricsInRange(accountID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load metrics", err)
		return
	}

	respondOK(w, map[string]interface{}{
		"data":  rows,
		"count": len(rows),
		"days":  days,
	})
}
