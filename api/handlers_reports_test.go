package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"churn-metrics-hub/cache"
)

func TestRefreshReports(t *testing.T) {
	// Disabled cache: invalidation is a no-op but the endpoint still
	// reports every kind it cleared
	s := &Server{reportCache: cache.NewReportCache(nil, 0)}
	handler := s.requireAccount(s.handleRefreshReports)

	r := httptest.NewRequest("POST", "/api/reports/refresh", nil)
	r.Header.Set(accountHeader, "acct-1")
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}

	refreshed, ok := body["refreshed"].([]interface{})
	if !ok {
		t.Fatalf("refreshed = %T, want list", body["refreshed"])
	}
	if len(refreshed) != len(reportKinds) {
		t.Errorf("refreshed %d kinds, want %d", len(refreshed), len(reportKinds))
	}
}

func TestRefreshReportsRequiresAccount(t *testing.T) {
	s := &Server{reportCache: cache.NewReportCache(nil, 0)}
	handler := s.requireAccount(s.handleRefreshReports)

	r := httptest.NewRequest("POST", "/api/reports/refresh", nil)
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
