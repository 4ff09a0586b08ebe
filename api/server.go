package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"churn-metrics-hub/cache"
	"churn-metrics-hub/config"
	"churn-metrics-hub/database"
	"churn-metrics-hub/database/metrics"
)

// Server handles HTTP API requests
type Server struct {
	repo        *metrics.Repository
	reportCache *cache.ReportCache
	pool        *database.SQLPool
	cfg         *config.Config
}

// NewServer creates a new API server instance
func NewServer(repo *metrics.Repository, reportCache *cache.ReportCache, pool *database.SQLPool, cfg *config.Config) *Server {
	return &Server{
		repo:        repo,
		reportCache: reportCache,
		pool:        pool,
		cfg:         cfg,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Report Routes
	mux.HandleFunc("GET /api/reports/behavior", s.requireAccount(s.handleBehaviorReport))
	mux.HandleFunc("GET /api/reports/revenue", s.requireAccount(s.handleRevenueReport))
	mux.HandleFunc("GET /api/reports/retention", s.requireAccount(s.handleRetentionReport))
	mux.HandleFunc("GET /api/reports/summary", s.requireAccount(s.handleSummaryReport))
	mux.HandleFunc("POST /api/reports/refresh", s.requireAccount(s.handleRefreshReports))

	// Recommendation Routes
	mux.HandleFunc("GET /api/recommendations", s.requireAccount(s.handleRecommendations))

	// Raw Metrics Routes
	mux.HandleFunc("GET /api/metrics/recent", s.requireAccount(s.handleRecentMetrics))

	mux.HandleFunc("GET /health", s.handleHealth)

	// Serve Static Files (Dashboard UI)
	fs := http.FileServer(http.Dir("./public"))
	mux.Handle("GET /", fs)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Account-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports liveness plus datastore reachability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "up"
	if s.pool != nil {
		if err := s.pool.Ping(); err != nil {
			dbStatus = "down"
		}
	}

	respondOK(w, map[string]interface{}{
		"status":   "healthy",
		"database": dbStatus,
		"cache":    s.reportCache.Enabled(),
		"time":     time.Now().UTC(),
	})
}

// Handlers are distributed across multiple files:
// - handlers_reports.go: Behavior, revenue, retention and summary reports
// - handlers_recommendations.go: Recommendation rule engine output
// - handlers_metrics.go: Raw daily metric rows for charts
