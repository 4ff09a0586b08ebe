package api

import (
	"context"
	"net/http"
	"strings"
)

// The session layer in front of this service authenticates the dashboard
// user and forwards the resolved identity in this header. No query runs
// without it.
const accountHeader = "X-Account-ID"

type contextKey string

const accountContextKey contextKey = "accountID"

// requireAccount rejects requests that carry no account context before any
// handler logic runs.
func (s *Server) requireAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := strings.TrimSpace(r.Header.Get(accountHeader))
		if accountID == "" {
			respondError(w, http.StatusUnauthorized, "missing account context", nil)
			return
		}
		ctx := context.WithValue(r.Context(), accountContextKey, accountID)
		next(w, r.WithContext(ctx))
	}
}

// accountFrom returns the account id placed in the request context by
// requireAccount.
func accountFrom(r *http.Request) string {
	accountID, _ := r.Context().Value(accountContextKey).(string)
	return accountID
}
