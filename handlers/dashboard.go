package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/middleware"
)

// GetDashboardStats returns the caller's role-scoped summary counts.
// A failed count fails the whole response; the UI retries rather than
// render zeros that look like a real empty state.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	profile := middleware.CurrentProfile(r)
	if profile == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	stats, err := statsService.Stats(r.Context(), profile.Role, profile.ID.String())
	if err != nil {
		config.Log.Error("dashboard aggregation failed",
			zap.String("role", string(profile.Role)), zap.Error(err))
		http.Error(w, "failed to compute dashboard stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
