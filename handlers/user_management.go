package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/access"
	"p9e.in/inspectly/pkg/cache"
)

// GetAllProfiles lists every account for the admin users page.
func GetAllProfiles(w http.ResponseWriter, r *http.Request) {
	var profiles []models.Profile
	if err := config.DB.WithContext(r.Context()).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		http.Error(w, "failed to fetch profiles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

type updateProfileReq struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// UpdateProfile changes a user's name or role. Admin-only; the role
// set is closed, anything outside admin/staff/client is rejected as a
// data-integrity error rather than stored.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	role, err := access.ParseRole(req.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	profile.Role = role

	if err := config.DB.Save(&profile).Error; err != nil {
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupProfiles)
	writeJSON(w, http.StatusOK, profile)
}
