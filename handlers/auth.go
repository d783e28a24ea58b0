// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/middleware"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/access"
)

type sessionExchangeReq struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
}

type sessionResp struct {
	Token   string           `json:"token"`
	Profile *models.Profile  `json:"profile"`
	Nav     []access.NavItem `json:"nav"`
}

// ExchangeSession turns a gateway-verified identity assertion into a
// portal token. First sign-in creates the profile with the client role;
// later role changes are admin-only through the users endpoint. Sits
// behind RequireGatewayKey, the identity provider is trusted upstream.
func ExchangeSession(w http.ResponseWriter, r *http.Request) {
	var req sessionExchangeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "userId must be a uuid", http.StatusBadRequest)
		return
	}
	if req.FullName == "" {
		http.Error(w, "fullName is required", http.StatusBadRequest)
		return
	}

	profile := models.Profile{ID: id, FullName: req.FullName, Role: access.RoleClient}
	if err := config.DB.Where("id = ?", id).FirstOrCreate(&profile).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := middleware.GenerateToken(profile.ID.String(), string(profile.Role), profile.FullName)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessionResp{
		Token:   token,
		Profile: &profile,
		Nav:     access.NavItems(profile.Role),
	})
}

// GetCurrentUser returns the caller's profile and role-scoped menu.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	profile := middleware.CurrentProfile(r)
	if profile == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"nav":     access.NavItems(profile.Role),
	})
}
