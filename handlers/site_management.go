package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/middleware"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/cache"
	"p9e.in/inspectly/pkg/resolver"
	"p9e.in/inspectly/utils"
)

const siteViewsCacheKey = "sites:views"

// GetAllSites returns the denormalized site view for admin and staff
// listings. The view joins owners and checklists through the resolver,
// so callers never see which query path produced it.
func GetAllSites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var views []resolver.SiteView
	if hit, err := config.Cache.Get(ctx, siteViewsCacheKey, &views); err == nil && hit {
		writeJSON(w, http.StatusOK, views)
		return
	}

	views, err := siteResolver.SitesWithRelations(ctx)
	if err != nil {
		config.Log.Error("site view query failed", zap.Error(err))
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}

	// owner names come from profiles, titles from checklists; any of the
	// three mutating invalidates this entry
	if err := config.Cache.Set(ctx, siteViewsCacheKey, views,
		cache.GroupSites, cache.GroupChecklists, cache.GroupProfiles); err != nil {
		config.Log.Warn("site view cache store failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, views)
}

// GetSiteOwners is the lighter listing without checklist data, for
// pickers that only need names and owners. Explicitly chosen by the
// caller, not a fallback of GetAllSites.
func GetSiteOwners(w http.ResponseWriter, r *http.Request) {
	views, err := siteResolver.SitesWithOwners(r.Context())
	if err != nil {
		config.Log.Error("site owner query failed", zap.Error(err))
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GetMySites lists the sites owned by the calling client.
func GetMySites(w http.ResponseWriter, r *http.Request) {
	profile := middleware.CurrentProfile(r)
	if profile == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var sites []models.Site
	if err := config.DB.WithContext(r.Context()).
		Where("profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&sites).Error; err != nil {
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

type sitePayload struct {
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	ProfileID   *uuid.UUID      `json:"profileId"`
	ChecklistID *uint           `json:"checklistId"`
	VisitDay    models.VisitDay `json:"visitDay"`
	VisitTime   string          `json:"visitTime"`
	Geofence    *string         `json:"geofence"`
}

func (p *sitePayload) validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Address == "" {
		return "address is required"
	}
	if !models.ValidVisitDay(p.VisitDay) {
		return "visitDay must be a weekday name"
	}
	if p.VisitTime == "" {
		return "visitTime is required"
	}
	if p.Geofence != nil {
		if _, err := utils.ParseGeofence(*p.Geofence); err != nil {
			return "geofence: " + err.Error()
		}
	}
	return ""
}

// CreateSite is admin-only (enforced by the admin subrouter).
func CreateSite(w http.ResponseWriter, r *http.Request) {
	var req sitePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	site := models.Site{
		Name:        req.Name,
		Address:     req.Address,
		ProfileID:   req.ProfileID,
		ChecklistID: req.ChecklistID,
		VisitDay:    req.VisitDay,
		VisitTime:   req.VisitTime,
		Geofence:    req.Geofence,
	}
	if err := config.DB.Create(&site).Error; err != nil {
		http.Error(w, "failed to create site", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupSites)
	writeJSON(w, http.StatusCreated, site)
}

// UpdateSite is admin-only.
func UpdateSite(w http.ResponseWriter, r *http.Request) {
	var site models.Site
	if err := config.DB.First(&site, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "site not found", http.StatusNotFound)
		return
	}

	var req sitePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	site.Name = req.Name
	site.Address = req.Address
	site.ProfileID = req.ProfileID
	site.ChecklistID = req.ChecklistID
	site.VisitDay = req.VisitDay
	site.VisitTime = req.VisitTime
	site.Geofence = req.Geofence

	if err := config.DB.Save(&site).Error; err != nil {
		http.Error(w, "failed to update site", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupSites)
	writeJSON(w, http.StatusOK, site)
}

// DeleteSite is admin-only; soft delete, visit history stays intact.
func DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := config.DB.Delete(&models.Site{}, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "failed to delete site", http.StatusInternalServerError)
		return
	}
	config.Cache.Invalidate(r.Context(), cache.GroupSites)
	w.WriteHeader(http.StatusNoContent)
}
