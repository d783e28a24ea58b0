package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/middleware"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/access"
	"p9e.in/inspectly/pkg/cache"
	"p9e.in/inspectly/pkg/report"
	"p9e.in/inspectly/utils"
)

type createVisitReq struct {
	SiteID    uint              `json:"siteId"`
	VisitDate string            `json:"visitDate"` // YYYY-MM-DD
	Notes     string            `json:"notes"`
	Items     []report.Item     `json:"items"`
	Checkin   *utils.Coordinate `json:"checkin,omitempty"`
}

// CreateVisit logs a completed inspection. Staff and admin only. The
// checklist in effect is snapshotted onto the visit and the completion
// state is serialized into the report body; visits are immutable after
// this insert.
func CreateVisit(w http.ResponseWriter, r *http.Request) {
	profile := middleware.CurrentProfile(r)
	if profile == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req createVisitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		http.Error(w, "visitDate must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var site models.Site
	if err := config.DB.First(&site, "id = ?", req.SiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "site not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load site", http.StatusInternalServerError)
		return
	}

	// reject check-ins from outside the site's fence, when both sides
	// of the comparison exist
	if site.Geofence != nil && req.Checkin != nil {
		fence, err := utils.ParseGeofence(*site.Geofence)
		if err != nil {
			config.Log.Warn("stored geofence unparseable, skipping check-in validation",
				zap.Uint("siteID", site.ID), zap.Error(err))
		} else if fence != nil && !fence.Contains(*req.Checkin) {
			http.Error(w, "check-in location is outside the site boundary", http.StatusUnprocessableEntity)
			return
		}
	}

	var checklistTitle string
	if site.ChecklistID != nil {
		var checklist models.Checklist
		if err := config.DB.First(&checklist, "id = ?", *site.ChecklistID).Error; err == nil {
			checklistTitle = checklist.Title
		}
	}

	now := time.Now()
	visit := models.Visit{
		SiteID:       site.ID,
		ProfileID:    profile.ID,
		ChecklistID:  site.ChecklistID,
		VisitDate:    visitDate,
		CheckinTime:  &now,
		CheckoutTime: &now,
		Notes:        report.Encode(checklistTitle, req.Items, req.Notes),
	}
	if err := config.DB.Create(&visit).Error; err != nil {
		http.Error(w, "failed to create visit", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupVisits)
	writeJSON(w, http.StatusCreated, visit)
}

// visitRow decorates a visit with its decoded completion summary so
// tables and filters never re-parse the body client-side.
type visitRow struct {
	models.Visit
	Summary report.Summary `json:"summary"`
}

// GetVisits lists visit history filtered by the caller's role: admins
// see everything, staff their own visits, clients the visits made to
// sites they own.
func GetVisits(w http.ResponseWriter, r *http.Request) {
	profile := middleware.CurrentProfile(r)
	if profile == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	tx := config.DB.WithContext(r.Context()).
		Preload("Site").
		Preload("Site.Owner").
		Preload("Profile").
		Preload("Checklist").
		Order("visit_date DESC, created_at DESC")

	switch profile.Role {
	case access.RoleAdmin:
		// no filter
	case access.RoleStaff:
		tx = tx.Where("profile_id = ?", profile.ID)
	case access.RoleClient:
		tx = tx.Joins("JOIN sites ON sites.id = visits.site_id").
			Where("sites.profile_id = ?", profile.ID)
	default:
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var visits []models.Visit
	if err := tx.Find(&visits).Error; err != nil {
		config.Log.Error("visit history query failed", zap.Error(err))
		http.Error(w, "failed to fetch visits", http.StatusInternalServerError)
		return
	}

	rows := make([]visitRow, len(visits))
	for i, v := range visits {
		rows[i] = visitRow{Visit: v, Summary: report.Decode(v.Notes)}
	}
	writeJSON(w, http.StatusOK, rows)
}
