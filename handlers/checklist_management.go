package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/cache"
)

// GetAllChecklists lists every checklist with its referencing-site
// count, so the UI can grey out undeletable ones up front.
func GetAllChecklists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	type checklistRow struct {
		models.Checklist
		SiteCount int64 `json:"siteCount"`
	}

	var rows []checklistRow
	if hit, err := config.Cache.Get(ctx, "checklists:list", &rows); err == nil && hit {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	var checklists []models.Checklist
	if err := config.DB.WithContext(ctx).Order("created_at DESC").Find(&checklists).Error; err != nil {
		http.Error(w, "failed to fetch checklists", http.StatusInternalServerError)
		return
	}

	rows = make([]checklistRow, len(checklists))
	for i, c := range checklists {
		var n int64
		if err := config.DB.WithContext(ctx).Model(&models.Site{}).
			Where("checklist_id = ?", c.ID).Count(&n).Error; err != nil {
			http.Error(w, "failed to count checklist usage", http.StatusInternalServerError)
			return
		}
		rows[i] = checklistRow{Checklist: c, SiteCount: n}
	}

	config.Cache.Set(ctx, "checklists:list", rows, cache.GroupChecklists, cache.GroupSites)
	writeJSON(w, http.StatusOK, rows)
}

type checklistPayload struct {
	Title string                 `json:"title"`
	Items []models.ChecklistItem `json:"items"`
}

func (p *checklistPayload) validate() string {
	if p.Title == "" {
		return "title is required"
	}
	for _, item := range p.Items {
		if item.Text == "" {
			return "checklist items must not be empty"
		}
	}
	return ""
}

// CreateChecklist is admin-only.
func CreateChecklist(w http.ResponseWriter, r *http.Request) {
	var req checklistPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		http.Error(w, "invalid items", http.StatusBadRequest)
		return
	}

	checklist := models.Checklist{Title: req.Title, Items: datatypes.JSON(items)}
	if err := config.DB.Create(&checklist).Error; err != nil {
		http.Error(w, "failed to create checklist", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupChecklists)
	writeJSON(w, http.StatusCreated, checklist)
}

// UpdateChecklist is admin-only. Existing visit reports are unaffected:
// they snapshot completion state as text at creation time.
func UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	var checklist models.Checklist
	if err := config.DB.First(&checklist, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "checklist not found", http.StatusNotFound)
		return
	}

	var req checklistPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		http.Error(w, "invalid items", http.StatusBadRequest)
		return
	}
	checklist.Title = req.Title
	checklist.Items = datatypes.JSON(items)

	if err := config.DB.Save(&checklist).Error; err != nil {
		http.Error(w, "failed to update checklist", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupChecklists)
	writeJSON(w, http.StatusOK, checklist)
}

// DeleteChecklist is admin-only and refuses while any site still
// references the checklist. The referencing count rides along so the
// caller can tell the user exactly what blocks the delete.
func DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var referencing int64
	if err := config.DB.Model(&models.Site{}).
		Where("checklist_id = ?", id).Count(&referencing).Error; err != nil {
		http.Error(w, "failed to check checklist usage", http.StatusInternalServerError)
		return
	}

	if err := models.CheckChecklistDeletable(referencing); err != nil {
		var ie *models.IntegrityError
		if errors.As(err, &ie) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error":            ie.Error(),
				"referencingSites": ie.ReferencingCount,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := config.DB.Delete(&models.Checklist{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete checklist", http.StatusInternalServerError)
		return
	}

	config.Cache.Invalidate(r.Context(), cache.GroupChecklists)
	w.WriteHeader(http.StatusNoContent)
}
