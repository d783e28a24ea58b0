package resolver

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"p9e.in/inspectly/models"
)

// GormQuerier implements Querier over the portal's Postgres handle.
type GormQuerier struct {
	db *gorm.DB
}

func NewGormQuerier(db *gorm.DB) *GormQuerier {
	return &GormQuerier{db: db}
}

func (g *GormQuerier) SitesJoined(ctx context.Context) ([]SiteView, error) {
	var sites []models.Site
	err := g.db.WithContext(ctx).
		Joins("Owner").
		Joins("Checklist").
		Order("sites.created_at DESC").
		Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("sites combined join: %w", err)
	}
	return viewsFrom(sites, true), nil
}

func (g *GormQuerier) SitesWithOwners(ctx context.Context) ([]SiteView, error) {
	var sites []models.Site
	err := g.db.WithContext(ctx).
		Joins("Owner").
		Order("sites.created_at DESC").
		Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("sites owner join: %w", err)
	}
	return viewsFrom(sites, false), nil
}

func (g *GormQuerier) ChecklistByID(ctx context.Context, id uint) (*ChecklistRef, error) {
	var checklist models.Checklist
	err := g.db.WithContext(ctx).
		Select("id", "title").
		First(&checklist, id).Error
	if err != nil {
		return nil, fmt.Errorf("checklist %d: %w", id, err)
	}
	return &ChecklistRef{ID: checklist.ID, Title: checklist.Title}, nil
}

// viewsFrom flattens loaded associations into the view shape and drops
// the association pointers so every strategy returns identical output.
func viewsFrom(sites []models.Site, withChecklists bool) []SiteView {
	views := make([]SiteView, len(sites))
	for i, s := range sites {
		v := SiteView{Site: s}
		if s.Owner != nil {
			name := s.Owner.FullName
			v.OwnerName = &name
		}
		if withChecklists && s.Checklist != nil {
			v.ChecklistInfo = &ChecklistRef{ID: s.Checklist.ID, Title: s.Checklist.Title}
		}
		v.Site.Owner = nil
		v.Site.Checklist = nil
		views[i] = v
	}
	return views
}
