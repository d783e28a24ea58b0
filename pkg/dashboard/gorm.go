package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"p9e.in/inspectly/models"
)

// GormCounter implements Counter over the portal database.
type GormCounter struct {
	db *gorm.DB
}

func NewGormCounter(db *gorm.DB) *GormCounter {
	return &GormCounter{db: db}
}

func (g *GormCounter) count(ctx context.Context, model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	tx := g.db.WithContext(ctx).Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	return n, tx.Count(&n).Error
}

func (g *GormCounter) TotalSites(ctx context.Context) (int64, error) {
	return g.count(ctx, &models.Site{}, "")
}

func (g *GormCounter) TotalProfiles(ctx context.Context) (int64, error) {
	return g.count(ctx, &models.Profile{}, "")
}

func (g *GormCounter) TotalChecklists(ctx context.Context) (int64, error) {
	return g.count(ctx, &models.Checklist{}, "")
}

func (g *GormCounter) VisitsOnOrAfterToday(ctx context.Context) (int64, error) {
	today := time.Now().Format("2006-01-02")
	return g.count(ctx, &models.Visit{}, "visit_date >= ?", today)
}

func (g *GormCounter) VisitsByStaff(ctx context.Context, profileID string) (int64, error) {
	return g.count(ctx, &models.Visit{}, "profile_id = ?", profileID)
}

func (g *GormCounter) SitesOwnedBy(ctx context.Context, profileID string) (int64, error) {
	return g.count(ctx, &models.Site{}, "profile_id = ?", profileID)
}

func (g *GormCounter) VisitsToOwnedSites(ctx context.Context, profileID string) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Visit{}).
		Joins("JOIN sites ON sites.id = visits.site_id").
		Where("sites.profile_id = ?", profileID).
		Count(&n).Error
	return n, err
}
