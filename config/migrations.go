package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/inspectly/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "14072026_create_portal_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Profile{}, &models.Checklist{},
					&models.Site{}, &models.Visit{})
			},
		},
		{
			ID: "02082026_add_site_geofence",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasColumn(&models.Site{}, "geofence") {
					return nil
				}
				return tx.Migrator().AddColumn(&models.Site{}, "Geofence")
			},
		},
		{
			ID: "19082026_index_visits_by_date",
			Migrate: func(tx *gorm.DB) error {
				// dashboard counts filter on visit_date constantly
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_visits_visit_date ON visits (visit_date)").Error
			},
		},
	})
	return m.Migrate()
}
