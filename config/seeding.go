package config

import (
	"log"
	"os"

	"github.com/google/uuid"

	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/access"
)

// SeedAdminProfile bootstraps the first admin so a fresh deployment is
// not locked out. Skips silently when any admin already exists.
func SeedAdminProfile() {
	var count int64
	if err := DB.Model(&models.Profile{}).Where("role = ?", access.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("Warning: admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	idStr := os.Getenv("ADMIN_PROFILE_ID")
	if idStr == "" {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("Warning: ADMIN_PROFILE_ID is not a uuid: %v", err)
		return
	}

	name := os.Getenv("ADMIN_FULL_NAME")
	if name == "" {
		name = "Portal Admin"
	}

	admin := models.Profile{ID: id, FullName: name, Role: access.RoleAdmin}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: admin seeding failed: %v", err)
		return
	}
	log.Printf("Seeded admin profile %s", id)
}
