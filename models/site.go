package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitDay is the weekday of a site's recurring visit slot.
type VisitDay string

const (
	Monday    VisitDay = "monday"
	Tuesday   VisitDay = "tuesday"
	Wednesday VisitDay = "wednesday"
	Thursday  VisitDay = "thursday"
	Friday    VisitDay = "friday"
	Saturday  VisitDay = "saturday"
	Sunday    VisitDay = "sunday"
)

// ValidVisitDay reports whether d is one of the seven weekday values.
func ValidVisitDay(d VisitDay) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Site is a physical facility under inspection. Owner and checklist are
// both weak references: a site may be unassigned and may lack a
// checklist, and both states must render explicitly rather than fault.
type Site struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Address     string         `gorm:"size:255;not null" json:"address"`
	ProfileID   *uuid.UUID     `gorm:"type:uuid;index" json:"profileId,omitempty"` // owning client, nullable
	Owner       *Profile       `gorm:"foreignKey:ProfileID" json:"owner,omitempty"`
	ChecklistID *uint          `gorm:"index" json:"checklistId,omitempty"`
	Checklist   *Checklist     `gorm:"foreignKey:ChecklistID" json:"checklist,omitempty"`
	VisitDay    VisitDay       `gorm:"size:10;not null" json:"visitDay"`
	VisitTime   string         `gorm:"size:5;not null" json:"visitTime"` // HH:MM
	Geofence    *string        `gorm:"type:jsonb" json:"geofence,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
