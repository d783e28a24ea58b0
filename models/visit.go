package models

import (
	"time"

	"github.com/google/uuid"
)

// Visit records one staff inspection of a site. Visits are immutable
// after creation: no update or delete path exists anywhere in the API.
// ChecklistID snapshots the checklist in effect at visit time; the
// report body in Notes carries the completion detail (see pkg/report).
type Visit struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SiteID       uint       `gorm:"not null;index" json:"siteId"`
	Site         *Site      `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	ProfileID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"profileId"` // staff who performed it
	Profile      *Profile   `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	ChecklistID  *uint      `json:"checklistId,omitempty"`
	Checklist    *Checklist `gorm:"foreignKey:ChecklistID" json:"checklist,omitempty"`
	VisitDate    time.Time  `gorm:"type:date;not null;index" json:"visitDate"`
	CheckinTime  *time.Time `json:"checkinTime,omitempty"`
	CheckoutTime *time.Time `json:"checkoutTime,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
}
