package models

import (
	"time"

	"github.com/google/uuid"

	"p9e.in/inspectly/pkg/access"
)

// Profile mirrors an identity-provider account. Profiles are created on
// first sign-in and never deleted here; only an admin may change the
// role.
type Profile struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string      `gorm:"size:100;not null" json:"fullName"`
	Role      access.Role `gorm:"size:20;not null;default:client" json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Principal converts a profile into the guard's view of the caller.
func (p *Profile) Principal() *access.Principal {
	return &access.Principal{
		ID:       p.ID.String(),
		FullName: p.FullName,
		Role:     p.Role,
	}
}
