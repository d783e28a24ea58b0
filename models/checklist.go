package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ChecklistItem is one ordered task label within a checklist.
type ChecklistItem struct {
	Text string `json:"text"`
}

// Checklist is a reusable, ordered list of inspection tasks. Items are
// stored as a JSON array so reordering and editing stay a single-row
// update.
type Checklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:100;not null" json:"title"`
	Items     datatypes.JSON `gorm:"type:jsonb" json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ItemList decodes the stored items column. Legacy rows may hold plain
// strings instead of {text} objects; both shapes are accepted.
func (c *Checklist) ItemList() ([]ChecklistItem, error) {
	if len(c.Items) == 0 {
		return nil, nil
	}

	var items []ChecklistItem
	if err := json.Unmarshal(c.Items, &items); err == nil {
		return items, nil
	}

	var labels []string
	if err := json.Unmarshal(c.Items, &labels); err != nil {
		return nil, fmt.Errorf("checklist %d: malformed items column: %w", c.ID, err)
	}
	items = make([]ChecklistItem, len(labels))
	for i, l := range labels {
		items[i] = ChecklistItem{Text: l}
	}
	return items, nil
}

// IntegrityError rejects a mutation that would break referential
// integrity, carrying the referencing-site count so the caller can
// explain the block to the user.
type IntegrityError struct {
	Resource         string
	ReferencingCount int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s is referenced by %d site(s)", e.Resource, e.ReferencingCount)
}

// CheckChecklistDeletable rejects deletion while any site references
// the checklist. Checked before the mutation is attempted so the
// database never sees the bad delete.
func CheckChecklistDeletable(referencingSites int64) error {
	if referencingSites > 0 {
		return &IntegrityError{Resource: "checklist", ReferencingCount: int(referencingSites)}
	}
	return nil
}
