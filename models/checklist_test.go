package models

import (
	"errors"
	"testing"

	"gorm.io/datatypes"
)

func TestCheckChecklistDeletable(t *testing.T) {
	err := CheckChecklistDeletable(2)
	if err == nil {
		t.Fatal("expected rejection for a checklist referenced by 2 sites")
	}
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IntegrityError, got %T", err)
	}
	if ie.ReferencingCount != 2 {
		t.Errorf("ReferencingCount = %d, want 2", ie.ReferencingCount)
	}

	if err := CheckChecklistDeletable(0); err != nil {
		t.Errorf("unreferenced checklist should be deletable, got %v", err)
	}
}

func TestItemListShapes(t *testing.T) {
	tests := []struct {
		name  string
		items string
		want  []string
		isErr bool
	}{
		{"object items", `[{"text":"Sweep floor"},{"text":"Lock doors"}]`, []string{"Sweep floor", "Lock doors"}, false},
		{"legacy string items", `["Sweep floor","Lock doors"]`, []string{"Sweep floor", "Lock doors"}, false},
		{"empty column", ``, nil, false},
		{"malformed", `{"not":"a list"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Checklist{ID: 1, Items: datatypes.JSON(tt.items)}
			got, err := c.ItemList()
			if (err != nil) != tt.isErr {
				t.Fatalf("ItemList() error = %v, wantErr %v", err, tt.isErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Text != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, got[i].Text, tt.want[i])
				}
			}
		})
	}
}
