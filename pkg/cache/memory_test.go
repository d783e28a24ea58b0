package cache

import (
	"context"
	"testing"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	type view struct {
		Name string `json:"name"`
	}

	if err := c.Set(ctx, "sites:list", []view{{Name: "Mill Lane"}}, GroupSites); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []view
	ok, err := c.Get(ctx, "sites:list", &got)
	if err != nil || !ok {
		t.Fatalf("Get ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Name != "Mill Lane" {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryGetMiss(t *testing.T) {
	var dest string
	ok, err := NewMemory().Get(context.Background(), "absent", &dest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryGroupInvalidation(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "sites:list", "a", GroupSites)
	c.Set(ctx, "sites:views", "b", GroupSites, GroupChecklists)
	c.Set(ctx, "profiles:list", "c", GroupProfiles)

	if err := c.Invalidate(ctx, GroupChecklists); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	var s string
	if ok, _ := c.Get(ctx, "sites:views", &s); ok {
		t.Error("sites:views should be invalidated via checklists group")
	}
	if ok, _ := c.Get(ctx, "sites:list", &s); !ok {
		t.Error("sites:list should survive a checklists invalidation")
	}
	if ok, _ := c.Get(ctx, "profiles:list", &s); !ok {
		t.Error("profiles:list should survive a checklists invalidation")
	}
}
