package resolver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"p9e.in/inspectly/models"
)

type fakeQuerier struct {
	joinedErr     error
	ownersErr     error
	views         []SiteView
	checklists    map[uint]*ChecklistRef
	checklistErrs map[uint]error
	pointLookups  int
}

func (f *fakeQuerier) SitesJoined(context.Context) ([]SiteView, error) {
	if f.joinedErr != nil {
		return nil, f.joinedErr
	}
	out := make([]SiteView, len(f.views))
	for i, v := range f.views {
		if v.Site.ChecklistID != nil {
			if ref, ok := f.checklists[*v.Site.ChecklistID]; ok {
				v.ChecklistInfo = ref
			}
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeQuerier) SitesWithOwners(context.Context) ([]SiteView, error) {
	if f.ownersErr != nil {
		return nil, f.ownersErr
	}
	out := make([]SiteView, len(f.views))
	copy(out, f.views)
	return out, nil
}

func (f *fakeQuerier) ChecklistByID(_ context.Context, id uint) (*ChecklistRef, error) {
	f.pointLookups++
	if err, ok := f.checklistErrs[id]; ok {
		return nil, err
	}
	if ref, ok := f.checklists[id]; ok {
		return ref, nil
	}
	return nil, fmt.Errorf("checklist %d not found", id)
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(s string) *string { return &s }

func siteView(id uint, owner string, checklistID *uint) SiteView {
	v := SiteView{Site: models.Site{ID: id, Name: fmt.Sprintf("Site %d", id), ChecklistID: checklistID}}
	if owner != "" {
		v.OwnerName = strPtr(owner)
	}
	return v
}

func TestFallbackEquivalence(t *testing.T) {
	checklists := map[uint]*ChecklistRef{
		7: {ID: 7, Title: "Basic Clean"},
		9: {ID: 9, Title: "Deep Clean"},
	}
	views := []SiteView{
		siteView(1, "Acme Ltd", uintPtr(7)),
		siteView(2, "", nil),
		siteView(3, "Borealis", uintPtr(9)),
	}

	direct := &fakeQuerier{views: views, checklists: checklists}
	got1, err := New(direct, nil).SitesWithRelations(context.Background())
	if err != nil {
		t.Fatalf("direct path: %v", err)
	}

	forced := &fakeQuerier{
		views:      views,
		checklists: checklists,
		joinedErr:  ErrAmbiguousRelationship,
	}
	got2, err := New(forced, nil).SitesWithRelations(context.Background())
	if err != nil {
		t.Fatalf("fallback path: %v", err)
	}

	if !reflect.DeepEqual(got1, got2) {
		t.Errorf("direct and fallback views differ:\ndirect:   %+v\nfallback: %+v", got1, got2)
	}
}

func TestFallbackSkipsPointLookupForNilChecklist(t *testing.T) {
	q := &fakeQuerier{
		views: []SiteView{
			siteView(1, "Acme", nil),
			siteView(2, "", uintPtr(7)),
		},
		checklists: map[uint]*ChecklistRef{7: {ID: 7, Title: "Basic"}},
		joinedErr:  ErrEmbeddingFailure,
	}

	views, err := New(q, nil).SitesWithRelations(context.Background())
	if err != nil {
		t.Fatalf("SitesWithRelations: %v", err)
	}
	if q.pointLookups != 1 {
		t.Errorf("point lookups = %d, want 1 (nil checklist id must not query)", q.pointLookups)
	}
	if views[0].ChecklistInfo != nil {
		t.Error("site without checklist id should resolve to nil checklist")
	}
	if views[1].ChecklistInfo == nil || views[1].ChecklistInfo.Title != "Basic" {
		t.Errorf("site 2 checklist = %+v, want Basic", views[1].ChecklistInfo)
	}
}

func TestPartialEnrichmentDegradesToNil(t *testing.T) {
	q := &fakeQuerier{
		views: []SiteView{
			siteView(1, "A", uintPtr(1)),
			siteView(2, "B", uintPtr(2)),
			siteView(3, "C", uintPtr(3)),
			siteView(4, "D", uintPtr(4)),
		},
		checklists: map[uint]*ChecklistRef{
			1: {ID: 1, Title: "One"},
			2: {ID: 2, Title: "Two"},
			4: {ID: 4, Title: "Four"},
		},
		checklistErrs: map[uint]error{3: errors.New("connection reset")},
		joinedErr:     ErrAmbiguousRelationship,
	}

	views, err := New(q, nil).SitesWithRelations(context.Background())
	if err != nil {
		t.Fatalf("batch must not fail on a single enrichment error, got %v", err)
	}
	if len(views) != 4 {
		t.Fatalf("len(views) = %d, want 4", len(views))
	}

	populated := 0
	for _, v := range views {
		if v.ChecklistInfo != nil {
			populated++
		}
	}
	if populated != 3 {
		t.Errorf("populated checklists = %d, want 3", populated)
	}
	for _, v := range views {
		if v.Site.ID == 3 && v.ChecklistInfo != nil {
			t.Error("failed enrichment should leave site 3's checklist nil")
		}
	}
}

func TestNonAmbiguousErrorPropagates(t *testing.T) {
	queryErr := errors.New("connection refused")
	q := &fakeQuerier{joinedErr: queryErr}

	_, err := New(q, nil).SitesWithRelations(context.Background())
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected query failure to propagate, got %v", err)
	}
	if q.pointLookups != 0 {
		t.Error("fallback must not run for non-ambiguity errors")
	}
}

func TestBothStrategiesFailing(t *testing.T) {
	q := &fakeQuerier{
		joinedErr: ErrAmbiguousRelationship,
		ownersErr: errors.New("timeout"),
	}
	if _, err := New(q, nil).SitesWithRelations(context.Background()); err == nil {
		t.Fatal("expected error when every strategy fails")
	}
}

func TestIsRelationshipAmbiguity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sentinel ambiguity", ErrAmbiguousRelationship, true},
		{"sentinel embedding", ErrEmbeddingFailure, true},
		{"wrapped sentinel", fmt.Errorf("sites: %w", ErrAmbiguousRelationship), true},
		{"pg ambiguous column", &pgconn.PgError{Code: "42702"}, true},
		{"pg ambiguous alias", &pgconn.PgError{Code: "42P09"}, true},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"gorm unsupported relation", gorm.ErrUnsupportedRelation, true},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelationshipAmbiguity(tt.err); got != tt.want {
				t.Errorf("IsRelationshipAmbiguity(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
