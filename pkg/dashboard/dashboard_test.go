package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"p9e.in/inspectly/pkg/access"
)

// fakeCounter answers counts with an optional per-query delay so tests
// can force out-of-order completion.
type fakeCounter struct {
	sites, profiles, checklists, todayVisits int64
	byStaff, ownedSites, ownedVisits         int64
	failing                                  string
	delays                                   map[string]time.Duration
}

func (f *fakeCounter) answer(name string, v int64) (int64, error) {
	if d, ok := f.delays[name]; ok {
		time.Sleep(d)
	}
	if f.failing == name {
		return 0, errors.New(name + " query failed")
	}
	return v, nil
}

func (f *fakeCounter) TotalSites(context.Context) (int64, error) {
	return f.answer("sites", f.sites)
}
func (f *fakeCounter) TotalProfiles(context.Context) (int64, error) {
	return f.answer("profiles", f.profiles)
}
func (f *fakeCounter) TotalChecklists(context.Context) (int64, error) {
	return f.answer("checklists", f.checklists)
}
func (f *fakeCounter) VisitsOnOrAfterToday(context.Context) (int64, error) {
	return f.answer("todayVisits", f.todayVisits)
}
func (f *fakeCounter) VisitsByStaff(context.Context, string) (int64, error) {
	return f.answer("byStaff", f.byStaff)
}
func (f *fakeCounter) SitesOwnedBy(context.Context, string) (int64, error) {
	return f.answer("ownedSites", f.ownedSites)
}
func (f *fakeCounter) VisitsToOwnedSites(context.Context, string) (int64, error) {
	return f.answer("ownedVisits", f.ownedVisits)
}

func TestAdminStatsOutOfOrderCompletion(t *testing.T) {
	// reverse the completion order: the first-issued query finishes last
	f := &fakeCounter{
		sites: 10, todayVisits: 2, profiles: 4, checklists: 3,
		delays: map[string]time.Duration{
			"sites":       40 * time.Millisecond,
			"todayVisits": 30 * time.Millisecond,
			"profiles":    20 * time.Millisecond,
			"checklists":  10 * time.Millisecond,
		},
	}

	stats, err := New(f).Stats(context.Background(), access.RoleAdmin, "admin-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Sites != 10 || stats.TodayVisits != 2 || stats.Users != 4 || stats.Checklists != 3 {
		t.Errorf("stats = %+v, want sites:10 todayVisits:2 users:4 checklists:3", stats)
	}
}

func TestStaffStats(t *testing.T) {
	f := &fakeCounter{sites: 6, byStaff: 11}
	stats, err := New(f).Stats(context.Background(), access.RoleStaff, "staff-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Sites != 6 || stats.MyVisits != 11 {
		t.Errorf("stats = %+v, want sites:6 myVisits:11", stats)
	}
}

func TestClientStats(t *testing.T) {
	f := &fakeCounter{ownedSites: 2, ownedVisits: 9}
	stats, err := New(f).Stats(context.Background(), access.RoleClient, "client-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.MySites != 2 || stats.TotalVisits != 9 {
		t.Errorf("stats = %+v, want mySites:2 totalVisits:9", stats)
	}
}

func TestSingleCountFailureFailsAggregation(t *testing.T) {
	f := &fakeCounter{sites: 10, failing: "profiles"}
	_, err := New(f).Stats(context.Background(), access.RoleAdmin, "admin-1")
	if err == nil {
		t.Fatal("expected failure when one count query fails; zero-filling would lie")
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	if _, err := New(&fakeCounter{}).Stats(context.Background(), access.Role("manager"), "x"); err == nil {
		t.Fatal("expected error for role outside the closed set")
	}
}
