// Package dashboard computes the per-role summary counts shown on the
// landing page. Counts for a role run concurrently and merge once all
// have settled; any single failure fails the whole aggregation, since a
// silently zero-filled card is indistinguishable from a true empty
// state.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"p9e.in/inspectly/pkg/access"
)

// Counter is the datastore counting contract.
type Counter interface {
	TotalSites(ctx context.Context) (int64, error)
	TotalProfiles(ctx context.Context) (int64, error)
	TotalChecklists(ctx context.Context) (int64, error)
	// VisitsOnOrAfterToday counts visits dated today or later.
	VisitsOnOrAfterToday(ctx context.Context) (int64, error)
	// VisitsByStaff counts visits performed by the given staff profile.
	VisitsByStaff(ctx context.Context, profileID string) (int64, error)
	// SitesOwnedBy counts sites owned by the given client profile.
	SitesOwnedBy(ctx context.Context, profileID string) (int64, error)
	// VisitsToOwnedSites counts visits whose site the profile owns.
	VisitsToOwnedSites(ctx context.Context, profileID string) (int64, error)
}

// Stats is the merged result. Only the fields for the caller's role are
// populated; the Role field says which.
type Stats struct {
	Role access.Role `json:"role"`

	// admin
	Sites       int64 `json:"sites,omitempty"`
	TodayVisits int64 `json:"todayVisits,omitempty"`
	Users       int64 `json:"users,omitempty"`
	Checklists  int64 `json:"checklists,omitempty"`

	// staff
	MyVisits int64 `json:"myVisits,omitempty"`

	// client
	MySites     int64 `json:"mySites,omitempty"`
	TotalVisits int64 `json:"totalVisits,omitempty"`
}

// Aggregator runs role-dispatched count batches over a Counter.
type Aggregator struct {
	c Counter
}

func New(c Counter) *Aggregator {
	return &Aggregator{c: c}
}

type countJob struct {
	dest *int64
	run  func(ctx context.Context) (int64, error)
}

// Stats returns the summary for the caller. The count set is a single
// three-way dispatch on role, the same source of truth the guard and
// the nav menu use.
func (a *Aggregator) Stats(ctx context.Context, role access.Role, profileID string) (*Stats, error) {
	stats := &Stats{Role: role}

	var jobs []countJob
	switch role {
	case access.RoleAdmin:
		jobs = []countJob{
			{&stats.Sites, a.c.TotalSites},
			{&stats.TodayVisits, a.c.VisitsOnOrAfterToday},
			{&stats.Users, a.c.TotalProfiles},
			{&stats.Checklists, a.c.TotalChecklists},
		}
	case access.RoleStaff:
		jobs = []countJob{
			{&stats.Sites, a.c.TotalSites},
			{&stats.MyVisits, func(ctx context.Context) (int64, error) {
				return a.c.VisitsByStaff(ctx, profileID)
			}},
		}
	case access.RoleClient:
		jobs = []countJob{
			{&stats.MySites, func(ctx context.Context) (int64, error) {
				return a.c.SitesOwnedBy(ctx, profileID)
			}},
			{&stats.TotalVisits, func(ctx context.Context) (int64, error) {
				return a.c.VisitsToOwnedSites(ctx, profileID)
			}},
		}
	default:
		return nil, fmt.Errorf("dashboard: unknown role %q", role)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, job := range jobs {
		wg.Add(1)
		go func(j countJob) {
			defer wg.Done()
			n, err := j.run(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			*j.dest = n
		}(job)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}
