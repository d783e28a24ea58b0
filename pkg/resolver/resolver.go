// Package resolver produces denormalized site views while tolerating a
// datastore that may reject a combined three-table join. It tries an
// ordered list of query strategies; ambiguity-class failures select the
// next strategy, anything else propagates. Callers always get the same
// view shape and never observe which strategy ran.
package resolver

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"p9e.in/inspectly/models"
)

// ChecklistRef is the checklist portion of a site view.
type ChecklistRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// SiteView is the denormalized read shape for site listings. OwnerName
// and ChecklistInfo are nil for unassigned sites; that is a rendered
// state ("unassigned", "no checklist"), never a fault.
type SiteView struct {
	models.Site
	OwnerName     *string       `json:"ownerName"`
	ChecklistInfo *ChecklistRef `json:"checklist"`
}

// Querier is the datastore query contract the resolver runs on.
type Querier interface {
	// SitesJoined resolves sites, owners and checklists in one combined
	// query via the explicit foreign-key paths.
	SitesJoined(ctx context.Context) ([]SiteView, error)
	// SitesWithOwners resolves sites and owners only; checklists are
	// left nil for the caller to fill in or skip.
	SitesWithOwners(ctx context.Context) ([]SiteView, error)
	// ChecklistByID is the per-site point lookup used by the fallback.
	ChecklistByID(ctx context.Context, id uint) (*ChecklistRef, error)
}

// Resolver runs the strategy chain over a Querier.
type Resolver struct {
	q   Querier
	log *zap.Logger
}

func New(q Querier, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{q: q, log: log}
}

type strategy struct {
	name string
	run  func(ctx context.Context) ([]SiteView, error)
}

// SitesWithRelations returns the full site view. Strategies are tried
// in order; a new degraded strategy slots into the list without
// touching the loop.
func (r *Resolver) SitesWithRelations(ctx context.Context) ([]SiteView, error) {
	strategies := []strategy{
		{name: "combined-join", run: r.q.SitesJoined},
		{name: "owner-join-then-point-lookups", run: r.enrichSeparately},
	}

	var lastErr error
	for _, s := range strategies {
		views, err := s.run(ctx)
		if err == nil {
			return views, nil
		}
		if !IsRelationshipAmbiguity(err) {
			return nil, err
		}
		r.log.Warn("site query strategy failed with relationship ambiguity",
			zap.String("strategy", s.name), zap.Error(err))
		lastErr = err
	}
	return nil, lastErr
}

// SitesWithOwners is the lighter operation for callers that do not need
// checklist data. It is an explicitly chosen query, not a fallback.
func (r *Resolver) SitesWithOwners(ctx context.Context) ([]SiteView, error) {
	return r.q.SitesWithOwners(ctx)
}

// enrichSeparately is the degraded strategy: owner join first, then one
// concurrent point lookup per site that has a checklist id. A single
// failed lookup degrades that site's checklist to nil and the batch
// proceeds; enrichment is best-effort, not all-or-nothing.
func (r *Resolver) enrichSeparately(ctx context.Context) ([]SiteView, error) {
	views, err := r.q.SitesWithOwners(ctx)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for i := range views {
		if views[i].Site.ChecklistID == nil {
			continue
		}
		wg.Add(1)
		go func(v *SiteView) {
			defer wg.Done()
			ref, err := r.q.ChecklistByID(ctx, *v.Site.ChecklistID)
			if err != nil {
				r.log.Warn("checklist enrichment failed for site",
					zap.Uint("siteID", v.Site.ID),
					zap.Uint("checklistID", *v.Site.ChecklistID),
					zap.Error(err))
				return
			}
			v.ChecklistInfo = ref
		}(&views[i])
	}
	wg.Wait()

	return views, nil
}
