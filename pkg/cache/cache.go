// Package cache is a keyed query-result cache with named invalidation
// groups. A cached entry registers under one or more groups ("sites",
// "checklists") and mutation paths invalidate whole groups by name, so
// there is no implicit global cache state to reason about.
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds staleness for read views; the resolver's output is
// read-committed at fetch time anyway, so a short TTL is enough.
const DefaultTTL = 5 * time.Minute

// Cache stores JSON-serializable values under string keys.
type Cache interface {
	// Get unmarshals the entry at key into dest and reports whether it
	// was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Set stores value under key and registers key with each group.
	Set(ctx context.Context, key string, value interface{}, groups ...string) error
	// Invalidate drops every key registered under any of the groups.
	Invalidate(ctx context.Context, groups ...string) error
}

// Invalidation group names used across the portal.
const (
	GroupSites      = "sites"
	GroupChecklists = "checklists"
	GroupVisits     = "visits"
	GroupProfiles   = "profiles"
)
