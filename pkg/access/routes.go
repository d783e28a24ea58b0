package access

import "strings"

// RouteTable maps path prefixes to access requirements. Lookup is
// longest-prefix so /admin/checklists picks up the /admin rule unless
// a more specific one exists.
type RouteTable map[string]Requirement

// DefaultRoutes is the portal's route access map.
var DefaultRoutes = RouteTable{
	"/":              None(),
	"/admin":         Exact(RoleAdmin),
	"/staff":         AnyOf(RoleAdmin, RoleStaff),
	"/client":        AnyOf(RoleAdmin, RoleStaff, RoleClient),
	"/staff/visits":  AnyOf(RoleAdmin, RoleStaff),
	"/client/visits": AnyOf(RoleAdmin, RoleStaff, RoleClient),
}

// RequirementFor returns the requirement of the longest declared
// prefix of path, defaulting to None for undeclared paths.
func (t RouteTable) RequirementFor(path string) Requirement {
	best := ""
	req := None()
	for prefix, r := range t {
		if !matchesPrefix(path, prefix) {
			continue
		}
		if len(prefix) > len(best) {
			best = prefix
			req = r
		}
	}
	return req
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
