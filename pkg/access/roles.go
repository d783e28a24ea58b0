package access

import "fmt"

// Role is the portal-wide role claim. The set is closed: any other
// value in the database is a data-integrity error, not a new role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// ParseRole validates a raw role value from storage or a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// Requirement declares what a route demands of the caller's role.
type Requirement struct {
	kind  reqKind
	roles []Role
}

type reqKind int

const (
	reqNone reqKind = iota
	reqExact
	reqAnyOf
)

// None allows any authenticated caller.
func None() Requirement { return Requirement{kind: reqNone} }

// Exact allows only the given role.
func Exact(r Role) Requirement { return Requirement{kind: reqExact, roles: []Role{r}} }

// AnyOf allows any of the given roles.
func AnyOf(rs ...Role) Requirement { return Requirement{kind: reqAnyOf, roles: rs} }

// CanAccess reports whether role satisfies the requirement. Pure; it
// never errors, an unmet requirement is just false.
func CanAccess(role Role, req Requirement) bool {
	switch req.kind {
	case reqExact:
		return role == req.roles[0]
	case reqAnyOf:
		for _, r := range req.roles {
			if role == r {
				return true
			}
		}
		return false
	}
	return true
}
