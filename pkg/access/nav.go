package access

// NavItem is one entry of the role-scoped navigation menu.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavItems is the single source of truth for what each role can see.
// Route guarding, dashboards and menu rendering all branch off the same
// three-way dispatch instead of scattering role conditionals per page.
func NavItems(role Role) []NavItem {
	switch role {
	case RoleAdmin:
		return []NavItem{
			{Label: "Dashboard", Path: "/"},
			{Label: "Sites", Path: "/admin/sites"},
			{Label: "Checklists", Path: "/admin/checklists"},
			{Label: "Visits", Path: "/admin/visits"},
			{Label: "Users", Path: "/admin/users"},
		}
	case RoleStaff:
		return []NavItem{
			{Label: "Dashboard", Path: "/"},
			{Label: "Sites", Path: "/staff/sites"},
			{Label: "My Visits", Path: "/staff/visits"},
			{Label: "New Visit", Path: "/staff/visits/new"},
		}
	case RoleClient:
		return []NavItem{
			{Label: "Dashboard", Path: "/"},
			{Label: "My Sites", Path: "/client/sites"},
			{Label: "Visit History", Path: "/client/visits"},
		}
	}
	return nil
}
