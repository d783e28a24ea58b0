package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/inspectly/handlers"
	"p9e.in/inspectly/middleware"
	"p9e.in/inspectly/pkg/access"
)

// apiRoutes maps API paths onto role requirements. The guard matches
// longest-prefix, so /api/v1/admin/checklists picks up the admin rule.
var apiRoutes = access.RouteTable{
	"/api/v1":            access.None(),
	"/api/v1/sites":      access.AnyOf(access.RoleAdmin, access.RoleStaff),
	"/api/v1/sites/mine": access.AnyOf(access.RoleAdmin, access.RoleStaff, access.RoleClient),
	"/api/v1/visits":     access.AnyOf(access.RoleAdmin, access.RoleStaff, access.RoleClient),
	"/api/v1/visits/new": access.AnyOf(access.RoleAdmin, access.RoleStaff),
	"/api/v1/admin":      access.Exact(access.RoleAdmin),
}

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Session exchange (identity gateway only)
	// =====================================================
	r.Handle("/session",
		middleware.RequireGatewayKey(http.HandlerFunc(handlers.ExchangeSession)),
	).Methods("POST")

	// =====================================================
	// Protected API Routes (authenticated + role guarded)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate)
	api.Use(middleware.Guard(apiRoutes))

	api.HandleFunc("/profile", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/dashboard", handlers.GetDashboardStats).Methods("GET")

	api.HandleFunc("/sites", handlers.GetAllSites).Methods("GET")
	api.HandleFunc("/sites/owners", handlers.GetSiteOwners).Methods("GET")
	api.HandleFunc("/sites/mine", handlers.GetMySites).Methods("GET")

	// visits are create-only: no update or delete routes exist
	api.HandleFunc("/visits", handlers.GetVisits).Methods("GET")
	api.HandleFunc("/visits/new", handlers.CreateVisit).Methods("POST")

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/sites", handlers.CreateSite).Methods("POST")
	admin.HandleFunc("/sites/{id}", handlers.UpdateSite).Methods("PUT")
	admin.HandleFunc("/sites/{id}", handlers.DeleteSite).Methods("DELETE")

	admin.HandleFunc("/checklists", handlers.GetAllChecklists).Methods("GET")
	admin.HandleFunc("/checklists", handlers.CreateChecklist).Methods("POST")
	admin.HandleFunc("/checklists/{id}", handlers.UpdateChecklist).Methods("PUT")
	admin.HandleFunc("/checklists/{id}", handlers.DeleteChecklist).Methods("DELETE")

	admin.HandleFunc("/users", handlers.GetAllProfiles).Methods("GET")
	admin.HandleFunc("/users/{id}", handlers.UpdateProfile).Methods("PUT")

	admin.HandleFunc("/visits/export", handlers.ExportVisitsToExcel).Methods("GET")

	return r
}
