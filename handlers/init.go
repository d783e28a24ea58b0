package handlers

import (
	"encoding/json"
	"net/http"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/pkg/dashboard"
	"p9e.in/inspectly/pkg/resolver"
)

var (
	siteResolver *resolver.Resolver
	statsService *dashboard.Aggregator
)

// Init wires the handler package's services onto the connected
// database. Call after config.Connect.
func Init() {
	siteResolver = resolver.New(resolver.NewGormQuerier(config.DB), config.Log)
	statsService = dashboard.New(dashboard.NewGormCounter(config.DB))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
