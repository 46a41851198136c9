package api

import (
	"net/http"

	"github.com/hundreddays-io/hundreddays/internal/database"
)

// HealthHandler reports service and database reachability. No auth.
func (api *Api) HealthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	api.respondJSON(w, status, map[string]string{
		"status":   "ok",
		"database": dbStatus,
	})
}
