package app

import (
	"github.com/gorilla/mux"
	"github.com/weekbrief/weekbrief/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Reports
	r.HandleFunc("/api/report/latest", deps.ReportHandler.GetLatest).Methods("GET")

	// Scheduler
	r.HandleFunc("/api/report/run", deps.SchedulerHandler.TriggerRun).Methods("POST")
	r.HandleFunc("/api/scheduler/status", deps.SchedulerHandler.GetStatus).Methods("GET")
}
