package scheduler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/weekbrief/weekbrief/internal/rest"
)

type RunRecordDTO struct {
	Id         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	State      string    `json:"state"`
	Error      string    `json:"error,omitempty"`
	TestOnly   bool      `json:"testOnly"`
}

type StatusDTO struct {
	State   string        `json:"state"`
	NextRun *time.Time    `json:"nextRun,omitempty"`
	LastRun *RunRecordDTO `json:"lastRun,omitempty"`
}

type triggerResponse struct {
	Accepted bool `json:"accepted"`
}

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// TriggerRun fires an immediate analysis run. A trigger while a run is in
// flight is rejected with 409.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	testOnly := r.URL.Query().Get("testOnly") == "true"
	if !h.scheduler.TriggerAsync(testOnly) {
		w.WriteHeader(http.StatusConflict)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "An analysis run is already in progress",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(triggerResponse{Accepted: true}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetStatus reports the scheduler state, the next trigger time, and the
// last finished run.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := StatusDTO{State: string(h.scheduler.State())}
	if next := h.scheduler.NextRun(); !next.IsZero() {
		status.NextRun = &next
	}
	if lastRun, ok := h.scheduler.LastRun(); ok {
		status.LastRun = &RunRecordDTO{
			Id:         lastRun.Id,
			StartedAt:  lastRun.StartedAt,
			FinishedAt: lastRun.FinishedAt,
			State:      string(lastRun.State),
			Error:      lastRun.Error,
			TestOnly:   lastRun.TestOnly,
		}
	}

	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
