package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"lpec/internal/checkpoint"
	"lpec/internal/models"
	"lpec/internal/services"
)

type StatusController struct {
	status      services.RunStatusInterface
	checkpoints *checkpoint.Adapter
}

func NewStatusController(status services.RunStatusInterface, checkpoints *checkpoint.Adapter) *StatusController {
	return &StatusController{status: status, checkpoints: checkpoints}
}

type statusResponse struct {
	services.RunStatus
	Checkpoint *models.CheckpointRecord `json:"checkpoint,omitempty"`
}

// Status reports the last run outcome and the current checkpoint record.
func (sc *StatusController) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{RunStatus: sc.status.Snapshot()}
	if rec, ok := sc.checkpoints.Load(r.Context()); ok {
		resp.Checkpoint = &rec
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
