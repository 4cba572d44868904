package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"repair-backend/internal/repositories"
	"repair-backend/internal/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

// NotifyReady sends the pickup SMS for one job
func (h *NotificationHandler) NotifyReady(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	job, err := h.Service.SendReadyNotice(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

type batchNotifyRequest struct {
	JobIDs []string `json:"job_ids"`
}

// NotifyReadyBatch sends the pickup SMS for several jobs at once, the
// way the dashboard's bulk action uses it
func (h *NotificationHandler) NotifyReadyBatch(w http.ResponseWriter, r *http.Request) {
	var req batchNotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.JobIDs) == 0 {
		http.Error(w, "job_ids is required", http.StatusBadRequest)
		return
	}

	result := h.Service.SendReadyNotices(r.Context(), req.JobIDs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
