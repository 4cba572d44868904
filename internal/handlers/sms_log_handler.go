package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
)

type SMSLogHandler struct {
	Repo *repositories.SMSLogRepository
}

func NewSMSLogHandler(repo *repositories.SMSLogRepository) *SMSLogHandler {
	return &SMSLogHandler{Repo: repo}
}

// List returns recent SMS delivery attempts, newest first
func (h *SMSLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []*models.SMSLog{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
