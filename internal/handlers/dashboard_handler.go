package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"repair-backend/internal/cache"
	"repair-backend/internal/services"
)

type DashboardHandler struct {
	Service *services.JobService
}

func NewDashboardHandler(s *services.JobService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// Stats serves the dashboard stat cards, cached briefly in Redis since
// every staff page load hits it.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if data, ok := cache.GetCached(r.Context(), cache.DashboardStatsKey); ok {
		w.Write(data)
		return
	}

	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.SetCached(r.Context(), cache.DashboardStatsKey, data, time.Minute)
	w.Write(data)
}
