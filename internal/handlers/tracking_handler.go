package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"repair-backend/internal/services"
)

type TrackingHandler struct {
	Service *services.TrackingService
}

func NewTrackingHandler(s *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{Service: s}
}

type trackingRequest struct {
	JobID       string `json:"job_id"`
	PhoneNumber string `json:"phone_number"`
}

// Track is the public status lookup. GET serves QR code links with job_id
// and phone as query parameters; POST takes the manual form as JSON. A QR
// arrival is flagged so the frontend can render the result immediately
// instead of showing the form.
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	var jobID, phone string
	autoLookup := false

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		jobID = q.Get("job_id")
		phone = q.Get("phone")
		autoLookup = jobID != "" && phone != ""
	case http.MethodPost:
		var req trackingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		jobID = req.JobID
		phone = req.PhoneNumber
	}

	view, err := h.Service.FindJob(r.Context(), jobID, phone)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			http.Error(w, "Job ID and phone number combination not found. Please check your details.", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job":         view,
		"auto_lookup": autoLookup,
	})
}
