package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"repair-backend/internal/services"
	"repair-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// Summary computes the report for the requested period. Supported filter
// values: today, week, month, quarter, year, custom (with start/end),
// anything else meaning all-time.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	summary, err := h.Service.Summarize(r.Context(), q.Get("filter"), q.Get("start"), q.Get("end"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// PDF streams the printable report for the requested period
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	summary, err := h.Service.Summarize(r.Context(), q.Get("filter"), q.Get("start"), q.Get("end"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.Service.GeneratePDF(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.pdf"`,
		timeutil.Now().Format(timeutil.DateLayout)))
	w.Write(data)
}
