package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"repair-backend/internal/repositories"
	"repair-backend/internal/services"

	"github.com/gorilla/mux"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
}

func NewReceiptHandler(s *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Service: s}
}

// Get returns the receipt payload with the QR tracking code
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	receipt, err := h.Service.Build(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipt)
}

// PDF streams the printable receipt
func (h *ReceiptHandler) PDF(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	data, err := h.Service.GeneratePDF(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, jobID))
	w.Write(data)
}
