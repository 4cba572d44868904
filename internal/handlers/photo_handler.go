package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
	"repair-backend/internal/services"

	"github.com/gorilla/mux"
)

type PhotoHandler struct {
	Service *services.JobService
}

func NewPhotoHandler(s *services.JobService) *PhotoHandler {
	return &PhotoHandler{Service: s}
}

// Upload attaches one photo to an existing job
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	if err := r.ParseMultipartForm(services.MaxPhotoSize); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.Service.AddPhoto(r.Context(), jobID, file, header, r.FormValue("description"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(photo)
}

// List returns a job's photo metadata in upload order
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	photos, err := h.Service.ListPhotos(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if photos == nil {
		photos = []*models.RepairJobPhoto{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(photos)
}

// Serve streams the photo blob with its content type
func (h *PhotoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.Atoi(mux.Vars(r)["photo_id"])
	if err != nil {
		http.Error(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	photo, rc, err := h.Service.OpenPhoto(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Photo not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(photo.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, rc)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.Atoi(mux.Vars(r)["photo_id"])
	if err != nil {
		http.Error(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeletePhoto(r.Context(), photoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Photo not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
