package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"repair-backend/internal/middleware"
	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
	"repair-backend/internal/services"

	"github.com/gorilla/mux"
)

type JobHandler struct {
	Service *services.JobService
}

func NewJobHandler(s *services.JobService) *JobHandler {
	return &JobHandler{Service: s}
}

// CreateJob registers a drop-off. The form arrives as multipart so photos
// can ride along with the job fields in a single request.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	var photoCount int

	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(services.MaxPhotoSize); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		req.CustomerName = r.FormValue("customer_name")
		req.PhoneNumber = r.FormValue("phone_number")
		req.BikeDescription = r.FormValue("bike_description")
		req.EstimatedRepairTime = r.FormValue("estimated_repair_time")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var createdBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		createdBy = &userID
	}

	job, err := h.Service.CreateJob(r.Context(), &req, createdBy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Photos attached to the drop-off form. A bad photo fails that photo,
	// not the job that was already created.
	var photoErrors []string
	if r.MultipartForm != nil {
		descriptions := r.MultipartForm.Value["photo_descriptions"]
		for i, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				photoErrors = append(photoErrors, err.Error())
				continue
			}
			description := ""
			if i < len(descriptions) {
				description = descriptions[i]
			}
			if _, err := h.Service.AddPhoto(r.Context(), job.JobID, file, header, description); err != nil {
				photoErrors = append(photoErrors, err.Error())
			} else {
				photoCount++
			}
			file.Close()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job":          job,
		"photo_count":  photoCount,
		"photo_errors": photoErrors,
	})
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	job, err := h.Service.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// ListJobs serves the dashboard table: search, status filter, sort and
// pagination. Completed jobs stay hidden unless asked for.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	status := q.Get("status")
	if status != "" && !models.ValidStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	params := repositories.ListParams{
		Search:        q.Get("search"),
		Status:        status,
		ShowCompleted: q.Get("show_completed") == "true",
		SortBy:        q.Get("sort"),
		Page:          page,
		PerPage:       perPage,
	}

	jobs, total, err := h.Service.ListJobs(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*models.RepairJob{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs":  jobs,
		"total": total,
		"page":  params.Page,
	})
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	var req models.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.Service.UpdateJob(r.Context(), jobID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// QuickAction handles one-click mark_ready / mark_completed
func (h *JobHandler) QuickAction(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["job_id"]

	var req models.QuickActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.Service.QuickAction(r.Context(), jobID, req.Action)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// DeleteJob removes a job and its photos. Admin only; regular staff
// complete jobs instead of deleting them.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdminFromContext(r.Context()) {
		http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
		return
	}
	jobID := mux.Vars(r)["job_id"]

	if err := h.Service.DeleteJob(r.Context(), jobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
