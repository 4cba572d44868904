package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"repair-backend/internal/cache"
	"repair-backend/internal/metrics"
	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
	"repair-backend/internal/storage"
	"repair-backend/internal/ws"
)

// Photo upload limits
const (
	MaxPhotoSize     = 10 << 20 // 10 MB
	MaxPhotosPerJob  = 20
	MaxPhotoDescrLen = 200
)

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// JobService owns the repair job lifecycle from drop-off to completion.
type JobService struct {
	Jobs   *repositories.JobRepository
	Photos *repositories.PhotoRepository
	Store  storage.Store
}

func NewJobService(jobs *repositories.JobRepository, photos *repositories.PhotoRepository, store storage.Store) *JobService {
	return &JobService{Jobs: jobs, Photos: photos, Store: store}
}

// CreateJob registers a drop-off and assigns the next job identifier.
func (s *JobService) CreateJob(ctx context.Context, req *models.CreateJobRequest, createdBy *int) (*models.RepairJob, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	if req.EstimatedRepairTime != "" && !models.ValidEstimate(req.EstimatedRepairTime) {
		return nil, fmt.Errorf("invalid repair time estimate: %s", req.EstimatedRepairTime)
	}

	job := &models.RepairJob{
		CustomerName:        req.CustomerName,
		PhoneNumber:         req.PhoneNumber,
		BikeDescription:     strings.TrimSpace(req.BikeDescription),
		EstimatedRepairTime: req.EstimatedRepairTime,
		CreatedByUserID:     createdBy,
	}
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	metrics.JobsCreatedTotal.Inc()
	cache.InvalidateJobCaches(ctx)
	ws.BroadcastJobCreated(job)
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID string) (*models.RepairJob, error) {
	return s.Jobs.GetByJobID(ctx, jobID)
}

func (s *JobService) ListJobs(ctx context.Context, p repositories.ListParams) ([]*models.RepairJob, int, error) {
	return s.Jobs.List(ctx, p)
}

// UpdateJob applies the staff edit form after validating every field.
func (s *JobService) UpdateJob(ctx context.Context, jobID string, req *models.UpdateJobRequest) (*models.RepairJob, error) {
	if !models.ValidStatus(req.Status) {
		return nil, fmt.Errorf("invalid status: %s", req.Status)
	}
	if !models.ValidEstimate(req.EstimatedRepairTime) {
		return nil, fmt.Errorf("invalid repair time estimate: %s", req.EstimatedRepairTime)
	}
	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		return nil, fmt.Errorf("estimated cost cannot be negative")
	}

	if err := s.Jobs.Update(ctx, jobID, req); err != nil {
		return nil, err
	}

	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	metrics.JobStatusChangesTotal.WithLabelValues(job.Status).Inc()
	cache.InvalidateJobCaches(ctx)
	ws.BroadcastJobUpdated(job)
	return job, nil
}

// QuickAction handles the one-click dashboard transitions. It only moves
// the status; the ready SMS is a separate, deliberate step.
func (s *JobService) QuickAction(ctx context.Context, jobID, action string) (*models.RepairJob, error) {
	var status string
	switch action {
	case "mark_ready":
		status = models.StatusReady
	case "mark_completed":
		status = models.StatusCompleted
	default:
		return nil, fmt.Errorf("invalid action: %s", action)
	}

	if err := s.Jobs.SetStatus(ctx, jobID, status); err != nil {
		return nil, err
	}

	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	metrics.JobStatusChangesTotal.WithLabelValues(status).Inc()
	cache.InvalidateJobCaches(ctx)
	ws.BroadcastJobUpdated(job)
	return job, nil
}

// DeleteJob removes the job row (photo rows cascade) and then cleans up
// the stored photo files best effort. A failed file removal never undoes
// the database delete.
func (s *JobService) DeleteJob(ctx context.Context, jobID string) error {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return err
	}

	if err := s.Jobs.Delete(ctx, job.JobID); err != nil {
		return err
	}

	s.Store.DeleteJob(ctx, job.JobID)
	cache.InvalidateJobCaches(ctx)
	ws.BroadcastJobDeleted(job.JobID)
	return nil
}

// AddPhoto validates and stores one uploaded photo for a job.
func (s *JobService) AddPhoto(ctx context.Context, jobID string, file multipart.File, header *multipart.FileHeader, description string) (*models.RepairJobPhoto, error) {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if header.Size > MaxPhotoSize {
		return nil, fmt.Errorf("photo exceeds the %dMB limit", MaxPhotoSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		return nil, fmt.Errorf("unsupported photo type: %s", ext)
	}
	if len(description) > MaxPhotoDescrLen {
		return nil, fmt.Errorf("description exceeds %d characters", MaxPhotoDescrLen)
	}

	count, err := s.Photos.CountByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPhotosPerJob {
		return nil, fmt.Errorf("job already has %d photos", MaxPhotosPerJob)
	}

	key := storage.NewObjectKey(job.JobID, header.Filename)
	if err := s.Store.Save(ctx, key, file); err != nil {
		return nil, err
	}

	photo := &models.RepairJobPhoto{
		RepairJobID: job.ID,
		ObjectKey:   key,
		Filename:    header.Filename,
		Description: description,
	}
	if err := s.Photos.Create(ctx, photo); err != nil {
		s.Store.Delete(ctx, key)
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns a job's photos in upload order.
func (s *JobService) ListPhotos(ctx context.Context, jobID string) ([]*models.RepairJobPhoto, error) {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.Photos.ListByJob(ctx, job.ID)
}

// OpenPhoto returns the photo blob and its metadata for serving.
func (s *JobService) OpenPhoto(ctx context.Context, photoID int) (*models.RepairJobPhoto, io.ReadCloser, error) {
	photo, err := s.Photos.Get(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Store.Open(ctx, photo.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return photo, rc, nil
}

// DeletePhoto removes the row first, then the blob best effort.
func (s *JobService) DeletePhoto(ctx context.Context, photoID int) error {
	photo, err := s.Photos.Get(ctx, photoID)
	if err != nil {
		return err
	}
	if err := s.Photos.Delete(ctx, photoID); err != nil {
		return err
	}
	s.Store.Delete(ctx, photo.ObjectKey)
	return nil
}

// Stats returns the dashboard stat-card counts.
func (s *JobService) Stats(ctx context.Context) (*repositories.DashboardStats, error) {
	return s.Jobs.Stats(ctx)
}
