package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
)

// ErrJobNotFound hides which of the two lookup fields was wrong.
var ErrJobNotFound = errors.New("job ID and phone number combination not found")

// trackingStore is the slice of the job repository the public lookup needs.
type trackingStore interface {
	FindByJobIDAndPhone(ctx context.Context, jobID, phone string) (*models.RepairJob, error)
}

// TrackingService answers the public status lookup. Both the identifier
// and the phone number must match one record before anything is revealed.
type TrackingService struct {
	Jobs trackingStore
}

func NewTrackingService(jobs trackingStore) *TrackingService {
	return &TrackingService{Jobs: jobs}
}

// FindJob returns the customer-facing view of a job, or ErrJobNotFound.
func (s *TrackingService) FindJob(ctx context.Context, jobID, phone string) (*models.TrackingView, error) {
	jobID = strings.TrimSpace(jobID)
	phone = strings.TrimSpace(phone)
	if jobID == "" || phone == "" {
		return nil, fmt.Errorf("job ID and phone number are required")
	}

	job, err := s.Jobs.FindByJobIDAndPhone(ctx, jobID, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return models.TrackingViewOf(job), nil
}
