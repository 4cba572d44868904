package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"repair-backend/internal/config"
	"repair-backend/internal/metrics"
	"repair-backend/internal/models"
	"repair-backend/internal/sms"
	"repair-backend/internal/timeutil"
)

// notifyStore is the slice of the job repository the notifier needs.
type notifyStore interface {
	GetByJobID(ctx context.Context, jobID string) (*models.RepairJob, error)
	SetReadyNotified(ctx context.Context, jobID string, at time.Time) error
}

// NotificationService sends the "ready for pickup" SMS. The notified
// timestamp is stamped only after the gateway confirms delivery, so an
// unset ready_notified_at always means the customer was not reached.
type NotificationService struct {
	Jobs notifyStore
	SMS  sms.Provider
	Cfg  *config.Config
}

func NewNotificationService(jobs notifyStore, provider sms.Provider, cfg *config.Config) *NotificationService {
	return &NotificationService{Jobs: jobs, SMS: provider, Cfg: cfg}
}

// ReadyMessage builds the pickup SMS from shop configuration.
func (s *NotificationService) ReadyMessage(job *models.RepairJob) string {
	shop := s.Cfg.Shop
	return fmt.Sprintf(`%s - Your e-bike is ready!

Job ID: %s
Customer: %s

Your e-bike repair is complete and ready for pickup.

Address: %s
Phone: %s
Hours: %s

IMPORTANT: After %d days, EUR %.0f/day storage fee applies.
Please call ahead to arrange pickup.

Thank you for choosing %s!`,
		shop.Name,
		job.JobID,
		job.CustomerName,
		shop.Address,
		shop.Phone,
		shop.Hours,
		shop.StorageFreeDay,
		shop.StorageFeeDay,
		shop.Name,
	)
}

// SendReadyNotice sends the pickup SMS for one job. Only READY jobs
// qualify; a successful send stamps ready_notified_at.
func (s *NotificationService) SendReadyNotice(ctx context.Context, jobID string) (*models.RepairJob, error) {
	job, err := s.Jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.StatusReady {
		return nil, fmt.Errorf("job %s is not ready for pickup", job.JobID)
	}

	if err := s.SMS.Send(job.PhoneNumber, s.ReadyMessage(job), job.JobID); err != nil {
		metrics.SMSFailedTotal.Inc()
		return nil, err
	}
	metrics.SMSSentTotal.Inc()

	now := timeutil.Now()
	if err := s.Jobs.SetReadyNotified(ctx, job.JobID, now); err != nil {
		// The SMS went out; losing the stamp is worth a log line, not a 500.
		log.Printf("[Notify] Failed to stamp ready_notified_at for %s: %v", job.JobID, err)
	}
	job.ReadyNotifiedAt = &now
	return job, nil
}

// BatchResult summarizes a batch notification run.
type BatchResult struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// SendReadyNotices sends the pickup SMS for a batch of jobs, sequentially.
// Jobs that are not READY are counted as skipped, not failed.
func (s *NotificationService) SendReadyNotices(ctx context.Context, jobIDs []string) *BatchResult {
	result := &BatchResult{}

	for _, jobID := range jobIDs {
		job, err := s.Jobs.GetByJobID(ctx, jobID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", jobID, err))
			continue
		}
		if job.Status != models.StatusReady {
			result.Skipped++
			continue
		}

		if _, err := s.SendReadyNotice(ctx, job.JobID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", job.JobID, err))
			continue
		}
		result.Sent++
	}
	return result
}
