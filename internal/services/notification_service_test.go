package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"repair-backend/internal/config"
	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
	"repair-backend/internal/sms"
	"repair-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifyStore struct {
	jobs    map[string]*models.RepairJob
	stamped map[string]time.Time
}

func newFakeNotifyStore(jobs ...*models.RepairJob) *fakeNotifyStore {
	s := &fakeNotifyStore{jobs: make(map[string]*models.RepairJob), stamped: make(map[string]time.Time)}
	for _, j := range jobs {
		s.jobs[j.JobID] = j
	}
	return s
}

func (f *fakeNotifyStore) GetByJobID(ctx context.Context, jobID string) (*models.RepairJob, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return j, nil
}

func (f *fakeNotifyStore) SetReadyNotified(ctx context.Context, jobID string, at time.Time) error {
	f.stamped[jobID] = at
	return nil
}

type fakeProvider struct {
	sent    []string // phone numbers in send order
	lastMsg string
	err     error
}

func (f *fakeProvider) Send(phone, message, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	f.lastMsg = message
	return nil
}

func (f *fakeProvider) SetLogRepository(repo sms.LogRepo) {}

func shopConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Shop.Name = "Alamana Jo"
	cfg.Shop.Address = "Quellinstraat 45, 2018 Antwerpen"
	cfg.Shop.Phone = "+32 (499) 89-0237"
	cfg.Shop.Hours = "Fri-Wed 11:00-19:00, Thu: Closed"
	cfg.Shop.StorageFeeDay = 2
	cfg.Shop.StorageFreeDay = 14
	return cfg
}

func readyJob(jobID string) *models.RepairJob {
	return &models.RepairJob{
		JobID:        jobID,
		CustomerName: "Jan Willems",
		PhoneNumber:  "+32499000111",
		Status:       models.StatusReady,
		CreatedAt:    timeutil.Now(),
	}
}

func TestReadyMessageContents(t *testing.T) {
	svc := NewNotificationService(newFakeNotifyStore(), &fakeProvider{}, shopConfig())

	msg := svc.ReadyMessage(readyJob("AJ-1010"))

	assert.Contains(t, msg, "Alamana Jo - Your e-bike is ready!")
	assert.Contains(t, msg, "Job ID: AJ-1010")
	assert.Contains(t, msg, "Customer: Jan Willems")
	assert.Contains(t, msg, "Quellinstraat 45")
	assert.Contains(t, msg, "After 14 days, EUR 2/day storage fee applies.")
}

func TestSendReadyNoticeStampsOnSuccess(t *testing.T) {
	store := newFakeNotifyStore(readyJob("AJ-1010"))
	provider := &fakeProvider{}
	svc := NewNotificationService(store, provider, shopConfig())

	job, err := svc.SendReadyNotice(context.Background(), "AJ-1010")
	require.NoError(t, err)

	assert.Equal(t, []string{"+32499000111"}, provider.sent)
	require.NotNil(t, job.ReadyNotifiedAt)
	_, stamped := store.stamped["AJ-1010"]
	assert.True(t, stamped)
}

func TestSendReadyNoticeFailureDoesNotStamp(t *testing.T) {
	store := newFakeNotifyStore(readyJob("AJ-1010"))
	provider := &fakeProvider{err: errors.New("SMS failed: 503")}
	svc := NewNotificationService(store, provider, shopConfig())

	_, err := svc.SendReadyNotice(context.Background(), "AJ-1010")
	assert.Error(t, err)
	assert.Empty(t, store.stamped)
}

func TestSendReadyNoticeRejectsNonReady(t *testing.T) {
	job := readyJob("AJ-1010")
	job.Status = models.StatusInProgress
	store := newFakeNotifyStore(job)
	provider := &fakeProvider{}
	svc := NewNotificationService(store, provider, shopConfig())

	_, err := svc.SendReadyNotice(context.Background(), "AJ-1010")
	assert.Error(t, err)
	assert.Empty(t, provider.sent)
}

func TestSendReadyNoticesBatch(t *testing.T) {
	inProgress := readyJob("AJ-1012")
	inProgress.Status = models.StatusInProgress
	store := newFakeNotifyStore(readyJob("AJ-1010"), readyJob("AJ-1011"), inProgress)
	provider := &fakeProvider{}
	svc := NewNotificationService(store, provider, shopConfig())

	result := svc.SendReadyNotices(context.Background(), []string{"AJ-1010", "AJ-1011", "AJ-1012", "AJ-9999"})

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "AJ-9999")
}
