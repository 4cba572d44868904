package services

import (
	"context"
	"testing"

	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
	"repair-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrackingStore struct {
	job     *models.RepairJob
	gotID   string
	gotTel  string
	wantErr error
}

func (f *fakeTrackingStore) FindByJobIDAndPhone(ctx context.Context, jobID, phone string) (*models.RepairJob, error) {
	f.gotID, f.gotTel = jobID, phone
	if f.wantErr != nil {
		return nil, f.wantErr
	}
	return f.job, nil
}

func TestFindJobReturnsCustomerView(t *testing.T) {
	cost := 180.0
	store := &fakeTrackingStore{job: &models.RepairJob{
		JobID:           "AJ-1042",
		CustomerName:    "Lena Mertens",
		PhoneNumber:     "+32499111222",
		BikeDescription: "Cube Touring Hybrid",
		Status:          models.StatusInProgress,
		EstimatedCost:   &cost,
		InternalNotes:   "waiting on motor firmware",
		CreatedAt:       timeutil.Now(),
	}}
	svc := NewTrackingService(store)

	view, err := svc.FindJob(context.Background(), "  aj-1042 ", " +32499111222 ")
	require.NoError(t, err)

	// Inputs are trimmed before hitting the store
	assert.Equal(t, "aj-1042", store.gotID)
	assert.Equal(t, "+32499111222", store.gotTel)

	assert.Equal(t, "AJ-1042", view.JobID)
	assert.Equal(t, "In Progress", view.StatusLabel)
	require.NotNil(t, view.EstimatedCost)
	assert.InDelta(t, 180.0, *view.EstimatedCost, 0.001)
}

func TestFindJobNotFound(t *testing.T) {
	store := &fakeTrackingStore{wantErr: repositories.ErrNotFound}
	svc := NewTrackingService(store)

	_, err := svc.FindJob(context.Background(), "AJ-9999", "+32400000000")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestFindJobRequiresBothFields(t *testing.T) {
	svc := NewTrackingService(&fakeTrackingStore{})

	_, err := svc.FindJob(context.Background(), "", "+32499111222")
	assert.Error(t, err)

	_, err = svc.FindJob(context.Background(), "AJ-1001", "   ")
	assert.Error(t, err)
}
