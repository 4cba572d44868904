package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("SHIPPED"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("ready"))
}

func TestValidEstimate(t *testing.T) {
	for _, e := range Estimates {
		assert.True(t, ValidEstimate(e), e)
	}
	assert.False(t, ValidEstimate("2_MONTHS"))
	assert.False(t, ValidEstimate(""))
}

func TestStatusTag(t *testing.T) {
	for _, s := range Statuses {
		assert.NotEmpty(t, StatusTag(s), s)
		assert.NotEmpty(t, StatusLabel(s), s)
	}
	assert.Equal(t, "bg-blue-100 text-blue-800", StatusTag(StatusReceived))
	assert.Equal(t, "bg-green-100 text-green-800", StatusTag(StatusReady))

	// Unknown statuses fall back to gray instead of breaking the page
	assert.Equal(t, "bg-gray-100 text-gray-800", StatusTag("SOMETHING_NEW"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Waiting for Parts", StatusLabel(StatusWaitingParts))
	assert.Equal(t, "Ready for Pickup", StatusLabel(StatusReady))

	// Unknown statuses echo back rather than vanish
	assert.Equal(t, "LEGACY", StatusLabel("LEGACY"))
}

func TestTrackingViewOf(t *testing.T) {
	cost := 120.0
	notified := time.Now()
	job := &RepairJob{
		JobID:           "AJ-1001",
		CustomerName:    "Jan Peeters",
		PhoneNumber:     "+32499000000",
		BikeDescription: "Black e-bike",
		Status:          StatusReady,
		InternalNotes:   "customer haggled, do not discount",
		RepairDetails:   "Replaced brake pads",
		EstimatedCost:   &cost,
		ReadyNotifiedAt: &notified,
	}

	view := TrackingViewOf(job)

	assert.Equal(t, "AJ-1001", view.JobID)
	assert.Equal(t, "Ready for Pickup", view.StatusLabel)
	assert.Equal(t, "bg-green-100 text-green-800", view.StatusTag)
	assert.Equal(t, "Replaced brake pads", view.RepairDetails)
	assert.Equal(t, &cost, view.EstimatedCost)
	assert.Equal(t, &notified, view.ReadyNotifiedAt)
}
