package services

import (
	"testing"

	"repair-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTrackingURL(t *testing.T) {
	cfg := shopConfig()
	cfg.Shop.PublicBaseURL = "https://alamanajo.eu"
	svc := &ReceiptService{Cfg: cfg}

	got := svc.TrackingURL(&models.RepairJob{JobID: "AJ-1001", PhoneNumber: "+32499000111"})

	// The plus sign must survive URL encoding or the pre-filled lookup fails
	assert.Equal(t, "https://alamanajo.eu/track?job_id=AJ-1001&phone=%2B32499000111", got)
}
