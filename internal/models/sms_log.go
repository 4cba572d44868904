package models

import "time"

// SMS delivery statuses
const (
	SMSStatusSent   = "sent"
	SMSStatusFailed = "failed"
)

// SMSLog records one outbound SMS attempt.
type SMSLog struct {
	ID           int       `json:"id"`
	JobID        string    `json:"job_id"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}
