package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"repair-backend/internal/models"
)

// Provider is an interface for sending SMS messages.
type Provider interface {
	Send(phone, message, jobID string) error
	SetLogRepository(repo LogRepo)
}

// LogRepo records outbound attempts.
type LogRepo interface {
	Create(ctx context.Context, log *models.SMSLog) error
}

// gatewayPayload is the sms-gate.app message body.
type gatewayPayload struct {
	Message      string   `json:"message"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

// GateClient sends messages through an sms-gate.app compatible gateway:
// one synchronous basic-auth POST per message, 30 second timeout, success
// is solely HTTP 200. No retries.
type GateClient struct {
	URL      string
	Username string
	Password string
	LogRepo  LogRepo
	client   *http.Client
}

// NewGateClient creates a gateway client with the fixed send timeout.
func NewGateClient(url, username, password string) *GateClient {
	return &GateClient{
		URL:      url,
		Username: username,
		Password: password,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetLogRepository sets the SMS log repository.
func (s *GateClient) SetLogRepository(repo LogRepo) {
	s.LogRepo = repo
}

// Send delivers one message. Missing credentials and transport or
// non-200 responses all come back as errors carrying a readable reason.
func (s *GateClient) Send(phone, message, jobID string) error {
	smsLog := &models.SMSLog{
		JobID:   jobID,
		Phone:   phone,
		Message: message,
		Status:  models.SMSStatusFailed,
	}

	if s.Username == "" || s.Password == "" {
		smsLog.ErrorMessage = "SMS credentials not configured"
		s.logSMS(smsLog)
		return fmt.Errorf("SMS credentials not configured")
	}

	body, err := json.Marshal(gatewayPayload{Message: message, PhoneNumbers: []string{phone}})
	if err != nil {
		smsLog.ErrorMessage = err.Error()
		s.logSMS(smsLog)
		return fmt.Errorf("failed to encode SMS request: %w", err)
	}

	req, err := http.NewRequest("POST", s.URL, bytes.NewReader(body))
	if err != nil {
		smsLog.ErrorMessage = err.Error()
		s.logSMS(smsLog)
		return fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.Username, s.Password)

	resp, err := s.client.Do(req)
	if err != nil {
		smsLog.ErrorMessage = err.Error()
		s.logSMS(smsLog)
		return fmt.Errorf("SMS error: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		smsLog.ErrorMessage = fmt.Sprintf("SMS failed: %d", resp.StatusCode)
		s.logSMS(smsLog)
		return fmt.Errorf("SMS failed: %d", resp.StatusCode)
	}

	smsLog.Status = models.SMSStatusSent
	s.logSMS(smsLog)
	return nil
}

// logSMS records the attempt in the database without blocking the send
// path. A failed write costs an audit row, not the SMS, so it is logged
// rather than returned.
func (s *GateClient) logSMS(entry *models.SMSLog) {
	if s.LogRepo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.LogRepo.Create(ctx, entry); err != nil {
			log.Printf("[SMS] Failed to record send log for %s: %v", entry.Phone, err)
		}
	}()
}

// MockClient is a mock implementation for development (prints messages to
// the console instead of hitting the gateway).
type MockClient struct {
	LogRepo LogRepo
}

// NewMockClient creates a new mock SMS client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// SetLogRepository sets the SMS log repository.
func (s *MockClient) SetLogRepository(repo LogRepo) {
	s.LogRepo = repo
}

// Send prints the message to the console.
func (s *MockClient) Send(phone, message, jobID string) error {
	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("Job: %s\n", jobID)
	fmt.Printf("Message: %s\n", message)
	fmt.Printf("==============================\n\n")

	if s.LogRepo != nil {
		smsLog := &models.SMSLog{
			JobID:   jobID,
			Phone:   phone,
			Message: message,
			Status:  models.SMSStatusSent,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.LogRepo.Create(ctx, smsLog); err != nil {
				log.Printf("[SMS] Failed to record send log for %s: %v", smsLog.Phone, err)
			}
		}()
	}

	return nil
}
