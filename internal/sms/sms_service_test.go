package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"repair-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateClientSend(t *testing.T) {
	var got gatewayPayload
	var gotUser, gotPass string
	var gotAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewGateClient(server.URL, "gateuser", "gatepass")
	err := client.Send("+32499000111", "Your e-bike is ready!", "AJ-1001")
	require.NoError(t, err)

	assert.True(t, gotAuth)
	assert.Equal(t, "gateuser", gotUser)
	assert.Equal(t, "gatepass", gotPass)
	assert.Equal(t, "Your e-bike is ready!", got.Message)
	assert.Equal(t, []string{"+32499000111"}, got.PhoneNumbers)
}

func TestGateClientNon200IsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Gateways report accepted-but-queued as 202; only 200 counts as sent
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewGateClient(server.URL, "gateuser", "gatepass")
	err := client.Send("+32499000111", "hello", "AJ-1001")
	require.Error(t, err)
	assert.EqualError(t, err, "SMS failed: 202")
}

func TestGateClientMissingCredentials(t *testing.T) {
	client := NewGateClient("http://localhost:1", "", "")
	err := client.Send("+32499000111", "hello", "AJ-1001")
	require.Error(t, err)
	assert.EqualError(t, err, "SMS credentials not configured")
}

func TestMockClientAlwaysSucceeds(t *testing.T) {
	client := NewMockClient()
	assert.NoError(t, client.Send("+32499000111", "hello", "AJ-1001"))
}

type failingLogRepo struct {
	called chan struct{}
}

func (f *failingLogRepo) Create(ctx context.Context, l *models.SMSLog) error {
	defer close(f.called)
	return errors.New("connection refused")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestGateClientSurvivesLogRepoFailure(t *testing.T) {
	var buf syncBuffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewGateClient(server.URL, "gateuser", "gatepass")
	repo := &failingLogRepo{called: make(chan struct{})}
	client.SetLogRepository(repo)

	// The audit write fails in the background; the send itself succeeds
	// and the failure shows up in the server log.
	require.NoError(t, client.Send("+32499000111", "hello", "AJ-1001"))

	select {
	case <-repo.called:
	case <-time.After(time.Second):
		t.Fatal("send log was never attempted")
	}
	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Failed to record send log")
	}, time.Second, 10*time.Millisecond)
}
