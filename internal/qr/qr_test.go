package qr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	data, err := PNG("https://alamanajo.eu/track?job_id=AJ-1001&phone=%2B32499000111")
	require.NoError(t, err)

	require.True(t, len(data) > 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(data[:8]))
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI("https://alamanajo.eu/track?job_id=AJ-1001")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.True(t, len(uri) > len("data:image/png;base64,"))
}
