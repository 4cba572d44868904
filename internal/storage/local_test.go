package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("AJ-1001", "Front Wheel.JPG")

	assert.True(t, strings.HasPrefix(key, "repair_photos/AJ-1001/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	// Basename is a fresh UUID, never the original filename
	assert.NotContains(t, key, "Front")

	other := NewObjectKey("AJ-1001", "Front Wheel.JPG")
	assert.NotEqual(t, key, other)
}

func TestValidKey(t *testing.T) {
	assert.NoError(t, ValidKey("repair_photos/AJ-1001/abc.jpg"))

	assert.Error(t, ValidKey("repair_photos/../secrets.txt"))
	assert.Error(t, ValidKey("../repair_photos/AJ-1001/abc.jpg"))
	assert.Error(t, ValidKey("other_prefix/AJ-1001/abc.jpg"))
	assert.Error(t, ValidKey("repair_photos"))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	key := NewObjectKey("AJ-1001", "bike.png")

	require.NoError(t, store.Save(ctx, key, strings.NewReader("photo-bytes")))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "photo-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.Error(t, err)

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsBadKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	err := store.Save(ctx, "../escape.txt", strings.NewReader("nope"))
	assert.Error(t, err)

	_, err = store.Open(ctx, "repair_photos/../../etc/passwd")
	assert.Error(t, err)
}

func TestLocalStoreDeleteJob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	k1 := NewObjectKey("AJ-1001", "a.jpg")
	k2 := NewObjectKey("AJ-1001", "b.jpg")
	keep := NewObjectKey("AJ-1002", "c.jpg")
	require.NoError(t, store.Save(ctx, k1, strings.NewReader("a")))
	require.NoError(t, store.Save(ctx, k2, strings.NewReader("b")))
	require.NoError(t, store.Save(ctx, keep, strings.NewReader("c")))

	require.NoError(t, store.DeleteJob(ctx, "AJ-1001"))

	_, err := store.Open(ctx, k1)
	assert.Error(t, err)
	_, err = store.Open(ctx, k2)
	assert.Error(t, err)

	rc, err := store.Open(ctx, keep)
	require.NoError(t, err)
	rc.Close()
}
