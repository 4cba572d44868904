// Package storage persists repair job photos. Two backends exist: a local
// filesystem store for single-host deployments and an S3-compatible store
// for object storage (AWS S3 or Cloudflare R2).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is a photo blob store keyed by object key.
type Store interface {
	// Save writes the blob and returns nothing; the caller picks the key.
	Save(ctx context.Context, key string, r io.Reader) error
	// Open returns the blob for reading. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes one blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteJob removes every blob under a job's prefix, best effort.
	DeleteJob(ctx context.Context, jobID string) error
}

const keyPrefix = "repair_photos"

// NewObjectKey builds the stored key for an uploaded photo. The original
// filename only contributes its extension; the basename is a fresh UUID so
// uploads can never collide or traverse paths.
func NewObjectKey(jobID, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return path.Join(keyPrefix, jobID, uuid.NewString()+ext)
}

// JobPrefix is the key prefix holding all of one job's photos.
func JobPrefix(jobID string) string {
	return path.Join(keyPrefix, jobID) + "/"
}

// ValidKey rejects keys that escape the photo prefix.
func ValidKey(key string) error {
	clean := path.Clean(key)
	if clean != key || !strings.HasPrefix(clean, keyPrefix+"/") {
		return fmt.Errorf("invalid object key: %q", key)
	}
	return nil
}
