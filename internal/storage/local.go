package storage

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LocalStore keeps photos on the local filesystem under a media root.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return err
	}
	return f.Close()
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}
	return os.Open(s.path(key))
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// DeleteJob removes the job's photo directory. Failures are logged, not
// returned, so a stuck file never blocks deleting the job record.
func (s *LocalStore) DeleteJob(ctx context.Context, jobID string) error {
	dir := filepath.Join(s.Root, keyPrefix, jobID)
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("[Storage] Failed to remove photo directory for %s: %v", jobID, err)
	}
	return nil
}
