package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskImageStore writes task image attachments under a base directory and
// returns the stable path stored on the task record. Image contents are
// opaque to the core.
type DiskImageStore struct {
	dir string
}

func NewDiskImageStore(dir string) *DiskImageStore {
	return &DiskImageStore{dir: dir}
}

func (s *DiskImageStore) SaveImage(taskID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	path := filepath.Join(s.dir, taskID+".img")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}
