package storage

import (
	"context"
	"os"
	"path/filepath"

	"gigwork-chat-app/apperr"
)

// BlobStore persists uploaded chat media and returns the public location the
// stored message will reference.
type BlobStore interface {
	Write(ctx context.Context, chatID, name string, data []byte) (string, error)
}

// DiskStore keeps media on the local filesystem under baseDir/<chatID>/,
// served as static assets.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) Write(_ context.Context, chatID, name string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, chatID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Transportf("create media dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.Transportf("write media file: %v", err)
	}
	return "/" + filepath.ToSlash(path), nil
}
