package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore writes uploads to a directory served under publicPath.
type LocalStore struct {
	dir        string
	publicPath string
	logger     *zap.Logger
}

func NewLocalStore(dir, publicPath string, logger *zap.Logger) *LocalStore {
	return &LocalStore{dir: dir, publicPath: publicPath, logger: logger}
}

// Dir is the directory uploads are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// PublicPath is the URL prefix uploads are served from.
func (s *LocalStore) PublicPath() string {
	return s.publicPath
}

func (s *LocalStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	target := filepath.Join(s.dir, key)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}
	if err := os.Chmod(target, 0o644); err != nil {
		s.logger.Warn("Failed to chmod upload", zap.String("path", target), zap.Error(err))
	}

	return path.Join(s.publicPath, key), nil
}

// Check creates the directory if needed and checks it accepts writes.
func (s *LocalStore) Check(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("upload directory unavailable: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".health-*")
	if err != nil {
		return fmt.Errorf("upload directory not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}
