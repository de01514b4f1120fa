package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MockStorageService implements image storage on the local filesystem.
// This is for demo/testing without a cloud object store; the server exposes
// the saved files over HTTP so the generated URLs resolve.
type MockStorageService struct {
	baseURL    string // Server URL (e.g., "http://localhost:8080")
	uploadsDir string // Local directory for uploads (e.g., "./uploads")
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &MockStorageService{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
	}, nil
}

func (m *MockStorageService) path(key string) (string, error) {
	// Keys are generated internally, but reject traversal anyway since the
	// download handler accepts keys from the URL.
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(m.uploadsDir, clean), nil
}

// Save writes the object to the local filesystem and returns the URL the
// mock download endpoint serves it from.
func (m *MockStorageService) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	fullPath, err := m.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/api/v1/files/%s", m.baseURL, url.PathEscape(key)), nil
}

// Delete removes the object from the local filesystem
func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	fullPath, err := m.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Open reads the object back for the download handler
func (m *MockStorageService) Open(key string) (io.ReadCloser, error) {
	fullPath, err := m.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}
