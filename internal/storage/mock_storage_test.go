package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockStorageService_SaveAndOpen(t *testing.T) {
	svc, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	ctx := context.Background()

	url, err := svc.Save(ctx, "rental_proofs/abc.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/files/rental_proofs%2Fabc.jpg", url)

	f, err := svc.Open("rental_proofs/abc.jpg")
	assert.NoError(t, err)
	defer f.Close()
	data, _ := io.ReadAll(f)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestMockStorageService_Delete(t *testing.T) {
	svc, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	ctx := context.Background()

	_, err = svc.Save(ctx, "rental_proofs/gone.jpg", "image/jpeg", strings.NewReader("x"))
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, "rental_proofs/gone.jpg"))
	_, err = svc.Open("rental_proofs/gone.jpg")
	assert.Error(t, err)

	// Deleting a missing object is not an error.
	assert.NoError(t, svc.Delete(ctx, "rental_proofs/never-existed.jpg"))
}

func TestMockStorageService_ConfinesTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewMockStorageService("http://localhost:8080", dir)
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}

	// A hostile key is rooted inside the uploads directory, never above it.
	_, err = svc.Save(context.Background(), "../../escape.jpg", "image/jpeg", strings.NewReader("x"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "..", "escape.jpg"))
	assert.True(t, os.IsNotExist(err))
}
