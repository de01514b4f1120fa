package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/storage"

	"github.com/gorilla/mux"
)

// FilesHandler serves objects out of the local storage backend. It exists so
// the development setup works without an external CDN or bucket.
type FilesHandler struct {
	store storage.StorageInterface
}

func NewFilesHandler(store storage.StorageInterface) *FilesHandler {
	return &FilesHandler{store: store}
}

func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	f, err := h.store.Open(key)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "file not found")
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, f); err != nil {
		logger.Warn("failed to stream file", "key", key, "error", err)
	}
}
