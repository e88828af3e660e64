package files

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/transport"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	store    BlobStore
	maxMB    int64
	maxBytes int64
	allowed  map[string]struct{}
}

func NewHandler(store BlobStore, cfg internal.UploadConfig) *Handler {
	allowed := make(map[string]struct{}, len(cfg.Mimes()))
	for _, m := range cfg.Mimes() {
		allowed[m] = struct{}{}
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		store:       store,
		maxMB:       cfg.MaxMB,
		maxBytes:    cfg.MaxBytes(),
		allowed:     allowed,
	}
}

// Upload handles POST /files/upload (multipart, field "file").
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Slack beyond the cap so the multipart envelope itself fits.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, ok := h.allowed[contentType]; !ok {
		h.HandleServiceError(w, errUnsupportedMedia())
		return
	}

	if header.Size > h.maxBytes {
		h.HandleServiceError(w, errFileTooLarge(h.maxMB))
		return
	}

	name := uniqueName(header.Filename)
	result, err := h.store.Put(r.Context(), name, contentType, file)
	if err != nil {
		h.Logger.Error("Upload: blob store error", "error", err, "object", name)
		h.HandleServiceError(w, internal.NewInternalError("failed to store file", err))
		return
	}

	result.Filename = sanitizeName(header.Filename)
	h.Logger.Info("evidence uploaded", "object", name, "content_type", contentType, "size", header.Size)
	h.WriteJSON(w, http.StatusCreated, result)
}

// sanitizeName keeps only the base name and collapses parent-dir sequences.
func sanitizeName(original string) string {
	name := filepath.Base(strings.TrimSpace(original))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "evidence"
	}
	return strings.ReplaceAll(name, "..", ".")
}

func uniqueName(original string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex + "_" + sanitizeName(original)
}
