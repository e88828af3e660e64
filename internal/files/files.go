package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"

	"github.com/dfquintero/plan-seguimiento/internal"
)

// UploadResult is the handler response. Local uploads carry URL; GCS uploads
// carry PublicURL and ObjectName instead.
type UploadResult struct {
	URL         string `json:"url,omitempty"`
	PublicURL   string `json:"public_url,omitempty"`
	ObjectName  string `json:"object_name,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// BlobStore writes one evidence object and returns its addressable result.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (*UploadResult, error)
}

// DiskStore writes under <dir>/<subdir> and serves back /uploads/<subdir>/
// paths relative to the backend host.
type DiskStore struct {
	Dir    string
	Subdir string
}

func NewDiskStore(dir, subdir string) (*DiskStore, error) {
	base := filepath.Join(dir, subdir)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", base, err)
	}
	return &DiskStore{Dir: dir, Subdir: subdir}, nil
}

func (s *DiskStore) Put(_ context.Context, name, contentType string, body io.Reader) (*UploadResult, error) {
	dest := filepath.Join(s.Dir, s.Subdir, name)
	f, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dest)
		return nil, err
	}

	return &UploadResult{
		URL:         "/uploads/" + s.Subdir + "/" + name,
		ContentType: contentType,
	}, nil
}

// GCSStore uploads to a Google Cloud Storage bucket under a fixed prefix.
type GCSStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *GCSStore) Put(ctx context.Context, name, contentType string, body io.Reader) (*UploadResult, error) {
	objectName := name
	if s.prefix != "" {
		objectName = s.prefix + "/" + name
	}

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &UploadResult{
		PublicURL:   fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName),
		ObjectName:  objectName,
		ContentType: contentType,
	}, nil
}

func errUnsupportedMedia() *internal.AppError {
	e := internal.NewValidationError(
		"Formatos permitidos: imágenes (JPG, PNG, GIF), PDF, Excel (XLS/XLSX/CSV) y comprimidos (ZIP, RAR, 7Z)",
		internal.ErrCodeUnsupportedMedia,
	)
	e.StatusCode = http.StatusUnsupportedMediaType
	return e
}

func errFileTooLarge(maxMB int64) *internal.AppError {
	e := internal.NewValidationError(
		fmt.Sprintf("El archivo supera el límite de %d MB.", maxMB),
		internal.ErrCodeFileTooLarge,
	)
	e.StatusCode = http.StatusRequestEntityTooLarge
	return e
}
