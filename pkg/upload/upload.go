// Package upload stores files posted out of band by file controls.
//
// A file input never carries bytes through the form value snapshot.
// The client posts the file to the upload endpoint first, receives a
// temp ID, and the File control's value is that ID; whoever consumes an
// accepted submission claims the attachment by ID. Unclaimed attachments
// expire and are swept by Cleanup.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when a temp attachment doesn't exist.
var ErrNotFound = errors.New("upload: attachment not found")

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("upload: file too large")

// Store is the interface for attachment storage backends.
type Store interface {
	// Save stores the uploaded file and returns a temp ID. The
	// attachment is held temporarily until Claim is called.
	Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (tempID string, err error)

	// Claim retrieves and removes a temp attachment.
	Claim(ctx context.Context, tempID string) (*Attachment, error)

	// Cleanup removes temp attachments older than maxAge.
	// Call this periodically.
	Cleanup(ctx context.Context, maxAge time.Duration) error
}

// Attachment is a claimed upload.
type Attachment struct {
	// ID is the temp ID the attachment was stored under.
	ID string

	// Filename is the original filename from the client.
	Filename string

	// ContentType is the MIME type of the file.
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// Path is the local filesystem path (DiskStore).
	Path string

	// URL is a presigned remote URL (S3Store).
	URL string

	// Reader provides access to the file contents.
	Reader io.ReadCloser
}

// Close closes the attachment reader if open.
func (a *Attachment) Close() error {
	if a.Reader != nil {
		return a.Reader.Close()
	}
	return nil
}

// Config holds configuration for the upload handler.
type Config struct {
	// MaxFileSize is the maximum allowed file size in bytes.
	// Default: 10MB.
	MaxFileSize int64

	// TempExpiry is how long temp attachments live before cleanup.
	// Default: 1 hour.
	TempExpiry time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 10 * 1024 * 1024,
		TempExpiry:  time.Hour,
	}
}

// Handler returns an http.Handler for file uploads.
// Mount it on the router serving the form:
//
//	r.Post("/upload", upload.Handler(store))
//
// The handler expects a multipart form with a "file" field and returns
// JSON with the temp_id the File control should take as its value:
//
//	{"temp_id": "abc123"}
func Handler(store Store) http.Handler {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with custom configuration.
func HandlerWithConfig(store Store, config *Config) http.Handler {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Limit request body size before parsing
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "No file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		tempID, err := store.Save(
			r.Context(),
			header.Filename,
			header.Header.Get("Content-Type"),
			header.Size,
			file,
		)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"temp_id": tempID,
		})
	})
}
