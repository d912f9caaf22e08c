package ports

import (
	"context"
	"io"
)

// ImageUpload is a single file received from a multipart request.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// ImageStore abstracts the cloud image service (Cloudinary in production).
type ImageStore interface {
	// Upload stores the image under folder and returns its public URL.
	Upload(ctx context.Context, r io.Reader, folder, name string) (string, error)
	// Delete removes the image identified by its public URL from folder.
	Delete(ctx context.Context, folder, url string) error
}

// ImageCleanupTask identifies one remote image scheduled for deletion.
type ImageCleanupTask struct {
	Folder string
	URL    string
}

// ImageCleanup accepts best-effort background deletions of remote images.
// Enqueueing never fails; delivery failures are logged by the worker.
type ImageCleanup interface {
	Enqueue(task ImageCleanupTask)
}
