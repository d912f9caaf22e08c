package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore stores images in Cloudinary, keyed by folder and public ID.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from account credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

// Upload stores the image under folder/name and returns its public HTTPS URL.
func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, folder, name string) (string, error) {
	res, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Delete removes the image identified by its public URL from folder.
func (s *CloudinaryStore) Delete(ctx context.Context, folder, url string) error {
	publicID := publicIDFromURL(folder, url)
	if publicID == "" {
		return fmt.Errorf("cloudinary delete: cannot derive public id from %q", url)
	}

	res, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Result)
	}
	return nil
}

// publicIDFromURL recovers "folder/name" from a delivery URL like
// https://res.cloudinary.com/<cloud>/image/upload/v123/folder/name.png.
func publicIDFromURL(folder, url string) string {
	base := path.Base(url)
	if base == "." || base == "/" {
		return ""
	}
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if folder == "" {
		return base
	}
	return folder + "/" + base
}
