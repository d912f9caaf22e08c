package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/egreat/storefront-api/internal/core/ports"
)

// Only raster web formats are accepted; everything else is rejected before
// any upload starts.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

var errNoop = func() {}

// formImages opens every uploaded file under field and returns the upload
// DTOs plus a release function closing the underlying files. A non-multipart
// request yields an empty slice, not an error.
func formImages(c echo.Context, field string) ([]ports.ImageUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, errNoop, nil
		}
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	headers := form.File[field]
	uploads := make([]ports.ImageUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	release := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		if _, ok := allowedImageTypes[fh.Header.Get("Content-Type")]; !ok {
			release()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest,
				"invalid file type, only JPG, JPEG and PNG are allowed")
		}
		f, err := fh.Open()
		if err != nil {
			release()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload: "+fh.Filename)
		}
		files = append(files, f)
		uploads = append(uploads, ports.ImageUpload{Filename: fh.Filename, Reader: f})
	}
	return uploads, release, nil
}

// formImage is the single-file variant of formImages.
func formImage(c echo.Context, field string) (*ports.ImageUpload, func(), error) {
	uploads, release, err := formImages(c, field)
	if err != nil {
		return nil, nil, err
	}
	if len(uploads) == 0 {
		return nil, release, nil
	}
	return &uploads[0], release, nil
}

// optString returns the form value for key, or nil when the field was not
// submitted at all (distinguishing "unset" from "set to empty").
func optString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	s := values.Get(key)
	return &s
}
