package media

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

const uploadPath = "/api/admin/upload-image"

// DefaultMaxUploadMB mirrors the backend's hard cap. Files over the limit
// are rejected locally so the bytes never leave the machine.
const DefaultMaxUploadMB = 5

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// UploadResult points at the stored image. URL is absolute, Path is the
// media-relative form products and messages reference.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Uploader sends product and chat images to the backend. Only one upload
// runs at a time; a second call while one is in flight is refused rather
// than queued, matching how the admin UI disables its picker.
type Uploader struct {
	client   *api.Client
	maxBytes int64
	inFlight atomic.Bool
}

// NewUploader builds an uploader. maxMB at or below zero falls back to the
// backend's own limit.
func NewUploader(client *api.Client, maxMB int) (*Uploader, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	if maxMB <= 0 {
		maxMB = DefaultMaxUploadMB
	}
	return &Uploader{
		client:   client,
		maxBytes: int64(maxMB) << 20,
	}, nil
}

type uploadResponse struct {
	api.Status
	UploadResult
}

// Upload validates and posts one image. size is the file length in bytes;
// pass it from the caller's stat so oversized files fail before reading.
func (u *Uploader) Upload(ctx context.Context, filename string, size int64, file io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only jpg/jpeg/png/webp/gif images are allowed")
	}
	if size > u.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the size limit")
	}

	if !u.inFlight.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an upload is already in progress")
	}
	defer u.inFlight.Store(false)

	var resp uploadResponse
	if err := u.client.PostMultipart(ctx, "admin/media.upload", uploadPath, "file", filepath.Base(filename), file, &resp); err != nil {
		return nil, err
	}
	return &resp.UploadResult, nil
}
