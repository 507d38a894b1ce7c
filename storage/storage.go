// Package storage keeps uploaded images either on local disk (development)
// or in a Google Cloud Storage bucket (production).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"agromopomulo.id/bankpohon/config"
)

// Uploader stores objects and returns their public URL. Delete of a missing
// key is not an error.
type Uploader interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Object is one stored upload.
type Object struct {
	Key string
	URL string
}

var (
	ErrTooLarge         = errors.New("file is too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// New returns the uploader selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Configuration) (Uploader, error) {
	switch cfg.StorageDriver {
	case "gcs":
		return NewGCSUploader(ctx, cfg.GCSBucket)
	case "local", "":
		return NewLocalUploader(cfg.UploadDir, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// NewKey builds a collision-free object key under prefix, e.g.
// registrations/20250301-<uuid>.jpg.
func NewKey(prefix, ext string, now time.Time) string {
	return path.Join(prefix, fmt.Sprintf("%s-%s%s", now.Format("20060102"), uuid.NewString(), ext))
}

// SaveImage reads at most maxBytes from r, normalizes the image and stores it
// under prefix.
func SaveImage(ctx context.Context, up Uploader, prefix string, r io.Reader, maxBytes int64) (Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Object{}, ErrTooLarge
	}

	img, err := ProcessImage(data, MaxImageEdge)
	if err != nil {
		return Object{}, err
	}
	key := NewKey(prefix, img.Ext, time.Now())
	url, err := up.Save(ctx, key, img.ContentType, img.Reader())
	if err != nil {
		return Object{}, err
	}
	return Object{Key: key, URL: url}, nil
}

// DeleteAll removes objects saved earlier in a request that did not complete.
// It keeps going after a failure and returns the first error.
func DeleteAll(ctx context.Context, up Uploader, objs []Object) error {
	var first error
	for _, o := range objs {
		if err := up.Delete(ctx, o.Key); err != nil && first == nil {
			first = fmt.Errorf("delete %s: %w", o.Key, err)
		}
	}
	return first
}
