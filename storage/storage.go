package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jonascoder/surf-shop/config"
	"github.com/jonascoder/surf-shop/models"
)

// ImageStore hosts uploaded images. PublicID is the handle Destroy takes.
type ImageStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error)
	Destroy(ctx context.Context, publicID string) error
}

var ErrUnsupportedFormat = errors.New("only jpeg, jpg, png and svg images are allowed")

var allowedFormats = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

var extPattern = regexp.MustCompile(`(?i)\.jpeg|\.jpg|\.png|\.svg`)

// PublicID builds a unique object key under folder for an uploaded file name.
func PublicID(folder, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedFormats[ext]; !ok {
		return "", ErrUnsupportedFormat
	}
	base := extPattern.ReplaceAllString(filepath.Base(filename), "")
	base = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, base)
	id := base + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	return path.Join(folder, id), nil
}

func contentType(publicID string) string {
	return allowedFormats[strings.ToLower(path.Ext(publicID))]
}

// New picks the driver named in cfg.
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL, cfg.Folder)
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket, cfg.Folder)
	case "gcs":
		return NewGCSClient(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.Folder)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
