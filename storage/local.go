package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jonascoder/surf-shop/models"
)

// LocalStorage keeps images on disk and serves them under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
	folder   string
}

func NewLocalStorage(basePath, baseURL, folder string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, folder), 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimSuffix(baseURL, "/"), folder: folder}, nil
}

func (s *LocalStorage) BasePath() string { return s.basePath }

func (s *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	publicID, err := PublicID(s.folder, file.Filename)
	if err != nil {
		return models.Image{}, err
	}

	src, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer src.Close()

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return models.Image{}, fmt.Errorf("create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return models.Image{}, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return models.Image{}, fmt.Errorf("save file: %w", err)
	}

	return models.Image{URL: s.baseURL + "/" + publicID, PublicID: publicID}, nil
}

func (s *LocalStorage) Destroy(ctx context.Context, publicID string) error {
	clean := path.Clean("/" + publicID)[1:]
	if clean == "" || !strings.HasPrefix(clean, s.folder+"/") {
		return fmt.Errorf("refusing to delete %q outside %s", publicID, s.folder)
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
