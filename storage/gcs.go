package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"cloud.google.com/go/storage"
	"github.com/jonascoder/surf-shop/models"
	"google.golang.org/api/option"
)

type GCSClient struct {
	client     *storage.Client
	bucketName string
	folder     string
}

func NewGCSClient(ctx context.Context, bucketName, credentialsFile, folder string) (*GCSClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
		folder:     folder,
	}, nil
}

func (c *GCSClient) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	publicID, err := PublicID(c.folder, file.Filename)
	if err != nil {
		return models.Image{}, err
	}

	src, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer src.Close()

	writer := c.client.Bucket(c.bucketName).Object(publicID).NewWriter(ctx)
	writer.ContentType = contentType(publicID)
	if _, err = io.Copy(writer, src); err != nil {
		writer.Close()
		return models.Image{}, err
	}
	if err := writer.Close(); err != nil {
		return models.Image{}, err
	}

	return models.Image{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, publicID),
		PublicID: publicID,
	}, nil
}

func (c *GCSClient) Destroy(ctx context.Context, publicID string) error {
	err := c.client.Bucket(c.bucketName).Object(publicID).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
