package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jonascoder/surf-shop/models"
)

type S3Client struct {
	s3     *s3.S3
	bucket string
	folder string
}

func NewS3Client(region, bucket, folder string) (*S3Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3Client{
		s3:     s3.New(sess),
		bucket: bucket,
		folder: folder,
	}, nil
}

func (c *S3Client) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	publicID, err := PublicID(c.folder, file.Filename)
	if err != nil {
		return models.Image{}, err
	}

	f, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()

	_, err = c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(publicID),
		Body:          f,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType(publicID)),
	})
	if err != nil {
		return models.Image{}, err
	}

	return models.Image{
		URL:      fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, publicID),
		PublicID: publicID,
	}, nil
}

func (c *S3Client) Destroy(ctx context.Context, publicID string) error {
	_, err := c.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(publicID),
	})
	return err
}
