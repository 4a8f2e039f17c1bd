// Package storage persists uploaded property images. The only backend
// is S3; paths returned to clients are presigned GET URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
)

const presignTTL = time.Hour

// StoredFile describes a persisted upload.
type StoredFile struct {
	Key  string
	URL  string
	Size int64
}

type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*StoredFile, error)
}

type s3ImageStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	log     *logger.Logger
}

// NewS3ImageStore builds the store from the ambient AWS credential
// chain (env vars, shared config, instance profile).
func NewS3ImageStore(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3ImageStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		log:     cfg.Log,
	}, nil
}

// Save writes the object under a fresh UUID key so uploads never
// collide or overwrite, then presigns a GET URL for the response.
func (s *s3ImageStore) Save(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*StoredFile, error) {
	key := fmt.Sprintf("images/%s_%s", uuid.NewString(), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put object: %w", err)
	}

	presigned, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = presignTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign object URL: %w", err)
	}

	s.log.Info("Image stored", "bucket", s.bucket, "key", key, "size", size)
	return &StoredFile{Key: key, URL: presigned.URL, Size: size}, nil
}
