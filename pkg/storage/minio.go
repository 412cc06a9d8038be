package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/yash-kumarsharma/vellum/internal/config"
)

// UploadStore wraps the MinIO client used to hold files submitted
// through FILE_UPLOAD questions.
type UploadStore struct {
	client *minioSDK.Client
	bucket string
}

// InitMinio connects to MinIO and ensures the upload bucket exists.
// It returns nil when no endpoint is configured; uploads are then
// disabled and the rest of the server runs normally.
func InitMinio() (*UploadStore, error) {
	if config.MinioEndpoint == "" {
		log.Println("MINIO_ENDPOINT not set, file uploads disabled")
		return nil, nil
	}

	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Bucket created: %s", config.MinioBucket)
	}

	log.Println("Connected to MinIO")
	return &UploadStore{client: client, bucket: config.MinioBucket}, nil
}

// Put stores an uploaded file under the given object key.
func (s *UploadStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
