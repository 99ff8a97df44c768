package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/config"
)

// Storage is the image blob store. Uploaded objects are addressed by object name
// and served to browsers through the returned URL.
type Storage interface {
	UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64, contentType string) (objectName string, url string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOClient connects to MinIO and makes sure the configured bucket exists.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.BucketName, err)
		}
		log.Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, prefix, fileName string, file io.Reader, size int64, contentType string) (string, string, error) {
	objectName := ObjectName(prefix, fileName, contentType)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("error uploading %s: %w", objectName, err)
	}

	return objectName, ObjectURL(m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("error removing %s: %w", objectName, err)
	}
	return nil
}

// ObjectName builds "<prefix>/<uuid><ext>". The extension comes from the file
// name, falling back to the one registered for contentType.
func ObjectName(prefix, fileName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" && contentType != "" {
		if mt := mimetype.Lookup(contentType); mt != nil {
			ext = mt.Extension()
		}
	}

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return uuid.New().String() + ext
	}
	return prefix + "/" + uuid.New().String() + ext
}

func ObjectURL(publicURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(publicURL, "/"), bucket, objectName)
}
