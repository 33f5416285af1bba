package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"audora/config"
	"audora/internal/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService keeps audio files, posters and avatars in a MinIO bucket.
// Objects are publicly readable; the key is what update and delete work from.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       logger.Logger
}

func NewStorageService(config config.Config) (*StorageService, error) {
	log := logger.New("StorageService")

	if config.MinioEndpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, file uploads are disabled")
		return nil, nil
	}

	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, log.Err("failed to create minio client", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, log.Err("failed to check bucket", err, "bucket", config.MinioBucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, log.Err("failed to create bucket", err, "bucket", config.MinioBucket)
		}
		log.Info("created bucket", "bucket", config.MinioBucket)
	}

	publicURL := config.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if config.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, config.MinioEndpoint, config.MinioBucket)
	}

	return &StorageService{
		client:    client,
		bucket:    config.MinioBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
	}, nil
}

// Upload stores the object under a fresh key inside folder and returns the
// key and its public URL
func (s *StorageService) Upload(
	ctx context.Context,
	folder, filename, contentType string,
	reader io.Reader,
	size int64,
) (key string, url string, err error) {
	log := s.log.Function("Upload")

	key = fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), sanitizeFilename(filename))

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, reader, size, opts); err != nil {
		return "", "", log.Err("failed to upload object", err, "key", key)
	}

	return key, s.ObjectURL(key), nil
}

// Delete removes one object; a missing key is not an error
func (s *StorageService) Delete(ctx context.Context, key string) error {
	log := s.log.Function("Delete")

	if key == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return log.Err("failed to remove object", err, "key", key)
	}

	return nil
}

// ObjectURL returns the public URL for an object key
func (s *StorageService) ObjectURL(key string) string {
	return s.publicURL + "/" + key
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, name)
}
