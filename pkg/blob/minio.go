// Package blob uploads files to S3-compatible object storage and returns a
// publicly resolvable URL for each object.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ghuser/mediaboard/pkg/config"
)

// ErrEmptyKey is returned when Upload is called without an object key.
var ErrEmptyKey = errors.New("blob: object key is required")

// MinioUploader stores objects in a single bucket.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioUploader connects to the configured endpoint and creates the bucket
// when it does not exist yet.
func NewMinioUploader(ctx context.Context, cfg *config.Config) (*MinioUploader, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: new client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("blob: check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("blob: create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	return &MinioUploader{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: PublicBaseURL(cfg),
	}, nil
}

// Upload stores body under key and returns the object's public URL.
func (u *MinioUploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("blob: put %s: %w", key, err)
	}
	return ObjectURL(u.baseURL, key), nil
}

// Ping satisfies httpx.HealthChecker.
func (u *MinioUploader) Ping(ctx context.Context) error {
	if _, err := u.client.BucketExists(ctx, u.bucket); err != nil {
		return fmt.Errorf("blob ping: %w", err)
	}
	return nil
}

// PublicBaseURL is BLOB_PUBLIC_BASE_URL when set, otherwise the bucket URL on
// the MinIO endpoint.
func PublicBaseURL(cfg *config.Config) string {
	if cfg.BlobPublicBaseURL != "" {
		return strings.TrimRight(cfg.BlobPublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket)
}

// ObjectURL joins base and key, escaping each path segment of the key.
func ObjectURL(base, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
