// Package storage adapts an OSS bucket to the domain.FileStorage port.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bizprep/internal/config"
	"bizprep/internal/domain"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage stores uploaded study guides in one OSS bucket and serves them
// through the bucket's public host.
type OSSStorage struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
	prefix     string
}

// NewOSSStorage connects to the configured bucket.
func NewOSSStorage(cfg config.StorageConfig) (*OSSStorage, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("oss endpoint and bucket are required")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", cfg.Bucket, err)
	}

	return &OSSStorage{
		bucket:     bucket,
		bucketName: cfg.Bucket,
		endpoint:   cfg.Endpoint,
		prefix:     strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Upload stores data under key and returns the object's public URL.
func (s *OSSStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullKey := s.objectKey(key)
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.WithContext(ctx),
	}
	if err := s.bucket.PutObject(fullKey, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("oss put %s: %w", fullKey, err)
	}
	return s.publicURL(fullKey), nil
}

// Delete removes the object behind publicURL. Best-effort cleanup: callers
// log failures instead of propagating them.
func (s *OSSStorage) Delete(ctx context.Context, publicURL string) error {
	key, err := s.keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("oss delete %s: %w", key, err)
	}
	return nil
}

func (s *OSSStorage) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *OSSStorage) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, host, key)
}

func (s *OSSStorage) keyFromPublicURL(publicURL string) (string, error) {
	if strings.TrimSpace(publicURL) == "" {
		return "", fmt.Errorf("empty public URL")
	}
	base := s.publicURL("")
	if !strings.HasPrefix(publicURL, base) {
		return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
	}
	return strings.TrimPrefix(publicURL, base), nil
}

var _ domain.FileStorage = (*OSSStorage)(nil)
