package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/fx"
)

//go:generate mockgen -source=setup.go -destination=mock_store.go -package=minio

// Logger is the logging contract this package depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// ObjectStore is the contract the thumbnail and search layers program
// against; tests substitute fakes.
type ObjectStore interface {
	// Get retrieves an object's full contents.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// GetToFile downloads an object to a local path.
	GetToFile(ctx context.Context, bucket, key, path string) error

	// Put uploads an object.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error

	// Delete removes an object.
	Delete(ctx context.Context, bucket, key string) error

	// PresignGet returns a time-limited GET URL for an object.
	PresignGet(ctx context.Context, bucket, key string) (string, error)
}

// Store implements ObjectStore on a MinIO/S3 client.
type Store struct {
	api *minio.Client
	cfg *Config
	log Logger
}

var _ ObjectStore = (*Store)(nil)

// StoreParams carries the store's dependencies for Fx injection.
type StoreParams struct {
	fx.In

	Config *Config
	Logger Logger
}

// NewStore connects to the object store and ensures the default bucket
// exists.
func NewStore(p StoreParams) (*Store, error) {
	cfg := p.Config
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio: endpoint cannot be empty")
	}

	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: client setup failed: %w", err)
	}

	s := &Store{api: api, cfg: cfg, log: p.Logger}
	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureBucket validates connectivity and creates the default bucket
// when configured to. Bucket-scoped validation avoids requiring
// ListAllMyBuckets permissions.
func (s *Store) ensureBucket(ctx context.Context) error {
	if s.cfg.BucketName == "" {
		return fmt.Errorf("minio: default bucket name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := s.api.BucketExists(ctx, s.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("minio: bucket check failed for %q: %w", s.cfg.BucketName, err)
	}
	if exists {
		return nil
	}
	if !s.cfg.CreateBucket {
		return fmt.Errorf("minio: bucket %q does not exist", s.cfg.BucketName)
	}

	if err := s.api.MakeBucket(ctx, s.cfg.BucketName, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("minio: bucket creation failed for %q: %w", s.cfg.BucketName, err)
	}
	s.log.InfoWithContext(ctx, "created object-store bucket", nil, map[string]interface{}{
		"bucket": s.cfg.BucketName,
		"region": s.cfg.Region,
	})
	return nil
}

func (s *Store) bucketOrDefault(bucket string) string {
	if bucket == "" {
		return s.cfg.BucketName
	}
	return bucket
}

// Get retrieves an object's full contents.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	bucket = s.bucketOrDefault(bucket)

	obj, err := s.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: get %s/%s failed: %w", bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("minio: read %s/%s failed: %w", bucket, key, err)
	}
	return data, nil
}

// GetToFile downloads an object to a local path. Used for source videos
// too large to hold in memory.
func (s *Store) GetToFile(ctx context.Context, bucket, key, path string) error {
	bucket = s.bucketOrDefault(bucket)
	if err := s.api.FGetObject(ctx, bucket, key, path, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("minio: download %s/%s failed: %w", bucket, key, err)
	}
	return nil
}

// Put uploads an object.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	bucket = s.bucketOrDefault(bucket)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.api.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio: put %s/%s failed: %w", bucket, key, err)
	}
	return nil
}

// Delete removes an object.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	bucket = s.bucketOrDefault(bucket)
	if err := s.api.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: delete %s/%s failed: %w", bucket, key, err)
	}
	return nil
}

// PresignGet returns a time-limited GET URL for an object, with the
// lifetime taken from the configured PresignTTL.
func (s *Store) PresignGet(ctx context.Context, bucket, key string) (string, error) {
	bucket = s.bucketOrDefault(bucket)

	u, err := s.api.PresignedGetObject(ctx, bucket, key, s.cfg.PresignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("minio: presign %s/%s failed: %w", bucket, key, err)
	}
	return u.String(), nil
}
