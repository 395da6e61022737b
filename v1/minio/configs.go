package minio

import "time"

// Config holds the object-store connection and presign settings.
type Config struct {
	// Endpoint of the S3-compatible server, host:port without scheme.
	Endpoint string `yaml:"endpoint" env:"MINIO_ENDPOINT"`

	// AccessKeyID and SecretAccessKey authenticate the client.
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_ACCESS_KEY"`

	// UseSSL selects https transport.
	UseSSL bool `yaml:"use_ssl" env:"MINIO_USE_SSL"`

	// BucketName is the default bucket, used when an operation passes
	// an empty bucket. Created at startup when CreateBucket is set.
	BucketName string `yaml:"bucket_name" env:"MINIO_BUCKET_NAME"`

	// Region for bucket creation.
	Region string `yaml:"region" env:"MINIO_REGION"`

	// CreateBucket creates the default bucket when it does not exist.
	CreateBucket bool `yaml:"create_bucket" env:"MINIO_CREATE_BUCKET"`

	// PresignTTL is the lifetime of presigned GET URLs.
	PresignTTL time.Duration `yaml:"presign_ttl" env:"MINIO_PRESIGN_TTL"`
}

// DefaultConfig provides sensible defaults for local development.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:        "localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		UseSSL:          false,
		BucketName:      "thumbnails",
		Region:          "us-east-1",
		CreateBucket:    true,
		PresignTTL:      time.Hour,
	}
}

// WithEndpoint sets the server endpoint.
func (c *Config) WithEndpoint(endpoint string) *Config {
	c.Endpoint = endpoint
	return c
}

// WithCredentials sets the access credentials.
func (c *Config) WithCredentials(accessKey, secretKey string) *Config {
	c.AccessKeyID = accessKey
	c.SecretAccessKey = secretKey
	return c
}

// WithBucket sets the default bucket.
func (c *Config) WithBucket(bucket string) *Config {
	c.BucketName = bucket
	return c
}

// WithPresignTTL sets the presigned URL lifetime.
func (c *Config) WithPresignTTL(ttl time.Duration) *Config {
	c.PresignTTL = ttl
	return c
}
