package minio

import (
	"fmt"
	"strings"
)

const uriScheme = "s3://"

// ParseURI splits an s3://bucket/key URI into its bucket and key.
func ParseURI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return "", "", fmt.Errorf("minio: URI %q does not start with %s", uri, uriScheme)
	}

	rest := strings.TrimPrefix(uri, uriScheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("minio: URI %q must have the form s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// BuildURI joins a bucket and key into an s3:// URI.
func BuildURI(bucket, key string) string {
	return uriScheme + bucket + "/" + strings.TrimPrefix(key, "/")
}
