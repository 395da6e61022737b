package minio

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testLogger struct{}

func (testLogger) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (testLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (testLogger) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

// createMinIOContainer sets up and starts a MinIO Docker container for testing
func createMinIOContainer(ctx context.Context) (testcontainers.Container, string, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, "", fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"9000/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		Cmd:   []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ACCESS_KEY": "minio_admin",
			"MINIO_SECRET_KEY": "minio_admin",
		},
		ExposedPorts: []string{"9000/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("9000/tcp").WithStartupTimeout(20*time.Second),
			wait.ForHTTP("/minio/health/ready").WithPort("9000/tcp").WithStartupTimeout(20*time.Second),
		),
	}

	containerInstance, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to start MinIO container: %w", err)
	}

	host, err := containerInstance.Host(ctx)
	if err != nil {
		_ = containerInstance.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get host: %w", err)
	}

	return containerInstance, fmt.Sprintf("%s:%s", host, portStr), nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func newIntegrationStore(t *testing.T, endpoint string) *Store {
	t.Helper()

	cfg := DefaultConfig().
		WithEndpoint(endpoint).
		WithCredentials("minio_admin", "minio_admin").
		WithBucket("clipsearch-test").
		WithPresignTTL(time.Hour)

	store, err := NewStore(StoreParams{Config: cfg, Logger: testLogger{}})
	require.NoError(t, err, "store setup must succeed")
	return store
}

func TestStoreOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	instance, endpoint, err := createMinIOContainer(ctx)
	require.NoError(t, err)
	defer func() { _ = instance.Terminate(ctx) }()

	store := newIntegrationStore(t, endpoint)

	t.Run("put and get round trip", func(t *testing.T) {
		payload := []byte("jpeg bytes")
		require.NoError(t, store.Put(ctx, "", "thumbnails/abc.jpg", payload, "image/jpeg"))

		data, err := store.Get(ctx, "", "thumbnails/abc.jpg")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("get to file", func(t *testing.T) {
		payload := []byte("video bytes")
		require.NoError(t, store.Put(ctx, "", "raw/vid-123.mp4", payload, "video/mp4"))

		path := filepath.Join(t.TempDir(), "vid-123.mp4")
		require.NoError(t, store.GetToFile(ctx, "", "raw/vid-123.mp4", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("presigned get serves the object", func(t *testing.T) {
		payload := []byte("presign me")
		require.NoError(t, store.Put(ctx, "", "thumbnails/presign.jpg", payload, "image/jpeg"))

		url, err := store.PresignGet(ctx, "", "thumbnails/presign.jpg")
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Signature", "URL must be presigned")

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete removes the object", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "", "thumbnails/gone.jpg", []byte("x"), "image/jpeg"))
		require.NoError(t, store.Delete(ctx, "", "thumbnails/gone.jpg"))

		_, err := store.Get(ctx, "", "thumbnails/gone.jpg")
		assert.Error(t, err, "deleted object must not be readable")
	})

	t.Run("missing bucket errors", func(t *testing.T) {
		_, err := store.Get(ctx, "no-such-bucket", "key")
		assert.Error(t, err)
	})
}

func TestStoreRejectsBadConfig(t *testing.T) {
	_, err := NewStore(StoreParams{
		Config: DefaultConfig().WithEndpoint(""),
		Logger: testLogger{},
	})
	assert.Error(t, err)
}
