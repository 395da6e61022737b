package qdrant

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

const testDim = 8

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host string
	Port string
}

// setupQdrantContainer sets up a Qdrant container for testing
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.11.0",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		WaitingFor:   wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "6334")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	portStr := mappedPort.Port()

	// Wait for Qdrant to be fully ready
	fmt.Printf("Waiting for Qdrant to be ready on %s:%s...\n", host, portStr)
	if err := waitForQdrantReady(host, portStr, 30*time.Second); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("qdrant container not ready: %w", err)
	}
	fmt.Printf("Qdrant is ready on %s:%s\n", host, portStr)

	return &QdrantContainer{
		Container: container,
		Host:      host,
		Port:      portStr,
	}, nil
}

// waitForQdrantReady attempts to connect to Qdrant until it's ready or times out
func waitForQdrantReady(host, port string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for Qdrant to be ready after %s", timeout)
		}

		// Try to establish a TCP connection
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 2*time.Second)
		if err == nil {
			_ = conn.Close()
			// Additional wait to ensure the service is fully ready
			time.Sleep(2 * time.Second)
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
}

// TestMain sets up the testing environment
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func clipSchema(collection string) index.Schema {
	return index.Schema{
		Collection: collection,
		VectorFields: []index.VectorField{
			{Name: "emb_visual", Dim: testDim, Distance: index.DistanceCosine},
			{Name: "emb_audio", Dim: testDim, Distance: index.DistanceCosine},
		},
		TextField: "clip_text",
	}
}

func clipDoc(id, videoID, text string, seed int) index.Document {
	return index.Document{
		ID: id,
		Vectors: map[string][]float32{
			"emb_visual": seededVector(seed),
			"emb_audio":  seededVector(seed + 1),
		},
		Payload: map[string]any{
			"clip_id":   id,
			"video_id":  videoID,
			"clip_text": text,
		},
	}
}

// seededVector generates a deterministic test vector
func seededVector(seed int) []float32 {
	vector := make([]float32, testDim)
	for i := range vector {
		vector[i] = float32((seed*7+i*13)%100) / 100.0
	}
	return vector
}

// TestStoreWithFXModule tests the qdrant package using the FX module
func TestStoreWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s:%s", containerInstance.Host, containerInstance.Port)

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	var (
		store *Store
		svc   index.Service
	)

	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return &Config{
					Endpoint:           containerInstance.Host,
					Port:               portNum,
					TextField:          "clip_text",
					CheckCompatibility: false,
					Timeout:            10 * time.Second,
				}
			},
		),
		FXModule,
		fx.Populate(&store, &svc),
	)

	err = app.Start(ctx)
	require.NoError(t, err)

	require.NotNil(t, store)
	require.NotNil(t, store.api)
	require.NotNil(t, svc)

	err = store.healthCheck()
	assert.NoError(t, err)

	t.Run("EnsureSchema", func(t *testing.T) {
		// First call should create the collection
		err := store.EnsureSchema(ctx, clipSchema("clips_schema"))
		assert.NoError(t, err)

		// Second call should be idempotent
		err = store.EnsureSchema(ctx, clipSchema("clips_schema"))
		assert.NoError(t, err)

		// Empty collection name should fail
		err = store.EnsureSchema(ctx, index.Schema{})
		assert.Error(t, err)
	})

	t.Run("UpsertAndKNNQuery", func(t *testing.T) {
		collection := "clips_crud"
		require.NoError(t, store.EnsureSchema(ctx, clipSchema(collection)))

		docs := []index.Document{
			clipDoc("clip_0000000000000001", "vid-1", "sunset over the beach", 1),
			clipDoc("clip_0000000000000002", "vid-1", "waves crashing on rocks", 5),
			clipDoc("clip_0000000000000003", "vid-2", "city traffic at night", 9),
		}
		require.NoError(t, store.Upsert(ctx, collection, docs))

		time.Sleep(1 * time.Second) // Allow time for indexing

		lists, err := store.Query(ctx, index.SubQuery{
			Collection: collection,
			Kind:       index.KindKNN,
			Field:      "emb_visual",
			Vector:     seededVector(1),
			TopK:       5,
		})
		assert.NoError(t, err)
		require.Len(t, lists, 1)
		require.Greater(t, len(lists[0]), 0)

		// The seed-1 clip should come back first with its original id
		assert.Equal(t, "clip_0000000000000001", lists[0][0].ID)
		assert.Greater(t, lists[0][0].Score, 0.9)
		assert.Equal(t, "vid-1", lists[0][0].Payload["video_id"])
	})

	t.Run("UpsertIsIdempotent", func(t *testing.T) {
		collection := "clips_idempotent"
		require.NoError(t, store.EnsureSchema(ctx, clipSchema(collection)))

		doc := clipDoc("clip_00000000000000aa", "vid-1", "first version", 3)
		require.NoError(t, store.Upsert(ctx, collection, []index.Document{doc}))

		doc.Payload["clip_text"] = "second version"
		require.NoError(t, store.Upsert(ctx, collection, []index.Document{doc}))

		time.Sleep(1 * time.Second)

		info, err := store.Collection(ctx, collection)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), info.Points, "re-upserting an id must overwrite, not duplicate")
	})

	t.Run("KeywordQuery", func(t *testing.T) {
		collection := "clips_keyword"
		require.NoError(t, store.EnsureSchema(ctx, clipSchema(collection)))

		docs := []index.Document{
			clipDoc("clip_00000000000000b1", "vid-1", "sunset over the beach", 1),
			clipDoc("clip_00000000000000b2", "vid-1", "mountain climbing trip", 5),
		}
		require.NoError(t, store.Upsert(ctx, collection, docs))

		time.Sleep(1 * time.Second)

		lists, err := store.Query(ctx, index.SubQuery{
			Collection: collection,
			Kind:       index.KindKeyword,
			Text:       "sunset beach",
			TopK:       5,
		})
		assert.NoError(t, err)
		require.Len(t, lists, 1)
		require.Greater(t, len(lists[0]), 0)
		assert.Equal(t, "clip_00000000000000b1", lists[0][0].ID)
		assert.InDelta(t, 1.0, lists[0][0].Score, 1e-9)
	})

	t.Run("EmptyUpsertIsNoOp", func(t *testing.T) {
		collection := "clips_empty"
		require.NoError(t, store.EnsureSchema(ctx, clipSchema(collection)))
		assert.NoError(t, store.Upsert(ctx, collection, nil))
	})

	require.NoError(t, app.Stop(ctx))
}

// TestStoreOperations covers fusion, filtered delete, and scrolling
func TestStoreOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	cfg := &Config{
		Endpoint:           containerInstance.Host,
		Port:               portNum,
		TextField:          "clip_text",
		CheckCompatibility: false,
		Timeout:            10 * time.Second,
	}

	store, err := NewStore(StoreParams{Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	collection := "clips_operations"
	require.NoError(t, store.EnsureSchema(ctx, clipSchema(collection)))

	docs := make([]index.Document, 0, 20)
	for i := 0; i < 20; i++ {
		videoID := "vid-1"
		if i >= 12 {
			videoID = "vid-2"
		}
		id := fmt.Sprintf("clip_%016x", i+1)
		docs = append(docs, clipDoc(id, videoID, fmt.Sprintf("segment %d", i), i*3))
	}
	require.NoError(t, store.Upsert(ctx, collection, docs))
	time.Sleep(1 * time.Second)

	t.Run("CollectionInfo", func(t *testing.T) {
		info, err := store.Collection(ctx, collection)
		assert.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, collection, info.Name)
		assert.Equal(t, uint64(20), info.Points)
		assert.NotEmpty(t, info.Status)
	})

	t.Run("QueryRespectsTopK", func(t *testing.T) {
		lists, err := store.Query(ctx, index.SubQuery{
			Collection: collection,
			Kind:       index.KindKNN,
			Field:      "emb_visual",
			Vector:     seededVector(0),
			TopK:       5,
		})
		assert.NoError(t, err)
		assert.LessOrEqual(t, len(lists[0]), 5)
	})

	t.Run("QueryWithVideoScope", func(t *testing.T) {
		lists, err := store.Query(ctx, index.SubQuery{
			Collection: collection,
			Kind:       index.KindKNN,
			Field:      "emb_visual",
			Vector:     seededVector(0),
			TopK:       20,
			Filters:    index.ByVideo("video_id", "vid-2"),
		})
		assert.NoError(t, err)
		require.Greater(t, len(lists[0]), 0)
		for _, hit := range lists[0] {
			assert.Equal(t, "vid-2", hit.Payload["video_id"])
		}
	})

	t.Run("FusedQuery", func(t *testing.T) {
		fused, err := store.FuseQuery(ctx, index.FusedQuery{
			Collection: collection,
			SubQueries: []index.SubQuery{
				{Collection: collection, Kind: index.KindKNN, Field: "emb_visual", Vector: seededVector(3), TopK: 10},
				{Collection: collection, Kind: index.KindKNN, Field: "emb_audio", Vector: seededVector(4), TopK: 10},
			},
			Limit: 10,
		})
		assert.NoError(t, err)
		assert.Greater(t, len(fused), 0)
		assert.LessOrEqual(t, len(fused), 10)

		// RRF raw scores descend with rank
		for i := 1; i < len(fused); i++ {
			assert.GreaterOrEqual(t, fused[i-1].Score, fused[i].Score)
		}
	})

	t.Run("FusedQueryRejectsKeywordLeg", func(t *testing.T) {
		_, err := store.FuseQuery(ctx, index.FusedQuery{
			Collection: collection,
			SubQueries: []index.SubQuery{
				{Collection: collection, Kind: index.KindKNN, Field: "emb_visual", Vector: seededVector(3), TopK: 10},
				{Collection: collection, Kind: index.KindKeyword, Text: "segment", TopK: 10},
			},
			Limit: 10,
		})
		assert.ErrorIs(t, err, index.ErrFusionUnavailable)
	})

	t.Run("Scroll", func(t *testing.T) {
		var (
			cursor *string
			total  int
			pages  int
		)
		for {
			docs, next, err := store.Scroll(ctx, collection, cursor, 7)
			require.NoError(t, err)
			total += len(docs)
			pages++

			for _, d := range docs {
				assert.Contains(t, d.ID, "clip_")
				assert.Len(t, d.Vectors["emb_visual"], testDim)
				assert.Len(t, d.Vectors["emb_audio"], testDim)
			}

			if next == nil {
				break
			}
			cursor = next
			require.Less(t, pages, 10, "scroll failed to terminate")
		}
		assert.Equal(t, 20, total)
		assert.GreaterOrEqual(t, pages, 3)
	})

	t.Run("DeleteByVideo", func(t *testing.T) {
		removed, err := store.DeleteByFilter(ctx, collection, index.ByVideo("video_id", "vid-2"))
		assert.NoError(t, err)
		assert.Equal(t, uint64(8), removed)

		info, err := store.Collection(ctx, collection)
		require.NoError(t, err)
		assert.Equal(t, uint64(12), info.Points)

		// Deleting again removes nothing
		removed, err = store.DeleteByFilter(ctx, collection, index.ByVideo("video_id", "vid-2"))
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), removed)
	})
}

// TestStoreErrorHandling tests error scenarios
func TestStoreErrorHandling(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	cfg := &Config{
		Endpoint:           containerInstance.Host,
		Port:               portNum,
		TextField:          "clip_text",
		CheckCompatibility: false,
		Timeout:            10 * time.Second,
	}

	store, err := NewStore(StoreParams{Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	t.Run("InvalidEndpoint", func(t *testing.T) {
		invalidCfg := &Config{
			Endpoint:           "invalid-host:9999",
			CheckCompatibility: false,
			Timeout:            2 * time.Second,
		}

		_, err := NewStore(StoreParams{Config: invalidCfg})
		assert.Error(t, err)
	})

	t.Run("EmptyCollectionName", func(t *testing.T) {
		err := store.EnsureSchema(ctx, index.Schema{
			VectorFields: []index.VectorField{{Name: "emb_visual", Dim: testDim, Distance: index.DistanceCosine}},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "collection name cannot be empty")
	})

	t.Run("QueryOnNonExistentCollection", func(t *testing.T) {
		_, err := store.Query(ctx, index.SubQuery{
			Collection: "non_existent_collection",
			Kind:       index.KindKNN,
			Field:      "emb_visual",
			Vector:     seededVector(0),
			TopK:       5,
		})
		assert.Error(t, err)
	})

	t.Run("DeleteRequiresFilter", func(t *testing.T) {
		_, err := store.DeleteByFilter(ctx, "clips", nil)
		assert.Error(t, err)
	})
}

// TestStoreLifecycleAndHealthCheck verifies basic lifecycle operations
func TestStoreLifecycleAndHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	cfg := &Config{
		Endpoint:           containerInstance.Host,
		Port:               portNum,
		TextField:          "clip_text",
		CheckCompatibility: false,
		Timeout:            5 * time.Second,
	}

	store, err := NewStore(StoreParams{Config: cfg})
	require.NoError(t, err, "store initialization failed")
	require.NotNil(t, store, "expected non-nil store")

	err = store.healthCheck()
	require.NoError(t, err, "Qdrant health check failed")

	err = store.EnsureSchema(ctx, clipSchema("clips_lifecycle"))
	require.NoError(t, err, "failed to ensure schema")

	caps := store.Capabilities(clipSchema("clips_lifecycle"))
	assert.True(t, caps.ServerFusion)
	assert.True(t, caps.KeywordSearch)
	assert.True(t, caps.HasField("emb_visual"))
	assert.True(t, caps.HasField("emb_audio"))

	err = store.Close()
	require.NoError(t, err, "store close failed")

	t.Log("Qdrant store lifecycle test passed successfully")
}
