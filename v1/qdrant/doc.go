// Package qdrant provides a modular, dependency-injected Qdrant store for
// multi-modal clip retrieval.
//
// The package implements the engine-agnostic [index.Service] contract on top
// of the official Qdrant Go client: collections with named per-modality vector
// fields, batched document upserts, per-field k-NN sub-queries, keyword
// matching over the clip text payload, native reciprocal-rank fusion through
// the Query API, filtered deletes, and cursor-based scrolling for bulk
// maintenance. It integrates with the fx dependency injection framework and
// supports builder-style configuration.
//
// # Core Features
//
//   - Managed store lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Automatic health checks on store initialization
//   - Collections with named vector fields (one per modality)
//   - Safe, batched upserts with configurable batch size
//   - Engine-agnostic interface via index.Service
//   - Server-side reciprocal-rank fusion via the Query API
//   - Full-text keyword matching with lexical re-scoring
//
// # Basic Usage
//
//	import (
//	    "github.com/Aleph-Alpha/clipsearch/v1/index"
//	    "github.com/Aleph-Alpha/clipsearch/v1/qdrant"
//	)
//
//	store, err := qdrant.NewStore(qdrant.StoreParams{
//	    Config: &qdrant.Config{
//	        Endpoint: "localhost",
//	        Port:     6334,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	schema := index.Schema{
//	    Collection: "video_clips",
//	    VectorFields: []index.VectorField{
//	        {Name: "emb_visual", Dim: 1024, Distance: index.DistanceCosine},
//	        {Name: "emb_audio", Dim: 1024, Distance: index.DistanceCosine},
//	    },
//	    TextField: "clip_text",
//	}
//	if err := store.EnsureSchema(ctx, schema); err != nil {
//	    log.Fatal(err)
//	}
//
//	lists, err := store.Query(ctx, index.SubQuery{
//	    Collection: "video_clips",
//	    Kind:       index.KindKNN,
//	    Field:      "emb_visual",
//	    Vector:     queryVector,
//	    TopK:       100,
//	    MinScore:   0.6,
//	})
//	for _, hit := range lists[0] {
//	    fmt.Printf("ID=%s Score=%.4f\n", hit.ID, hit.Score)
//	}
//
// # FX Module Integration
//
// The package exposes an Fx module for automatic dependency injection:
//
//	app := fx.New(
//	    fx.Provide(func() *qdrant.Config { return qdrant.DefaultConfig() }),
//	    qdrant.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// # Point Identity
//
// Qdrant point ids must be numeric or UUID, while clip ids look like
// "clip_9f2a66c41d8e03b7". The store maps every document id onto a
// deterministic name-based UUID and keeps the original id in the payload,
// so results always carry the caller's id and re-upserting the same id
// overwrites the same point.
//
// # Filtering
//
// Filters are defined in the [index] package and support boolean logic
// (AND, OR, NOT). The store converts these to native Qdrant filters
// automatically:
//
//	// Filter: video_id = "vid-123"
//	lists, err := store.Query(ctx, index.SubQuery{
//	    Collection: "video_clips",
//	    Kind:       index.KindKNN,
//	    Field:      "emb_visual",
//	    Vector:     queryVector,
//	    TopK:       100,
//	    Filters:    index.ByVideo("video_id", "vid-123"),
//	})
//
// Supported condition types: MatchCondition, MatchAnyCondition,
// NumericRangeCondition, and TimeRangeCondition.
//
// # Keyword Scoring
//
// Qdrant's full-text index matches documents but assigns no relevance
// score. Keyword sub-queries therefore over-fetch matching candidates and
// re-score them client-side by lexical term overlap, producing scores in
// [0, 1] that the fusion layer can combine with the k-NN legs.
//
// # Configuration
//
// The store can be configured via environment variables or YAML:
//
//	QDRANT_ENDPOINT=localhost
//	QDRANT_PORT=6334
//	QDRANT_API_KEY=your-api-key
//	QDRANT_TEXT_FIELD=clip_text
//
// # Thread Safety
//
// All exported methods on the Store are safe for concurrent use by multiple
// goroutines.
//
// # Package Layout
//
//	qdrant/
//	├── client.go        // Store wrapper, capabilities, and lifecycle
//	├── operations.go    // index.Service implementation
//	├── converter.go     // index ↔ Qdrant type conversion
//	├── lexical.go       // keyword re-scoring
//	├── errors.go        // gRPC error mapping onto index sentinels
//	├── utils.go         // Qdrant-specific helper functions
//	├── configs.go       // Configuration struct
//	└── fx_module.go     // Fx dependency injection module
//
// # Related Packages
//
//   - [index]: Engine-agnostic types and the Service contract
//   - [index.FilterSet]: Filter structures for sub-queries
//   - [index.ScoredHit]: Search result type
//   - [index.Document]: Input type for upserting clips
package qdrant
