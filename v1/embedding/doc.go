// Package embedding provides the text-to-vector gateway used by the
// search surface.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides the
// inference service's HTTP details, endpoint paths, and authentication.
// A client is constructed using:
//
//	client, err := embedding.NewClient(cfg)
//
// Once created, the client embeds query text via:
//
//	vector, err := client.EmbedText(ctx, "sunset over the harbor")
//
// or a batch via:
//
//	vectors, err := client.EmbedTexts(ctx, []string{"a", "b", "c"})
//
// Every returned vector is checked against the configured dimension, so
// downstream k-NN queries never see a mis-sized vector.
//
// # Degradation
//
// Transport failures, 5xx responses, and 429 responses are reported as
// [ErrUnavailable]. The search layer matches on it with errors.Is to
// degrade (for example, answering a hybrid request from keyword results
// alone) instead of failing the whole request.
//
// # Configuration
//
// Configuration is sourced from environment variables and constructed by:
//
//	cfg := embedding.NewConfig()
//
// Required variables:
//
//   - EMBEDDING_ENDPOINT
//     Base URL of the inference service (no trailing path or slash).
//
//   - EMBEDDING_MODEL
//     Embedding model identifier sent with every request.
//
// Optional variables:
//
//   - EMBEDDING_SERVICE_TOKEN
//     Bearer token for authenticated deployments.
//
//   - EMBEDDING_DIM
//     Expected embedding dimension (default: 1024).
//
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS
//     Request timeout (default: 30 seconds).
//
// # Dependency Injection (Fx)
//
// A ready-to-use Fx module is provided:
//
//	app := fx.New(
//	    embedding.FXModule,
//	    fx.Invoke(func(c *embedding.Client) {
//	        // Use embeddings
//	    }),
//	)
//
// which supplies *embedding.Config and *embedding.Client and registers a
// lifecycle hook to clean up HTTP resources on shutdown.
package embedding
