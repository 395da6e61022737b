package index

import "context"

//go:generate mockgen -source=interface.go -destination=mock_service.go -package=index

// Service is the store contract the retrieval and ingestion layers
// program against. Implementations wrap a concrete engine (Qdrant);
// tests substitute fakes.
type Service interface {
	// EnsureSchema creates the collection with its declared vector
	// fields if it does not exist. Safe to call repeatedly; it never
	// alters an existing collection.
	EnsureSchema(ctx context.Context, schema Schema) error

	// Upsert writes documents id-keyed into a collection. Re-writing
	// an existing id replaces the document (idempotent collision).
	Upsert(ctx context.Context, collection string, docs []Document) error

	// Query executes each sub-query independently and returns one
	// ScoredList per sub-query, in request order, each ordered
	// best-first on the sub-query's native score scale.
	Query(ctx context.Context, queries ...SubQuery) ([]ScoredList, error)

	// FuseQuery executes the sub-queries and combines them natively
	// via reciprocal-rank fusion. Returns ErrFusionUnavailable when
	// the engine has no fusion pipeline.
	FuseQuery(ctx context.Context, q FusedQuery) (ScoredList, error)

	// DeleteByFilter removes every document matching the filter and
	// returns the operation's acknowledged count where the engine
	// reports one.
	DeleteByFilter(ctx context.Context, collection string, filters *FilterSet) (uint64, error)

	// Scroll pages through a collection's documents, vectors included,
	// for bulk maintenance. Pass the returned cursor to continue; a nil
	// cursor means the scan is complete.
	Scroll(ctx context.Context, collection string, cursor *string, limit int) ([]Document, *string, error)

	// Collection returns engine-neutral metadata for one collection.
	Collection(ctx context.Context, name string) (*CollectionInfo, error)
}
