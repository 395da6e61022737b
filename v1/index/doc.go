// Package index defines the engine-neutral contract between the retrieval
// layer and the underlying vector/full-text store.
//
// The retrieval, fusion, and ingestion packages depend only on the types
// here; a concrete engine (Qdrant today) plugs in behind [Service]. The
// contract deliberately mirrors what the retrieval layer needs and nothing
// more:
//
//   - [Schema] / EnsureSchema: declare per-modality vector fields with
//     dimension and distance up front (first-use idempotent)
//   - [Document] / Upsert: id-keyed writes, idempotent on collision
//   - [SubQuery] / Query: k-NN per modality field and keyword match,
//     each returning an independent [ScoredList]
//   - [FusedQuery] / FuseQuery: server-side reciprocal-rank fusion over
//     several sub-queries, where the engine supports it
//   - DeleteByFilter, Scroll: bulk maintenance paths
//
// Raw scores from different sub-queries are not comparable across engines
// or query kinds; turning them into one ranking is the fusion package's
// job, not the store's.
package index
