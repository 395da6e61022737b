// Package fusion combines heterogeneous sub-query result lists into one
// ranked, deduplicated list.
//
// Raw scores from different sub-queries are not comparable: k-NN
// distance/similarity scores and BM25 scores live on different,
// engine-dependent scales. The engine resolves this by normalizing each
// list under a selectable policy before merging:
//
//   - [PolicyMinMaxWeighted] - per-list min-max rescale to [0,1], then a
//     weighted sum per document across lists
//   - [PolicyL2] - per-list division by the list's Euclidean norm
//   - [PolicySigmoid] - logistic map centered on the list mean; fused
//     results below the configured minimum score are dropped entirely
//   - [PolicyRRF] - the store fuses natively via reciprocal ranks; this
//     engine re-normalizes the raw RRF score into [0,1]
//
// The policies are the deliberate design space of interchangeable
// strategies, selected per call. All of them are deterministic: equal
// fused scores keep their first-seen order (stable sort), and a document
// returned by several sub-queries is merged, never emitted twice.
package fusion
