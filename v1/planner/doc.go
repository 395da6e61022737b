// Package planner turns a user query and a search mode into an executable
// query plan: one or more store sub-queries plus the fusion policy that
// combines them.
//
// Modes map onto sub-query composition as follows:
//
//	text        keyword match only, pass-through
//	vector      k-NN on every available modality field, fused
//	visual      k-NN on the visual field, pass-through with score floor
//	audio       k-NN on the audio field, pass-through with score floor
//	hybrid      modality k-NN + keyword match, weighted fusion
//	multimodal  like hybrid with text-prioritized weighting
//
// Weights, field names, candidate counts, and score floors are all
// configuration. The planner is constructed with an [index.Capabilities]
// descriptor and degrades plans to what the store actually supports,
// instead of consulting global "does this pipeline exist" flags at query
// time.
package planner
