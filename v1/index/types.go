package index

// Distance is the similarity metric declared for a vector field.
// It cannot change after collection creation without a full rebuild.
type Distance string

const (
	DistanceEuclid Distance = "Euclid"
	DistanceCosine Distance = "Cosine"
)

// VectorField declares one named modality field of a collection.
type VectorField struct {
	// Name of the field, e.g. "emb_visual".
	Name string `json:"name"`

	// Dim is the exact vector dimensionality enforced at write time.
	Dim uint64 `json:"dim"`

	// Distance metric for similarity search on this field.
	Distance Distance `json:"distance"`
}

// Schema describes a collection: its name, its per-modality vector
// fields, and the payload field used for keyword search. Field and
// collection naming is configuration, never baked into query logic.
type Schema struct {
	Collection string `json:"collection"`

	VectorFields []VectorField `json:"vectorFields"`

	// TextField is the payload field indexed for full-text matching.
	TextField string `json:"textField"`
}

// Field returns the declared vector field with the given name, or false.
func (s Schema) Field(name string) (VectorField, bool) {
	for _, f := range s.VectorFields {
		if f.Name == name {
			return f, true
		}
	}
	return VectorField{}, false
}

// Document is one id-keyed record written to a collection. A document
// may carry several modality vectors; absent modalities are simply
// missing from Vectors.
type Document struct {
	ID string `json:"id"`

	// Vectors maps vector field name to the embedding stored under it.
	Vectors map[string][]float32 `json:"vectors"`

	// Payload is the searchable/retrievable metadata.
	Payload map[string]any `json:"payload,omitempty"`
}

// QueryKind distinguishes the two sub-query families the store executes.
type QueryKind int

const (
	// KindKNN - nearest-neighbor search on one vector field.
	KindKNN QueryKind = iota
	// KindKeyword - BM25-style full-text match on the schema's text field.
	KindKeyword
)

// SubQuery is one retrieval request against a collection. A query plan
// is a list of these; the store executes each independently and returns
// one ScoredList per sub-query.
type SubQuery struct {
	Collection string

	Kind QueryKind

	// Field is the vector field for KindKNN; ignored for KindKeyword.
	Field string

	// Vector is the query embedding for KindKNN.
	Vector []float32

	// Text is the query string for KindKeyword.
	Text string

	// TopK is the candidate count for this sub-query. Plans typically
	// use an inner top-k larger than the final result size so the
	// fusion step has enough material.
	TopK int

	// MinScore drops weak matches before fusion. Zero means no floor.
	MinScore float64

	// Weight is this sub-query's contribution under weighted fusion.
	// Carried through to the fusion engine; the store ignores it.
	Weight float64

	// Filters optionally constrain matches (e.g. scope to one video).
	Filters *FilterSet
}

// FusedQuery asks the store to combine several sub-queries natively via
// reciprocal-rank fusion. Stores without fusion support return
// ErrFusionUnavailable and callers degrade to Query.
type FusedQuery struct {
	Collection string
	SubQueries []SubQuery

	// Limit bounds the fused result size.
	Limit int
}

// ScoredHit is one (document, raw score) pair from a sub-query.
// Scores are on the issuing sub-query's native scale and are only
// comparable within their own list.
type ScoredHit struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ScoredList is a sub-query's result, ordered best-first.
type ScoredList []ScoredHit

// CollectionInfo is engine-neutral collection metadata.
type CollectionInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Points uint64 `json:"points"`
}

// Capabilities describes what the configured store and schema can do.
// It is built once at startup and handed to the query planner, replacing
// ad-hoc global "does this pipeline exist" flags.
type Capabilities struct {
	// ServerFusion is true when the store executes RRF natively.
	ServerFusion bool

	// ModalityFields lists the vector fields available for k-NN.
	ModalityFields []string

	// KeywordSearch is true when the schema declares a text field.
	KeywordSearch bool
}

// HasField reports whether a modality field is available for k-NN.
func (c Capabilities) HasField(name string) bool {
	for _, f := range c.ModalityFields {
		if f == name {
			return true
		}
	}
	return false
}
