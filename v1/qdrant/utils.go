package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// namedVectors converts a document's per-field dense vectors into the
// client's named-vector form.
func namedVectors(fields map[string][]float32) map[string]*qdrant.Vector {
	out := make(map[string]*qdrant.Vector, len(fields))
	for field, vec := range fields {
		out[field] = qdrant.NewVector(vec...)
	}
	return out
}

// validateKNNInput validates common k-NN sub-query parameters.
func validateKNNInput(sq index.SubQuery) error {
	if sq.Collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if sq.Field == "" {
		return fmt.Errorf("k-NN sub-query requires a vector field")
	}
	if len(sq.Vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}
	if sq.TopK <= 0 {
		return fmt.Errorf("topK must be greater than 0")
	}
	return nil
}

// derefUint64 safely dereferences a *uint64 pointer.
// If the pointer is nil, it returns 0 instead of panicking.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
