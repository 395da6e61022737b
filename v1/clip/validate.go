package clip

import (
	"errors"
	"fmt"
	"math"
)

// Validation rejection reasons. Callers branch with errors.Is; the
// wrapped message carries the specifics for logging.
var (
	// ErrDimensionMismatch - vector length differs from the field's declared dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrNonFinite - vector contains NaN or Inf.
	ErrNonFinite = errors.New("embedding contains non-finite value")
	// ErrAllZero - every element is zero, which carries no direction for
	// similarity search and usually signals an upstream extraction failure.
	ErrAllZero = errors.New("embedding is all-zero")
)

// ValidateEmbedding decides whether a vector may be admitted to an index
// field of the given dimension. Pure function; it never mutates or
// coerces, it only accepts or rejects with a reason.
func ValidateEmbedding(vec []float32, expectedDim int) error {
	if len(vec) != expectedDim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), expectedDim)
	}

	allZero := true
	for i, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: element %d", ErrNonFinite, i)
		}
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		return ErrAllZero
	}
	return nil
}
