package qdrant

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// mapStoreError translates gRPC failures into the engine-neutral
// sentinels callers branch on. Overload maps to ErrRateLimited so the
// bulk-copy backoff can retry; connectivity failures map to
// ErrUnavailable. Everything else passes through wrapped.
func mapStoreError(op string, err error) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			return fmt.Errorf("[Qdrant] %s: %w: %s", op, index.ErrRateLimited, st.Message())
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("[Qdrant] %s: %w: %s", op, index.ErrUnavailable, st.Message())
		}
	}
	return fmt.Errorf("[Qdrant] %s failed: %w", op, err)
}

// mapFusionError additionally recognizes servers that reject the Query
// API's fusion pipeline (older versions, disabled features) and reports
// them as ErrFusionUnavailable so callers fall back to client-side
// fusion instead of failing the search.
func mapFusionError(err error) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unimplemented, codes.InvalidArgument:
			return fmt.Errorf("[Qdrant] fused query rejected (%s): %w", st.Message(), index.ErrFusionUnavailable)
		}
	}
	return mapStoreError("fused query", err)
}
