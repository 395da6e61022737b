package index

import "errors"

var (
	// ErrFusionUnavailable - the store has no fusion/combination pipeline
	// provisioned. Callers fall back to the plain k-NN path and log the
	// degradation rather than failing the request.
	ErrFusionUnavailable = errors.New("index: server-side fusion unavailable")

	// ErrRateLimited - the store rejected the request under load (HTTP 429
	// or equivalent). Retryable with backoff, never fatal on first occurrence.
	ErrRateLimited = errors.New("index: rate limited")

	// ErrUnavailable - the store is unreachable or returned an empty
	// response where one was required.
	ErrUnavailable = errors.New("index: store unavailable")
)
