package embedding

import "errors"

// ErrUnavailable marks transport failures and 5xx/429 responses from the
// inference service. Callers use it to degrade instead of failing the
// whole request.
var ErrUnavailable = errors.New("embedding service unavailable")
