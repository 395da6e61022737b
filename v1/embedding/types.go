package embedding

import "context"

//go:generate mockgen -source=types.go -destination=mock_provider.go -package=embedding

// Provider is the inference contract behind the Client. A single HTTP
// implementation exists; tests substitute fakes.
type Provider interface {
	// Create generates one embedding per input text, in input order.
	Create(ctx context.Context, texts ...string) ([][]float32, error)
}
