package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer and enforces the configured embedding
// dimension on every response.
type Client struct {
	provider Provider
	dim      int
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, dim: cfg.Dim}, nil
}

// NewClientWithProvider constructs a Client around an existing provider.
// Used by tests and callers with a non-HTTP inference path.
func NewClientWithProvider(p Provider, dim int) *Client {
	return &Client{provider: p, dim: dim}
}

// EmbedText embeds a single query text into a fixed-dimension vector.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embedding: text cannot be empty")
	}

	vectors, err := c.provider.Create(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding: got %d vectors for one text", len(vectors))
	}
	if len(vectors[0]) != c.dim {
		return nil, fmt.Errorf("embedding: dimension %d, expected %d", len(vectors[0]), c.dim)
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of texts, one vector per input in order.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: no texts provided")
	}

	vectors, err := c.provider.Create(ctx, texts...)
	if err != nil {
		return nil, err
	}
	for i, v := range vectors {
		if len(v) != c.dim {
			return nil, fmt.Errorf("embedding: vector [%d] has dimension %d, expected %d", i, len(v), c.dim)
		}
	}
	return vectors, nil
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
