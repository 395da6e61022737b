package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT STORE
// ──────────────────────────────────────────────────────────────
//
// This file defines the Qdrant-backed implementation of the index.Service
// contract: a multi-vector clip store with named modality fields, full-text
// keyword matching on the clip text payload, and native reciprocal-rank
// fusion through the Query API.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Create collections with per-modality named vector fields.
//   • Upsert, query, fuse, scroll, and delete clip documents.
//   • Offer a safe API suitable for Fx dependency injection.
//

// Store wraps the official Qdrant Go client and implements index.Service.
type Store struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

var _ index.Service = (*Store)(nil)

const (
	defaultBatchSize = 200 // default chunk size for batch upserts

	// keywordOverfetch widens keyword candidate retrieval so the
	// lexical re-scoring pass has more than top-k matches to rank.
	keywordOverfetch = 4
)

// StoreParams carries the store's dependencies for Fx injection.
type StoreParams struct {
	fx.In

	Config *Config
}

// NewStore ──────────────────────────────────────────────────────────────
// NewStore
// ──────────────────────────────────────────────────────────────
//
// NewStore constructs a Qdrant-backed store and validates connectivity
// via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
//
// Example:
//
//	store, _ := qdrant.NewStore(qdrant.StoreParams{Config: cfg})
func NewStore(p StoreParams) (*Store, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", p.Config.Endpoint, p.Config.Port)

	// Set default port if not specified
	port := p.Config.Port
	if port == 0 {
		port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   p.Config.Endpoint,
		Port:                   port,
		APIKey:                 p.Config.ApiKey,
		SkipCompatibilityCheck: !p.Config.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	s := &Store{
		api:     client,
		cfg:     p.Config,
		started: true,
	}

	if err := s.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Store connected successfully")
	return s, nil
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck verifies the availability of the Qdrant service
// by calling the `/healthz` endpoint through the SDK.
//
// It should be lightweight and fast, suitable for startup or readiness probes.
func (s *Store) healthCheck() error {
	if !s.started {
		return fmt.Errorf("[Qdrant] store not started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if s.api == nil {
		return fmt.Errorf("[Qdrant] store not initialized")
	}

	resp, err := s.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)", resp.Title, resp.Version, s.cfg.Endpoint)

	return nil
}

// Capabilities describes what this store offers for the given schema.
// Built once at startup and handed to the query planner.
//
// Qdrant executes reciprocal-rank fusion natively through the Query API,
// so ServerFusion is always available. Keyword search requires a declared
// text field.
func (s *Store) Capabilities(schema index.Schema) index.Capabilities {
	fields := make([]string, 0, len(schema.VectorFields))
	for _, f := range schema.VectorFields {
		fields = append(fields, f.Name)
	}
	return index.Capabilities{
		ServerFusion:   true,
		ModalityFields: fields,
		KeywordSearch:  schema.TextField != "",
	}
}

// Client returns the underlying Qdrant SDK client.
// This is useful for direct access to low-level operations.
func (s *Store) Client() *qdrant.Client {
	return s.api
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close gracefully shuts down the store.
//
// Since the official Qdrant Go SDK doesn't maintain persistent connections,
// this is currently a no-op. It exists for lifecycle symmetry and future safety.
func (s *Store) Close() error {
	if !s.started {
		return nil
	}

	log.Println("[Qdrant] closing store (no-op)")
	return nil
}
