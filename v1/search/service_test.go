package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/clipsearch/v1/embedding"
	"github.com/Aleph-Alpha/clipsearch/v1/fusion"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
	"github.com/Aleph-Alpha/clipsearch/v1/planner"
)

// ============================================================================
// Test doubles
// ============================================================================

type nopLogger struct{}

func (nopLogger) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakePresigner struct {
	err   error
	calls []string
}

func (f *fakePresigner) PresignGet(_ context.Context, bucket, key string) (string, error) {
	f.calls = append(f.calls, bucket+"/"+key)
	if f.err != nil {
		return "", f.err
	}
	return "https://signed.example/" + bucket + "/" + key, nil
}

// fakeStore answers Query per sub-query kind and scripts FuseQuery.
type fakeStore struct {
	byField   map[string]index.ScoredList // k-NN results per vector field
	byKeyword index.ScoredList
	queryErr  error

	fused    index.ScoredList
	fuseErr  error
	fuseHits int

	queried []index.SubQuery
}

func (f *fakeStore) EnsureSchema(context.Context, index.Schema) error { return nil }

func (f *fakeStore) Upsert(context.Context, string, []index.Document) error { return nil }

func (f *fakeStore) Query(_ context.Context, queries ...index.SubQuery) ([]index.ScoredList, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := make([]index.ScoredList, len(queries))
	for i, q := range queries {
		f.queried = append(f.queried, q)
		if q.Kind == index.KindKeyword {
			out[i] = f.byKeyword
		} else {
			out[i] = f.byField[q.Field]
		}
	}
	return out, nil
}

func (f *fakeStore) FuseQuery(_ context.Context, _ index.FusedQuery) (index.ScoredList, error) {
	f.fuseHits++
	return f.fused, f.fuseErr
}

func (f *fakeStore) DeleteByFilter(context.Context, string, *index.FilterSet) (uint64, error) {
	return 0, nil
}

func (f *fakeStore) Scroll(context.Context, string, *string, int) ([]index.Document, *string, error) {
	return nil, nil, nil
}

func (f *fakeStore) Collection(context.Context, string) (*index.CollectionInfo, error) {
	return nil, nil
}

// ============================================================================
// Helpers
// ============================================================================

func hit(id string, score float64) index.ScoredHit {
	return index.ScoredHit{
		ID:    id,
		Score: score,
		Payload: map[string]any{
			"clip_id":         id,
			"video_id":        "vid-1",
			"video_path":      "s3://videos/raw/vid-1.mp4",
			"timestamp_start": 0.0,
			"timestamp_end":   5.0,
			"clip_text":       "segment text",
		},
	}
}

func fullCaps() index.Capabilities {
	return index.Capabilities{
		ServerFusion:   true,
		ModalityFields: []string{"emb_visual", "emb_audio"},
		KeywordSearch:  true,
	}
}

func newTestService(store index.Service, embed Embedder, presign ObjectPresigner, caps index.Capabilities) *Service {
	cfg := DefaultConfig()
	pl := planner.New(planner.DefaultConfig(), caps)
	engine := fusion.NewEngine(fusion.DefaultConfig())
	presenter := NewPresenter(PresenterParams{Config: cfg, Presign: presign, Logger: nopLogger{}})
	return NewService(ServiceParams{
		Config:    cfg,
		Store:     store,
		Planner:   pl,
		Engine:    engine,
		Embedder:  embed,
		Presenter: presenter,
		Logger:    nopLogger{},
	})
}

func queryVector() []float32 { return []float32{1, 0, 0, 0} }

// ============================================================================
// Search
// ============================================================================

func TestSearchValidation(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeEmbedder{vector: queryVector()}, &fakePresigner{}, fullCaps())

	if _, err := svc.Search(context.Background(), Request{SearchType: "text"}); err == nil {
		t.Error("expected error for empty query text")
	}
	if _, err := svc.Search(context.Background(), Request{QueryText: "q", SearchType: "nonsense"}); err == nil {
		t.Error("expected error for unknown search type")
	}
}

func TestTextSearchPassThrough(t *testing.T) {
	store := &fakeStore{
		byKeyword: index.ScoredList{hit("clip_a", 0.75), hit("clip_b", 0.5)},
	}
	embed := &fakeEmbedder{err: errors.New("must not be called")}
	svc := newTestService(store, embed, &fakePresigner{}, fullCaps())

	resp, err := svc.Search(context.Background(), Request{QueryText: "harbor", SearchType: "text"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if embed.calls != 0 {
		t.Error("text search must not call the embedding gateway")
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	if resp.Clips[0].ClipID != "clip_a" {
		t.Errorf("first result = %q, want clip_a", resp.Clips[0].ClipID)
	}
	if resp.SearchType != "text" {
		t.Errorf("SearchType = %q", resp.SearchType)
	}
}

func TestHybridClientFusionRanksAcrossLegs(t *testing.T) {
	caps := fullCaps()
	caps.ServerFusion = false

	store := &fakeStore{
		byField: map[string]index.ScoredList{
			"emb_visual": {hit("clip_a", 0.9), hit("clip_b", 0.8)},
			"emb_audio":  {hit("clip_b", 0.95), hit("clip_c", 0.7)},
		},
		byKeyword: index.ScoredList{hit("clip_a", 1.0)},
	}
	svc := newTestService(store, &fakeEmbedder{vector: queryVector()}, &fakePresigner{}, caps)

	resp, err := svc.Search(context.Background(), Request{QueryText: "harbor", SearchType: "hybrid"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if store.fuseHits != 0 {
		t.Error("client fusion path must not call FuseQuery")
	}
	if len(store.queried) != 3 {
		t.Fatalf("dispatched %d sub-queries, want 3", len(store.queried))
	}
	if resp.Total == 0 {
		t.Fatal("expected fused results")
	}

	seen := map[string]bool{}
	for _, c := range resp.Clips {
		seen[c.ClipID] = true
	}
	for _, id := range []string{"clip_a", "clip_b", "clip_c"} {
		if !seen[id] {
			t.Errorf("fused results missing %s", id)
		}
	}
}

func TestHybridServerFusionNormalizesScores(t *testing.T) {
	cfg := planner.DefaultConfig().WithPolicy(fusion.PolicyRRF)

	store := &fakeStore{
		// Raw reciprocal-rank sums from a native fusion pipeline.
		fused: index.ScoredList{hit("clip_a", 0.0328), hit("clip_b", 0.0164)},
	}
	engine := fusion.NewEngine(fusion.DefaultConfig())
	presenter := NewPresenter(PresenterParams{Config: DefaultConfig(), Presign: &fakePresigner{}, Logger: nopLogger{}})
	svc := NewService(ServiceParams{
		Config:    DefaultConfig(),
		Store:     store,
		Planner:   planner.New(cfg, fullCaps()),
		Engine:    engine,
		Embedder:  &fakeEmbedder{vector: queryVector()},
		Presenter: presenter,
		Logger:    nopLogger{},
	})

	resp, err := svc.Search(context.Background(), Request{QueryText: "harbor", SearchType: "hybrid"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if store.fuseHits != 1 {
		t.Fatalf("FuseQuery calls = %d, want 1", store.fuseHits)
	}
	for _, c := range resp.Clips {
		if c.Score < 0 || c.Score > 1 {
			t.Errorf("score %f outside [0,1] after re-normalization", c.Score)
		}
	}
	if resp.Clips[0].Score <= resp.Clips[1].Score {
		t.Error("re-normalization must preserve order")
	}
}

func TestServerFusionUnavailableFallsBackToClient(t *testing.T) {
	cfg := planner.DefaultConfig().WithPolicy(fusion.PolicyRRF)

	store := &fakeStore{
		fuseErr: index.ErrFusionUnavailable,
		byField: map[string]index.ScoredList{
			"emb_visual": {hit("clip_a", 0.9)},
			"emb_audio":  {hit("clip_b", 0.8)},
		},
		byKeyword: index.ScoredList{hit("clip_a", 1.0)},
	}
	presenter := NewPresenter(PresenterParams{Config: DefaultConfig(), Presign: &fakePresigner{}, Logger: nopLogger{}})
	svc := NewService(ServiceParams{
		Config:    DefaultConfig(),
		Store:     store,
		Planner:   planner.New(cfg, fullCaps()),
		Engine:    fusion.NewEngine(fusion.DefaultConfig()),
		Embedder:  &fakeEmbedder{vector: queryVector()},
		Presenter: presenter,
		Logger:    nopLogger{},
	})

	resp, err := svc.Search(context.Background(), Request{QueryText: "harbor", SearchType: "hybrid"})
	if err != nil {
		t.Fatalf("fusion-unavailable must degrade, got %v", err)
	}
	if store.fuseHits != 1 {
		t.Error("server fusion must be attempted first")
	}
	if len(store.queried) != 3 {
		t.Errorf("fallback dispatched %d sub-queries, want 3", len(store.queried))
	}
	if resp.Total == 0 {
		t.Error("expected results from client fusion fallback")
	}
}

func TestEmbeddingOutageDegradesHybridToText(t *testing.T) {
	store := &fakeStore{
		byKeyword: index.ScoredList{hit("clip_a", 0.8)},
	}
	embed := &fakeEmbedder{err: embedding.ErrUnavailable}
	svc := newTestService(store, embed, &fakePresigner{}, fullCaps())

	resp, err := svc.Search(context.Background(), Request{QueryText: "harbor", SearchType: "hybrid"})
	if err != nil {
		t.Fatalf("embedding outage must degrade hybrid, got %v", err)
	}
	if resp.Total != 1 || resp.Clips[0].ClipID != "clip_a" {
		t.Errorf("unexpected degraded results: %+v", resp.Clips)
	}
	for _, q := range store.queried {
		if q.Kind != index.KindKeyword {
			t.Errorf("degraded plan must be keyword-only, got %v sub-query", q.Kind)
		}
	}
}

func TestEmbeddingOutageFailsVectorModes(t *testing.T) {
	embed := &fakeEmbedder{err: embedding.ErrUnavailable}
	svc := newTestService(&fakeStore{}, embed, &fakePresigner{}, fullCaps())

	for _, mode := range []string{"vector", "visual", "audio"} {
		if _, err := svc.Search(context.Background(), Request{QueryText: "q", SearchType: mode}); err == nil {
			t.Errorf("mode %s must fail without an embedding", mode)
		}
	}
}

func TestVisualSearchAppliesInnerFloor(t *testing.T) {
	store := &fakeStore{
		byField: map[string]index.ScoredList{
			"emb_visual": {hit("clip_a", 0.9), hit("clip_b", 0.55)},
		},
	}
	svc := newTestService(store, &fakeEmbedder{vector: queryVector()}, &fakePresigner{}, fullCaps())

	resp, err := svc.Search(context.Background(), Request{QueryText: "q", SearchType: "visual"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Default inner floor 0.6 drops the 0.55 hit.
	if resp.Total != 1 || resp.Clips[0].ClipID != "clip_a" {
		t.Errorf("floor not applied: %+v", resp.Clips)
	}
}

// ============================================================================
// Presenter
// ============================================================================

func TestPresenterPresignsThumbnails(t *testing.T) {
	presigner := &fakePresigner{}
	presenter := NewPresenter(PresenterParams{Config: DefaultConfig(), Presign: presigner, Logger: nopLogger{}})

	h := hit("clip_a", 0.87654)
	h.Payload["thumbnail_uri"] = "s3://thumbnails/thumbnails/abc.jpg"

	resp := presenter.Present(context.Background(), "q", "hybrid", index.ScoredList{h})
	if resp.Clips[0].Score != 0.877 {
		t.Errorf("Score = %v, want 0.877 (3-decimal rounding)", resp.Clips[0].Score)
	}
	if !strings.HasPrefix(resp.Clips[0].ThumbnailURL, "https://signed.example/thumbnails/") {
		t.Errorf("ThumbnailURL = %q", resp.Clips[0].ThumbnailURL)
	}
	if len(presigner.calls) != 1 {
		t.Errorf("presign calls = %d, want 1", len(presigner.calls))
	}
}

func TestPresenterPresignFailureDegrades(t *testing.T) {
	presigner := &fakePresigner{err: errors.New("signing key missing")}
	presenter := NewPresenter(PresenterParams{Config: DefaultConfig(), Presign: presigner, Logger: nopLogger{}})

	h := hit("clip_a", 0.9)
	h.Payload["thumbnail_uri"] = "s3://thumbnails/thumbnails/abc.jpg"

	resp := presenter.Present(context.Background(), "q", "hybrid", index.ScoredList{h})
	if resp.Clips[0].ThumbnailURL != "" {
		t.Errorf("ThumbnailURL = %q, want absent on presign failure", resp.Clips[0].ThumbnailURL)
	}
	if resp.Total != 1 {
		t.Error("presign failure must not drop the hit")
	}
}

func TestPresenterSkipsMissingThumbnail(t *testing.T) {
	presigner := &fakePresigner{}
	presenter := NewPresenter(PresenterParams{Config: DefaultConfig(), Presign: presigner, Logger: nopLogger{}})

	resp := presenter.Present(context.Background(), "q", "text", index.ScoredList{hit("clip_a", 0.9)})
	if len(presigner.calls) != 0 {
		t.Error("no thumbnail URI means no presign call")
	}
	if resp.Clips[0].ThumbnailURL != "" {
		t.Errorf("ThumbnailURL = %q, want empty", resp.Clips[0].ThumbnailURL)
	}
}
