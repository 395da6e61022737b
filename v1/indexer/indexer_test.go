package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// ============================================================================
// Test doubles
// ============================================================================

type nopLogger struct{}

func (nopLogger) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

// fakeStore records calls and plays back scripted results.
type fakeStore struct {
	ensureCalls int
	ensureErr   error

	upsertCalls    int
	upsertErrs     []error // error per call, nil past the end
	lastCollection string
	lastDocs       []index.Document

	deleteCount uint64
	deleteErr   error
	lastFilter  *index.FilterSet

	pages       [][]index.Document
	scrollCalls int
	scrollErr   error
}

func (f *fakeStore) EnsureSchema(_ context.Context, _ index.Schema) error {
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeStore) Upsert(_ context.Context, collection string, docs []index.Document) error {
	call := f.upsertCalls
	f.upsertCalls++
	f.lastCollection = collection
	f.lastDocs = docs
	if call < len(f.upsertErrs) {
		return f.upsertErrs[call]
	}
	return nil
}

func (f *fakeStore) Query(_ context.Context, _ ...index.SubQuery) ([]index.ScoredList, error) {
	return nil, nil
}

func (f *fakeStore) FuseQuery(_ context.Context, _ index.FusedQuery) (index.ScoredList, error) {
	return index.ScoredList{}, index.ErrFusionUnavailable
}

func (f *fakeStore) DeleteByFilter(_ context.Context, _ string, filters *index.FilterSet) (uint64, error) {
	f.lastFilter = filters
	return f.deleteCount, f.deleteErr
}

func (f *fakeStore) Scroll(_ context.Context, _ string, _ *string, _ int) ([]index.Document, *string, error) {
	if f.scrollErr != nil {
		return nil, nil, f.scrollErr
	}
	if f.scrollCalls >= len(f.pages) {
		f.scrollCalls++
		return nil, nil, nil
	}
	page := f.pages[f.scrollCalls]
	f.scrollCalls++
	var next *string
	if f.scrollCalls < len(f.pages) {
		cursor := "next"
		next = &cursor
	}
	return page, next, nil
}

func (f *fakeStore) Collection(_ context.Context, name string) (*index.CollectionInfo, error) {
	return &index.CollectionInfo{Name: name}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func newTestService(store *fakeStore) *Service {
	cfg := DefaultConfig()
	cfg.Dim = 4
	cfg.MaxRetries = 2
	return &Service{
		cfg:         cfg,
		store:       store,
		log:         nopLogger{},
		backoffBase: time.Millisecond,
	}
}

func testClip(videoID string, segment int, scope clip.Scope, embedding []float32) clip.Clip {
	start := float64(segment) * 5.0
	return clip.Clip{
		VideoID:        videoID,
		VideoPath:      "s3://videos/" + videoID + ".mp4",
		SegmentIndex:   segment,
		TimestampStart: start,
		TimestampEnd:   start + 5.0,
		EmbeddingScope: scope,
		Embedding:      embedding,
		ClipText:       "segment text",
	}
}

func validEmbedding() []float32 {
	return []float32{0.1, 0.2, 0.3, 0.4}
}

// ============================================================================
// Upsert
// ============================================================================

func TestUpsertEmptyBatch(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	summary, err := svc.Upsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if store.ensureCalls != 0 || store.upsertCalls != 0 {
		t.Errorf("empty batch must not touch the store (ensure=%d upsert=%d)",
			store.ensureCalls, store.upsertCalls)
	}
}

func TestUpsertSkipsInvalidRecords(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	clips := make([]clip.Clip, 0, 10)
	for i := 0; i < 10; i++ {
		emb := validEmbedding()
		if i == 4 {
			emb = []float32{0.1, 0.2} // wrong dimension
		}
		clips = append(clips, testClip("vid-1", i, clip.ScopeVisualText, emb))
	}

	summary, err := svc.Upsert(context.Background(), clips)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Attempted != 10 {
		t.Errorf("Attempted = %d, want 10", summary.Attempted)
	}
	if summary.Succeeded != 9 {
		t.Errorf("Succeeded = %d, want 9", summary.Succeeded)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
	if len(store.lastDocs) != 9 {
		t.Errorf("documents written = %d, want 9", len(store.lastDocs))
	}
}

func TestUpsertCountsStructuralSkips(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	bad := testClip("", 0, clip.ScopeClip, validEmbedding()) // missing video id
	inverted := testClip("vid-1", 1, clip.ScopeClip, validEmbedding())
	inverted.TimestampStart = 10
	inverted.TimestampEnd = 5

	summary, err := svc.Upsert(context.Background(), []clip.Clip{bad, inverted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Skipped != 2 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v, want 2 skipped and 0 succeeded", summary)
	}
	if store.upsertCalls != 0 {
		t.Errorf("all-invalid batch must not write, got %d upserts", store.upsertCalls)
	}
}

func TestUpsertMergesModalitiesByClipID(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	visual := testClip("vid-1", 0, clip.ScopeVisualText, []float32{1, 0, 0, 0})
	audio := testClip("vid-1", 0, clip.ScopeAudio, []float32{0, 1, 0, 0})

	summary, err := svc.Upsert(context.Background(), []clip.Clip{visual, audio})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", summary.Succeeded)
	}
	if len(store.lastDocs) != 1 {
		t.Fatalf("documents written = %d, want 1 merged document", len(store.lastDocs))
	}

	doc := store.lastDocs[0]
	if len(doc.Vectors) != 2 {
		t.Fatalf("vectors on merged document = %d, want 2", len(doc.Vectors))
	}
	if _, ok := doc.Vectors[svc.cfg.VisualField]; !ok {
		t.Errorf("missing visual field %q", svc.cfg.VisualField)
	}
	if _, ok := doc.Vectors[svc.cfg.AudioField]; !ok {
		t.Errorf("missing audio field %q", svc.cfg.AudioField)
	}

	want := clip.DeriveClipID("vid-1", 0, 5)
	if doc.ID != want {
		t.Errorf("document id = %q, want derived %q", doc.ID, want)
	}
}

func TestUpsertPreservesExplicitClipID(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	c := testClip("vid-1", 0, clip.ScopeClip, validEmbedding())
	c.ClipID = "clip_feedfacecafebeef"

	if _, err := svc.Upsert(context.Background(), []clip.Clip{c}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastDocs[0].ID != "clip_feedfacecafebeef" {
		t.Errorf("document id = %q, explicit id must survive", store.lastDocs[0].ID)
	}
}

func TestUpsertSchemaBootstrapOnce(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	batch := []clip.Clip{testClip("vid-1", 0, clip.ScopeClip, validEmbedding())}
	for i := 0; i < 3; i++ {
		if _, err := svc.Upsert(context.Background(), batch); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}
	if store.ensureCalls != 1 {
		t.Errorf("EnsureSchema calls = %d, want 1", store.ensureCalls)
	}
}

func TestUpsertSchemaFailureRetriesNextBatch(t *testing.T) {
	store := &fakeStore{ensureErr: errors.New("store down")}
	svc := newTestService(store)

	batch := []clip.Clip{testClip("vid-1", 0, clip.ScopeClip, validEmbedding())}

	summary, err := svc.Upsert(context.Background(), batch)
	if err == nil {
		t.Fatal("expected schema bootstrap error")
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1 when bootstrap fails", summary.Failed)
	}

	store.ensureErr = nil
	summary, err = svc.Upsert(context.Background(), batch)
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Errorf("Succeeded = %d, want 1 after recovery", summary.Succeeded)
	}
	if store.ensureCalls != 2 {
		t.Errorf("EnsureSchema calls = %d, want 2 (failure must not latch)", store.ensureCalls)
	}
}

func TestUpsertWriteFailureCountsRecords(t *testing.T) {
	store := &fakeStore{upsertErrs: []error{errors.New("write refused")}}
	svc := newTestService(store)

	clips := []clip.Clip{
		testClip("vid-1", 0, clip.ScopeVisualText, validEmbedding()),
		testClip("vid-1", 0, clip.ScopeAudio, validEmbedding()),
		testClip("vid-1", 1, clip.ScopeClip, []float32{0.1}), // skipped
	}

	summary, err := svc.Upsert(context.Background(), clips)
	if err == nil {
		t.Fatal("expected write error to surface")
	}
	if summary.Failed != 2 {
		t.Errorf("Failed = %d, want 2 (both merged records)", summary.Failed)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Succeeded != 0 {
		t.Errorf("Succeeded = %d, want 0", summary.Succeeded)
	}
}

// ============================================================================
// DeleteByVideo
// ============================================================================

func TestDeleteByVideo(t *testing.T) {
	store := &fakeStore{deleteCount: 8}
	svc := newTestService(store)

	removed, err := svc.DeleteByVideo(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 8 {
		t.Errorf("removed = %d, want 8", removed)
	}

	if store.lastFilter == nil || store.lastFilter.Must == nil {
		t.Fatal("expected a Must filter clause")
	}
	match, ok := store.lastFilter.Must.Conditions[0].(*index.MatchCondition)
	if !ok {
		t.Fatalf("expected MatchCondition, got %T", store.lastFilter.Must.Conditions[0])
	}
	if match.Field != svc.cfg.VideoIDField || match.Value != "vid-1" {
		t.Errorf("filter = %s=%v, want %s=vid-1", match.Field, match.Value, svc.cfg.VideoIDField)
	}
}

func TestDeleteByVideoRejectsEmptyID(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if _, err := svc.DeleteByVideo(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty video id")
	}
}
