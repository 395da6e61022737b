package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// EnsureSchema ──────────────────────────────────────────────────────────────
// EnsureSchema
// ──────────────────────────────────────────────────────────────
//
// EnsureSchema verifies if the schema's collection exists, and creates it
// with its declared named vector fields if missing.
//
// It's safe to call this multiple times. If the collection already exists,
// the function exits early and never alters it; changing a field's dimension
// or distance metric requires a rebuild through a fresh collection.
func (s *Store) EnsureSchema(ctx context.Context, schema index.Schema) error {
	if schema.Collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(schema.VectorFields) == 0 {
		return fmt.Errorf("schema must declare at least one vector field")
	}

	collections, err := s.api.ListCollections(ctx)
	if err != nil {
		return mapStoreError("list collections", err)
	}

	if slices.Contains(collections, schema.Collection) {
		log.Printf("[Qdrant] Collection '%s' already exists", schema.Collection)
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", schema.Collection)

	params := make(map[string]*qdrant.VectorParams, len(schema.VectorFields))
	for _, f := range schema.VectorFields {
		params[f.Name] = &qdrant.VectorParams{
			Size:     f.Dim,
			Distance: toQdrantDistance(f.Distance),
		}
	}

	req := &qdrant.CreateCollection{
		CollectionName: schema.Collection,
		VectorsConfig:  qdrant.NewVectorsConfigMap(params),
	}

	if err := s.api.CreateCollection(ctx, req); err != nil {
		return mapStoreError(fmt.Sprintf("create collection '%s'", schema.Collection), err)
	}

	if schema.TextField != "" {
		wait := true
		_, err := s.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: schema.Collection,
			FieldName:      schema.TextField,
			FieldType:      qdrant.FieldType_FieldTypeText.Enum(),
			Wait:           &wait,
		})
		if err != nil {
			return mapStoreError(fmt.Sprintf("create text index on '%s'", schema.TextField), err)
		}
	}

	log.Printf("[Qdrant] Created collection '%s' with %d vector fields", schema.Collection, len(schema.VectorFields))
	return nil
}

// Upsert ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert writes documents id-keyed into a collection. Re-writing an
// existing id replaces the stored document, which makes retried batches
// idempotent.
//
// This method is safe to call for large datasets. It automatically
// splits writes into smaller chunks (`defaultBatchSize`) and performs
// multiple upserts sequentially.
//
// Logs batch indices and collection name for debugging.
func (s *Store) Upsert(ctx context.Context, collection string, docs []index.Document) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(docs) == 0 {
		return nil
	}

	for start := 0; start < len(docs); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		if err := s.upsertBatch(ctx, collection, docs[start:end]); err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d]: %w", start, end, err)
		}
		log.Printf("[Qdrant] Upserted batch [%d:%d] (collection=%s)", start, end, collection)
	}

	return nil
}

// ──────────────────────────────────────────────────────────────
// upsertBatch
// ──────────────────────────────────────────────────────────────
//
// upsertBatch sends a single `Upsert` request for a slice of documents.
//
// Converts documents into Qdrant's `PointStruct` objects with named
// vectors and triggers a blocking insert (`Wait=true`) to ensure data
// persistence before returning.
func (s *Store) upsertBatch(ctx context.Context, collection string, batch []index.Document) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, d := range batch {
		payload := make(map[string]any, len(d.Payload)+1)
		for k, v := range d.Payload {
			payload[k] = v
		}
		payload[docIDKey] = d.ID

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(toPointID(d.ID)),
			Vectors: qdrant.NewVectorsMap(namedVectors(d.Vectors)),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           &wait,
	}

	if _, err := s.api.Upsert(ctx, req); err != nil {
		return mapStoreError("upsert", err)
	}
	return nil
}

// Query ──────────────────────────────────────────────────────────────
// Query
// ──────────────────────────────────────────────────────────────
//
// Query executes each sub-query independently and returns one scored
// list per sub-query, in request order.
//
// k-NN sub-queries run through the Query API against their named vector
// field. Keyword sub-queries run as a full-text payload match with
// lexical re-scoring, since Qdrant matches text but does not score it.
func (s *Store) Query(ctx context.Context, queries ...index.SubQuery) ([]index.ScoredList, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("at least one sub-query is required")
	}

	results := make([]index.ScoredList, 0, len(queries))

	for i, sq := range queries {
		var (
			list index.ScoredList
			err  error
		)
		switch sq.Kind {
		case index.KindKNN:
			list, err = s.knnQuery(ctx, sq)
		case index.KindKeyword:
			list, err = s.keywordQuery(ctx, sq)
		default:
			err = fmt.Errorf("unknown sub-query kind %d", sq.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("sub-query [%d]: %w", i, err)
		}

		results = append(results, list)
		log.Printf("[Qdrant] Sub-query [%d] returned %d results", i, len(list))
	}

	return results, nil
}

// knnQuery performs nearest-neighbor search on one named vector field.
func (s *Store) knnQuery(ctx context.Context, sq index.SubQuery) (index.ScoredList, error) {
	if err := validateKNNInput(sq); err != nil {
		return nil, err
	}

	field := sq.Field
	limit := uint64(sq.TopK)
	req := &qdrant.QueryPoints{
		CollectionName: sq.Collection,
		Query:          qdrant.NewQuery(sq.Vector...),
		Using:          &field,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         convertFilterSet(sq.Filters),
	}
	if sq.MinScore > 0 {
		threshold := float32(sq.MinScore)
		req.ScoreThreshold = &threshold
	}

	resp, err := s.api.Query(ctx, req)
	if err != nil {
		return nil, mapStoreError("search", err)
	}

	return parseScoredPoints(resp)
}

// keywordQuery retrieves documents whose text field matches the query
// and ranks them by lexical term overlap.
//
// Qdrant's full-text index answers "does this document match" but
// assigns no relevance score, so candidates are over-fetched and
// re-scored client-side against the query terms.
func (s *Store) keywordQuery(ctx context.Context, sq index.SubQuery) (index.ScoredList, error) {
	if sq.Collection == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	if sq.Text == "" {
		return nil, fmt.Errorf("keyword sub-query requires text")
	}
	if sq.TopK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	filter := convertFilterSet(sq.Filters)
	if filter == nil {
		filter = &qdrant.Filter{}
	}
	filter.Must = append(filter.Must, qdrant.NewMatchText(s.cfg.TextField, sq.Text))

	limit := uint32(sq.TopK * keywordOverfetch)
	points, err := s.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: sq.Collection,
		Filter:         filter,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, mapStoreError("keyword match", err)
	}

	hits := make(index.ScoredList, 0, len(points))
	for _, p := range points {
		payload := convertPayload(p.Payload)
		text, _ := payload[s.cfg.TextField].(string)
		score := lexicalScore(sq.Text, text)
		if sq.MinScore > 0 && score < sq.MinScore {
			continue
		}
		hits = append(hits, index.ScoredHit{
			ID:      resultID(p.Id, payload),
			Score:   score,
			Payload: trimReservedKeys(payload),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > sq.TopK {
		hits = hits[:sq.TopK]
	}
	return hits, nil
}

// FuseQuery ──────────────────────────────────────────────────────────────
// FuseQuery
// ──────────────────────────────────────────────────────────────
//
// FuseQuery combines several k-NN sub-queries natively via Qdrant's
// reciprocal-rank fusion: each sub-query becomes a prefetch branch and
// the top-level query fuses their rankings server-side.
//
// Keyword sub-queries cannot ride this pipeline (they carry no native
// score to rank on), so plans containing one get ErrFusionUnavailable
// and the caller degrades to Query plus client-side fusion.
func (s *Store) FuseQuery(ctx context.Context, q index.FusedQuery) (index.ScoredList, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	if len(q.SubQueries) < 2 {
		return nil, fmt.Errorf("fused query requires at least two sub-queries")
	}

	prefetch := make([]*qdrant.PrefetchQuery, 0, len(q.SubQueries))
	for i, sq := range q.SubQueries {
		if sq.Kind != index.KindKNN {
			return nil, fmt.Errorf("sub-query [%d] is not k-NN: %w", i, index.ErrFusionUnavailable)
		}
		if err := validateKNNInput(sq); err != nil {
			return nil, fmt.Errorf("sub-query [%d]: %w", i, err)
		}

		field := sq.Field
		limit := uint64(sq.TopK)
		branch := &qdrant.PrefetchQuery{
			Query:  qdrant.NewQuery(sq.Vector...),
			Using:  &field,
			Limit:  &limit,
			Filter: convertFilterSet(sq.Filters),
		}
		if sq.MinScore > 0 {
			threshold := float32(sq.MinScore)
			branch.ScoreThreshold = &threshold
		}
		prefetch = append(prefetch, branch)
	}

	limit := uint64(q.Limit)
	req := &qdrant.QueryPoints{
		CollectionName: q.Collection,
		Prefetch:       prefetch,
		Query:          qdrant.NewQueryFusion(qdrant.Fusion_RRF),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	resp, err := s.api.Query(ctx, req)
	if err != nil {
		return nil, mapFusionError(err)
	}

	log.Printf("[Qdrant] Fused query returned %d results (branches=%d)", len(resp), len(prefetch))
	return parseScoredPoints(resp)
}

// DeleteByFilter ──────────────────────────────────────────────────────────────
// DeleteByFilter
// ──────────────────────────────────────────────────────────────
//
// DeleteByFilter removes every document matching the filter and returns
// the removed count.
//
// Qdrant's delete acknowledgment carries no count, so the matching
// documents are counted first and then deleted with the same filter.
// The count is best-effort under concurrent writes.
func (s *Store) DeleteByFilter(ctx context.Context, collection string, filters *index.FilterSet) (uint64, error) {
	if collection == "" {
		return 0, fmt.Errorf("collection name cannot be empty")
	}

	filter := convertFilterSet(filters)
	if filter == nil {
		return 0, fmt.Errorf("delete filter cannot be empty")
	}

	exact := true
	count, err := s.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return 0, mapStoreError("count", err)
	}
	if count == 0 {
		return 0, nil
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: filter},
		},
		Wait: &wait,
	}

	resp, err := s.api.Delete(ctx, req)
	if err != nil {
		return 0, mapStoreError("delete", err)
	}

	log.Printf("[Qdrant] Delete completed (status=%s, collection=%s, removed=%d)",
		resp.Status.String(), collection, count)
	return count, nil
}

// Scroll ──────────────────────────────────────────────────────────────
// Scroll
// ──────────────────────────────────────────────────────────────
//
// Scroll pages through a collection's documents, vectors included, for
// bulk maintenance such as collection-to-collection copies.
//
// Pass the returned cursor to continue; a nil cursor means the scan is
// complete. The cursor is an opaque continuation token.
func (s *Store) Scroll(ctx context.Context, collection string, cursor *string, limit int) ([]index.Document, *string, error) {
	if collection == "" {
		return nil, nil, fmt.Errorf("collection name cannot be empty")
	}
	if limit <= 0 {
		return nil, nil, fmt.Errorf("limit must be greater than 0")
	}

	pageSize := uint32(limit)
	req := &qdrant.ScrollPoints{
		CollectionName: collection,
		Limit:          &pageSize,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	}
	if cursor != nil {
		offset, err := decodeCursor(*cursor)
		if err != nil {
			return nil, nil, err
		}
		req.Offset = offset
	}

	// The high-level Scroll helper drops the continuation offset, so
	// this goes through the points client directly.
	resp, err := s.api.GetPointsClient().Scroll(ctx, req)
	if err != nil {
		return nil, nil, mapStoreError("scroll", err)
	}

	docs := make([]index.Document, 0, len(resp.Result))
	for _, p := range resp.Result {
		payload := convertPayload(p.Payload)
		docs = append(docs, index.Document{
			ID:      resultID(p.Id, payload),
			Vectors: extractNamedVectors(p.Vectors),
			Payload: trimReservedKeys(payload),
		})
	}

	var next *string
	if resp.NextPageOffset != nil {
		token, err := encodeCursor(resp.NextPageOffset)
		if err != nil {
			return nil, nil, err
		}
		next = &token
	}

	return docs, next, nil
}

// Collection ──────────────────────────────────────────────────────────────
// Collection
// ──────────────────────────────────────────────────────────────
//
// Collection retrieves engine-neutral metadata about one collection.
//
// This abstraction intentionally hides Qdrant SDK internals
// (`qdrant.CollectionInfo`) so that the application layer remains
// independent of Qdrant's client library.
func (s *Store) Collection(ctx context.Context, name string) (*index.CollectionInfo, error) {
	if s.api == nil {
		return nil, fmt.Errorf("[Qdrant] store not initialized")
	}
	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	info, err := s.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, mapStoreError(fmt.Sprintf("get collection '%s'", name), err)
	}

	return &index.CollectionInfo{
		Name:   name,
		Status: info.Status.String(),
		Points: derefUint64(info.PointsCount),
	}, nil
}

// ListCollections retrieves all existing collection names from Qdrant.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	if s.api == nil {
		return nil, fmt.Errorf("[Qdrant] store not initialized")
	}

	names, err := s.api.ListCollections(ctx)
	if err != nil {
		return nil, mapStoreError("list collections", err)
	}

	log.Printf("[Qdrant] Found %d collections", len(names))
	return names, nil
}
