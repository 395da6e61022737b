package qdrant

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// docIDKey is the reserved payload field carrying the caller's document
// id. Qdrant point ids must be numeric or UUID, so application ids like
// "clip_9f2a…" are mapped to a deterministic UUID for the point id and
// kept verbatim in the payload for results.
const docIDKey = "doc_id"

// toPointID maps a document id onto a valid Qdrant point id. Ids that
// already are UUIDs pass through; everything else becomes a name-based
// UUID so the mapping stays deterministic across upserts.
func toPointID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
}

// resultID recovers the caller's document id from a result point,
// preferring the reserved payload field over the raw point id.
func resultID(pointID *qdrant.PointId, payload map[string]any) string {
	if id, ok := payload[docIDKey].(string); ok && id != "" {
		return id
	}
	raw, err := extractPointID(pointID)
	if err != nil {
		return ""
	}
	return raw
}

// trimReservedKeys strips adapter-internal payload fields before
// handing results back to the caller.
func trimReservedKeys(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	delete(payload, docIDKey)
	return payload
}

// toQdrantDistance maps the engine-neutral metric onto Qdrant's enum.
func toQdrantDistance(d index.Distance) qdrant.Distance {
	switch d {
	case index.DistanceEuclid:
		return qdrant.Distance_Euclid
	default:
		return qdrant.Distance_Cosine
	}
}

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertFilterSet converts an index.FilterSet to a Qdrant filter.
func convertFilterSet(filters *index.FilterSet) *qdrant.Filter {
	if filters == nil {
		return nil
	}

	filter := &qdrant.Filter{}

	if filters.Must != nil {
		filter.Must = convertConditionSet(filters.Must)
	}
	if filters.Should != nil {
		filter.Should = convertConditionSet(filters.Should)
	}
	if filters.MustNot != nil {
		filter.MustNot = convertConditionSet(filters.MustNot)
	}

	// Return nil if no conditions were added
	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil
	}

	return filter
}

// convertConditionSet converts an index.ConditionSet to Qdrant conditions.
func convertConditionSet(cs *index.ConditionSet) []*qdrant.Condition {
	if cs == nil {
		return nil
	}

	var conditions []*qdrant.Condition
	for _, c := range cs.Conditions {
		if cond := convertCondition(c); cond != nil {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}

// convertCondition converts a single index.FilterCondition to a Qdrant condition.
func convertCondition(c index.FilterCondition) *qdrant.Condition {
	switch cond := c.(type) {
	case *index.MatchCondition:
		return convertMatchCondition(cond)
	case *index.MatchAnyCondition:
		return convertMatchAnyCondition(cond)
	case *index.NumericRangeCondition:
		return convertNumericRangeCondition(cond)
	case *index.TimeRangeCondition:
		return convertTimeRangeCondition(cond)
	default:
		return nil
	}
}

func convertMatchCondition(c *index.MatchCondition) *qdrant.Condition {
	switch v := c.Value.(type) {
	case string:
		return qdrant.NewMatch(c.Field, v)
	case bool:
		return qdrant.NewMatchBool(c.Field, v)
	case int:
		return qdrant.NewMatchInt(c.Field, int64(v))
	case int64:
		return qdrant.NewMatchInt(c.Field, v)
	case float64:
		// Handle JSON numbers which are float64 by default
		return qdrant.NewMatchInt(c.Field, int64(v))
	default:
		return nil
	}
}

func convertMatchAnyCondition(c *index.MatchAnyCondition) *qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}

	// Detect type from first value
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, len(c.Values))
		for i, v := range c.Values {
			if s, ok := v.(string); ok {
				strs[i] = s
			}
		}
		return qdrant.NewMatchKeywords(c.Field, strs...)
	case int, int64, float64:
		ints := make([]int64, len(c.Values))
		for i, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints[i] = int64(n)
			case int64:
				ints[i] = n
			case float64:
				ints[i] = int64(n)
			}
		}
		return qdrant.NewMatchInts(c.Field, ints...)
	}
	return nil
}

func convertNumericRangeCondition(c *index.NumericRangeCondition) *qdrant.Condition {
	rangeFilter := &qdrant.Range{
		Gt:  c.Range.Gt,
		Gte: c.Range.Gte,
		Lt:  c.Range.Lt,
		Lte: c.Range.Lte,
	}

	if rangeFilter.Gt == nil && rangeFilter.Gte == nil &&
		rangeFilter.Lt == nil && rangeFilter.Lte == nil {
		return nil
	}

	return qdrant.NewRange(c.Field, rangeFilter)
}

func convertTimeRangeCondition(c *index.TimeRangeCondition) *qdrant.Condition {
	dateRange := &qdrant.DatetimeRange{
		Gt:  toTimestamp(c.Range.Gt),
		Gte: toTimestamp(c.Range.Gte),
		Lt:  toTimestamp(c.Range.Lt),
		Lte: toTimestamp(c.Range.Lte),
	}

	if dateRange.Gt == nil && dateRange.Gte == nil &&
		dateRange.Lt == nil && dateRange.Lte == nil {
		return nil
	}

	return qdrant.NewDatetimeRange(c.Field, dateRange)
}

func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

// ── Result Conversion ────────────────────────────────────────────────────────

// parseScoredPoints converts a Qdrant response to a ScoredList.
func parseScoredPoints(resp []*qdrant.ScoredPoint) (index.ScoredList, error) {
	results := make(index.ScoredList, 0, len(resp))
	for _, r := range resp {
		payload := convertPayload(r.Payload)
		id := resultID(r.Id, payload)
		if id == "" {
			return nil, fmt.Errorf("[Qdrant] result point carries no usable id")
		}

		results = append(results, index.ScoredHit{
			ID:      id,
			Score:   float64(r.Score),
			Payload: trimReservedKeys(payload),
		})
	}
	return results, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}

// extractNamedVectors flattens Qdrant's vectors output into the
// field-name-to-embedding map documents carry.
func extractNamedVectors(v *qdrant.VectorsOutput) map[string][]float32 {
	if v == nil {
		return nil
	}
	switch opt := v.VectorsOptions.(type) {
	case *qdrant.VectorsOutput_Vectors:
		if opt.Vectors == nil {
			return nil
		}
		out := make(map[string][]float32, len(opt.Vectors.Vectors))
		for name, vec := range opt.Vectors.Vectors {
			if vec != nil {
				out[name] = vec.Data
			}
		}
		return out
	case *qdrant.VectorsOutput_Vector:
		if opt.Vector == nil {
			return nil
		}
		return map[string][]float32{"": opt.Vector.Data}
	default:
		return nil
	}
}

// ── Cursor Conversion ────────────────────────────────────────────────────────

// encodeCursor turns a scroll continuation offset into an opaque token.
func encodeCursor(id *qdrant.PointId) (string, error) {
	return extractPointID(id)
}

// decodeCursor turns an opaque token back into a scroll offset.
// Numeric tokens map to numeric point ids, everything else to UUIDs.
func decodeCursor(token string) (*qdrant.PointId, error) {
	if token == "" {
		return nil, fmt.Errorf("scroll cursor cannot be empty")
	}
	if n, err := strconv.ParseUint(token, 10, 64); err == nil {
		return qdrant.NewIDNum(n), nil
	}
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("malformed scroll cursor %q", token)
	}
	return qdrant.NewID(token), nil
}
