package planner

import (
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/clipsearch/v1/fusion"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// Mode is the caller-selected search type.
type Mode string

const (
	ModeText       Mode = "text"
	ModeVector     Mode = "vector"
	ModeVisual     Mode = "visual"
	ModeAudio      Mode = "audio"
	ModeHybrid     Mode = "hybrid"
	ModeMultimodal Mode = "multimodal"
)

// ParseMode validates a caller-supplied search type string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeText, ModeVector, ModeVisual, ModeAudio, ModeHybrid, ModeMultimodal:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("planner: unknown search type %q", s)
	}
}

var (
	// ErrVectorRequired - the mode needs a query embedding and none was
	// supplied (e.g. the embedding gateway was unavailable).
	ErrVectorRequired = errors.New("planner: mode requires a query vector")

	// ErrNoSubQueries - capability degradation left nothing to execute.
	ErrNoSubQueries = errors.New("planner: no executable sub-queries for mode")
)

// Query is the planner's input: the user's text, its embedding (absent
// for text-only search), the mode, and optional scoping.
type Query struct {
	Text    string
	Vector  []float32
	Mode    Mode
	TopK    int
	VideoID string
}

// Plan is an executable query plan. PassThrough plans carry exactly one
// sub-query and skip fusion; ServerFusion plans are executed through the
// store's native fusion pipeline with client-side re-normalization.
type Plan struct {
	Mode       Mode
	SubQueries []index.SubQuery
	Policy     fusion.Policy

	PassThrough  bool
	ServerFusion bool

	// MinScore is the floor applied to pass-through results.
	MinScore float64

	TopK int
}

// Planner builds plans from queries. It is constructed once with the
// store's capability descriptor; per-query branching happens on that
// descriptor, never on global state.
type Planner struct {
	cfg  Config
	caps index.Capabilities
}

// New constructs a planner for the given configuration and capabilities.
func New(cfg Config, caps index.Capabilities) *Planner {
	return &Planner{cfg: cfg, caps: caps}
}

// Capabilities returns the descriptor the planner was built with.
func (p *Planner) Capabilities() index.Capabilities {
	return p.caps
}

// Plan builds the sub-query composition for one query. The returned
// plan is self-contained: executing its sub-queries and applying its
// policy yields the final ranking.
func (p *Planner) Plan(q Query) (*Plan, error) {
	if q.TopK <= 0 {
		q.TopK = 10
	}
	filters := p.scopeFilters(q)

	switch q.Mode {
	case ModeText:
		return p.planText(q, filters)
	case ModeVisual:
		return p.planSingleModality(q, p.cfg.VisualField, filters)
	case ModeAudio:
		return p.planSingleModality(q, p.cfg.AudioField, filters)
	case ModeVector:
		return p.planVector(q, filters)
	case ModeHybrid:
		return p.planWeighted(q, p.cfg.Hybrid, filters)
	case ModeMultimodal:
		return p.planWeighted(q, p.cfg.Multimodal, filters)
	default:
		return nil, fmt.Errorf("planner: unknown mode %q", q.Mode)
	}
}

func (p *Planner) scopeFilters(q Query) *index.FilterSet {
	if q.VideoID == "" {
		return nil
	}
	return index.ByVideo(p.cfg.VideoIDField, q.VideoID)
}

// planText issues a keyword match only. It never needs the embedding
// gateway, so text search stays available when embeddings are not.
func (p *Planner) planText(q Query, filters *index.FilterSet) (*Plan, error) {
	if !p.caps.KeywordSearch {
		return nil, fmt.Errorf("%w: keyword search not available", ErrNoSubQueries)
	}
	return &Plan{
		Mode: q.Mode,
		SubQueries: []index.SubQuery{{
			Collection: p.cfg.Collection,
			Kind:       index.KindKeyword,
			Text:       q.Text,
			TopK:       q.TopK,
			Filters:    filters,
		}},
		PassThrough: true,
		TopK:        q.TopK,
	}, nil
}

func (p *Planner) planSingleModality(q Query, field string, filters *index.FilterSet) (*Plan, error) {
	if len(q.Vector) == 0 {
		return nil, ErrVectorRequired
	}
	if !p.caps.HasField(field) {
		return nil, fmt.Errorf("%w: field %q not available", ErrNoSubQueries, field)
	}
	return &Plan{
		Mode: q.Mode,
		SubQueries: []index.SubQuery{
			p.knn(field, q.Vector, 1.0, filters),
		},
		PassThrough: true,
		MinScore:    p.cfg.InnerMinScore,
		TopK:        q.TopK,
	}, nil
}

// planVector fans out over every available modality field with equal
// weight and fuses client-side.
func (p *Planner) planVector(q Query, filters *index.FilterSet) (*Plan, error) {
	if len(q.Vector) == 0 {
		return nil, ErrVectorRequired
	}

	var subs []index.SubQuery
	for _, field := range []string{p.cfg.VisualField, p.cfg.AudioField} {
		if p.caps.HasField(field) {
			subs = append(subs, p.knn(field, q.Vector, 1.0, filters))
		}
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: no modality fields available", ErrNoSubQueries)
	}
	if len(subs) == 1 {
		return &Plan{
			Mode:        q.Mode,
			SubQueries:  subs,
			PassThrough: true,
			MinScore:    p.cfg.InnerMinScore,
			TopK:        q.TopK,
		}, nil
	}
	return &Plan{
		Mode:         q.Mode,
		SubQueries:   subs,
		Policy:       p.cfg.Policy,
		ServerFusion: p.serverFusion(),
		TopK:         q.TopK,
	}, nil
}

// planWeighted builds the hybrid/multimodal composition: modality k-NN
// sub-queries plus a keyword match, each carrying its configured weight.
// Unavailable legs are omitted rather than failing the query.
func (p *Planner) planWeighted(q Query, w Weights, filters *index.FilterSet) (*Plan, error) {
	if len(q.Vector) == 0 {
		return nil, ErrVectorRequired
	}

	var subs []index.SubQuery
	if p.caps.HasField(p.cfg.VisualField) && w.Visual > 0 {
		subs = append(subs, p.knn(p.cfg.VisualField, q.Vector, w.Visual, filters))
	}
	if p.caps.HasField(p.cfg.AudioField) && w.Audio > 0 {
		subs = append(subs, p.knn(p.cfg.AudioField, q.Vector, w.Audio, filters))
	}
	if p.caps.KeywordSearch && w.Keyword > 0 {
		subs = append(subs, index.SubQuery{
			Collection: p.cfg.Collection,
			Kind:       index.KindKeyword,
			Text:       q.Text,
			TopK:       p.cfg.InnerTopK,
			Weight:     w.Keyword,
			Filters:    filters,
		})
	}

	switch len(subs) {
	case 0:
		return nil, fmt.Errorf("%w: no modality fields or keyword search available", ErrNoSubQueries)
	case 1:
		minScore := p.cfg.InnerMinScore
		if subs[0].Kind == index.KindKeyword {
			minScore = 0
		}
		return &Plan{
			Mode:        q.Mode,
			SubQueries:  subs,
			PassThrough: true,
			MinScore:    minScore,
			TopK:        q.TopK,
		}, nil
	}

	return &Plan{
		Mode:         q.Mode,
		SubQueries:   subs,
		Policy:       p.cfg.Policy,
		ServerFusion: p.serverFusion(),
		TopK:         q.TopK,
	}, nil
}

func (p *Planner) knn(field string, vector []float32, weight float64, filters *index.FilterSet) index.SubQuery {
	return index.SubQuery{
		Collection: p.cfg.Collection,
		Kind:       index.KindKNN,
		Field:      field,
		Vector:     vector,
		TopK:       p.cfg.InnerTopK,
		MinScore:   p.cfg.InnerMinScore,
		Weight:     weight,
		Filters:    filters,
	}
}

// serverFusion reports whether the plan should run through the store's
// native fusion pipeline. Only the RRF policy maps onto what engines
// compute natively; the other policies are always fused client-side.
func (p *Planner) serverFusion() bool {
	return p.caps.ServerFusion && p.cfg.Policy == fusion.PolicyRRF
}
