package fusion

import (
	"fmt"
	"sort"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// Policy selects the normalization strategy applied before merging.
type Policy int

const (
	// PolicyMinMaxWeighted - per-list min-max rescale, weighted sum per document.
	PolicyMinMaxWeighted Policy = iota
	// PolicyL2 - per-list Euclidean-norm rescale, weighted sum per document.
	PolicyL2
	// PolicySigmoid - logistic map centered on the list mean; fused
	// results under the configured minimum score are dropped.
	PolicySigmoid
	// PolicyRRF - reciprocal-rank fusion with bound re-normalization.
	PolicyRRF
)

func (p Policy) String() string {
	switch p {
	case PolicyMinMaxWeighted:
		return "minmax"
	case PolicyL2:
		return "l2"
	case PolicySigmoid:
		return "sigmoid"
	case PolicyRRF:
		return "rrf"
	default:
		return "unknown"
	}
}

// List pairs one sub-query's results with its configured weight.
type List struct {
	Hits   index.ScoredList
	Weight float64
}

// Engine fuses sub-query result lists. Stateless apart from its config;
// safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine constructs a fusion engine with the given tunables.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Fuse combines the lists into one ranked, deduplicated list of at most
// topK results (engine default when topK <= 0). Given the same inputs
// the output is fully deterministic: equal fused scores keep their
// first-seen order across lists.
func (e *Engine) Fuse(lists []List, policy Policy, topK int) (index.ScoredList, error) {
	if topK <= 0 {
		topK = e.cfg.TopK
	}

	switch policy {
	case PolicyMinMaxWeighted:
		return e.merge(lists, minMaxNormalize, topK, false), nil
	case PolicyL2:
		return e.merge(lists, l2Normalize, topK, false), nil
	case PolicySigmoid:
		sigmoid := func(scores []float64) []float64 {
			return sigmoidNormalize(scores, e.cfg.SigmoidSteepness, e.cfg.SigmoidScale)
		}
		return e.merge(lists, sigmoid, topK, true), nil
	case PolicyRRF:
		return e.FuseRRF(lists, topK), nil
	default:
		return nil, fmt.Errorf("fusion: unknown policy %d", policy)
	}
}

// merge normalizes each list, sums weighted contributions per document,
// and stable-sorts by fused score. A document absent from a list simply
// contributes zero for that list's term; the sum is not renormalized by
// the weight total. With applyFloor the sorted output is cut at the
// first score under MinScore (dropped, not down-ranked).
func (e *Engine) merge(lists []List, normalize func([]float64) []float64, topK int, applyFloor bool) index.ScoredList {
	type acc struct {
		score   float64
		payload map[string]any
	}
	order := make([]string, 0)
	byID := make(map[string]*acc)

	for _, l := range lists {
		scores := make([]float64, len(l.Hits))
		for i, h := range l.Hits {
			scores[i] = h.Score
		}
		normed := normalize(scores)

		for i, h := range l.Hits {
			a, ok := byID[h.ID]
			if !ok {
				a = &acc{}
				byID[h.ID] = a
				order = append(order, h.ID)
			}
			a.score += l.Weight * normed[i]
			if a.payload == nil {
				a.payload = h.Payload
			}
		}
	}

	fused := make(index.ScoredList, 0, len(order))
	for _, id := range order {
		a := byID[id]
		fused = append(fused, index.ScoredHit{ID: id, Score: a.score, Payload: a.payload})
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if applyFloor {
		// Sorted descending, so everything past the first sub-floor
		// score is under the floor too. Sorting first means this holds
		// even when the store returned lists out of score order.
		cut := len(fused)
		for i, h := range fused {
			if h.Score < e.cfg.MinScore {
				cut = i
				break
			}
		}
		fused = fused[:cut]
	}

	if topK > 0 && len(fused) > topK {
		fused = fused[:topK]
	}
	return fused
}

// FuseRRF fuses by reciprocal ranks on the client, for stores without a
// native fusion pipeline. Each list contributes weight/(k + rank) per
// document (ranks 1-indexed); the summed raw score is then re-normalized
// into [0,1] via NormalizeRRF.
func (e *Engine) FuseRRF(lists []List, topK int) index.ScoredList {
	if topK <= 0 {
		topK = e.cfg.TopK
	}
	k := float64(e.cfg.RRFRankConstant)

	type acc struct {
		score   float64
		payload map[string]any
	}
	order := make([]string, 0)
	byID := make(map[string]*acc)

	for _, l := range lists {
		for rank, h := range l.Hits {
			a, ok := byID[h.ID]
			if !ok {
				a = &acc{payload: h.Payload}
				byID[h.ID] = a
				order = append(order, h.ID)
			}
			a.score += l.Weight / (k + float64(rank+1))
		}
	}

	fused := make(index.ScoredList, 0, len(order))
	for _, id := range order {
		a := byID[id]
		fused = append(fused, index.ScoredHit{
			ID:      id,
			Score:   NormalizeRRF(a.score, e.cfg.RRFRankConstant, e.cfg.RRFMultiplier),
			Payload: a.payload,
		})
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if len(fused) > topK {
		fused = fused[:topK]
	}
	return fused
}

// NormalizeStoreRRF re-normalizes a natively fused list's raw RRF scores
// into [0,1], preserving order. Used when the store ran the fusion
// pipeline itself and returned raw reciprocal-rank sums.
func (e *Engine) NormalizeStoreRRF(hits index.ScoredList) index.ScoredList {
	out := make(index.ScoredList, len(hits))
	for i, h := range hits {
		out[i] = index.ScoredHit{
			ID:      h.ID,
			Score:   NormalizeRRF(h.Score, e.cfg.RRFRankConstant, e.cfg.RRFMultiplier),
			Payload: h.Payload,
		}
	}
	return out
}

// PassThrough applies an optional score floor and size bound to a single
// sub-query list without rescaling. Duplicate IDs keep their first
// occurrence. Used by single-modality and keyword-only plans where the
// store's native ordering is authoritative.
func PassThrough(hits index.ScoredList, minScore float64, topK int) index.ScoredList {
	seen := make(map[string]struct{}, len(hits))
	out := make(index.ScoredList, 0, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		if minScore > 0 && h.Score < minScore {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
		if topK > 0 && len(out) == topK {
			break
		}
	}
	return out
}
