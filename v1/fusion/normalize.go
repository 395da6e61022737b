package fusion

import "math"

// minMaxNormalize rescales scores to [0,1] via (s - min) / (max - min).
// The denominator is clamped to 1.0 when all scores are equal, so a
// constant list maps to all zeros instead of dividing by zero.
func minMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	denom := maxScore - minScore
	if denom <= 0 {
		denom = 1.0
	}

	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = (s - minScore) / denom
	}
	return out
}

// l2Normalize divides each score by the Euclidean norm of the list.
// The norm is floored at 1.0 so empty or all-zero lists pass through.
func l2Normalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	var sumSq float64
	for _, s := range scores {
		sumSq += s * s
	}
	norm := math.Sqrt(sumSq)
	if norm < 1.0 {
		norm = 1.0
	}

	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s / norm
	}
	return out
}

// sigmoidNormalize centers scores on the list mean and maps them through
// a logistic function into (0,1). Steepness and scale come from config.
func sigmoidNormalize(scores []float64, steepness, scale float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = 1.0 / (1.0 + math.Exp(-steepness*(s-mean)/scale))
	}
	return out
}

// NormalizeRRF maps a raw reciprocal-rank-fusion score into [0,1].
//
// A document ranked first in every contributing list scores at most
// about 1/(k+1) per list, so raw RRF scores are small and not directly
// interpretable as confidence. Dividing by the theoretical maximum
// multiplier/(k+1) and clamping yields a bounded, monotonic score.
func NormalizeRRF(raw float64, rankConstant int, multiplier float64) float64 {
	rrfMax := multiplier / float64(rankConstant+1)
	if rrfMax <= 0 {
		return 0
	}
	normalized := raw / rrfMax
	if normalized > 1.0 {
		return 1.0
	}
	if normalized < 0 {
		return 0
	}
	return normalized
}

// Round3 rounds a score to 3 decimals for presentation.
func Round3(s float64) float64 {
	return math.Round(s*1000) / 1000
}
