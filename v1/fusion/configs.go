package fusion

// Config holds the tunables of the fusion engine. All values have
// serviceable defaults; none are baked into the fusion math.
type Config struct {
	// TopK bounds the fused result size.
	TopK int `yaml:"top_k" env:"FUSION_TOP_K"`

	// MinScore is the final floor: fused results below it are dropped
	// under the sigmoid policy and by pass-through floors.
	MinScore float64 `yaml:"min_score" env:"FUSION_MIN_SCORE"`

	// SigmoidSteepness is the logistic steepness constant.
	SigmoidSteepness float64 `yaml:"sigmoid_steepness" env:"FUSION_SIGMOID_STEEPNESS"`

	// SigmoidScale divides the centered score before the logistic map.
	SigmoidScale float64 `yaml:"sigmoid_scale" env:"FUSION_SIGMOID_SCALE"`

	// RRFRankConstant is the smoothing constant k in 1/(k + rank).
	RRFRankConstant int `yaml:"rrf_rank_constant" env:"FUSION_RRF_RANK_CONSTANT"`

	// RRFMultiplier scales the theoretical RRF maximum used to
	// re-normalize raw RRF scores into [0,1].
	RRFMultiplier float64 `yaml:"rrf_multiplier" env:"FUSION_RRF_MULTIPLIER"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		TopK:             50,
		MinScore:         0.5,
		SigmoidSteepness: 5.0,
		SigmoidScale:     100.0 / 2.0,
		RRFRankConstant:  60,
		RRFMultiplier:    1.23,
	}
}

// Builder-style helpers (optional, ergonomic)
func (c Config) WithTopK(k int) Config {
	c.TopK = k
	return c
}

func (c Config) WithMinScore(s float64) Config {
	c.MinScore = s
	return c
}

func (c Config) WithRRFRankConstant(k int) Config {
	c.RRFRankConstant = k
	return c
}

func (c Config) WithRRFMultiplier(m float64) Config {
	c.RRFMultiplier = m
	return c
}
