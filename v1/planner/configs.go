package planner

import "github.com/Aleph-Alpha/clipsearch/v1/fusion"

// Weights holds one mode's per-sub-query weights. They are summed as
// configured during fusion, never renormalized.
type Weights struct {
	Visual  float64 `yaml:"visual" env:"PLANNER_WEIGHT_VISUAL"`
	Audio   float64 `yaml:"audio" env:"PLANNER_WEIGHT_AUDIO"`
	Keyword float64 `yaml:"keyword" env:"PLANNER_WEIGHT_KEYWORD"`
}

// Config holds the planner's tunables: field naming, candidate counts,
// floors, weights, and the default fusion policy.
type Config struct {
	// Collection targeted by every sub-query.
	Collection string `yaml:"collection" env:"PLANNER_COLLECTION"`

	// VisualField and AudioField are the modality vector fields.
	// VisualField holds the text-comparable visual embedding.
	VisualField string `yaml:"visual_field" env:"PLANNER_VISUAL_FIELD"`
	AudioField  string `yaml:"audio_field" env:"PLANNER_AUDIO_FIELD"`

	// VideoIDField is the payload field used for search-within-video.
	VideoIDField string `yaml:"video_id_field" env:"PLANNER_VIDEO_ID_FIELD"`

	// InnerTopK is each sub-query's candidate count, larger than the
	// final top-k to give the fusion step enough material.
	InnerTopK int `yaml:"inner_top_k" env:"PLANNER_INNER_TOP_K"`

	// InnerMinScore discards weak k-NN matches before fusion.
	InnerMinScore float64 `yaml:"inner_min_score" env:"PLANNER_INNER_MIN_SCORE"`

	// Hybrid and Multimodal are the per-mode weight sets.
	Hybrid     Weights `yaml:"hybrid"`
	Multimodal Weights `yaml:"multimodal"`

	// Policy is the fusion policy for multi-sub-query plans.
	Policy fusion.Policy `yaml:"policy" env:"PLANNER_FUSION_POLICY"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		Collection:    "video_clips",
		VisualField:   "emb_visual",
		AudioField:    "emb_audio",
		VideoIDField:  "video_id",
		InnerTopK:     100,
		InnerMinScore: 0.6,
		Hybrid:        Weights{Visual: 0.5, Audio: 0.3, Keyword: 0.2},
		Multimodal:    Weights{Visual: 0.25, Audio: 0.15, Keyword: 0.6},
		Policy:        fusion.PolicyMinMaxWeighted,
	}
}

// Builder-style helpers (optional, ergonomic)
func (c Config) WithCollection(name string) Config {
	c.Collection = name
	return c
}

func (c Config) WithPolicy(p fusion.Policy) Config {
	c.Policy = p
	return c
}

func (c Config) WithHybridWeights(w Weights) Config {
	c.Hybrid = w
	return c
}

func (c Config) WithInnerTopK(k int) Config {
	c.InnerTopK = k
	return c
}
