package search

// Request is one search call.
type Request struct {
	// QueryText is the user's free-text query.
	QueryText string `json:"query"`

	// SearchType selects the mode: text, vector, visual, audio, hybrid,
	// or multimodal.
	SearchType string `json:"search_type"`

	// TopK bounds the result count; defaults to the configured value.
	TopK int `json:"top_k,omitempty"`

	// VideoID optionally scopes the search to one video.
	VideoID string `json:"video_id,omitempty"`
}

// Hit is one presented search result.
type Hit struct {
	ClipID         string  `json:"clip_id"`
	VideoID        string  `json:"video_id"`
	VideoPath      string  `json:"video_path"`
	TimestampStart float64 `json:"timestamp_start"`
	TimestampEnd   float64 `json:"timestamp_end"`
	ClipText       string  `json:"clip_text"`
	Score          float64 `json:"score"`

	// ThumbnailURL is a presigned GET URL, absent when the clip has no
	// thumbnail or presigning failed.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Response is the answer to one search call.
type Response struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type"`
	Total      int    `json:"total"`
	Clips      []Hit  `json:"clips"`
}
