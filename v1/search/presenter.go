package search

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/fusion"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
	"github.com/Aleph-Alpha/clipsearch/v1/minio"
)

// ObjectPresigner issues time-limited GET URLs, satisfied by
// *minio.Store.
type ObjectPresigner interface {
	PresignGet(ctx context.Context, bucket, key string) (string, error)
}

// Presenter turns scored hits into the response shape: payload fields
// lifted into typed fields, scores rounded to 3 decimals, thumbnail
// URIs resolved to presigned URLs.
type Presenter struct {
	cfg     Config
	presign ObjectPresigner
	log     Logger
}

// PresenterParams carries the presenter's dependencies for Fx injection.
type PresenterParams struct {
	fx.In

	Config  Config
	Presign ObjectPresigner
	Logger  Logger
}

// NewPresenter constructs the presenter.
func NewPresenter(p PresenterParams) *Presenter {
	return &Presenter{cfg: p.Config, presign: p.Presign, log: p.Logger}
}

// Present builds the response for a ranked hit list.
func (p *Presenter) Present(ctx context.Context, query, mode string, hits index.ScoredList) *Response {
	clips := make([]Hit, 0, len(hits))
	for _, h := range hits {
		clips = append(clips, p.hit(ctx, h))
	}
	return &Response{
		Query:      query,
		SearchType: mode,
		Total:      len(clips),
		Clips:      clips,
	}
}

func (p *Presenter) hit(ctx context.Context, h index.ScoredHit) Hit {
	out := Hit{
		ClipID:         payloadString(h.Payload, "clip_id"),
		VideoID:        payloadString(h.Payload, "video_id"),
		VideoPath:      payloadString(h.Payload, "video_path"),
		TimestampStart: payloadFloat(h.Payload, "timestamp_start"),
		TimestampEnd:   payloadFloat(h.Payload, "timestamp_end"),
		ClipText:       payloadString(h.Payload, "clip_text"),
		Score:          fusion.Round3(h.Score),
	}
	if out.ClipID == "" {
		out.ClipID = h.ID
	}

	if uri := payloadString(h.Payload, p.cfg.ThumbnailField); uri != "" {
		out.ThumbnailURL = p.presignURI(ctx, uri)
	}
	return out
}

// presignURI resolves an s3:// URI to a presigned URL. Failures degrade
// to an absent URL, never a request failure.
func (p *Presenter) presignURI(ctx context.Context, uri string) string {
	bucket, key, err := minio.ParseURI(uri)
	if err != nil {
		p.log.WarnWithContext(ctx, "skipping malformed thumbnail URI", err, map[string]interface{}{
			"uri": uri,
		})
		return ""
	}

	url, err := p.presign.PresignGet(ctx, bucket, key)
	if err != nil {
		p.log.WarnWithContext(ctx, "thumbnail presign failed", err, map[string]interface{}{
			"uri": uri,
		})
		return ""
	}
	return url
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	s, _ := payload[key].(string)
	return s
}

func payloadFloat(payload map[string]any, key string) float64 {
	if payload == nil {
		return 0
	}
	switch v := payload[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}
