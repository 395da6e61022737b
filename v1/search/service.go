package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/clipsearch/v1/embedding"
	"github.com/Aleph-Alpha/clipsearch/v1/fusion"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
	"github.com/Aleph-Alpha/clipsearch/v1/metrics"
	"github.com/Aleph-Alpha/clipsearch/v1/planner"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=search

// Embedder turns query text into a vector, satisfied by
// *embedding.Client.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Logger is the logging contract this package depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Service owns the read path.
type Service struct {
	cfg     Config
	store   index.Service
	planner *planner.Planner
	engine  *fusion.Engine
	embed   Embedder
	present *Presenter
	log     Logger
	stats   metrics.Collector
	tracer  trace.Tracer
}

// ServiceParams carries the service's dependencies for Fx injection.
type ServiceParams struct {
	fx.In

	Config    Config
	Store     index.Service
	Planner   *planner.Planner
	Engine    *fusion.Engine
	Embedder  Embedder
	Presenter *Presenter
	Logger    Logger
	Stats     metrics.Collector `optional:"true"`
}

// NewService constructs the search service.
func NewService(p ServiceParams) *Service {
	return &Service{
		cfg:     p.Config,
		store:   p.Store,
		planner: p.Planner,
		engine:  p.Engine,
		embed:   p.Embedder,
		present: p.Presenter,
		log:     p.Logger,
		stats:   p.Stats,
		tracer:  otel.Tracer("clipsearch/search"),
	}
}

// Search answers one query.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	ctx, span := s.tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.type", req.SearchType),
		attribute.Int("search.top_k", req.TopK),
	))
	defer span.End()

	start := time.Now()
	resp, err := s.search(ctx, req)
	if s.stats != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.stats.CountSearchRequest(req.SearchType, status)
		s.stats.RecordSearchDuration(start, req.SearchType)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", resp.Total))
	return resp, nil
}

func (s *Service) search(ctx context.Context, req Request) (*Response, error) {
	if req.QueryText == "" {
		return nil, fmt.Errorf("search: query text cannot be empty")
	}
	mode, err := planner.ParseMode(req.SearchType)
	if err != nil {
		return nil, err
	}
	if req.TopK <= 0 {
		req.TopK = s.cfg.DefaultTopK
	}

	query := planner.Query{
		Text:    req.QueryText,
		Mode:    mode,
		TopK:    req.TopK,
		VideoID: req.VideoID,
	}

	if mode != planner.ModeText {
		vector, err := s.embed.EmbedText(ctx, req.QueryText)
		switch {
		case err == nil:
			query.Vector = vector
		case errors.Is(err, embedding.ErrUnavailable) && hasKeywordLeg(mode):
			// Weighted modes carry a keyword leg, so an embedding outage
			// still has an answerable query.
			s.log.WarnWithContext(ctx, "embedding unavailable, degrading to keyword search", err, map[string]interface{}{
				"requested_mode": string(mode),
			})
			query.Mode = planner.ModeText
		default:
			return nil, fmt.Errorf("search: query embedding failed: %w", err)
		}
	}

	plan, err := s.planner.Plan(query)
	if err != nil {
		return nil, err
	}

	hits, err := s.execute(ctx, plan)
	if err != nil {
		return nil, err
	}

	return s.present.Present(ctx, req.QueryText, string(mode), hits), nil
}

// hasKeywordLeg reports whether the mode's plan can survive without a
// query vector.
func hasKeywordLeg(mode planner.Mode) bool {
	return mode == planner.ModeHybrid || mode == planner.ModeMultimodal
}

// execute runs a plan to a final ranked list.
func (s *Service) execute(ctx context.Context, plan *planner.Plan) (index.ScoredList, error) {
	if plan.PassThrough {
		lists, err := s.store.Query(ctx, plan.SubQueries...)
		if err != nil {
			return nil, fmt.Errorf("search: query failed: %w", err)
		}
		return fusion.PassThrough(lists[0], plan.MinScore, plan.TopK), nil
	}

	if plan.ServerFusion {
		fused, err := s.store.FuseQuery(ctx, index.FusedQuery{
			Collection: plan.SubQueries[0].Collection,
			SubQueries: plan.SubQueries,
			Limit:      plan.TopK,
		})
		if err == nil {
			return s.engine.NormalizeStoreRRF(fused), nil
		}
		if !errors.Is(err, index.ErrFusionUnavailable) {
			return nil, fmt.Errorf("search: fused query failed: %w", err)
		}
		s.log.WarnWithContext(ctx, "store fusion unavailable, fusing client-side", err, map[string]interface{}{
			"mode": string(plan.Mode),
		})
	}

	lists, err := s.dispatch(ctx, plan.SubQueries)
	if err != nil {
		return nil, err
	}

	fusionLists := make([]fusion.List, len(lists))
	for i, l := range lists {
		fusionLists[i] = fusion.List{Hits: l, Weight: plan.SubQueries[i].Weight}
	}
	return s.engine.Fuse(fusionLists, plan.Policy, plan.TopK)
}

// dispatch runs each sub-query concurrently; result order follows the
// plan, not completion order.
func (s *Service) dispatch(ctx context.Context, subs []index.SubQuery) ([]index.ScoredList, error) {
	lists := make([]index.ScoredList, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	for i := range subs {
		g.Go(func() error {
			res, err := s.store.Query(ctx, subs[i])
			if err != nil {
				return fmt.Errorf("search: sub-query [%d] failed: %w", i, err)
			}
			lists[i] = res[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}
