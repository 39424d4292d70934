package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/visual"
)

var (
	ErrChartsDisabled = errors.New("chart rendering is disabled")
	ErrNotAChart      = errors.New("visualization is not a chart")
)

// ChartCacheTTL bounds how long a rendered PNG is reused.
const ChartCacheTTL = 10 * time.Minute

type DataService interface {
	Universities() []model.University
	Majors() []model.Major
	AdmissionRates() []model.AdmissionYear
	Stats() model.DatasetStats
	Visualization(kind model.Kind) (model.Renderable, error)
	ChartPNG(ctx context.Context, kind model.Kind) ([]byte, error)
	WriteWorkbook(w io.Writer) error
}

type dataService struct {
	store    *dataset.Store
	resolver *visual.Resolver
	renderer *visual.PNGRenderer
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewDataService wires the read-only store to its renderers. renderer and rdb
// may be nil: without a renderer PNG requests fail, without rdb nothing is cached.
func NewDataService(store *dataset.Store, resolver *visual.Resolver, renderer *visual.PNGRenderer, rdb *redis.Client, log zerolog.Logger) DataService {
	return &dataService{
		store:    store,
		resolver: resolver,
		renderer: renderer,
		rdb:      rdb,
		log:      log.With().Str("component", "data_service").Logger(),
	}
}

func (s *dataService) Universities() []model.University      { return s.store.Universities() }
func (s *dataService) Majors() []model.Major                 { return s.store.Majors() }
func (s *dataService) AdmissionRates() []model.AdmissionYear { return s.store.AdmissionRates() }
func (s *dataService) Stats() model.DatasetStats             { return s.store.Stats() }

func (s *dataService) Visualization(kind model.Kind) (model.Renderable, error) {
	return s.resolver.Resolve(kind)
}

func (s *dataService) ChartPNG(ctx context.Context, kind model.Kind) ([]byte, error) {
	if s.renderer == nil || !s.resolver.ChartsEnabled() {
		return nil, ErrChartsDisabled
	}
	r, err := s.resolver.Resolve(kind)
	if err != nil {
		return nil, err
	}
	if r.Type != model.RenderChart {
		return nil, ErrNotAChart
	}

	key := config.CacheKey.VisualizationKey(string(kind))
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("Chart cache read failed")
		}
	}

	raw, err := s.renderer.Render(r.Chart)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, raw, ChartCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("Chart cache write failed")
		}
	}
	return raw, nil
}

func (s *dataService) WriteWorkbook(w io.Writer) error {
	return visual.WriteWorkbook(w, s.store)
}
