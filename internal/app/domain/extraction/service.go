// Package extraction turns uploaded schedule screenshots into a loaded
// itinerary via a multimodal model.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/assignment"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
	"github.com/FACorreiaa/go-routeplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-routeplanner/internal/pkg/cache"
)

// FailureMessage is the user-facing error stored when an extraction fails.
const FailureMessage = "이미지 분석 실패"

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 2 * time.Minute

// Config tunes the extraction service.
type Config struct {
	MaxImageEdge int
	Timeout      time.Duration
}

// Service runs at most one extraction at a time and loads the result into
// the store.
type Service struct {
	extractor Extractor
	store     *itinerary.Store
	assigner  *assignment.Assigner
	results   *cache.UnifiedCache[*models.ItineraryData]
	gate      *semaphore.Weighted
	cfg       Config
	logger    *zap.Logger
}

// NewService wires the extractor to the store. results may be nil to disable caching.
func NewService(
	extractor Extractor,
	store *itinerary.Store,
	assigner *assignment.Assigner,
	results *cache.UnifiedCache[*models.ItineraryData],
	cfg Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxImageEdge <= 0 {
		cfg.MaxImageEdge = DefaultMaxImageEdge
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		extractor: extractor,
		store:     store,
		assigner:  assigner,
		results:   results,
		gate:      semaphore.NewWeighted(1),
		cfg:       cfg,
		logger:    logger,
	}
}

// Extract replaces the current itinerary with the one read from images.
// A call made while another is running returns ErrExtractionInProgress and
// leaves the store untouched.
func (s *Service) Extract(ctx context.Context, images []Image) (*itinerary.State, error) {
	ctx, span := otel.Tracer("ExtractionService").Start(ctx, "Extract", trace.WithAttributes(
		attribute.Int("images.count", len(images)),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "Extract"), zap.Int("images", len(images)))
	m := metrics.Get()

	if len(images) == 0 {
		span.SetStatus(codes.Error, "no images")
		return s.store.Snapshot(), models.ErrNoImages
	}
	if !s.gate.TryAcquire(1) {
		l.Warn("Extraction rejected, another one is running")
		span.SetStatus(codes.Error, "extraction in progress")
		return s.store.Snapshot(), models.ErrExtractionInProgress
	}
	defer s.gate.Release(1)

	m.ExtractionRequestsTotal.Add(ctx, 1)
	start := time.Now()
	s.store.BeginLoading()

	data, cached, err := s.run(ctx, images)
	m.ExtractionDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.Bool("cached", cached)))
	if err != nil {
		m.ExtractionFailuresTotal.Add(ctx, 1)
		l.Error("Extraction failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		s.store.Fail(FailureMessage)
		if errors.Is(err, models.ErrExtractionFailed) {
			return s.store.Snapshot(), err
		}
		return s.store.Snapshot(), fmt.Errorf("%w: %w", models.ErrExtractionFailed, err)
	}

	enriched, essentials := s.assigner.Enrich(data)
	st := s.store.Load(enriched, essentials)

	span.SetAttributes(
		attribute.Int("days.count", len(enriched.Days)),
		attribute.Int("items.count", enriched.ItemCount()),
		attribute.Bool("cache.hit", cached),
	)
	span.SetStatus(codes.Ok, "Itinerary extracted")
	l.Info("Extraction completed",
		zap.Bool("cached", cached),
		zap.Duration("elapsed", time.Since(start)))
	return st, nil
}

func (s *Service) run(ctx context.Context, images []Image) (*models.ItineraryData, bool, error) {
	prepared, err := PrepareAll(ctx, images, s.cfg.MaxImageEdge)
	if err != nil {
		return nil, false, fmt.Errorf("failed to prepare images: %w", err)
	}

	key := imagesKey(prepared)
	if s.results != nil {
		if data, ok := s.results.Get(key); ok {
			metrics.Get().ExtractionCacheHitsTotal.Add(ctx, 1)
			return data.Clone(), true, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.extractor.Extract(callCtx, prepared)
	if err != nil {
		return nil, false, err
	}
	data, err := ParsePayload(raw, s.store.NewID)
	if err != nil {
		return nil, false, err
	}

	if s.results != nil {
		s.results.Set(key, data.Clone())
	}
	return data, false, nil
}

func imagesKey(images []Image) string {
	parts := make([][]byte, 0, len(images)*2)
	for _, img := range images {
		parts = append(parts, []byte(img.MIMEType), img.Data)
	}
	return cache.ContentKey(parts...)
}
