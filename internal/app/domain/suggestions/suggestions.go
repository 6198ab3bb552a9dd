// Package suggestions asks the model for calorie-burning activity stops near
// a day's food stops and parks them in the unscheduled pool.
package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
	"github.com/FACorreiaa/go-routeplanner/internal/app/observability/metrics"
)

// ResponseGenerator is satisfied by the go-genai-sdk chat client.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Service produces activity suggestions for one day.
type Service struct {
	gen    ResponseGenerator
	store  *itinerary.Store
	logger *zap.Logger
}

func NewService(gen ResponseGenerator, store *itinerary.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, store: store, logger: logger}
}

type suggestion struct {
	Location string   `json:"location"`
	Memo     string   `json:"memo"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// SuggestActivities adds the suggested stops to the unscheduled pool and
// returns the new state along with the added items.
func (s *Service) SuggestActivities(ctx context.Context, dayIndex int) (*itinerary.State, []models.ItineraryItem, error) {
	ctx, span := otel.Tracer("SuggestionService").Start(ctx, "SuggestActivities", trace.WithAttributes(
		attribute.Int("day.index", dayIndex),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "SuggestActivities"), zap.Int("day", dayIndex))
	metrics.Get().SuggestionRequestsTotal.Add(ctx, 1)

	st := s.store.Snapshot()
	if st.Itinerary == nil {
		return st, nil, models.ErrNoItinerary
	}
	if dayIndex < 0 || dayIndex >= len(st.Itinerary.Days) {
		return st, nil, fmt.Errorf("%w: day %d", models.ErrIndexOutOfRange, dayIndex)
	}
	if s.gen == nil {
		return st, nil, fmt.Errorf("%w: no model client configured", models.ErrSuggestionFailed)
	}

	prompt := buildPrompt(st.Itinerary.Days[dayIndex])
	resp, err := s.gen.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.4),
	})
	if err != nil {
		l.Error("Failed to generate suggestions", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return st, nil, fmt.Errorf("%w: %w", models.ErrSuggestionFailed, err)
	}

	found, err := parseSuggestions(resp.Text())
	if err != nil {
		l.Warn("Unparseable suggestion response", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return st, nil, fmt.Errorf("%w: %w", models.ErrSuggestionFailed, err)
	}

	items := make([]models.ItineraryItem, 0, len(found))
	for _, f := range found {
		loc := strings.TrimSpace(f.Location)
		if loc == "" {
			continue
		}
		item := models.ItineraryItem{
			ID:       s.store.NewID(),
			Location: loc,
			Category: models.CategoryActivity,
			Memo:     strings.TrimSpace(f.Memo),
			VotedBy:  []string{},
		}
		if f.Lat != nil && f.Lng != nil {
			if p := (models.LatLng{Lat: *f.Lat, Lng: *f.Lng}); p.Valid() {
				item.Coords = &p
			}
		}
		items = append(items, item)
	}

	next, err := s.store.AddUnscheduled(items)
	if err != nil {
		span.RecordError(err)
		return next, nil, err
	}
	span.SetAttributes(attribute.Int("suggestions.count", len(items)))
	span.SetStatus(codes.Ok, "Suggestions added")
	l.Info("Activity suggestions added", zap.Int("count", len(items)))
	return next, items, nil
}

func buildPrompt(day models.DayItinerary) string {
	var b strings.Builder
	b.WriteString("다음은 여행 하루 일정입니다. 먹는 장소(맛집, 카페) 사이에 칼로리를 소모할 수 있는 주변 활동 장소")
	b.WriteString("(산책로, 공원, 오름, 등산로 등)를 최대 3곳 추천해주세요.\n")
	b.WriteString(`응답은 JSON 배열로만: [{"location": "", "memo": "", "lat": 0, "lng": 0}]` + "\n\n")
	fmt.Fprintf(&b, "%d일차 %s %s\n", day.DayNumber, day.Date, day.Title)
	for _, it := range day.Items {
		fmt.Fprintf(&b, "- %s %s (%s)", it.Time, it.Location, it.Category.Label())
		if it.Coords != nil {
			fmt.Fprintf(&b, " [%.5f, %.5f]", it.Coords.Lat, it.Coords.Lng)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// parseSuggestions accepts a bare array or an object wrapping one.
func parseSuggestions(raw string) ([]suggestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "```"))
	if raw == "" {
		return nil, fmt.Errorf("empty response")
	}

	decode := func(s string) ([]suggestion, error) {
		var list []suggestion
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return list, nil
		}
		var wrapped struct {
			Activities  []suggestion `json:"activities"`
			Suggestions []suggestion `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(s), &wrapped); err != nil {
			return nil, err
		}
		return append(wrapped.Activities, wrapped.Suggestions...), nil
	}

	list, err := decode(raw)
	if err == nil {
		return list, nil
	}
	repaired, repairErr := jsonrepair.JSONRepair(raw)
	if repairErr != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return decode(repaired)
}
