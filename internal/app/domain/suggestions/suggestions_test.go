package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func loadedStore() *itinerary.Store {
	s := itinerary.NewStore(zap.NewNop())
	s.Load(&models.ItineraryData{
		Title: "제주",
		Days: []models.DayItinerary{{DayNumber: 1, Items: []models.ItineraryItem{
			{ID: "a", Time: "12:00", Location: "흑돼지 거리", Category: models.CategoryRestaurant,
				Coords: &models.LatLng{Lat: 33.51, Lng: 126.52}, VotedBy: []string{}},
		}}},
		UnscheduledItems: []models.ItineraryItem{},
	}, models.Essentials{})
	return s
}

func TestSuggestActivities(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "흑돼지 거리") && strings.Contains(p, "맛집")
	}), mock.Anything).Return(textResponse(`[
		{"location": "사라봉 산책로", "memo": "30분 코스", "lat": 33.52, "lng": 126.54},
		{"location": "  "},
		{"location": "별도봉", "lat": 0, "lng": 0}
	]`), nil)

	store := loadedStore()
	svc := NewService(gen, store, zap.NewNop())

	st, added, err := svc.SuggestActivities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, models.CategoryActivity, added[0].Category)
	assert.NotNil(t, added[0].Coords)
	assert.Nil(t, added[1].Coords, "(0,0) means unknown")
	assert.Len(t, st.Itinerary.UnscheduledItems, 2)
	assert.Len(t, st.Itinerary.Days[0].Items, 1, "suggestions are not scheduled automatically")
	gen.AssertExpectations(t)
}

func TestSuggestActivitiesWrappedAndBroken(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("```json\n{\"activities\": [{\"location\": \"도두봉\",},]}\n```"), nil)

	svc := NewService(gen, loadedStore(), zap.NewNop())
	_, added, err := svc.SuggestActivities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "도두봉", added[0].Location)
}

func TestSuggestActivitiesErrors(t *testing.T) {
	t.Run("no itinerary", func(t *testing.T) {
		svc := NewService(new(MockGenerator), itinerary.NewStore(zap.NewNop()), nil)
		_, _, err := svc.SuggestActivities(context.Background(), 0)
		assert.ErrorIs(t, err, models.ErrNoItinerary)
	})

	t.Run("day out of range", func(t *testing.T) {
		svc := NewService(new(MockGenerator), loadedStore(), nil)
		_, _, err := svc.SuggestActivities(context.Background(), 3)
		assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
	})

	t.Run("no client", func(t *testing.T) {
		svc := NewService(nil, loadedStore(), nil)
		_, _, err := svc.SuggestActivities(context.Background(), 0)
		assert.ErrorIs(t, err, models.ErrSuggestionFailed)
	})

	t.Run("model error leaves pool unchanged", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("503"))
		store := loadedStore()
		svc := NewService(gen, store, nil)

		_, _, err := svc.SuggestActivities(context.Background(), 0)
		assert.ErrorIs(t, err, models.ErrSuggestionFailed)
		assert.Empty(t, store.Snapshot().Itinerary.UnscheduledItems)
	})
}
