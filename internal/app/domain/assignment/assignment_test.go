package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

func TestDetectEssentials(t *testing.T) {
	a := NewAssigner(Options{}, nil)

	tests := []struct {
		name string
		data *models.ItineraryData
		want models.Essentials
	}{
		{
			name: "first match by category wins",
			data: &models.ItineraryData{Days: []models.DayItinerary{{Items: []models.ItineraryItem{
				{Location: "City Hall", Category: models.CategoryOther},
				{Location: "Gimpo", Category: models.CategoryAirport},
				{Location: "Jeju", Category: models.CategoryAirport},
			}}}},
			want: models.Essentials{Airport: "Gimpo"},
		},
		{
			name: "keyword match in name",
			data: &models.ItineraryData{Days: []models.DayItinerary{{Items: []models.ItineraryItem{
				{Location: "김포공항 국내선", Category: models.CategoryTransport},
				{Location: "롯데호텔 제주", Category: models.CategoryOther},
			}}}},
			want: models.Essentials{Airport: "김포공항 국내선", Hotel: "롯데호텔 제주"},
		},
		{
			name: "unscheduled pool is scanned after days",
			data: &models.ItineraryData{
				Days: []models.DayItinerary{
					{Items: []models.ItineraryItem{{Location: "해변", Category: models.CategorySight}}},
					{Items: []models.ItineraryItem{{Location: "게스트하우스", Category: models.CategoryAccommodation}}},
				},
				UnscheduledItems: []models.ItineraryItem{
					{Location: "신라호텔", Category: models.CategoryAccommodation},
					{Location: "제주공항", Category: models.CategoryOther},
				},
			},
			want: models.Essentials{Airport: "제주공항", Hotel: "게스트하우스"},
		},
		{
			name: "no match",
			data: &models.ItineraryData{Days: []models.DayItinerary{{Items: []models.ItineraryItem{
				{Location: "해변", Category: models.CategorySight},
			}}}},
			want: models.Essentials{},
		},
		{
			name: "nil data",
			data: nil,
			want: models.Essentials{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.DetectEssentials(tc.data))
		})
	}
}

func TestSeedVotesFromPresets(t *testing.T) {
	a := NewAssigner(Options{Presets: []models.MemberPreset{
		{Name: "A", Keywords: []string{"museum"}},
		{Name: "B", Keywords: []string{"park"}},
		{Name: "C", Keywords: []string{"오름", "숲"}},
	}}, nil)

	data := &models.ItineraryData{
		Days: []models.DayItinerary{{Items: []models.ItineraryItem{
			{ID: "1", Location: "City Museum Park", VotedBy: []string{}},
			{ID: "2", Location: "새별오름", VotedBy: []string{"B"}},
			{ID: "3", Location: "Harbor", VotedBy: []string{}},
		}}},
		UnscheduledItems: []models.ItineraryItem{
			{ID: "4", Location: norm.NFD.String("사려니숲길"), VotedBy: []string{"C"}},
		},
	}

	seeded := a.SeedVotesFromPresets(data)
	require.NotNil(t, seeded)

	items := seeded.Days[0].Items
	assert.Equal(t, []string{"A", "B"}, items[0].VotedBy, "members vote independently")
	assert.Equal(t, []string{"B", "C"}, items[1].VotedBy)
	assert.Empty(t, items[2].VotedBy)
	assert.Equal(t, []string{"C"}, seeded.UnscheduledItems[0].VotedBy, "no duplicate vote; NFD text still matches")
	assert.Empty(t, data.Days[0].Items[0].VotedBy, "input is not modified")
}

func TestSeedVotesCaseSensitive(t *testing.T) {
	a := NewAssigner(Options{
		Presets:          []models.MemberPreset{{Name: "A", Keywords: []string{"museum"}}},
		CaseSensitiveMem: true,
	}, nil)

	data := &models.ItineraryData{Days: []models.DayItinerary{{Items: []models.ItineraryItem{
		{ID: "1", Location: "City Museum"},
		{ID: "2", Location: "city museum"},
	}}}}

	seeded := a.SeedVotesFromPresets(data)
	assert.Empty(t, seeded.Days[0].Items[0].VotedBy)
	assert.Equal(t, []string{"A"}, seeded.Days[0].Items[1].VotedBy)
}

func TestEnrichUsesSeededData(t *testing.T) {
	a := NewAssigner(Options{
		Presets:    []models.MemberPreset{{Name: "A", Keywords: []string{"호텔"}}, {Name: "empty"}},
		Essentials: models.EssentialKeywords{Airport: []string{"Terminal"}},
	}, nil)

	data := &models.ItineraryData{Days: []models.DayItinerary{{Items: []models.ItineraryItem{
		{ID: "1", Location: "Ferry Terminal", Category: models.CategoryTransport},
		{ID: "2", Location: "해비치호텔", Category: models.CategoryAccommodation},
	}}}}

	seeded, essentials := a.Enrich(data)
	assert.Equal(t, models.Essentials{Airport: "Ferry Terminal", Hotel: "해비치호텔"}, essentials)
	assert.Equal(t, []string{"A"}, seeded.Days[0].Items[1].VotedBy)
	assert.Equal(t, []string{"A", "empty"}, a.Members())
}
