package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

func at(lat, lng float64) *models.LatLng {
	return &models.LatLng{Lat: lat, Lng: lng}
}

func TestText(t *testing.T) {
	data := &models.ItineraryData{
		Days: []models.DayItinerary{
			{DayNumber: 1, Date: "5월 1일", Title: "동쪽 해안", Theme: "바다", Items: []models.ItineraryItem{
				{Time: "09:00", Location: "제주공항", Category: models.CategoryAirport},
				{Time: "12:00", Location: "해녀의 부엌", Category: models.CategoryRestaurant, Memo: "예약 필수"},
				{Time: "15:00", Location: "카페 델문도", Category: models.CategoryCafe},
			}},
			{DayNumber: 2, Date: "5월 2일", Items: []models.ItineraryItem{}},
		},
		UnscheduledItems: []models.ItineraryItem{{Location: "보관 장소"}},
	}

	want := "✈️ 나의 여행 일정\n\n" +
		"📅 1일차: 5월 1일 - 동쪽 해안\n" +
		"테마: 바다\n" +
		"시간 | 장소 | 구분 | 꿀팁 및 메모\n" +
		"---|---|---|---\n" +
		"09:00 | 제주공항 | 📍 공항 | -\n" +
		"12:00 | 해녀의 부엌 | 🟢 맛집 | 예약 필수\n" +
		"15:00 | 카페 델문도 | 🟡 카페 | -\n" +
		"\n" +
		"📅 2일차: 5월 2일\n" +
		"시간 | 장소 | 구분 | 꿀팁 및 메모\n" +
		"---|---|---|---\n" +
		"\n"

	assert.Equal(t, want, Text(data))
	assert.Empty(t, Text(nil))

	data.Title = "제주 여행"
	assert.Contains(t, Text(data), "✈️ 제주 여행\n")
	assert.NotContains(t, Text(data), "보관 장소")
}

func TestMapDayFraming(t *testing.T) {
	tests := []struct {
		name        string
		items       []models.ItineraryItem
		wantCenter  models.LatLng
		wantZoom    int
		wantMarkers int
		wantLine    bool
	}{
		{
			name:        "no located stops",
			items:       []models.ItineraryItem{{ID: "a"}},
			wantCenter:  DefaultCenter,
			wantZoom:    DefaultZoom,
			wantMarkers: 0,
		},
		{
			name:        "single point",
			items:       []models.ItineraryItem{{ID: "a", Coords: at(33.5, 126.5)}, {ID: "b"}},
			wantCenter:  models.LatLng{Lat: 33.5, Lng: 126.5},
			wantZoom:    SinglePointZoom,
			wantMarkers: 1,
		},
		{
			name: "route",
			items: []models.ItineraryItem{
				{ID: "a", Coords: at(33.0, 126.0)},
				{ID: "b"},
				{ID: "c", Coords: at(34.0, 127.0)},
			},
			wantCenter:  models.LatLng{Lat: 33.5, Lng: 126.5},
			wantZoom:    DefaultZoom,
			wantMarkers: 2,
			wantLine:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := MapDay(models.DayItinerary{Items: tc.items})
			assert.Equal(t, tc.wantCenter, v.Center)
			assert.Equal(t, tc.wantZoom, v.Zoom)
			assert.Len(t, v.Markers, tc.wantMarkers)
			if tc.wantLine {
				assert.Len(t, v.Polyline, tc.wantMarkers)
				require.NotNil(t, v.Bounds)
				assert.Equal(t, models.LatLng{Lat: 33, Lng: 126}, v.Bounds.SouthWest)
				assert.Equal(t, RouteColor, v.RouteColor)
			} else {
				assert.Empty(t, v.Polyline)
				assert.Nil(t, v.Bounds)
			}
		})
	}
}

func TestMapDayMarkers(t *testing.T) {
	day := models.DayItinerary{Items: []models.ItineraryItem{
		{ID: "1", Location: "제주공항", Category: models.CategoryAirport, Coords: at(33.51, 126.49)},
		{ID: "2", Location: "흑돼지", Category: models.CategoryRestaurant, Coords: at(33.50, 126.52),
			VotedBy: []string{"A"}},
		{ID: "3", Location: "사라봉", Category: models.CategoryActivity, Coords: at(33.52, 126.54),
			VotedBy: []string{"A", "B"}},
		{ID: "4", Location: "동문시장", Category: models.CategorySight, Coords: at(33.51, 126.52),
			VotedBy: []string{"A", "B", "C", "D"}, Memo: "야시장"},
		{ID: "5", Location: "호텔", Category: models.CategoryAccommodation, Coords: at(33.49, 126.49)},
	}}

	v := MapDay(day)
	require.Len(t, v.Markers, 5)

	type want struct {
		color string
		size  int
		glyph string
		tier  VoteTier
	}
	expected := []want{
		{"#f97316", 36, "🛫", VoteTierNone},
		{"#22c55e", 26, "2", VoteTierLow},
		{"#ea580c", 30, "🏃", VoteTierMedium},
		{"#3b82f6", 26, "4", VoteTierHigh},
		{"#4f46e5", 36, "🏠", VoteTierNone},
	}
	for i, w := range expected {
		m := v.Markers[i]
		assert.Equal(t, w.color, m.Color, "marker %d", i)
		assert.Equal(t, w.size, m.Size, "marker %d", i)
		assert.Equal(t, w.glyph, m.Glyph, "marker %d", i)
		assert.Equal(t, w.tier, m.VoteTier, "marker %d", i)
	}
	assert.Equal(t, Popup{Location: "동문시장", Time: "", Label: "명소", Memo: "야시장"}, v.Markers[3].Popup)
	assert.True(t, v.Markers[0].Raised)
	assert.False(t, v.Markers[1].Raised)
	assert.Len(t, v.Segments, 4)
	assert.Greater(t, v.TotalKm, 0.0)
}

func TestMarkerColorDefault(t *testing.T) {
	assert.Equal(t, "#94a3b8", MarkerColor(models.CategoryTransport))
	assert.Equal(t, "#94a3b8", MarkerColor(models.CategoryOther))
}

func TestRouteStops(t *testing.T) {
	day := models.DayItinerary{Items: []models.ItineraryItem{
		{ID: "1", Category: models.CategoryAirport, Coords: at(33.51, 126.49)},
		{ID: "2", Category: models.CategoryCafe, Coords: at(33.50, 126.52)},
		{ID: "3", Category: models.CategoryTransport},
		{ID: "4", Category: models.CategoryActivity},
	}}

	stops := RouteStops(day)
	require.Len(t, stops, 4)

	assert.Equal(t, []string{"bg-orange-500", "bg-yellow-400", "bg-slate-400", "bg-orange-600"},
		[]string{stops[0].ColorClass, stops[1].ColorClass, stops[2].ColorClass, stops[3].ColorClass})
	assert.Equal(t, []bool{true, false, false, true},
		[]bool{stops[0].Highlight, stops[1].Highlight, stops[2].Highlight, stops[3].Highlight})
	assert.True(t, stops[2].Connector)
	assert.False(t, stops[3].Connector)
	require.NotNil(t, stops[0].RoadKm)
	assert.Nil(t, stops[1].RoadKm, "next stop has no coordinates")
	assert.Equal(t, "3", stops[2].Glyph)

	assert.Empty(t, RouteStops(models.DayItinerary{}))
}
