package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCycle(t *testing.T) {
	for _, start := range Categories {
		c := start
		for range Categories {
			c = c.Next()
		}
		assert.Equal(t, start, c, "cycling %d times must return to %s", len(Categories), start)
	}
	assert.Equal(t, CategoryRestaurant, CategoryOther.Next())
	assert.Equal(t, CategoryCafe, CategoryRestaurant.Next())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"AIRPORT", CategoryAirport, true},
		{"airport", CategoryAirport, true},
		{"공항", CategoryAirport, true},
		{" 숙소 ", CategoryAccommodation, true},
		{"활동", CategoryActivity, true},
		{"spaceport", CategoryOther, false},
		{"", CategoryOther, false},
	}
	for _, tc := range tests {
		got, ok := ParseCategory(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
	}
}

func TestItemUnmarshalNormalizes(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantCategory Category
		wantCoords   *LatLng
	}{
		{
			name:         "korean label and full pair",
			payload:      `{"id":"a","location":"제주공항","category":"공항","lat":33.5,"lng":126.49}`,
			wantCategory: CategoryAirport,
			wantCoords:   &LatLng{Lat: 33.5, Lng: 126.49},
		},
		{
			name:         "unknown category",
			payload:      `{"id":"b","category":"spaceport"}`,
			wantCategory: CategoryOther,
		},
		{
			name:         "missing category",
			payload:      `{"id":"c"}`,
			wantCategory: CategoryOther,
		},
		{
			name:         "numeric category",
			payload:      `{"id":"d","category":3}`,
			wantCategory: CategoryOther,
		},
		{
			name:         "lone latitude is dropped",
			payload:      `{"id":"e","category":"CAFE","lat":33.5}`,
			wantCategory: CategoryCafe,
		},
		{
			name:         "zero pair is dropped",
			payload:      `{"id":"f","category":"CAFE","lat":0,"lng":0}`,
			wantCategory: CategoryCafe,
		},
		{
			name:         "quoted pair is parsed",
			payload:      `{"id":"h","category":"SIGHT","lat":" 33.5","lng":"126.25"}`,
			wantCategory: CategorySight,
			wantCoords:   &LatLng{Lat: 33.5, Lng: 126.25},
		},
		{
			name:         "non-numeric latitude drops the pair",
			payload:      `{"id":"i","category":"SIGHT","lat":"north","lng":126.25}`,
			wantCategory: CategorySight,
		},
		{
			name:         "out of range pair is dropped",
			payload:      `{"id":"g","category":"CAFE","lat":133.5,"lng":126}`,
			wantCategory: CategoryCafe,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var it ItineraryItem
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &it))
			assert.Equal(t, tc.wantCategory, it.Category)
			assert.Equal(t, tc.wantCoords, it.Coords)
		})
	}
}

func TestItemMarshalFlattensCoords(t *testing.T) {
	it := ItineraryItem{ID: "a", Category: CategorySight, Coords: &LatLng{Lat: 33.1, Lng: 126.2}}
	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","time":"","location":"","category":"SIGHT","memo":"","lat":33.1,"lng":126.2,"votedBy":[]}`, string(b))

	it.Coords = nil
	b, err = json.Marshal(it)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "lat")
}

func TestCloneIsDeep(t *testing.T) {
	orig := &ItineraryData{
		Title: "trip",
		Days: []DayItinerary{{DayNumber: 1, Items: []ItineraryItem{
			{ID: "a", VotedBy: []string{"A"}, Coords: &LatLng{Lat: 1, Lng: 1}},
		}}},
		UnscheduledItems: []ItineraryItem{{ID: "b"}},
	}

	cp := orig.Clone()
	cp.Days[0].Items[0].VotedBy[0] = "Z"
	cp.Days[0].Items[0].Coords.Lat = 9
	cp.Days[0].Items = append(cp.Days[0].Items, ItineraryItem{ID: "c"})
	cp.UnscheduledItems[0].Location = "changed"

	assert.Equal(t, "A", orig.Days[0].Items[0].VotedBy[0])
	assert.Equal(t, 1.0, orig.Days[0].Items[0].Coords.Lat)
	assert.Len(t, orig.Days[0].Items, 1)
	assert.Empty(t, orig.UnscheduledItems[0].Location)
	assert.Equal(t, 2, orig.ItemCount())
	assert.Equal(t, 3, cp.ItemCount())
}

func TestDayUnmarshalIsLenient(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantNum   int
		wantItems int
	}{
		{name: "quoted day number", payload: `{"dayNumber":"3","items":[{"id":"a"}]}`, wantNum: 3, wantItems: 1},
		{name: "word day number", payload: `{"dayNumber":"셋째 날","items":[]}`, wantNum: 0, wantItems: 0},
		{name: "non-object items are skipped", payload: `{"dayNumber":1,"items":[1,"x",{"id":"b"}]}`, wantNum: 1, wantItems: 1},
		{name: "items not an array", payload: `{"dayNumber":1,"items":"none"}`, wantNum: 1, wantItems: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var day DayItinerary
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &day))
			assert.Equal(t, tc.wantNum, day.DayNumber)
			assert.Len(t, day.Items, tc.wantItems)
		})
	}
}
