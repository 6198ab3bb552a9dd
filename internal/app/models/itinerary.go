package models

import (
	"encoding/json"
	"math"
	"slices"
)

// LatLng is a coordinate pair in degrees. Items carry a *LatLng so a lone
// latitude or longitude cannot be represented.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid mirrors the map layer's notion of a usable point: finite, in range and
// not the (0,0) placeholder extraction emits for unknown places.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	if p.Lat == 0 && p.Lng == 0 {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// ItineraryItem is one stop of the plan.
type ItineraryItem struct {
	ID       string
	Time     string
	Location string
	Category Category
	Memo     string
	Coords   *LatLng
	VotedBy  []string
}

type itemWire struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
	Category Category `json:"category"`
	Memo     string   `json:"memo"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	VotedBy  []string `json:"votedBy"`
}

func (it ItineraryItem) MarshalJSON() ([]byte, error) {
	w := itemWire{
		ID:       it.ID,
		Time:     it.Time,
		Location: it.Location,
		Category: it.Category,
		Memo:     it.Memo,
		VotedBy:  it.VotedBy,
	}
	if w.VotedBy == nil {
		w.VotedBy = []string{}
	}
	if it.Coords != nil {
		lat, lng := it.Coords.Lat, it.Coords.Lng
		w.Lat, w.Lng = &lat, &lng
	}
	return json.Marshal(w)
}

type itemInput struct {
	ID       json.RawMessage `json:"id"`
	Time     json.RawMessage `json:"time"`
	Location json.RawMessage `json:"location"`
	Category json.RawMessage `json:"category"`
	Memo     json.RawMessage `json:"memo"`
	Lat      json.RawMessage `json:"lat"`
	Lng      json.RawMessage `json:"lng"`
	VotedBy  json.RawMessage `json:"votedBy"`
}

// UnmarshalJSON flattens lat/lng into Coords. Fields of the wrong JSON type
// are read leniently: quoted coordinates are parsed, a partial or invalid
// pair is dropped, and numbers in text fields keep their literal text.
// Only a non-object value is an error.
func (it *ItineraryItem) UnmarshalJSON(b []byte) error {
	var in itemInput
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	category := CategoryOther
	if len(in.Category) > 0 {
		_ = json.Unmarshal(in.Category, &category)
	}
	*it = ItineraryItem{
		ID:       looseString(in.ID),
		Time:     looseString(in.Time),
		Location: looseString(in.Location),
		Category: category,
		Memo:     looseString(in.Memo),
		VotedBy:  looseStrings(in.VotedBy),
	}
	lat, latOK := looseFloat(in.Lat)
	lng, lngOK := looseFloat(in.Lng)
	if latOK && lngOK {
		p := LatLng{Lat: lat, Lng: lng}
		if p.Valid() {
			it.Coords = &p
		}
	}
	return nil
}

// HasVote reports whether member already voted for the item.
func (it *ItineraryItem) HasVote(member string) bool {
	return slices.Contains(it.VotedBy, member)
}

// Clone returns a deep copy.
func (it ItineraryItem) Clone() ItineraryItem {
	out := it
	if it.Coords != nil {
		p := *it.Coords
		out.Coords = &p
	}
	out.VotedBy = slices.Clone(it.VotedBy)
	if out.VotedBy == nil {
		out.VotedBy = []string{}
	}
	return out
}

// DayItinerary is one calendar day. Items are kept in visiting order; the
// slice position is the only record of that order.
type DayItinerary struct {
	DayNumber int             `json:"dayNumber"`
	Date      string          `json:"date"`
	Title     string          `json:"title"`
	Theme     string          `json:"theme"`
	Items     []ItineraryItem `json:"items"`
}

type dayInput struct {
	DayNumber json.RawMessage `json:"dayNumber"`
	Date      json.RawMessage `json:"date"`
	Title     json.RawMessage `json:"title"`
	Theme     json.RawMessage `json:"theme"`
	Items     json.RawMessage `json:"items"`
}

// UnmarshalJSON tolerates a quoted or missing dayNumber (left at 0) and skips
// items that are not objects.
func (d *DayItinerary) UnmarshalJSON(b []byte) error {
	var in dayInput
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*d = DayItinerary{
		DayNumber: looseInt(in.DayNumber),
		Date:      looseString(in.Date),
		Title:     looseString(in.Title),
		Theme:     looseString(in.Theme),
		Items:     looseList[ItineraryItem](in.Items),
	}
	return nil
}

// ItineraryData is the whole plan: the scheduled days plus a single shared
// holding pool of unscheduled stops.
type ItineraryData struct {
	Title            string          `json:"title"`
	Days             []DayItinerary  `json:"days"`
	UnscheduledItems []ItineraryItem `json:"unscheduledItems"`
}

type dataInput struct {
	Title            json.RawMessage `json:"title"`
	Days             json.RawMessage `json:"days"`
	UnscheduledItems json.RawMessage `json:"unscheduledItems"`
}

// UnmarshalJSON keeps every day and item that decodes and drops the rest, so
// one malformed entry never costs the whole plan.
func (d *ItineraryData) UnmarshalJSON(b []byte) error {
	var in dataInput
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*d = ItineraryData{
		Title:            looseString(in.Title),
		Days:             looseList[DayItinerary](in.Days),
		UnscheduledItems: looseList[ItineraryItem](in.UnscheduledItems),
	}
	return nil
}

// Clone returns a deep copy so mutations never leak into published snapshots.
func (d *ItineraryData) Clone() *ItineraryData {
	if d == nil {
		return nil
	}
	out := &ItineraryData{
		Title:            d.Title,
		Days:             make([]DayItinerary, len(d.Days)),
		UnscheduledItems: cloneItems(d.UnscheduledItems),
	}
	for i, day := range d.Days {
		day.Items = cloneItems(day.Items)
		out.Days[i] = day
	}
	return out
}

// AllItems returns every item in scan order: days in order, then the pool.
func (d *ItineraryData) AllItems() []ItineraryItem {
	if d == nil {
		return nil
	}
	var all []ItineraryItem
	for _, day := range d.Days {
		all = append(all, day.Items...)
	}
	return append(all, d.UnscheduledItems...)
}

// ItemCount counts scheduled and unscheduled items together.
func (d *ItineraryData) ItemCount() int {
	if d == nil {
		return 0
	}
	n := len(d.UnscheduledItems)
	for _, day := range d.Days {
		n += len(day.Items)
	}
	return n
}

func cloneItems(items []ItineraryItem) []ItineraryItem {
	out := make([]ItineraryItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Essentials is the airport/hotel quick-reference pair. It is seeded once at
// load time and then edited independently of the items it came from.
type Essentials struct {
	Airport string `json:"airport"`
	Hotel   string `json:"hotel"`
}

// Direction is the reorder direction for MoveItem.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ItemField names a user-editable item field.
type ItemField string

const (
	FieldTime     ItemField = "time"
	FieldLocation ItemField = "location"
	FieldCategory ItemField = "category"
	FieldMemo     ItemField = "memo"
)
