package models

import (
	"encoding/json"
	"strings"
)

// Category classifies an itinerary stop. The declaration order is the cycle
// order used by the editor's category button.
type Category int

const (
	CategoryRestaurant Category = iota
	CategoryCafe
	CategorySight
	CategoryAccommodation
	CategoryAirport
	CategoryTransport
	CategoryActivity
	CategoryOther
)

// Categories lists every category in cycle order.
var Categories = []Category{
	CategoryRestaurant,
	CategoryCafe,
	CategorySight,
	CategoryAccommodation,
	CategoryAirport,
	CategoryTransport,
	CategoryActivity,
	CategoryOther,
}

// String returns the upper-case wire name.
func (c Category) String() string {
	switch c {
	case CategoryRestaurant:
		return "RESTAURANT"
	case CategoryCafe:
		return "CAFE"
	case CategorySight:
		return "SIGHT"
	case CategoryAccommodation:
		return "ACCOMMODATION"
	case CategoryAirport:
		return "AIRPORT"
	case CategoryTransport:
		return "TRANSPORT"
	case CategoryActivity:
		return "ACTIVITY"
	default:
		return "OTHER"
	}
}

// Label returns the Korean display label the extraction prompt and the text
// export use.
func (c Category) Label() string {
	switch c {
	case CategoryRestaurant:
		return "맛집"
	case CategoryCafe:
		return "카페"
	case CategorySight:
		return "명소"
	case CategoryAccommodation:
		return "숙소"
	case CategoryAirport:
		return "공항"
	case CategoryTransport:
		return "이동"
	case CategoryActivity:
		return "활동"
	default:
		return "기타"
	}
}

// Emoji is the badge shown next to the category in the editor table.
func (c Category) Emoji() string {
	switch c {
	case CategoryRestaurant:
		return "🟢"
	case CategoryCafe:
		return "🟡"
	case CategorySight:
		return "📸"
	case CategoryAccommodation:
		return "🏠"
	case CategoryAirport:
		return "✈️"
	case CategoryActivity:
		return "🏃"
	default:
		return "📍"
	}
}

// IsEssential reports whether the category is eligible for essentials
// detection and the larger map marker.
func (c Category) IsEssential() bool {
	return c == CategoryAirport || c == CategoryAccommodation
}

// Next returns the following category in cycle order, wrapping after OTHER.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return Categories[0]
}

// ParseCategory accepts the wire name (any case) or the Korean label.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c.String()) || s == c.Label() {
			return c, true
		}
	}
	return CategoryOther, false
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON never fails: unknown, missing or non-string values become
// CategoryOther so a sloppy extraction payload still loads.
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*c = CategoryOther
		return nil
	}
	*c, _ = ParseCategory(s)
	return nil
}
