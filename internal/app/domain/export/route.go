package export

import (
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/geo"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// RouteStop is one node of the horizontal route strip.
type RouteStop struct {
	ItemID     string          `json:"itemId"`
	Index      int             `json:"index"`
	Time       string          `json:"time"`
	Location   string          `json:"location"`
	Category   models.Category `json:"category"`
	Label      string          `json:"label"`
	ColorClass string          `json:"colorClass"`
	Glyph      string          `json:"glyph"`
	Highlight  bool            `json:"highlight"`
	Connector  bool            `json:"connector"`
	RoadKm     *float64        `json:"roadKm,omitempty"`
}

// ColorClass is the route-visualiser colour utility class for a category.
func ColorClass(c models.Category) string {
	switch c {
	case models.CategoryRestaurant:
		return "bg-green-500"
	case models.CategoryCafe:
		return "bg-yellow-400"
	case models.CategorySight:
		return "bg-blue-500"
	case models.CategoryAccommodation:
		return "bg-indigo-600"
	case models.CategoryAirport:
		return "bg-orange-500"
	case models.CategoryActivity:
		return "bg-orange-600"
	default:
		return "bg-slate-400"
	}
}

// RouteStops lists every stop of the day in order, located or not. A stop
// has a connector to the next one unless it is last; RoadKm is the estimate
// to the next stop when both ends are located.
func RouteStops(day models.DayItinerary) []RouteStop {
	stops := make([]RouteStop, len(day.Items))
	for i, it := range day.Items {
		stops[i] = RouteStop{
			ItemID:     it.ID,
			Index:      i,
			Time:       it.Time,
			Location:   it.Location,
			Category:   it.Category,
			Label:      it.Category.Label(),
			ColorClass: ColorClass(it.Category),
			Glyph:      glyph(it.Category, i),
			Highlight:  it.Category.IsEssential() || it.Category == models.CategoryActivity,
			Connector:  i < len(day.Items)-1,
		}
	}
	for _, seg := range geo.SegmentDistances(day.Items) {
		stops[seg.Index].RoadKm = seg.RoadKm
	}
	return stops
}
