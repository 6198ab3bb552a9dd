package export

import (
	"strconv"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/geo"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// Map framing defaults.
const (
	DefaultZoom     = 11
	SinglePointZoom = 14
	RouteColor      = "#2563eb"
)

// DefaultCenter is shown when a day has no located stops.
var DefaultCenter = models.LatLng{Lat: 33.3617, Lng: 126.5292}

// VoteTier controls how strongly a marker is emphasised.
type VoteTier string

const (
	VoteTierNone   VoteTier = "none"
	VoteTierLow    VoteTier = "low"
	VoteTierMedium VoteTier = "medium"
	VoteTierHigh   VoteTier = "high"
)

func voteTier(n int) VoteTier {
	switch {
	case n <= 0:
		return VoteTierNone
	case n == 1:
		return VoteTierLow
	case n == 2:
		return VoteTierMedium
	default:
		return VoteTierHigh
	}
}

type Popup struct {
	Location string `json:"location"`
	Time     string `json:"time"`
	Label    string `json:"label"`
	Memo     string `json:"memo,omitempty"`
}

type Marker struct {
	ItemID   string          `json:"itemId"`
	Position models.LatLng   `json:"position"`
	Category models.Category `json:"category"`
	Color    string          `json:"color"`
	Size     int             `json:"size"`
	Glyph    string          `json:"glyph"`
	Raised   bool            `json:"raised"`
	Votes    int             `json:"votes"`
	VoteTier VoteTier        `json:"voteTier"`
	Popup    Popup           `json:"popup"`
}

// MapView is everything a tile map needs to draw one day.
type MapView struct {
	Center     models.LatLng    `json:"center"`
	Zoom       int              `json:"zoom"`
	Bounds     *geo.BoundingBox `json:"bounds,omitempty"`
	Markers    []Marker         `json:"markers"`
	Polyline   []models.LatLng  `json:"polyline,omitempty"`
	RouteColor string           `json:"routeColor,omitempty"`
	Segments   []geo.Segment    `json:"segments"`
	TotalKm    float64          `json:"totalKm"`
}

// MarkerColor is the fill colour of a category's map marker.
func MarkerColor(c models.Category) string {
	switch c {
	case models.CategoryRestaurant:
		return "#22c55e"
	case models.CategoryCafe:
		return "#facc15"
	case models.CategorySight:
		return "#3b82f6"
	case models.CategoryAccommodation:
		return "#4f46e5"
	case models.CategoryAirport:
		return "#f97316"
	case models.CategoryActivity:
		return "#ea580c"
	default:
		return "#94a3b8"
	}
}

func markerSize(c models.Category) int {
	switch {
	case c.IsEssential():
		return 36
	case c == models.CategoryActivity:
		return 30
	default:
		return 26
	}
}

// glyph returns the marker label; index is the position among located stops.
func glyph(c models.Category, index int) string {
	switch c {
	case models.CategoryAirport:
		return "🛫"
	case models.CategoryAccommodation:
		return "🏠"
	case models.CategoryActivity:
		return "🏃"
	default:
		return strconv.Itoa(index + 1)
	}
}

// MapDay projects a day onto map markers. Stops without coordinates are
// left off the map; numbering counts located stops only.
func MapDay(day models.DayItinerary) MapView {
	view := MapView{
		Center:   DefaultCenter,
		Zoom:     DefaultZoom,
		Markers:  []Marker{},
		Segments: geo.SegmentDistances(day.Items),
		TotalKm:  geo.DayTotalDistanceKm(day.Items),
	}

	var points []models.LatLng
	for _, it := range day.Items {
		if it.Coords == nil {
			continue
		}
		pos := *it.Coords
		view.Markers = append(view.Markers, Marker{
			ItemID:   it.ID,
			Position: pos,
			Category: it.Category,
			Color:    MarkerColor(it.Category),
			Size:     markerSize(it.Category),
			Glyph:    glyph(it.Category, len(points)),
			Raised:   it.Category.IsEssential() || it.Category == models.CategoryActivity,
			Votes:    len(it.VotedBy),
			VoteTier: voteTier(len(it.VotedBy)),
			Popup: Popup{
				Location: it.Location,
				Time:     it.Time,
				Label:    it.Category.Label(),
				Memo:     it.Memo,
			},
		})
		points = append(points, pos)
	}

	switch len(points) {
	case 0:
	case 1:
		view.Center = points[0]
		view.Zoom = SinglePointZoom
	default:
		view.Polyline = points
		view.RouteColor = RouteColor
		if box, ok := geo.Bounds(points); ok {
			view.Bounds = &box
		}
		view.Center = geo.Center(points, DefaultCenter)
	}
	return view
}
