// Package geo computes straight-line distances between itinerary stops and the
// bounding boxes the map projection needs.
package geo

import (
	"math"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

const (
	// EarthRadiusKm is the mean Earth radius.
	EarthRadiusKm = 6371.0

	// RoadFactor scales great-circle distance to a rough driving distance.
	RoadFactor = 1.3
)

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b models.LatLng) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RoadEstimateKm approximates road distance as straight-line distance times RoadFactor.
func RoadEstimateKm(a, b models.LatLng) float64 {
	return HaversineKm(a, b) * RoadFactor
}

// DayTotalDistanceKm sums the road estimate over consecutive stops. A pair
// where either stop lacks coordinates contributes nothing.
func DayTotalDistanceKm(items []models.ItineraryItem) float64 {
	total := 0.0
	for i := 0; i < len(items)-1; i++ {
		from, to := items[i].Coords, items[i+1].Coords
		if from == nil || to == nil {
			continue
		}
		total += RoadEstimateKm(*from, *to)
	}
	return total
}

// Segment is the leg between items[Index] and items[Index+1].
type Segment struct {
	Index  int      `json:"index"`
	FromID string   `json:"fromId"`
	ToID   string   `json:"toId"`
	RoadKm *float64 `json:"roadKm,omitempty"`
}

// SegmentDistances returns one entry per consecutive pair; RoadKm is nil when
// either end has no coordinates.
func SegmentDistances(items []models.ItineraryItem) []Segment {
	if len(items) < 2 {
		return []Segment{}
	}
	segs := make([]Segment, 0, len(items)-1)
	for i := 0; i < len(items)-1; i++ {
		seg := Segment{Index: i, FromID: items[i].ID, ToID: items[i+1].ID}
		if from, to := items[i].Coords, items[i+1].Coords; from != nil && to != nil {
			km := RoadEstimateKm(*from, *to)
			seg.RoadKm = &km
		}
		segs = append(segs, seg)
	}
	return segs
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
