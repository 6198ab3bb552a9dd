package geo

import (
	"math"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// BoundingBox is the south-west / north-east corners of a set of points.
type BoundingBox struct {
	SouthWest models.LatLng `json:"southWest"`
	NorthEast models.LatLng `json:"northEast"`
}

// Center calculates the average of the valid points, or fallback if none are valid.
func Center(points []models.LatLng, fallback models.LatLng) models.LatLng {
	var latSum, lngSum float64
	n := 0
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		latSum += p.Lat
		lngSum += p.Lng
		n++
	}
	if n == 0 {
		return fallback
	}
	return models.LatLng{Lat: latSum / float64(n), Lng: lngSum / float64(n)}
}

// Bounds returns the bounding box of the valid points. ok is false when there
// are none.
func Bounds(points []models.LatLng) (box BoundingBox, ok bool) {
	minLat, maxLat := math.MaxFloat64, -math.MaxFloat64
	minLng, maxLng := math.MaxFloat64, -math.MaxFloat64

	for _, p := range points {
		if !p.Valid() {
			continue
		}
		ok = true
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}
	if !ok {
		return BoundingBox{}, false
	}

	return BoundingBox{
		SouthWest: models.LatLng{Lat: minLat, Lng: minLng},
		NorthEast: models.LatLng{Lat: maxLat, Lng: maxLng},
	}, true
}
