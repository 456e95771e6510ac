package utils

import (
	"math"

	"github.com/location-quest/internal/domain"
)

const earthRadiusKm = 6371.0

// ProximityThresholdKm is how close a route must pass to collect a location.
const ProximityThresholdKm = 0.05

// HaversineDistance returns the great-circle distance in kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func Distance(a, b domain.Coordinate) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathDistance sums the legs between consecutive points.
func PathDistance(points []domain.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// IsNear reports whether any route point lies within thresholdKm of target.
func IsNear(target domain.Coordinate, route []domain.Coordinate, thresholdKm float64) bool {
	for _, p := range route {
		if Distance(target, p) <= thresholdKm {
			return true
		}
	}
	return false
}

// ClosestPoint returns the index of the route point nearest to target and
// its distance. Ties keep the earliest point; an empty route yields -1.
func ClosestPoint(target domain.Coordinate, route []domain.Coordinate) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range route {
		if d := Distance(target, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// ValidateCoordinates reports whether lat/lon are within WGS84 ranges.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// InBounds reports whether c lies inside box, edges included.
func InBounds(c domain.Coordinate, box domain.BoundingBox) bool {
	return c.Lat >= box.MinLat && c.Lat <= box.MaxLat && c.Lon >= box.MinLon && c.Lon <= box.MaxLon
}
