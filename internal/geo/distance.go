// Package geo answers great-circle distance questions on a spherical Earth.
//
// Distance is the only haversine implementation in the module: the store narrows
// candidates with BoundingBoxAround and the services compute exact distances here,
// so ranking never depends on two formulas agreeing.
package geo

import "math"

const EarthRadiusKm = 6371.0

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the haversine distance in kilometers.
func Distance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1, lat2 := toRadians(a.Latitude), toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat, sinLon := math.Sin(dLat/2), math.Sin(dLon/2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func WithinRadius(a, b Coordinate, radiusKm float64) bool {
	return Distance(a, b) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
