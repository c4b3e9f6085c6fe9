package geo

import "math"

// Box is a latitude/longitude rectangle. When HasLongitude is false the box spans
// every meridian (polar caps, antimeridian crossings).
type Box struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	HasLongitude bool
}

// BoundingBoxAround returns a rectangle that contains every point within radiusKm of center.
// It may contain more; callers must still check Distance.
func BoundingBoxAround(center Coordinate, radiusKm float64) Box {
	// 1mm of slack keeps points lying exactly on the circle inside the box.
	angular := (radiusKm + 1e-6) / EarthRadiusKm
	latDelta := toDegrees(angular)

	box := Box{
		MinLatitude: math.Max(center.Latitude-latDelta, -90),
		MaxLatitude: math.Min(center.Latitude+latDelta, 90),
	}

	if box.MinLatitude <= -90 || box.MaxLatitude >= 90 {
		return box
	}

	sinAngular := math.Sin(angular)
	cosLat := math.Cos(toRadians(center.Latitude))
	if angular >= math.Pi/2 || sinAngular >= cosLat {
		return box
	}

	lonDelta := toDegrees(math.Asin(sinAngular / cosLat))
	minLon, maxLon := center.Longitude-lonDelta, center.Longitude+lonDelta
	if minLon < -180 || maxLon > 180 {
		return box
	}

	box.MinLongitude, box.MaxLongitude, box.HasLongitude = minLon, maxLon, true
	return box
}

func (b Box) Contains(c Coordinate) bool {
	if c.Latitude < b.MinLatitude || c.Latitude > b.MaxLatitude {
		return false
	}
	if !b.HasLongitude {
		return true
	}
	return c.Longitude >= b.MinLongitude && c.Longitude <= b.MaxLongitude
}
