package geo

import (
	"github.com/stretchr/testify/assert"
	"math/rand"
	"testing"
)

var tashkent = Coordinate{Latitude: 41.30, Longitude: 69.24}

func randomCoordinate(r *rand.Rand) Coordinate {
	return Coordinate{Latitude: r.Float64()*180 - 90, Longitude: r.Float64()*360 - 180}
}

func Test_Distance_SamePoint_ShouldBeZero(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		c := randomCoordinate(r)
		assert.Equal(t, 0.0, Distance(c, c))
	}
}

func Test_Distance_ShouldBeCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		a, b := randomCoordinate(r), randomCoordinate(r)
		assert.Equal(t, Distance(a, b), Distance(b, a))
	}
}

func Test_Distance_KnownPoints(t *testing.T) {
	seeker := Coordinate{Latitude: 41.32, Longitude: 69.25}
	assert.InDelta(t, 2.376, Distance(tashkent, seeker), 0.001)

	samarkand := Coordinate{Latitude: 39.6542, Longitude: 66.9597}
	assert.InDelta(t, 266, Distance(tashkent, samarkand), 2)

	antipode := Coordinate{Latitude: -41.30, Longitude: 69.24 - 180}
	assert.InDelta(t, 3.14159*EarthRadiusKm, Distance(tashkent, antipode), 1)
}

func Test_WithinRadius(t *testing.T) {
	seeker := Coordinate{Latitude: 41.32, Longitude: 69.25}
	assert.True(t, WithinRadius(tashkent, seeker, 10))
	assert.False(t, WithinRadius(tashkent, seeker, 2))
	assert.True(t, WithinRadius(tashkent, tashkent, 0))
}

func Test_BoundingBox_ShouldContainEveryPointInsideRadius(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	centers := []Coordinate{tashkent, {Latitude: 89.5, Longitude: 10}, {Latitude: 0, Longitude: 179.9}, {Latitude: -60, Longitude: -120}}

	for _, center := range centers {
		for _, radius := range []float64{1, 10, 50, 500} {
			box := BoundingBoxAround(center, radius)
			for i := 0; i < 2000; i++ {
				p := Coordinate{
					Latitude:  center.Latitude + (r.Float64()*2-1)*radius/50,
					Longitude: center.Longitude + (r.Float64()*2-1)*radius/30,
				}
				if p.Latitude > 90 || p.Latitude < -90 || p.Longitude > 180 || p.Longitude < -180 {
					continue
				}
				if WithinRadius(center, p, radius) {
					assert.True(t, box.Contains(p), "center %v radius %v point %v", center, radius, p)
				}
			}
		}
	}
}

func Test_BoundingBox_NearPole_ShouldNotBoundLongitude(t *testing.T) {
	box := BoundingBoxAround(Coordinate{Latitude: 89.9, Longitude: 0}, 50)
	assert.False(t, box.HasLongitude)
	assert.Equal(t, 90.0, box.MaxLatitude)
}

func Test_BoundingBox_AcrossAntimeridian_ShouldNotBoundLongitude(t *testing.T) {
	box := BoundingBoxAround(Coordinate{Latitude: 0, Longitude: 179.95}, 50)
	assert.False(t, box.HasLongitude)
	assert.True(t, box.Contains(Coordinate{Latitude: 0, Longitude: -179.95}))
}
