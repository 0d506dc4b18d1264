package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeodesicDistance(t *testing.T) {
	t.Run("ZeroDistanceForSamePoint", func(t *testing.T) {
		d := GeodesicDistance(-12.0464, -77.0428, -12.0464, -77.0428)
		assert.InDelta(t, 0, d, 0.001)
	})

	t.Run("KnownPairWithinTolerance", func(t *testing.T) {
		// Plaza Mayor de Lima to Miraflores, roughly 8.4 km.
		d := GeodesicDistance(-12.0464, -77.0428, -12.1211, -77.0297)
		assert.InDelta(t, 8400, d, 200)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := GeodesicDistance(-12.04, -77.04, -12.05, -77.03)
		b := GeodesicDistance(-12.05, -77.03, -12.04, -77.04)
		assert.InDelta(t, a, b, 0.001)
	})
}

func TestBoundingBox(t *testing.T) {
	t.Run("ContainsPointsWithinRadius", func(t *testing.T) {
		lat, lon := -12.0464, -77.0428
		radius := 1500.0
		deltaLat, deltaLon := BoundingBox(lat, radius)

		// Points just inside the radius on each axis must fall inside the box.
		offsets := []struct{ dLat, dLon float64 }{
			{deltaLat * 0.9, 0},
			{-deltaLat * 0.9, 0},
			{0, deltaLon * 0.9},
			{0, -deltaLon * 0.9},
		}
		for _, off := range offsets {
			pLat := lat + off.dLat
			pLon := lon + off.dLon
			if GeodesicDistance(lat, lon, pLat, pLon) <= radius {
				assert.True(t, pLat >= lat-deltaLat && pLat <= lat+deltaLat)
				assert.True(t, pLon >= lon-deltaLon && pLon <= lon+deltaLon)
			}
		}
	})

	t.Run("BoxEdgeApproximatesRadius", func(t *testing.T) {
		lat := -12.0464
		deltaLat, deltaLon := BoundingBox(lat, 1000)
		assert.InDelta(t, 1000, GeodesicDistance(lat, 0, lat+deltaLat, 0), 10)
		assert.InDelta(t, 1000, GeodesicDistance(lat, 0, lat, deltaLon), 10)
	})

	t.Run("PoleGuardCoversAllLongitudes", func(t *testing.T) {
		_, deltaLon := BoundingBox(90, 1000)
		assert.Equal(t, 180.0, deltaLon)
	})
}
