package helpers

import (
	"math"

	"github.com/tidwall/geodesic"
)

const metersPerDegreeLat = 110574.0
const metersPerDegreeLonEquator = 111320.0

// GeodesicDistance returns the WGS84 ellipsoidal distance in meters
// between two coordinates.
func GeodesicDistance(lat1, lon1, lat2, lon2 float64) float64 {
	var meters float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &meters, nil, nil)
	return meters
}

// BoundingBox returns the lat/lon deltas that enclose a circle of the
// given radius (meters) centered at lat. The longitude delta degrades
// near the poles, where the box degenerates to the full longitude range.
func BoundingBox(lat float64, radiusMeters float64) (deltaLat float64, deltaLon float64) {
	deltaLat = radiusMeters / metersPerDegreeLat

	metersPerDegreeLon := metersPerDegreeLonEquator * math.Cos(lat*math.Pi/180)
	if metersPerDegreeLon < 1 {
		return deltaLat, 180
	}

	return deltaLat, radiusMeters / metersPerDegreeLon
}
