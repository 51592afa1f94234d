package healer

import (
	"math"

	"github.com/cualbondi/osmptparser/internal/model"
)

// earthRadiusMeters is the sphere radius haversine uses, per spec.md §4.5.
const earthRadiusMeters = 6371000.0

// haversine returns the great-circle distance between a and b in meters.
func haversine(a, b model.NodeView) float64 {
	lat1, lon1 := deg2rad(a.Lat), deg2rad(a.Lon)
	lat2, lon2 := deg2rad(b.Lat), deg2rad(b.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Min(1, math.Sqrt(h)))
	return earthRadiusMeters * c
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}

// pointDist is the raw-unit Euclidean distance between two nodes' lat/lon,
// used only for relative ordering in sort_ways, never compared against a
// meter tolerance.
func pointDist(a, b model.NodeView) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// edgeDist is the minimum of the four endpoint-to-endpoint pointDists
// between u's and v's endpoints.
func edgeDist(u, v Fragment) float64 {
	uFirst, uLast := u.first(), u.last()
	vFirst, vLast := v.first(), v.last()

	d := pointDist(uFirst, vFirst)
	if x := pointDist(uFirst, vLast); x < d {
		d = x
	}
	if x := pointDist(uLast, vFirst); x < d {
		d = x
	}
	if x := pointDist(uLast, vLast); x < d {
		d = x
	}
	return d
}
