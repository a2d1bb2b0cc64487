package geo

import "math"

// earthRadiusKM is the mean earth radius used by the spherical
// approximation.
const earthRadiusKM = 6371.0

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lon float64
}

// DistanceKM computes the haversine great-circle distance in kilometers
// between two points. Returns +Inf if either coordinate is NaN so an
// unresolved location never passes a radius test.
func DistanceKM(a, b Coord) float64 {
	if math.IsNaN(a.Lat) || math.IsNaN(a.Lon) || math.IsNaN(b.Lat) || math.IsNaN(b.Lon) {
		return math.Inf(1)
	}

	rlat1 := a.Lat * math.Pi / 180
	rlat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// WithinRadius reports whether the two points are at most radiusKM
// apart.
func WithinRadius(a, b Coord, radiusKM float64) bool {
	return DistanceKM(a, b) <= radiusKM
}
