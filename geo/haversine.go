package geo

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two WGS84
// coordinates, computed with the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether the device coordinate lies within
// radiusMeters of the reference coordinate. A distance exactly equal to the
// radius passes.
func WithinRadius(refLat, refLng, devLat, devLng, radiusMeters float64) bool {
	return Distance(refLat, refLng, devLat, devLng) <= radiusMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
