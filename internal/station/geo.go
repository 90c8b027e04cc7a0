package station

import (
	"math"
	"strconv"
)

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	// DefaultRadiusKm is the search radius used when a caller gives none.
	DefaultRadiusKm = 50.0

	degToRad = math.Pi / 180
)

// HaversineKm returns the great-circle distance between two points in
// kilometres.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := phi2 - phi1
	dLambda := lon2*degToRad - lon1*degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// roundKm rounds a distance to two decimal places, deciding ties on the
// exact binary value rather than on d*100.
func roundKm(d float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(d, 'f', 2, 64), 64)
	return r
}
