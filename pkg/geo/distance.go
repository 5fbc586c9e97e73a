package geo

import "math"

const (
	metersPerDegreeLat = 110946.252133
	metersPerDegreeLon = 111319.490793
)

// maxErrorInMeters is the worst-case distance between a point and the
// center of its decoded zone, per number of extension characters.
var maxErrorInMeters = [...]float64{
	7.49,
	1.39,
	0.251,
	0.0462,
	0.00837,
	0.00154,
	0.000279,
	0.0000514,
	0.0000093,
}

// MaxPrecisionDigits is the largest supported extension length.
const MaxPrecisionDigits = len(maxErrorInMeters) - 1

// MaxErrorInMeters returns the worst-case decode error for a code with the
// given number of extension characters. Out-of-range values are clamped.
func MaxErrorInMeters(extraDigits int) float64 {
	if extraDigits < 0 {
		extraDigits = 0
	}
	if extraDigits > MaxPrecisionDigits {
		extraDigits = MaxPrecisionDigits
	}
	return maxErrorInMeters[extraDigits]
}

// DistanceInMeters approximates the distance between two points with an
// equirectangular projection. It is accurate for the short distances
// involved in checking decode results.
func DistanceInMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLon := lon2 - lon1
	if dLon > 180 {
		dLon -= 360
	} else if dLon < -180 {
		dLon += 360
	}
	dx := dLon * metersPerDegreeLon * math.Cos((lat1+lat2)/2*math.Pi/180)
	dy := (lat2 - lat1) * metersPerDegreeLat
	return math.Sqrt(dx*dx + dy*dy)
}
