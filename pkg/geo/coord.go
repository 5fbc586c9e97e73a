package geo

import (
	"math"

	"github.com/pkg/errors"
)

// Scale factors between microdegrees and the fractional units used inside
// zones. Longitude fractions are four times finer than latitude fractions so
// that a quarter-microdegree x offset is still an integer.
const (
	MicroDegree      = 1000000
	LatFractions     = 810000
	LonFractions     = 3240000
	latFactorPerDeg  = LatFractions * MicroDegree
	lonFactorPerDeg  = LonFractions * MicroDegree
	degrees360Micro  = 360 * MicroDegree
	degrees180Micro  = 180 * MicroDegree
	degrees90Micro   = 90 * MicroDegree
	maxLonMicroFloat = 180.0
)

// ErrBadCoordinate is returned for NaN or infinite input coordinates.
var ErrBadCoordinate = errors.New("coordinate is not a finite number")

// Coord32 is a point in integer microdegrees.
type Coord32 struct {
	Lat int
	Lon int
}

// FractionalCoord is a point in microdegrees plus a sub-microdegree remainder.
// FracLat is in 1/810000 and FracLon in 1/3240000 of a microdegree.
type FractionalCoord struct {
	Coord32
	FracLat int
	FracLon int
}

// ToFractional converts degrees to a FractionalCoord. Latitude is clamped to
// [-90,90] and longitude is wrapped into [-180,180).
func ToFractional(latDeg, lonDeg float64) (FractionalCoord, error) {
	if math.IsNaN(latDeg) || math.IsNaN(lonDeg) || math.IsInf(latDeg, 0) || math.IsInf(lonDeg, 0) {
		return FractionalCoord{}, ErrBadCoordinate
	}
	var fc FractionalCoord

	if latDeg < -90 {
		latDeg = -90
	} else if latDeg > 90 {
		latDeg = 90
	}
	f := math.Floor((latDeg+90)*latFactorPerDeg + 0.1)
	fc.Lat = int(f / LatFractions)
	fc.FracLat = int(f - float64(fc.Lat)*LatFractions)
	fc.Lat -= degrees90Micro

	lonDeg -= 360 * math.Floor(lonDeg/360)
	f = math.Floor(lonDeg*lonFactorPerDeg + 0.1)
	fc.Lon = int(f / LonFractions)
	fc.FracLon = int(f - float64(fc.Lon)*LonFractions)
	if fc.Lon >= degrees180Micro {
		fc.Lon -= degrees360Micro
	}
	return fc, nil
}

// Y returns the latitude in absolute fractional units.
func (fc FractionalCoord) Y() int64 {
	return int64(fc.Lat)*LatFractions + int64(fc.FracLat)
}

// X returns the longitude in absolute fractional units.
func (fc FractionalCoord) X() int64 {
	return int64(fc.Lon)*LonFractions + int64(fc.FracLon)
}

// FromUnits builds a FractionalCoord from absolute fractional units.
func FromUnits(y, x int64) FractionalCoord {
	var fc FractionalCoord
	fc.Lat, fc.FracLat = floorDivMod(y, LatFractions)
	fc.Lon, fc.FracLon = floorDivMod(x, LonFractions)
	return fc
}

func floorDivMod(v, d int64) (int, int) {
	q := v / d
	r := v % d
	if r < 0 {
		q--
		r += d
	}
	return int(q), int(r)
}

// Degrees converts the point back to degrees, normalized to lat in [-90,90]
// and lon in [-180,180).
func (fc FractionalCoord) Degrees() (lat, lon float64) {
	return unitsToDegrees(float64(fc.Y()), float64(fc.X()))
}

func unitsToDegrees(y, x float64) (lat, lon float64) {
	lat = y / latFactorPerDeg
	lon = x / lonFactorPerDeg
	return NormalizeDegrees(lat, lon)
}

// NormalizeDegrees clamps latitude to [-90,90] and wraps longitude into [-180,180).
func NormalizeDegrees(lat, lon float64) (float64, float64) {
	if lat < -90 {
		lat = -90
	} else if lat > 90 {
		lat = 90
	}
	lon -= 360 * math.Floor((lon+180)/360)
	if lon >= maxLonMicroFloat {
		lon = -maxLonMicroFloat
	}
	return lat, lon
}
