package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFractional(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantLat int
		wantLon int
	}{
		{"origin", 0, 0, 0, 0},
		{"amsterdam", 52.376514, 4.908543, 52376514, 4908543},
		{"clamp north", 95, 10, 90000000, 10000000},
		{"clamp south", -100, 10, -90000000, 10000000},
		{"wrap east", 0, 190, 0, -170000000},
		{"wrap west", 0, -190, 0, 170000000},
		{"date line", 0, 180, 0, -180000000},
		{"negative", -33.5, -70.25, -33500000, -70250000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := ToFractional(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLat, fc.Lat)
			assert.Equal(t, tt.wantLon, fc.Lon)
			assert.True(t, fc.FracLat >= 0 && fc.FracLat < LatFractions)
			assert.True(t, fc.FracLon >= 0 && fc.FracLon < LonFractions)
		})
	}
}

func TestToFractionalRejectsNonFinite(t *testing.T) {
	for _, v := range [][2]float64{{math.NaN(), 0}, {0, math.NaN()}, {math.Inf(1), 0}, {0, math.Inf(-1)}} {
		_, err := ToFractional(v[0], v[1])
		assert.ErrorIs(t, err, ErrBadCoordinate)
	}
}

func TestUnitsRoundTrip(t *testing.T) {
	fc, err := ToFractional(-12.3456789, -45.6789012)
	require.NoError(t, err)
	back := FromUnits(fc.Y(), fc.X())
	assert.Equal(t, fc, back)

	lat, lon := fc.Degrees()
	assert.InDelta(t, -12.3456789, lat, 1e-9)
	assert.InDelta(t, -45.6789012, lon, 1e-9)
}

func TestNormalizeDegrees(t *testing.T) {
	lat, lon := NormalizeDegrees(91, 180)
	assert.Equal(t, 90.0, lat)
	assert.Equal(t, -180.0, lon)

	_, lon = NormalizeDegrees(0, 359.5)
	assert.InDelta(t, -0.5, lon, 1e-12)
	_, lon = NormalizeDegrees(0, -180)
	assert.Equal(t, -180.0, lon)
}

func TestZone(t *testing.T) {
	z := ZoneFromMicro(10, 20, 30, 50)
	assert.False(t, z.Empty())

	lat, lon := z.Midpoint()
	assert.InDelta(t, 15e-6, lat, 1e-12)
	assert.InDelta(t, 40e-6, lon, 1e-12)
	assert.Equal(t, Coord32{Lat: 15, Lon: 40}, z.MidpointMicro())

	inner := z.Intersect(ZoneFromMicro(15, 40, 0, 35))
	assert.Equal(t, ZoneFromMicro(15, 20, 30, 35), inner)

	assert.True(t, z.Intersect(ZoneFromMicro(20, 30, 30, 50)).Empty())
	assert.Equal(t, ZoneFromMicro(0, 20, 30, 60), z.Union(ZoneFromMicro(0, 5, 55, 60)))
	assert.Equal(t, z, Zone{}.Union(z))
}

func TestXDivider4(t *testing.T) {
	tests := []struct {
		name           string
		minLat, maxLat int
		want           int
	}{
		{"equator", 0, 1000, 360},
		{"straddles equator", -1000, 1000, 360},
		{"52 north", 52000000, 53000000, 583},
		{"52 south uses max lat", -53000000, -52000000 + 1, 583},
		{"band 149", 149 << 19, 150 << 19, 1749},
		{"band 150", 150 << 19, 151 << 19, 1829},
		{"band 165", 165 << 19, 166 << 19, 6012},
		{"band 169", 169 << 19, 170 << 19, 16925},
		{"band 170", 170 << 19, 171 << 19, 31122},
		{"band 171", 171 << 19, 90000000, 172044},
		{"pole clamps to last band", 90000000, 90000001, 172044},
		{"south polar band", -90000000, -(171 << 19), 172044},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XDivider4(tt.minLat, tt.maxLat))
		})
	}

	// cells widen towards the poles
	prev := 0
	for lat := 0; lat < 90000000; lat += 1 << 19 {
		d := XDivider4(lat, lat+1)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestDistanceInMeters(t *testing.T) {
	assert.InDelta(t, 0, DistanceInMeters(52, 4, 52, 4), 1e-9)
	assert.InDelta(t, metersPerDegreeLat, DistanceInMeters(0, 0, 1, 0), 1e-6)
	assert.InDelta(t, metersPerDegreeLon, DistanceInMeters(0, 0, 0, 1), 1e-6)
	// across the antimeridian
	assert.InDelta(t, 2*metersPerDegreeLon, DistanceInMeters(0, 179, 0, -179), 1e-6)
}

func TestMaxErrorInMeters(t *testing.T) {
	assert.Equal(t, 7.49, MaxErrorInMeters(0))
	assert.Equal(t, 0.0000093, MaxErrorInMeters(8))
	assert.Equal(t, MaxErrorInMeters(8), MaxErrorInMeters(12))
	assert.Equal(t, MaxErrorInMeters(0), MaxErrorInMeters(-1))
	for i := 1; i <= MaxPrecisionDigits; i++ {
		assert.Less(t, MaxErrorInMeters(i), MaxErrorInMeters(i-1))
	}
}
