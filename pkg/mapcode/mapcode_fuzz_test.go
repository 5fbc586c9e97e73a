//go:build fuzz
// +build fuzz

package mapcode

import (
	"testing"

	"github.com/ssargent/mapcode/pkg/territory"
)

// FuzzParseFormat checks that parsing never panics and that the canonical
// form of accepted input parses to the same elements.
func FuzzParseFormat(f *testing.F) {
	for _, s := range []string{"NLD 49.4V", "us-ca cj7.rn6-4k", "VHXGB.1J9J", "NLD 12.UU", "", "-", "A1.BC"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		el, err := ParseFormat(input)
		if err != nil {
			if !IsFormatError(err) {
				t.Fatalf("%q: unexpected error kind %v", input, err)
			}
			return
		}
		again, err := ParseFormat(el.String())
		if err != nil {
			t.Fatalf("%q: canonical form %q rejected: %v", input, el.String(), err)
		}
		if again != el {
			t.Fatalf("%q: %+v != %+v", input, again, el)
		}
	})
}

// FuzzDecode feeds arbitrary input to the decoder; results must be valid
// coordinates.
func FuzzDecode(f *testing.F) {
	e := NewEngine(fixtureTable(f))
	f.Add("NLD JD.LZM", -1)
	f.Add("IN GV1.5T9", int(idRUS))
	f.Add("HHM5X.ZJPJ-ZZ", -1)

	f.Fuzz(func(t *testing.T, input string, context int) {
		d, err := e.Decode(input, territory.ID(context))
		if err != nil {
			return
		}
		if d.Lat < -90 || d.Lat > 90 || d.Lon < -180 || d.Lon >= 180 {
			t.Fatalf("%q decoded to (%f, %f)", input, d.Lat, d.Lon)
		}
	})
}

// FuzzRoundTrip encodes arbitrary coordinates and decodes every result.
func FuzzRoundTrip(f *testing.F) {
	e := NewEngine(fixtureTable(f))
	f.Add(52.376514, 4.908543, 0)
	f.Add(65.0, 179.5, 3)

	f.Fuzz(func(t *testing.T, lat, lon float64, digits int) {
		if lat < -90 || lat > 90 || lon < -180 || lon >= 180 || digits < 0 || digits > 8 {
			t.Skip()
		}
		codes, err := e.EncodeAll(lat, lon, territory.None, digits)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range codes {
			d, err := e.Decode(r.String(), territory.None)
			if err != nil {
				t.Fatalf("%s: %v", r, err)
			}
			if e.MultipleBordersNearby(lat, lon, r.Territory) {
				continue
			}
			if dist := DistanceInMeters(lat, lon, d.Lat, d.Lon); dist > MaxErrorInMeters(digits) {
				t.Fatalf("%s decodes %.3fm away", r, dist)
			}
		}
	})
}
