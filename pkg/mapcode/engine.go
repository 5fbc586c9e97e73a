package mapcode

import (
	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/alphabet"
	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

// MaxResults bounds the number of codes returned for one coordinate.
const MaxResults = 32

// Result is one mapcode of a coordinate.
type Result struct {
	Territory territory.ID
	// TerritoryISO is the long ISO name of Territory, e.g. "US-CA".
	TerritoryISO string
	// Code is the proper mapcode, with a hyphen and extension if requested.
	Code string
}

// String returns the code as it is written: the territory, a space and the
// code. International codes carry no territory.
func (r Result) String() string {
	if r.TerritoryISO == territory.EarthCode || r.TerritoryISO == "" {
		return r.Code
	}
	return r.TerritoryISO + " " + r.Code
}

// InAlphabet renders the code, without territory, in another script.
func (r Result) InAlphabet(a alphabet.Alphabet) string {
	return alphabet.ToAlphabet(r.Code, a)
}

// Mapcodes is the ordered result of an encode. The most specific codes come
// first.
type Mapcodes []Result

// Pairs returns the results as (code, territory) string pairs. The
// international territory is reported as "AAA".
func (m Mapcodes) Pairs() [][2]string {
	out := make([][2]string, len(m))
	for i, r := range m {
		out[i] = [2]string{r.Code, r.TerritoryISO}
	}
	return out
}

// Decoded is the result of a successful decode.
type Decoded struct {
	Lat, Lon  float64
	Territory territory.ID
	Elements  Elements
}

// Engine encodes and decodes mapcodes against a territory table. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	table *territory.Table
}

// NewEngine returns an engine for table.
func NewEngine(table *territory.Table) *Engine {
	return &Engine{table: table}
}

// Table returns the territory table of the engine.
func (e *Engine) Table() *territory.Table { return e.table }

// EncodeAll returns every mapcode of the coordinate in territory t, or in
// all territories when t is territory.None. extraDigits (0 to 8) adds
// precision characters. A territory that does not cover the coordinate
// yields no results and no error.
func (e *Engine) EncodeAll(lat, lon float64, t territory.ID, extraDigits int) (Mapcodes, error) {
	enc, err := e.newEncoder(lat, lon, t, extraDigits)
	if err != nil {
		return nil, err
	}
	e.run(enc, t)
	return enc.results, nil
}

// EncodeShortest returns the first mapcode of the coordinate in territory
// t, or in all territories when t is territory.None. The boolean is false
// when no territory covers the coordinate.
func (e *Engine) EncodeShortest(lat, lon float64, t territory.ID, extraDigits int) (Result, bool, error) {
	enc, err := e.newEncoder(lat, lon, t, extraDigits)
	if err != nil {
		return Result{}, false, err
	}
	enc.stopAtFirst = true
	e.run(enc, t)
	if len(enc.results) == 0 {
		return Result{}, false, nil
	}
	return enc.results[0], true, nil
}

func (e *Engine) newEncoder(lat, lon float64, t territory.ID, extraDigits int) (*encoder, error) {
	if t != territory.None {
		if _, err := e.table.Territory(t); err != nil {
			return nil, err
		}
	}
	fc, err := geo.ToFractional(lat, lon)
	if err != nil {
		return nil, err
	}
	if extraDigits < 0 {
		extraDigits = 0
	} else if extraDigits > geo.MaxPrecisionDigits {
		extraDigits = geo.MaxPrecisionDigits
	}
	return &encoder{table: e.table, coord: fc, extraDigits: extraDigits}, nil
}

func (e *Engine) run(enc *encoder, t territory.ID) {
	if t == territory.None {
		enc.encodeAll()
		return
	}
	enc.encodeTerritory(t, t)
}

// Decode returns the coordinate a mapcode stands for. The territory in the
// input wins over context; context is needed for codes without territory.
// Input in any supported alphabet is accepted.
func (e *Engine) Decode(input string, context territory.ID) (Decoded, error) {
	if !isASCII(input) {
		input = alphabet.ToRoman(input)
	}
	el, err := ParseFormat(input)
	if err != nil {
		return Decoded{}, err
	}
	code, err := codec.Unpack(el.ProperMapcode)
	if err != nil {
		return Decoded{}, ErrInvalidEndVowels
	}
	req := newDecodeRequest(code, el.Extension)

	var t territory.ID
	switch {
	case el.TerritoryISO != "":
		if t, err = e.table.Resolve(el.TerritoryISO, context); err != nil {
			return Decoded{}, err
		}
	case context != territory.None:
		if _, err = e.table.Territory(context); err != nil {
			return Decoded{}, err
		}
		t = context
	case req.prelen == 5:
		t = e.table.Earth()
	default:
		return Decoded{}, ErrMissingTerritory
	}

	t = e.decodeTerritory(t, req)
	zone, err := e.decodeIn(t, req)
	if err != nil {
		return Decoded{}, err
	}
	if t != e.table.Earth() {
		outer := e.table.Records(t)
		if !grownContains(outer[len(outer)-1], zone.MidpointMicro()) {
			return Decoded{}, errors.Wrapf(ErrMapcodeUndecodable, "%s is outside %s", el.Code(), e.table.Code(t))
		}
	}

	lat, lon := zone.Midpoint()
	return Decoded{Lat: lat, Lon: lon, Territory: t, Elements: el}, nil
}

// ResolveTerritory turns an ISO code into a territory. context, which may
// be territory.None, selects among subdivisions sharing a code.
func (e *Engine) ResolveTerritory(iso string, context territory.ID) (territory.ID, error) {
	return e.table.Resolve(iso, context)
}

// TerritoryIsoName returns the ISO name of t, "US-CA" or, short, "CA".
func (e *Engine) TerritoryIsoName(t territory.ID, short bool) (string, error) {
	return e.table.IsoName(t, short)
}

// IsValid reports whether input is a well-formed mapcode. A bare mapcode
// is always accepted. One that starts with a territory is accepted only
// when allowTerritory is set and the territory exists.
func (e *Engine) IsValid(input string, allowTerritory bool) bool {
	el, err := ParseFormat(input)
	if err != nil {
		return false
	}
	if el.TerritoryISO == "" {
		return true
	}
	if !allowTerritory {
		return false
	}
	_, err = e.table.Resolve(el.TerritoryISO, territory.None)
	return err == nil
}

// MultipleBordersNearby reports whether the coordinate lies close to more
// than one border of territory t or of its country. Codes of such points
// may decode to a slightly different position.
func (e *Engine) MultipleBordersNearby(lat, lon float64, t territory.ID) bool {
	if t == e.table.Earth() {
		return false
	}
	fc, err := geo.ToFractional(lat, lon)
	if err != nil {
		return false
	}
	ids := []territory.ID{t}
	if e.table.IsSubdivision(t) {
		if parent, err := e.table.ParentOf(t); err == nil {
			ids = append(ids, parent)
		}
	}
	found := 0
	for _, id := range ids {
		for _, rec := range e.table.Records(id) {
			if rec.Restricted {
				continue
			}
			xdiv8 := geo.XDivider4(rec.MinLat, rec.MaxLat) / 4
			if rec.Extend(xdiv8, 60).Contains(fc.Lat, fc.Lon) && !rec.Extend(-xdiv8, -60).Contains(fc.Lat, fc.Lon) {
				found++
				if found > 1 {
					return true
				}
			}
		}
	}
	return false
}

// MaxErrorInMeters returns the worst-case distance between a coordinate and
// the decode of its mapcode with extraDigits precision characters.
func MaxErrorInMeters(extraDigits int) float64 {
	return geo.MaxErrorInMeters(extraDigits)
}

// DistanceInMeters approximates the distance between two coordinates.
func DistanceInMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.DistanceInMeters(lat1, lon1, lat2, lon2)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
