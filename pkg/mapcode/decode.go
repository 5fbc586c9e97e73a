package mapcode

import (
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

// Short codes labelled with the country MEX belong to its state MX.
const (
	mexicoCode      = "MEX"
	mexicoStateCode = "MX"
)

// decodeRequest is a proper mapcode and extension to decode in one
// territory.
type decodeRequest struct {
	code    string
	ext     string
	prelen  int
	postlen int
}

func newDecodeRequest(code, ext string) decodeRequest {
	dot := indexDot(code)
	return decodeRequest{code: code, ext: ext, prelen: dot, postlen: len(code) - dot - 1}
}

// recordMatch tells which decoder, if any, a record offers for the request.
type recordMatch uint8

const (
	matchNone recordMatch = iota
	matchGrid
	matchPipe
	matchNameless
	matchAutoheader
)

func (r decodeRequest) match(rec territory.Record, count21 int) recordMatch {
	codex := r.prelen*10 + r.postlen
	switch {
	case rec.Nameless:
		if namelessInputCodex(rec.Codex) == codex {
			return matchNameless
		}
	case rec.Kind.IsAutoheader():
		if r.postlen == 3 && r.prelen == rec.PrefixLength()+rec.PostfixLength()-2 {
			return matchAutoheader
		}
	case rec.Kind == territory.PipeHeader:
		if r.prelen == rec.PrefixLength()+1 && r.postlen == rec.PostfixLength() && r.code[0] == rec.HeaderLetter {
			return matchPipe
		}
	default:
		if rec.Codex == codex || (codex == 22 && rec.Codex == 21 && count21 == 1) {
			return matchGrid
		}
	}
	return matchNone
}

func countCodex21(recs []territory.Record) int {
	n := 0
	for _, r := range recs {
		if r.Codex == 21 {
			n++
		}
	}
	return n
}

// decodeIn decodes the request in territory t. The first record offering a
// decoder decides the outcome.
func (e *Engine) decodeIn(t territory.ID, req decodeRequest) (geo.Zone, error) {
	recs := e.table.Records(t)
	if len(recs) == 0 {
		return geo.Zone{}, ErrUnknownTerritory
	}
	earth := t == e.table.Earth()
	last := recs[len(recs)-1]
	count21 := countCodex21(recs)

	for i, rec := range recs {
		switch req.match(rec, count21) {
		case matchNone:
			continue
		case matchNameless:
			return decodeNameless(recs, i, req.code, req.ext)
		case matchAutoheader:
			return decodeAutoheader(recs, i, req.code, req.ext)
		case matchPipe:
			return decodeGrid(rec, req.code[1:], req.ext)
		}

		zone, err := decodeGrid(rec, req.code, req.ext)
		if err != nil {
			return geo.Zone{}, err
		}
		if !earth {
			zone = zone.Intersect(geo.ZoneFromMicro(last.MinLat, last.MaxLat, last.MinLon, last.MaxLon))
			if zone.Empty() {
				return geo.Zone{}, ErrMapcodeUndecodable
			}
		}
		if rec.Restricted && !fitsEarlierRecord(recs[:i], zone.MidpointMicro()) {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		return zone, nil
	}
	return geo.Zone{}, ErrMapcodeUndecodable
}

// grownContains reports whether p lies in rec after growing it by about
// half a cell on every side.
func grownContains(rec territory.Record, p geo.Coord32) bool {
	xdiv8 := geo.XDivider4(rec.MinLat, rec.MaxLat) / 4
	return rec.Extend(xdiv8, 60).Contains(p.Lat, p.Lon)
}

// fitsEarlierRecord reports whether p lies near one of the unrestricted
// records in recs.
func fitsEarlierRecord(recs []territory.Record, p geo.Coord32) bool {
	for _, r := range recs {
		if !r.Restricted && grownContains(r, p) {
			return true
		}
	}
	return false
}

// offersUnrestricted reports whether some unrestricted record of t can
// decode the request.
func (e *Engine) offersUnrestricted(t territory.ID, req decodeRequest) bool {
	recs := e.table.Records(t)
	count21 := countCodex21(recs)
	for _, rec := range recs {
		if !rec.Restricted && req.match(rec, count21) != matchNone {
			return true
		}
	}
	return false
}

// decodeTerritory picks the territory a code is decoded in. Five character
// prefixes are always international. Short codes for Mexico belong to its
// state placeholder, and subdivisions hand codes they cannot decode
// themselves to their country.
func (e *Engine) decodeTerritory(t territory.ID, req decodeRequest) territory.ID {
	if req.prelen == 5 {
		return e.table.Earth()
	}
	if e.table.Code(t) == mexicoCode && !e.table.IsSubdivision(t) && len(req.code) < 8 {
		if id, ok := e.table.Subdivision(t, mexicoStateCode); ok {
			t = id
		}
	}
	if e.table.IsSubdivision(t) && !e.offersUnrestricted(t, req) {
		if parent, err := e.table.ParentOf(t); err == nil {
			return parent
		}
	}
	return t
}
