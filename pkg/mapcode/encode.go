package mapcode

import (
	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

// encoder carries the state of one encode call.
type encoder struct {
	table       *territory.Table
	coord       geo.FractionalCoord
	extraDigits int
	stopAtFirst bool
	results     Mapcodes
}

func (e *encoder) done() bool {
	return len(e.results) >= MaxResults || (e.stopAtFirst && len(e.results) > 0)
}

// encodeAll encodes in every territory, subdivisions and countries in table
// order, and the international territory last.
func (e *encoder) encodeAll() {
	earth := e.table.Earth()
	for _, id := range e.table.IDs() {
		if id == earth {
			continue
		}
		e.encodeTerritory(id, id)
		if e.done() {
			return
		}
	}
	e.encodeTerritory(earth, earth)
}

// encodeTerritory adds the codes of the point in territory t, reported as
// belonging to owner.
func (e *encoder) encodeTerritory(t, owner territory.ID) {
	recs := e.table.Records(t)
	if len(recs) == 0 {
		return
	}
	lat, lon := e.coord.Lat, e.coord.Lon
	earth := t == e.table.Earth()
	last := len(recs) - 1
	if !earth && !recs[last].Contains(lat, lon) {
		return
	}

	count21 := 0
	for _, r := range recs {
		if r.Codex == 21 {
			count21++
		}
	}

	found := 0
	for i, rec := range recs {
		if e.done() {
			return
		}
		if i == last && rec.Restricted && e.table.IsSubdivision(t) {
			parent, err := e.table.ParentOf(t)
			if err == nil {
				e.encodeTerritory(parent, owner)
			}
			return
		}
		if rec.Restricted && found == 0 {
			continue
		}
		if !earth && emittedPrefixLength(rec) >= 5 {
			continue
		}
		if !rec.Contains(lat, lon) {
			continue
		}

		var (
			code, ext string
			ok        bool
		)
		switch {
		case rec.Nameless:
			code, ext, ok = e.encodeNameless(recs, i)
		case rec.Kind.IsAutoheader():
			code, ext, ok = e.encodeAutoheader(recs, i)
		case rec.Kind == territory.PipeHeader:
			code, ext, ok = e.encodeGrid(rec, rec.HeaderLetter)
		default:
			if rec.Codex == 21 && count21 != 1 {
				continue
			}
			code, ext, ok = e.encodeGrid(rec, 0)
		}
		if !ok {
			continue
		}
		found++
		e.add(owner, code, ext)
	}
}

func (e *encoder) add(owner territory.ID, code, ext string) {
	code = codec.Repack(code)
	if ext != "" {
		code += "-" + ext
	}
	iso, _ := e.table.IsoName(owner, false)
	e.results = append(e.results, Result{Territory: owner, TerritoryISO: iso, Code: code})
}

// emittedPrefixLength is the number of characters before the dot in the
// codes rec produces. Five characters are reserved for the international
// territory.
func emittedPrefixLength(rec territory.Record) int {
	switch {
	case rec.Nameless:
		return namelessInputCodex(rec.Codex) / 10
	case rec.Kind.IsAutoheader():
		return rec.PrefixLength() + rec.PostfixLength() - 2
	case rec.Kind == territory.PipeHeader:
		return rec.PrefixLength() + 1
	}
	return gridCodex(rec.Codex) / 10
}
