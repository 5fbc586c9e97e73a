package mapcode

import (
	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

const autoheaderUnit = 961 * 31

// autoheaderMember is one record of an autoheader chain with its share of
// the chain's value space.
type autoheaderMember struct {
	pos     int
	rec     territory.Record
	start   int
	product int
	// w and h are the column and row counts, multiples of the triple size.
	w, h int
}

func (m autoheaderMember) dividers() (dividerx, dividery int) {
	return ceilDiv(m.rec.MaxLon-m.rec.MinLon, m.w), ceilDiv(m.rec.MaxLat-m.rec.MinLat, m.h)
}

func inChain(rec territory.Record, codex int) bool {
	return rec.Codex == codex && rec.Kind.IsAutoheader()
}

// autoheaderChain lists the members of the chain containing recs[idx], up
// to and including the last member, with their storage starts.
func autoheaderChain(recs []territory.Record, idx int) []autoheaderMember {
	codex := recs[idx].Codex
	first := idx
	for first > 0 && inChain(recs[first-1], codex) {
		first--
	}
	rounder := namelessSquare
	if codex >= 23 {
		rounder *= 31
	}

	var chain []autoheaderMember
	start := 0
	for i := first; i < len(recs) && inChain(recs[i], codex); i++ {
		rec := recs[i]
		h := ceilDiv(rec.MaxLat-rec.MinLat, namelessCell)
		xdiv := geo.XDivider4(rec.MinLat, rec.MaxLat)
		w := ceilDiv((rec.MaxLon-rec.MinLon)*4, xdiv)
		h = codec.TripleHeight * ceilDiv(h, codec.TripleHeight)
		w = codec.TripleWidth * ceilDiv(w, codec.TripleWidth)
		product := (w / codec.TripleWidth) * (h / codec.TripleHeight) * autoheaderUnit
		if rec.Kind == territory.AutoheaderPlus {
			product = ceilDiv(start+product, rounder)*rounder - start
		}
		chain = append(chain, autoheaderMember{pos: i, rec: rec, start: start, product: product, w: w, h: h})
		start += product
	}
	return chain
}

func (e *encoder) encodeAutoheader(recs []territory.Record, idx int) (string, string, bool) {
	chain := autoheaderChain(recs, idx)
	var m autoheaderMember
	for _, c := range chain {
		if c.pos == idx {
			m = c
			break
		}
	}
	rec := m.rec
	if m.w == 0 {
		return "", "", false
	}

	dividerx, dividery := m.dividers()
	rel := wrapLon(e.coord.Lon - rec.MinLon)
	vx, extrax := rel/dividerx, rel%dividerx
	dlat := rec.MaxLat - e.coord.Lat
	vy, extray := dlat/dividery, dlat%dividery
	if extray == 0 && e.coord.FracLat > 0 {
		vy--
		extray = dividery
	}
	if vx >= m.w || vy >= m.h {
		return "", "", false
	}

	codexLen := rec.PrefixLength() + rec.PostfixLength()
	value := (vx/codec.TripleWidth)*(m.h/codec.TripleHeight) + vy/codec.TripleHeight
	head := m.start/autoheaderUnit + value
	if head >= nc[codexLen-2] {
		return "", "", false
	}

	var b codeBuilder
	b.writeBase31(head, codexLen-2)
	b.writeByte('.')
	b.writeTriple(vx%codec.TripleWidth, vy%codec.TripleHeight)
	code, err := b.result()
	if err != nil {
		return "", "", false
	}
	ext := encodeExtension(
		int64(extrax)*unitsPerMicroX+int64(e.coord.FracLon),
		int64(extray)*unitsPerMicroY-int64(e.coord.FracLat),
		int64(dividerx)*unitsPerMicroX,
		int64(dividery)*unitsPerMicroY,
		e.extraDigits)
	return code, ext, true
}

// decodeAutoheader decodes code against the chain starting at recs[first].
func decodeAutoheader(recs []territory.Record, first int, code, ext string) (geo.Zone, error) {
	dot := indexDot(code)
	head, err := codec.DecodeBase31(code[:dot])
	if err != nil {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	difx, dify, err := codec.DecodeTriple(code[dot+1:])
	if err != nil {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	value := head * autoheaderUnit

	for _, m := range autoheaderChain(recs, first) {
		if value < m.start || value >= m.start+m.product {
			continue
		}
		cells := (value - m.start) / autoheaderUnit
		rows := m.h / codec.TripleHeight
		vx := (cells/rows)*codec.TripleWidth + difx
		vy := (cells%rows)*codec.TripleHeight + dify

		rec := m.rec
		dividerx, dividery := m.dividers()
		lon := rec.MinLon + vx*dividerx
		top := rec.MaxLat - vy*dividery
		if lon >= rec.MaxLon || top <= rec.MinLat {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		limit := unbounded
		limit.MinY = int64(rec.MinLat) * unitsPerMicroY
		limit.MaxX = int64(rec.MaxLon) * unitsPerMicroX
		cell := downwardCell(top, int64(lon)*unitsPerMicroX, 4*dividerx, dividery)
		return finishZone(ext, cell, true, limit)
	}
	return geo.Zone{}, ErrMapcodeUndecodable
}
