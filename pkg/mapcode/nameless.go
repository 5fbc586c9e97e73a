package mapcode

import (
	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

const (
	namelessCell   = 90 // height of a nameless cell in microdegrees
	namelessSquare = 961 * 961
	namelessHalf   = 16 * 961 * 31
)

// namelessGroup returns the positions of the nameless records of recs that
// share codex, in order.
func namelessGroup(recs []territory.Record, codex int) []int {
	var g []int
	for i, r := range recs {
		if r.Nameless && r.Codex == codex {
			g = append(g, i)
		}
	}
	return g
}

// namelessUsable reports whether a group of a records with the given codex
// can be coded at all. A single 2.1 record is allowed.
func namelessUsable(codex, a int) bool {
	return a >= 2 || (codex == 21 && a >= 1)
}

// namelessInputCodex is the codex of the codes a nameless record produces.
func namelessInputCodex(codex int) int {
	switch codex {
	case 21:
		return 22
	case 22:
		return 32
	case 13:
		return 23
	}
	return 0
}

func basePowerA(codex, a int) int {
	bp := namelessSquare * 31
	if codex == 21 {
		bp = namelessSquare
	}
	bpa := bp / a
	if a == 62 {
		return bpa + 1
	}
	return 961 * (bpa / 961)
}

// storageOffset is where the values of record x of a group of a start.
// Up to 31 records share the first character, the first r of them getting
// one character more; up to 61 records get one character or half of one;
// larger groups split the whole value range evenly.
func storageOffset(codex, a, x int) int {
	p, r := 31/a, 31%a
	switch {
	case codex != 21 && a <= 31:
		return (x*p + min(x, r)) * namelessSquare
	case codex != 21 && a < 62:
		if x < 62-a {
			return x * namelessSquare
		}
		off := (62 - a + (x-62+a)/2) * namelessSquare
		if (x+a)&1 != 0 {
			off += namelessHalf
		}
		return off
	}
	return x * basePowerA(codex, a)
}

// namelessSwap reports whether the two characters around the dot of a 3.2
// code are exchanged. Encoder and decoder both evaluate it on the final
// record index.
func namelessSwap(rec territory.Record, a, x int) bool {
	if rec.Codex != 22 || rec.SpecialShape || rec.SmartDivisor != 961 {
		return false
	}
	p, r := 31/a, 31%a
	if a <= 31 {
		return p == 1 && x >= r
	}
	return a < 62 && x < 62-a
}

// namelessSides returns the number of columns and rows of a nameless
// record. Special shapes keep the cell count but take their row count from
// the record height.
func namelessSides(rec territory.Record) (xSide, side int) {
	side = rec.SmartDivisor
	if !rec.SpecialShape {
		return side, side
	}
	org := side
	side = 1 + (rec.MaxLat-rec.MinLat)/namelessCell
	return org * org / side, side
}

func (e *encoder) encodeNameless(recs []territory.Record, idx int) (string, string, bool) {
	rec := recs[idx]
	group := namelessGroup(recs, rec.Codex)
	a := len(group)
	if !namelessUsable(rec.Codex, a) {
		return "", "", false
	}
	x := 0
	for x < a && group[x] != idx {
		x++
	}

	xSide, side := namelessSides(rec)
	dividerx4 := geo.XDivider4(rec.MinLat, rec.MaxLat)
	rel := wrapLon(e.coord.Lon - rec.MinLon)
	dx := (4*rel + e.coord.FracLon/unitsPerQuarterX) / dividerx4
	dlat := rec.MaxLat - e.coord.Lat
	dy, extray := dlat/namelessCell, dlat%namelessCell
	if extray == 0 && e.coord.FracLat > 0 {
		dy--
		extray = namelessCell
	}
	if dx >= xSide || dy >= side {
		return "", "", false
	}

	v := storageOffset(rec.Codex, a, x)
	if rec.SpecialShape {
		v += codec.EncodeSixWide(dx, side-1-dy, xSide, side)
	} else {
		v += dx*side + dy
	}
	codexLen := rec.PrefixLength() + rec.PostfixLength()
	if v >= nc[codexLen+1] {
		return "", "", false
	}

	var b codeBuilder
	b.writeBase31(v, codexLen+1)
	if namelessSwap(rec, a, x) {
		b.swap(0, 2, 3)
	}
	if rec.Codex == 13 {
		b.insertDot(codexLen - 2)
	} else {
		b.insertDot(codexLen - 1)
	}
	code, err := b.result()
	if err != nil {
		return "", "", false
	}

	offX := int64(4*rel)*unitsPerQuarterX + int64(e.coord.FracLon) - int64(dx)*int64(dividerx4)*unitsPerQuarterX
	offY := int64(extray)*unitsPerMicroY - int64(e.coord.FracLat)
	ext := encodeExtension(offX, offY,
		int64(dividerx4)*unitsPerQuarterX,
		namelessCell*unitsPerMicroY,
		e.extraDigits)
	return code, ext, true
}

// decodeNameless decodes code against the nameless group of recs[first].
func decodeNameless(recs []territory.Record, first int, code, ext string) (geo.Zone, error) {
	codex := recs[first].Codex
	group := namelessGroup(recs, codex)
	a := len(group)
	if !namelessUsable(codex, a) {
		return geo.Zone{}, ErrMapcodeUndecodable
	}

	s := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		if code[i] != '.' {
			s = append(s, code[i])
		}
	}
	if len(s) < 4 {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	p, r := 31/a, 31%a
	lead := codec.Value(s[0])
	if lead < 0 || lead >= 31 {
		return geo.Zone{}, ErrMapcodeUndecodable
	}

	var x, v int
	switch {
	case codex != 21 && a <= 31:
		if lead < r*(p+1) {
			x = lead / (p + 1)
		} else {
			x = r + (lead-r*(p+1))/p
		}
	case codex != 21 && a < 62:
		x = lead
		if x >= 62-a {
			x += x - (62 - a)
		}
	default:
		all, err := codec.DecodeBase31(string(s))
		if err != nil {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		bpa := basePowerA(codex, a)
		x, v = all/bpa, all%bpa
	}
	if x >= a {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	if namelessSwap(recs[group[x]], a, x) {
		s[2], s[3] = s[3], s[2]
	}

	var err error
	switch {
	case codex != 21 && a <= 31:
		if v, err = codec.DecodeBase31(string(s)); err != nil {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		v -= storageOffset(codex, a, x)
	case codex != 21 && a < 62:
		if v, err = codec.DecodeBase31(string(s[1:])); err != nil {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		if x >= 62-a && v >= namelessHalf {
			v -= namelessHalf
			x++
			if x >= a {
				return geo.Zone{}, ErrMapcodeUndecodable
			}
		}
	}

	rec := recs[group[x]]
	xSide, side := namelessSides(rec)
	var dx, dy int
	if rec.SpecialShape {
		var y int
		dx, y = codec.DecodeSixWide(v, xSide, side)
		dy = side - 1 - y
	} else {
		dx, dy = v/side, v%side
	}
	if dx < 0 || dy < 0 || dx >= xSide || dy >= side {
		return geo.Zone{}, ErrMapcodeUndecodable
	}

	dividerx4 := geo.XDivider4(rec.MinLat, rec.MaxLat)
	minX := int64(rec.MinLon)*unitsPerMicroX + int64(dx)*int64(dividerx4)*unitsPerQuarterX
	top := rec.MaxLat - dy*namelessCell
	if minX >= int64(rec.MaxLon)*unitsPerMicroX || top <= rec.MinLat {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	limit := unbounded
	limit.MinY = int64(rec.MinLat) * unitsPerMicroY
	limit.MaxX = int64(rec.MaxLon) * unitsPerMicroX
	return finishZone(ext, downwardCell(top, minX, dividerx4, namelessCell), true, limit)
}
