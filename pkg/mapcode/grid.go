package mapcode

import (
	"math"

	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

const fullTurn = 360000000

// nc[n] is the number of values n base-31 characters can hold; xside and
// yside give the default grid of a prefix or postfix of n characters.
var (
	nc    = [...]int{1, 31, 961, 29791, 923521, 28629151, 887503681, 27512614111, 852891037441}
	xside = [...]int{0, 5, 31, 168, 961, 168 * 31, 29791, 165869, 923521, 5141947}
	yside = [...]int{0, 6, 31, 176, 961, 176 * 31, 29791, 195841, 923521, 6076021}
)

var unbounded = geo.Zone{MinY: math.MinInt64, MaxY: math.MaxInt64, MinX: math.MinInt64, MaxX: math.MaxInt64}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// wrapLon brings a longitude difference into [0, 360) degrees when it is
// off by one turn.
func wrapLon(d int) int {
	if d < 0 {
		return d + fullTurn
	}
	if d >= fullTurn {
		return d - fullTurn
	}
	return d
}

func gridDivisors(rec territory.Record, prelen int) (divx, divy int) {
	divy = rec.SmartDivisor
	if divy <= 1 {
		return xside[prelen], yside[prelen]
	}
	return nc[prelen] / divy, divy
}

// gridCodex is the codex a grid record is written with: 2.1 records are
// written as 2.2 and 1.4 records as 2.3 before the dot is moved.
func gridCodex(codex int) int {
	switch codex {
	case 21:
		return 22
	case 14:
		return 23
	}
	return codex
}

// encodeGrid writes the grid code of the point inside rec, preceded by
// header when it is not zero.
func (e *encoder) encodeGrid(rec territory.Record, header byte) (string, string, bool) {
	codex := gridCodex(rec.Codex)
	prelen, postlen := codex/10, codex%10
	divx, divy := gridDivisors(rec, prelen)

	ygrid := ceilDiv(rec.MaxLat-rec.MinLat, divy)
	xgrid := ceilDiv(rec.MaxLon-rec.MinLon, divx)
	dlat := e.coord.Lat - rec.MinLat
	dlon := wrapLon(e.coord.Lon - rec.MinLon)
	relx, rely := dlon/xgrid, dlat/ygrid
	if relx >= divx || rely >= divy {
		return "", "", false
	}

	var b codeBuilder
	if header != 0 {
		b.writeByte(header)
	}
	start := b.len()
	if divx != divy && prelen > 2 {
		b.writeBase31(codec.EncodeSixWide(relx, rely, divx, divy), prelen)
	} else {
		b.writeBase31(relx*divy+(divy-1-rely), prelen)
	}
	if prelen == 4 && divx == 961 && divy == 961 {
		b.swap(start, 1, 2)
	}
	b.writeByte('.')

	xp, yp := xside[postlen], yside[postlen]
	dividerx := ceilDiv(xgrid, xp)
	dividery := ceilDiv(ygrid, yp)
	difx := dlon - relx*xgrid
	dify := dlat - rely*ygrid
	extrax, extray := difx%dividerx, dify%dividery
	difx /= dividerx
	dify = yp - 1 - dify/dividery

	post := b.len()
	if postlen == 3 {
		b.writeTriple(difx, dify)
	} else {
		b.writeBase31(difx*yp+dify, postlen)
		if postlen == 4 {
			b.swap(post, 1, 2)
		}
	}
	if rec.Codex == 14 {
		b.shiftDotLeft(start)
	}

	code, err := b.result()
	if err != nil {
		return "", "", false
	}
	ext := encodeExtension(
		int64(extrax)*unitsPerMicroX+int64(e.coord.FracLon),
		int64(extray)*unitsPerMicroY+int64(e.coord.FracLat),
		int64(dividerx)*unitsPerMicroX,
		int64(dividery)*unitsPerMicroY,
		e.extraDigits)
	return code, ext, true
}

// decodeGrid decodes a grid code, without header letter, inside rec.
func decodeGrid(rec territory.Record, code, ext string) (geo.Zone, error) {
	dot := indexDot(code)
	codexLen := len(code) - 1
	prelen := dot
	buf := []byte(code)
	if prelen == 1 && codexLen == 5 {
		buf[1], buf[2] = buf[2], '.'
		prelen = 2
	}
	postlen := codexLen - prelen
	if prelen < 1 || prelen > 5 || postlen < 2 || postlen > 4 {
		return geo.Zone{}, ErrBadMapcodeLength
	}

	divx, divy := gridDivisors(rec, prelen)
	if prelen == 4 && divx == 961 && divy == 961 {
		buf[1], buf[2] = buf[2], buf[1]
	}
	v, err := codec.DecodeBase31(string(buf[:prelen]))
	if err != nil {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	var relx, rely int
	if divx != divy && prelen > 2 {
		relx, rely = codec.DecodeSixWide(v, divx, divy)
	} else {
		relx, rely = v/divy, divy-1-v%divy
	}
	if relx < 0 || rely < 0 || relx >= divx || rely >= divy {
		return geo.Zone{}, ErrMapcodeUndecodable
	}

	ygrid := ceilDiv(rec.MaxLat-rec.MinLat, divy)
	xgrid := ceilDiv(rec.MaxLon-rec.MinLon, divx)
	xp, yp := xside[postlen], yside[postlen]
	dividerx := ceilDiv(xgrid, xp)
	dividery := ceilDiv(ygrid, yp)

	post := buf[prelen+1:]
	var difx, dify int
	if postlen == 3 {
		if difx, dify, err = codec.DecodeTriple(string(post)); err != nil {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
	} else {
		if postlen == 4 {
			post[1], post[2] = post[2], post[1]
		}
		w, err := codec.DecodeBase31(string(post))
		if err != nil {
			return geo.Zone{}, ErrMapcodeUndecodable
		}
		difx, dify = w/yp, w%yp
	}
	if difx >= xp || dify >= yp {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	dify = yp - 1 - dify

	cornerLat := rec.MinLat + rely*ygrid + dify*dividery
	cornerLon := rec.MinLon + relx*xgrid + difx*dividerx
	if !rec.Contains(cornerLat, cornerLon) {
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	limit := unbounded
	limit.MaxY = int64(rec.MaxLat) * unitsPerMicroY
	limit.MaxX = int64(rec.MaxLon) * unitsPerMicroX
	return finishZone(ext, upwardCell(cornerLat, cornerLon, dividerx, dividery), false, limit)
}

func indexDot(code string) int {
	for i := 0; i < len(code); i++ {
		if code[i] == '.' {
			return i
		}
	}
	return -1
}
