package mapcode

import (
	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
)

// unitsPerMicroX and unitsPerMicroY convert microdegrees to zone units.
const (
	unitsPerMicroX = geo.LonFractions
	unitsPerMicroY = geo.LatFractions
	// unitsPerQuarterX converts quarter microdegrees of longitude.
	unitsPerQuarterX = geo.LonFractions / 4
)

// encodeExtension writes up to digits characters locating the point at
// (offX, offY) inside a cell of cellW x cellH zone units. Each pair of
// characters splits the cell 30 x 30; a trailing single character splits
// it 5 columns by 6 rows.
func encodeExtension(offX, offY, cellW, cellH int64, digits int) string {
	if digits <= 0 {
		return ""
	}
	if digits > geo.MaxPrecisionDigits {
		digits = geo.MaxPrecisionDigits
	}
	offX = clamp64(offX, 0, cellW-1)
	offY = clamp64(offY, 0, cellH-1)

	out := make([]byte, 0, digits)
	fx, fy := cellW, cellH
	for {
		fx /= 30
		fy /= 30
		gx := clamp64(offX/fx, 0, 29)
		gy := clamp64(offY/fy, 0, 29)
		out = append(out, codec.Alphabet[(gy/5)*5+gx/6])
		if len(out) == digits {
			break
		}
		out = append(out, codec.Alphabet[(gy%5)*6+gx%6])
		if len(out) == digits {
			break
		}
		offX -= gx * fx
		offY -= gy * fy
	}
	return string(out)
}

// decodeExtension narrows cell to the part selected by ext. With downward
// set, rows are counted from the top of the cell.
func decodeExtension(ext string, cell geo.Zone, downward bool) (geo.Zone, error) {
	if len(ext) == 0 {
		return cell, nil
	}
	if len(ext) > geo.MaxPrecisionDigits {
		return geo.Zone{}, ErrExtensionInvalidLength
	}
	var (
		px, py         int64 = 1, 1
		lonIdx, latIdx int64
	)
	for i := 0; i < len(ext); i += 2 {
		c1 := int64(codec.Value(ext[i]))
		if c1 < 0 || c1 >= 30 {
			return geo.Zone{}, ErrExtensionInvalidCharacter
		}
		row1, col1 := c1/5, c1%5
		if i+1 == len(ext) {
			px *= 5
			py *= 6
			lonIdx = lonIdx*5 + col1
			latIdx = latIdx*6 + row1
			break
		}
		c2 := int64(codec.Value(ext[i+1]))
		if c2 < 0 || c2 >= 30 {
			return geo.Zone{}, ErrExtensionInvalidCharacter
		}
		row2, col2 := c2/6, c2%6
		px *= 30
		py *= 30
		lonIdx = lonIdx*30 + col1*6 + col2
		latIdx = latIdx*30 + row1*5 + row2
	}

	w := (cell.MaxX - cell.MinX) / px
	h := (cell.MaxY - cell.MinY) / py
	z := geo.Zone{MinX: cell.MinX + lonIdx*w}
	z.MaxX = z.MinX + w
	if downward {
		z.MaxY = cell.MaxY - latIdx*h
		z.MinY = z.MaxY - h
	} else {
		z.MinY = cell.MinY + latIdx*h
		z.MaxY = z.MinY + h
	}
	return z, nil
}

// upwardCell is a cell whose lower-left corner is (lat, lon), in
// microdegrees.
func upwardCell(lat, lon, width, height int) geo.Zone {
	z := geo.Zone{
		MinY: int64(lat) * unitsPerMicroY,
		MinX: int64(lon) * unitsPerMicroX,
	}
	z.MaxY = z.MinY + int64(height)*unitsPerMicroY
	z.MaxX = z.MinX + int64(width)*unitsPerMicroX
	return z
}

// downwardCell is a cell hanging below top. minX is in zone units and
// width in quarter microdegrees. The top edge itself belongs to the cell.
func downwardCell(top int, minX int64, width4, height int) geo.Zone {
	z := geo.Zone{
		MaxY: int64(top)*unitsPerMicroY + 1,
		MinX: minX,
	}
	z.MinY = z.MaxY - int64(height)*unitsPerMicroY
	z.MaxX = z.MinX + int64(width4)*unitsPerQuarterX
	return z
}

// finishZone applies the extension and clips the result to the limits of
// the record it was decoded from.
func finishZone(ext string, cell geo.Zone, downward bool, limit geo.Zone) (geo.Zone, error) {
	z, err := decodeExtension(ext, cell, downward)
	if err != nil {
		return geo.Zone{}, err
	}
	z = z.Intersect(limit)
	if z.Empty() {
		if ext != "" {
			return geo.Zone{}, ErrExtensionUndecodable
		}
		return geo.Zone{}, ErrMapcodeUndecodable
	}
	return z, nil
}

func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
