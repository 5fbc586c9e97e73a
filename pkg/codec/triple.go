package codec

// Triple cells cover a 168x176 block with three characters. The first
// character selects one of 24 upper blocks of 28x34 or one of 7 lower
// strips of 24x40.
const (
	TripleWidth  = 168
	TripleHeight = 176
)

// EncodeTriple packs (difx, dify) into three base-31 characters.
func EncodeTriple(difx, dify int) []byte {
	out := make([]byte, 0, 3)
	return AppendTriple(out, difx, dify)
}

// AppendTriple is EncodeTriple appending into dst.
func AppendTriple(dst []byte, difx, dify int) []byte {
	if dify < 4*34 {
		dst = append(dst, Alphabet[difx/28+6*(dify/34)])
		return AppendBase31(dst, (difx%28)*34+dify%34, 2)
	}
	dst = append(dst, Alphabet[difx/24+24])
	return AppendBase31(dst, (difx%24)*40+(dify-136), 2)
}

// DecodeTriple unpacks three base-31 characters into (difx, dify).
func DecodeTriple(s string) (difx, dify int, err error) {
	if len(s) < 3 {
		return 0, 0, ErrInvalidDigit
	}
	c1 := Value(s[0])
	if c1 < 0 || c1 >= 31 {
		return 0, 0, ErrInvalidDigit
	}
	x, err := DecodeBase31(s[1:3])
	if err != nil {
		return 0, 0, err
	}
	if c1 < 24 {
		if x/34 >= 28 {
			return 0, 0, ErrInvalidDigit
		}
		return (c1%6)*28 + x/34, (c1/6)*34 + x%34, nil
	}
	if x/40 >= 24 {
		return 0, 0, ErrInvalidDigit
	}
	return (c1-24)*24 + x/40, 136 + x%40, nil
}

// EncodeSixWide packs a cell of a width x height grid into a single value,
// walking columns of six cells left to right and rows top to bottom. The
// last column absorbs the remainder so it is between 4 and 9 cells wide.
func EncodeSixWide(x, y, width, height int) int {
	d := 6
	col := x / 6
	maxcol := (width - 4) / 6
	if col >= maxcol {
		col = maxcol
		d = width - maxcol*6
	}
	return height*6*col + (height-1-y)*d + x - col*6
}

// DecodeSixWide reverses EncodeSixWide.
func DecodeSixWide(v, width, height int) (x, y int) {
	d := 6
	col := v / (height * 6)
	maxcol := (width - 4) / 6
	if col >= maxcol {
		col = maxcol
		d = width - maxcol*6
	}
	w := v - col*height*6
	return col*6 + w%d, height - 1 - w/d
}
