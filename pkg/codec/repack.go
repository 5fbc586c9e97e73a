package codec

import "github.com/pkg/errors"

// ErrInvalidEndVowels is returned when the vowel pair at the end of a packed
// code does not denote a two-digit number.
var ErrInvalidEndVowels = errors.New("invalid vowel pair at end of code")

// lastPairAfterDot reports whether code consists only of digits and a
// single dot, with at least two digits after the dot.
func lastPairAfterDot(code []byte) bool {
	dot := -1
	for i, c := range code {
		if c == '.' {
			if dot >= 0 {
				return false
			}
			dot = i
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return dot >= 0 && dot < len(code)-2
}

// Repack rewrites an all-digit code so its last two characters carry a vowel,
// keeping codes from looking like plain numbers. Other codes are returned
// unchanged.
func Repack(code string) string {
	b := []byte(code)
	if !lastPairAfterDot(b) {
		return code
	}
	s, e := len(b)-2, len(b)-1
	v := int(b[s]-'0')*10 + int(b[e]-'0')
	b[s] = Alphabet[v/34+31]
	b[e] = Alphabet[v%34]
	return string(b)
}

// RepackAOnly is Repack for alphabets that only carry the vowel A: the first
// digit becomes 'A' and its value moves into the last two characters.
func RepackAOnly(code string) string {
	b := []byte(code)
	if !lastPairAfterDot(b) || b[0] == '.' {
		return code
	}
	s, e := len(b)-2, len(b)-1
	v := int(b[0]-'0')*100 + int(b[s]-'0')*10 + int(b[e]-'0')
	b[0] = 'A'
	b[s] = Alphabet[v/32]
	b[e] = Alphabet[v%32]
	return string(b)
}

// Unpack reverses Repack and RepackAOnly. The input must be upper case.
// Codes that were not packed are returned unchanged.
func Unpack(code string) (string, error) {
	b := []byte(code)
	if len(b) < 3 {
		return code, nil
	}
	aOnly := b[0] == 'A'
	i := 0
	if aOnly {
		i = 1
	}
	dot := -1
	for ; i+2 < len(b); i++ {
		if b[i] == '.' && dot < 0 {
			dot = i
			continue
		}
		if v := Value(b[i]); v < 0 || v > 9 {
			return code, nil
		}
	}
	if dot < 0 {
		return code, nil
	}
	s, e := len(b)-2, len(b)-1

	if aOnly {
		v1, v2 := Value(b[s]), Value(b[e])
		if v1 < 0 || v1 > ValueA || v2 < 0 || v2 > ValueA {
			return "", ErrInvalidEndVowels
		}
		v := v1*32 + v2
		if v >= 1000 {
			return "", ErrInvalidEndVowels
		}
		b[0] = byte('0' + v/100)
		b[s] = byte('0' + (v/10)%10)
		b[e] = byte('0' + v%10)
		return string(b), nil
	}

	if !IsVowel(b[s]) {
		return code, nil
	}
	v := 0
	switch b[s] {
	case 'E':
		v = 34
	case 'U':
		v = 68
	}
	last := Value(b[e])
	if last < 0 {
		return "", ErrInvalidEndVowels
	}
	v += last
	if v >= 100 {
		return "", ErrInvalidEndVowels
	}
	b[s] = byte('0' + v/10)
	b[e] = byte('0' + v%10)
	return string(b), nil
}
