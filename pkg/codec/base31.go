package codec

import "github.com/pkg/errors"

// Alphabet is the base-31 digit set followed by the three vowels used only
// for repacking all-digit codes.
const Alphabet = "0123456789BCDFGHJKLMNPQRSTVWXYZAEU"

// Value of the vowels A, E and U in the extended alphabet.
const (
	ValueA = 31
	ValueE = 32
	ValueU = 33
)

// ErrInvalidDigit is returned when a character is not part of the base-31 alphabet.
var ErrInvalidDigit = errors.New("invalid base-31 digit")

// decodeTable maps an ASCII byte to its value. -1 marks a separator or
// invalid byte, -2 a dot.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		decodeTable[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			decodeTable[c+'a'-'A'] = int8(i)
		}
	}
	decodeTable['O'], decodeTable['o'] = 0, 0
	decodeTable['I'], decodeTable['i'] = 1, 1
	decodeTable['.'] = -2
}

// Value returns the value of c in the extended alphabet (0..33), or -1 if c
// is not a code character. O and I are read as 0 and 1.
func Value(c byte) int {
	v := decodeTable[c]
	if v < 0 {
		return -1
	}
	return int(v)
}

// IsVowel reports whether c is one of A, E or U (either case).
func IsVowel(c byte) bool {
	switch c {
	case 'A', 'E', 'U', 'a', 'e', 'u':
		return true
	}
	return false
}

// EncodeBase31 writes v as exactly n base-31 characters, most significant
// first. Higher digits of v that do not fit are dropped.
func EncodeBase31(v, n int) []byte {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = Alphabet[v%31]
		v /= 31
	}
	return out
}

// AppendBase31 is EncodeBase31 appending into dst.
func AppendBase31(dst []byte, v, n int) []byte {
	start := len(dst)
	for i := 0; i < n; i++ {
		dst = append(dst, 0)
	}
	for i := n - 1; i >= 0; i-- {
		dst[start+i] = Alphabet[v%31]
		v /= 31
	}
	return dst
}

// DecodeBase31 reads base-31 digits from s until a dot or the end of the
// string. Vowels and unknown characters are rejected.
func DecodeBase31(s string) (int, error) {
	v := 0
	for i := 0; i < len(s); i++ {
		d := decodeTable[s[i]]
		if d == -2 {
			break
		}
		if d < 0 || d >= 31 {
			return 0, ErrInvalidDigit
		}
		v = v*31 + int(d)
	}
	return v, nil
}
