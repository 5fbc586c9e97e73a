package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleBijective(t *testing.T) {
	seen := make(map[string]struct{}, TripleWidth*TripleHeight)
	for x := 0; x < TripleWidth; x++ {
		for y := 0; y < TripleHeight; y++ {
			s := string(EncodeTriple(x, y))
			require.Len(t, s, 3)
			_, dup := seen[s]
			require.False(t, dup, "duplicate triple %s for (%d,%d)", s, x, y)
			seen[s] = struct{}{}

			dx, dy, err := DecodeTriple(s)
			require.NoError(t, err)
			require.Equal(t, x, dx)
			require.Equal(t, y, dy)
		}
	}
}

func TestTripleDecodeCanonical(t *testing.T) {
	digits := Alphabet[:31]
	valid := 0
	for i := 0; i < 31; i++ {
		for j := 0; j < 31; j++ {
			for k := 0; k < 31; k++ {
				s := string([]byte{digits[i], digits[j], digits[k]})
				x, y, err := DecodeTriple(s)
				if err != nil {
					continue
				}
				valid++
				require.Less(t, x, TripleWidth)
				require.Less(t, y, TripleHeight)
				require.Equal(t, s, string(EncodeTriple(x, y)))
			}
		}
	}
	assert.Equal(t, TripleWidth*TripleHeight, valid)
}

func TestTripleBranches(t *testing.T) {
	assert.Equal(t, "000", string(EncodeTriple(0, 0)))
	// first row of the lower strips
	s := EncodeTriple(0, 136)
	assert.Equal(t, byte('S'), s[0])
	s = EncodeTriple(167, 175)
	assert.Equal(t, byte('Z'), s[0])
}

func TestDecodeTripleErrors(t *testing.T) {
	for _, s := range []string{"", "12", "A00", "0ZZ", "RZZ", "ZZZ"} {
		_, _, err := DecodeTriple(s)
		assert.Error(t, err, s)
	}
}

func TestSixWideRoundTrip(t *testing.T) {
	for width := 1; width <= 40; width++ {
		for height := 1; height <= 8; height++ {
			seen := make([]bool, width*height)
			for x := 0; x < width; x++ {
				for y := 0; y < height; y++ {
					v := EncodeSixWide(x, y, width, height)
					require.True(t, v >= 0 && v < width*height, "w=%d h=%d x=%d y=%d v=%d", width, height, x, y, v)
					require.False(t, seen[v])
					seen[v] = true
					dx, dy := DecodeSixWide(v, width, height)
					require.Equal(t, x, dx)
					require.Equal(t, y, dy)
				}
			}
		}
	}
}
