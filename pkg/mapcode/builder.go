package mapcode

import (
	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/codec"
)

// maxCodeLength bounds a proper mapcode: a header letter and a 5.4 code.
const maxCodeLength = 1 + 5 + 1 + 4

var errCodeOverflow = errors.New("mapcode buffer overflow")

// codeBuilder assembles a code into a fixed-capacity buffer. Writes past
// the capacity are dropped and reported by result.
type codeBuilder struct {
	buf [maxCodeLength]byte
	n   int
	err error
}

func (b *codeBuilder) room(n int) bool {
	if b.err == nil && b.n+n > len(b.buf) {
		b.err = errCodeOverflow
	}
	return b.err == nil
}

func (b *codeBuilder) writeByte(c byte) {
	if b.room(1) {
		b.buf[b.n] = c
		b.n++
	}
}

func (b *codeBuilder) writeBase31(v, n int) {
	if !b.room(n) {
		return
	}
	for i := n - 1; i >= 0; i-- {
		b.buf[b.n+i] = codec.Alphabet[v%31]
		v /= 31
	}
	b.n += n
}

func (b *codeBuilder) writeTriple(difx, dify int) {
	if b.room(3) {
		b.n += copy(b.buf[b.n:], codec.EncodeTriple(difx, dify))
	}
}

// swap exchanges the characters at positions i and j, counted from start.
func (b *codeBuilder) swap(start, i, j int) {
	if b.err == nil && start+i < b.n && start+j < b.n {
		b.buf[start+i], b.buf[start+j] = b.buf[start+j], b.buf[start+i]
	}
}

// insertDot moves the characters from position at onwards one to the right
// and puts a dot at that position.
func (b *codeBuilder) insertDot(at int) {
	if at > b.n || !b.room(1) {
		return
	}
	copy(b.buf[at+1:b.n+1], b.buf[at:b.n])
	b.buf[at] = '.'
	b.n++
}

// shiftDotLeft turns "ab.cde", counted from start, into "a.bcde".
func (b *codeBuilder) shiftDotLeft(start int) {
	if b.err == nil && start+2 < b.n && b.buf[start+2] == '.' {
		b.buf[start+2] = b.buf[start+1]
		b.buf[start+1] = '.'
	}
}

func (b *codeBuilder) len() int { return b.n }

func (b *codeBuilder) result() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return string(b.buf[:b.n]), nil
}
