package territory

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind selects the code construction strategy of a boundary record.
type Kind uint8

const (
	// Grid records are encoded with a plain prefix/postfix grid.
	Grid Kind = iota
	// PipeHeader records are grids whose code starts with a fixed letter.
	PipeHeader
	// AutoheaderPlus records chain into a shared code space, each member
	// starting on a rounded boundary.
	AutoheaderPlus
	// AutoheaderStar records chain into a shared code space without rounding.
	AutoheaderStar
)

var kindNames = [...]string{"grid", "pipe", "plus", "star"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsAutoheader reports whether k is one of the chained autoheader kinds.
func (k Kind) IsAutoheader() bool {
	return k == AutoheaderPlus || k == AutoheaderStar
}

// ParseKind is the inverse of Kind.String. The empty string is Grid.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Grid, nil
	}
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return Grid, errors.Errorf("unknown record kind %q", s)
}

// Boundary is a rectangle in microdegrees. Latitude is half-open
// [MinLat,MaxLat); longitude is half-open [MinLon,MaxLon) but may be
// matched with a full turn added or removed.
type Boundary struct {
	MinLon int
	MinLat int
	MaxLon int
	MaxLat int
}

// Contains reports whether the point lies in the boundary.
func (b Boundary) Contains(lat, lon int) bool {
	if lat < b.MinLat || lat >= b.MaxLat {
		return false
	}
	if lon >= b.MinLon && lon < b.MaxLon {
		return true
	}
	if lon+360000000 >= b.MinLon && lon+360000000 < b.MaxLon {
		return true
	}
	return lon-360000000 >= b.MinLon && lon-360000000 < b.MaxLon
}

// Extend grows the boundary by dLon and dLat microdegrees on every side.
// Negative values shrink it.
func (b Boundary) Extend(dLon, dLat int) Boundary {
	return Boundary{
		MinLon: b.MinLon - dLon,
		MinLat: b.MinLat - dLat,
		MaxLon: b.MaxLon + dLon,
		MaxLat: b.MaxLat + dLat,
	}
}

// Record is one boundary rectangle of a territory together with the
// parameters of the code that addresses points inside it.
type Record struct {
	Boundary

	// Codex is prefix length * 10 + postfix length.
	Codex        int
	Kind         Kind
	Nameless     bool
	Restricted   bool
	SpecialShape bool
	// SmartDivisor overrides the default grid divisors when above 1.
	SmartDivisor int
	// HeaderLetter is the leading code character of PipeHeader records.
	HeaderLetter byte
}

// PrefixLength is the number of characters before the dot.
func (r Record) PrefixLength() int { return r.Codex / 10 }

// PostfixLength is the number of characters after the dot.
func (r Record) PostfixLength() int { return r.Codex % 10 }

func (r Record) validate() error {
	pre, post := r.PrefixLength(), r.PostfixLength()
	if pre < 1 || pre > 5 || post < 1 || post > 4 {
		return errors.Errorf("invalid codex %d", r.Codex)
	}
	if r.MinLat >= r.MaxLat || r.MinLon >= r.MaxLon {
		return errors.Errorf("empty boundary %+v", r.Boundary)
	}
	if r.MinLat < -90000000 || r.MaxLat > 90000001 {
		return errors.Errorf("latitude out of range %+v", r.Boundary)
	}
	if r.SmartDivisor < 0 {
		return errors.Errorf("negative smart divisor %d", r.SmartDivisor)
	}
	if r.Nameless {
		if r.Codex != 21 && r.Codex != 22 && r.Codex != 13 {
			return errors.Errorf("codex %d cannot be nameless", r.Codex)
		}
		if r.SmartDivisor < 2 {
			return errors.New("nameless record needs a smart divisor")
		}
	}
	if r.Codex == 14 && r.Kind != PipeHeader {
		return errors.New("codex 14 is only valid with a header letter")
	}
	switch r.Kind {
	case PipeHeader:
		if !isConsonantOrDigit(r.HeaderLetter) {
			return errors.Errorf("invalid header letter %q", r.HeaderLetter)
		}
		if pre > 4 {
			return errors.Errorf("pipe header codex %d too long", r.Codex)
		}
	case AutoheaderPlus, AutoheaderStar:
		if pre+post < 4 {
			return errors.Errorf("autoheader codex %d is too short", r.Codex)
		}
		if r.Nameless {
			return errors.New("autoheader record cannot be nameless")
		}
	case Grid:
	default:
		return errors.Errorf("unknown kind %d", r.Kind)
	}
	return nil
}

func isConsonantOrDigit(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if c < 'B' || c > 'Z' {
		return false
	}
	return !strings.ContainsRune("EIOU", rune(c))
}
