package mapcode

import (
	"strings"

	"github.com/ssargent/mapcode/pkg/codec"
)

// Elements is the decomposition of a mapcode string. It carries no
// territory semantics; the territory is only syntactically checked.
type Elements struct {
	// TerritoryISO is the upper-cased territory code, or "" when absent.
	TerritoryISO string
	// ProperMapcode is prefix "." postfix in canonical form: upper case,
	// O and I read as 0 and 1, all-digit codes packed.
	ProperMapcode string
	// IndexOfDot is the position of the dot in ProperMapcode.
	IndexOfDot int
	// Extension holds the precision characters without the hyphen.
	Extension string
}

// PrefixLength is the number of characters before the dot.
func (e Elements) PrefixLength() int { return e.IndexOfDot }

// PostfixLength is the number of characters after the dot.
func (e Elements) PostfixLength() int { return len(e.ProperMapcode) - e.IndexOfDot - 1 }

// Code returns the proper mapcode with its extension.
func (e Elements) Code() string {
	if e.Extension == "" {
		return e.ProperMapcode
	}
	return e.ProperMapcode + "-" + e.Extension
}

// String returns the canonical form of the whole input.
func (e Elements) String() string {
	if e.TerritoryISO == "" {
		return e.Code()
	}
	return e.TerritoryISO + " " + e.Code()
}

type tokenClass uint8

const (
	tokSeparator tokenClass = iota
	tokDot
	tokChar
	tokVowel
	tokEnd
	tokHyphen
	numTokenClasses
)

func classify(c byte) (tokenClass, bool) {
	switch {
	case c == ' ' || c == '\t':
		return tokSeparator, true
	case c == '.':
		return tokDot, true
	case c == '-':
		return tokHyphen, true
	case codec.IsVowel(c):
		return tokVowel, true
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return tokChar, true
	}
	return 0, false
}

type effect uint8

const (
	effectNone effect = iota
	effectCommitTerritory
	effectCommitMapcode
	effectCommitExtension
)

const stateDone = -1

// transition is one cell of the scanner table: either an error, or the next
// state together with what to do with the token scanned so far.
type transition struct {
	next   int
	effect effect
	err    error
}

func to(next int) transition { return transition{next: next} }

func commit(e effect, next int) transition { return transition{next: next, effect: e} }

func fail(err error) transition { return transition{err: err} }

func row(sep, dot, chr, vowel, end, hyphen transition) [numTokenClasses]transition {
	return [numTokenClasses]transition{sep, dot, chr, vowel, end, hyphen}
}

// States. 1-5 count the characters of the first word; it is a territory if
// a separator or a hyphen follows, or a mapcode prefix if a dot does.
// 25-27 count prefix characters after a territory, 7-10 postfix characters
// and 12-19 extension characters.
const (
	stStart          = 0
	stExtHyphen      = 11
	stAfterTerritory = 24
)

var stateTable = [...][numTokenClasses]transition{
	/* 0 */ row(to(0), fail(ErrUnexpectedDot), to(1), to(1), fail(ErrIncomplete), fail(ErrUnexpectedHyphen)),
	/* 1 */ row(fail(ErrBadTerritoryFormat), fail(ErrUnexpectedDot), to(2), to(2), fail(ErrIncomplete), fail(ErrUnexpectedHyphen)),
	/* 2 */ row(commit(effectCommitTerritory, 24), to(6), to(3), to(3), fail(ErrIncomplete), to(20)),
	/* 3 */ row(commit(effectCommitTerritory, 24), to(6), to(4), to(4), fail(ErrIncomplete), to(20)),
	/* 4 */ row(fail(ErrMissingDot), to(6), to(5), to(5), fail(ErrIncomplete), fail(ErrMissingDot)),
	/* 5 */ row(fail(ErrMissingDot), to(6), fail(ErrMissingDot), fail(ErrMissingDot), fail(ErrIncomplete), fail(ErrMissingDot)),
	/* 6 */ row(fail(ErrBadMapcodeLength), fail(ErrUnexpectedDot), to(7), to(7), fail(ErrIncomplete), fail(ErrBadMapcodeLength)),
	/* 7 */ row(fail(ErrBadMapcodeLength), fail(ErrUnexpectedDot), to(8), to(8), fail(ErrIncomplete), fail(ErrBadMapcodeLength)),
	/* 8 */ row(commit(effectCommitMapcode, 28), fail(ErrUnexpectedDot), to(9), to(9), commit(effectCommitMapcode, stateDone), commit(effectCommitMapcode, 11)),
	/* 9 */ row(commit(effectCommitMapcode, 28), fail(ErrUnexpectedDot), to(10), to(10), commit(effectCommitMapcode, stateDone), commit(effectCommitMapcode, 11)),
	/* 10 */ row(commit(effectCommitMapcode, 28), fail(ErrUnexpectedDot), fail(ErrBadMapcodeLength), fail(ErrBadMapcodeLength), commit(effectCommitMapcode, stateDone), commit(effectCommitMapcode, 11)),
	/* 11 */ row(fail(ErrExtensionInvalidLength), fail(ErrUnexpectedDot), to(12), fail(ErrExtensionInvalidCharacter), fail(ErrIncomplete), fail(ErrUnexpectedHyphen)),
	/* 12 */ extensionRow(13),
	/* 13 */ extensionRow(14),
	/* 14 */ extensionRow(15),
	/* 15 */ extensionRow(16),
	/* 16 */ extensionRow(17),
	/* 17 */ extensionRow(18),
	/* 18 */ extensionRow(19),
	/* 19 */ row(commit(effectCommitExtension, 28), fail(ErrUnexpectedDot), fail(ErrExtensionInvalidLength), fail(ErrExtensionInvalidCharacter), commit(effectCommitExtension, stateDone), fail(ErrUnexpectedHyphen)),
	/* 20 */ row(fail(ErrBadTerritoryFormat), fail(ErrBadTerritoryFormat), to(21), to(21), fail(ErrIncomplete), fail(ErrBadTerritoryFormat)),
	/* 21 */ row(fail(ErrBadTerritoryFormat), fail(ErrBadTerritoryFormat), to(22), to(22), fail(ErrIncomplete), fail(ErrBadTerritoryFormat)),
	/* 22 */ row(commit(effectCommitTerritory, 24), fail(ErrBadTerritoryFormat), to(23), to(23), fail(ErrIncomplete), fail(ErrBadTerritoryFormat)),
	/* 23 */ row(commit(effectCommitTerritory, 24), fail(ErrBadTerritoryFormat), fail(ErrBadTerritoryFormat), fail(ErrBadTerritoryFormat), fail(ErrIncomplete), fail(ErrBadTerritoryFormat)),
	/* 24 */ row(to(24), fail(ErrUnexpectedDot), to(25), to(25), fail(ErrIncomplete), fail(ErrUnexpectedHyphen)),
	/* 25 */ row(fail(ErrMissingDot), fail(ErrUnexpectedDot), to(26), to(26), fail(ErrIncomplete), fail(ErrMissingDot)),
	/* 26 */ row(fail(ErrMissingDot), to(6), to(27), to(27), fail(ErrIncomplete), fail(ErrMissingDot)),
	/* 27 */ row(fail(ErrMissingDot), to(6), to(4), to(4), fail(ErrIncomplete), fail(ErrMissingDot)),
	/* 28 */ row(to(28), fail(ErrTrailingCharacters), fail(ErrTrailingCharacters), fail(ErrTrailingCharacters), to(stateDone), fail(ErrTrailingCharacters)),
}

func extensionRow(next int) [numTokenClasses]transition {
	return row(commit(effectCommitExtension, 28), fail(ErrUnexpectedDot), to(next), fail(ErrExtensionInvalidCharacter), commit(effectCommitExtension, stateDone), fail(ErrUnexpectedHyphen))
}

// tokenStarts reports whether moving from one state to another begins a new
// word whose start position must be remembered.
func tokenStarts(from, next int) bool {
	return (from == stStart || from == stAfterTerritory || from == stExtHyphen) && next != from
}

// ParseFormat checks that input has the shape of a mapcode and splits it
// into its elements. It does not check that the territory exists or that
// the code decodes. A valid prefix of a mapcode yields ErrIncomplete.
func ParseFormat(input string) (Elements, error) {
	var (
		terr, code, ext string
		state           = stStart
		start           int
	)
	for i := 0; i <= len(input); i++ {
		class := tokEnd
		if i < len(input) {
			var ok bool
			if class, ok = classify(input[i]); !ok {
				return Elements{}, ErrInvalidCharacter
			}
		}
		tr := stateTable[state][class]
		if tr.err != nil {
			return Elements{}, tr.err
		}
		switch tr.effect {
		case effectCommitTerritory:
			terr = input[start:i]
		case effectCommitMapcode:
			code = input[start:i]
		case effectCommitExtension:
			ext = input[start:i]
		}
		if tokenStarts(state, tr.next) {
			start = i
		}
		state = tr.next
		if state == stateDone {
			break
		}
	}
	return buildElements(terr, code, ext)
}

func buildElements(terr, code, ext string) (Elements, error) {
	code = canonical(code)
	ext = canonical(ext)
	if strings.ContainsRune(ext, 'Z') {
		return Elements{}, ErrExtensionInvalidCharacter
	}
	if allDigits(code) {
		return Elements{}, ErrAllDigitCode
	}
	unpacked, err := codec.Unpack(code)
	if err != nil {
		return Elements{}, ErrInvalidEndVowels
	}
	if strings.ContainsAny(unpacked, "AEU") {
		return Elements{}, ErrInvalidVowel
	}
	return Elements{
		TerritoryISO:  strings.ToUpper(terr),
		ProperMapcode: code,
		IndexOfDot:    strings.IndexByte(code, '.'),
		Extension:     ext,
	}, nil
}

// canonical upper-cases s and reads O and I as the digits 0 and 1.
func canonical(s string) string {
	b := []byte(strings.ToUpper(s))
	for i, c := range b {
		switch c {
		case 'O':
			b[i] = '0'
		case 'I':
			b[i] = '1'
		}
	}
	return string(b)
}

func allDigits(code string) bool {
	for i := 0; i < len(code); i++ {
		if c := code[i]; c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
