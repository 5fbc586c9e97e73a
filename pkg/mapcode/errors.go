package mapcode

import (
	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/geo"
	"github.com/ssargent/mapcode/pkg/territory"
)

// Format errors, reported by ParseFormat and therefore by Decode.
var (
	ErrUnexpectedDot             = errors.New("unexpected dot")
	ErrMissingDot                = errors.New("missing dot")
	ErrUnexpectedHyphen          = errors.New("unexpected hyphen")
	ErrInvalidVowel              = errors.New("vowel in invalid position")
	ErrBadTerritoryFormat        = errors.New("bad territory format")
	ErrTrailingCharacters        = errors.New("trailing characters")
	ErrInvalidCharacter          = errors.New("invalid character")
	ErrAllDigitCode              = errors.New("mapcode consists of digits only")
	ErrExtensionInvalidLength    = errors.New("invalid extension length")
	ErrExtensionInvalidCharacter = errors.New("invalid extension character")
	ErrInvalidEndVowels          = codec.ErrInvalidEndVowels
)

// Semantic errors.
var (
	ErrUnknownTerritory     = territory.ErrUnknownTerritory
	ErrMapcodeUndecodable   = errors.New("mapcode cannot be decoded")
	ErrExtensionUndecodable = errors.New("extension cannot be decoded")
	ErrBadMapcodeLength     = errors.New("bad mapcode length")
	ErrMissingTerritory     = errors.New("mapcode requires a territory")
	ErrBadCoordinate        = geo.ErrBadCoordinate
)

// ErrIncomplete is returned by ParseFormat when the input is a valid prefix
// of a mapcode. Callers validating partial input can treat it as "keep
// typing".
var ErrIncomplete = errors.New("incomplete mapcode")

// IsFormatError reports whether err is one of the format errors, including
// ErrIncomplete.
func IsFormatError(err error) bool {
	for _, f := range formatErrors {
		if errors.Is(err, f) {
			return true
		}
	}
	return false
}

var formatErrors = []error{
	ErrUnexpectedDot, ErrMissingDot, ErrUnexpectedHyphen, ErrInvalidVowel,
	ErrBadTerritoryFormat, ErrTrailingCharacters, ErrInvalidCharacter,
	ErrAllDigitCode, ErrExtensionInvalidLength, ErrExtensionInvalidCharacter,
	ErrInvalidEndVowels, ErrBadMapcodeLength, ErrIncomplete,
}
