package mapcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Elements
	}{
		{
			name:  "territory and code",
			input: "NLD 49.4V",
			want:  Elements{TerritoryISO: "NLD", ProperMapcode: "49.4V", IndexOfDot: 2},
		},
		{
			name:  "subdivision lower case with extension",
			input: "  us-ca  cj7.rn6-4k  ",
			want:  Elements{TerritoryISO: "US-CA", ProperMapcode: "CJ7.RN6", IndexOfDot: 3, Extension: "4K"},
		},
		{
			name:  "no territory",
			input: "XX.XX",
			want:  Elements{ProperMapcode: "XX.XX", IndexOfDot: 2},
		},
		{
			name:  "international",
			input: "VHXGB.1J9J",
			want:  Elements{ProperMapcode: "VHXGB.1J9J", IndexOfDot: 5},
		},
		{
			name:  "O and I read as digits",
			input: "NLD OI.LZM",
			want:  Elements{TerritoryISO: "NLD", ProperMapcode: "01.LZM", IndexOfDot: 2},
		},
		{
			name:  "packed digits",
			input: "NLD 49.E0",
			want:  Elements{TerritoryISO: "NLD", ProperMapcode: "49.E0", IndexOfDot: 2},
		},
		{
			name:  "long extension",
			input: "NLD JD.LZM-12345678",
			want:  Elements{TerritoryISO: "NLD", ProperMapcode: "JD.LZM", IndexOfDot: 2, Extension: "12345678"},
		},
		{
			name:  "tab separator",
			input: "RUS\tGV1.5T9",
			want:  Elements{TerritoryISO: "RUS", ProperMapcode: "GV1.5T9", IndexOfDot: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrIncomplete},
		{"   ", ErrIncomplete},
		{"NLD", ErrIncomplete},
		{"NLD 49", ErrIncomplete},
		{"NLD 49.", ErrIncomplete},
		{"NLD 49.4", ErrIncomplete},
		{"NLD 1234.5", ErrIncomplete},
		{"NLD 49.4V-", ErrIncomplete},
		{".49", ErrUnexpectedDot},
		{"NLD 49..4V", ErrUnexpectedDot},
		{"NLD 4.9V", ErrUnexpectedDot},
		{"-NLD", ErrUnexpectedHyphen},
		{"NLD 49.4V-1-2", ErrUnexpectedHyphen},
		{"ABCD 49.4V", ErrMissingDot},
		{"NLD 123456.7", ErrMissingDot},
		{"N 49.4V", ErrBadTerritoryFormat},
		{"US-CALIF 49.4V", ErrBadTerritoryFormat},
		{"NLD 49.4VXYZ", ErrBadMapcodeLength},
		{"NLD 49.4V X", ErrTrailingCharacters},
		{"NLD 49.4V!", ErrInvalidCharacter},
		{"NLD 49.45", ErrAllDigitCode},
		{"NLD 49.4V-123456789", ErrExtensionInvalidLength},
		{"NLD 49.4V-E", ErrExtensionInvalidCharacter},
		{"NLD 49.4V-1Z", ErrExtensionInvalidCharacter},
		{"NLD 4A.XX", ErrInvalidVowel},
		{"NLD 49.4E", ErrInvalidVowel},
		{"NLD 12.UU", ErrInvalidEndVowels},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseFormat(tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsFormatError(err))
		})
	}
}

func TestElements(t *testing.T) {
	el, err := ParseFormat("us-ca cj7.rn6-4k")
	require.NoError(t, err)
	assert.Equal(t, 3, el.PrefixLength())
	assert.Equal(t, 3, el.PostfixLength())
	assert.Equal(t, "CJ7.RN6-4K", el.Code())
	assert.Equal(t, "US-CA CJ7.RN6-4K", el.String())

	again, err := ParseFormat(el.String())
	require.NoError(t, err)
	assert.Equal(t, el, again)

	el, err = ParseFormat("VHXGB.1J9J")
	require.NoError(t, err)
	assert.Equal(t, "VHXGB.1J9J", el.String())
}

func TestIsFormatError(t *testing.T) {
	assert.False(t, IsFormatError(nil))
	assert.False(t, IsFormatError(ErrMapcodeUndecodable))
	assert.False(t, IsFormatError(ErrUnknownTerritory))
	assert.True(t, IsFormatError(ErrIncomplete))
}
