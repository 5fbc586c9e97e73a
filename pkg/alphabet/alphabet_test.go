package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Alphabet
		wantErr bool
	}{
		{"roman", Roman, false},
		{"Greek", Greek, false},
		{" TIBETAN ", Tibetan, false},
		{"7", Katakana, false},
		{"14", Roman, true},
		{"klingon", Roman, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAlphabet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	for _, a := range All() {
		back, err := Parse(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
	assert.Equal(t, "alphabet(99)", Alphabet(99).String())
}

func TestToAlphabetRoman(t *testing.T) {
	assert.Equal(t, "49.4V", ToAlphabet("49.4v", Roman))
	assert.Equal(t, "VHXGB.1J9J-RX", ToAlphabet("VHXGB.1J9J-RX", Roman))
}

func TestToAlphabetGreek(t *testing.T) {
	assert.Equal(t, "ΑΒ.ΧΔ", ToAlphabet("AB.XD", Greek))
	// Greek has no E: packed codes use the A-only form.
	assert.Equal(t, "Α2.46", ToAlphabet("12.E0", Greek))
}

func TestRoundTrip(t *testing.T) {
	codes := []string{
		"49.4V",
		"VHXGB.1J9J",
		"XX.XX",
		"BCDFG.HJKL",
		"MNPQR.STVW",
		"XYZ0.1234",
		"5678.9A",
		"12.E0",
		"99.UZ",
		"G4.XB-RV2",
	}
	for _, a := range All() {
		for _, code := range codes {
			t.Run(a.String()+"/"+code, func(t *testing.T) {
				written := ToAlphabet(code, a)
				assert.Equal(t, code, ToRoman(written))
			})
		}
	}
}

func TestToRomanKeepsTerritory(t *testing.T) {
	code := ToAlphabet("49.4V", Cyrillic)
	assert.Equal(t, "NLD 49.4V", ToRoman("NLD "+code))

	greek := ToAlphabet("12.E0", Greek)
	assert.Equal(t, "US-CA 12.E0", ToRoman("US-CA "+greek))
}

func TestToRomanDigits(t *testing.T) {
	// Devanagari digits one and two.
	assert.Equal(t, "12", ToRoman("१२"))
}

func TestToRomanUnknown(t *testing.T) {
	assert.Equal(t, "4?", ToRoman("4中9.XX"))
	// A code point inside a known block that has no Roman meaning.
	assert.Equal(t, "?", ToRoman("आ"))
}
