package alphabet

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/codec"
)

// Alphabet is a script a mapcode can be written in.
type Alphabet int

const (
	Roman Alphabet = iota
	Greek
	Cyrillic
	Hebrew
	Devanagari
	Malayalam
	Georgian
	Katakana
	Thai
	Lao
	Armenian
	Bengali
	Gurmukhi
	Tibetan

	count
)

// ErrUnknownAlphabet is returned by Parse for names it does not know.
var ErrUnknownAlphabet = errors.New("unknown alphabet")

var names = [count]string{
	"roman", "greek", "cyrillic", "hebrew", "devanagari", "malayalam", "georgian",
	"katakana", "thai", "lao", "armenian", "bengali", "gurmukhi", "tibetan",
}

// All returns every supported alphabet in numeric order.
func All() []Alphabet {
	out := make([]Alphabet, count)
	for i := range out {
		out[i] = Alphabet(i)
	}
	return out
}

func (a Alphabet) String() string {
	if !a.Valid() {
		return "alphabet(" + strconv.Itoa(int(a)) + ")"
	}
	return names[a]
}

// Valid reports whether a is a supported alphabet.
func (a Alphabet) Valid() bool { return a >= 0 && a < count }

// Parse returns the alphabet with the given name, case-insensitively, or
// with the given number.
func Parse(name string) (Alphabet, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == s {
			return Alphabet(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Alphabet(n).Valid() {
		return Alphabet(n), nil
	}
	return Roman, errors.Wrapf(ErrUnknownAlphabet, "%q", name)
}

// hasVowelE reports whether the alphabet can write the vowels E and U.
func (a Alphabet) hasVowelE() bool { return glyphs[a]['E'-'A'] != '?' }

// ToAlphabet writes a mapcode, with optional extension but without
// territory, in alphabet a. Alphabets without E and U get the code packed
// with the vowel A only. Characters other than letters and digits are
// kept.
func ToAlphabet(code string, a Alphabet) string {
	if !a.Valid() {
		a = Roman
	}
	code = strings.ToUpper(code)
	proper, ext, hasExt := strings.Cut(code, "-")
	if !a.hasVowelE() && strings.ContainsAny(proper, "EU") {
		if unpacked, err := codec.Unpack(proper); err == nil {
			proper = codec.RepackAOnly(unpacked)
		}
	}
	if hasExt {
		proper += "-" + ext
	}

	var sb strings.Builder
	sb.Grow(len(proper) * 3)
	for i := 0; i < len(proper); i++ {
		c := proper[i]
		switch {
		case c >= 'A' && c <= 'Z':
			sb.WriteRune(glyphs[a][c-'A'])
		case c >= '0' && c <= '9':
			sb.WriteRune(glyphs[a][26+c-'0'])
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// ToRoman writes a mapcode given in any supported alphabet in Roman. ASCII
// passes through. An unknown character becomes '?' and ends the output. A
// code packed with the vowel A only is repacked the Roman way.
func ToRoman(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}
		c, ok := romanOf(r)
		sb.WriteByte(c)
		if !ok {
			break
		}
	}
	return repackRoman(sb.String())
}

func romanOf(r rune) (byte, bool) {
	for _, sr := range scriptRanges {
		if r < sr.lo || r > sr.hi {
			continue
		}
		if sr.roman == "" {
			return byte('0' + r - sr.lo), true
		}
		c := sr.roman[r-sr.lo]
		return c, c != '?'
	}
	return '?', false
}

// repackRoman repacks the code part of s, the text after the last space,
// when it was packed for an alphabet without E and U.
func repackRoman(s string) string {
	start := strings.LastIndexAny(s, " \t") + 1
	code := strings.ToUpper(s[start:])
	if !strings.HasPrefix(code, "A") {
		return s
	}
	proper, ext, hasExt := strings.Cut(code, "-")
	unpacked, err := codec.Unpack(proper)
	if err != nil || unpacked == proper {
		return s
	}
	proper = codec.Repack(unpacked)
	if hasExt {
		proper += "-" + ext
	}
	return s[:start] + proper
}
