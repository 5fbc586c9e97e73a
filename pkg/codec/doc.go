// Package codec holds the character-level building blocks of mapcodes and
// the record framing used by compiled datasets.
//
// # Base-31 Alphabet
//
// Mapcodes are written in a 31-character alphabet of the digits followed by
// the consonants:
//
//	0123456789BCDFGHJKLMNPQRSTVWXYZ
//
// The vowels A, E and U extend it to 34 values. They never appear in a
// freshly computed code; they are introduced only by Repack so that a code
// made of digits does not read as a number. On input O and I are accepted
// as 0 and 1, and letters are case-insensitive.
//
// # Packing Schemes
//
//   - EncodeTriple packs a 168x176 cell into three characters.
//   - EncodeSixWide numbers a rectangular grid in columns of six, with the
//     last column absorbing the remainder.
//   - Repack, RepackAOnly and Unpack convert all-digit codes to and from
//     their vowel forms.
//
// # Record Format
//
// Compiled datasets are a stream of frames:
//
//	[CRC32(4)][Kind(2)][Version(2)][KeySize(4)][ValueSize(4)][Key][Value]
//
// All integers are little-endian. The CRC32 (IEEE) covers every byte after
// the CRC field, so corruption anywhere in a frame is caught by Validate.
//
// # Thread Safety
//
// All functions are pure and RecordCodec holds no state; both are safe for
// concurrent use.
package codec
