// Package mapcode encodes coordinates into mapcodes and decodes them back.
//
// A mapcode is a short code such as "NLD 49.4V" that is only meaningful
// together with its territory. An Engine works against a territory.Table;
// each territory owns an ordered list of boundary records, and the first
// record that can express a point decides its shortest code.
//
// # Code Constructions
//
// Every record is coded with one of four constructions, chosen by its kind
// and flags:
//
//   - grid: a prefix selects a block of the record, a postfix a cell of
//     the block.
//   - nameless: small records sharing a codex divide one code space, so
//     the prefix need not name them.
//   - autoheader: consecutive records of the same codex chain their code
//     spaces into one.
//   - pipe header: a grid behind a fixed leading letter.
//
// Up to eight extension characters after a hyphen refine the position
// inside the cell; MaxErrorInMeters gives the resulting precision.
//
// # Decoding
//
// ParseFormat checks the shape of the input with a table-driven scanner
// and splits it into Elements. Decode then resolves the territory, finds
// the first record whose codex matches and decodes the cell. Codes of
// restricted records must land inside an earlier record of the territory.
//
// # Errors
//
// All failures are sentinel errors matched with errors.Is. IsFormatError
// separates input that is not shaped like a mapcode from input that is,
// but does not decode.
//
// # Thread Safety
//
// An Engine holds only its read-only table and is safe for concurrent use.
package mapcode
