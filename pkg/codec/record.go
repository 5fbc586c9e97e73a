package codec

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/pkg/errors"
)

// RecordKind tags what a framed record carries in a compiled dataset.
type RecordKind uint16

const (
	KindHeader RecordKind = iota + 1
	KindTerritory
	KindBoundary
	KindAlias
	KindParent
)

// FormatVersion is written into every frame.
const FormatVersion uint16 = 1

// HeaderSize is the fixed frame header length.
const HeaderSize = 16

// Record is one CRC-protected frame of a compiled dataset
type Record struct {
	CRC32     uint32     // checksum over everything after this field
	Kind      RecordKind // payload kind
	Version   uint16     // FormatVersion at write time
	KeySize   uint32
	ValueSize uint32
	Key       []byte
	Value     []byte
}

// RecordCodec handles framing of dataset records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode frames a key/value pair of the given kind.
// Format: [CRC32(4)][Kind(2)][Version(2)][KeySize(4)][ValueSize(4)][Key][Value]
func (c *RecordCodec) Encode(kind RecordKind, key, value []byte) ([]byte, error) {
	r, err := NewRecord(kind, key, value)
	if err != nil {
		return nil, err
	}
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:], r.CRC32)
	binary.LittleEndian.PutUint16(buf[4:], uint16(r.Kind))
	binary.LittleEndian.PutUint16(buf[6:], r.Version)
	binary.LittleEndian.PutUint32(buf[8:], r.KeySize)
	binary.LittleEndian.PutUint32(buf[12:], r.ValueSize)
	copy(buf[HeaderSize:], r.Key)
	copy(buf[HeaderSize+int(r.KeySize):], r.Value)
	return buf, nil
}

// Decode parses a single frame from data. The record's Key and Value alias data.
func (c *RecordCodec) Decode(data []byte) (*Record, error) {
	if len(data) < HeaderSize {
		return nil, errors.New("data too short for record header")
	}
	r := readHeader(data)
	total := HeaderSize + int(r.KeySize) + int(r.ValueSize)
	if len(data) < total {
		return nil, errors.Errorf("data too short for key/value sizes: %d < %d", len(data), total)
	}
	r.Key = data[HeaderSize : HeaderSize+int(r.KeySize)]
	r.Value = data[HeaderSize+int(r.KeySize) : total]
	return r, nil
}

// ReadFrom reads the next frame from rd. It returns io.EOF at a clean end
// of stream and io.ErrUnexpectedEOF for a truncated frame.
func (c *RecordCodec) ReadFrom(rd io.Reader) (*Record, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(rd, hdr[:]); err != nil {
		return nil, err
	}
	r := readHeader(hdr[:])
	body := make([]byte, int(r.KeySize)+int(r.ValueSize))
	if _, err := io.ReadFull(rd, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.Key = body[:r.KeySize]
	r.Value = body[r.KeySize:]
	return r, nil
}

func readHeader(data []byte) *Record {
	return &Record{
		CRC32:     binary.LittleEndian.Uint32(data[0:4]),
		Kind:      RecordKind(binary.LittleEndian.Uint16(data[4:6])),
		Version:   binary.LittleEndian.Uint16(data[6:8]),
		KeySize:   binary.LittleEndian.Uint32(data[8:12]),
		ValueSize: binary.LittleEndian.Uint32(data[12:16]),
	}
}

// Validate checks the integrity of a record using CRC32
func (r *Record) Validate() error {
	if sum := r.calculateCRC32(); r.CRC32 != sum {
		return errors.Errorf("CRC32 mismatch: %d != %d", r.CRC32, sum)
	}
	if r.Version != FormatVersion {
		return errors.Errorf("unsupported format version %d", r.Version)
	}
	return nil
}

// Size returns the total size of the record when encoded
func (r *Record) Size() int {
	return HeaderSize + len(r.Key) + len(r.Value)
}

// NewRecord creates a new unframed record.
func NewRecord(kind RecordKind, key, value []byte) (*Record, error) {
	if uint64(len(key)) > uint64(^uint32(0)) || uint64(len(value)) > uint64(^uint32(0)) {
		return nil, errors.New("record too large")
	}
	return &Record{
		Kind:      kind,
		Version:   FormatVersion,
		KeySize:   uint32(len(key)),
		ValueSize: uint32(len(value)),
		Key:       key,
		Value:     value,
	}, nil
}

func (r *Record) calculateCRC32() uint32 {
	var hdr [12]byte
	binary.LittleEndian.PutUint16(hdr[0:], uint16(r.Kind))
	binary.LittleEndian.PutUint16(hdr[2:], r.Version)
	binary.LittleEndian.PutUint32(hdr[4:], r.KeySize)
	binary.LittleEndian.PutUint32(hdr[8:], r.ValueSize)

	crc := crc32.NewIEEE()
	_, _ = crc.Write(hdr[:])
	_, _ = crc.Write(r.Key)
	_, _ = crc.Write(r.Value)
	return crc.Sum32()
}
