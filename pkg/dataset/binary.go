package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/territory"
)

// headerKey identifies the first frame of a compiled dataset.
const headerKey = "mapcode-dataset"

// ErrCorruption is returned when a compiled dataset fails its checks.
var ErrCorruption = errors.New("corrupt compiled dataset")

// Layout of the flags word of a boundary frame.
const (
	flagCodexMask    = 0x3f
	flagNameless     = 1 << 6
	flagKindShift    = 7
	flagKindMask     = 0x3
	flagRestricted   = 1 << 9
	flagSpecial      = 1 << 10
	flagLetterShift  = 11
	flagLetterMask   = 0x1f
	flagDivisorShift = 16
	maxDivisor       = 0xffff
)

func packFlags(rec territory.Record) (uint32, error) {
	if rec.Codex < 0 || rec.Codex > flagCodexMask {
		return 0, errors.Errorf("codex %d does not fit", rec.Codex)
	}
	if rec.SmartDivisor < 0 || rec.SmartDivisor > maxDivisor {
		return 0, errors.Errorf("smart divisor %d does not fit", rec.SmartDivisor)
	}
	f := uint32(rec.Codex) | uint32(rec.Kind)<<flagKindShift | uint32(rec.SmartDivisor)<<flagDivisorShift
	if rec.Nameless {
		f |= flagNameless
	}
	if rec.Restricted {
		f |= flagRestricted
	}
	if rec.SpecialShape {
		f |= flagSpecial
	}
	if rec.Kind == territory.PipeHeader {
		i := strings.IndexByte(codec.Alphabet[:31], rec.HeaderLetter)
		if i < 0 {
			return 0, errors.Errorf("header letter %q does not fit", rec.HeaderLetter)
		}
		f |= uint32(i) << flagLetterShift
	}
	return f, nil
}

func unpackFlags(f uint32, rec *territory.Record) {
	rec.Codex = int(f & flagCodexMask)
	rec.Nameless = f&flagNameless != 0
	rec.Kind = territory.Kind((f >> flagKindShift) & flagKindMask)
	rec.Restricted = f&flagRestricted != 0
	rec.SpecialShape = f&flagSpecial != 0
	rec.SmartDivisor = int(f >> flagDivisorShift)
	if rec.Kind == territory.PipeHeader {
		rec.HeaderLetter = codec.Alphabet[(f>>flagLetterShift)&flagLetterMask]
	}
}

// FrameWriter appends CRC-framed records to a stream.
type FrameWriter struct {
	w     *bufio.Writer
	codec *codec.RecordCodec
	n     int64
}

// NewFrameWriter returns a writer buffering into w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: bufio.NewWriter(w), codec: codec.NewRecordCodec()}
}

// Put frames and writes one record.
func (fw *FrameWriter) Put(kind codec.RecordKind, key, value []byte) error {
	data, err := fw.codec.Encode(kind, key, value)
	if err != nil {
		return err
	}
	n, err := fw.w.Write(data)
	fw.n += int64(n)
	return err
}

// Size returns the number of bytes written so far.
func (fw *FrameWriter) Size() int64 { return fw.n }

// Flush writes buffered frames to the underlying writer.
func (fw *FrameWriter) Flush() error { return fw.w.Flush() }

// FrameReader reads CRC-framed records from a stream.
type FrameReader struct {
	r     *bufio.Reader
	codec *codec.RecordCodec
}

// NewFrameReader returns a reader over r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r), codec: codec.NewRecordCodec()}
}

// Next returns the next validated frame, or io.EOF at the end of the
// stream. Truncated or damaged frames yield ErrCorruption.
func (fr *FrameReader) Next() (*codec.Record, error) {
	rec, err := fr.codec.ReadFrom(fr.r)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(ErrCorruption, err.Error())
	}
	if err := rec.Validate(); err != nil {
		return nil, errors.Wrap(ErrCorruption, err.Error())
	}
	return rec, nil
}

func putU32(b *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}

func putString(b *bytes.Buffer, s string) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(len(s)))
	b.Write(tmp[:])
	b.WriteString(s)
}

// payload reads the fields of a frame value in order.
type payload struct {
	b   []byte
	err error
}

func (p *payload) u32() uint32 {
	if p.err != nil || len(p.b) < 4 {
		p.err = ErrCorruption
		return 0
	}
	v := binary.LittleEndian.Uint32(p.b)
	p.b = p.b[4:]
	return v
}

func (p *payload) str() string {
	if p.err != nil || len(p.b) < 2 {
		p.err = ErrCorruption
		return ""
	}
	n := int(binary.LittleEndian.Uint16(p.b))
	if len(p.b) < 2+n {
		p.err = ErrCorruption
		return ""
	}
	s := string(p.b[2 : 2+n])
	p.b = p.b[2+n:]
	return s
}

// WriteBinary writes d in the compiled form.
func WriteBinary(w io.Writer, d *Dataset) error {
	fw := NewFrameWriter(w)

	var hdr bytes.Buffer
	putU32(&hdr, uint32(len(d.Territories)))
	putU32(&hdr, uint32(len(d.Records)))
	putU32(&hdr, uint32(len(d.Parents)))
	putU32(&hdr, uint32(len(d.Aliases)))
	if err := fw.Put(codec.KindHeader, []byte(headerKey), hdr.Bytes()); err != nil {
		return err
	}

	for _, p := range d.Parents {
		if err := fw.Put(codec.KindParent, []byte(p.Alpha3), []byte(p.Alpha2)); err != nil {
			return err
		}
	}
	froms := make([]string, 0, len(d.Aliases))
	for from := range d.Aliases {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		if err := fw.Put(codec.KindAlias, []byte(from), []byte(d.Aliases[from])); err != nil {
			return err
		}
	}

	for _, t := range d.Territories {
		var v bytes.Buffer
		putU32(&v, uint32(int32(t.Parent)))
		putU32(&v, uint32(t.FirstRecord))
		putU32(&v, uint32(t.LastRecord))
		putString(&v, t.Name)
		putU32(&v, uint32(len(t.Aliases)))
		for _, a := range t.Aliases {
			putString(&v, a)
		}
		if err := fw.Put(codec.KindTerritory, []byte(t.Code), v.Bytes()); err != nil {
			return err
		}
	}

	for i, rec := range d.Records {
		flags, err := packFlags(rec)
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		var key, v bytes.Buffer
		putU32(&key, uint32(i))
		putU32(&v, uint32(int32(rec.MinLon)))
		putU32(&v, uint32(int32(rec.MinLat)))
		putU32(&v, uint32(int32(rec.MaxLon)))
		putU32(&v, uint32(int32(rec.MaxLat)))
		putU32(&v, flags)
		if err := fw.Put(codec.KindBoundary, key.Bytes(), v.Bytes()); err != nil {
			return err
		}
	}
	return fw.Flush()
}

// ReadBinary reads a compiled dataset.
func ReadBinary(r io.Reader) (*Dataset, error) {
	fr := NewFrameReader(r)
	first, err := fr.Next()
	if err == io.EOF {
		return nil, errors.Wrap(ErrCorruption, "empty stream")
	}
	if err != nil {
		return nil, err
	}
	if first.Kind != codec.KindHeader || string(first.Key) != headerKey {
		return nil, errors.Wrap(ErrCorruption, "missing header")
	}
	hp := payload{b: first.Value}
	nTerritories, nRecords, nParents, nAliases := int(hp.u32()), int(hp.u32()), int(hp.u32()), int(hp.u32())
	if hp.err != nil {
		return nil, errors.Wrap(ErrCorruption, "short header")
	}

	d := &Dataset{
		Territories: make([]territory.Territory, 0, nTerritories),
		Records:     make([]territory.Record, 0, nRecords),
	}
	if nAliases > 0 {
		d.Aliases = make(map[string]string, nAliases)
	}
	for {
		f, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p := payload{b: f.Value}
		switch f.Kind {
		case codec.KindParent:
			d.Parents = append(d.Parents, territory.ParentCountry{Alpha2: string(f.Value), Alpha3: string(f.Key)})
		case codec.KindAlias:
			if d.Aliases == nil {
				d.Aliases = make(map[string]string)
			}
			d.Aliases[string(f.Key)] = string(f.Value)
		case codec.KindTerritory:
			t := territory.Territory{Code: string(f.Key)}
			t.Parent = territory.ID(int32(p.u32()))
			t.FirstRecord = int(p.u32())
			t.LastRecord = int(p.u32())
			t.Name = p.str()
			n := int(p.u32())
			for i := 0; i < n && p.err == nil; i++ {
				t.Aliases = append(t.Aliases, p.str())
			}
			d.Territories = append(d.Territories, t)
		case codec.KindBoundary:
			kp := payload{b: f.Key}
			if idx := int(kp.u32()); kp.err != nil || idx != len(d.Records) {
				return nil, errors.Wrapf(ErrCorruption, "boundary %d out of order", len(d.Records))
			}
			var rec territory.Record
			rec.MinLon = int(int32(p.u32()))
			rec.MinLat = int(int32(p.u32()))
			rec.MaxLon = int(int32(p.u32()))
			rec.MaxLat = int(int32(p.u32()))
			unpackFlags(p.u32(), &rec)
			d.Records = append(d.Records, rec)
		default:
			return nil, errors.Wrapf(ErrCorruption, "unexpected frame kind %d", f.Kind)
		}
		if p.err != nil {
			return nil, errors.Wrapf(ErrCorruption, "short %d frame", f.Kind)
		}
	}

	if len(d.Territories) != nTerritories || len(d.Records) != nRecords ||
		len(d.Parents) != nParents || len(d.Aliases) != nAliases {
		return nil, errors.Wrap(ErrCorruption, "frame counts do not match header")
	}
	return d, nil
}

// ReadBinaryFile reads a compiled dataset from path.
func ReadBinaryFile(path string) (*Dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer fh.Close()
	d, err := ReadBinary(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return d, nil
}

// WriteBinaryFile writes d to path, creating parent directories, and syncs
// it to disk.
func WriteBinaryFile(path string, d *Dataset) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(err, "create dataset directory")
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "create dataset")
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close dataset")
		}
	}()
	if err := WriteBinary(fh, d); err != nil {
		return err
	}
	return errors.Wrap(fh.Sync(), "sync dataset")
}
