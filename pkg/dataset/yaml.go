package dataset

import (
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/mapcode/pkg/territory"
)

// File is the YAML form of a dataset.
type File struct {
	// Disambiguation lists the parent countries in priority order.
	Disambiguation []ParentDef    `yaml:"disambiguation,omitempty"`
	Aliases        []AliasDef     `yaml:"aliases,omitempty"`
	Territories    []TerritoryDef `yaml:"territories"`
}

// ParentDef is a parent country with its two and three letter codes.
type ParentDef struct {
	Alpha2 string `yaml:"alpha2"`
	Alpha3 string `yaml:"alpha3"`
}

// AliasDef makes From resolve like To.
type AliasDef struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// TerritoryDef is one territory. Parent names the alpha-3 code of the
// country of a subdivision.
type TerritoryDef struct {
	Code    string      `yaml:"code"`
	Name    string      `yaml:"name,omitempty"`
	Parent  string      `yaml:"parent,omitempty"`
	Aliases []string    `yaml:"aliases,omitempty"`
	Records []RecordDef `yaml:"records"`
}

// RecordDef is one boundary record. Bounds are given either in degrees with
// Lat and Lon, or exactly in microdegrees with Micro as
// [minLat, maxLat, minLon, maxLon].
type RecordDef struct {
	Lat        []float64 `yaml:"lat,omitempty,flow"`
	Lon        []float64 `yaml:"lon,omitempty,flow"`
	Micro      []int     `yaml:"micro,omitempty,flow"`
	Codex      int       `yaml:"codex"`
	Kind       string    `yaml:"kind,omitempty"`
	Nameless   bool      `yaml:"nameless,omitempty"`
	Restricted bool      `yaml:"restricted,omitempty"`
	Special    bool      `yaml:"special,omitempty"`
	Divisor    int       `yaml:"divisor,omitempty"`
	Letter     string    `yaml:"letter,omitempty"`
}

func microDegrees(d float64) int { return int(math.Round(d * 1e6)) }

func (r RecordDef) record() (territory.Record, error) {
	var b territory.Boundary
	switch {
	case len(r.Micro) == 4:
		b = territory.Boundary{MinLat: r.Micro[0], MaxLat: r.Micro[1], MinLon: r.Micro[2], MaxLon: r.Micro[3]}
	case len(r.Micro) == 0 && len(r.Lat) == 2 && len(r.Lon) == 2:
		b = territory.Boundary{
			MinLat: microDegrees(r.Lat[0]),
			MaxLat: microDegrees(r.Lat[1]),
			MinLon: microDegrees(r.Lon[0]),
			MaxLon: microDegrees(r.Lon[1]),
		}
	default:
		return territory.Record{}, errors.New("record needs lat and lon pairs or four micro values")
	}
	kind, err := territory.ParseKind(r.Kind)
	if err != nil {
		return territory.Record{}, err
	}
	rec := territory.Record{
		Boundary:     b,
		Codex:        r.Codex,
		Kind:         kind,
		Nameless:     r.Nameless,
		Restricted:   r.Restricted,
		SpecialShape: r.Special,
		SmartDivisor: r.Divisor,
	}
	if r.Letter != "" {
		if len(r.Letter) != 1 {
			return territory.Record{}, errors.Errorf("header letter %q must be one character", r.Letter)
		}
		rec.HeaderLetter = strings.ToUpper(r.Letter)[0]
	}
	return rec, nil
}

func recordDef(rec territory.Record) RecordDef {
	d := RecordDef{
		Micro:      []int{rec.MinLat, rec.MaxLat, rec.MinLon, rec.MaxLon},
		Codex:      rec.Codex,
		Nameless:   rec.Nameless,
		Restricted: rec.Restricted,
		Special:    rec.SpecialShape,
		Divisor:    rec.SmartDivisor,
	}
	if rec.Kind != territory.Grid {
		d.Kind = rec.Kind.String()
	}
	if rec.HeaderLetter != 0 {
		d.Letter = string(rec.HeaderLetter)
	}
	return d
}

// Dataset converts the file into table order. Subdivisions may be listed
// before their country.
func (f *File) Dataset() (*Dataset, error) {
	countries := make(map[string]territory.ID)
	for i, t := range f.Territories {
		if t.Parent == "" {
			countries[strings.ToUpper(t.Code)] = territory.ID(i)
		}
	}

	d := &Dataset{}
	for i, t := range f.Territories {
		if len(t.Records) == 0 {
			return nil, errors.Errorf("territory %d (%s) has no records", i, t.Code)
		}
		parent := territory.None
		if t.Parent != "" {
			p, ok := countries[strings.ToUpper(t.Parent)]
			if !ok {
				return nil, errors.Errorf("territory %s: unknown parent %s", t.Code, t.Parent)
			}
			parent = p
		}
		first := len(d.Records)
		for j, rd := range t.Records {
			rec, err := rd.record()
			if err != nil {
				return nil, errors.Wrapf(err, "territory %s record %d", t.Code, j)
			}
			d.Records = append(d.Records, rec)
		}
		d.Territories = append(d.Territories, territory.Territory{
			Code:        t.Code,
			Name:        t.Name,
			Parent:      parent,
			Aliases:     t.Aliases,
			FirstRecord: first,
			LastRecord:  len(d.Records) - 1,
		})
	}
	for _, p := range f.Disambiguation {
		d.Parents = append(d.Parents, territory.ParentCountry{Alpha2: p.Alpha2, Alpha3: p.Alpha3})
	}
	if len(f.Aliases) > 0 {
		d.Aliases = make(map[string]string, len(f.Aliases))
		for _, a := range f.Aliases {
			d.Aliases[a.From] = a.To
		}
	}
	return d, nil
}

// FileOf is the inverse of File.Dataset. Bounds are written in
// microdegrees so they survive exactly.
func FileOf(d *Dataset) *File {
	f := &File{}
	for _, p := range d.Parents {
		f.Disambiguation = append(f.Disambiguation, ParentDef{Alpha2: p.Alpha2, Alpha3: p.Alpha3})
	}
	for from, to := range d.Aliases {
		f.Aliases = append(f.Aliases, AliasDef{From: from, To: to})
	}
	sort.Slice(f.Aliases, func(i, j int) bool { return f.Aliases[i].From < f.Aliases[j].From })
	for _, t := range d.Territories {
		td := TerritoryDef{Code: t.Code, Name: t.Name, Aliases: t.Aliases}
		if t.Parent != territory.None {
			td.Parent = d.Territories[t.Parent].Code
		}
		for _, rec := range d.Records[t.FirstRecord : t.LastRecord+1] {
			td.Records = append(td.Records, recordDef(rec))
		}
		f.Territories = append(f.Territories, td)
	}
	return f
}

// ReadYAML decodes a YAML dataset.
func ReadYAML(r io.Reader) (*Dataset, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode yaml dataset")
	}
	return f.Dataset()
}

// ReadYAMLFile reads a YAML dataset from path.
func ReadYAMLFile(path string) (*Dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer fh.Close()
	d, err := ReadYAML(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return d, nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d *Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FileOf(d)); err != nil {
		return errors.Wrap(err, "encode yaml dataset")
	}
	return errors.Wrap(enc.Close(), "encode yaml dataset")
}
