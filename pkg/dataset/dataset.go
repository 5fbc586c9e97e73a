package dataset

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/territory"
)

// ErrUnknownFormat is returned by Load for file extensions it cannot read.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Dataset is the raw content of a territory table, in table order.
type Dataset struct {
	Territories []territory.Territory
	Records     []territory.Record
	Parents     []territory.ParentCountry
	Aliases     map[string]string
}

// earthStrip is the longitude width of one international strip; 31 strips
// cover a full turn.
const earthStrip = 11612904

// earthDivisor is the smart divisor of the international strips.
const earthDivisor = 3783

// EarthRecords returns the records of the international territory: 31
// pipe-letter strips from pole to pole, lettered by the base-31 alphabet.
func EarthRecords() []territory.Record {
	recs := make([]territory.Record, 31)
	for i := range recs {
		minLon := -180000000 + i*earthStrip
		recs[i] = territory.Record{
			Boundary: territory.Boundary{
				MinLat: -90000000,
				MaxLat: 90000001,
				MinLon: minLon,
				MaxLon: minLon + earthStrip,
			},
			Codex:        44,
			Kind:         territory.PipeHeader,
			SmartDivisor: earthDivisor,
			HeaderLetter: codec.Alphabet[i],
		}
	}
	return recs
}

// World returns a dataset holding only the international territory.
func World() *Dataset {
	d := &Dataset{}
	d.EnsureEarth()
	return d
}

// HasEarth reports whether the dataset defines the international territory.
func (d *Dataset) HasEarth() bool {
	for _, t := range d.Territories {
		if t.Parent == territory.None && strings.EqualFold(t.Code, territory.EarthCode) {
			return true
		}
	}
	return false
}

// EnsureEarth appends the international territory when it is missing, so
// every coordinate has at least one code.
func (d *Dataset) EnsureEarth() {
	if d.HasEarth() {
		return
	}
	recs := EarthRecords()
	first := len(d.Records)
	d.Records = append(d.Records, recs...)
	d.Territories = append(d.Territories, territory.Territory{
		Code:        territory.EarthCode,
		Name:        "International",
		Parent:      territory.None,
		Aliases:     []string{"Earth", "World"},
		FirstRecord: first,
		LastRecord:  first + len(recs) - 1,
	})
}

// Table validates the dataset and builds the lookup table.
func (d *Dataset) Table() (*territory.Table, error) {
	t, err := territory.NewTable(d.Territories, d.Records, d.Parents, d.Aliases)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dataset")
	}
	return t, nil
}

// ReadFile reads a dataset by file extension: .yaml or .yml for the
// authored form, .mcd for the compiled form. An empty path gives the
// builtin world.
func ReadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path == "" {
			return World(), nil
		}
	case ".yaml", ".yml":
		return ReadYAMLFile(path)
	case ".mcd":
		return ReadBinaryFile(path)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
}

// Load reads the dataset at path, adds the international territory when
// absent and builds its table.
func Load(path string) (*territory.Table, error) {
	start := time.Now()
	d, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	d.EnsureEarth()

	t, err := d.Table()
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	logger.L().Info("dataset_loaded",
		"path", path,
		"territories", t.Count(),
		"records", t.RecordCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return t, nil
}
