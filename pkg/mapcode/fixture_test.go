package mapcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/codec"
	"github.com/ssargent/mapcode/pkg/territory"
)

// Territory ids of fixtureTable.
const (
	idCA territory.ID = iota
	idUSIN
	idRUIN
	idMX
	idDC
	idUSA
	idRUS
	idMEX
	idNLD
	idLUX
	idAAA
)

func micro(d float64) int { return int(math.Round(d * 1e6)) }

type recordOption func(*territory.Record)

func withKind(k territory.Kind) recordOption {
	return func(r *territory.Record) { r.Kind = k }
}

func withHeader(c byte) recordOption {
	return func(r *territory.Record) {
		r.Kind = territory.PipeHeader
		r.HeaderLetter = c
	}
}

func nameless(divisor int) recordOption {
	return func(r *territory.Record) {
		r.Nameless = true
		r.SmartDivisor = divisor
	}
}

func withDivisor(divisor int) recordOption {
	return func(r *territory.Record) { r.SmartDivisor = divisor }
}

func restricted(r *territory.Record) { r.Restricted = true }

func special(r *territory.Record) { r.SpecialShape = true }

func rect(minLat, maxLat, minLon, maxLon float64, codex int, opts ...recordOption) territory.Record {
	r := territory.Record{
		Boundary: territory.Boundary{
			MinLat: micro(minLat),
			MaxLat: micro(maxLat),
			MinLon: micro(minLon),
			MaxLon: micro(maxLon),
		},
		Codex: codex,
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// earthRecords covers the world with 31 strips, one per header letter.
func earthRecords() []territory.Record {
	const strip = 11612904
	recs := make([]territory.Record, 31)
	for i := range recs {
		minLon := -180000000 + i*strip
		recs[i] = territory.Record{
			Boundary:     territory.Boundary{MinLat: -90000000, MaxLat: 90000001, MinLon: minLon, MaxLon: minLon + strip},
			Codex:        44,
			Kind:         territory.PipeHeader,
			SmartDivisor: 3783,
			HeaderLetter: codec.Alphabet[i],
		}
	}
	return recs
}

type fixtureTerritory struct {
	code    string
	name    string
	parent  territory.ID
	records []territory.Record
}

func buildTable(t testing.TB, defs []fixtureTerritory, parents []territory.ParentCountry, aliases map[string]string) *territory.Table {
	t.Helper()
	var (
		territories []territory.Territory
		records     []territory.Record
	)
	for _, d := range defs {
		territories = append(territories, territory.Territory{
			Code:        d.code,
			Name:        d.name,
			Parent:      d.parent,
			FirstRecord: len(records),
			LastRecord:  len(records) + len(d.records) - 1,
		})
		records = append(records, d.records...)
	}
	tbl, err := territory.NewTable(territories, records, parents, aliases)
	require.NoError(t, err)
	return tbl
}

// fixtureTable is a small synthetic world. Every code construction occurs
// at least once: plain grids, a 2.1 alias, a pipe letter, restricted
// records, nameless groups (one with a special shape), an autoheader chain,
// smart divisors and a record that crosses the antimeridian.
func fixtureTable(t testing.TB) *territory.Table {
	defs := []fixtureTerritory{
		{code: "CA", name: "California", parent: idUSA, records: []territory.Record{
			rect(37, 38.5, -123, -121.5, 33),
			rect(32.5, 42, -124.5, -114.1, 44),
		}},
		{code: "IN", name: "Indiana", parent: idUSA, records: []territory.Record{
			rect(37.7, 41.8, -88.1, -84.8, 44),
		}},
		{code: "IN", name: "Ingushetia", parent: idRUS, records: []territory.Record{
			rect(42.8, 43.6, 44.5, 45.3, 33),
		}},
		{code: "MX", name: "Mexico City", parent: idMEX, records: []territory.Record{
			rect(19.0, 19.9, -99.5, -98.6, 33),
		}},
		{code: "DC", name: "District of Columbia", parent: idUSA, records: []territory.Record{
			rect(38.8, 38.99, -77.12, -76.91, 23),
			rect(38.8, 38.99, -77.12, -76.91, 44, restricted),
		}},
		{code: "USA", name: "United States of America", parent: territory.None, records: []territory.Record{
			rect(40.70, 40.78, -74.02, -73.93, 21),
			rect(41.6, 42.05, -88.0, -87.5, 14, withHeader('B')),
			rect(40.6, 40.9, -74.1, -73.8, 32, restricted),
			rect(24, 50, -125, -66, 44),
		}},
		{code: "RUS", name: "Russia", parent: territory.None, records: []territory.Record{
			rect(41, 82, 19, 191, 44, withDivisor(550)),
		}},
		{code: "MEX", name: "Mexico", parent: territory.None, records: []territory.Record{
			rect(14.5, 32.7, -118.4, -86.7, 44),
		}},
		{code: "NLD", name: "Netherlands", parent: territory.None, records: []territory.Record{
			rect(51.88, 51.96, 4.40, 4.50, 22),
			rect(52.20, 52.50, 4.70, 5.10, 23),
			rect(52.0, 52.08, 5.0, 5.13, 22, nameless(961)),
			rect(51.5, 51.58, 5.0, 5.13, 22, nameless(961)),
			rect(52.0, 52.3, 5.2, 5.5, 23, withKind(territory.AutoheaderStar)),
			rect(51.6, 51.9, 5.6, 5.9, 23, withKind(territory.AutoheaderPlus)),
			rect(50.75, 53.55, 3.35, 7.25, 44),
		}},
		{code: "LUX", name: "Luxembourg", parent: territory.None, records: []territory.Record{
			rect(49.60, 49.68, 6.10, 6.22, 13, nameless(961)),
			rect(49.50, 49.54, 5.80, 6.05, 13, nameless(961), special),
			rect(49.70, 49.78, 6.30, 6.42, 21, nameless(961)),
			rect(49.44, 50.19, 5.73, 6.53, 33),
		}},
		{code: "AAA", name: "International", parent: territory.None, records: earthRecords()},
	}
	parents := []territory.ParentCountry{
		{Alpha2: "US", Alpha3: "USA"},
		{Alpha2: "RU", Alpha3: "RUS"},
		{Alpha2: "MX", Alpha3: "MEX"},
	}
	aliases := map[string]string{"US": "USA", "NL": "NLD"}
	return buildTable(t, defs, parents, aliases)
}

// groupTable holds territory TST with n side-by-side nameless records of
// 0.04 by 0.04 degrees and an outer grid record, followed by AAA.
func groupTable(t testing.TB, codex, n, divisor int) *territory.Table {
	var recs []territory.Record
	for i := 0; i < n; i++ {
		lon := 10.0 + 0.04*float64(i)
		recs = append(recs, rect(10.0, 10.04, lon, lon+0.04, codex, nameless(divisor)))
	}
	recs = append(recs, rect(10.0, 10.04, 10.0, 10.0+0.04*float64(n), 44))
	defs := []fixtureTerritory{
		{code: "TST", name: "Test", parent: territory.None, records: recs},
		{code: "AAA", name: "International", parent: territory.None, records: earthRecords()},
	}
	return buildTable(t, defs, nil, nil)
}
