package territory

import (
	"strings"

	"github.com/pkg/errors"
)

// ID identifies a territory within a Table.
type ID int

// None means "no territory"; as an encode argument it selects all territories.
const None ID = -1

// EarthCode is the code of the international territory.
const EarthCode = "AAA"

// ErrUnknownTerritory is returned for territory ids or names that do not resolve.
var ErrUnknownTerritory = errors.New("unknown territory")

// Territory describes a country, a subdivision or the international
// territory, and the contiguous range of boundary records it owns.
type Territory struct {
	// Code is the ISO 3166 alpha-3 code for countries and the subdivision
	// code, without parent, for subdivisions.
	Code    string
	Name    string
	Parent  ID
	Aliases []string

	FirstRecord int
	LastRecord  int
}

// ParentCountry is a country whose subdivision codes may be used without
// a parent prefix. The order of the parent list decides ambiguities.
type ParentCountry struct {
	Alpha2 string
	Alpha3 string
}

// Table is the immutable territory and boundary model. It is safe for
// concurrent use.
type Table struct {
	territories []Territory
	records     []Record
	parents     []parentEntry
	aliases     map[string]string

	countries map[string]ID
	subs      map[ID]map[string]ID
	names     map[string]ID
	earth     ID
}

type parentEntry struct {
	ParentCountry
	id ID
}

// NewTable validates and indexes the given data. Territory ids are
// positions in territories; Parent fields refer to those positions.
func NewTable(territories []Territory, records []Record, parents []ParentCountry, aliases map[string]string) (*Table, error) {
	t := &Table{
		territories: territories,
		records:     records,
		aliases:     make(map[string]string, len(aliases)),
		countries:   make(map[string]ID),
		subs:        make(map[ID]map[string]ID),
		names:       make(map[string]ID),
		earth:       None,
	}

	next := 0
	for i, ter := range territories {
		if ter.Code == "" {
			return nil, errors.Errorf("territory %d has no code", i)
		}
		if ter.FirstRecord != next || ter.LastRecord < ter.FirstRecord || ter.LastRecord >= len(records) {
			return nil, errors.Errorf("territory %s: record range [%d,%d] is not contiguous", ter.Code, ter.FirstRecord, ter.LastRecord)
		}
		next = ter.LastRecord + 1
		for r := ter.FirstRecord; r <= ter.LastRecord; r++ {
			if err := records[r].validate(); err != nil {
				return nil, errors.Wrapf(err, "territory %s record %d", ter.Code, r-ter.FirstRecord)
			}
		}
	}
	if next != len(records) {
		return nil, errors.Errorf("%d records are not owned by any territory", len(records)-next)
	}

	for _, p := range parents {
		id, ok := t.findCountry(territories, p.Alpha3)
		if !ok {
			return nil, errors.Errorf("parent country %s is not in the table", p.Alpha3)
		}
		t.parents = append(t.parents, parentEntry{ParentCountry: p, id: id})
	}

	for i, ter := range territories {
		id := ID(i)
		code := strings.ToUpper(ter.Code)
		if ter.Parent == None {
			if _, dup := t.countries[code]; dup {
				return nil, errors.Errorf("duplicate territory %s", code)
			}
			t.countries[code] = id
			if code == EarthCode {
				t.earth = id
			}
		} else {
			if ter.Parent < 0 || int(ter.Parent) >= len(territories) || territories[ter.Parent].Parent != None {
				return nil, errors.Errorf("territory %s has invalid parent %d", code, ter.Parent)
			}
			if !t.isParentCountry(ter.Parent) {
				return nil, errors.Errorf("territory %s: parent %s is not in the parent list", code, territories[ter.Parent].Code)
			}
			m := t.subs[ter.Parent]
			if m == nil {
				m = make(map[string]ID)
				t.subs[ter.Parent] = m
			}
			if _, dup := m[code]; dup {
				return nil, errors.Errorf("duplicate subdivision %s of %s", code, territories[ter.Parent].Code)
			}
			m[code] = id
		}
		for _, n := range append([]string{ter.Name}, ter.Aliases...) {
			key := strings.ToUpper(strings.TrimSpace(n))
			if key == "" {
				continue
			}
			if _, seen := t.names[key]; !seen {
				t.names[key] = id
			}
		}
	}
	if t.earth == None {
		return nil, errors.Errorf("table has no %s territory", EarthCode)
	}

	for from, to := range aliases {
		t.aliases[strings.ToUpper(strings.TrimSpace(from))] = strings.ToUpper(strings.TrimSpace(to))
	}
	return t, nil
}

func (t *Table) findCountry(territories []Territory, code string) (ID, bool) {
	for i, ter := range territories {
		if ter.Parent == None && strings.EqualFold(ter.Code, code) {
			return ID(i), true
		}
	}
	return None, false
}

func (t *Table) isParentCountry(id ID) bool {
	for _, p := range t.parents {
		if p.id == id {
			return true
		}
	}
	return false
}

func (t *Table) valid(id ID) bool {
	return id >= 0 && int(id) < len(t.territories)
}

// Count returns the number of territories.
func (t *Table) Count() int { return len(t.territories) }

// RecordCount returns the number of boundary records.
func (t *Table) RecordCount() int { return len(t.records) }

// Earth returns the id of the international territory.
func (t *Table) Earth() ID { return t.earth }

// Territory returns the territory with the given id.
func (t *Table) Territory(id ID) (Territory, error) {
	if !t.valid(id) {
		return Territory{}, errors.Wrapf(ErrUnknownTerritory, "id %d", id)
	}
	return t.territories[id], nil
}

// Code returns the bare code of a territory, or "" for an invalid id.
func (t *Table) Code(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.territories[id].Code
}

// FirstRecord returns the index of the first boundary record of id.
func (t *Table) FirstRecord(id ID) (int, error) {
	if !t.valid(id) {
		return 0, errors.Wrapf(ErrUnknownTerritory, "id %d", id)
	}
	return t.territories[id].FirstRecord, nil
}

// LastRecord returns the index of the last (outer) boundary record of id.
func (t *Table) LastRecord(id ID) (int, error) {
	if !t.valid(id) {
		return 0, errors.Wrapf(ErrUnknownTerritory, "id %d", id)
	}
	return t.territories[id].LastRecord, nil
}

// Record returns boundary record i. It panics when i is out of range.
func (t *Table) Record(i int) Record { return t.records[i] }

// Records returns the boundary records of id in priority order. The slice
// must not be modified.
func (t *Table) Records(id ID) []Record {
	if !t.valid(id) {
		return nil
	}
	ter := t.territories[id]
	return t.records[ter.FirstRecord : ter.LastRecord+1]
}

// ParentOf returns the parent country of a subdivision, or None.
func (t *Table) ParentOf(id ID) (ID, error) {
	if !t.valid(id) {
		return None, errors.Wrapf(ErrUnknownTerritory, "id %d", id)
	}
	return t.territories[id].Parent, nil
}

// IsSubdivision reports whether id has a parent country.
func (t *Table) IsSubdivision(id ID) bool {
	return t.valid(id) && t.territories[id].Parent != None
}

// HasSubdivisions reports whether id is a parent country.
func (t *Table) HasSubdivisions(id ID) bool {
	return t.isParentCountry(id)
}

// Subdivision looks up a subdivision code under a parent country.
func (t *Table) Subdivision(parent ID, code string) (ID, bool) {
	id, ok := t.subs[parent][strings.ToUpper(code)]
	return id, ok
}

// IDs returns every territory id in declaration order.
func (t *Table) IDs() []ID {
	ids := make([]ID, len(t.territories))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}
