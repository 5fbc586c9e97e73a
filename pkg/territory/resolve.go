package territory

import (
	"strings"

	"github.com/pkg/errors"
)

// Resolve turns an ISO code into a territory id. Accepted forms are a
// country code ("NLD"), a qualified subdivision ("US-CA", "USA-CA"), an
// alias and a bare subdivision code ("CA"). A bare subdivision code is
// first looked up under the country of context, then as an alias, and
// last in parent list order, so "IN" is Indiana unless the context is
// Russia.
func (t *Table) Resolve(iso string, context ID) (ID, error) {
	s := strings.ToUpper(strings.TrimSpace(iso))
	if s == "" {
		return None, errors.Wrap(ErrUnknownTerritory, "empty territory code")
	}
	if id, ok := t.resolve(s, context, true); ok {
		return id, nil
	}
	return None, errors.Wrapf(ErrUnknownTerritory, "%q", iso)
}

func (t *Table) resolve(s string, context ID, followAlias bool) (ID, bool) {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		parent, ok := t.parentByCode(s[:i])
		if !ok {
			return None, false
		}
		return t.Subdivision(parent, s[i+1:])
	}

	if ctx := t.contextCountry(context); ctx != None {
		if id, ok := t.Subdivision(ctx, s); ok {
			return id, true
		}
	}

	if id, ok := t.countries[s]; ok {
		return id, true
	}

	if followAlias {
		if to, ok := t.aliases[s]; ok {
			if id, ok := t.resolve(to, context, false); ok {
				return id, true
			}
		}
	}

	for _, p := range t.parents {
		if id, ok := t.Subdivision(p.id, s); ok {
			return id, true
		}
	}
	return None, false
}

// contextCountry returns the parent country implied by a context territory.
func (t *Table) contextCountry(context ID) ID {
	if !t.valid(context) {
		return None
	}
	if p := t.territories[context].Parent; p != None {
		return p
	}
	if t.isParentCountry(context) {
		return context
	}
	return None
}

func (t *Table) parentByCode(code string) (ID, bool) {
	for _, p := range t.parents {
		if strings.EqualFold(p.Alpha2, code) || strings.EqualFold(p.Alpha3, code) {
			return p.id, true
		}
	}
	return None, false
}

func (t *Table) parentAlpha2(id ID) string {
	for _, p := range t.parents {
		if p.id == id {
			return p.Alpha2
		}
	}
	return t.Code(id)
}

// IsoName returns the display code of a territory. Subdivisions are
// "US-CA" in the long form and "CA" in the short form.
func (t *Table) IsoName(id ID, short bool) (string, error) {
	if !t.valid(id) {
		return "", errors.Wrapf(ErrUnknownTerritory, "id %d", id)
	}
	ter := t.territories[id]
	if ter.Parent == None || short {
		return ter.Code, nil
	}
	return t.parentAlpha2(ter.Parent) + "-" + ter.Code, nil
}

// FindByName looks up a territory by its full name or one of its alias
// names, ignoring case.
func (t *Table) FindByName(name string) (ID, error) {
	if id, ok := t.names[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return id, nil
	}
	return None, errors.Wrapf(ErrUnknownTerritory, "name %q", name)
}
