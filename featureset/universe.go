package featureset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyUniverse is returned when a universe is built from no names.
	ErrEmptyUniverse = errors.New("featureset: universe has no features")

	// ErrEmptyName is returned for a blank feature name.
	ErrEmptyName = errors.New("featureset: empty feature name")

	// ErrUnknownFeature is returned when a name is not part of the universe.
	ErrUnknownFeature = errors.New("featureset: unknown feature")
)

// ErrDuplicateFeature indicates that a feature name was given twice.
type ErrDuplicateFeature struct {
	Name string
}

func (e *ErrDuplicateFeature) Error() string {
	return fmt.Sprintf("featureset: duplicate feature %q", e.Name)
}

// Universe is the fixed set of features a search runs over.
// IDs are assigned in the order names were given.
type Universe struct {
	names []string
	ids   map[string]ID
	full  Set
}

// NewUniverse interns names.
func NewUniverse(names []string) (*Universe, error) {
	if len(names) == 0 {
		return nil, ErrEmptyUniverse
	}
	u := &Universe{
		names: make([]string, len(names)),
		ids:   make(map[string]ID, len(names)),
	}
	ids := make([]ID, 0, len(names))
	for i, name := range names {
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := u.ids[name]; dup {
			return nil, &ErrDuplicateFeature{Name: name}
		}
		id := ID(i)
		u.names[i] = name
		u.ids[name] = id
		ids = append(ids, id)
	}
	u.full = Of(ids...)
	return u, nil
}

// Len returns the number of features.
func (u *Universe) Len() int { return len(u.names) }

// Full returns the set of all features.
func (u *Universe) Full() Set { return u.full }

// All returns every feature ID in ascending order.
func (u *Universe) All() []ID { return u.full.IDs() }

// Name returns the name interned as id.
func (u *Universe) Name(id ID) string {
	if int(id) >= len(u.names) {
		return ""
	}
	return u.names[id]
}

// ID returns the ID of name.
func (u *Universe) ID(name string) (ID, bool) {
	id, ok := u.ids[name]
	return id, ok
}

// MustID is like ID but panics on unknown names. Intended for tests and
// literals.
func (u *Universe) MustID(name string) ID {
	id, ok := u.ids[name]
	if !ok {
		panic(fmt.Sprintf("featureset: unknown feature %q", name))
	}
	return id
}

// SetOf returns the set of the named features.
func (u *Universe) SetOf(names ...string) (Set, error) {
	ids := make([]ID, 0, len(names))
	for _, name := range names {
		id, ok := u.ids[name]
		if !ok {
			return Set{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
		ids = append(ids, id)
	}
	return Of(ids...), nil
}

// MustSetOf is like SetOf but panics on unknown names.
func (u *Universe) MustSetOf(names ...string) Set {
	s, err := u.SetOf(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the names of the members of s, sorted.
func (u *Universe) Names(s Set) []string {
	ids := s.IDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, u.Name(id))
	}
	sort.Strings(names)
	return names
}

// Label returns the sorted, comma-joined names of s.
func (u *Universe) Label(s Set) string {
	return strings.Join(u.Names(s), ",")
}
