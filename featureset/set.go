package featureset

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ID identifies a feature within its Universe.
type ID uint32

// Set is a set of feature IDs.
//
// Sets are values. Every method that would change membership returns a new
// Set and leaves the receiver untouched, so a Set can be shared freely
// between nodes and table entries.
type Set struct {
	bits *roaring.Bitmap
}

// Empty returns the defined empty set.
func Empty() Set {
	return Set{bits: roaring.New()}
}

// Of returns a set containing ids.
func Of(ids ...ID) Set {
	bm := roaring.New()
	for _, id := range ids {
		bm.Add(uint32(id))
	}
	return Set{bits: bm}
}

// IsNil reports whether s is the undefined set.
func (s Set) IsNil() bool {
	return s.bits == nil
}

// Len returns the number of features in s.
func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

// Contains reports whether id is a member of s.
func (s Set) Contains(id ID) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Contains(uint32(id))
}

// With returns s ∪ {id}.
func (s Set) With(id ID) Set {
	bm := s.clone()
	bm.Add(uint32(id))
	return Set{bits: bm}
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	switch {
	case o.bits == nil:
		return Set{bits: s.clone()}
	case s.bits == nil:
		return Set{bits: o.bits.Clone()}
	}
	return Set{bits: roaring.Or(s.bits, o.bits)}
}

// Difference returns s \ o.
func (s Set) Difference(o Set) Set {
	if s.bits == nil || o.bits == nil {
		return Set{bits: s.clone()}
	}
	return Set{bits: roaring.AndNot(s.bits, o.bits)}
}

// IsSubsetOf reports whether every member of s is also in o.
// The empty (or undefined) set is a subset of everything.
func (s Set) IsSubsetOf(o Set) bool {
	n := s.Len()
	if n == 0 {
		return true
	}
	if n > o.Len() {
		return false
	}
	return s.bits.AndCardinality(o.bits) == uint64(n)
}

// Equal reports whether s and o have the same members.
func (s Set) Equal(o Set) bool {
	return s.Len() == o.Len() && s.IsSubsetOf(o)
}

// IDs returns the members of s in ascending order.
func (s Set) IDs() []ID {
	if s.bits == nil {
		return nil
	}
	raw := s.bits.ToArray()
	ids := make([]ID, len(raw))
	for i, v := range raw {
		ids[i] = ID(v)
	}
	return ids
}

// Key returns a canonical string for s, usable as a map key.
// Two sets have the same key iff they are Equal.
func (s Set) Key() string {
	if s.bits == nil || s.bits.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	it := s.bits.Iterator()
	first := true
	for it.HasNext() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(it.Next()), 10))
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (s Set) String() string {
	if s.bits == nil {
		return "<nil>"
	}
	return "{" + s.Key() + "}"
}

func (s Set) clone() *roaring.Bitmap {
	if s.bits == nil {
		return roaring.New()
	}
	return s.bits.Clone()
}
