// Package visited provides a reusable bitset for graph traversals over
// dense integer node IDs.
package visited

// Set tracks visited node IDs using a bitset and a dirty list for fast reset.
type Set struct {
	bits  []uint64
	dirty []int
}

// New creates a visited set sized for capacity nodes. It grows on demand.
func New(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]int, 0, 64),
	}
}

// Visit marks id as visited and reports whether it was unvisited before.
// Negative IDs are ignored.
func (s *Set) Visit(id int) bool {
	if id < 0 {
		return false
	}
	word := id >> 6
	mask := uint64(1) << (uint(id) & 63)

	if word >= len(s.bits) {
		s.grow(word + 1)
	}
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.dirty = append(s.dirty, id)
	return true
}

// Visited reports whether id has been visited since the last Reset.
func (s *Set) Visited(id int) bool {
	if id < 0 {
		return false
	}
	word := id >> 6
	if word >= len(s.bits) {
		return false
	}
	return s.bits[word]&(uint64(1)<<(uint(id)&63)) != 0
}

// Count returns the number of IDs visited since the last Reset.
func (s *Set) Count() int {
	return len(s.dirty)
}

// Reset clears only the IDs visited in the current session.
func (s *Set) Reset() {
	for _, id := range s.dirty {
		s.bits[id>>6] &^= uint64(1) << (uint(id) & 63)
	}
	s.dirty = s.dirty[:0]
}

func (s *Set) grow(words int) {
	n := len(s.bits) * 2
	if n < words {
		n = words
	}
	bits := make([]uint64, n)
	copy(bits, s.bits)
	s.bits = bits
}
