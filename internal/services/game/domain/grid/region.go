package grid

import "sort"

// Region is a membership predicate over cell indices.
type Region func(Index) bool

// Within returns the region of valid cells inside b.
func Within(b Bounds) Region {
	return func(i Index) bool {
		return i.Valid() && InBounds(IndexToCoords(i), b)
	}
}

// Contains reports whether i belongs to r. A nil region is empty.
func (r Region) Contains(i Index) bool {
	return r != nil && r(i)
}

// Minus returns the cells of r that are not in o.
func (r Region) Minus(o Region) Region {
	return func(i Index) bool {
		return r.Contains(i) && !o.Contains(i)
	}
}

// Cells enumerates the members of r in row-major order.
func (r Region) Cells() Set {
	out := Set{}
	for y := 0; y < NumRows; y++ {
		for x := 0; x < NumCols; x++ {
			if i := CoordsToIndex(Coords{X: x, Y: y}); r.Contains(i) {
				out.Add(i)
			}
		}
	}
	return out
}

// Set is an unordered collection of cell indices.
type Set map[Index]struct{}

// NewSet builds a set from the given indices.
func NewSet(indices ...Index) Set {
	s := make(Set, len(indices))
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts i.
func (s Set) Add(i Index) {
	s[i] = struct{}{}
}

// Has reports whether i is a member.
func (s Set) Has(i Index) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Union returns a new set holding the members of s and o.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for i := range s {
		out.Add(i)
	}
	for i := range o {
		out.Add(i)
	}
	return out
}

// Sorted returns the members in ascending index order.
func (s Set) Sorted() []Index {
	out := make([]Index, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
