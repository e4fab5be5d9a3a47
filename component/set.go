package component

// Set is an ordered collection of unique component names. Insertion order
// is preserved and determines report ordering. The zero value is an empty
// set ready for use.
type Set struct {
	names []Name
	seen  map[Name]struct{}
}

// NewSet creates a [Set] containing the given names, in order, with
// duplicates silently dropped.
func NewSet(names ...Name) Set {
	var s Set
	s.Add(names...)

	return s
}

// SetFromStrings creates a [Set] from plain strings, preserving order and
// dropping duplicates.
func SetFromStrings(names []string) Set {
	var s Set
	for _, n := range names {
		s.Add(Name(n))
	}

	return s
}

// Add appends names not already present, preserving insertion order.
func (s *Set) Add(names ...Name) {
	if s.seen == nil {
		s.seen = make(map[Name]struct{}, len(names))
	}

	for _, n := range names {
		if _, ok := s.seen[n]; ok {
			continue
		}

		s.seen[n] = struct{}{}
		s.names = append(s.names, n)
	}
}

// Contains reports whether n is in the set.
func (s Set) Contains(n Name) bool {
	_, ok := s.seen[n]

	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return len(s.names)
}

// Names returns the names in insertion order. The returned slice is a copy.
func (s Set) Names() []Name {
	out := make([]Name, len(s.names))
	copy(out, s.names)

	return out
}

// Strings returns the names in insertion order as plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s.names))
	for i, n := range s.names {
		out[i] = string(n)
	}

	return out
}

// Clone returns an independent copy of the set. Mutating the clone or the
// original afterward does not affect the other.
func (s Set) Clone() Set {
	return NewSet(s.names...)
}

// Union returns a new set holding s's names followed by other's names not
// already present.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	out.Add(other.names...)

	return out
}
