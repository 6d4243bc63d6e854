package util

// SVSet is a set that uses strings as its item type and some other type as
// its stored data value, backing Registry's id-to-Entry lookup.
type SVSet[V any] map[string]V

// NewSVSet returns an empty SVSet, optionally seeded from the given maps.
func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	s := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			s.Set(k, m[k])
		}
	}
	return s
}

// Set assigns idx's value, adding idx to the set if it wasn't already
// present.
func (s SVSet[V]) Set(idx string, val V) {
	s[idx] = val
}

// Get retrieves idx's value, or the zero value of V if idx is not in the
// set.
func (s SVSet[V]) Get(idx string) V {
	return s[idx]
}

// Remove removes idx from the set. No effect if idx is not present.
func (s SVSet[V]) Remove(idx string) {
	delete(s, idx)
}

// Len returns the number of elements in the set.
func (s SVSet[V]) Len() int {
	return len(s)
}

// Elements returns the set's keys. No particular order is guaranteed.
func (s SVSet[V]) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

// StringSet is a map[string]bool used as a set of display names,
// backing Registry's name-uniqueness check.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from the given
// maps.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

// Add adds value to the set. No effect if it's already present.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Remove removes value from the set. No effect if it's not present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// KeySet is a map[E]bool used as a set of comparable keys, backing the
// node-index validation done when building a preset automaton.
type KeySet[E comparable] map[E]bool

// NewKeySet returns an empty KeySet, optionally seeded from the given maps.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// Has returns whether value is in the set.
func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

// Add adds value to the set. No effect if it's already present.
func (s KeySet[E]) Add(value E) {
	s[value] = true
}
