package chaining

// PotentialSet is an insertion-ordered set of Potentials keyed on
// identity (cell, value, is_on). At most one node is stored per key;
// looking a key up returns the stored instance so callers recover the
// parent-annotated version after an equality-only membership check.
type PotentialSet struct {
	order []PotentialKey
	byKey map[PotentialKey]*Potential
}

// NewPotentialSet returns an empty set.
func NewPotentialSet() *PotentialSet {
	return &PotentialSet{byKey: make(map[PotentialKey]*Potential)}
}

// Len returns the number of stored potentials.
func (s *PotentialSet) Len() int {
	return len(s.order)
}

// Has reports whether a potential with this key is already stored.
func (s *PotentialSet) Has(key PotentialKey) bool {
	_, ok := s.byKey[key]
	return ok
}

// Get returns the stored instance for key, or nil if absent.
func (s *PotentialSet) Get(key PotentialKey) *Potential {
	return s.byKey[key]
}

// Add inserts p if its key is not already present; returns the stored
// instance (either p itself, or the pre-existing one).
func (s *PotentialSet) Add(p *Potential) *Potential {
	key := p.Key()
	if existing, ok := s.byKey[key]; ok {
		return existing
	}
	s.byKey[key] = p
	s.order = append(s.order, key)
	return p
}

// AddAll inserts every potential in others not already present,
// preserving the order of s's existing elements and appending new ones
// in the order encountered. O(n).
func (s *PotentialSet) AddAll(others []*Potential) {
	for _, p := range others {
		s.Add(p)
	}
}

// List returns the stored potentials in insertion order.
func (s *PotentialSet) List() []*Potential {
	out := make([]*Potential, len(s.order))
	for i, k := range s.order {
		out[i] = s.byKey[k]
	}
	return out
}

// Keys returns the stored keys in insertion order.
func (s *PotentialSet) Keys() []PotentialKey {
	out := make([]PotentialKey, len(s.order))
	copy(out, s.order)
	return out
}

// RetainIntersection reduces s in place to its intersection with other,
// preserving s's existing order among the elements that remain.
func (s *PotentialSet) RetainIntersection(other *PotentialSet) {
	newOrder := s.order[:0]
	for _, k := range s.order {
		if other.Has(k) {
			newOrder = append(newOrder, k)
		} else {
			delete(s.byKey, k)
		}
	}
	s.order = newOrder
}

// Intersection returns a new set containing the potentials (stored
// instances from s) whose keys are present in both s and other, in s's
// order.
func (s *PotentialSet) Intersection(other *PotentialSet) *PotentialSet {
	result := NewPotentialSet()
	for _, k := range s.order {
		if other.Has(k) {
			result.Add(s.byKey[k])
		}
	}
	return result
}

// Clone returns a shallow copy (same Potential pointers, independent
// ordering/membership bookkeeping).
func (s *PotentialSet) Clone() *PotentialSet {
	clone := NewPotentialSet()
	clone.order = append(clone.order, s.order...)
	for k, v := range s.byKey {
		clone.byKey[k] = v
	}
	return clone
}
