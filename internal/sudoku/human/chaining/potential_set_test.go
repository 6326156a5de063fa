package chaining

import "testing"

func TestPotentialSetAddIsIdempotent(t *testing.T) {
	s := NewPotentialSet()
	a := NewSeed(0, 1, true)
	b := NewSeed(0, 1, true)

	first := s.Add(a)
	second := s.Add(b)

	if first != a {
		t.Fatalf("first Add should return the inserted potential")
	}
	if second != a {
		t.Fatalf("second Add of an equal key should return the original potential, got different one")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestPotentialSetPreservesInsertionOrder(t *testing.T) {
	s := NewPotentialSet()
	p1 := NewSeed(5, 1, true)
	p2 := NewSeed(3, 2, false)
	p3 := NewSeed(1, 9, true)
	s.Add(p1)
	s.Add(p2)
	s.Add(p3)

	list := s.List()
	if len(list) != 3 || list[0] != p1 || list[1] != p2 || list[2] != p3 {
		t.Fatalf("List() did not preserve insertion order: %+v", list)
	}
}

func TestPotentialSetIntersection(t *testing.T) {
	shared := NewSeed(0, 1, true)
	onlyA := NewSeed(1, 2, true)
	onlyB := NewSeed(2, 3, true)

	a := NewPotentialSet()
	a.Add(shared)
	a.Add(onlyA)

	b := NewPotentialSet()
	b.Add(NewSeed(shared.Cell, shared.Value, shared.IsOn))
	b.Add(onlyB)

	inter := a.Intersection(b)
	if inter.Len() != 1 {
		t.Fatalf("Intersection() Len() = %d, want 1", inter.Len())
	}
	if !inter.Has(shared.Key()) {
		t.Fatalf("Intersection() missing shared key")
	}
}

func TestPotentialSetCloneIsIndependent(t *testing.T) {
	s := NewPotentialSet()
	s.Add(NewSeed(0, 1, true))

	clone := s.Clone()
	clone.Add(NewSeed(1, 2, true))

	if s.Len() != 1 {
		t.Fatalf("mutating a clone should not affect the original, original Len() = %d", s.Len())
	}
	if clone.Len() != 2 {
		t.Fatalf("clone Len() = %d, want 2", clone.Len())
	}
}
