package chaining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPotentialConjugate(t *testing.T) {
	p := NewSeed(10, 5, true)
	conj := p.Key().Conjugate()
	assert.Equal(t, PotentialKey{Cell: 10, Value: 5, IsOn: false}, conj)
	assert.Equal(t, p.Key(), conj.Conjugate(), "Conjugate() should be its own inverse")
}

func TestPotentialEquals(t *testing.T) {
	a := NewSeed(4, 3, false)
	b := NewSeed(4, 3, false)
	c := NewSeed(4, 3, true)
	assert.True(t, a.Equals(b), "identical (cell,value,polarity) potentials should be equal regardless of cause/explanation")
	assert.False(t, a.Equals(c), "opposite polarity potentials should not be equal")
}

func TestAncestorCountAndChain(t *testing.T) {
	root := NewSeed(0, 1, true)
	mid := Derive(1, 2, false, CauseHiddenRow, "sees root", root)
	leaf := Derive(2, 3, true, CauseAdvanced, "forced by mid", mid)

	// Distinct transitive parents (root, mid) plus leaf itself: 3.
	require.Equal(t, 3, leaf.AncestorCount())

	chain := leaf.Chain()
	require.Len(t, chain, 3)
	assert.Same(t, root, chain[0])
	assert.Same(t, mid, chain[1])
	assert.Same(t, leaf, chain[2])
}

func TestAncestorCountDedupesDiamond(t *testing.T) {
	root := NewSeed(0, 1, true)
	left := Derive(1, 2, false, CauseHiddenRow, "left", root)
	right := Derive(2, 2, false, CauseHiddenColumn, "right", root)
	joined := Derive(3, 3, true, CauseAdvanced, "joined", left, right)

	// root is reachable via both left and right but counted once:
	// joined, left, right, root = 4.
	assert.Equal(t, 4, joined.AncestorCount())
}
