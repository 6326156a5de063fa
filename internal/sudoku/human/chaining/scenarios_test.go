package chaining

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cellReductionGrid builds an 81-cell grid with exactly two empty cells,
// S=30 (row3,col3) and T=32 (row3,col5), which share both row 3 and box
// 4. Every other cell is given, so S and T are the only candidate-
// bearing cells anywhere on the board — the minimal shape needed to
// hand-verify a cellDriver cross-branch reduction without incidental
// interference from unrelated regions.
func cellReductionGrid(t *testing.T) GridView {
	t.Helper()
	var givens [81]int
	for i := range givens {
		givens[i] = 9
	}
	givens[30] = 0
	givens[32] = 0
	board := newFakeBoardWithCandidates(givens, map[int][]int{
		30: {2, 5},
		32: {2, 5, 7},
	})
	return NewBoardView(board)
}

// TestCellReductionForcesElimination exercises spec.md §8's
// cell-reduction scenario: every branch from a cell's candidates agrees
// on an elimination elsewhere. S (cell 30) has candidates {2,5}; for
// each, chasing the resulting chain through T (cell 32, candidates
// {2,5,7}) independently eliminates 7 from T, so cellDriver should
// report a HintCellReduction removing 7 from cell 32 regardless of
// which of S's two candidates turns out to be true.
func TestCellReductionForcesElimination(t *testing.T) {
	engine := NewEngine(Config{Dynamic: true})
	grid := cellReductionGrid(t)

	hints, err := engine.GetHints(context.Background(), grid)
	require.NoError(t, err)

	var found *Hint
	for _, h := range hints {
		if h.Kind == HintCellReduction && !h.Assign {
			if digits, ok := h.Removable[32]; ok {
				for _, d := range digits {
					if d == 7 {
						found = h
					}
				}
			}
		}
	}
	require.NotNil(t, found, "expected a HintCellReduction removing 7 from cell 32, got hints: %+v", hints)
	assert.Contains(t, found.Removable[32], 7)
}

// TestNishioRestrictsToBinaryHints exercises spec.md §8's Nishio
// contradiction scenario from the gating side: hintsForCell only ever
// calls binaryDriver when cfg.Nishio is set, skipping unary/region/cell
// drivers entirely. Reusing the exact fixture that TestCellReduction
// ForcesElimination proves produces a HintCellReduction, this asserts
// that hint specifically disappears once Nishio is enabled, and that
// every surviving hint is HintBinary.
func TestNishioRestrictsToBinaryHints(t *testing.T) {
	plain := NewEngine(Config{Dynamic: true})
	plainHints, err := plain.GetHints(context.Background(), cellReductionGrid(t))
	require.NoError(t, err)

	var hadCellReduction bool
	for _, h := range plainHints {
		if h.Kind == HintCellReduction {
			hadCellReduction = true
		}
	}
	require.True(t, hadCellReduction, "fixture must produce a HintCellReduction under default config")

	nishio := NewEngine(Config{Dynamic: true, Nishio: true})
	nishioHints, err := nishio.GetHints(context.Background(), cellReductionGrid(t))
	require.NoError(t, err)

	for _, h := range nishioHints {
		assert.Equal(t, HintBinary, h.Kind, "Nishio mode must only ever report binary-chaining hints")
	}
}

// TestBuildForcingChainHintXChain exercises spec.md §8's
// naked-pair-via-X-Chain scenario at the hint-builder level: a chain
// built purely from region (X-link) causes should report CommonName()
// "X-Chain" and, when its terminal node is an assignment, force that
// cell to that digit.
func TestBuildForcingChainHintXChain(t *testing.T) {
	root := NewSeed(4, 6, true)
	mid := Derive(5, 6, false, CauseHiddenRow, "row 0 leaves only cell 4 or 5 for 6", root)
	terminal := Derive(5, 9, true, CauseHiddenBlock, "cell 5's box leaves only cell 5 for 9", mid)

	hint := BuildForcingChainHint(terminal)

	assert.Equal(t, HintForcingChain, hint.Kind)
	assert.True(t, hint.Assign)
	assert.Equal(t, terminal.Cell, hint.AssignCell)
	assert.Equal(t, terminal.Value, hint.AssignDigit)
	assert.Equal(t, "X-Chain", hint.CommonName(), "a chain with no naked-single edge must report as an X-Chain")
	require.Len(t, hint.Chains, 1)
	assert.Equal(t, []*Potential{root, mid, terminal}, hint.Chains[0])
}

// TestBuildCycleHintYChain exercises spec.md §8's bidirectional-cycle
// scenario: a cycle that uses at least one naked-single (Y-link) edge
// reports as a "Y-Chain", and an outside cell that both the forward and
// backward traversal independently eliminate a digit from is reported
// as removable, while the cycle's own cells are not.
func TestBuildCycleHintYChain(t *testing.T) {
	value := 7

	p1 := NewSeed(0, value, true)
	p2 := Derive(1, value, false, CauseHiddenRow, "row 0 forces cell 1 off 7", p1)
	p3 := Derive(10, value, true, CauseNakedSingle, "cell 1 collapses to a single remaining candidate", p2)
	p4 := Derive(9, value, false, CauseHiddenRow, "row 1 forces cell 9 off 7", p3)
	cyclePath := []*Potential{p1, p2, p3, p4}

	outsideForward := Derive(2, value, false, CauseHiddenRow, "cell 2 shares row 0 with the forward phase", p1)
	outsideBackward := Derive(2, value, false, CauseHiddenRow, "cell 2 shares row 0 with the backward phase", p4)

	forward := NewPotentialSet()
	forward.AddAll(append(append([]*Potential{}, cyclePath...), outsideForward))
	backward := NewPotentialSet()
	backward.AddAll(append(append([]*Potential{}, cyclePath...), outsideBackward))

	var givens [81]int
	for i := range givens {
		givens[i] = 9
	}
	givens[2] = 0
	board := newFakeBoardWithCandidates(givens, map[int][]int{2: {value}})
	grid := NewBoardView(board)

	hint := BuildCycleHint(grid, value, cyclePath, forward, backward)

	assert.Equal(t, HintCycle, hint.Kind)
	assert.Equal(t, "Y-Chain", hint.CommonName(), "a cycle using a naked-single edge must report as a Y-Chain")
	require.Contains(t, hint.Removable, 2)
	assert.Contains(t, hint.Removable[2], value)
	for _, p := range cyclePath {
		assert.NotContains(t, hint.Removable, p.Cell, "cycle cells themselves must never appear as removable")
	}
}
