package chaining

import "sudoku-api/internal/sudoku/human/techniques"

// fakeBoard is a minimal techniques.BoardInterface implementation used
// only by this package's tests, so the tests can exercise GridView
// without importing the human package (which already imports chaining
// to register the dynamic-chaining detector, and would cycle back).
type fakeBoard struct {
	cells      [81]int
	candidates [81]techniques.Candidates
}

func newFakeBoard(givens [81]int) *fakeBoard {
	b := &fakeBoard{cells: givens}
	for i := 0; i < 81; i++ {
		if b.cells[i] != 0 {
			continue
		}
		var cands techniques.Candidates
		for d := 1; d <= 9; d++ {
			if b.canPlace(i, d) {
				cands = cands.Set(d)
			}
		}
		b.candidates[i] = cands
	}
	return b
}

// newFakeBoardWithCandidates builds a board from givens exactly like
// newFakeBoard, then overrides the candidate set of specific cells
// directly, bypassing peer-derived candidates entirely. Needed to
// engineer small bivalue/trivalue fixtures: a real 81-cell grid with
// only a couple of empty cells forces their candidates down to a
// single digit via the completed row/column alone, so constructed
// scenarios have to set candidates explicitly instead.
func newFakeBoardWithCandidates(givens [81]int, explicit map[int][]int) *fakeBoard {
	b := newFakeBoard(givens)
	for cell, digits := range explicit {
		var cands techniques.Candidates
		for _, d := range digits {
			cands = cands.Set(d)
		}
		b.candidates[cell] = cands
	}
	return b
}

func (b *fakeBoard) canPlace(idx, digit int) bool {
	for _, peer := range techniques.Peers[idx] {
		if b.cells[peer] == digit {
			return false
		}
	}
	return true
}

func (b *fakeBoard) GetCell(idx int) int                       { return b.cells[idx] }
func (b *fakeBoard) GetCandidatesAt(idx int) techniques.Candidates { return b.candidates[idx] }

func (b *fakeBoard) CellsWithDigitInUnit(unit techniques.Unit, digit int) []int {
	var out []int
	for _, cell := range unit.Cells {
		if b.candidates[cell].Has(digit) {
			out = append(out, cell)
		}
	}
	return out
}

func (b *fakeBoard) CloneBoard() techniques.BoardInterface {
	clone := *b
	return &clone
}

func (b *fakeBoard) SetCell(idx, digit int) {
	b.cells[idx] = digit
	b.candidates[idx] = 0
	for _, peer := range techniques.Peers[idx] {
		b.candidates[peer] = b.candidates[peer].Clear(digit)
	}
}

func (b *fakeBoard) RemoveCandidate(idx, digit int) bool {
	if !b.candidates[idx].Has(digit) {
		return false
	}
	b.candidates[idx] = b.candidates[idx].Clear(digit)
	return true
}
