package chaining

import "sudoku-api/internal/sudoku/human/techniques"

// GridView is the external interface the chaining core consumes instead
// of depending on a concrete board. It is satisfied by any
// techniques.BoardInterface; BoardView below is the adapter that does
// the satisfying.
type GridView interface {
	CellValue(cell int) int
	HasCandidate(cell, value int) bool
	Candidates(cell int) techniques.Candidates
	CopyTo(other GridView)
	Equals(other GridView) bool

	// RegionAt returns the region of the given type containing cell.
	RegionAt(t techniques.UnitType, cell int) techniques.Unit
	// PotentialPositions returns, within unit, the cells where value is
	// still a candidate.
	PotentialPositions(unit techniques.Unit, value int) []int

	// Mutating operations, used only when the propagator runs in
	// dynamic mode.
	SetCell(cell, value int)
	RemoveCandidate(cell, value int) bool
	Clone() GridView
}

// BoardView adapts a techniques.BoardInterface to GridView. It is the
// only place the chaining core touches the concrete board package,
// mirroring how every other technique in this codebase (Medusa
// coloring, X-Cycles, the forcing-chain detectors) is decoupled from
// *human.Board via the same BoardInterface.
type BoardView struct {
	board techniques.BoardInterface
}

// NewBoardView wraps b as a GridView.
func NewBoardView(b techniques.BoardInterface) *BoardView {
	return &BoardView{board: b}
}

// Board returns the wrapped BoardInterface, for callers (HintBuilders,
// RuleProducer adapters) that need direct access.
func (v *BoardView) Board() techniques.BoardInterface { return v.board }

func (v *BoardView) CellValue(cell int) int { return v.board.GetCell(cell) }

func (v *BoardView) HasCandidate(cell, value int) bool {
	return v.board.GetCandidatesAt(cell).Has(value)
}

func (v *BoardView) Candidates(cell int) techniques.Candidates {
	return v.board.GetCandidatesAt(cell)
}

func (v *BoardView) CopyTo(other GridView) {
	dst, ok := other.(*BoardView)
	if !ok {
		return
	}
	dst.board = v.board.CloneBoard()
}

func (v *BoardView) Equals(other GridView) bool {
	o, ok := other.(*BoardView)
	if !ok {
		return false
	}
	for i := 0; i < 81; i++ {
		if v.board.GetCell(i) != o.board.GetCell(i) {
			return false
		}
		if v.board.GetCandidatesAt(i) != o.board.GetCandidatesAt(i) {
			return false
		}
	}
	return true
}

func (v *BoardView) RegionAt(t techniques.UnitType, cell int) techniques.Unit {
	switch t {
	case techniques.UnitRow:
		return techniques.Unit{Type: techniques.UnitRow, Index: techniques.RowOf(cell), Cells: techniques.RowIndices[techniques.RowOf(cell)]}
	case techniques.UnitCol:
		return techniques.Unit{Type: techniques.UnitCol, Index: techniques.ColOf(cell), Cells: techniques.ColIndices[techniques.ColOf(cell)]}
	default:
		return techniques.Unit{Type: techniques.UnitBox, Index: techniques.BoxOf(cell), Cells: techniques.BoxIndices[techniques.BoxOf(cell)]}
	}
}

func (v *BoardView) PotentialPositions(unit techniques.Unit, value int) []int {
	return v.board.CellsWithDigitInUnit(unit, value)
}

func (v *BoardView) SetCell(cell, value int) { v.board.SetCell(cell, value) }

func (v *BoardView) RemoveCandidate(cell, value int) bool {
	return v.board.RemoveCandidate(cell, value)
}

func (v *BoardView) Clone() GridView {
	return &BoardView{board: v.board.CloneBoard()}
}

// regionsOf returns the three regions (block, row, column) containing
// cell, in that precedence order — the order OnToOff's X-link dedup
// rule and OffToOn's region rule both require.
func regionsOf(g GridView, cell int) [3]techniques.Unit {
	return [3]techniques.Unit{
		g.RegionAt(techniques.UnitBox, cell),
		g.RegionAt(techniques.UnitRow, cell),
		g.RegionAt(techniques.UnitCol, cell),
	}
}
