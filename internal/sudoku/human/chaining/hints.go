package chaining

import (
	"fmt"
	"sort"
	"strings"

	"sudoku-api/internal/core"
	"sudoku-api/internal/sudoku/human/techniques"
	"sudoku-api/pkg/constants"
)

// HintKind names the five hint shapes spec.md §4.8 builds.
type HintKind int

const (
	HintCycle HintKind = iota
	HintForcingChain
	HintBinary
	HintCellReduction
	HintRegionReduction
)

func (k HintKind) String() string {
	switch k {
	case HintCycle:
		return "cycle"
	case HintForcingChain:
		return "forcing chain"
	case HintBinary:
		return "binary chaining"
	case HintCellReduction:
		return "cell reduction"
	case HintRegionReduction:
		return "region reduction"
	default:
		return "chaining"
	}
}

// Hint is the structured result of a chaining driver: either a forced
// placement (Assign) or a set of removable candidates.
type Hint struct {
	Kind HintKind

	// Assign, when true, means the hint forces AssignCell to AssignDigit
	// (spec.md §4.8's "remove every other candidate" collapses to a
	// placement). When false, Removable holds the candidates to strip.
	Assign     bool
	AssignCell int
	AssignDigit int

	Removable map[int][]int

	// Chains carries the unraveled proof(s): one chain for a forcing
	// chain / binary hint, two (forward + backward) for a cycle.
	Chains [][]*Potential

	Difficulty  float64
	Explanation string
}

// IsWorth reports whether the hint has at least one removable candidate
// (or an assignment), per the EmptyRemovable policy in spec.md §7.
func (h *Hint) IsWorth() bool {
	if h.Assign {
		return true
	}
	return isWorth(h.Removable)
}

// sortKey is the canonical tie-breaker used once hints have been
// collected (sequentially or from parallel workers): starting cell,
// then digit, then kind, so identical logical hints produced by
// different code paths collapse to one stable string.
func (h *Hint) sortKey() string {
	cell := h.AssignCell
	digit := h.AssignDigit
	if !h.Assign {
		cell, digit = firstRemovable(h.Removable)
	}
	return fmt.Sprintf("%02d:%d:%d", cell, digit, h.Kind)
}

// complexity approximates chain length for sorting: the longest
// unraveled proof chain attached to the hint.
func (h *Hint) complexity() int {
	longest := 0
	for _, chain := range h.Chains {
		if len(chain) > longest {
			longest = len(chain)
		}
	}
	return longest
}

func firstRemovable(removable map[int][]int) (cell, digit int) {
	bestCell := -1
	for c := range removable {
		if bestCell == -1 || c < bestCell {
			bestCell = c
		}
	}
	if bestCell == -1 {
		return 0, 0
	}
	values := removable[bestCell]
	bestDigit := values[0]
	for _, v := range values {
		if v < bestDigit {
			bestDigit = v
		}
	}
	return bestCell, bestDigit
}

// CommonName returns "X-Chain" if every edge in the hint's chains is an
// X-link (region-only), "Y-Chain" if any Y-link (naked-single) edge
// appears — spec.md §6's get_common_name for the simplest mode.
func (h *Hint) CommonName() string {
	usesY := false
	for _, chain := range h.Chains {
		for _, p := range chain {
			if p.Cause == CauseNakedSingle {
				usesY = true
			}
		}
	}
	if usesY {
		return "Y-Chain"
	}
	return "X-Chain"
}

// ToMove adapts a Hint into this repo's existing core.Move
// representation, so chaining-derived hints can be registered as an
// ordinary Detector in TechniqueRegistry (see technique_registry.go).
func (h *Hint) ToMove() *core.Move {
	move := &core.Move{
		Technique:   "chaining-" + strings.ReplaceAll(h.Kind.String(), " ", "-"),
		Explanation: h.Explanation,
		Refs: core.TechniqueRef{
			Title: h.CommonName(),
			Slug:  "chaining",
		},
	}
	if h.Assign {
		move.Action = constants.ActionAssign
		move.Digit = h.AssignDigit
		move.Targets = []core.CellRef{techniques.ToCellRef(h.AssignCell)}
		move.Highlights.Primary = move.Targets
		return move
	}

	move.Action = constants.ActionEliminate
	var cells []int
	for cell := range h.Removable {
		cells = append(cells, cell)
	}
	sort.Ints(cells)
	for _, cell := range cells {
		values := append([]int(nil), h.Removable[cell]...)
		sort.Ints(values)
		for _, v := range values {
			move.Eliminations = append(move.Eliminations, core.Candidate{
				Row: techniques.RowOf(cell), Col: techniques.ColOf(cell), Digit: v,
			})
		}
	}
	move.Highlights.Secondary = techniques.ToCellRefs(cells)
	for _, chain := range h.Chains {
		for _, p := range chain {
			move.Highlights.Primary = append(move.Highlights.Primary, techniques.ToCellRef(p.Cell))
		}
	}
	return move
}

// BuildCycleHint implements spec.md §4.8's CycleHint: removable
// candidates are those of v in cells outside the cycle that see some
// cycle cell and are cancelled by both the forward and backward
// direction (set intersection).
func BuildCycleHint(g GridView, value int, cyclePath []*Potential, forward, backward *PotentialSet) *Hint {
	removable := make(map[int][]int)
	inCycle := make(map[int]bool)
	for _, p := range cyclePath {
		inCycle[p.Cell] = true
	}

	common := forward.Intersection(backward)
	for _, p := range common.List() {
		if p.IsOn || inCycle[p.Cell] {
			continue
		}
		if !g.HasCandidate(p.Cell, value) {
			continue
		}
		removable[p.Cell] = append(removable[p.Cell], value)
	}

	cells := make([]int, len(cyclePath))
	for i, p := range cyclePath {
		cells[i] = p.Cell
	}
	explanation := fmt.Sprintf("cycle through %s forces %d out of every cell seeing two cycle nodes of opposite phase",
		techniques.FormatCells(cells), value)

	return &Hint{
		Kind:        HintCycle,
		Removable:   removable,
		Chains:      [][]*Potential{cyclePath},
		Explanation: explanation,
	}
}

// BuildForcingChainHint implements spec.md §4.8's ForcingChainHint: if
// the terminal node is off, remove that candidate; if on, remove every
// other candidate of that cell (i.e. force the assignment).
func BuildForcingChainHint(terminal *Potential) *Hint {
	chain := terminal.Chain()
	if terminal.IsOn {
		return &Hint{
			Kind:        HintForcingChain,
			Assign:      true,
			AssignCell:  terminal.Cell,
			AssignDigit: terminal.Value,
			Chains:      [][]*Potential{chain},
			Explanation: fmt.Sprintf("every branch forces %d at %s", terminal.Value, techniques.FormatCell(terminal.Cell)),
		}
	}
	return &Hint{
		Kind:      HintForcingChain,
		Removable: map[int][]int{terminal.Cell: {terminal.Value}},
		Chains:    [][]*Potential{chain},
		Explanation: fmt.Sprintf("every branch eliminates %d from %s",
			terminal.Value, techniques.FormatCell(terminal.Cell)),
	}
}

// BuildBinaryHint implements spec.md §4.8's BinaryChainingHint: a
// contradiction from (cell, value, on) forces the value off; a
// contradiction from (cell, value, off) forces it on (every other
// candidate removed).
func BuildBinaryHint(result *ContradictionResult) *Hint {
	// The assumption under test is the seed every node of the run
	// descends from: the root of result.On's first-parent chain.
	seed := result.On.Chain()[0]
	chain := result.On.Chain()
	if len(result.Off.Chain()) > len(chain) {
		chain = result.Off.Chain()
	}

	if seed.IsOn {
		return &Hint{
			Kind:      HintBinary,
			Removable: map[int][]int{seed.Cell: {seed.Value}},
			Chains:    [][]*Potential{result.On.Chain(), result.Off.Chain()},
			Explanation: fmt.Sprintf("assuming %d at %s leads to a contradiction, so it cannot be there",
				seed.Value, techniques.FormatCell(seed.Cell)),
		}
	}
	return &Hint{
		Kind:        HintBinary,
		Assign:      true,
		AssignCell:  seed.Cell,
		AssignDigit: seed.Value,
		Chains:      [][]*Potential{result.On.Chain(), result.Off.Chain()},
		Explanation: fmt.Sprintf("excluding %d from %s leads to a contradiction, so it must be placed there",
			seed.Value, techniques.FormatCell(seed.Cell)),
	}
}

// BuildReductionHint implements spec.md §4.8's CellChainingHint /
// RegionChainingHint: one hint per forced potential found in an
// intersection of independent propagations, carrying a per-branch
// explanation chain. kind distinguishes cell- vs region-driven
// reductions purely for labeling/difficulty purposes.
func BuildReductionHint(kind HintKind, forced *Potential, branches [][]*Potential) *Hint {
	if forced.IsOn {
		return &Hint{
			Kind:        kind,
			Assign:      true,
			AssignCell:  forced.Cell,
			AssignDigit: forced.Value,
			Chains:      branches,
			Explanation: fmt.Sprintf("every branch agrees %d must go in %s", forced.Value, techniques.FormatCell(forced.Cell)),
		}
	}
	return &Hint{
		Kind:        kind,
		Removable:   map[int][]int{forced.Cell: {forced.Value}},
		Chains:      branches,
		Explanation: fmt.Sprintf("every branch agrees %d cannot go in %s", forced.Value, techniques.FormatCell(forced.Cell)),
	}
}

// Explain renders a full human-readable proof for hint: its common name
// and summary, followed by every unraveled chain's potentials in order.
// Used by cmd/chainexplain's explain subcommand.
func Explain(hint *Hint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", hint.CommonName(), hint.Kind)
	if hint.Assign {
		fmt.Fprintf(&b, "assign %d at %s\n", hint.AssignDigit, techniques.FormatCell(hint.AssignCell))
	} else {
		fmt.Fprintf(&b, "%s\n", hint.Explanation)
	}
	for i, chain := range hint.Chains {
		fmt.Fprintf(&b, "chain %d:\n", i+1)
		for _, p := range chain {
			state := "must not be"
			if p.IsOn {
				state = "must be"
			}
			fmt.Fprintf(&b, "  %s %s %d (%s)\n", techniques.FormatCell(p.Cell), state, p.Value, p.Cause)
		}
	}
	return b.String()
}
