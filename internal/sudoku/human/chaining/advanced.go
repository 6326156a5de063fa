package chaining

import (
	"context"
	"sort"

	"sudoku-api/internal/core"
	"sudoku-api/internal/sudoku/human/techniques"
	"sudoku-api/pkg/constants"
)

// RuleProducer is an auxiliary pattern rule the propagator can invoke
// when both frontiers are exhausted. It is satisfied by any of this
// codebase's existing technique detectors — the same
// func(BoardInterface) *core.Move shape already registered in
// technique_registry.go — so AdvancedExtension reuses proven detector
// logic instead of reimplementing Locking/HiddenSet/NakedSet/Fisherman.
type RuleProducer func(b techniques.BoardInterface) *core.Move

// level1Rules is the extension table's base tier (spec.md §4.7):
// Locking (pointing pairs + box/line reduction), HiddenSet(2),
// NakedSet(2), Fisherman(2) (X-Wing).
func level1Rules() []RuleProducer {
	return []RuleProducer{
		techniques.DetectPointingPair,
		techniques.DetectBoxLineReduction,
		techniques.DetectHiddenPair,
		techniques.DetectNakedPair,
		techniques.DetectXWing,
	}
}

// advancedExtension implements spec.md §4.7. It is invoked by doChaining
// only when both frontiers are empty and cfg.Level > 0. Cells considered
// by rule_parent recovery are visited in canonical order — ascending by
// (column, row, smallest candidate) — so repeated runs on the same
// puzzle yield identical chains. Stops at the first rule producing any
// implication.
func (e *Engine) advancedExtension(ctx context.Context, grid, source GridView, offSet *PotentialSet, cfg Config) ([]*Potential, error) {
	if cfg.Level <= 0 {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, ErrCancelled
	default:
	}

	view, ok := grid.(*BoardView)
	if !ok {
		return nil, nil
	}

	for _, rule := range level1Rules() {
		move := rule(view.Board())
		if move == nil {
			continue
		}
		added, err := attachRuleParents(grid, offSet, move, nil)
		if err != nil {
			return nil, err
		}
		if len(added) > 0 {
			return canonicalOrder(added), nil
		}
	}

	if cfg.Level >= 2 {
		subCfg := subRuleConfig(cfg)
		subHint, err := e.runNestedChaining(ctx, grid, subCfg)
		if err != nil {
			return nil, err
		}
		if subHint != nil {
			move := subHint.ToMove()
			added, attachErr := attachRuleParents(grid, offSet, move, subHint)
			if attachErr != nil {
				return nil, attachErr
			}
			if len(added) > 0 {
				return canonicalOrder(added), nil
			}
		}
	}

	return nil, nil
}

// subRuleConfig derives the nested Chaining engine's configuration for
// the current level, per spec.md §4.7's table: level 2 recurses with
// simple forcing, level 3 with multiple forcing, level >=4 with dynamic
// mode. NestingLimit does not cap the recursion; Level does.
func subRuleConfig(cfg Config) Config {
	sub := cfg.child()
	switch {
	case cfg.Level >= 4:
		sub.Dynamic = true
	case cfg.Level == 3:
		sub.Multiple = true
		sub.Dynamic = false
	default: // level == 2
		sub.Multiple = false
		sub.Dynamic = false
	}
	return sub
}

// attachRuleParents recovers move's rule-parent potentials against the
// accumulated off-set: any premise cell of the move (its highlighted
// cells) that already has an off-potential on record counts as a
// parent. If none of the premise cells are currently off in this
// propagation, the sub-hint fired independently of the chain and is
// discarded (spec.md §4.7).
func attachRuleParents(grid GridView, offSet *PotentialSet, move *core.Move, nested *Hint) ([]*Potential, error) {
	if move == nil {
		return nil, nil
	}
	removable := moveRemovable(grid, move)
	if !isWorth(removable) {
		return nil, nil
	}

	var ruleParents []*Potential
	seenParent := make(map[PotentialKey]bool)
	premises := append(append([]core.CellRef{}, move.Highlights.Primary...), move.Highlights.Secondary...)
	for _, ref := range premises {
		cell := techniques.FromCellRef(ref)
		for _, key := range offSet.Keys() {
			if key.Cell != cell || seenParent[key] {
				continue
			}
			if parent := offSet.Get(key); parent != nil {
				ruleParents = append(ruleParents, parent)
				seenParent[key] = true
			}
		}
	}
	if len(ruleParents) == 0 {
		return nil, nil
	}

	var out []*Potential
	for cellIdx, values := range removable {
		for _, v := range values {
			out = append(out, Derive(cellIdx, v, false, CauseAdvanced,
				move.Explanation, ruleParents...))
			if nested != nil {
				out[len(out)-1].NestedChain = nested
			}
		}
	}
	return out, nil
}

// moveRemovable extracts the (cell -> values) removable map a core.Move
// represents, covering both "eliminate" moves (direct candidates) and
// "assign" moves (every other candidate of the target cell becomes
// removable, read off grid since core.Move itself only names the digit
// being placed).
func moveRemovable(grid GridView, move *core.Move) map[int][]int {
	out := make(map[int][]int)
	for _, e := range move.Eliminations {
		cell := techniques.IndexOf(e.Row, e.Col)
		out[cell] = append(out[cell], e.Digit)
	}
	if move.Action == constants.ActionAssign && len(move.Targets) > 0 {
		cell := techniques.FromCellRef(move.Targets[0])
		for _, v := range grid.Candidates(cell).ToSlice() {
			if v != move.Digit {
				out[cell] = append(out[cell], v)
			}
		}
	}
	return out
}

// canonicalOrder sorts potentials ascending by (column, row, value),
// the ordering spec.md §4.7 requires for deterministic chain
// reconstruction.
func canonicalOrder(potentials []*Potential) []*Potential {
	sorted := append([]*Potential(nil), potentials...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ca, ra := techniques.ColOf(a.Cell), techniques.RowOf(a.Cell)
		cb, rb := techniques.ColOf(b.Cell), techniques.RowOf(b.Cell)
		if ca != cb {
			return ca < cb
		}
		if ra != rb {
			return ra < rb
		}
		return a.Value < b.Value
	})
	return sorted
}
