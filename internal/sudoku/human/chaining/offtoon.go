package chaining

import "sudoku-api/internal/sudoku/human/techniques"

// OffToOn computes the potentials immediately implied on by assuming p
// (p.IsOn must be false), given the current working grid, the
// pre-mutation source grid, and the accumulated set of off potentials
// seen so far in this propagation. Implements spec.md §4.3.
//
// Returns an error wrapping ErrMissingParent if a hidden parent cannot
// be located in offSet — a logic invariant violation per spec.md §7.
func OffToOn(working, source GridView, offSet *PotentialSet, p *Potential, cfg Config) ([]*Potential, error) {
	if p.IsOn {
		return nil, nil
	}

	type candidate struct {
		result    *Potential
		ancestors int
	}
	byKey := make(map[PotentialKey]candidate)
	var order []PotentialKey

	consider := func(result *Potential) {
		key := result.Key()
		c := candidate{result: result, ancestors: result.AncestorCount()}
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = c
			order = append(order, key)
			return
		}
		if cfg.Mode == ModeDeterministic && c.ancestors < existing.ancestors {
			byKey[key] = c
		}
	}

	// Rule 1: Cell rule (Y-link). If the cell has exactly two
	// candidates in the working grid (p.Value plus one other), the
	// other becomes on.
	if cfg.yLinksEnabled() {
		cands := working.Candidates(p.Cell)
		if cands.Count() == 2 && cands.Has(p.Value) {
			other, ok := cands.Clear(p.Value).Only()
			if ok {
				parents := []*Potential{p}
				hidden, err := hiddenCellParents(source, working, offSet, p.Cell, p.Value, other)
				if err != nil {
					return nil, err
				}
				parents = append(parents, hidden...)
				result := Derive(p.Cell, other, true, CauseNakedSingle,
					"only other candidate once "+digitWord(p.Value)+" is excluded", parents...)
				consider(result)
			}
		}
	}

	// Rule 2: Region rule (X-link). For each region containing the
	// cell, in block-then-row-then-column precedence, if p.Value has
	// exactly one other possible position in the working grid, that
	// position becomes on.
	for _, region := range regionsOf(working, p.Cell) {
		positions := working.PotentialPositions(region, p.Value)
		var others []int
		for _, pos := range positions {
			if pos != p.Cell {
				others = append(others, pos)
			}
		}
		if len(others) != 1 {
			continue
		}
		onCell := others[0]
		parents := []*Potential{p}
		hidden, err := hiddenRegionParents(source, working, offSet, region, onCell, p.Value)
		if err != nil {
			return nil, err
		}
		parents = append(parents, hidden...)
		result := Derive(onCell, p.Value, true, regionCause(region.Type),
			"only remaining position for the digit in its "+region.Type.String(), parents...)
		consider(result)
	}

	out := make([]*Potential, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k].result)
	}
	return out, nil
}

// hiddenCellParents recovers off-potentials for candidate values that
// were present in the source grid's cell but are absent from the
// working grid's cell (except value and other, which are accounted for
// separately) — i.e. candidates removed by earlier dynamic elimination.
func hiddenCellParents(source, working GridView, offSet *PotentialSet, cell, value, other int) ([]*Potential, error) {
	var hidden []*Potential
	srcCands := source.Candidates(cell)
	workCands := working.Candidates(cell)
	for d := 1; d <= 9; d++ {
		if d == value || d == other {
			continue
		}
		if !srcCands.Has(d) || workCands.Has(d) {
			continue
		}
		key := PotentialKey{Cell: cell, Value: d, IsOn: false}
		parent := offSet.Get(key)
		if parent == nil {
			return nil, wrapMissingParent(cell, d)
		}
		hidden = append(hidden, parent)
	}
	return hidden, nil
}

// hiddenRegionParents recovers off-potentials for every other cell in
// region where value was a candidate in the source grid but is absent
// from the working grid (earlier dynamic elimination), excluding the
// forced cell itself.
func hiddenRegionParents(source, working GridView, offSet *PotentialSet, region techniques.Unit, onCell, value int) ([]*Potential, error) {
	var hidden []*Potential
	for _, cell := range region.Cells {
		if cell == onCell {
			continue
		}
		if !source.Candidates(cell).Has(value) || working.Candidates(cell).Has(value) {
			continue
		}
		key := PotentialKey{Cell: cell, Value: value, IsOn: false}
		parent := offSet.Get(key)
		if parent == nil {
			return nil, wrapMissingParent(cell, value)
		}
		hidden = append(hidden, parent)
	}
	return hidden, nil
}
