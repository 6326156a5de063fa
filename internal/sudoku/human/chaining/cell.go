package chaining

import "context"

// cellDriver implements spec.md §4.6's Cell reduction: across all
// candidates of cell, intersect every candidate's onToOn (and onToOff)
// sets. A potential in the intersection is forced regardless of which
// candidate the cell ultimately holds.
func (e *Engine) cellDriver(ctx context.Context, grid GridView, cell int, cfg Config) ([]*Hint, error) {
	cands := grid.Candidates(cell)
	if cands.Count() < 2 {
		return nil, nil
	}

	var onSets, offSets []*PotentialSet
	for _, v := range cands.ToSlice() {
		toOn := NewPotentialSet()
		toOn.Add(NewSeed(cell, v, true))
		toOff := NewPotentialSet()
		if _, err := e.doChaining(ctx, grid, toOn, toOff, cfg); err != nil {
			return nil, err
		}
		onSets = append(onSets, toOn)
		offSets = append(offSets, toOff)
	}

	var hints []*Hint
	common := onSets[0]
	for _, s := range onSets[1:] {
		common = common.Intersection(s)
	}
	for _, forced := range common.List() {
		if forced.Cell == cell {
			continue
		}
		hints = append(hints, BuildReductionHint(HintCellReduction, forced, branchesFrom(onSets, forced.Key())))
	}

	commonOff := offSets[0]
	for _, s := range offSets[1:] {
		commonOff = commonOff.Intersection(s)
	}
	for _, forced := range commonOff.List() {
		if forced.Cell == cell {
			continue
		}
		hints = append(hints, BuildReductionHint(HintCellReduction, forced, branchesFrom(offSets, forced.Key())))
	}
	return hints, nil
}
