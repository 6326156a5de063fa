package chaining

import "context"

// regionDriver implements spec.md §4.6's Region driver: for each of the
// three regions containing cell, and each candidate value with exactly
// two (or, in multiple mode, two-or-more) possible positions, propagate
// from every position's "on" assumption and intersect the resulting
// sets. Only the lowest-indexed candidate cell in the region performs
// the work, so the same region hint is not emitted once per member
// cell.
func (e *Engine) regionDriver(ctx context.Context, grid GridView, cell int, cfg Config) ([]*Hint, error) {
	var hints []*Hint
	for _, v := range grid.Candidates(cell).ToSlice() {
		for _, region := range regionsOf(grid, cell) {
			positions := grid.PotentialPositions(region, v)
			if len(positions) < 2 {
				continue
			}
			if !cfg.Multiple && len(positions) != 2 {
				continue
			}

			lowest := positions[0]
			for _, p := range positions {
				if p < lowest {
					lowest = p
				}
			}
			if cell != lowest {
				continue
			}

			var onSets, offSets []*PotentialSet
			for _, pos := range positions {
				toOn := NewPotentialSet()
				toOn.Add(NewSeed(pos, v, true))
				toOff := NewPotentialSet()
				if _, err := e.doChaining(ctx, grid, toOn, toOff, cfg); err != nil {
					return nil, err
				}
				onSets = append(onSets, toOn)
				offSets = append(offSets, toOff)
			}

			common := onSets[0]
			for _, s := range onSets[1:] {
				common = common.Intersection(s)
			}
			for _, forced := range common.List() {
				hints = append(hints, BuildReductionHint(HintRegionReduction, forced, branchesFrom(onSets, forced.Key())))
			}

			commonOff := offSets[0]
			for _, s := range offSets[1:] {
				commonOff = commonOff.Intersection(s)
			}
			for _, forced := range commonOff.List() {
				hints = append(hints, BuildReductionHint(HintRegionReduction, forced, branchesFrom(offSets, forced.Key())))
			}
		}
	}
	return hints, nil
}
