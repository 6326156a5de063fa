package chaining

import "context"

// binaryRun is the pair of propagations (assume on, assume off) for one
// candidate of a cell, retained so region/cell drivers sharing the same
// shape can intersect across them.
type binaryRun struct {
	value                              int
	onToOn, onToOff                    *PotentialSet
	offToOn, offToOff                  *PotentialSet
	onContradiction, offContradiction  *ContradictionResult
}

// runBothPolarities runs the "assume on" and "assume off" propagations
// for (cell, value) and returns both accumulated reachable sets plus
// whichever contradictions surfaced.
func (e *Engine) runBothPolarities(ctx context.Context, grid GridView, cell, value int, cfg Config) (binaryRun, error) {
	r := binaryRun{value: value}

	onToOn := NewPotentialSet()
	onToOn.Add(NewSeed(cell, value, true))
	onToOff := NewPotentialSet()
	onContradiction, err := e.doChaining(ctx, grid, onToOn, onToOff, cfg)
	if err != nil {
		return r, err
	}

	offToOff := NewPotentialSet()
	offToOff.Add(NewSeed(cell, value, false))
	offToOn := NewPotentialSet()
	offContradiction, err := e.doChaining(ctx, grid, offToOn, offToOff, cfg)
	if err != nil {
		return r, err
	}

	r.onToOn, r.onToOff = onToOn, onToOff
	r.offToOn, r.offToOff = offToOn, offToOff
	r.onContradiction, r.offContradiction = onContradiction, offContradiction
	return r, nil
}

// binaryDriver implements spec.md §4.6's Binary driver: for each
// candidate of cell, two independent propagations (on, off); a
// contradiction in either forces the other polarity. In multiple mode,
// a potential reachable from both the on-run and the off-run is forced
// regardless of which polarity holds.
func (e *Engine) binaryDriver(ctx context.Context, grid GridView, cell int, cfg Config) ([]*Hint, error) {
	cands := grid.Candidates(cell)
	if cands.Count() < 2 {
		return nil, nil
	}

	var hints []*Hint
	for _, v := range cands.ToSlice() {
		r, err := e.runBothPolarities(ctx, grid, cell, v, cfg)
		if err != nil {
			return nil, err
		}

		if r.onContradiction != nil {
			hints = append(hints, BuildBinaryHint(r.onContradiction))
		}
		if r.offContradiction != nil {
			hints = append(hints, BuildBinaryHint(r.offContradiction))
		}

		if cfg.Nishio || !cfg.Multiple {
			continue
		}

		for _, forced := range r.onToOn.Intersection(r.offToOn).List() {
			hints = append(hints, BuildReductionHint(HintCellReduction, forced, [][]*Potential{forced.Chain()}))
		}
		for _, forced := range r.onToOff.Intersection(r.offToOff).List() {
			hints = append(hints, BuildReductionHint(HintCellReduction, forced, [][]*Potential{forced.Chain()}))
		}
	}
	return hints, nil
}

// branchesFrom collects, for each set in sets that contains a potential
// with the given key, that potential's unraveled chain — the
// per-branch explanation spec.md §4.8 requires for Cell/Region
// reduction hints.
func branchesFrom(sets []*PotentialSet, key PotentialKey) [][]*Potential {
	var branches [][]*Potential
	for _, s := range sets {
		if p := s.Get(key); p != nil {
			branches = append(branches, p.Chain())
		}
	}
	return branches
}
