package chaining

// OnToOff computes the potentials immediately implied off by assuming p
// (p.IsOn must be true). Each returned potential has p appended as a
// parent. Implements spec.md §4.2.
func OnToOff(g GridView, p *Potential, cfg Config) []*Potential {
	if !p.IsOn {
		return nil
	}
	var out []*Potential
	seen := make(map[PotentialKey]bool)
	emit := func(cell, value int, cause Cause, explanation string) {
		key := PotentialKey{Cell: cell, Value: value, IsOn: false}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, Derive(cell, value, false, cause, explanation, p))
	}

	// Rule 1: Y-link. Every other candidate value of the cell becomes
	// off, in ascending digit order.
	if cfg.yLinksEnabled() {
		cands := g.Candidates(p.Cell)
		for v := 1; v <= 9; v++ {
			if v == p.Value {
				continue
			}
			if !cands.Has(v) {
				continue
			}
			emit(p.Cell, v, CauseNakedSingle, explainYLink(p.Cell, v))
		}
	}

	// Rule 2: X-link. For each region containing the cell, in
	// block-then-row-then-column precedence, every other cell in that
	// region still carrying v becomes off. A cell reachable via both
	// block and a line is only emitted once (dedup by region
	// precedence: block > row > column), enforced by `seen` keyed on
	// (cell, value) alone — since value is fixed to p.Value here the
	// first region to mention a given cell wins.
	xSeen := make(map[int]bool)
	regions := regionsOf(g, p.Cell)
	for _, region := range regions {
		positions := g.PotentialPositions(region, p.Value)
		for _, other := range positions {
			if other == p.Cell || xSeen[other] {
				continue
			}
			xSeen[other] = true
			emit(other, p.Value, regionCause(region.Type), explainXLink(region.Type.String(), other, p.Value))
		}
	}

	return out
}

func explainYLink(cell, value int) string {
	return "naked single: only candidate left once " + digitWord(value) + " is placed"
}

func explainXLink(unitName string, cell, value int) string {
	return "sees the assumed cell in its " + unitName
}

func digitWord(v int) string {
	return string(rune('0' + v))
}
