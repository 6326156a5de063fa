package chaining

import "context"

// unaryDriver implements spec.md §4.5: for a starting cell/value it
// tries both polarities as the seed, looking for a cycle (returns to
// the seed itself after an even length >= 4) or a forcing-chain
// contradiction (reaches the seed's conjugate).
func (e *Engine) unaryDriver(ctx context.Context, grid GridView, cell, value int, cfg Config) ([]*Hint, error) {
	var hints []*Hint
	for _, startOn := range []bool{true, false} {
		hint, err := e.searchUnary(ctx, grid, NewSeed(cell, value, startOn), cfg)
		if err != nil {
			return nil, err
		}
		if hint != nil {
			hints = append(hints, hint)
		}
	}
	return hints, nil
}

// searchUnary runs a single alternating BFS from seed. It is the
// mechanism behind both spec.md §4.5 clauses: a node matching the seed
// itself (length >= 4) is a cycle closure; a node matching the seed's
// conjugate is a forcing-chain contradiction (the seed's assumption is
// disproved, forcing the opposite polarity).
func (e *Engine) searchUnary(ctx context.Context, grid GridView, seed *Potential, cfg Config) (*Hint, error) {
	visited := NewPotentialSet()
	visited.Add(seed)
	frontier := []*Potential{seed}
	conjugate := seed.Key().Conjugate()
	length := 0

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}
		length++

		var next []*Potential
		for _, p := range frontier {
			var derived []*Potential
			if p.IsOn {
				derived = OnToOff(grid, p, cfg)
			} else {
				ons, err := OffToOn(grid, grid, visited, p, cfg)
				if err != nil {
					return nil, err
				}
				derived = ons
			}

			for _, d := range derived {
				key := d.Key()
				if key == conjugate {
					return BuildForcingChainHint(d), nil
				}
				if key == seed.Key() {
					if length >= 4 {
						return BuildCycleHint(grid, seed.Value, d.Chain(), visited, visited), nil
					}
					continue
				}
				if !visited.Has(key) {
					visited.Add(d)
					next = append(next, d)
				}
			}
		}
		frontier = next
	}
	return nil, nil
}
