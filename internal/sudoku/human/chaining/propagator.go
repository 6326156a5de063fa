package chaining

import "context"

// ContradictionResult is the pair of conjugate potentials — one on, one
// off, same (cell, value) — whose simultaneous derivation proves the
// starting assumptions cannot both hold.
type ContradictionResult struct {
	On  *Potential
	Off *Potential
}

// CombinedAncestors is the tie-breaker spec.md §4.4 uses to pick among
// several contradictions surfacing in one sweep: the pair with the
// smallest combined ancestor count wins (the shortest proof).
func (r *ContradictionResult) CombinedAncestors() int {
	return r.On.AncestorCount() + r.Off.AncestorCount()
}

// doChaining saturates toOn/toOff by alternating OnToOff/OffToOn drains
// until no further progress is possible, optionally invoking
// AdvancedExtension when both frontiers empty and cfg.Level > 0.
// Implements spec.md §4.4.
//
// grid is treated as a scratch buffer: on entry it is snapshotted into
// an internal save_grid (source), and on every return path the working
// grid is restored from that snapshot — scope discipline owned entirely
// by this call, per spec.md §9 ("Dynamic propagation and snapshotting").
func (e *Engine) doChaining(ctx context.Context, grid GridView, toOn, toOff *PotentialSet, cfg Config) (*ContradictionResult, error) {
	ctx, span := e.tracer.Start(ctx, "chaining.doChaining")
	defer span.End()

	source := grid.Clone()
	restore := func() { source.CopyTo(grid) }
	defer restore()

	pendingOn := append([]*Potential(nil), toOn.List()...)
	pendingOff := append([]*Potential(nil), toOff.List()...)

	var contradictions []*ContradictionResult

	for {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		for len(pendingOn) > 0 {
			p := pendingOn[0]
			pendingOn = pendingOn[1:]
			for _, off := range OnToOff(grid, p, cfg) {
				if onNode := toOn.Get(off.Key().Conjugate()); onNode != nil {
					contradictions = append(contradictions, &ContradictionResult{On: onNode, Off: off})
					continue
				}
				if !toOff.Has(off.Key()) {
					toOff.Add(off)
					pendingOff = append(pendingOff, off)
				}
			}
		}

		for len(pendingOff) > 0 {
			p := pendingOff[0]
			pendingOff = pendingOff[1:]

			ons, err := OffToOn(grid, source, toOff, p, cfg)
			if err != nil {
				return nil, err
			}
			if cfg.Dynamic {
				grid.RemoveCandidate(p.Cell, p.Value)
			}
			for _, on := range ons {
				if offNode := toOff.Get(on.Key().Conjugate()); offNode != nil {
					contradictions = append(contradictions, &ContradictionResult{On: on, Off: offNode})
					continue
				}
				if !toOn.Has(on.Key()) {
					toOn.Add(on)
					pendingOn = append(pendingOn, on)
				}
			}
		}

		if len(pendingOn) > 0 || len(pendingOff) > 0 {
			continue
		}

		if len(contradictions) > 0 {
			return bestContradiction(contradictions), nil
		}

		if cfg.Level == 0 {
			return nil, nil
		}

		added, err := e.advancedExtension(ctx, grid, source, toOff, cfg)
		if err != nil {
			return nil, err
		}
		if len(added) == 0 {
			return nil, nil
		}
		for _, a := range added {
			if !toOff.Has(a.Key()) {
				toOff.Add(a)
				pendingOff = append(pendingOff, a)
			}
		}
	}
}

// bestContradiction selects the pair with minimum combined ancestor
// count, per spec.md §4.4's contradiction-selection rule.
func bestContradiction(candidates []*ContradictionResult) *ContradictionResult {
	best := candidates[0]
	bestScore := best.CombinedAncestors()
	for _, c := range candidates[1:] {
		if score := c.CombinedAncestors(); score < bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}
