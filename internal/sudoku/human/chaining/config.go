package chaining

// ChainingMode selects the ordering-hardening path described in
// spec.md §4.3/§4.4/§4.7. Deterministic is the contract this
// implementation honors; Legacy is kept only as an unused-by-default
// enum value (see DESIGN.md's Open Question decisions) — no code path
// in this repo selects it.
type ChainingMode int

const (
	ModeDeterministic ChainingMode = iota
	ModeLegacy
)

// Config parameterizes a chaining Engine. The zero value (all false,
// Level 0) is the cheapest configuration: Y/X-link propagation with no
// extension rules, no region/cell reductions, no recursion, no
// parallelism. It has no difficulty score (see Difficulty), so
// GetDifficulty reports ErrIllegalConfig for it.
type Config struct {
	// Multiple enables cell/region multi-branch reductions.
	Multiple bool
	// Dynamic permits mutating the working grid during propagation and
	// chaining sub-rule implications.
	Dynamic bool
	// Nishio restricts the engine to per-candidate on/off
	// contradictions only, skipping region/cell reductions.
	Nishio bool
	// Level is the nesting depth: 0 = no extension rules, 1 = basic
	// pattern extensions, >=2 recursively wraps a simpler Chaining
	// engine as a sub-rule (see advanced.go).
	Level int
	// Parallel allows fan-out by starting cell. Automatically disabled
	// when Level < 3 or NumThreads <= 1 (see EffectiveParallel()).
	Parallel bool
	// NestingLimit is decremented (floored at 0) for each sub-engine
	// spawned by AdvancedExtension. No code path reads it to stop
	// recursion; nesting depth is bounded by Level, which child() also
	// decrements.
	NestingLimit int
	// NumThreads is the worker pool size used when Parallel is active.
	NumThreads int
	// Mode selects the ordering contract; defaults to deterministic.
	Mode ChainingMode

	// DisableYLinks turns off the Y-link (naked-single) half of
	// OnToOff/OffToOn, leaving only X-link (region) propagation. The
	// zero value keeps Y-links enabled, matching get_common_name's
	// "Y-Chain" being the richer default and "X-Chain" the restricted
	// mode.
	DisableYLinks bool
}

// yLinksEnabled reports whether Y-link (naked-single) edges should be
// generated.
func (c Config) yLinksEnabled() bool { return !c.DisableYLinks }

// EffectiveParallel reports whether fan-out by starting cell should
// actually be used, applying the automatic-disable rule from spec.md
// §4.1.
func (c Config) EffectiveParallel() bool {
	return c.Parallel && c.Level >= 3 && c.NumThreads > 1
}

// child returns the configuration for a recursively nested engine: one
// level down, parallelism always off (spec.md §9, "Nested engines").
func (c Config) child() Config {
	next := c
	next.Level--
	if next.Level < 0 {
		next.Level = 0
	}
	next.Parallel = false
	next.NestingLimit--
	if next.NestingLimit < 0 {
		next.NestingLimit = 0
	}
	return next
}

// Difficulty is a deterministic function of (Level, Multiple, Dynamic,
// Nishio), per spec.md §4.1: 7.5 Nishio, 8.0 Multiple, 8.5 Dynamic or
// level-1, 9.0+ for each further level.
//
// Returns (score, ok); ok is false for ErrIllegalConfig's trigger
// condition: non-multiple, non-dynamic, non-nishio, level 0.
func (c Config) Difficulty() (float64, bool) {
	switch {
	case c.Nishio:
		return 7.5, true
	case c.Multiple:
		return 8.0, true
	case c.Dynamic || c.Level == 1:
		return 8.5, true
	case c.Level >= 2:
		return 9.0 + float64(c.Level-2)*0.5, true
	default:
		return 0, false
	}
}
