package chaining

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Settings is the external configuration surface spec.md §6 describes;
// Config satisfies it directly.
type Settings interface {
	Threads() int
	FixedChainingMode() ChainingMode
}

func (c Config) numThreads() int                { return c.NumThreads }
func (c Config) fixedChainingMode() ChainingMode { return c.Mode }

var _ Settings = Config{}

func (c Config) Threads() int                   { return c.numThreads() }
func (c Config) FixedChainingMode() ChainingMode { return c.fixedChainingMode() }

// Engine is the chaining inference engine: spec.md's get_hints entry
// point plus metadata accessors. One Engine instance owns its own
// save_grid scratch space implicitly (each doChaining call clones and
// restores independently) and its own single-previous-grid memo.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
	tracer trace.Tracer

	memoGrid  GridView
	memoHints []*Hint
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a zerolog.Logger. The default is zerolog.Nop(),
// matching spec.md §5's "pure CPU-bound computation" — no logging on
// the hot path unless explicitly wired in.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithTracer attaches an OpenTelemetry tracer for per-sweep spans
// (started in engine.go, propagator.go and parallel.go). Defaults to
// the global no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// NewEngine builds an Engine for the given configuration.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: zerolog.Nop(),
		tracer: otel.Tracer("sudoku-api/chaining"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// GetDifficulty returns the configuration's difficulty score, or
// ErrIllegalConfig if the configuration cannot yield one (spec.md §7).
func (e *Engine) GetDifficulty() (float64, error) {
	score, ok := e.cfg.Difficulty()
	if !ok {
		return 0, ErrIllegalConfig
	}
	return score, nil
}

// GetCommonName returns hint's simplest-mode common name ("X-Chain" /
// "Y-Chain"), per spec.md §6.
func (e *Engine) GetCommonName(hint *Hint) string { return hint.CommonName() }

// String describes the engine's configuration, for logging/CLI output.
func (e *Engine) String() string {
	return fmt.Sprintf("Chaining(level=%d multiple=%v dynamic=%v nishio=%v parallel=%v)",
		e.cfg.Level, e.cfg.Multiple, e.cfg.Dynamic, e.cfg.Nishio, e.cfg.EffectiveParallel())
}

// GetHints is the engine's main entry point (spec.md §6's get_hints):
// it runs every driver over every empty cell, sorts and deduplicates
// the resulting hints, and returns them in the deterministic order
// spec.md §5 guarantees regardless of worker interleaving.
//
// Memoization: if grid equals the previous call's grid, the cached
// hints are returned without re-running propagation (spec.md §6, §8
// scenario 5).
func (e *Engine) GetHints(ctx context.Context, grid GridView) ([]*Hint, error) {
	if e.memoGrid != nil && e.memoGrid.Equals(grid) {
		e.logger.Debug().Msg("chaining: memo hit, replaying cached hints")
		return e.memoHints, nil
	}

	ctx, span := e.tracer.Start(ctx, "chaining.GetHints")
	defer span.End()

	var all []*Hint
	var err error
	if e.cfg.EffectiveParallel() {
		all, err = e.getHintsParallel(ctx, grid)
	} else {
		all, err = e.getHintsSequential(ctx, grid)
	}
	if err != nil {
		return nil, err
	}

	hints := dedupeAndSort(all)

	e.memoGrid = grid.Clone()
	e.memoHints = hints
	return hints, nil
}

// getHintsSequential implements the single-threaded ordering contract
// of spec.md §5: starting-cell index ascending, then driver order
// (unary, then binary -> region -> cell), then candidate value
// ascending (enforced inside each driver).
func (e *Engine) getHintsSequential(ctx context.Context, grid GridView) ([]*Hint, error) {
	var hints []*Hint
	for cell := 0; cell < 81; cell++ {
		cellHints, err := e.hintsForCell(ctx, grid, cell)
		if err != nil {
			return nil, err
		}
		hints = append(hints, cellHints...)
	}
	return hints, nil
}

// hintsForCell runs every driver for one starting cell, in the
// prescribed order.
func (e *Engine) hintsForCell(ctx context.Context, grid GridView, cell int) ([]*Hint, error) {
	if grid.CellValue(cell) != 0 {
		return nil, nil
	}
	cands := grid.Candidates(cell)
	if cands.IsEmpty() {
		return nil, nil
	}

	var hints []*Hint

	if !e.cfg.Nishio {
		for _, v := range cands.ToSlice() {
			uh, err := e.unaryDriver(ctx, grid, cell, v, e.cfg)
			if err != nil {
				return nil, err
			}
			hints = append(hints, uh...)
		}
	}

	bh, err := e.binaryDriver(ctx, grid, cell, e.cfg)
	if err != nil {
		return nil, err
	}
	hints = append(hints, bh...)

	if !e.cfg.Nishio {
		rh, err := e.regionDriver(ctx, grid, cell, e.cfg)
		if err != nil {
			return nil, err
		}
		hints = append(hints, rh...)

		ch, err := e.cellDriver(ctx, grid, cell, e.cfg)
		if err != nil {
			return nil, err
		}
		hints = append(hints, ch...)
	}

	difficulty, _ := e.cfg.Difficulty()
	var worth []*Hint
	for _, h := range hints {
		h.Difficulty = difficulty
		if h.IsWorth() {
			worth = append(worth, h)
		}
	}
	return worth, nil
}

// runNestedChaining spawns a fresh, independent child engine (per
// spec.md §9's "nested engines" re-entrancy rule: no shared save_grid
// or lazy rule list with the parent) and returns the first hint it finds
// in starting-cell order (the child's hints are not sorted), for use by
// AdvancedExtension at level >= 2.
func (e *Engine) runNestedChaining(ctx context.Context, grid GridView, subCfg Config) (*Hint, error) {
	child := NewEngine(subCfg, WithLogger(e.logger), WithTracer(e.tracer))
	hints, err := child.getHintsSequential(ctx, grid.Clone())
	if err != nil {
		return nil, err
	}
	if len(hints) == 0 {
		return nil, nil
	}
	return hints[0], nil
}

// dedupeAndSort removes non-worthwhile hints (already filtered by
// hintsForCell, kept here for the parallel path) and sorts by
// (difficulty asc, complexity asc, sortKey asc) — spec.md §5's
// parallel-determinism guarantee.
func dedupeAndSort(hints []*Hint) []*Hint {
	seen := make(map[string]bool)
	var out []*Hint
	for _, h := range hints {
		if h == nil || !h.IsWorth() {
			continue
		}
		key := h.sortKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Difficulty != b.Difficulty {
			return a.Difficulty < b.Difficulty
		}
		if ca, cb := a.complexity(), b.complexity(); ca != cb {
			return ca < cb
		}
		return a.sortKey() < b.sortKey()
	})
	return out
}
