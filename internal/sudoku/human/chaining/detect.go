package chaining

import (
	"context"

	"sudoku-api/internal/core"
	"sudoku-api/internal/sudoku/human/techniques"
)

// defaultConfig is the configuration the registry-level Detect function
// runs with: dynamic forcing chains one level deep, sequential (the
// registry calls detectors from a single goroutine already), matching
// the "extreme" tier's existing forcing-chain detectors in cost.
func defaultConfig() Config {
	return Config{
		Dynamic:      true,
		Level:        2,
		NestingLimit: 2,
		NumThreads:   1,
	}
}

// Detect adapts the chaining engine into this repo's
// func(b techniques.BoardInterface) *core.Move detector shape, so it can
// be registered in TechniqueRegistry alongside the existing extreme-tier
// detectors (spec.md §6's external-interfaces boundary).
func Detect(b techniques.BoardInterface) *core.Move {
	engine := NewEngine(defaultConfig())
	grid := NewBoardView(b)

	hints, err := engine.GetHints(context.Background(), grid)
	if err != nil || len(hints) == 0 {
		return nil
	}
	return hints[0].ToMove()
}
