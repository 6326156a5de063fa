package chaining

import (
	"context"
	"testing"
)

// almostSolvedGrid returns a grid solved everywhere except a handful of
// cells, so unary/binary drivers have real propagation to chase.
func almostSolvedGrid(t *testing.T) GridView {
	t.Helper()
	solved := [81]int{
		5, 3, 4, 6, 7, 8, 9, 1, 2,
		6, 7, 2, 1, 9, 5, 3, 4, 8,
		1, 9, 8, 3, 4, 2, 5, 6, 7,
		8, 5, 9, 7, 6, 1, 4, 2, 3,
		4, 2, 6, 8, 5, 3, 7, 9, 1,
		7, 1, 3, 9, 2, 4, 8, 5, 6,
		9, 6, 1, 5, 3, 7, 2, 8, 4,
		2, 8, 7, 4, 1, 9, 6, 3, 5,
		3, 4, 5, 2, 8, 6, 1, 7, 9,
	}
	// Clear three cells in the same row so region/cell drivers have
	// more than one candidate to chase; 0 means empty.
	solved[0] = 0
	solved[1] = 0
	solved[2] = 0

	return NewBoardView(newFakeBoard(solved))
}

func TestEngineGetHintsDoesNotError(t *testing.T) {
	engine := NewEngine(Config{Dynamic: true, Level: 1, NestingLimit: 1, NumThreads: 1})
	grid := almostSolvedGrid(t)

	hints, err := engine.GetHints(context.Background(), grid)
	if err != nil {
		t.Fatalf("GetHints() error = %v", err)
	}
	for _, h := range hints {
		if !h.IsWorth() {
			t.Errorf("GetHints() returned a hint that is not worth reporting: %+v", h)
		}
	}
}

func TestEngineMemoizesIdenticalGrid(t *testing.T) {
	engine := NewEngine(Config{Dynamic: true, Level: 1, NumThreads: 1})
	grid := almostSolvedGrid(t)

	first, err := engine.GetHints(context.Background(), grid)
	if err != nil {
		t.Fatalf("GetHints() error = %v", err)
	}
	second, err := engine.GetHints(context.Background(), grid)
	if err != nil {
		t.Fatalf("GetHints() second call error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("memoized GetHints() returned a different hint count: %d vs %d", len(first), len(second))
	}
}

func TestEngineDifficultyRequiresAKnownShape(t *testing.T) {
	engine := NewEngine(Config{Level: 0})
	if _, err := engine.GetDifficulty(); err == nil {
		t.Errorf("GetDifficulty() with no Nishio/Multiple/Dynamic/Level should fail, got nil error")
	}

	dynamicEngine := NewEngine(Config{Dynamic: true})
	score, err := dynamicEngine.GetDifficulty()
	if err != nil {
		t.Fatalf("GetDifficulty() error = %v", err)
	}
	if score <= 0 {
		t.Errorf("GetDifficulty() = %v, want > 0", score)
	}
}

func TestEngineCancellation(t *testing.T) {
	engine := NewEngine(Config{Dynamic: true, Level: 2, NumThreads: 1})
	grid := almostSolvedGrid(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.GetHints(ctx, grid); err == nil {
		t.Errorf("GetHints() with a cancelled context should return an error")
	}
}
