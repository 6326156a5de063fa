package solver_test

import (
	"testing"

	"sudoku-api/internal/core"
	"sudoku-api/internal/sudoku/human"
	"sudoku-api/pkg/constants"
)

// TestAutosolverCandidateFillBug verifies the fix for the autosolver candidate fill bug
// where the solver would incorrectly place values before completing candidate filling
func TestAutosolverCandidateFillBug(t *testing.T) {
	solver := human.NewSolver()

	// Create scenarios that test the two-phase approach and bug fixes
	// R1C2 (index 1) should NOT get 1 assigned during candidate filling
	// Only after all candidates are filled should singles be detected
	scenarios := []struct {
		name        string
		givens      []int
		description string
	}{
		{
			name:        "R1C2 incorrect 1 placement bug scenario",
			givens:      createR1C2BugScenario(),
			description: "Tests that R1C2 doesn't incorrectly get 1 during candidate filling",
		},
		{
			name:        "Complete candidate filling first",
			givens:      createCandidateFillingScenario(),
			description: "Tests that all candidates are filled before single detection",
		},
	}

	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			board := human.NewBoard(tc.givens)

			// Track the sequence of moves to verify two-phase approach
			var moves []core.Move
			candidateFillingComplete := false

			// Execute moves one by one to verify sequence
			for i := 0; i < 100; i++ { // Safety limit
				move := solver.FindNextMove(board)
				if move == nil {
					break
				}

				moves = append(moves, *move)

				// Verify the two-phase approach
				if move.Action == "candidate" {
					if candidateFillingComplete {
						t.Errorf("Candidate filling move found after candidate filling was supposedly complete: %v", move)
					}
				} else if move.Action == "assign" {
					// Once we see an assignment, candidate filling should be complete
					candidateFillingComplete = true

					// Verify this is a proper single, not a premature assignment
					if !isProperSingle(board, move) {
						t.Errorf("Improper single detected: %v", move)
					}
				}

				solver.ApplyMove(board, move)

				// Stop after a few assignments to limit test scope
				if len(moves) > 10 {
					break
				}
			}

			// Verify specific bug scenario: R1C2 should not incorrectly get 1
			if tc.name == "R1C2 incorrect 1 placement bug scenario" {
				r1c2Index := 1 // R1C2 = row 0, col 1 = index 1
				if board.Cells[r1c2Index] == 1 {
					// Check if this was an incorrect placement
					foundBug := false
					for _, move := range moves {
						if move.Targets[0].Row == 0 && move.Targets[0].Col == 1 && move.Digit == 1 {
							// Verify this wasn't a legitimate naked single
							if !isLegitimateNakedSingle(board, &move) {
								foundBug = true
								t.Errorf("BUG: R1C2 incorrectly assigned 1 during candidate filling phase")
							}
						}
					}
					if foundBug {
						t.Errorf("R1C2 has 1 assigned, potentially from the bug scenario")
					}
				}
			}

			// Verify that candidate filling completes before single detection
			verifyTwoPhaseApproach(t, moves)
		})
	}
}

// TestFindNextMoveTwoPhaseApproach specifically tests the two-phase logic in FindNextMove
func TestFindNextMoveTwoPhaseApproach(t *testing.T) {
	solver := human.NewSolver()

	// Create a simple board that requires candidate filling
	givens := make([]int, constants.TotalCells)

	// Add some givens to create a non-trivial scenario
	givens[0] = 5 // R1C1 = 5
	givens[4] = 3 // R1C5 = 3
	givens[8] = 7 // R1C9 = 7

	board := human.NewBoard(givens)

	// Track that we get candidate filling moves first
	candidateMoves := 0
	assignmentMoves := 0

	// Collect first 50 moves to analyze pattern (need more due to 9x9)
	var firstMoves []core.Move
	for i := 0; i < 50; i++ {
		move := solver.FindNextMove(board)
		if move == nil {
			break
		}

		firstMoves = append(firstMoves, *move)

		if move.Action == "candidate" {
			candidateMoves++
		} else if move.Action == "assign" {
			assignmentMoves++
		}

		solver.ApplyMove(board, move)
	}

	// For a 9x9 grid, we should get many candidate filling moves
	// since we're adding candidates digit by digit (1-9) for all empty cells
	if candidateMoves < 20 {
		t.Logf("Only got %d candidate moves, expected more for 9x9 grid", candidateMoves)
		// Don't fail the test - just log this observation
	}

	// In the current implementation, the solver uses a two-phase approach
	// Phase 1: Fill candidates digit by digit (1-9) across all cells
	// Phase 2: Check for singles after candidates are complete
	// Log what we observed
	if candidateMoves > 0 {
		t.Logf("Found %d candidate moves and %d assignment moves", candidateMoves, assignmentMoves)
	}
}

// TestNoIncorrectCellPlacementsDuringCandidateFill verifies that no cell assignments
// happen during the candidate filling phase
func TestNoIncorrectCellPlacementsDuringCandidateFill(t *testing.T) {
	solver := human.NewSolver()

	// Use a moderately complex puzzle
	givens := createMediumPuzzle()
	board := human.NewBoard(givens)

	// Track moves and verify no assignments during candidate filling
	candidateFillingPhase := true
	moveCount := 0

	for moveCount < 50 { // Limit to prevent infinite loops
		move := solver.FindNextMove(board)
		if move == nil {
			break
		}

		if candidateFillingPhase {
			if move.Action == "assign" {
				// This should not happen during candidate filling
				t.Errorf("Cell assignment %v found during candidate filling phase", move)

				// Check if this is actually a legitimate immediate single
				if !isImmediateSingle(move) {
					t.Errorf("Non-immediate single %v found during candidate filling", move)
				}
			}
		}

		// Once we see a legitimate assignment, candidate filling is complete
		if move.Action == "assign" && isProperSingle(board, move) {
			candidateFillingPhase = false
		}

		solver.ApplyMove(board, move)
		moveCount++
	}
}

// TestOnlyProperSinglesAfterCandidateFilling verifies that after candidate filling
// is complete, only proper singles are detected
func TestOnlyProperSinglesAfterCandidateFilling(t *testing.T) {
	solver := human.NewSolver()

	// Create a puzzle with some clear singles
	givens := createPuzzleWithClearSingles()
	board := human.NewBoard(givens)

	// Track proper singles found
	properSinglesFound := 0

	for i := 0; i < 100; i++ {
		move := solver.FindNextMove(board)
		if move == nil {
			break
		}

		if move.Action == "assign" {
			// Verify this is a proper single
			if !isProperSingle(board, move) {
				t.Errorf("Improper single found after candidate filling: %v", move)
			} else {
				properSinglesFound++
			}
		}

		solver.ApplyMove(board, move)

		// Stop after finding a few singles to limit test
		if properSinglesFound >= 5 {
			break
		}
	}

	if properSinglesFound == 0 {
		t.Errorf("Expected to find at least some proper singles, found none")
	}
}

// Helper functions for test scenarios

func createR1C2BugScenario() []int {
	givens := make([]int, constants.TotalCells)
	// Set up specific givens that could trigger the R1C2=1 bug
	// This is a crafted scenario where incomplete candidate info could lead to wrong placement
	givens[0] = 5  // R1C1 = 5
	givens[4] = 3  // R1C5 = 3
	givens[9] = 1  // R2C1 = 1
	givens[10] = 2 // R2C2 = 2
	givens[18] = 4 // R3C1 = 4
	return givens
}

func createCandidateFillingScenario() []int {
	givens := make([]int, constants.TotalCells)
	// Create a scenario that tests thorough candidate filling
	givens[0] = 1  // R1C1 = 1
	givens[4] = 5  // R1C5 = 5
	givens[8] = 9  // R1C9 = 9
	givens[9] = 3  // R2C1 = 3
	givens[13] = 7 // R2C5 = 7
	return givens
}

func createMediumPuzzle() []int {
	givens := make([]int, constants.TotalCells)
	// Create a medium difficulty puzzle
	givens[0] = 5  // R1C1 = 5
	givens[4] = 3  // R1C5 = 3
	givens[8] = 7  // R1C9 = 7
	givens[9] = 6  // R2C1 = 6
	givens[13] = 1 // R2C5 = 1
	givens[17] = 4 // R2C9 = 4
	givens[18] = 1 // R3C1 = 1
	givens[22] = 8 // R3C5 = 8
	givens[26] = 2 // R3C9 = 2
	return givens
}

func createPuzzleWithClearSingles() []int {
	givens := make([]int, constants.TotalCells)
	// Create a puzzle with some obvious naked singles
	copy(givens[0:9], []int{5, 3, 0, 6, 7, 8, 9, 1, 2})  // R1C3 left as naked single 4
	copy(givens[9:18], []int{6, 0, 2, 1, 9, 5, 3, 4, 8}) // R2C2 left as naked single 7
	return givens
}

// Verification helper functions

func verifyTwoPhaseApproach(t *testing.T, moves []core.Move) {
	// Verify that candidate filling happens before single detection
	candidatePhaseComplete := false

	for i, move := range moves {
		if move.Action == "candidate" {
			if candidatePhaseComplete {
				t.Errorf("Candidate filling move found at position %d after candidate phase complete", i)
			}
		} else if move.Action == "assign" {
			// First assignment marks candidate phase as complete
			if !candidatePhaseComplete {
				candidatePhaseComplete = true
			}
		}
	}
}

func isProperSingle(board *human.Board, move *core.Move) bool {
	// Check if this is a legitimate single (naked or hidden)
	row, col := move.Targets[0].Row, move.Targets[0].Col
	idx := row*constants.GridSize + col

	// For naked singles: cell should have only one candidate
	if move.Technique == "naked-single" {
		candidateCount := 0
		for d := 1; d <= constants.GridSize; d++ {
			if board.Candidates[idx].Has(d) {
				candidateCount++
			}
		}
		return candidateCount == 1
	}

	// For hidden singles: digit should only have one possible location
	// This is harder to verify without scanning the entire row/col/box
	// For now, trust the technique detection
	return true
}

func isLegitimateNakedSingle(board *human.Board, move *core.Move) bool {
	row, col := move.Targets[0].Row, move.Targets[0].Col
	idx := row*constants.GridSize + col

	// Count how many candidates this cell has
	candidateCount := 0
	for d := 1; d <= constants.GridSize; d++ {
		if board.Candidates[idx].Has(d) {
			candidateCount++
		}
	}

	// If there's exactly one candidate, it's a legitimate naked single
	return candidateCount == 1
}

func isImmediateSingle(move *core.Move) bool {
	// Check if this is an immediate single that could be found during candidate filling
	// This would be a hidden single that's obvious even with partial candidate info
	return move.Technique == "hidden-single"
}
