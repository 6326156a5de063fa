// Command chainexplain is a standalone CLI around the chaining engine:
// it runs the solver against a board given on the command line and
// prints the hints it finds, with a progress spinner while the engine
// works and colored output for readability.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sudoku-api/internal/sudoku/human"
	"sudoku-api/internal/sudoku/human/chaining"
)

var (
	level         int
	dynamic       bool
	multiple      bool
	nishio        bool
	nestingLimit  int
	numThreads    int
	disableYLinks bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "chainexplain",
	Short: "Run and explain the Sudoku chaining inference engine from the command line",
	Long: `chainexplain drives the chaining package directly, without the HTTP
server, so chain-based hints can be inspected and benchmarked while
iterating on the engine.`,
}

func engineConfig() chaining.Config {
	return chaining.Config{
		Multiple:      multiple,
		Dynamic:       dynamic,
		Nishio:        nishio,
		Level:         level,
		NestingLimit:  nestingLimit,
		NumThreads:    numThreads,
		DisableYLinks: disableYLinks,
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&level, "level", "l", 2, "nesting level (0 = no extensions, 1 = basic, >=2 recursive sub-engines)")
	rootCmd.PersistentFlags().BoolVarP(&dynamic, "dynamic", "d", true, "enable dynamic (mutating) chaining")
	rootCmd.PersistentFlags().BoolVarP(&multiple, "multiple", "m", false, "enable multi-branch cell/region reductions")
	rootCmd.PersistentFlags().BoolVarP(&nishio, "nishio", "n", false, "restrict to Nishio contradiction search")
	rootCmd.PersistentFlags().IntVar(&nestingLimit, "nesting-limit", 2, "recursion depth cap for nested sub-engines")
	rootCmd.PersistentFlags().IntVarP(&numThreads, "threads", "j", 1, "worker count when parallel fan-out applies")
	rootCmd.PersistentFlags().BoolVar(&disableYLinks, "disable-y-links", false, "disable naked-single (Y-link) edges, leaving only region (X-link) propagation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every hint's removable candidates, not just its summary")

	rootCmd.AddCommand(solveCmd, explainCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

// parseBoard accepts an 81-character string, '.' or '0' for blanks.
func parseBoard(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 81 {
		return nil, fmt.Errorf("board must be exactly 81 characters, got %d", len(s))
	}
	cells := make([]int, 81)
	for i, r := range s {
		if r == '.' || r == '0' {
			cells[i] = 0
			continue
		}
		d, err := strconv.Atoi(string(r))
		if err != nil || d < 1 || d > 9 {
			return nil, fmt.Errorf("invalid character %q at position %d", r, i)
		}
		cells[i] = d
	}
	return cells, nil
}

func withSpinner(msg string, fn func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	_ = s.Color("cyan", "bold")
	if !verbose {
		s.Start()
	}
	fn()
	s.Stop()
}

var solveCmd = &cobra.Command{
	Use:   "solve <board>",
	Short: "Run the chaining engine once and print every hint it finds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cells, err := parseBoard(args[0])
		if err != nil {
			return err
		}
		board := human.NewBoard(cells)
		engine := chaining.NewEngine(engineConfig())
		grid := chaining.NewBoardView(board)

		var hints []*chaining.Hint
		withSpinner("searching for chain hints...", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			hints, err = engine.GetHints(ctx, grid)
		})
		if err != nil {
			return err
		}

		if len(hints) == 0 {
			color.Yellow("no chain hints found at the current configuration")
			return nil
		}

		for i, h := range hints {
			printHint(i, h, engine)
		}
		color.Green("found %d hint(s)", len(hints))
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <board>",
	Short: "Print only the single best hint, with its full unraveled chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cells, err := parseBoard(args[0])
		if err != nil {
			return err
		}
		board := human.NewBoard(cells)
		engine := chaining.NewEngine(engineConfig())
		grid := chaining.NewBoardView(board)

		var hints []*chaining.Hint
		withSpinner("searching for the best chain hint...", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			hints, err = engine.GetHints(ctx, grid)
		})
		if err != nil {
			return err
		}
		if len(hints) == 0 {
			color.Yellow("no chain hints found at the current configuration")
			return nil
		}

		printHint(0, hints[0], engine)
		fmt.Println()
		color.Cyan("proof:")
		fmt.Print(chaining.Explain(hints[0]))
		return nil
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench <board>",
	Short: "Time how long the engine takes to exhaust hints on the given board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cells, err := parseBoard(args[0])
		if err != nil {
			return err
		}
		board := human.NewBoard(cells)
		engine := chaining.NewEngine(engineConfig())
		grid := chaining.NewBoardView(board)

		var hints []*chaining.Hint
		var elapsed time.Duration
		withSpinner("benchmarking...", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			start := time.Now()
			hints, err = engine.GetHints(ctx, grid)
			elapsed = time.Since(start)
		})
		if err != nil {
			return err
		}

		score, derr := engine.GetDifficulty()
		if derr != nil {
			color.Yellow("config difficulty score: unavailable (%v)", derr)
		} else {
			color.Cyan("config difficulty score: %v", score)
		}
		color.Cyan("hints found: %d", len(hints))
		color.Cyan("elapsed: %s", elapsed)
		return nil
	},
}

func printHint(i int, h *chaining.Hint, engine *chaining.Engine) {
	name := engine.GetCommonName(h)
	if h.Assign {
		color.Green("[%d] %s (%s): assign %d at cell %d", i, h.Kind, name, h.AssignDigit, h.AssignCell)
	} else {
		color.Green("[%d] %s (%s): %s", i, h.Kind, name, h.Explanation)
	}
	if verbose {
		for cell, digits := range h.Removable {
			fmt.Printf("      remove %v from cell %d\n", digits, cell)
		}
	}
}
