// Command minesweeper drives the autonomous probabilistic solver end to
// end: build a board, place ground-truth mines, then repeatedly ask
// internal/solver for the next cell and apply it to the host until the
// board is solved or a mine is hit.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/config"
	"github.com/xumarcus/minesweeper/internal/display"
	"github.com/xumarcus/minesweeper/internal/history"
	"github.com/xumarcus/minesweeper/internal/host"
	"github.com/xumarcus/minesweeper/internal/mserr"
	"github.com/xumarcus/minesweeper/internal/obslog"
	"github.com/xumarcus/minesweeper/internal/solver"
)

// cli is the kong argument/flag schema. Difficulty and Seed are positional
// and optional, falling back to the persisted config default and a random
// seed respectively.
type cli struct {
	Difficulty string `arg:"" optional:"" help:"beginner, intermediate, or expert."`
	Seed       uint64 `arg:"" optional:"" help:"RNG seed for mine placement; random if omitted."`

	LogLevel    string `name:"log-level" default:"info" help:"trace, debug, info, warn, error, or fatal."`
	JSON        bool   `name:"json" help:"print a single JSON result line instead of board output."`
	AutoplayMs  int    `name:"autoplay-ms" default:"300" help:"milliseconds between solver steps in the TUI."`
	NoTUI       bool   `name:"no-tui" help:"run headless: print board glyphs to stdout instead of the TUI."`
	Fast        bool   `name:"fast" help:"use the cheap non-enumerating CrudeSearch ranking instead of the exact evaluator."`
	Stats       bool   `name:"stats" help:"print the persisted per-difficulty success rate and exit."`
}

// result is the --json summary line's shape.
type result struct {
	Difficulty string `json:"difficulty"`
	Seed       uint64 `json:"seed"`
	Solved     bool   `json:"solved"`
	Steps      int    `json:"steps"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	kong.Parse(&c,
		kong.Name("minesweeper-solver"),
		kong.Description("Autonomous probabilistic Minesweeper solver."),
	)

	level, err := obslog.ParseLevel(c.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := obslog.New(os.Stderr, level)

	cfgStore, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
	}
	histStore, err := history.Load()
	if err != nil {
		logger.Warn("failed to load run history, using empty history", "err", err)
	}

	if c.Stats {
		return printStats(histStore)
	}

	difficultyName := c.Difficulty
	if difficultyName == "" {
		difficultyName = cfgStore.Config.DefaultDifficulty
	}
	difficulty, err := board.ParseDifficulty(difficultyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	preset := board.PresetFor(difficulty)
	boardCfg, err := board.New(preset.Rows, preset.Cols, preset.Mines, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	h := host.NewGroundTruthHost(boardCfg)
	driver := solver.New(boardCfg)
	logger.Info("starting run", "difficulty", difficulty, "seed", seed, "fast", c.Fast)

	var solved bool
	var steps int

	switch {
	case c.NoTUI:
		solved, steps = runHeadless(logger, boardCfg, h, driver, c.Fast)
	default:
		tickEvery := time.Duration(cfgStore.Config.AutoplayTickMs) * time.Millisecond
		if c.AutoplayMs > 0 {
			tickEvery = time.Duration(c.AutoplayMs) * time.Millisecond
		}
		model := display.New(boardCfg, h, driver, h.Bombs(), tickEvery, c.Fast)
		p := tea.NewProgram(model, tea.WithAltScreen())
		final, runErr := p.Run()
		if runErr != nil {
			fmt.Fprintln(os.Stderr, runErr)
			return 1
		}
		if m, ok := final.(display.Model); ok {
			solved = m.Won()
			steps = m.Steps()
		}
	}

	histStore.Record(difficulty.String(), seed, solved)
	if err := histStore.Save(); err != nil {
		logger.Warn("failed to persist run history", "err", err)
	}

	if c.JSON {
		if err := printJSON(result{Difficulty: difficulty.String(), Seed: seed, Solved: solved, Steps: steps}); err != nil {
			logger.Warn("failed to marshal result", "err", err)
		}
	}

	if solved {
		logger.Info("solved", "steps", steps)
		return 0
	}
	logger.Info("detonated", "steps", steps)
	return 0
}

// runHeadless runs the solve loop without a TUI, logging each decision at
// debug level and the full board at trace level.
func runHeadless(logger *obslog.Logger, cfg *board.Config, h host.Host, driver *solver.Driver, fast bool) (bool, int) {
	state := h.Pull()
	steps := 0

	for {
		var idx board.Index
		var prob float64

		if fast {
			decision, ok := driver.CrudeSearch(state)
			if !ok {
				fmt.Println(display.Text(cfg, state, nil))
				return true, steps
			}
			idx, prob = decision.Idx, decision.Probability
		} else {
			decision, err := driver.SolveNext(state)
			if err != nil {
				if errors.Is(err, mserr.ErrAlreadySolved) {
					fmt.Println(display.Text(cfg, state, nil))
					return true, steps
				}
				logger.Error("solve failed", "err", err)
				fmt.Println(display.Text(cfg, state, nil))
				return false, steps
			}
			idx, prob = decision.Idx, decision.Probability
		}

		logger.Debug("decision", "idx", idx, "p", prob)

		var applyErr error
		if prob >= 1 {
			applyErr = h.Flag(idx)
		} else {
			applyErr = h.Reveal(idx)
		}
		state = h.Pull()
		steps++

		logger.Trace("board", "state", display.Text(cfg, state, nil))

		if errors.Is(applyErr, mserr.ErrRevealedBomb) {
			bombs, _ := h.(*host.GroundTruthHost)
			var reveal []bool
			if bombs != nil {
				reveal = bombs.Bombs()
			}
			fmt.Println(display.Text(cfg, state, reveal))
			return false, steps
		}
	}
}

func printStats(s *history.Store) int {
	for _, d := range []board.Difficulty{board.Beginner, board.Intermediate, board.Expert} {
		rate, ok := s.SuccessRate(d.String())
		if !ok {
			fmt.Printf("%-12s no runs recorded\n", d.String())
			continue
		}
		fmt.Printf("%-12s %.1f%%\n", d.String(), rate*100)
	}
	return 0
}

func printJSON(r result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
