// Package board provides the geometry layer shared by every other solver
// package: row/column/index conversions and cached neighborhoods.
package board

import (
	"fmt"

	"github.com/xumarcus/minesweeper/internal/mserr"
)

// Index identifies a single cell by its row-major position in the board.
type Index = int

// Difficulty is a named board preset.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Expert
)

// String renders the difficulty name, used by the CLI and logging.
func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a CLI/config string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "", "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "expert":
		return Expert, nil
	default:
		return Beginner, fmt.Errorf("board: unknown difficulty %q", s)
	}
}

// Preset holds the grid dimensions and mine count for a Difficulty.
type Preset struct {
	Rows  int
	Cols  int
	Mines int
}

var presets = map[Difficulty]Preset{
	Beginner:     {Rows: 9, Cols: 9, Mines: 10},
	Intermediate: {Rows: 16, Cols: 16, Mines: 40},
	Expert:       {Rows: 16, Cols: 30, Mines: 99},
}

// PresetFor returns the dimensions and mine count for a difficulty.
func PresetFor(d Difficulty) Preset {
	return presets[d]
}

// Config is the immutable geometry and mine budget for one solver run.
// It precomputes the "square" (Chebyshev-distance-1 neighborhood) of every
// cell once, since re-deriving it at every access is measurable overhead on
// Expert-sized boards.
type Config struct {
	rows    int
	cols    int
	mines   int
	seed    uint64
	squares [][]Index
}

// New builds a Config, precomputing the neighborhood cache. Returns an error
// if the mine count does not fit the board (rows*cols must exceed mines).
func New(rows, cols, mines int, seed uint64) (*Config, error) {
	if rows*cols <= mines {
		return nil, fmt.Errorf("%w: %d cells, %d mines", mserr.ErrInvalidParameters, rows*cols, mines)
	}
	c := &Config{rows: rows, cols: cols, mines: mines, seed: seed}
	c.squares = make([][]Index, c.Size())
	for idx := 0; idx < c.Size(); idx++ {
		row, col := c.AsRC(idx)
		rmin, rmax := max0(row-1), min(rows-1, row+1)
		cmin, cmax := max0(col-1), min(cols-1, col+1)
		var sq []Index
		for r := rmin; r <= rmax; r++ {
			for cc := cmin; cc <= cmax; cc++ {
				cidx := c.FromRC(r, cc)
				if cidx != idx {
					sq = append(sq, cidx)
				}
			}
		}
		c.squares[idx] = sq
	}
	return c, nil
}

// FromDifficulty builds a Config from a named preset.
func FromDifficulty(d Difficulty, seed uint64) *Config {
	p := PresetFor(d)
	c, err := New(p.Rows, p.Cols, p.Mines, seed)
	if err != nil {
		// Presets are hand-verified to satisfy rows*cols > mines.
		panic(fmt.Sprintf("board: invalid preset %v: %v", d, err))
	}
	return c
}

func max0(x int) int {
	if x < 0 {
		return 0
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Rows returns the board height.
func (c *Config) Rows() int { return c.rows }

// Cols returns the board width.
func (c *Config) Cols() int { return c.cols }

// Mines returns the total mine budget.
func (c *Config) Mines() int { return c.mines }

// Seed returns the RNG seed used for mine placement.
func (c *Config) Seed() uint64 { return c.seed }

// Size returns the total cell count, rows*cols.
func (c *Config) Size() int { return c.rows * c.cols }

// AsRC converts a row-major index to (row, col).
func (c *Config) AsRC(idx Index) (int, int) {
	return idx / c.cols, idx % c.cols
}

// FromRC converts (row, col) to a row-major index.
func (c *Config) FromRC(row, col int) Index {
	return row*c.cols + col
}

// Center returns the index of the board's center cell, the opening reveal.
func (c *Config) Center() Index {
	return c.FromRC(c.rows/2, c.cols/2)
}

// Square returns the cached neighborhood of idx: up to 8 in-bounds cells at
// Chebyshev distance 1, excluding idx itself.
func (c *Config) Square(idx Index) []Index {
	return c.squares[idx]
}
