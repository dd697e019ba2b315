// Package propagate implements the constraint propagator: deriving forced
// flags and forced safe cells from local mine-count clues, to a fixed
// point.
package propagate

import (
	"fmt"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/mserr"
)

// MakeConsistent enforces the clue at idx, if any, against its neighbors:
// a clue c is feasible only if c is between the number of already-flagged
// neighbors and that count plus the number of still-unknown neighbors. At
// either bound every unknown neighbor is forced (flagged or marked safe),
// and the change recurses into each forced neighbor's own neighborhood.
// A non-clue cell (Unknown, Marked, Flagged) is a no-op.
func MakeConsistent(state *cellstate.State, idx board.Index) error {
	status := state.Get(idx)
	if status.Kind != cellstate.Known {
		return nil
	}
	count := status.Count
	unknowns := state.SquareUnknowns(idx)
	minimum := state.CountSquareKind(idx, cellstate.Flagged)
	maximum := minimum + len(unknowns)
	if count < minimum || count > maximum {
		return fmt.Errorf("%w: clue %d at %d not in [%d,%d]", mserr.ErrInconsistentState, count, idx, minimum, maximum)
	}
	for _, cidx := range unknowns {
		switch count {
		case minimum:
			state.SetMark(cidx)
		case maximum:
			state.SetFlag(cidx)
		default:
			continue
		}
		for _, ccidx := range state.Config().Square(cidx) {
			if err := MakeConsistent(state, ccidx); err != nil {
				return err
			}
		}
	}
	return nil
}

// MakeConsistentSquare runs MakeConsistent over every neighbor of idx, used
// after a single cell's status changes locally (e.g. a branching candidate
// assignment).
func MakeConsistentSquare(state *cellstate.State, idx board.Index) error {
	for _, cidx := range state.Config().Square(idx) {
		if err := MakeConsistent(state, cidx); err != nil {
			return err
		}
	}
	return nil
}

// MakeConsistentAll runs MakeConsistent at every clue cell. Termination is
// guaranteed because each cell's status advances at most twice
// (Unknown -> Marked -> Known, or Unknown -> Flagged), bounding total recursive work by
// O(size * 8).
func MakeConsistentAll(state *cellstate.State) error {
	for idx := 0; idx < state.Size(); idx++ {
		if err := MakeConsistent(state, idx); err != nil {
			return err
		}
	}
	return nil
}
