// Package mserr defines the solver's error taxonomy. Plain sentinel errors
// wrapped with fmt.Errorf's %w, returning stdlib errors rather than reaching
// for a third-party errors package.
package mserr

import "errors"

var (
	// ErrInvalidParameters reports a Config whose mine count does not fit
	// the board (width*length <= mines). Fatal at construction time.
	ErrInvalidParameters = errors.New("minesweeper: invalid parameters")

	// ErrRevealedBomb reports that Host.Reveal uncovered a mine. Terminal
	// for the current game but not a panic.
	ErrRevealedBomb = errors.New("minesweeper: revealed bomb")

	// ErrInconsistentState reports that the constraint propagator found a
	// clue whose count falls outside [flagged, flagged+unknown] at
	// the top level, after a full propagation pass from a state the host
	// reported as valid. Reaching this indicates a bug upstream, not a
	// recoverable branch-pruning condition (those are handled internally
	// by returning ok=false without an error).
	ErrInconsistentState = errors.New("minesweeper: inconsistent state")

	// ErrAlreadySolved reports that SolveNext found no unknown cell left
	// to reveal.
	ErrAlreadySolved = errors.New("minesweeper: already solved")

	// ErrFlaggedNotBomb reports that Host.Flag was asked to flag a cell
	// that ground truth says is not a mine: a solver bug, not a normal
	// game-over condition.
	ErrFlaggedNotBomb = errors.New("minesweeper: flagged cell is not a bomb")
)
