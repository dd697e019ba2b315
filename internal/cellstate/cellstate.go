// Package cellstate holds the per-cell status store (spec data model
// "Status"/"State") with its monotone transitions. Status is a tagged
// variant with a small integer payload for Known, per the design note to
// avoid dynamic dispatch.
package cellstate

import (
	"fmt"

	"github.com/xumarcus/minesweeper/internal/board"
)

// Kind tags a Status.
type Kind int

const (
	Unknown Kind = iota
	Marked
	Flagged
	Known
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case Marked:
		return "Marked"
	case Flagged:
		return "Flagged"
	case Known:
		return "Known"
	default:
		return "Invalid"
	}
}

// Status is the tagged-variant cell status: Unknown (initial), Marked
// (proved safe, not yet revealed), Flagged (proved mine), or Known(Count)
// (revealed clue with neighbor-mine count Count in 0..8). Count is only
// meaningful when Kind == Known.
type Status struct {
	Kind  Kind
	Count int
}

func (s Status) String() string {
	if s.Kind == Known {
		return fmt.Sprintf("Known(%d)", s.Count)
	}
	return s.Kind.String()
}

// StatusUnknown, StatusMarked, and StatusFlagged are the constant-payload
// statuses; StatusKnown carries the clue count.
var (
	StatusUnknown = Status{Kind: Unknown}
	StatusMarked  = Status{Kind: Marked}
	StatusFlagged = Status{Kind: Flagged}
)

// StatusKnown returns a Known status with the given neighbor-mine count.
func StatusKnown(count int) Status {
	return Status{Kind: Known, Count: count}
}

// State is the board's status vector plus cached counters (spec data model
// invariant: knowns+unknowns+flags+marks == size, flags <= total mines).
type State struct {
	cfg   *board.Config
	cells []Status

	flags    int
	marks    int
	knowns   int
	unknowns int
}

// New builds a fully-Unknown State for cfg.
func New(cfg *board.Config) *State {
	cells := make([]Status, cfg.Size())
	for i := range cells {
		cells[i] = StatusUnknown
	}
	return &State{cfg: cfg, cells: cells, unknowns: cfg.Size()}
}

// Clone deep-copies the state; recursive evaluation clones owns a fresh
// copy per branch so statuses never alias across candidate assignments.
func (s *State) Clone() *State {
	cells := make([]Status, len(s.cells))
	copy(cells, s.cells)
	return &State{
		cfg:      s.cfg,
		cells:    cells,
		flags:    s.flags,
		marks:    s.marks,
		knowns:   s.knowns,
		unknowns: s.unknowns,
	}
}

// Config returns the board geometry this state is defined over.
func (s *State) Config() *board.Config { return s.cfg }

// Size returns the number of cells in the board.
func (s *State) Size() int { return len(s.cells) }

// Get returns the status of cell idx.
func (s *State) Get(idx board.Index) Status { return s.cells[idx] }

// Flags returns the number of cells proved to be mines.
func (s *State) Flags() int { return s.flags }

// Marks returns the number of cells proved safe but not yet revealed.
func (s *State) Marks() int { return s.marks }

// Knowns returns the number of revealed (clue) cells.
func (s *State) Knowns() int { return s.knowns }

// Unknowns returns the number of undetermined cells.
func (s *State) Unknowns() int { return s.unknowns }

// FlagsRemaining returns the count of mines not yet flagged, the global
// mine budget still to be placed among remaining Unknown cells.
func (s *State) FlagsRemaining() int { return s.cfg.Mines() - s.flags }

// CountKind returns the number of cells with the given Kind.
func (s *State) CountKind(k Kind) int {
	switch k {
	case Unknown:
		return s.unknowns
	case Marked:
		return s.marks
	case Flagged:
		return s.flags
	case Known:
		return s.knowns
	}
	return 0
}

// CountSquareKind returns the number of idx's neighbors with the given Kind.
func (s *State) CountSquareKind(idx board.Index, k Kind) int {
	n := 0
	for _, cidx := range s.cfg.Square(idx) {
		if s.cells[cidx].Kind == k {
			n++
		}
	}
	return n
}

// SquareUnknowns returns the Unknown neighbors of idx.
func (s *State) SquareUnknowns(idx board.Index) []board.Index {
	var out []board.Index
	for _, cidx := range s.cfg.Square(idx) {
		if s.cells[cidx].Kind == Unknown {
			out = append(out, cidx)
		}
	}
	return out
}

func (s *State) transitionOut(k Kind) {
	switch k {
	case Unknown:
		s.unknowns--
	case Marked:
		s.marks--
	case Flagged:
		s.flags--
	case Known:
		s.knowns--
	}
}

func (s *State) transitionIn(k Kind) {
	switch k {
	case Unknown:
		s.unknowns++
	case Marked:
		s.marks++
	case Flagged:
		s.flags++
	case Known:
		s.knowns++
	}
}

// SetMark transitions idx from Unknown to Marked (proved safe). A cell
// already Marked is left as is and reports true; any other status is a
// conflict and reports false.
func (s *State) SetMark(idx board.Index) bool {
	if s.cells[idx].Kind != Unknown {
		return s.cells[idx].Kind == Marked
	}
	s.transitionOut(Unknown)
	s.cells[idx] = StatusMarked
	s.transitionIn(Marked)
	return true
}

// SetFlag transitions idx from Unknown to Flagged (proved mine). A cell
// already Flagged is left as is and reports true; any other status is a
// conflict and reports false.
func (s *State) SetFlag(idx board.Index) bool {
	if s.cells[idx].Kind != Unknown {
		return s.cells[idx].Kind == Flagged
	}
	s.transitionOut(Unknown)
	s.cells[idx] = StatusFlagged
	s.transitionIn(Flagged)
	return true
}

// SetKnown transitions idx from Unknown or Marked to Known(count). A cell
// already Known is left untouched (idempotent) and reports success only if
// the existing count matches, since set_known is called opportunistically
// during flood reveal. Returns false if idx is Flagged, or Known with a
// different count (a genuine conflict).
func (s *State) SetKnown(idx board.Index, count int) bool {
	cur := s.cells[idx]
	switch cur.Kind {
	case Flagged:
		return false
	case Known:
		return cur.Count == count
	default:
		s.transitionOut(cur.Kind)
		s.cells[idx] = StatusKnown(count)
		s.transitionIn(Known)
		return true
	}
}

// Board returns the raw status slice, for display and for iterating during
// frontier construction and propagation.
func (s *State) Board() []Status { return s.cells }
