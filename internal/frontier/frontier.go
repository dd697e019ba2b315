// Package frontier builds and decomposes the constraint frontier: the set
// of clue cells adjacent to undetermined cells, paired with those
// undetermined cells, split into independent connected components so the
// probabilistic evaluator can enumerate each component separately.
package frontier

import (
	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
)

// Group is a well-formed frontier component: clue cells (knowns) each with
// at least one Unknown neighbor, paired with the Unknown cells (unknowns)
// adjacent to them. Cells outside every Group are the remainder.
type Group struct {
	cfg      *board.Config
	knowns   bitset
	unknowns bitset
}

func emptyGroup(cfg *board.Config) *Group {
	return &Group{cfg: cfg, knowns: newBitset(cfg.Size()), unknowns: newBitset(cfg.Size())}
}

// valid reports whether the group is well-formed: both sides nonempty.
func (g *Group) valid() bool {
	return g.knowns.any() && g.unknowns.any()
}

// New scans the board and builds the full frontier group plus the
// remainder: Unknown cells with no Known neighbor. Returns a nil group if
// no clue borders an Unknown cell (every Unknown cell is remainder).
func New(cfg *board.Config, state *cellstate.State) (*Group, []board.Index) {
	g := emptyGroup(cfg)
	var remainder []board.Index
	for idx := 0; idx < cfg.Size(); idx++ {
		switch s := state.Get(idx); s.Kind {
		case cellstate.Known:
			if s.Count == 0 {
				continue
			}
			if state.CountSquareKind(idx, cellstate.Unknown) > 0 {
				g.knowns.set(idx)
			}
		case cellstate.Unknown:
			if state.CountSquareKind(idx, cellstate.Known) > 0 {
				g.unknowns.set(idx)
			} else {
				remainder = append(remainder, idx)
			}
		}
	}
	if !g.valid() {
		return nil, allUnknown(cfg, state)
	}
	return g, remainder
}

func allUnknown(cfg *board.Config, state *cellstate.State) []board.Index {
	var out []board.Index
	for idx := 0; idx < cfg.Size(); idx++ {
		if state.Get(idx).Kind == cellstate.Unknown {
			out = append(out, idx)
		}
	}
	return out
}

// Resolved records a former frontier-unknown cell that propagation has
// since settled, outside of Trim's own bookkeeping: Flagged means proved a
// mine, !Flagged means proved safe (Marked).
type Resolved struct {
	Idx     board.Index
	Flagged bool
}

// Trim re-derives membership against the current state: cells resolved
// since the group was built (no longer Unknown, or a clue with no Unknown
// neighbor left) are dropped. Cells dropped from unknowns that are still
// Unknown are returned as newly-discovered remainder cells; cells dropped
// because they are now Flagged or Marked are returned as resolved, so the
// caller can fold their now-certain contribution into its running
// Evaluation instead of silently losing track of them.
func (g *Group) Trim(state *cellstate.State) (*Group, []board.Index, []Resolved) {
	out := emptyGroup(g.cfg)
	var newRemainder []board.Index
	var resolved []Resolved
	for _, idx := range g.knowns.indices() {
		if state.Get(idx).Kind == cellstate.Known && state.CountSquareKind(idx, cellstate.Unknown) > 0 {
			out.knowns.set(idx)
		}
	}
	for _, idx := range g.unknowns.indices() {
		switch state.Get(idx).Kind {
		case cellstate.Unknown:
			if state.CountSquareKind(idx, cellstate.Known) > 0 {
				out.unknowns.set(idx)
			} else {
				newRemainder = append(newRemainder, idx)
			}
		case cellstate.Flagged:
			resolved = append(resolved, Resolved{Idx: idx, Flagged: true})
		case cellstate.Marked:
			resolved = append(resolved, Resolved{Idx: idx, Flagged: false})
		}
	}
	if !out.valid() {
		return nil, newRemainder, resolved
	}
	return out, newRemainder, resolved
}

// Knowns returns the clue cells in ascending index order.
func (g *Group) Knowns() []board.Index { return g.knowns.indices() }

// Unknowns returns the undetermined cells in ascending index order.
func (g *Group) Unknowns() []board.Index { return g.unknowns.indices() }

// Split decomposes g into its connected components, in deterministic order:
// each component's flood-fill starts at the lowest-indexed remaining
// unknowns bit, alternating between knowns and unknowns adjacency.
func (g *Group) Split() []*Group {
	remaining := &Group{cfg: g.cfg, knowns: g.knowns.clone(), unknowns: g.unknowns.clone()}
	var components []*Group
	for {
		seed, ok := remaining.unknowns.lowest()
		if !ok {
			break
		}
		component := remaining.peel(seed)
		components = append(components, component)
	}
	return components
}

// peel removes, from remaining, the connected component containing seed
// (an unknowns bit), and returns it as its own Group.
func (g *Group) peel(seed board.Index) *Group {
	component := emptyGroup(g.cfg)
	stack := []board.Index{seed}
	g.unknowns.clear(seed)
	component.unknowns.set(seed)
	visited := newBitset(g.cfg.Size())
	visited.set(seed)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var fromUnknown bool
		if component.unknowns.test(cur) {
			fromUnknown = true
		}
		for _, cidx := range g.cfg.Square(cur) {
			if visited.test(cidx) {
				continue
			}
			if fromUnknown && g.knowns.test(cidx) {
				visited.set(cidx)
				g.knowns.clear(cidx)
				component.knowns.set(cidx)
				stack = append(stack, cidx)
			} else if !fromUnknown && g.unknowns.test(cidx) {
				visited.set(cidx)
				g.unknowns.clear(cidx)
				component.unknowns.set(cidx)
				stack = append(stack, cidx)
			}
		}
	}
	return component
}

// Pivot selects the branching cell: the unknowns cell with the most knowns
// neighbors within the group, ties broken by lowest index.
func (g *Group) Pivot() (board.Index, bool) {
	best := -1
	bestScore := -1
	for _, idx := range g.unknowns.indices() {
		score := 0
		for _, cidx := range g.cfg.Square(idx) {
			if g.knowns.test(cidx) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = idx
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
