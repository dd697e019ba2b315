// Package eval implements the probabilistic evaluator: the Evaluation
// algebra that combines per-component mine-count distributions (+ for
// alternative branch assignments, × for independent components) into
// per-cell marginal bomb probabilities.
package eval

import (
	"sort"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/pf"
)

// IndexedPF pairs a cell index with its joint distribution: pf[k] weights
// configurations where this cell is flagged and the enclosing component has
// k total mines.
type IndexedPF struct {
	Idx board.Index
	PF  pf.PF
}

// Evaluation is the per-component bundle: configuration count, mine-count
// PGF (spf), and per-cell joint PGF (ipf). The zero Evaluation is not
// meaningful; use New.
type Evaluation struct {
	Count float64
	SPF   pf.PF
	IPF   []IndexedPF
}

// New constructs the trivial Evaluation over remainder cells: cells not
// constrained by any clue. Only already-resolved remainder cells (Flagged
// or Marked) get an ipf entry; a genuinely Unknown remainder cell carries no
// enumerable distribution of its own and is instead priced later by the
// weighted reweighting step (ToProbabilities' base probability).
func New(state *cellstate.State, remainder []board.Index) *Evaluation {
	f := 0
	for _, idx := range remainder {
		if state.Get(idx).Kind == cellstate.Flagged {
			f++
		}
	}
	ev := &Evaluation{Count: 1, SPF: pf.OneHot(f)}
	for _, idx := range remainder {
		switch state.Get(idx).Kind {
		case cellstate.Flagged:
			ev.IPF = append(ev.IPF, IndexedPF{Idx: idx, PF: pf.OneHot(f)})
		case cellstate.Marked:
			ev.IPF = append(ev.IPF, IndexedPF{Idx: idx, PF: pf.Zero()})
		}
	}
	return ev
}

func scale(p pf.PF, c float64) pf.PF {
	out := make(pf.PF, len(p))
	for i, x := range p {
		out[i] = x * c
	}
	return out
}

// Add merges two alternative assignments of the same component (a branch
// point): a weighted mixture by each side's share of the total configuration
// count. a and b must cover identical cell lists in identical order.
func Add(a, b *Evaluation) *Evaluation {
	count := a.Count + b.Count
	if count == 0 {
		return &Evaluation{Count: 0, SPF: pf.Zero()}
	}
	p := a.Count / count
	q := b.Count / count
	out := &Evaluation{
		Count: count,
		SPF:   pf.Add(scale(a.SPF, p), scale(b.SPF, q)),
	}
	out.IPF = make([]IndexedPF, len(a.IPF))
	for i := range a.IPF {
		out.IPF[i] = IndexedPF{
			Idx: a.IPF[i].Idx,
			PF:  pf.Add(scale(a.IPF[i].PF, p), scale(b.IPF[i].PF, q)),
		}
	}
	return out
}

// Mul combines two independent components: mine counts add (convolution),
// configuration counts multiply, and each side's per-cell joint pf picks up
// the other side's mine-count distribution via convolution. This keeps the
// flag-count consistency invariant: summing ipf over a component's cells at
// mine-count k reproduces k*spf[k].
func Mul(a, b *Evaluation) *Evaluation {
	out := &Evaluation{
		Count: a.Count * b.Count,
		SPF:   pf.Convolve(a.SPF, b.SPF),
	}
	out.IPF = make([]IndexedPF, 0, len(a.IPF)+len(b.IPF))
	for _, e := range a.IPF {
		out.IPF = append(out.IPF, IndexedPF{Idx: e.Idx, PF: pf.Convolve(e.PF, b.SPF)})
	}
	for _, e := range b.IPF {
		out.IPF = append(out.IPF, IndexedPF{Idx: e.Idx, PF: pf.Convolve(e.PF, a.SPF)})
	}
	sort.Slice(out.IPF, func(i, j int) bool { return out.IPF[i].Idx < out.IPF[j].Idx })
	return out
}

// TruncateDegree caps spf and every ipf entry at the global mine budget,
// pruning configurations that cannot exist (spec's "optional cap" on the
// splitting evaluator's running product).
func (ev *Evaluation) TruncateDegree(max int) *Evaluation {
	out := &Evaluation{Count: ev.Count, SPF: ev.SPF.TruncateDegree(max)}
	out.IPF = make([]IndexedPF, len(ev.IPF))
	for i, e := range ev.IPF {
		out.IPF[i] = IndexedPF{Idx: e.Idx, PF: e.PF.TruncateDegree(max)}
	}
	return out
}

// Label writes back forced cells: a cell certainly mined in every
// configuration is flagged, a cell never mined is marked safe. Returns false
// if a label conflicts with an existing, incompatible status.
func (ev *Evaluation) Label(state *cellstate.State) bool {
	ok := true
	for _, e := range ev.IPF {
		switch {
		case e.PF.IsCertainlyMine():
			if !state.SetFlag(e.Idx) {
				ok = false
			}
		case e.PF.IsNeverMine():
			if !state.SetMark(e.Idx) {
				ok = false
			}
		}
	}
	return ok
}

// Probabilities is the per-decision result of ToProbabilities: a per-cell
// bomb-probability marginal for every frontier cell this Evaluation tracked,
// plus an optional base probability shared uniformly by unconstrained
// remainder cells.
type Probabilities struct {
	Cell    map[board.Index]float64
	Base    float64
	HasBase bool
}

// ToProbabilities reweights spf by the global mine budget (flagsRemaining
// mines left to place among nOutside cells outside this component) and
// derives a marginal probability per tracked cell, plus the shared base
// probability for any cell outside every component's reach.
func (ev *Evaluation) ToProbabilities(flagsRemaining, nOutside int) Probabilities {
	weighted := ev.SPF.Weighted(flagsRemaining, nOutside)
	out := Probabilities{Cell: make(map[board.Index]float64, len(ev.IPF))}
	for _, e := range ev.IPF {
		out.Cell[e.Idx] = pf.Mul(weighted, e.PF).Sum()
	}
	if nOutside > 0 {
		out.Base = (float64(flagsRemaining) - weighted.EV()) / float64(nOutside)
		out.HasBase = true
	}
	return out
}

// IndexedProb pairs a cell with an estimated bomb probability, the output of
// EstimateComponent's cheaper, non-enumerating fallback.
type IndexedProb struct {
	Idx board.Index
	P   float64
}

// EstimateComponent approximates per-cell bomb probability for a component
// too large to branch over exactly: for each unknown cell, it multiplies
// (1 - local mine rate) across every Known neighbor touching it, treating
// each clue's contribution as independent, then reports the complement.
// Cells with no Known neighbor left in unknowns are omitted (the caller
// falls back to the board-wide base rate for those). This trades exactness
// for O(size) cost, used when a frontier component exceeds the branching
// evaluator's practical size.
func EstimateComponent(state *cellstate.State, cfg *board.Config, unknowns []board.Index) []IndexedProb {
	out := make([]IndexedProb, 0, len(unknowns))
	for _, idx := range unknowns {
		safe := 1.0
		constrained := false
		for _, cidx := range cfg.Square(idx) {
			status := state.Get(cidx)
			if status.Kind != cellstate.Known {
				continue
			}
			squareUnknowns := state.CountSquareKind(cidx, cellstate.Unknown)
			if squareUnknowns == 0 {
				continue
			}
			flagged := state.CountSquareKind(cidx, cellstate.Flagged)
			localMineRate := float64(status.Count-flagged) / float64(squareUnknowns)
			safe *= 1 - localMineRate
			constrained = true
		}
		if !constrained {
			continue
		}
		out = append(out, IndexedProb{Idx: idx, P: 1 - safe})
	}
	return out
}
