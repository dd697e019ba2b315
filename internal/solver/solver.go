// Package solver drives one decision at a time: propagate constraints,
// decompose the frontier, run the branching probabilistic evaluator, and
// rank candidate reveals by bomb probability.
package solver

import (
	"fmt"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/eval"
	"github.com/xumarcus/minesweeper/internal/frontier"
	"github.com/xumarcus/minesweeper/internal/mserr"
	"github.com/xumarcus/minesweeper/internal/pf"
	"github.com/xumarcus/minesweeper/internal/propagate"
)

// Decision is the outcome of one SolveNext call: the recommended cell and
// its estimated bomb probability (0 means certainly safe).
type Decision struct {
	Idx         board.Index
	Probability float64
}

// largeComponentUnknownCap bounds branching cost: a frontier component with
// more unknown cells than this is never branched over exactly (2^n
// candidate assignments before pruning); SolveNext falls back to
// eval.EstimateComponent for the whole frontier instead.
const largeComponentUnknownCap = 32

// Driver owns the board geometry shared across every decision in a game.
// It holds no mutable state of its own; every method takes the state it
// operates on explicitly.
type Driver struct {
	cfg *board.Config
}

// New returns a Driver for the given board geometry.
func New(cfg *board.Config) *Driver {
	return &Driver{cfg: cfg}
}

// SolveNext computes the single best next reveal for state, per the
// pipeline: corner/center check, fast check, global propagation, fast
// check, frontier decomposition, branching evaluation, fast check, rank,
// tie-break. Returns mserr.ErrAlreadySolved if no Unknown cell remains.
func (d *Driver) SolveNext(state *cellstate.State) (Decision, error) {
	center := d.cfg.Center()
	if state.Get(center).Kind != cellstate.Known {
		return Decision{Idx: center, Probability: 0}, nil
	}
	if idx, ok := d.firstOfKind(state, cellstate.Marked); ok {
		return Decision{Idx: idx, Probability: 0}, nil
	}
	if err := propagate.MakeConsistentAll(state); err != nil {
		return Decision{}, fmt.Errorf("solver: propagation: %w", err)
	}
	if idx, ok := d.firstOfKind(state, cellstate.Marked); ok {
		return Decision{Idx: idx, Probability: 0}, nil
	}

	flagsRemaining := state.FlagsRemaining()
	group, remainder := frontier.New(d.cfg, state)

	if group == nil {
		return d.decideFromRemainder(state, remainder, flagsRemaining)
	}

	components := group.Split()
	for _, component := range components {
		if len(component.Unknowns()) > largeComponentUnknownCap {
			return d.estimateDecision(state, components, remainder, flagsRemaining), nil
		}
	}

	frontierEval, ok := splittingEvaluation(state, group, flagsRemaining)
	if !ok {
		return Decision{}, fmt.Errorf("solver: %w", mserr.ErrInconsistentState)
	}
	frontierEval.Label(state)

	if idx, ok := d.firstOfKind(state, cellstate.Marked); ok {
		return Decision{Idx: idx, Probability: 0}, nil
	}

	nOutside := len(remainder)
	probs := frontierEval.ToProbabilities(flagsRemaining, nOutside)
	probMap := make(map[board.Index]float64, len(probs.Cell)+nOutside)
	for idx, p := range probs.Cell {
		probMap[idx] = p
	}
	base := 0.0
	if probs.HasBase {
		base = probs.Base
	}
	for _, idx := range remainder {
		probMap[idx] = base
	}
	if len(probMap) == 0 {
		return Decision{}, mserr.ErrAlreadySolved
	}
	return d.tieBreak(state, probMap), nil
}

// decideFromRemainder handles the case where the frontier is empty: every
// Unknown cell is picked uniformly, weighted only by the global mine
// budget.
func (d *Driver) decideFromRemainder(state *cellstate.State, remainder []board.Index, flagsRemaining int) (Decision, error) {
	if len(remainder) == 0 {
		return Decision{}, mserr.ErrAlreadySolved
	}
	p := float64(flagsRemaining) / float64(len(remainder))
	probMap := make(map[board.Index]float64, len(remainder))
	for _, idx := range remainder {
		probMap[idx] = p
	}
	return d.tieBreak(state, probMap), nil
}

// estimateDecision is the fallback path for a frontier with an oversized
// component: it skips the exact branching evaluator entirely for this
// decision and ranks every frontier and remainder cell with
// eval.EstimateComponent's cheaper per-clue independence approximation,
// falling back further to the board-wide base rate for any cell no
// surviving clue constrains.
func (d *Driver) estimateDecision(state *cellstate.State, components []*frontier.Group, remainder []board.Index, flagsRemaining int) Decision {
	probMap := make(map[board.Index]float64)
	for _, component := range components {
		for _, ip := range eval.EstimateComponent(state, d.cfg, component.Unknowns()) {
			probMap[ip.Idx] = ip.P
		}
	}
	base := 0.0
	if unknownsRemaining := state.Unknowns(); unknownsRemaining > 0 {
		base = float64(flagsRemaining) / float64(unknownsRemaining)
	}
	for _, component := range components {
		for _, idx := range component.Unknowns() {
			if _, ok := probMap[idx]; !ok {
				probMap[idx] = base
			}
		}
	}
	for _, idx := range remainder {
		probMap[idx] = base
	}
	return d.tieBreak(state, probMap)
}

// tieBreak picks the candidate minimising p_i*(1 - prod_{j in square(i)}
// (1-p_j)): lowest bomb probability weighted by the expected unopened-safe
// volume a reveal there would flood open. Ties go to the lowest index;
// Unknown neighbors missing from probMap count as non-mines.
func (d *Driver) tieBreak(state *cellstate.State, probMap map[board.Index]float64) Decision {
	pAt := func(idx board.Index) float64 {
		switch state.Get(idx).Kind {
		case cellstate.Flagged:
			return 1
		case cellstate.Known, cellstate.Marked:
			return 0
		default:
			if p, ok := probMap[idx]; ok {
				return p
			}
			return 0
		}
	}

	best := -1
	var bestScore float64
	for idx := 0; idx < d.cfg.Size(); idx++ {
		p, ok := probMap[idx]
		if !ok {
			continue
		}
		volume := 1.0
		for _, cidx := range d.cfg.Square(idx) {
			volume *= 1 - pAt(cidx)
		}
		score := p * (1 - volume)
		if best < 0 || score < bestScore {
			best = idx
			bestScore = score
		}
	}
	return Decision{Idx: best, Probability: probMap[best]}
}

func (d *Driver) firstOfKind(state *cellstate.State, kind cellstate.Kind) (board.Index, bool) {
	for idx := 0; idx < state.Size(); idx++ {
		if state.Get(idx).Kind == kind {
			return idx, true
		}
	}
	return 0, false
}

// branchingEvaluation picks a pivot unknown cell in group and recurses on
// both candidate assignments (flagged, marked safe), combining feasible
// branches with Evaluation addition. Returns ok=false if both branches are
// infeasible (pruned).
func branchingEvaluation(state *cellstate.State, group *frontier.Group, flagsRemaining int) (*eval.Evaluation, bool) {
	idx, ok := group.Pivot()
	if !ok {
		return eval.New(state, group.Unknowns()), true
	}

	sFlag := state.Clone()
	sFlag.SetFlag(idx)
	var evFlag *eval.Evaluation
	okFlag := propagate.MakeConsistentSquare(sFlag, idx) == nil
	if okFlag {
		evFlag, okFlag = splittingEvaluation(sFlag, group, flagsRemaining)
	}

	sMark := state.Clone()
	sMark.SetMark(idx)
	var evMark *eval.Evaluation
	okMark := propagate.MakeConsistentSquare(sMark, idx) == nil
	if okMark {
		evMark, okMark = splittingEvaluation(sMark, group, flagsRemaining)
	}

	switch {
	case okFlag && okMark:
		return eval.Add(evFlag, evMark), true
	case okFlag:
		return evFlag, true
	case okMark:
		return evMark, true
	default:
		return nil, false
	}
}

// splittingEvaluation trims group against state, partitions it into
// connected components, and combines each component's branching evaluation
// via Evaluation multiplication (independent components). Cells the trim
// newly demoted to remainder seed the accumulator; cells the trim found
// already resolved (by propagation elsewhere in this branch) are folded in
// as certain singleton factors, so their forced status survives into the
// final per-cell marginals instead of silently vanishing.
func splittingEvaluation(state *cellstate.State, group *frontier.Group, flagsRemaining int) (*eval.Evaluation, bool) {
	trimmed, newRemainder, resolved := group.Trim(state)
	acc := eval.New(state, newRemainder)
	for _, r := range resolved {
		acc = eval.Mul(acc, singletonEval(r.Idx, r.Flagged))
	}
	if trimmed == nil {
		return acc, true
	}
	for _, component := range trimmed.Split() {
		componentEval, ok := branchingEvaluation(state, component, flagsRemaining)
		if !ok {
			return nil, false
		}
		acc = eval.Mul(acc, componentEval).TruncateDegree(flagsRemaining)
	}
	return acc, true
}

// singletonEval is the trivial one-cell Evaluation for a cell whose status
// just became certain: one configuration, contributing exactly one mine if
// flagged, zero if marked safe.
func singletonEval(idx board.Index, flagged bool) *eval.Evaluation {
	if flagged {
		return &eval.Evaluation{Count: 1, SPF: pf.OneHot(1), IPF: []eval.IndexedPF{{Idx: idx, PF: pf.OneHot(1)}}}
	}
	return &eval.Evaluation{Count: 1, SPF: pf.OneHot(0), IPF: []eval.IndexedPF{{Idx: idx, PF: pf.Zero()}}}
}

// CrudeSearch is the fast, non-enumerating fallback heuristic: for each
// Unknown cell it estimates local bomb risk from the tightest adjacent
// clue (count of remaining mines over remaining unknowns in that clue's
// neighborhood), defaulting to the board-wide base rate where no clue
// constrains it. It never enumerates configurations, trading solver
// accuracy for O(size) cost; exposed via the CLI's --fast flag.
func (d *Driver) CrudeSearch(state *cellstate.State) (Decision, bool) {
	unknownsRemaining := state.Unknowns()
	if unknownsRemaining == 0 {
		return Decision{}, false
	}
	base := float64(state.FlagsRemaining()) / float64(unknownsRemaining)

	risk := make(map[board.Index]float64)
	for idx := 0; idx < d.cfg.Size(); idx++ {
		status := state.Get(idx)
		if status.Kind != cellstate.Known {
			continue
		}
		squareUnknowns := state.CountSquareKind(idx, cellstate.Unknown)
		if squareUnknowns == 0 {
			continue
		}
		flagged := state.CountSquareKind(idx, cellstate.Flagged)
		compl := float64(status.Count-flagged) / float64(squareUnknowns)
		for _, cidx := range d.cfg.Square(idx) {
			if state.Get(cidx).Kind != cellstate.Unknown {
				continue
			}
			if r, ok := risk[cidx]; !ok || compl > r {
				risk[cidx] = compl
			}
		}
	}

	best := -1
	bestRisk := 0.0
	for idx := 0; idx < d.cfg.Size(); idx++ {
		if state.Get(idx).Kind != cellstate.Unknown {
			continue
		}
		r, ok := risk[idx]
		if !ok {
			r = base
		}
		if best < 0 || r < bestRisk {
			best = idx
			bestRisk = r
		}
	}
	return Decision{Idx: best, Probability: bestRisk}, true
}
