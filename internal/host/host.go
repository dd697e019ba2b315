// Package host implements the board side of the solver loop: ground-truth
// mine placement and the reveal/flag operations the solver drives. The
// interface is pull/flag/reveal/set-internal, with push as its default
// diff-then-apply composition, so the solver can read state back out as a
// cellstate.State between decisions.
package host

import (
	"fmt"
	"math/rand/v2"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/mserr"
)

// Host is the board side of the solve loop. Pull reads the visible state;
// Flag and Reveal apply one move each; SetInternal overwrites the visible
// state wholesale (used to recover from a solver decision made out of
// band); Push reconciles a solver's full candidate state against the host
// by flagging whatever the solver newly flagged, then adopting the rest.
type Host interface {
	Config() *board.Config
	Pull() *cellstate.State
	Flag(idx board.Index) error
	Reveal(idx board.Index) error
	SetInternal(state *cellstate.State)
	Push(state *cellstate.State) error
}

// GroundTruthHost is a Host backed by an actual mine layout, generated
// deterministically from the Config's seed. It never lies: Flag rejects a
// non-mine cell and Reveal reports mserr.ErrRevealedBomb instead of
// silently granting the flood reveal, so a solver bug surfaces immediately
// instead of producing a board that looks fine but is wrong underneath.
type GroundTruthHost struct {
	cfg   *board.Config
	state *cellstate.State
	bombs []bool
}

// NewGroundTruthHost builds a host with mines placed immediately (not
// deferred to first reveal, since the Config's Center is always excluded
// already): exactly cfg.Mines() cells are mines, never the center.
func NewGroundTruthHost(cfg *board.Config) *GroundTruthHost {
	bombs := make([]bool, cfg.Size())
	rng := rand.New(rand.NewPCG(cfg.Seed(), cfg.Seed()^0x9e3779b97f4a7c15))
	center := cfg.Center()
	placed := 0
	for placed < cfg.Mines() {
		idx := rng.IntN(cfg.Size())
		if idx == center || bombs[idx] {
			continue
		}
		bombs[idx] = true
		placed++
	}
	return &GroundTruthHost{cfg: cfg, state: cellstate.New(cfg), bombs: bombs}
}

// Config returns the board geometry.
func (h *GroundTruthHost) Config() *board.Config { return h.cfg }

// Pull returns a copy of the visible state; callers are free to mutate it.
func (h *GroundTruthHost) Pull() *cellstate.State { return h.state.Clone() }

// Flag marks idx as a proved mine. Returns mserr.ErrFlaggedNotBomb if idx is
// not actually a mine, a solver bug surfacing as an error rather than a
// silently wrong board.
func (h *GroundTruthHost) Flag(idx board.Index) error {
	if h.state.Get(idx).Kind == cellstate.Flagged {
		return nil
	}
	if !h.bombs[idx] {
		return fmt.Errorf("%w: cell %d", mserr.ErrFlaggedNotBomb, idx)
	}
	h.state.SetFlag(idx)
	return nil
}

// Reveal uncovers idx. Returns mserr.ErrRevealedBomb if idx is a mine,
// otherwise sets its clue count and, for a zero count, floods the reveal
// into every neighbor exactly as the original set_known recursion does.
func (h *GroundTruthHost) Reveal(idx board.Index) error {
	if h.bombs[idx] {
		return mserr.ErrRevealedBomb
	}
	return h.setKnown(idx)
}

func (h *GroundTruthHost) setKnown(idx board.Index) error {
	switch h.state.Get(idx).Kind {
	case cellstate.Flagged:
		return fmt.Errorf("%w: cell %d", mserr.ErrFlaggedNotBomb, idx)
	case cellstate.Known:
		return nil
	}
	count := 0
	for _, cidx := range h.cfg.Square(idx) {
		if h.bombs[cidx] {
			count++
		}
	}
	h.state.SetKnown(idx, count)
	if count == 0 {
		for _, cidx := range h.cfg.Square(idx) {
			if h.bombs[cidx] {
				continue
			}
			if err := h.setKnown(cidx); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetInternal overwrites the visible state wholesale with a clone of state.
func (h *GroundTruthHost) SetInternal(state *cellstate.State) {
	h.state = state.Clone()
}

// Push reconciles state against the host: every cell state newly marks as
// Flagged (and the host hasn't flagged yet) is flagged one at a time
// through Flag, so ground truth is checked; the rest of state is then
// adopted wholesale via SetInternal. Mirrors the original trait's default
// push method.
func (h *GroundTruthHost) Push(state *cellstate.State) error {
	for idx := 0; idx < h.cfg.Size(); idx++ {
		if h.state.Get(idx).Kind != cellstate.Flagged && state.Get(idx).Kind == cellstate.Flagged {
			if err := h.Flag(idx); err != nil {
				return err
			}
		}
	}
	h.SetInternal(state)
	return nil
}

// Bombs returns a copy of the ground-truth mine layout, for debugging and
// display (never used to drive solver decisions).
func (h *GroundTruthHost) Bombs() []bool {
	out := make([]bool, len(h.bombs))
	copy(out, h.bombs)
	return out
}
