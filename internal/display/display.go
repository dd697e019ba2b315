// Package display renders solver state two ways: a plain glyph text dump
// (for --no-tui, piping, and logging) and a live bubbletea/lipgloss TUI that
// auto-plays the solver one decision per tick. Both share the same glyph
// table the original Rust implementation's Display impls used.
package display

import (
	"fmt"
	"strings"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
)

// Text renders state as a scrolling glyph dump: 🏁 flagged, "N." a Known
// clue, ✅ marked safe, ❔ still unknown. When bombs is non-nil (debug/
// game-over display), every mine cell is shown instead as 🚩 (correctly
// flagged) or 💣 (still hidden), exactly as original show.rs/showstate.rs do.
func Text(cfg *board.Config, state *cellstate.State, bombs []bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d; flags remaining %d\n", cfg.Rows(), cfg.Cols(), state.FlagsRemaining())
	for idx, status := range state.Board() {
		if idx > 0 && idx%cfg.Cols() == 0 {
			b.WriteByte('\n')
		}
		if idx < len(bombs) && bombs[idx] {
			if status.Kind == cellstate.Flagged {
				b.WriteString("🚩")
			} else {
				b.WriteString("💣")
			}
			continue
		}
		switch status.Kind {
		case cellstate.Flagged:
			b.WriteString("🏁")
		case cellstate.Known:
			fmt.Fprintf(&b, "%d.", status.Count)
		case cellstate.Marked:
			b.WriteString("✅")
		default:
			b.WriteString("❔")
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// Glyph returns the single rendered glyph for one cell's status, used by the
// TUI's per-cell rendering (Text inlines the same rule for the whole board).
func Glyph(status cellstate.Status, isBomb bool) string {
	if isBomb {
		if status.Kind == cellstate.Flagged {
			return "🚩"
		}
		return "💣"
	}
	switch status.Kind {
	case cellstate.Flagged:
		return "🏁"
	case cellstate.Known:
		return fmt.Sprintf("%d.", status.Count)
	case cellstate.Marked:
		return "✅"
	default:
		return "❔"
	}
}
