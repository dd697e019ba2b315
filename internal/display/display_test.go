package display

import (
	"strings"
	"testing"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
)

func TestGlyphTable(t *testing.T) {
	tests := []struct {
		name   string
		status cellstate.Status
		isBomb bool
		want   string
	}{
		{"unknown", cellstate.StatusUnknown, false, "❔"},
		{"marked", cellstate.StatusMarked, false, "✅"},
		{"flagged", cellstate.StatusFlagged, false, "🏁"},
		{"known", cellstate.StatusKnown(3), false, "3."},
		{"bomb flagged", cellstate.StatusFlagged, true, "🚩"},
		{"bomb hidden", cellstate.StatusUnknown, true, "💣"},
	}
	for _, tt := range tests {
		if got := Glyph(tt.status, tt.isBomb); got != tt.want {
			t.Errorf("%s: Glyph() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTextRendersBoardGridAndHeader(t *testing.T) {
	cfg, err := board.New(2, 2, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetKnown(0, 1)
	s.SetMark(1)
	got := Text(cfg, s, nil)
	if !strings.Contains(got, "2x2") {
		t.Errorf("Text() = %q, want dimensions header", got)
	}
	if !strings.Contains(got, "1.") {
		t.Errorf("Text() = %q, want Known clue rendered as \"1.\"", got)
	}
	if !strings.Contains(got, "✅") {
		t.Errorf("Text() = %q, want marked glyph", got)
	}
	if !strings.Contains(got, "❔") {
		t.Errorf("Text() = %q, want unknown glyph", got)
	}
}

func TestTextRevealsBombsWhenProvided(t *testing.T) {
	cfg, err := board.New(1, 2, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetFlag(0)
	bombs := []bool{true, true}
	got := Text(cfg, s, bombs)
	if !strings.Contains(got, "🚩") {
		t.Errorf("Text() = %q, want correctly-flagged bomb glyph", got)
	}
	if !strings.Contains(got, "💣") {
		t.Errorf("Text() = %q, want hidden bomb glyph", got)
	}
}
