package frontier

import (
	"testing"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
)

// a 3x3 board, center revealed with count 1, everything else Unknown:
// one knowns cell (center), eight unknowns cells forming a single component.
func newSingleComponentBoard(t *testing.T) (*board.Config, *cellstate.State) {
	t.Helper()
	cfg, err := board.New(3, 3, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetKnown(cfg.Center(), 1)
	return cfg, s
}

func TestNewBuildsFrontierAroundClue(t *testing.T) {
	cfg, s := newSingleComponentBoard(t)
	g, remainder := New(cfg, s)
	if g == nil {
		t.Fatal("New() group = nil, want non-nil")
	}
	if len(remainder) != 0 {
		t.Fatalf("remainder = %v, want empty (every unknown borders the clue)", remainder)
	}
	knowns := g.Knowns()
	if len(knowns) != 1 || knowns[0] != cfg.Center() {
		t.Fatalf("Knowns() = %v, want [%d]", knowns, cfg.Center())
	}
	if got := len(g.Unknowns()); got != 8 {
		t.Fatalf("len(Unknowns()) = %d, want 8", got)
	}
}

func TestNewAllRemainderWhenNoClues(t *testing.T) {
	cfg, err := board.New(3, 3, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	g, remainder := New(cfg, s)
	if g != nil {
		t.Fatalf("New() group = %+v, want nil", g)
	}
	if len(remainder) != cfg.Size() {
		t.Fatalf("len(remainder) = %d, want %d", len(remainder), cfg.Size())
	}
}

func TestSplitSingleComponent(t *testing.T) {
	cfg, s := newSingleComponentBoard(t)
	g, _ := New(cfg, s)
	components := g.Split()
	if len(components) != 1 {
		t.Fatalf("Split() produced %d components, want 1", len(components))
	}
	if got := len(components[0].Unknowns()); got != 8 {
		t.Errorf("component Unknowns() = %d, want 8", got)
	}
}

func TestSplitTwoDisjointComponents(t *testing.T) {
	// 1x5 board: K U _ U K, where the middle cell is a revealed Known(0)
	// gap. Each clue only ever touches its own single unknown neighbor
	// (the gap cell itself never joins the knowns bitset), so the two
	// clue/unknown pairs never share a bipartite edge.
	cfg, err := board.New(1, 5, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetKnown(0, 1)
	s.SetKnown(2, 0)
	s.SetKnown(4, 1)
	g, _ := New(cfg, s)
	if g == nil {
		t.Fatal("New() group = nil, want non-nil")
	}
	components := g.Split()
	if len(components) != 2 {
		t.Fatalf("Split() produced %d components, want 2", len(components))
	}
	for _, c := range components {
		if got := len(c.Unknowns()); got != 1 {
			t.Errorf("component Unknowns() = %d, want 1", got)
		}
	}
}

func TestPivotPrefersMostConstrainedCell(t *testing.T) {
	// 1x5: K1 U K1 U K1, where U at idx 1 touches two knowns and
	// idx 3 touches two knowns too (0-indexed: 0=K1,1=U,2=K1,3=U,4=K1).
	cfg, err := board.New(1, 5, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetKnown(0, 1)
	s.SetKnown(2, 1)
	s.SetKnown(4, 1)
	g, _ := New(cfg, s)
	idx, ok := g.Pivot()
	if !ok {
		t.Fatal("Pivot() ok = false, want true")
	}
	// Both unknowns (1 and 3) border exactly 2 knowns; lowest index wins.
	if idx != 1 {
		t.Errorf("Pivot() = %d, want 1 (tie broken by index)", idx)
	}
}

func TestTrimDropsResolvedCells(t *testing.T) {
	cfg, s := newSingleComponentBoard(t)
	g, _ := New(cfg, s)
	// Resolve one unknown neighbor to Flagged: it should leave the group.
	nbr := g.Unknowns()[0]
	s.SetFlag(nbr)
	trimmed, newRemainder, resolved := g.Trim(s)
	if trimmed == nil {
		t.Fatal("Trim() group = nil, want non-nil")
	}
	for _, idx := range trimmed.Unknowns() {
		if idx == nbr {
			t.Errorf("Trim() kept resolved cell %d in unknowns", nbr)
		}
	}
	if len(newRemainder) != 0 {
		t.Errorf("newRemainder = %v, want empty (flagged cell isn't remainder)", newRemainder)
	}
	if len(resolved) != 1 || resolved[0].Idx != nbr || !resolved[0].Flagged {
		t.Errorf("resolved = %+v, want [{%d true}]", resolved, nbr)
	}
}
