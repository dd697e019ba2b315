package eval

import (
	"math"
	"testing"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/pf"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newBoard(t *testing.T) (*board.Config, *cellstate.State) {
	t.Helper()
	cfg, err := board.New(3, 3, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, cellstate.New(cfg)
}

func TestNewTrivialRemainder(t *testing.T) {
	_, s := newBoard(t)
	s.SetFlag(0)
	s.SetMark(1)
	ev := New(s, []board.Index{0, 1, 2})
	if ev.Count != 1 {
		t.Fatalf("Count = %v, want 1", ev.Count)
	}
	if got := ev.SPF.EV(); !almostEqual(got, 1) {
		t.Fatalf("SPF.EV() = %v, want 1 (one flagged cell)", got)
	}
	if len(ev.IPF) != 2 {
		t.Fatalf("len(IPF) = %d, want 2 (only resolved cells tracked)", len(ev.IPF))
	}
	for _, e := range ev.IPF {
		switch e.Idx {
		case 0:
			if !e.PF.IsCertainlyMine() {
				t.Errorf("flagged remainder cell 0 ipf = %v, want certainly-mine", e.PF)
			}
		case 1:
			if !e.PF.IsNeverMine() {
				t.Errorf("marked remainder cell 1 ipf = %v, want never-mine", e.PF)
			}
		default:
			t.Errorf("unexpected ipf entry for idx %d", e.Idx)
		}
	}
}

func TestAddIsWeightedMixture(t *testing.T) {
	a := &Evaluation{Count: 1, SPF: pf.OneHot(0), IPF: []IndexedPF{{Idx: 5, PF: pf.Zero()}}}
	b := &Evaluation{Count: 1, SPF: pf.OneHot(1), IPF: []IndexedPF{{Idx: 5, PF: pf.OneHot(1)}}}
	got := Add(a, b)
	if got.Count != 2 {
		t.Fatalf("Count = %v, want 2", got.Count)
	}
	// Equal mixture of "0 mines" and "1 mine": EV should be 0.5.
	if ev := got.SPF.EV() / got.SPF.Sum(); !almostEqual(ev, 0.5) {
		t.Errorf("merged spf mean mine count = %v, want 0.5", ev)
	}
	if len(got.IPF) != 1 || got.IPF[0].Idx != 5 {
		t.Fatalf("IPF = %+v, want single entry for idx 5", got.IPF)
	}
}

func TestMulConvolvesAndPreservesFlagCountInvariant(t *testing.T) {
	// Component A: single cell, always a mine (count=1 config, 1 mine).
	a := &Evaluation{Count: 1, SPF: pf.OneHot(1), IPF: []IndexedPF{{Idx: 0, PF: pf.OneHot(1)}}}
	// Component B: single cell, never a mine.
	b := &Evaluation{Count: 1, SPF: pf.OneHot(0), IPF: []IndexedPF{{Idx: 1, PF: pf.Zero()}}}
	got := Mul(a, b)
	if got.Count != 1 {
		t.Fatalf("Count = %v, want 1", got.Count)
	}
	if got.SPF.EV() != 1 {
		t.Fatalf("merged spf EV = %v, want 1", got.SPF.EV())
	}
	// Flag-count consistency: sum over cells at mine-count k == k*spf[k].
	for k := range got.SPF {
		var sum float64
		for _, e := range got.IPF {
			if k < len(e.PF) {
				sum += e.PF[k]
			}
		}
		want := float64(k) * got.SPF[k]
		if !almostEqual(sum, want) {
			t.Errorf("sum ipf at k=%d = %v, want %v (= k*spf[k])", k, sum, want)
		}
	}
}

func TestTruncateDegree(t *testing.T) {
	ev := &Evaluation{
		Count: 1,
		SPF:   pf.PF{1, 2, 3, 4},
		IPF:   []IndexedPF{{Idx: 0, PF: pf.PF{1, 2, 3, 4}}},
	}
	got := ev.TruncateDegree(1)
	if len(got.SPF) != 2 {
		t.Fatalf("SPF len = %d, want 2", len(got.SPF))
	}
	if len(got.IPF[0].PF) != 2 {
		t.Fatalf("IPF[0].PF len = %d, want 2", len(got.IPF[0].PF))
	}
}

func TestLabelFlagsAndMarks(t *testing.T) {
	_, s := newBoard(t)
	ev := &Evaluation{
		Count: 1,
		SPF:   pf.OneHot(1),
		IPF: []IndexedPF{
			{Idx: 0, PF: pf.OneHot(1)}, // certainly a mine
			{Idx: 1, PF: pf.Zero()},    // never a mine
			{Idx: 2, PF: pf.PF{0, .5}}, // undetermined, not certain either way
		},
	}
	if !ev.Label(s) {
		t.Fatal("Label() = false, want true (no conflicts)")
	}
	if s.Get(0).Kind != cellstate.Flagged {
		t.Errorf("cell 0 = %v, want Flagged", s.Get(0))
	}
	if s.Get(1).Kind != cellstate.Marked {
		t.Errorf("cell 1 = %v, want Marked", s.Get(1))
	}
	if s.Get(2).Kind != cellstate.Unknown {
		t.Errorf("cell 2 = %v, want Unknown (undetermined)", s.Get(2))
	}
}

func TestLabelReportsConflict(t *testing.T) {
	_, s := newBoard(t)
	s.SetMark(0) // already proved safe
	ev := &Evaluation{
		Count: 1,
		SPF:   pf.OneHot(1),
		IPF:   []IndexedPF{{Idx: 0, PF: pf.OneHot(1)}}, // now claims certainly a mine
	}
	if ev.Label(s) {
		t.Fatal("Label() = true, want false on conflicting status")
	}
}

func TestToProbabilities(t *testing.T) {
	// One component cell always a mine, two outside cells, one remaining flag.
	ev := &Evaluation{
		Count: 1,
		SPF:   pf.OneHot(1),
		IPF:   []IndexedPF{{Idx: 7, PF: pf.OneHot(1)}},
	}
	probs := ev.ToProbabilities(1, 2)
	if got := probs.Cell[7]; !almostEqual(got, 1.0) {
		t.Errorf("Cell[7] = %v, want 1.0 (certainly a mine)", got)
	}
	if !probs.HasBase {
		t.Fatal("HasBase = false, want true when nOutside > 0")
	}
	if probs.Base < 0 || probs.Base > 1 {
		t.Errorf("Base = %v, want in [0,1]", probs.Base)
	}
}

func TestToProbabilitiesNoOutsideCells(t *testing.T) {
	ev := &Evaluation{Count: 1, SPF: pf.OneHot(0)}
	probs := ev.ToProbabilities(0, 0)
	if probs.HasBase {
		t.Fatal("HasBase = true, want false when nOutside == 0")
	}
}

func TestEstimateComponentPrefersCellAwayFromTightClue(t *testing.T) {
	// 1x5: Known(1) at 0 with one Unknown neighbor (1); Known(0) gap at 2;
	// Known(0) at 3 with one Unknown neighbor (4). Cell 1 sees a clue whose
	// only unknown neighbor must be a mine (count==square size); cell 4 sees
	// a strictly looser clue. EstimateComponent should rate cell 1 riskier.
	cfg, err := board.New(1, 5, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	s.SetKnown(0, 1) // cell 0's only unknown neighbor is cell 1: forced mine
	s.SetKnown(2, 0)
	s.SetKnown(3, 0) // cell 3's only unknown neighbor is cell 4: forced safe
	got := EstimateComponent(s, cfg, []board.Index{1, 4})
	probs := make(map[board.Index]float64, len(got))
	for _, ip := range got {
		probs[ip.Idx] = ip.P
	}
	if !almostEqual(probs[1], 1.0) {
		t.Errorf("P[1] = %v, want 1.0 (forced mine)", probs[1])
	}
	if !almostEqual(probs[4], 0.0) {
		t.Errorf("P[4] = %v, want 0.0 (forced safe)", probs[4])
	}
}

func TestEstimateComponentOmitsUnconstrainedCell(t *testing.T) {
	cfg, err := board.New(3, 3, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := cellstate.New(cfg)
	got := EstimateComponent(s, cfg, []board.Index{0})
	if len(got) != 0 {
		t.Fatalf("EstimateComponent() = %+v, want empty (no Known neighbor)", got)
	}
}
