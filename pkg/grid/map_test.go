package grid

import (
	"math/rand/v2"
	"testing"
)

func TestNewMarksBorderPermanent(t *testing.T) {
	m := New(6, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			p := Pt(row, col)
			border := row == 0 || row == 3 || col == 0 || col == 5
			if got := m.Has(p, CellPerm); got != border {
				t.Errorf("cell %v perm = %v, want %v", p, got, border)
			}
		}
	}
}

func TestFillAndClearKeepPerm(t *testing.T) {
	m := New(5, 5)
	m.Fill(CellOpen | CellSeen)

	if m.Has(Pt(0, 0), CellOpen) {
		t.Error("fill should skip permanent cells")
	}
	if !m.HasAll(Pt(2, 2), CellOpen|CellSeen) {
		t.Error("fill should set interior cells")
	}

	m.Clear(Pt(0, 2), CellPerm)
	if !m.Has(Pt(0, 2), CellPerm) {
		t.Error("Clear removed CellPerm")
	}

	m.Set(Pt(0, 2), CellSeen)
	m.ClearAll(CellMask)
	for i := range m.cells {
		p := m.PointAt(i)
		border := p.Row == 0 || p.Row == 4 || p.Col == 0 || p.Col == 4
		want := CellNone
		if border {
			want = CellPerm
		}
		if m.Flags(p) != want {
			t.Errorf("cell %v = %#x after ClearAll, want %#x", p, m.Flags(p), want)
		}
	}
}

func TestFlagValid(t *testing.T) {
	if !CellMask.Valid() || !CellNone.Valid() || !(CellOpen | CellWalk).Valid() {
		t.Error("defined flags should be valid")
	}
	if Flag(0x10000).Valid() || (CellOpen | Flag(1<<20)).Valid() {
		t.Error("undefined bits should be invalid")
	}
}

var corridor = []string{
	"##########",
	"#........#",
	"#.######.#",
	"#.#....#.#",
	"#.#.##.#.#",
	"#........#",
	"##########",
}

func TestLOS(t *testing.T) {
	m := Parse(corridor)

	tests := []struct {
		a, b Point
		want bool
	}{
		{Pt(1, 1), Pt(1, 8), true},
		{Pt(1, 1), Pt(5, 1), true},
		{Pt(1, 1), Pt(5, 8), false},
		{Pt(3, 3), Pt(3, 6), true},
		{Pt(1, 1), Pt(3, 3), false},
		{Pt(5, 1), Pt(5, 8), true},
		{Pt(2, 2), Pt(2, 3), true},
		{Pt(4, 4), Pt(4, 4), true},
	}

	for _, tt := range tests {
		if got := LOS(m, tt.a, tt.b); got != tt.want {
			t.Errorf("LOS(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := LOS(m, tt.b, tt.a); got != tt.want {
			t.Errorf("LOS(%v, %v) = %v, want %v (reversed)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestParseAndRender(t *testing.T) {
	rows := []string{
		"#####",
		"#.M*#",
		"#G,.#",
		"#####",
	}
	m := Parse(rows)
	if m.Width() != 5 || m.Height() != 4 {
		t.Fatalf("size = %dx%d, want 5x4", m.Width(), m.Height())
	}
	if !m.Has(Pt(1, 2), CellOcup) || !m.Has(Pt(1, 3), CellRefl) || m.IsOpen(Pt(1, 3)) {
		t.Error("glyphs parsed to wrong flags")
	}
	if !m.HasAll(Pt(2, 2), CellOpen|CellMemo) || !m.Has(Pt(2, 1), CellGoal) {
		t.Error("remembered or goal floor parsed wrong")
	}

	got := Render(m, map[Point]byte{Pt(2, 3): '@'})
	want := "#####\n#.M*#\n#G.@#\n#####\n"
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestScatter(t *testing.T) {
	m := Parse(corridor)
	rnd := rand.New(rand.NewPCG(7, 11))
	origin := Pt(3, 4)

	seen := make(map[Point]bool)
	for i := 0; i < 200; i++ {
		p, ok := Scatter(m, ScatterQuery{
			Origin:   origin,
			Range:    3,
			Required: CellOpen | CellWalk,
			Attempts: 5000,
		}, rnd)
		if !ok {
			t.Fatal("scatter failed on an open map")
		}
		if p.Row < origin.Row-3 || p.Row >= origin.Row+3 || p.Col < origin.Col-3 || p.Col >= origin.Col+3 {
			t.Errorf("scatter point %v outside range", p)
		}
		if !m.HasAll(p, CellOpen|CellWalk) {
			t.Errorf("scatter point %v lacks required flags", p)
		}
		seen[p] = true
	}
	if len(seen) < 5 {
		t.Errorf("scatter only produced %d distinct points", len(seen))
	}
}

func TestScatterGivesUp(t *testing.T) {
	m := New(8, 8)
	rnd := rand.New(rand.NewPCG(1, 2))
	_, ok := Scatter(m, ScatterQuery{Origin: Pt(4, 4), Range: 2, Required: CellOpen, Attempts: 50}, rnd)
	if ok {
		t.Error("scatter should fail when no cell qualifies")
	}
}

func TestScatterWithLOS(t *testing.T) {
	m := Parse(corridor)
	rnd := rand.New(rand.NewPCG(3, 5))
	origin := Pt(3, 4)
	for i := 0; i < 50; i++ {
		p, ok := Scatter(m, ScatterQuery{Origin: origin, Range: 5, Required: CellOpen, NeedLOS: true, Attempts: 5000}, rnd)
		if !ok {
			t.Fatal("scatter with LOS failed")
		}
		if !LOS(m, origin, p) {
			t.Errorf("scatter point %v not in LOS of %v", p, origin)
		}
	}
}
