package pack

import (
	"slices"
	"testing"
)

func TestVertical(t *testing.T) {
	l := Vertical(sample(), false)

	if l.Width != 120 || l.Height != 280 {
		t.Fatalf("Vertical() bound = %dx%d, want 120x280", l.Width, l.Height)
	}
	if got := refs(l.Rects); !slices.Equal(got, []int{3, 2, 1, 0}) {
		t.Errorf("Vertical() order = %v, want [3 2 1 0]", got)
	}

	wantY := []int{0, 120, 170, 220}
	for i, p := range l.Placements {
		if p.X != 0 || p.Y != wantY[i] {
			t.Errorf("placement %d = (%d,%d), want (0,%d)", i, p.X, p.Y, wantY[i])
		}
		if p.Width != l.Rects[i].Width || p.Height != l.Rects[i].Height {
			t.Errorf("placement %d size = %dx%d, want rect size", i, p.Width, p.Height)
		}
	}
}

func TestHorizontal(t *testing.T) {
	l := Horizontal(sample(), false)

	if l.Width != 290 || l.Height != 120 {
		t.Fatalf("Horizontal() bound = %dx%d, want 290x120", l.Width, l.Height)
	}

	wantX := []int{0, 120, 150, 190}
	for i, p := range l.Placements {
		if p.Y != 0 || p.X != wantX[i] {
			t.Errorf("placement %d = (%d,%d), want (%d,0)", i, p.X, p.Y, wantX[i])
		}
	}
}

func TestShelfPresorted(t *testing.T) {
	rects := Sort(sample(), SortWidth)
	a := Vertical(rects, true)
	b := Vertical(sample(), false)
	if !slices.Equal(a.Placements, b.Placements) {
		t.Errorf("presorted placements %v differ from sorted %v", a.Placements, b.Placements)
	}
}

func TestPackEmpty(t *testing.T) {
	tests := []struct {
		name string
		pack func([]Rect, bool) Layout
	}{
		{"vertical", Vertical},
		{"horizontal", Horizontal},
		{"compact", Compact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range [][]Rect{nil, {}} {
				l := tt.pack(in, false)
				if !l.Empty() {
					t.Errorf("pack(%v) = %+v, want NoPack", in, l)
				}
			}
		})
	}
}

func TestShelfBoundsAreExact(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rects := randomRects(seed, 25, 64)
		for _, l := range []Layout{Vertical(rects, false), Horizontal(rects, false)} {
			assertNoOverlap(t, l)
			maxX, maxY := extent(l)
			if maxX != l.Width || maxY != l.Height {
				t.Errorf("seed %d: extent %dx%d, bound %dx%d", seed, maxX, maxY, l.Width, l.Height)
			}
		}
	}
}
