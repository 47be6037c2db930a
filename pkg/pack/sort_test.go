package pack

import (
	"slices"
	"testing"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// sample is the rectangle set used throughout the package tests.
func sample() []Rect {
	return []Rect{
		{Width: 30, Height: 60, Ref: 0},
		{Width: 40, Height: 50, Ref: 1},
		{Width: 100, Height: 50, Ref: 2},
		{Width: 120, Height: 120, Ref: 3},
	}
}

func refs(rects []Rect) []int {
	out := make([]int, len(rects))
	for i, r := range rects {
		out[i] = r.Ref
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []int
	}{
		{"max side", SortMaxSide, []int{3, 2, 0, 1}},
		{"area", SortArea, []int{3, 2, 1, 0}},
		{"width", SortWidth, []int{3, 2, 1, 0}},
		{"height keeps tie order", SortHeight, []int{3, 0, 1, 2}},
		{"none", SortNone, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := refs(Sort(sample(), tt.key))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSortNoneReturnsInput(t *testing.T) {
	rects := sample()
	got := Sort(rects, SortNone)
	if &got[0] != &rects[0] {
		t.Error("Sort(SortNone) should return the input slice itself")
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rects := sample()
	_ = Sort(rects, SortMaxSide)
	if got := refs(rects); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestSortIsStable(t *testing.T) {
	// Every key ties on all of these, so the order must not change.
	rects := []Rect{
		{Width: 10, Height: 20, Ref: 0},
		{Width: 20, Height: 10, Ref: 1},
		{Width: 10, Height: 20, Ref: 2},
		{Width: 20, Height: 10, Ref: 3},
	}
	for _, key := range []SortKey{SortMaxSide, SortArea} {
		if got := refs(Sort(rects, key)); !slices.Equal(got, []int{0, 1, 2, 3}) {
			t.Errorf("Sort(%s) = %v, want input order", key, got)
		}
	}

	// Width ties among 0 and 2, and among 1 and 3.
	if got := refs(Sort(rects, SortWidth)); !slices.Equal(got, []int{1, 3, 0, 2}) {
		t.Errorf("Sort(width) = %v, want [1 3 0 2]", got)
	}
	if got := refs(Sort(rects, SortHeight)); !slices.Equal(got, []int{0, 2, 1, 3}) {
		t.Errorf("Sort(height) = %v, want [0 2 1 3]", got)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortNone, false},
		{"none", SortNone, false},
		{"maxSide", SortMaxSide, false},
		{"area", SortArea, false},
		{"diagonal", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidSortKey) {
			t.Errorf("ParseSortKey(%q) code = %v", tt.input, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseSortKey(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
