package pack

import (
	"cmp"
	"slices"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortNone    SortKey = "none"
	SortWidth   SortKey = "width"
	SortHeight  SortKey = "height"
	SortArea    SortKey = "area"
	SortMaxSide SortKey = "maxSide"
)

// ParseSortKey converts a user-supplied key. The empty string maps to SortNone.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortNone, nil
	case SortNone, SortWidth, SortHeight, SortArea, SortMaxSide:
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSortKey,
		"invalid sort key: %q (must be one of: none, width, height, area, maxSide)", s)
}

// Sort orders rects descending by key.
//
// SortNone returns rects itself. Every other key returns a new slice and
// leaves rects untouched. The sort is stable: rectangles with equal keys keep
// their relative input order.
func Sort(rects []Rect, key SortKey) []Rect {
	by := keyFunc(key)
	if by == nil {
		return rects
	}
	sorted := slices.Clone(rects)
	slices.SortStableFunc(sorted, func(a, b Rect) int {
		return cmp.Compare(by(b), by(a))
	})
	return sorted
}

func keyFunc(key SortKey) func(Rect) int {
	switch key {
	case SortWidth:
		return func(r Rect) int { return r.Width }
	case SortHeight:
		return func(r Rect) int { return r.Height }
	case SortArea:
		return Rect.Area
	case SortMaxSide:
		return Rect.MaxSide
	default:
		return nil
	}
}
