package pack

// Vertical stacks rects in a single left-aligned column.
//
// Unless presorted is true, rects are first sorted by width (widest first),
// so the atlas width is that of the first rectangle and the height is the
// sum of all heights. Each placement has the rectangle's own size.
func Vertical(rects []Rect, presorted bool) Layout {
	if len(rects) == 0 {
		return NoPack
	}
	if !presorted {
		rects = Sort(rects, SortWidth)
	}

	l := Layout{
		Width:      rects[0].Width,
		Rects:      rects,
		Placements: make([]Placement, len(rects)),
	}
	for i, r := range rects {
		l.Placements[i] = Placement{X: 0, Y: l.Height, Width: r.Width, Height: r.Height}
		l.Height += r.Height
	}
	return l
}

// Horizontal lines rects up in a single top-aligned row.
// It is the transpose of Vertical: rects are sorted by height unless
// presorted, the atlas height is the first rectangle's height and the width
// is the sum of all widths.
func Horizontal(rects []Rect, presorted bool) Layout {
	if len(rects) == 0 {
		return NoPack
	}
	if !presorted {
		rects = Sort(rects, SortHeight)
	}

	l := Layout{
		Height:     rects[0].Height,
		Rects:      rects,
		Placements: make([]Placement, len(rects)),
	}
	for i, r := range rects {
		l.Placements[i] = Placement{X: l.Width, Y: 0, Width: r.Width, Height: r.Height}
		l.Width += r.Width
	}
	return l
}
