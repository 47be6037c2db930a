package pack

// Rect is the footprint of one source image.
// Ref is an opaque handle the caller uses to map a placement back to its
// source, typically an index into the caller's own slice.
type Rect struct {
	Width  int
	Height int
	Ref    int
}

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width * r.Height }

// MaxSide returns the larger of Width and Height.
func (r Rect) MaxSide() int { return max(r.Width, r.Height) }

// Placement is the box assigned to a rectangle inside an atlas.
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Overlaps reports whether p and o share any area.
// Zero-area boxes never overlap anything.
func (p Placement) Overlaps(o Placement) bool {
	return p.X < o.X+o.Width && o.X < p.X+p.Width &&
		p.Y < o.Y+o.Height && o.Y < p.Y+p.Height
}

// Layout is the result of one packing pass.
// Placements[i] belongs to Rects[i]; Rects is in packing order, which may
// differ from the order passed in when the packer sorts.
type Layout struct {
	Width      int
	Height     int
	Rects      []Rect
	Placements []Placement
}

// NoPack is returned by every packer for empty input.
var NoPack = Layout{}

// Footprint returns the box actually covered by Rects[i]: its placement
// origin with the rectangle's own size. Footprints never overlap, while
// Compact placements may include slack that later rectangles occupy.
func (l Layout) Footprint(i int) Placement {
	p := l.Placements[i]
	return Placement{X: p.X, Y: p.Y, Width: l.Rects[i].Width, Height: l.Rects[i].Height}
}

// Empty reports whether l is the NoPack sentinel.
func (l Layout) Empty() bool { return len(l.Rects) == 0 }

// Area returns the bin area Width*Height.
func (l Layout) Area() int { return l.Width * l.Height }
