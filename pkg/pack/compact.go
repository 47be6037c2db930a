package pack

// none marks an absent child link in the node arena.
const none = -1

// node is one region of the guillotine tree.
// A used node always has both children; an unused node is a leaf.
type node struct {
	X, Y          int
	Width, Height int
	Used          bool
	Right, Down   int
}

// tree is the working structure of a single Compact pass. Nodes live in an
// arena and link to their children by index. A tree is never shared between
// passes.
type tree struct {
	nodes []node
	root  int
}

func newTree(width, height int) tree {
	t := tree{}
	t.root = t.add(node{Width: width, Height: height})
	return t
}

func (t *tree) add(n node) int {
	if !n.Used {
		n.Right, n.Down = none, none
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// find returns the first unused node under i able to hold w×h, searching
// the node itself, then its right subtree, then its down subtree.
func (t *tree) find(i, w, h int) int {
	if i == none {
		return none
	}
	n := t.nodes[i]
	if n.Used {
		if found := t.find(n.Right, w, h); found != none {
			return found
		}
		return t.find(n.Down, w, h)
	}
	if w <= n.Width && h <= n.Height {
		return i
	}
	return none
}

// split marks node i used by a w×h rectangle and hands the remaining space
// to two new children. It returns the node's box before the split.
func (t *tree) split(i, w, h int) Placement {
	n := t.nodes[i]
	down := t.add(node{X: n.X, Y: n.Y + h, Width: n.Width, Height: n.Height - h})
	right := t.add(node{X: n.X + w, Y: n.Y, Width: n.Width - w, Height: h})

	n.Used, n.Down, n.Right = true, down, right
	t.nodes[i] = n
	return Placement{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// growRight widens the bin by w. The old root becomes the down child of the
// new root and a fresh w-wide strip becomes its right child.
func (t *tree) growRight(w int) {
	old := t.nodes[t.root]
	strip := t.add(node{X: old.Width, Y: 0, Width: w, Height: old.Height})
	t.root = t.add(node{
		Width:  old.Width + w,
		Height: old.Height,
		Used:   true,
		Down:   t.root,
		Right:  strip,
	})
}

// growDown is the height-extending mirror of growRight.
func (t *tree) growDown(h int) {
	old := t.nodes[t.root]
	strip := t.add(node{X: 0, Y: old.Height, Width: old.Width, Height: h})
	t.root = t.add(node{
		Width:  old.Width,
		Height: old.Height + h,
		Used:   true,
		Right:  t.root,
		Down:   strip,
	})
}

// grow extends the bin once for a w×h rectangle that did not fit, preferring
// the direction that keeps the bin closer to square.
//
// When neither direction is legal the rectangle is larger than the bin on
// both axes, which only happens for input not sorted by max side. Growing
// down by h then makes growing right legal on the next call.
func (t *tree) grow(w, h int) {
	root := t.nodes[t.root]
	canRight := h <= root.Height
	canDown := w <= root.Width

	switch {
	case canRight && root.Height >= root.Width+w:
		t.growRight(w)
	case canDown && root.Width >= root.Height+h:
		t.growDown(h)
	case canRight:
		t.growRight(w)
	default:
		t.growDown(h)
	}
}

// place fits a w×h rectangle, growing the bin as often as needed. Each
// growth adds a strip of exactly one of the rectangle's dimensions, so
// this ends after at most two growths.
func (t *tree) place(w, h int) Placement {
	for {
		if i := t.find(t.root, w, h); i != none {
			return t.split(i, w, h)
		}
		t.grow(w, h)
	}
}

// Compact packs rects with a growing binary-tree (guillotine) packer.
//
// Unless presorted is true, rects are first sorted by max side, largest
// first, which keeps the number of growth steps low. The root starts as the
// first rectangle's box. Each rectangle takes the first unused node that
// holds it (depth-first: node, right, down); the node is split into a down
// and a right remainder. If nothing fits, the bin grows right or down.
//
// A rectangle's placement is the box of the node it took, before the split,
// so its width and height may exceed the rectangle's own. The layout bound
// is the final root box.
func Compact(rects []Rect, presorted bool) Layout {
	if len(rects) == 0 {
		return NoPack
	}
	if !presorted {
		rects = Sort(rects, SortMaxSide)
	}

	t := newTree(rects[0].Width, rects[0].Height)
	l := Layout{
		Rects:      rects,
		Placements: make([]Placement, len(rects)),
	}
	for i, r := range rects {
		l.Placements[i] = t.place(r.Width, r.Height)
	}

	root := t.nodes[t.root]
	l.Width, l.Height = root.Width, root.Height
	return l
}
