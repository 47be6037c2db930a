// Package pack computes rectangle layouts for sprite atlases.
//
// Three arrangements are supported:
//
//   - [ArrangementCompact]: a binary-tree (guillotine) packer that grows its
//     bin on demand, keeping it close to square. This is the default.
//   - [ArrangementVertical]: a single column, widest rectangle first.
//   - [ArrangementHorizontal]: a single row, tallest rectangle first.
//
// # Usage
//
//	rects := []pack.Rect{
//	    {Width: 120, Height: 120, Ref: 0},
//	    {Width: 100, Height: 50, Ref: 1},
//	}
//	l := pack.ArrangementCompact.Pack(rects)
//	if l.Empty() {
//	    // nothing to pack
//	}
//	for i, p := range l.Placements {
//	    fmt.Println(l.Rects[i].Ref, p.X, p.Y)
//	}
//
// # Determinism
//
// Every packer is a pure function of its input order: no randomness and no
// floating point. Packing the same presorted list twice yields identical
// placements, which keeps atlas output byte-for-byte reproducible.
//
// # Sentinel
//
// Packing an empty list returns [NoPack] rather than an error. Callers use
// [Layout.Empty] to decide whether a pass can be skipped.
package pack
