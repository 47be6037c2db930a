package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Transparent is the fill used for new canvases and padding.
var Transparent = color.NRGBA{}

// Create allocates a width×height canvas filled with bg.
// A nil or fully transparent bg leaves the canvas zeroed.
func Create(width, height int, bg color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if bg == nil {
		return img
	}
	if _, _, _, a := bg.RGBA(); a == 0 {
		return img
	}
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	return img
}

// Pad returns a copy of src with pad transparent pixels added on every edge.
// The copy's bounds start at the origin.
func Pad(src image.Image, pad int) *image.NRGBA {
	b := src.Bounds()
	dst := Create(b.Dx()+2*pad, b.Dy()+2*pad, nil)
	Blit(dst, pad, pad, b.Dx(), b.Dy(), src)
	return dst
}

// Blit copies a width×height block from the top-left of src into dst at
// (x, y). Pixels, alpha included, replace what was there.
func Blit(dst xdraw.Image, x, y, width, height int, src image.Image) {
	r := image.Rect(x, y, x+width, y+height)
	xdraw.Draw(dst, r, src, src.Bounds().Min, xdraw.Src)
}

// toNRGBA returns img as *image.NRGBA, converting when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	n := Create(b.Dx(), b.Dy(), nil)
	Blit(n, 0, 0, b.Dx(), b.Dy(), img)
	return n
}
