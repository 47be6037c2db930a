// Package raster is the pixel capability used to build atlases: probing
// (decoding) source images, creating and padding canvases, copying pixels
// between them and encoding the result as PNG.
//
// Sources may be PNG, JPEG, GIF, BMP, TIFF or WebP. Canvases are always
// *image.NRGBA so that alpha is copied exactly rather than blended.
//
// Output is always PNG with 8-bit RGBA color. Three compression tiers are
// available (see [Compression]); interlaced (Adam7) output is supported via
// [EncodeOptions.Interlace].
package raster
