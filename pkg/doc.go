// Package pkg provides the core libraries for spritepack.
//
// # Overview
//
// Spritepack packs a set of source images into one atlas image and writes
// the stylesheet that shows each image by offsetting the atlas. The pkg
// directory is organized as follows:
//
//  1. [pack] - Rectangle packing (compact, vertical, horizontal)
//  2. [raster] - Image decoding, padding, blitting and PNG encoding
//  3. [atlas] - One atlas: probe, pack, compose, encode
//  4. [sprite] - Normal and retina atlases from one source set
//  5. [style] - Stylesheet generation
//  6. [source], [config], [io] - Source globbing, project file, manifests
//
// # Architecture
//
// The typical data flow through spritepack:
//
//	source globs
//	     ↓
//	[source] package (expand to sorted file paths)
//	     ↓
//	[sprite] package (split into normal and @2x retina subsets)
//	     ↓
//	[atlas] package (probe with [raster], lay out with [pack], encode PNG)
//	     ↓
//	[style] package (one class per sprite)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/spritepack/pkg/sprite"
//	    "github.com/matzehuels/spritepack/pkg/style"
//	)
//
//	res, err := sprite.Generate(context.Background(), paths, sprite.Options{
//	    Dest:   "dist/sprite.png",
//	    Margin: 4,
//	})
//	if err != nil {
//	    return err
//	}
//	css, err := style.Generate(res.Normal.Sprites, style.Options{
//	    StylePath: "dist/sprite.css",
//	    ImagePath: res.Normal.Path,
//	})
//
// # Error Handling
//
// Every package returns [errors.Error] values carrying a machine-readable
// code. Validation failures use INVALID_* codes and happen before any file
// is read or written.
package pkg
