// Package io provides JSON import and export for sprite layout manifests.
//
// # Overview
//
// A manifest records where every sprite ended up inside the generated
// atlases. It is written next to the atlases by `spritepack generate
// --out-json` and read back by `spritepack style`, so a stylesheet can be
// regenerated (with a different prefix, say) without composing the atlases
// again.
//
// # JSON Format
//
//	{
//	  "image": "dist/sprite.png",
//	  "width": 220,
//	  "height": 120,
//	  "sprites": [
//	    {"x": 0, "y": 0, "margin": 0, "width": 120, "height": 120, "path": "icons/logo.png"},
//	    {"x": 120, "y": 0, "margin": 0, "width": 100, "height": 50, "path": "icons/banner.png"}
//	  ],
//	  "retina": {
//	    "image": "dist/sprite@2x.png",
//	    "width": 440,
//	    "height": 240,
//	    "sprites": [...]
//	  }
//	}
//
// The sprite boxes are the icons' own boxes, with the margin already
// removed; "margin" is informational. "retina" is omitted when no retina
// atlas was generated.
//
// # Import
//
// Use [ImportJSON] to read a manifest from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	res, err := io.ImportJSON("dist/sprite.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the manifest: an image path is required, at least
// one sprite must be present, and every sprite must lie inside its atlas.
// The returned atlases carry no pixels (Atlas.Image is nil).
//
// # Export
//
// Use [ExportJSON] to write a manifest to a file, or [WriteJSON] to write to
// any io.Writer:
//
//	err := io.ExportJSON(res, "dist/sprite.json")
package io
