// Package atlas composes source images into a single encoded atlas image.
//
// [Compose] is the whole pipeline for one resolution tier: probe every
// source, pad it by half the margin, pack the padded footprints with the
// configured [pack.Arrangement], blit each raster into a transparent canvas
// and encode the canvas as PNG. The per-source [Sprite] metadata it returns
// describes each icon's own box inside the atlas, with the padding removed.
//
// Composition is all-or-nothing: any probe, directory or encode failure
// aborts the atlas and nothing is written at the destination.
package atlas

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/observability"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
)

// DefaultConcurrency bounds the number of sources probed at once.
const DefaultConcurrency = 16

// Sprite is the placement metadata of one source inside an atlas.
// X, Y, Width and Height are the icon's own box; the margin surrounds it.
type Sprite struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Margin int    `json:"margin"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Path   string `json:"path"`
}

// Atlas is a composed and encoded atlas image.
type Atlas struct {
	Path        string             `json:"path"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Sprites     []Sprite           `json:"sprites"`
	Compression raster.Compression `json:"compression"`
	Interlace   bool               `json:"interlace,omitempty"`

	// Image is the composed canvas that was encoded to Path.
	Image image.Image `json:"-"`
}

// Options configures Compose.
type Options struct {
	// Margin is the gap in pixels between neighboring sprites. Every source
	// is padded by Margin/2 on each edge, so an odd margin yields a gap of
	// Margin-1 and retina offsets are exactly doubled only for even margins.
	Margin      int                `json:"margin,omitempty"`
	Arrangement pack.Arrangement   `json:"arrangement,omitempty"`
	Compression raster.Compression `json:"compression,omitempty"`
	Interlace   bool               `json:"interlace,omitempty"`
	Concurrency int                `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	Raster raster.Codec `json:"-"`
	Logger *log.Logger  `json:"-"`
}

// ValidateAndSetDefaults checks enumerations and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative: %d", o.Margin)
	}
	a, err := pack.ParseArrangement(string(o.Arrangement))
	if err != nil {
		return err
	}
	o.Arrangement = a

	c, err := raster.ParseCompression(string(o.Compression))
	if err != nil {
		return err
	}
	o.Compression = c

	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Raster == nil {
		o.Raster = raster.FS{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Pad returns the transparent border added to every edge of a source for
// the given margin. Odd margins round down, so the gap between two sprites
// is 2*Pad(margin).
func Pad(margin int) int { return margin / 2 }

// Compose packs sources into one atlas written to dest.
//
// Empty sources or an empty dest are rejected with ErrCodeInvalidInput before
// any I/O. Probe failures carry ErrCodeProbeFailed; directory and encode
// failures carry ErrCodeMkdirFailed and ErrCodeEncodeFailed.
// Sprites are returned in packing order.
func Compose(ctx context.Context, sources []string, dest string, opts Options) (*Atlas, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no source images")
	}
	if dest == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "destination path is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Composition()
	pad := Pad(opts.Margin)

	images, err := probe(ctx, sources, pad, opts)
	if err != nil {
		return nil, err
	}

	rects := make([]pack.Rect, len(images))
	for i, img := range images {
		b := img.Bounds()
		rects[i] = pack.Rect{Width: b.Dx(), Height: b.Dy(), Ref: i}
	}

	start := time.Now()
	layout := opts.Arrangement.Pack(rects)
	hooks.OnPack(ctx, opts.Arrangement.String(), len(rects), layout.Width, layout.Height, time.Since(start))
	logger.Debug("packed", "arrangement", opts.Arrangement, "sources", len(rects),
		"width", layout.Width, "height", layout.Height)

	canvas := raster.Create(layout.Width, layout.Height, raster.Transparent)
	sprites := make([]Sprite, len(layout.Rects))
	for i, r := range layout.Rects {
		p := layout.Placements[i]
		raster.Blit(canvas, p.X, p.Y, r.Width, r.Height, images[r.Ref])
		sprites[i] = Sprite{
			X:      p.X + pad,
			Y:      p.Y + pad,
			Margin: opts.Margin,
			Width:  r.Width - 2*pad,
			Height: r.Height - 2*pad,
			Path:   sources[r.Ref],
		}
	}

	start = time.Now()
	err = opts.Raster.Encode(canvas, dest, raster.EncodeOptions{
		Compression: opts.Compression,
		Interlace:   opts.Interlace,
	})
	hooks.OnEncode(ctx, dest, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Info("composed atlas", "path", dest, "width", layout.Width, "height", layout.Height,
		"sprites", len(sprites))

	return &Atlas{
		Path:        dest,
		Width:       layout.Width,
		Height:      layout.Height,
		Sprites:     sprites,
		Compression: opts.Compression,
		Interlace:   opts.Interlace,
		Image:       canvas,
	}, nil
}

// probe decodes every source concurrently and pads each by pad pixels.
// The first failure stops further probes from starting.
func probe(ctx context.Context, sources []string, pad int, opts Options) ([]image.Image, error) {
	hooks := observability.Composition()
	images := make([]image.Image, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, path := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			img, err := opts.Raster.Probe(path)
			hooks.OnProbe(gctx, path, time.Since(start), err)
			if err != nil {
				return err
			}
			if pad > 0 {
				img = raster.Pad(img, pad)
			}
			images[i] = img
			opts.Logger.Debug("probed", "path", path,
				"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
