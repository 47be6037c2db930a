// Package sprite generates the normal and retina atlases for a set of
// sources.
//
// [Generate] splits the sources into a normal and a retina subset, composes
// the normal subset with the configured margin and the retina subset with
// twice that margin, and returns both atlases. Retina sources are drawn at
// double density, so doubling the margin keeps the on-screen gap equal.
//
// # Subsets
//
// The retina subset is selected by Options.RetinaFilter (default: paths
// containing "@2x"). The normal subset is selected by Options.Filter; when
// no filter is given it is every source not in the retina subset, so a
// source is never counted twice. Setting RetinaFilter without setting
// Retina enables retina mode.
//
// The two compositions run concurrently and write disjoint files.
package sprite

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
)

// Options configures Generate.
type Options struct {
	Dest       string `json:"dest"`
	RetinaDest string `json:"retina_dest,omitempty"`

	// Retina enables the retina atlas. Nil means enabled exactly when
	// RetinaFilter is set.
	Retina       *bool  `json:"retina,omitempty"`
	Filter       Filter `json:"-"`
	RetinaFilter Filter `json:"-"`

	Margin      int                `json:"margin,omitempty"`
	Compression raster.Compression `json:"compression,omitempty"`
	Interlace   bool               `json:"interlace,omitempty"`
	Arrangement pack.Arrangement   `json:"arrangement,omitempty"`
	Concurrency int                `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	Raster raster.Codec `json:"-"`
	Logger *log.Logger  `json:"-"`
}

// RetinaEnabled reports whether a retina atlas is requested.
func (o Options) RetinaEnabled() bool {
	if o.Retina != nil {
		return *o.Retina
	}
	return o.RetinaFilter != nil
}

// Result holds the generated atlases. Retina is nil when no retina atlas
// was produced.
type Result struct {
	Normal *atlas.Atlas `json:"normal"`
	Retina *atlas.Atlas `json:"retina,omitempty"`
}

// Generate composes the normal atlas and, when enabled, the retina atlas.
//
// Empty sources or an empty Dest are rejected with ErrCodeInvalidInput
// before any I/O, as is a normal subset left empty by the filters. An empty
// retina subset skips the retina atlas with a warning.
//
// Both atlases are composed concurrently. A failure in one does not cancel
// the other; Generate waits for both and returns the first error.
func Generate(ctx context.Context, sources []string, opts Options) (*Result, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no source images")
	}
	if opts.Dest == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "destination path is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	retina := opts.RetinaEnabled()
	retinaFilter := opts.RetinaFilter
	if retinaFilter == nil {
		retinaFilter = DefaultRetinaFilter
	}
	filter := opts.Filter
	if filter == nil {
		filter = func(string) bool { return true }
		if retina {
			filter = Not(retinaFilter)
		}
	}

	normal := partition(sources, filter)
	if len(normal) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no source images left after filtering")
	}
	var retinaSources []string
	if retina {
		retinaSources = partition(sources, retinaFilter)
		if len(retinaSources) == 0 {
			logger.Warn("no retina sources matched, skipping retina atlas")
			retina = false
		}
	}
	retinaDest := opts.RetinaDest
	if retinaDest == "" {
		retinaDest = RetinaPath(opts.Dest)
	}

	base := atlas.Options{
		Margin:      opts.Margin,
		Arrangement: opts.Arrangement,
		Compression: opts.Compression,
		Interlace:   opts.Interlace,
		Concurrency: opts.Concurrency,
		Raster:      opts.Raster,
		Logger:      logger,
	}
	if err := base.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{}
	var g errgroup.Group
	g.Go(func() error {
		o := base
		o.Logger = logger.With("tier", "normal")
		a, err := atlas.Compose(ctx, normal, opts.Dest, o)
		res.Normal = a
		return err
	})
	if retina {
		doubled := base
		doubled.Margin = base.Margin * 2
		doubled.Logger = logger.With("tier", "retina")
		g.Go(func() error {
			a, err := atlas.Compose(ctx, retinaSources, retinaDest, doubled)
			res.Retina = a
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
