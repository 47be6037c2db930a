package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/config"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/io"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
	"github.com/matzehuels/spritepack/pkg/source"
	"github.com/matzehuels/spritepack/pkg/sprite"
	"github.com/matzehuels/spritepack/pkg/style"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	sources      []string // source globs or directories
	out          string   // normal atlas path
	outRetina    string   // retina atlas path (default: out with @2x)
	outStyle     string   // stylesheet path (default: out with .css)
	outJSON      string   // layout manifest path (optional)
	noRetina     bool     // skip the retina atlas
	noStyle      bool     // skip the stylesheet
	noInterlaced bool     // write non-interlaced PNGs
	compression  string   // none, fast or high
	margin       int      // gap between sprites in pixels
	filter       string   // glob selecting normal sources
	retinaFilter string   // glob selecting retina sources
	arrangement  string   // compact, vertical or horizontal
	concurrency  int      // parallel source probes

	stylePrefix     string
	styleConnector  string
	styleSuffix     string
	styleBanner     bool
	styleBannerText string
}

// generateCommand creates the generate command, which packs sources into
// atlases and writes the stylesheet.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		compression:    string(raster.DefaultCompression),
		arrangement:    string(pack.DefaultArrangement),
		stylePrefix:    style.DefaultPrefix,
		styleConnector: style.DefaultConnector,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Pack source images into a sprite atlas",
		Long: `Pack source images into a sprite atlas.

Sources are globs ("icons/**/*.png") or directories, which include every PNG
beneath them. Files whose name contains "@2x" go into a second, retina atlas
composed with twice the margin; all other files go into the normal atlas.

A stylesheet with one class per sprite is written next to the atlas unless
--no-style is given.`,
		Example: `  spritepack generate -s img/icons -o img/sprite.png --out-style css/sprite.css -m 10
  spritepack generate -s 'icons/**/*.png' -o tmp/sprite.png --no-retina --no-style`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.merge(cmd, cfg)
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.sources, "source", "s", nil, "source glob or directory (repeatable)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "atlas image path, e.g. img/sprite.png")
	cmd.Flags().StringVar(&opts.outRetina, "out-retina", "", "retina atlas path (default: atlas path with @2x)")
	cmd.Flags().StringVar(&opts.outStyle, "out-style", "", "stylesheet path (default: atlas path with .css)")
	cmd.Flags().StringVar(&opts.outJSON, "out-json", "", "also write the layout manifest to this path")
	cmd.Flags().BoolVar(&opts.noRetina, "no-retina", false, "do not generate the retina atlas")
	cmd.Flags().BoolVar(&opts.noStyle, "no-style", false, "do not generate the stylesheet")
	cmd.Flags().BoolVar(&opts.noInterlaced, "no-interlaced", false, "write non-interlaced PNGs")
	cmd.Flags().StringVarP(&opts.compression, "compression", "c", opts.compression, "PNG compression: none, fast, high")
	cmd.Flags().IntVarP(&opts.margin, "margin", "m", 0, "margin between sprites in pixels (prefer even numbers)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "glob selecting normal sources (prefix ! to negate)")
	cmd.Flags().StringVar(&opts.retinaFilter, "retina-filter", "", "glob selecting retina sources (default: names containing @2x)")
	cmd.Flags().StringVar(&opts.arrangement, "arrangement", opts.arrangement, "layout: compact, vertical, horizontal")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "maximum sources decoded in parallel (default 16)")

	cmd.Flags().StringVar(&opts.stylePrefix, "style-prefix", opts.stylePrefix, "class name prefix")
	cmd.Flags().StringVar(&opts.styleConnector, "style-connector", opts.styleConnector, "class name connector")
	cmd.Flags().StringVar(&opts.styleSuffix, "style-suffix", "", "class name suffix")
	cmd.Flags().BoolVar(&opts.styleBanner, "style-banner", false, "prepend a banner comment to the stylesheet")
	cmd.Flags().StringVar(&opts.styleBannerText, "style-banner-text", "", "banner text (default: creation time)")
	registerGenerateCompletions(cmd)

	return cmd
}

// merge fills every flag the user did not set from the config file.
func (o *generateOpts) merge(cmd *cobra.Command, cfg *config.Config) {
	s := cfg.Sprite
	if !cmd.Flags().Changed("source") && len(s.Sources) > 0 {
		o.sources = s.Sources
	}
	o.out = pick(cmd, "out", o.out, s.Out)
	o.outRetina = pick(cmd, "out-retina", o.outRetina, s.OutRetina)
	o.outStyle = pick(cmd, "out-style", o.outStyle, s.OutStyle)
	o.outJSON = pick(cmd, "out-json", o.outJSON, s.OutJSON)
	o.compression = pick(cmd, "compression", o.compression, s.Compression)
	o.margin = pick(cmd, "margin", o.margin, s.Margin)
	o.filter = pick(cmd, "filter", o.filter, s.Filter)
	o.retinaFilter = pick(cmd, "retina-filter", o.retinaFilter, s.RetinaFilter)
	o.arrangement = pick(cmd, "arrangement", o.arrangement, s.Arrangement)
	o.concurrency = pick(cmd, "concurrency", o.concurrency, s.Concurrency)
	o.noRetina = !pickBool(cmd, "no-retina", !o.noRetina, s.Retina)
	o.noInterlaced = !pickBool(cmd, "no-interlaced", !o.noInterlaced, s.Interlace)

	st := cfg.Style
	o.stylePrefix = pick(cmd, "style-prefix", o.stylePrefix, st.Prefix)
	o.styleConnector = pick(cmd, "style-connector", o.styleConnector, st.Connector)
	o.styleSuffix = pick(cmd, "style-suffix", o.styleSuffix, st.Suffix)
	o.styleBanner = pickBool(cmd, "style-banner", o.styleBanner, st.Banner)
	o.styleBannerText = pick(cmd, "style-banner-text", o.styleBannerText, st.BannerText)
}

// spriteOptions validates the flags and converts them for sprite.Generate.
func (o *generateOpts) spriteOptions() (sprite.Options, error) {
	if len(o.sources) == 0 {
		return sprite.Options{}, errors.New(errors.ErrCodeInvalidInput, "--source is required")
	}
	if o.out == "" {
		return sprite.Options{}, errors.New(errors.ErrCodeInvalidInput, "--out is required")
	}
	arrangement, err := pack.ParseArrangement(o.arrangement)
	if err != nil {
		return sprite.Options{}, err
	}
	compression, err := raster.ParseCompression(o.compression)
	if err != nil {
		return sprite.Options{}, err
	}

	retina := !o.noRetina
	opts := sprite.Options{
		Dest:        o.out,
		RetinaDest:  o.outRetina,
		Retina:      &retina,
		Margin:      o.margin,
		Compression: compression,
		Interlace:   !o.noInterlaced,
		Arrangement: arrangement,
		Concurrency: o.concurrency,
	}
	if o.filter != "" {
		if opts.Filter, err = sprite.GlobFilter(o.filter); err != nil {
			return sprite.Options{}, err
		}
	}
	if o.retinaFilter != "" {
		if opts.RetinaFilter, err = sprite.GlobFilter(o.retinaFilter); err != nil {
			return sprite.Options{}, err
		}
	}
	return opts, nil
}

// stylePath returns the stylesheet destination.
func (o *generateOpts) stylePath() string {
	if o.outStyle != "" {
		return o.outStyle
	}
	return strings.TrimSuffix(o.out, filepath.Ext(o.out)) + ".css"
}

// runGenerate resolves sources, composes the atlases and writes the
// stylesheet and manifest.
func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	spriteOpts, err := opts.spriteOptions()
	if err != nil {
		return err
	}
	spriteOpts.Logger = logger

	sources, err := source.ResolveAll(opts.sources)
	if err != nil {
		return err
	}
	logger.Debug("resolved sources", "count", len(sources))

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %d images...", len(sources)))
	spinner.Start()

	res, err := sprite.Generate(ctx, sources, spriteOpts)
	if err != nil {
		spinner.StopWithError("Sprite generation failed")
		return fmt.Errorf("generate: %w", err)
	}

	var stylePath string
	if !opts.noStyle {
		stylePath = opts.stylePath()
		spinner.Update("Writing stylesheet...")
		if err := writeStyle(res, stylePath, style.Options{
			Prefix:     opts.stylePrefix,
			Connector:  opts.styleConnector,
			Suffix:     opts.styleSuffix,
			Banner:     opts.styleBanner,
			BannerText: opts.styleBannerText,
		}); err != nil {
			spinner.StopWithError("Writing stylesheet failed")
			return err
		}
	}
	if opts.outJSON != "" {
		if err := io.ExportJSON(res, opts.outJSON); err != nil {
			spinner.StopWithError("Writing manifest failed")
			return fmt.Errorf("write manifest: %w", err)
		}
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Composed %d sprites", len(res.Normal.Sprites)))

	printSuccess("Sprite generated")
	printAtlas("image", res.Normal.Path, res.Normal.Width, res.Normal.Height, len(res.Normal.Sprites))
	if res.Retina != nil {
		printAtlas("retina", res.Retina.Path, res.Retina.Width, res.Retina.Height, len(res.Retina.Sprites))
	} else if !opts.noRetina {
		printWarning("No retina sources found; retina atlas skipped")
	}
	if stylePath != "" {
		printFile(stylePath)
	}
	if opts.outJSON != "" {
		printFile(opts.outJSON)
		printNewline()
		printNextStep("Restyle without repacking", fmt.Sprintf("%s style %s", appName, opts.outJSON))
	}
	return nil
}

// writeStyle generates the stylesheet for res and writes it to path. Image
// URLs are made relative to the stylesheet.
func writeStyle(res *sprite.Result, path string, opts style.Options) error {
	opts.StylePath = path
	opts.ImagePath = res.Normal.Path
	if res.Retina != nil {
		opts.Retina = true
		opts.RetinaImagePath = res.Retina.Path
	}
	css, err := style.Generate(res.Normal.Sprites, opts)
	if err != nil {
		return err
	}
	return style.Write(path, css)
}
