package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/io"
	"github.com/matzehuels/spritepack/pkg/style"
)

// styleOpts holds the command-line flags for the style command.
type styleOpts struct {
	output     string // stylesheet path; stdout when empty
	prefix     string
	connector  string
	suffix     string
	banner     bool
	bannerText string
}

// styleCommand creates the style command, which regenerates a stylesheet
// from a layout manifest written by generate --out-json.
func (c *CLI) styleCommand() *cobra.Command {
	opts := styleOpts{
		prefix:    style.DefaultPrefix,
		connector: style.DefaultConnector,
	}

	cmd := &cobra.Command{
		Use:   "style [manifest.json]",
		Short: "Generate a stylesheet from a layout manifest",
		Long: `Generate a stylesheet from a layout manifest.

The manifest is written by 'generate --out-json'. Restyling from it does not
decode or repack any image. Without --output the stylesheet is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st := cfg.Style
			opts.prefix = pick(cmd, "prefix", opts.prefix, st.Prefix)
			opts.connector = pick(cmd, "connector", opts.connector, st.Connector)
			opts.suffix = pick(cmd, "suffix", opts.suffix, st.Suffix)
			opts.banner = pickBool(cmd, "banner", opts.banner, st.Banner)
			opts.bannerText = pick(cmd, "banner-text", opts.bannerText, st.BannerText)
			return runStyle(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "stylesheet path (default: stdout)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", opts.prefix, "class name prefix")
	cmd.Flags().StringVar(&opts.connector, "connector", opts.connector, "class name connector")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "class name suffix")
	cmd.Flags().BoolVar(&opts.banner, "banner", false, "prepend a banner comment")
	cmd.Flags().StringVar(&opts.bannerText, "banner-text", "", "banner text (default: creation time)")

	cmd.ValidArgsFunction = manifestArgs
	return cmd
}

func runStyle(manifest string, opts styleOpts) error {
	res, err := io.ImportJSON(manifest)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", manifest, err)
	}

	sopts := style.Options{
		Prefix:     opts.prefix,
		Connector:  opts.connector,
		Suffix:     opts.suffix,
		Banner:     opts.banner,
		BannerText: opts.bannerText,
	}
	if opts.output == "" {
		sopts.ImagePath = res.Normal.Path
		if res.Retina != nil {
			sopts.Retina = true
			sopts.RetinaImagePath = res.Retina.Path
		}
		css, err := style.Generate(res.Normal.Sprites, sopts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, css)
		return err
	}

	if err := writeStyle(res, opts.output, sopts); err != nil {
		return err
	}
	printSuccess("Stylesheet generated")
	printFile(opts.output)
	return nil
}
