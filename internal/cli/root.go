package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/buildinfo"
	"github.com/matzehuels/spritepack/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root's PersistentPreRunE attaches the CLI logger to the command
// context, so subcommands retrieve it with loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Spritepack packs images into sprite atlases",
		Long: `Spritepack packs a set of icons into a single atlas image, optionally
builds a matching double-resolution (retina) atlas, and writes the stylesheet
that positions every icon inside it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.FileName+" if present)")
	registerConfigCompletion(root)

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
