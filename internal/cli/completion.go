package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for spritepack.

To load completions:

Bash:
  $ source <(spritepack completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ spritepack completion bash > /etc/bash_completion.d/spritepack
  # macOS:
  $ spritepack completion bash > $(brew --prefix)/etc/bash_completion.d/spritepack

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ spritepack completion zsh > "${fpath[1]}/_spritepack"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ spritepack completion fish | source

  # To load completions for each session, execute once:
  $ spritepack completion fish > ~/.config/fish/completions/spritepack.fish

PowerShell:
  PS> spritepack completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> spritepack completion powershell > spritepack.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// arrangementNames and compressionNames complete the enumerated flags.
var (
	arrangementNames = []string{
		string(pack.ArrangementCompact),
		string(pack.ArrangementVertical),
		string(pack.ArrangementHorizontal),
	}
	compressionNames = []string{
		string(raster.CompressionNone),
		string(raster.CompressionFast),
		string(raster.CompressionHigh),
	}
)

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values []string) cobra.CompletionFunc {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

// registerGenerateCompletions completes the generate flags: enumerations by
// value, output paths by extension, sources by directory.
func registerGenerateCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("arrangement", fixedCompletion(arrangementNames))
	_ = cmd.RegisterFlagCompletionFunc("compression", fixedCompletion(compressionNames))
	_ = cmd.MarkFlagFilename("out", "png")
	_ = cmd.MarkFlagFilename("out-retina", "png")
	_ = cmd.MarkFlagFilename("out-style", "css")
	_ = cmd.MarkFlagFilename("out-json", "json")
	_ = cmd.MarkFlagDirname("source")
	for _, name := range []string{"style-prefix", "style-connector", "style-suffix", "style-banner-text", "filter", "retina-filter"} {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
	}
}

// registerConfigCompletion completes --config with TOML files.
func registerConfigCompletion(root *cobra.Command) {
	_ = root.MarkPersistentFlagFilename("config", "toml")
}

// manifestArgs completes a positional manifest argument with JSON files.
func manifestArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
