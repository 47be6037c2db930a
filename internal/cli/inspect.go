package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/io"
	"github.com/matzehuels/spritepack/pkg/style"
)

// inspectCommand creates the inspect command, which prints the sprites
// recorded in a layout manifest.
func (c *CLI) inspectCommand() *cobra.Command {
	var retina bool

	cmd := &cobra.Command{
		Use:   "inspect [manifest.json]",
		Short: "Show the sprites recorded in a layout manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := io.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load manifest %s: %w", args[0], err)
			}
			a := res.Normal
			if retina {
				if res.Retina == nil {
					printWarning("Manifest has no retina atlas")
					return nil
				}
				a = res.Retina
			}
			printKeyValue("image", a.Path)
			printKeyValue("size", fmt.Sprintf("%dx%d", a.Width, a.Height))
			printKeyValue("sprites", strconv.Itoa(len(a.Sprites)))
			printKeyValue("coverage", coverage(a))
			printNewline()
			fmt.Println(spriteTable(a.Sprites))
			return nil
		},
	}

	cmd.Flags().BoolVar(&retina, "retina", false, "show the retina atlas")
	cmd.ValidArgsFunction = manifestArgs
	return cmd
}

// coverage reports the share of the atlas covered by sprites.
func coverage(a *atlas.Atlas) string {
	if a.Width == 0 || a.Height == 0 {
		return "0%"
	}
	used := 0
	for _, s := range a.Sprites {
		used += s.Width * s.Height
	}
	return fmt.Sprintf("%.1f%%", 100*float64(used)/float64(a.Width*a.Height))
}

// spriteTable renders one row per sprite.
func spriteTable(sprites []atlas.Sprite) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	rows := make([][]string, len(sprites))
	for i, s := range sprites {
		rows[i] = []string{
			style.ClassName(s.Path, style.Options{}),
			strconv.Itoa(s.X),
			strconv.Itoa(s.Y),
			strconv.Itoa(s.Width),
			strconv.Itoa(s.Height),
			s.Path,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Class", "X", "Y", "Width", "Height", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col >= 1 && col <= 4:
				return numStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}
