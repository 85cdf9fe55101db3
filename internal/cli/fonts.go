package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// fontsCommand creates the fonts command group.
func (c *CLI) fontsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List, prefetch, and locate font assets",
	}

	cmd.AddCommand(c.fontsListCommand())
	cmd.AddCommand(c.fontsFetchCommand())
	cmd.AddCommand(c.fontsDirCommand())

	return cmd
}

// fontsListCommand creates the "fonts list" subcommand.
func (c *CLI) fontsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered font families",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(true)
			if err != nil {
				return err
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := [][]string{}
			for _, fam := range engine.Fonts().Families() {
				kind := "sans"
				if fam.Serif {
					kind = "serif"
				}
				variants := make([]string, 0, len(fam.Variants))
				for v := range fam.Variants {
					variants = append(variants, v.String())
				}
				sort.Strings(variants)
				rows = append(rows, []string{fam.Name, kind, strings.Join(variants, ", ")})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Family", "Kind", "Variants").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

// fontsFetchCommand creates the "fonts fetch" subcommand, warming the
// disk cache for the given families (400 and 700 weights).
func (c *CLI) fontsFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <family>...",
		Short: "Download font families into the disk cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := c.newEngine(false)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "Fetching "+strings.Join(args, ", "))
			spin.Start()
			engine.Fonts().Prefetch(ctx, args...)
			spin.StopWithSuccess(fmt.Sprintf("Fetched %d families", len(args)))
			return nil
		},
	}
}

// fontsDirCommand creates the "fonts dir" subcommand.
func (c *CLI) fontsDirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the font cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(filepath.Join(dir, "fonts"))
			return nil
		},
	}
}
