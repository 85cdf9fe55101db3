package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
)

// thumbnailCommand creates the thumbnail command, printing a slide as a
// PNG data URL for embedding in editor sidebars.
func (c *CLI) thumbnailCommand() *cobra.Command {
	var width, slideIndex int

	cmd := &cobra.Command{
		Use:   "thumbnail <slide.json|deck.json>",
		Short: "Print a slide thumbnail as a PNG data URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sl, err := loadSlide(args[0], slideIndex)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			url, err := pipeline.NewThumbnailer(runner, width).DataURL(ctx, sl)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "thumbnail width in pixels (default 256)")
	cmd.Flags().IntVar(&slideIndex, "slide", 1, "slide to render from a deck (1-based)")

	return cmd
}
