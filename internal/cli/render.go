package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string  // output file path; derived from the input when empty
	format        string  // output format: png, jpeg, svg
	width         int     // output width in pixels (0 = canvas width)
	height        int     // output height in pixels (0 = canvas height)
	jpegQuality   float64 // JPEG quality fraction (0..1)
	applyViewport bool    // bake the preview viewport into the output
	slideIndex    int     // 1-based slide to pick from a deck file
	refresh       bool    // bypass the render cache
	noCache       bool    // disable caching entirely
}

// renderCommand creates the render command for generating a single slide image.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <slide.json|deck.json>",
		Short: "Render a slide document to PNG, JPEG, or SVG",
		Long: `Render a slide document to an image file.

The input may be a single slide document or a deck; for decks, --slide
selects which slide to render (1-based, default 1). The output format is
taken from --format, or inferred from the output file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg, svg")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width in pixels (default: canvas width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height in pixels (default: canvas height)")
	cmd.Flags().Float64Var(&opts.jpegQuality, "jpeg-quality", 0, "JPEG quality 0..1 (default from config)")
	cmd.Flags().BoolVar(&opts.applyViewport, "apply-viewport", false, "bake the preview viewport into the output")
	cmd.Flags().IntVar(&opts.slideIndex, "slide", 1, "slide to render from a deck (1-based)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable all caching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	sl, err := loadSlide(input, opts.slideIndex)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = formatFromPath(opts.output)
	}
	quality := opts.jpegQuality
	if quality == 0 {
		quality = c.Config.JPEGQuality
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Width:         opts.width,
		Height:        opts.height,
		Format:        format,
		JPEGQuality:   quality,
		ApplyViewport: opts.applyViewport,
		Refresh:       opts.refresh,
		Logger:        c.Logger,
	}

	spin := newSpinner(ctx, "Rendering "+filepath.Base(input))
	spin.Start()
	res, err := runner.Render(ctx, sl, pipeOpts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Render failed: %s", errors.UserMessage(err)))
		return err
	}
	spin.Stop()

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + pipeline.FormatExt(res.Format)
	}
	if err := os.WriteFile(output, res.Data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printFile(output)
	printRenderStats(res.Width, res.Height, len(res.Data), res.CacheInfo.RenderHit)
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// loadSlide reads a slide or deck file and picks one slide from it.
func loadSlide(path string, index int) (*slide.Slide, error) {
	deck, err := loadDeck(path)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(deck.Slides) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"slide %d out of range: deck has %d slides", index, len(deck.Slides))
	}
	return &deck.Slides[index-1], nil
}

// loadDeck reads a deck file; a single slide document loads as a
// one-slide deck.
func loadDeck(path string) (*slide.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return slide.DecodeDeck(f)
}

// formatFromPath infers an output format from a file extension. An
// unknown or empty extension yields "" so the pipeline default applies.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return pipeline.FormatPNG
	case ".jpg", ".jpeg":
		return pipeline.FormatJPEG
	case ".svg":
		return pipeline.FormatSVG
	}
	return ""
}
