package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output        string
	format        string
	width         int
	height        int
	jpegQuality   float64
	applyViewport bool
	baseName      string
	concurrency   int
	noTUI         bool
	noCache       bool
	refresh       bool
}

// exportCommand creates the export command for batch-rendering a deck.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <deck.json>",
		Short: "Render every slide of a deck into a directory",
		Long: `Render every slide of a deck into a directory.

Slides render in parallel and fail independently: a broken slide is
reported but never aborts its siblings. On an interactive terminal a
progress display is shown; pipe the output or pass --no-tui for plain
log lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg, svg")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width in pixels (default: canvas width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height in pixels (default: canvas height)")
	cmd.Flags().Float64Var(&opts.jpegQuality, "jpeg-quality", 0, "JPEG quality 0..1 (default from config)")
	cmd.Flags().BoolVar(&opts.applyViewport, "apply-viewport", false, "bake preview viewports into the output")
	cmd.Flags().StringVar(&opts.baseName, "base-name", "", "output file prefix (default: slide)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parallel renders (default from config, then NumCPU)")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "plain log output instead of the progress display")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable all caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	ctx := cmd.Context()

	deck, err := loadDeck(input)
	if err != nil {
		return err
	}

	quality := opts.jpegQuality
	if quality == 0 {
		quality = c.Config.JPEGQuality
	}
	concurrency := opts.concurrency
	if concurrency == 0 {
		concurrency = c.Config.ExportConcurrency
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	batchOpts := pipeline.ExportOptions{
		Options: pipeline.Options{
			Width:         opts.width,
			Height:        opts.height,
			Format:        opts.format,
			JPEGQuality:   quality,
			ApplyViewport: opts.applyViewport,
			Refresh:       opts.refresh,
			Logger:        c.Logger,
		},
		Dir:         opts.output,
		BaseName:    opts.baseName,
		Concurrency: concurrency,
	}

	var res *pipeline.ExportResult
	if opts.noTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		res, err = c.exportPlain(ctx, runner, deck, batchOpts)
	} else {
		res, err = c.exportTUI(ctx, runner, deck, batchOpts)
	}
	if err != nil {
		return err
	}

	printExportSummary(res, opts.output)
	if res.Failed() {
		return errors.New(errors.ErrCodeInternal, "%d of %d slides failed", len(res.Errors), len(deck.Slides))
	}
	return nil
}

// exportPlain runs the export with per-slide log lines.
func (c *CLI) exportPlain(ctx context.Context, runner *pipeline.Runner, deck *slide.Deck, opts pipeline.ExportOptions) (*pipeline.ExportResult, error) {
	p := newProgress(c.Logger)
	opts.Progress = func(index, total int, err error) {
		if err != nil {
			c.Logger.Error("slide failed", "slide", index+1, "total", total, "error", err)
			return
		}
		c.Logger.Info("slide done", "slide", index+1, "total", total)
	}

	res, err := runner.ExportDeck(ctx, deck, opts)
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("Exported %d slides", len(deck.Slides)-len(res.Errors)))
	return res, nil
}

// exportTUI runs the export behind a bubbletea progress display.
func (c *CLI) exportTUI(ctx context.Context, runner *pipeline.Runner, deck *slide.Deck, opts pipeline.ExportOptions) (*pipeline.ExportResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewExportModel(len(deck.Slides), cancel)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	opts.Progress = func(index, total int, err error) {
		prog.Send(slideDoneMsg{index: index, err: err})
	}

	go func() {
		res, err := runner.ExportDeck(ctx, deck, opts)
		prog.Send(exportDoneMsg{result: res, err: err})
	}()

	final, err := prog.Run()
	if err != nil {
		cancel()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "progress display failed")
	}

	m := final.(*ExportModel)
	if m.Result == nil || m.Result.Cancelled {
		return nil, errors.New(errors.ErrCodeInternal, "export cancelled")
	}
	return m.Result.Result, m.Result.Err
}

// printExportSummary prints a per-slide table of written files and errors.
func printExportSummary(res *pipeline.ExportResult, dir string) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(res.Files))
	for i, file := range res.Files {
		status := StyleSuccess.Render(iconSuccess)
		detail := filepath.Base(file)
		if err, failed := res.Errors[i]; failed {
			status = lipgloss.NewStyle().Foreground(colorRed).Render(iconError)
			detail = errors.UserMessage(err)
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), status, detail})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "", "Output").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printDetail("Directory: %s · %s", dir, res.Duration.Round(10*time.Millisecond))
}
