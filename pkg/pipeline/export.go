package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// ExportOptions configure a batch deck export.
type ExportOptions struct {
	Options

	// Dir is the output directory, created if missing.
	Dir string

	// BaseName prefixes the output files: <base>_001.png and so on.
	// Defaults to "slide".
	BaseName string

	// Concurrency bounds parallel slide renders. Zero means NumCPU.
	Concurrency int

	// Progress, when set, is called after each slide finishes, from the
	// rendering goroutines. index is zero-based.
	Progress func(index, total int, err error)
}

// ExportResult reports a batch export. Slides fail independently: one
// broken slide never aborts its siblings.
type ExportResult struct {
	// Files holds the written paths, indexed by slide position. A
	// failed slide leaves an empty entry.
	Files []string

	// Errors maps slide positions to their render failures.
	Errors map[int]error

	Duration time.Duration
}

// Failed reports whether any slide failed.
func (r *ExportResult) Failed() bool { return len(r.Errors) > 0 }

// ExportDeck renders every slide of a deck to files in opts.Dir.
//
// Slides render in parallel, bounded by opts.Concurrency. The returned
// error covers setup problems only; per-slide failures land in
// ExportResult.Errors.
func (r *Runner) ExportDeck(ctx context.Context, deck *slide.Deck, opts ExportOptions) (*ExportResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(deck.Slides) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "deck has no slides")
	}
	if opts.BaseName == "" {
		opts.BaseName = "slide"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", opts.Dir)
	}

	start := time.Now()
	total := len(deck.Slides)
	result := &ExportResult{
		Files:  make([]string, total),
		Errors: make(map[int]error),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range deck.Slides {
		i := i
		g.Go(func() error {
			res, err := r.exportSlide(ctx, &deck.Slides[i], i, opts)

			mu.Lock()
			if err != nil {
				result.Errors[i] = err
			} else {
				result.Files[i] = res
			}
			mu.Unlock()

			if opts.Progress != nil {
				opts.Progress(i, total, err)
			}
			// Per-slide failures are collected, not propagated, so the
			// group only stops on context cancellation.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	r.Logger.Info("exported deck",
		"slides", total,
		"failed", len(result.Errors),
		"dir", opts.Dir,
		"duration", result.Duration)
	return result, nil
}

func (r *Runner) exportSlide(ctx context.Context, sl *slide.Slide, index int, opts ExportOptions) (string, error) {
	res, err := r.Render(ctx, sl, opts.Options)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%03d%s", opts.BaseName, index+1, FormatExt(opts.Format))
	path := filepath.Join(opts.Dir, name)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return path, nil
}
