package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Thumbnailer produces small data-URL previews of slides for editor
// sidebars, memoized in process memory. The memo keys on the slide
// content hash, so an edited slide naturally gets a fresh thumbnail
// while the stale entry ages out via Evict.
type Thumbnailer struct {
	runner *Runner
	memo   *cache.MemoryCache
	width  int
}

// NewThumbnailer creates a thumbnailer rendering at the given pixel
// width; zero means DefaultThumbnailWidth.
func NewThumbnailer(runner *Runner, width int) *Thumbnailer {
	if width <= 0 {
		width = DefaultThumbnailWidth
	}
	return &Thumbnailer{
		runner: runner,
		memo:   cache.NewMemoryCache(),
		width:  width,
	}
}

// DataURL renders (or recalls) a slide thumbnail as a PNG data URL.
func (t *Thumbnailer) DataURL(ctx context.Context, sl *slide.Slide) (string, error) {
	key := t.key(sl)
	if data, ok, _ := t.memo.Get(ctx, key); ok {
		return string(data), nil
	}

	res, err := t.runner.Render(ctx, sl, Options{Width: t.width, Format: FormatPNG})
	if err != nil {
		return "", err
	}

	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(res.Data)
	_ = t.memo.Set(ctx, key, []byte(url), 0)
	return url, nil
}

// Evict drops the memoized thumbnail for one slide.
func (t *Thumbnailer) Evict(ctx context.Context, sl *slide.Slide) {
	_ = t.memo.Delete(ctx, t.key(sl))
}

// EvictAll drops every memoized thumbnail.
func (t *Thumbnailer) EvictAll() {
	t.memo.Clear()
}

// Len reports the number of memoized thumbnails.
func (t *Thumbnailer) Len() int { return t.memo.Len() }

func (t *Thumbnailer) key(sl *slide.Slide) string {
	return fmt.Sprintf("thumb:%s:%d", sl.Hash(), t.width)
}
