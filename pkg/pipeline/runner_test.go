package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testRunner() *Runner {
	return NewRunner(cache.NewMemoryCache(), nil, nil, nil)
}

func colorSlide(hex string) *slide.Slide {
	return &slide.Slide{
		Canvas: slide.CanvasSize{Width: 200, Height: 200},
		BackgroundLayers: []slide.BackgroundLayer{{
			Type: slide.LayerColor, Color: hex,
			Width: 1, Height: 1, Opacity: 1,
			FitMode: slide.FitCover, BlendMode: slide.BlendNormal, ZIndex: 1,
		}},
	}
}

func TestRenderPNG(t *testing.T) {
	r := testRunner()
	res, err := r.Render(context.Background(), colorSlide("#FF0000"), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(res.Data, pngMagic) {
		t.Error("default format should produce PNG bytes")
	}
	if res.Width != 200 || res.Height != 200 {
		t.Errorf("size = %dx%d, want canvas 200x200", res.Width, res.Height)
	}
	if res.ID == "" || res.SlideHash == "" {
		t.Error("result should carry an ID and the slide hash")
	}
}

func TestRenderSVG(t *testing.T) {
	r := testRunner()
	res, err := r.Render(context.Background(), colorSlide("#FF0000"), Options{Format: FormatSVG})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(res.Data, []byte("<?xml")) {
		t.Errorf("svg output starts with %q", res.Data[:16])
	}
}

func TestRenderCacheRoundtrip(t *testing.T) {
	r := testRunner()
	sl := colorSlide("#00FF00")

	first, err := r.Render(context.Background(), sl, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first render cannot be a cache hit")
	}

	second, err := r.Render(context.Background(), sl, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("cached bytes differ from rendered bytes")
	}

	// Different output size is a different cache entry.
	resized, err := r.Render(context.Background(), sl, Options{Width: 100})
	if err != nil {
		t.Fatal(err)
	}
	if resized.CacheInfo.RenderHit {
		t.Error("different size must miss the cache")
	}

	// Refresh bypasses and overwrites.
	refreshed, err := r.Render(context.Background(), sl, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh must not hit the cache")
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	r := testRunner()

	_, err := r.Render(context.Background(), colorSlide("#FF0000"), Options{Format: "tiff"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("format error code = %s, want INVALID_FORMAT", errors.GetCode(err))
	}

	_, err = r.Render(context.Background(), colorSlide("#FF0000"), Options{JPEGQuality: 2})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("quality error code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestTargetSize(t *testing.T) {
	canvas := slide.CanvasSize{Width: 1080, Height: 1920}
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{0, 0, 1080, 1920},
		{540, 0, 540, 960},   // height follows aspect
		{0, 960, 540, 960},   // width follows aspect
		{640, 480, 640, 480}, // both explicit, aspect not enforced
	}
	for _, tt := range tests {
		o := Options{Width: tt.w, Height: tt.h}
		if w, h := o.TargetSize(canvas); w != tt.wantW || h != tt.wantH {
			t.Errorf("TargetSize(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestExportDeck(t *testing.T) {
	r := testRunner()
	deck := &slide.Deck{Slides: []slide.Slide{
		*colorSlide("#FF0000"),
		*colorSlide("#00FF00"),
		*colorSlide("#0000FF"),
	}}

	dir := t.TempDir()
	var progress atomic.Int32
	res, err := r.ExportDeck(context.Background(), deck, ExportOptions{
		Dir: dir,
		Progress: func(index, total int, err error) {
			progress.Add(1)
			if total != 3 {
				t.Errorf("progress total = %d, want 3", total)
			}
		},
	})
	if err != nil {
		t.Fatalf("ExportDeck: %v", err)
	}
	if res.Failed() {
		t.Fatalf("export failures: %v", res.Errors)
	}
	if progress.Load() != 3 {
		t.Errorf("progress fired %d times, want 3", progress.Load())
	}

	for i, want := range []string{"slide_001.png", "slide_002.png", "slide_003.png"} {
		if filepath.Base(res.Files[i]) != want {
			t.Errorf("file %d = %s, want %s", i, res.Files[i], want)
		}
		data, err := os.ReadFile(res.Files[i])
		if err != nil {
			t.Fatalf("read %s: %v", res.Files[i], err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG", res.Files[i])
		}
	}
}

func TestExportDeckCollectsPerSlideFailures(t *testing.T) {
	broken := colorSlide("#FF0000")
	broken.Canvas = slide.CanvasSize{Width: 10, Height: 10} // fails validation

	r := testRunner()
	deck := &slide.Deck{Slides: []slide.Slide{
		*colorSlide("#FF0000"),
		*broken,
		*colorSlide("#0000FF"),
	}}

	res, err := r.ExportDeck(context.Background(), deck, ExportOptions{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("one bad slide must not abort the export: %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(res.Errors), res.Errors)
	}
	if !errors.Is(res.Errors[1], errors.ErrCodeInvalidSlide) {
		t.Errorf("slide 1 error = %v, want INVALID_SLIDE", res.Errors[1])
	}
	if res.Files[0] == "" || res.Files[2] == "" {
		t.Error("healthy slides should still export")
	}
}

func TestThumbnailer(t *testing.T) {
	r := testRunner()
	tn := NewThumbnailer(r, 64)
	sl := colorSlide("#123456")

	url, err := tn.DataURL(context.Background(), sl)
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if url[:len(prefix)] != prefix {
		t.Errorf("data URL prefix = %q", url[:len(prefix)])
	}
	if tn.Len() != 1 {
		t.Errorf("memo size = %d, want 1", tn.Len())
	}

	again, err := tn.DataURL(context.Background(), sl)
	if err != nil {
		t.Fatal(err)
	}
	if again != url {
		t.Error("memoized thumbnail should be identical")
	}

	tn.Evict(context.Background(), sl)
	if tn.Len() != 0 {
		t.Errorf("memo size after evict = %d, want 0", tn.Len())
	}
}
