package layout

import (
	"math"
	"testing"

	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolve(t *testing.T) {
	canvas := slide.CanvasSize{Width: 1080, Height: 1920}

	r := Resolve(0.1, 0.4, 0.8, 0.2, canvas)
	if !almostEqual(r.X, 108) || !almostEqual(r.Y, 768) {
		t.Errorf("position = (%g,%g), want (108,768)", r.X, r.Y)
	}
	if !almostEqual(r.W, 864) || !almostEqual(r.H, 384) {
		t.Errorf("size = %gx%g, want 864x384", r.W, r.H)
	}
}

func TestResolveDegenerate(t *testing.T) {
	canvas := slide.CanvasSize{Width: 1080, Height: 1920}

	r := Resolve(0.5, 0.5, 0, 0, canvas)
	if !r.Empty() {
		t.Errorf("zero-size box should resolve to empty rect, got %+v", r)
	}

	// Negative sizes clamp to zero instead of producing inverted rects.
	r = Resolve(0, 0, -1, 0.5, canvas)
	if r.W != 0 {
		t.Errorf("negative width should clamp to 0, got %g", r.W)
	}
}

func TestPlaceImageCoverVsContain(t *testing.T) {
	// 2:1 image in a 1:1 box.
	box := Rect{X: 0, Y: 0, W: 400, H: 400}

	cover := PlaceImage(200, 100, box, slide.FitCover, 0.5, 0.5, 1)
	if !almostEqual(cover.H, 400) {
		t.Errorf("cover height = %g, want box height 400", cover.H)
	}
	if cover.W <= box.W {
		t.Errorf("cover width = %g, should overflow the box (cropped)", cover.W)
	}
	if !almostEqual(cover.W, 800) {
		t.Errorf("cover width = %g, want 800", cover.W)
	}

	contain := PlaceImage(200, 100, box, slide.FitContain, 0.5, 0.5, 1)
	if !almostEqual(contain.W, 400) {
		t.Errorf("contain width = %g, want box width 400", contain.W)
	}
	if contain.H >= box.H {
		t.Errorf("contain height = %g, should underfill the box", contain.H)
	}
	if !almostEqual(contain.H, 200) {
		t.Errorf("contain height = %g, want 200", contain.H)
	}
}

func TestPlaceImageFillStretches(t *testing.T) {
	box := Rect{W: 300, H: 100}
	r := PlaceImage(50, 50, box, slide.FitFill, 0, 0, 1)
	if !almostEqual(r.W, 300) || !almostEqual(r.H, 100) {
		t.Errorf("fill = %gx%g, want 300x100", r.W, r.H)
	}
}

func TestPlaceImageFitAxis(t *testing.T) {
	box := Rect{W: 400, H: 400}

	fw := PlaceImage(200, 100, box, slide.FitWidth, 0, 0, 1)
	if !almostEqual(fw.W, 400) || !almostEqual(fw.H, 200) {
		t.Errorf("fit-width = %gx%g, want 400x200", fw.W, fw.H)
	}

	fh := PlaceImage(200, 100, box, slide.FitHeight, 0, 0, 1)
	if !almostEqual(fh.H, 400) || !almostEqual(fh.W, 800) {
		t.Errorf("fit-height = %gx%g, want 800x400", fh.W, fh.H)
	}
}

func TestPlaceImageAnchors(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 400, H: 400}

	// contain leaves vertical slack of 200px; anchor 0 pins top, 1 pins bottom.
	top := PlaceImage(200, 100, box, slide.FitContain, 0.5, 0, 1)
	if !almostEqual(top.Y, 0) {
		t.Errorf("anchorY=0 should pin top, got y=%g", top.Y)
	}
	bottom := PlaceImage(200, 100, box, slide.FitContain, 0.5, 1, 1)
	if !almostEqual(bottom.Y, 200) {
		t.Errorf("anchorY=1 should pin bottom, got y=%g", bottom.Y)
	}
	center := PlaceImage(200, 100, box, slide.FitContain, 0.5, 0.5, 1)
	if !almostEqual(center.Y, 100) {
		t.Errorf("anchorY=0.5 should center, got y=%g", center.Y)
	}
}

func TestPlaceImageZoom(t *testing.T) {
	box := Rect{W: 400, H: 400}

	r := PlaceImage(100, 100, box, slide.FitContain, 0.5, 0.5, 2)
	if !almostEqual(r.W, 800) || !almostEqual(r.H, 800) {
		t.Errorf("zoom 2 = %gx%g, want 800x800", r.W, r.H)
	}
	// Zoomed image overflows symmetrically when centered.
	if !almostEqual(r.X, -200) || !almostEqual(r.Y, -200) {
		t.Errorf("zoom 2 centered at (%g,%g), want (-200,-200)", r.X, r.Y)
	}
}

func TestPlaceImageDegenerate(t *testing.T) {
	box := Rect{X: 10, Y: 20, W: 100, H: 100}

	// Zero-size image must not divide by zero.
	r := PlaceImage(0, 0, box, slide.FitCover, 0.5, 0.5, 1)
	if !r.Empty() {
		t.Errorf("zero-size image should produce empty rect, got %+v", r)
	}

	r = PlaceImage(100, 100, Rect{}, slide.FitCover, 0.5, 0.5, 1)
	if !r.Empty() {
		t.Errorf("empty box should produce empty rect, got %+v", r)
	}
}

func TestApplyViewport(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 200, H: 200}

	out := ApplyViewport(r, slide.Viewport{Zoom: 2, OffsetX: 10, OffsetY: -20})
	if !almostEqual(out.X, 210) || !almostEqual(out.Y, 180) {
		t.Errorf("viewport position = (%g,%g), want (210,180)", out.X, out.Y)
	}
	if !almostEqual(out.W, 400) || !almostEqual(out.H, 400) {
		t.Errorf("viewport size = %gx%g, want 400x400", out.W, out.H)
	}

	// Zero zoom is treated as identity scale.
	out = ApplyViewport(r, slide.Viewport{})
	if !almostEqual(out.W, 200) {
		t.Errorf("zero zoom should keep size, got %g", out.W)
	}
}
