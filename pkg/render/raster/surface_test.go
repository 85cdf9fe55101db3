package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/render"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

func renderSlide(t *testing.T, sl *slide.Slide, w, h int) *Surface {
	t.Helper()
	faces := fonts.NewFaceCache()
	s := New(w, h, faces)
	e := render.NewEngine(render.Options{Faces: faces})
	if _, err := e.Render(context.Background(), s, sl, render.RenderOptions{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return s
}

func baseSlide(layers ...slide.BackgroundLayer) *slide.Slide {
	return &slide.Slide{
		Canvas:           slide.CanvasSize{Width: 200, Height: 200},
		BackgroundLayers: layers,
	}
}

func solid(hex string, z int) slide.BackgroundLayer {
	return slide.BackgroundLayer{
		Type: slide.LayerColor, Color: hex,
		Width: 1, Height: 1, Opacity: 1,
		FitMode: slide.FitCover, BlendMode: slide.BlendNormal, ZIndex: z,
	}
}

func TestSolidFill(t *testing.T) {
	s := renderSlide(t, baseSlide(solid("#FF0000", 1)), 200, 200)

	r, g, b, _ := s.Image().At(100, 100).RGBA()
	if r>>8 != 0xFF || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("center pixel = %x %x %x, want pure red", r>>8, g>>8, b>>8)
	}
}

func TestStackingWinner(t *testing.T) {
	// Higher z-index paints last regardless of document order.
	s := renderSlide(t, baseSlide(solid("#FF0000", 2), solid("#0000FF", 1)), 200, 200)

	r, _, b, _ := s.Image().At(100, 100).RGBA()
	if r>>8 != 0xFF || b>>8 != 0 {
		t.Errorf("pixel = r%x b%x, want red on top", r>>8, b>>8)
	}
}

func TestOpacityBlendsWithBackdrop(t *testing.T) {
	over := solid("#FF0000", 2)
	over.Opacity = 0.5
	s := renderSlide(t, baseSlide(solid("#FFFFFF", 1), over), 200, 200)

	r, g, _, _ := s.Image().At(100, 100).RGBA()
	if r>>8 != 0xFF {
		t.Errorf("red channel = %x, want ff", r>>8)
	}
	// Half red over white leaves green around 0x7f.
	if g>>8 < 0x70 || g>>8 > 0x90 {
		t.Errorf("green channel = %x, want ~7f-80", g>>8)
	}
}

func TestLinearGradientVertical(t *testing.T) {
	grad := slide.BackgroundLayer{
		Type: slide.LayerGradient,
		Gradient: &slide.Gradient{
			Type:   slide.GradientLinear,
			Colors: []string{"#FF0000", "#0000FF"},
			Angle:  90,
		},
		Width: 1, Height: 1, Opacity: 1,
		FitMode: slide.FitCover, BlendMode: slide.BlendNormal, ZIndex: 1,
	}
	s := renderSlide(t, baseSlide(grad), 200, 200)

	tr, _, tb, _ := s.Image().At(100, 2).RGBA()
	if tr <= tb {
		t.Errorf("top pixel r=%x b=%x, want red dominant", tr>>8, tb>>8)
	}
	br, _, bb, _ := s.Image().At(100, 197).RGBA()
	if bb <= br {
		t.Errorf("bottom pixel r=%x b=%x, want blue dominant", br>>8, bb>>8)
	}
}

func TestMultiplyBlend(t *testing.T) {
	over := solid("#808080", 2)
	over.BlendMode = slide.BlendMultiply
	s := renderSlide(t, baseSlide(solid("#FFFFFF", 1), over), 200, 200)

	// White multiplied by mid-gray stays mid-gray.
	r, _, _, _ := s.Image().At(100, 100).RGBA()
	if r>>8 < 0x70 || r>>8 > 0x90 {
		t.Errorf("multiplied pixel r = %x, want ~80", r>>8)
	}
}

func TestTextLeavesInk(t *testing.T) {
	sl := baseSlide(solid("#FFFFFF", 1))
	sl.TextBoxes = []slide.TextBox{{
		X: 0.05, Y: 0.3, Width: 0.9, Height: 0.4,
		Text:     "INK",
		FontSize: 48, FontFamily: "Raster Test Sans", // unregistered, offline fallback
		Color: "#000000", TextAlign: slide.AlignCenter,
		LineHeight: 1.2, TextWrap: slide.WrapWords, ZIndex: 1,
	}}
	s := renderSlide(t, sl, 200, 200)

	dark := 0
	im := s.Image()
	for y := 60; y < 140; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := im.At(x, y).RGBA(); r>>8 < 0x40 {
				dark++
			}
		}
	}
	if dark < 50 {
		t.Errorf("found %d dark pixels in the text band, want glyph coverage", dark)
	}
}

func TestClipRestrictsDrawing(t *testing.T) {
	s := New(100, 100, fonts.NewFaceCache())

	s.Push()
	s.Clip(layout.Rect{X: 0, Y: 0, W: 50, H: 100})
	s.FillRect(layout.Rect{X: 0, Y: 0, W: 100, H: 100}, color.NRGBA{R: 0xFF, A: 0xFF})
	s.Pop()

	if r, _, _, _ := s.Image().At(25, 50).RGBA(); r>>8 != 0xFF {
		t.Error("pixel inside clip should be painted")
	}
	if _, _, _, a := s.Image().At(75, 50).RGBA(); a != 0 {
		t.Error("pixel outside clip should be untouched")
	}

	// The clip dies with its Pop.
	s.FillRect(layout.Rect{X: 0, Y: 0, W: 100, H: 100}, color.NRGBA{B: 0xFF, A: 0xFF})
	if _, _, b, _ := s.Image().At(75, 50).RGBA(); b>>8 != 0xFF {
		t.Error("clip leaked past Pop")
	}
}

func TestEncodeFormats(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 10, 10))

	var png bytes.Buffer
	if err := Encode(&png, im, "png", 0); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if png.Len() == 0 {
		t.Error("png output is empty")
	}

	var jpg bytes.Buffer
	if err := Encode(&jpg, im, "jpeg", 0.8); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}

	err := Encode(&bytes.Buffer{}, im, "tiff", 0)
	if err == nil {
		t.Fatal("unknown format should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %s, want INVALID_FORMAT", errors.GetCode(err))
	}
}
