package svg

import (
	"context"
	"strings"
	"testing"

	"github.com/KudcraftsHQ/slidekit/pkg/render"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

func renderDoc(t *testing.T, sl *slide.Slide) string {
	t.Helper()
	s := New(400, 400)
	e := render.NewEngine(render.Options{})
	if _, err := e.Render(context.Background(), s, sl, render.RenderOptions{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(s.Bytes())
}

func baseSlide() *slide.Slide {
	return &slide.Slide{
		Canvas: slide.CanvasSize{Width: 400, Height: 400},
		BackgroundLayers: []slide.BackgroundLayer{{
			Type: slide.LayerColor, Color: "#112233",
			Width: 1, Height: 1, Opacity: 1,
			FitMode: slide.FitCover, BlendMode: slide.BlendNormal, ZIndex: 1,
		}},
	}
}

func TestDocumentShape(t *testing.T) {
	doc := renderDoc(t, baseSlide())

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 400 400"`,
		`fill:#112233`,
		`</svg>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestGradientDefAndReference(t *testing.T) {
	sl := baseSlide()
	sl.BackgroundLayers = []slide.BackgroundLayer{{
		Type: slide.LayerGradient,
		Gradient: &slide.Gradient{
			Type:   slide.GradientLinear,
			Colors: []string{"#FF0000", "#0000FF"},
			Angle:  90,
		},
		Width: 1, Height: 1, Opacity: 1,
		FitMode: slide.FitCover, BlendMode: slide.BlendNormal, ZIndex: 1,
	}}
	doc := renderDoc(t, sl)

	if !strings.Contains(doc, "<linearGradient id=\"grad1\"") {
		t.Error("missing linearGradient def")
	}
	if !strings.Contains(doc, `fill="url(#grad1)"`) {
		t.Error("rect does not reference the gradient")
	}
	// The defs block must precede the body so references resolve on
	// streaming renderers.
	if strings.Index(doc, "<linearGradient") > strings.Index(doc, "url(#grad1)") {
		t.Error("gradient def appears after its use")
	}
}

func TestTextEmbedsFont(t *testing.T) {
	sl := baseSlide()
	sl.TextBoxes = []slide.TextBox{{
		X: 0.1, Y: 0.4, Width: 0.8, Height: 0.2,
		Text:     "Embedded",
		FontSize: 32, FontFamily: "Svg Test Sans", // offline fallback
		Color: "#FFFFFF", TextAlign: slide.AlignCenter,
		LineHeight: 1.2, TextWrap: slide.WrapWords, ZIndex: 1,
	}}
	doc := renderDoc(t, sl)

	if !strings.Contains(doc, "@font-face{font-family:'slidekit-font-0'") {
		t.Error("missing @font-face for the text's font")
	}
	if !strings.Contains(doc, "data:font/ttf;base64,") {
		t.Error("font data not embedded")
	}
	if !strings.Contains(doc, ">Embedded</text>") {
		t.Error("missing text element")
	}
	if !strings.Contains(doc, "font-family:'slidekit-font-0'") {
		t.Error("text does not use the embedded family")
	}
}

func TestShadowFilter(t *testing.T) {
	sl := baseSlide()
	sl.TextBoxes = []slide.TextBox{{
		X: 0.1, Y: 0.4, Width: 0.8, Height: 0.2,
		Text:     "Shadowed",
		FontSize: 32, FontFamily: "Svg Test Sans",
		Color: "#FFFFFF", TextAlign: slide.AlignLeft,
		LineHeight: 1.2, TextWrap: slide.WrapWords, ZIndex: 1,
		EnableShadow: true, ShadowColor: "#000000",
		ShadowOffsetX: 2, ShadowOffsetY: 2, ShadowBlur: 4,
	}}
	doc := renderDoc(t, sl)

	if !strings.Contains(doc, "<feDropShadow") {
		t.Error("missing feDropShadow filter")
	}
	if !strings.Contains(doc, `filter="url(#shadow`) {
		t.Error("text does not reference the shadow filter")
	}
}

func TestOutlineStrokePrecedesFill(t *testing.T) {
	sl := baseSlide()
	sl.TextBoxes = []slide.TextBox{{
		X: 0.1, Y: 0.4, Width: 0.8, Height: 0.2,
		Text:     "Outlined",
		FontSize: 32, FontFamily: "Svg Test Sans",
		Color: "#FFFFFF", TextAlign: slide.AlignLeft,
		LineHeight: 1.2, TextWrap: slide.WrapWords, ZIndex: 1,
		OutlineWidth: 3, OutlineColor: "#FF0000",
	}}
	doc := renderDoc(t, sl)

	stroke := strings.Index(doc, "stroke:#ff0000")
	fill := strings.Index(doc, "fill:#ffffff")
	if stroke < 0 || fill < 0 {
		t.Fatal("missing stroke or fill text pass")
	}
	if stroke > fill {
		t.Error("outline pass must precede the fill pass")
	}
	// CSS outline width doubles into the SVG stroke width.
	if !strings.Contains(doc, `stroke-width:6.0000`) {
		t.Error("stroke width should be twice the outline width")
	}
}

func TestBlendModeStyle(t *testing.T) {
	sl := baseSlide()
	over := sl.BackgroundLayers[0]
	over.Color = "#FF0000"
	over.BlendMode = slide.BlendMultiply
	over.ZIndex = 2
	sl.BackgroundLayers = append(sl.BackgroundLayers, over)

	doc := renderDoc(t, sl)
	if !strings.Contains(doc, "mix-blend-mode:multiply") {
		t.Error("missing mix-blend-mode style")
	}
}

func TestRasterizeGeometry(t *testing.T) {
	doc := []byte(renderDoc(t, baseSlide()))

	img, err := Rasterize(doc, 100, 100)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	r, g, b, _ := img.At(50, 50).RGBA()
	if r>>8 != 0x11 || g>>8 != 0x22 || b>>8 != 0x33 {
		t.Errorf("center pixel = %02x%02x%02x, want 112233", r>>8, g>>8, b>>8)
	}
}
