package slide

import (
	"strings"
	"testing"
)

func TestDecodeSlideDefaults(t *testing.T) {
	doc := `{
		"canvas": {"width": 1080, "height": 1920},
		"backgroundLayers": [{"type": "color", "color": "#ffffff", "zIndex": 1}],
		"textBoxes": [{"text": "Hello World", "x": 0.1, "y": 0.4, "width": 0.8, "height": 0.2}]
	}`

	s, err := DecodeSlide(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSlide: %v", err)
	}

	l := s.BackgroundLayers[0]
	if l.Opacity != 1 {
		t.Errorf("layer opacity default = %g, want 1", l.Opacity)
	}
	if l.FitMode != FitCover {
		t.Errorf("layer fit mode default = %q, want cover", l.FitMode)
	}
	if l.BlendMode != BlendNormal {
		t.Errorf("layer blend mode default = %q, want normal", l.BlendMode)
	}
	if l.Width != 1 || l.Height != 1 {
		t.Errorf("layer size default = %gx%g, want 1x1", l.Width, l.Height)
	}

	b := s.TextBoxes[0]
	if b.FontSize != DefaultFontSize {
		t.Errorf("fontSize default = %g, want %g", b.FontSize, DefaultFontSize)
	}
	if b.FontFamily != DefaultFontFamily {
		t.Errorf("fontFamily default = %q, want %q", b.FontFamily, DefaultFontFamily)
	}
	if b.TextAlign != AlignLeft {
		t.Errorf("textAlign default = %q, want left", b.TextAlign)
	}
	if b.LineHeight != DefaultLineHeight {
		t.Errorf("lineHeight default = %g, want %g", b.LineHeight, DefaultLineHeight)
	}
	if b.TextWrap != WrapWords {
		t.Errorf("textWrap default = %q, want wrap", b.TextWrap)
	}
}

func TestDecodeLegacyBorderNormalization(t *testing.T) {
	doc := `{"text": "x", "width": 1, "height": 1, "borderWidth": 3, "borderColor": "#112233"}`

	var b TextBox
	if err := b.UnmarshalJSON([]byte(doc)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if b.OutlineWidth != 3 {
		t.Errorf("OutlineWidth = %g, want 3 (from legacy borderWidth)", b.OutlineWidth)
	}
	if b.OutlineColor != "#112233" {
		t.Errorf("OutlineColor = %q, want #112233", b.OutlineColor)
	}
}

func TestDecodeLegacyBorderDoesNotOverrideOutline(t *testing.T) {
	doc := `{"text": "x", "width": 1, "height": 1,
		"outlineWidth": 2, "outlineColor": "#ffffff",
		"borderWidth": 9, "borderColor": "#000000"}`

	var b TextBox
	if err := b.UnmarshalJSON([]byte(doc)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if b.OutlineWidth != 2 || b.OutlineColor != "#ffffff" {
		t.Errorf("structured outline should win: got %g %q", b.OutlineWidth, b.OutlineColor)
	}
}

func TestDecodeDeck(t *testing.T) {
	deck := `{"slides": [
		{"canvas": {"width": 1080, "height": 1920}, "backgroundLayers": [], "textBoxes": []},
		{"canvas": {"width": 1080, "height": 1080}, "backgroundLayers": [], "textBoxes": []}
	]}`

	d, err := DecodeDeck(strings.NewReader(deck))
	if err != nil {
		t.Fatalf("DecodeDeck: %v", err)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("len(Slides) = %d, want 2", len(d.Slides))
	}
}

func TestDecodeDeckAcceptsSingleSlide(t *testing.T) {
	doc := `{"canvas": {"width": 1080, "height": 1920}, "backgroundLayers": [], "textBoxes": []}`

	d, err := DecodeDeck(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeDeck: %v", err)
	}
	if len(d.Slides) != 1 {
		t.Fatalf("len(Slides) = %d, want 1", len(d.Slides))
	}
	if d.Slides[0].Canvas.Width != 1080 {
		t.Errorf("canvas width = %d", d.Slides[0].Canvas.Width)
	}
}

func TestHashDeterminism(t *testing.T) {
	doc := `{
		"canvas": {"width": 1080, "height": 1920},
		"backgroundLayers": [{"type": "color", "color": "#ffffff", "zIndex": 1}],
		"textBoxes": [{"text": "Hello", "x": 0.1, "y": 0.4, "width": 0.8, "height": 0.2}]
	}`

	s1, _ := DecodeSlide(strings.NewReader(doc))
	s2, _ := DecodeSlide(strings.NewReader(doc))
	if s1.Hash() != s2.Hash() {
		t.Error("identical documents should hash identically")
	}

	s2.TextBoxes[0].Text = "Changed"
	if s1.Hash() == s2.Hash() {
		t.Error("mutated document should hash differently")
	}
}
