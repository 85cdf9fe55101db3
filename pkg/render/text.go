package render

import (
	"context"
	"sort"

	"golang.org/x/image/font"

	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// spacingMeasurer measures text with letter and word spacing applied, so
// the widths that drive wrapping match the widths the surface will draw.
type spacingMeasurer struct {
	face   font.Face
	letter float64
	word   float64
}

func (m spacingMeasurer) MeasureWidth(s string) float64 {
	w := fonts.MeasureString(m.face, s)
	runes := []rune(s)
	if len(runes) > 1 {
		w += m.letter * float64(len(runes)-1)
	}
	if m.word != 0 {
		for _, r := range runes {
			if r == ' ' {
				w += m.word
			}
		}
	}
	return w
}

// drawTextBoxes paints text boxes in ascending z-index order, above the
// whole background stack. A font resolution failure aborts the render;
// silently swapping typography would produce a wrong-looking export.
func (e *Engine) drawTextBoxes(ctx context.Context, s Surface, sl *slide.Slide, f frame) error {
	boxes := make([]*slide.TextBox, len(sl.TextBoxes))
	for i := range sl.TextBoxes {
		boxes[i] = &sl.TextBoxes[i]
	}
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].ZIndex < boxes[j].ZIndex })

	for _, b := range boxes {
		if err := e.drawTextBox(ctx, s, b, f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) drawTextBox(ctx context.Context, s Surface, b *slide.TextBox, f frame) error {
	if b.Text == "" {
		return nil
	}

	weight, _ := slide.ParseFontWeight(b.FontWeight)
	asset, err := e.fonts.Resolve(ctx, b.FontFamily, weight, b.Italic())
	if err != nil {
		return err
	}

	size := f.px(b.FontSize)
	measureFace, err := e.faces.MeasureFace(asset, size)
	if err != nil {
		return err
	}

	m := spacingMeasurer{
		face:   measureFace,
		letter: f.px(b.LetterSpacing),
		word:   f.px(b.WordSpacing),
	}

	rect := f.apply(layout.ResolveTextBox(b, f.target))
	padTop := f.px(b.Padding.Top)
	padRight := f.px(b.Padding.Right)
	padBottom := f.px(b.Padding.Bottom)
	padLeft := f.px(b.Padding.Left)

	interior := rect.W - padLeft - padRight
	if interior < 0 {
		interior = 0
	}

	lines := layout.Wrap(m, b.Text, interior, b.TextWrap)
	lineHeight := size * b.LineHeight
	blockTop := layout.BlockTop(rect, padTop, padBottom,
		layout.BlockHeight(len(lines), size, b.LineHeight))

	// Baseline placement centers the face's ascent+descent extent inside
	// each line box, so line boxes stack at exactly lineHeight.
	metrics := measureFace.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64

	style := TextStyle{
		Asset:         asset,
		Size:          size,
		Color:         slide.MustParseHexColor(b.Color),
		LetterSpacing: m.letter,
		WordSpacing:   m.word,
	}

	s.Push()
	defer s.Pop()

	for i, line := range lines {
		if line == "" {
			continue
		}

		lineTop := blockTop + float64(i)*lineHeight
		baseline := lineTop + (lineHeight-(ascent+descent))/2 + ascent
		lineWidth := m.MeasureWidth(line)
		x := layout.LineX(b.TextAlign, rect, padLeft, padRight, lineWidth)

		e.drawLine(s, b, f, line, x, baseline, lineTop, lineWidth, lineHeight, style)
	}
	return nil
}

// drawLine paints one line's effects in fixed order: blob backdrop,
// shadow, outline, fill. The shadow arms before the stroke pass so both
// stroke and fill cast it.
func (e *Engine) drawLine(s Surface, b *slide.TextBox, f frame, line string, x, baseline, lineTop, lineWidth, lineHeight float64, style TextStyle) {
	if b.EnableBlobBackground {
		spread := f.px(b.BlobSpread)
		blob := layout.Rect{
			X: x - spread,
			Y: lineTop - spread,
			W: lineWidth + 2*spread,
			H: lineHeight + 2*spread,
		}
		opacity := b.BlobOpacity
		if opacity <= 0 {
			opacity = 1
		}
		c := slide.WithAlpha(slide.MustParseHexColor(blobColor(b)), opacity)
		s.FillRoundedRect(blob, b.BlobRoundness*blob.H/2, c)
	}

	if b.EnableShadow {
		s.SetShadow(&Shadow{
			OffsetX: f.px(b.ShadowOffsetX),
			OffsetY: f.px(b.ShadowOffsetY),
			Blur:    f.px(b.ShadowBlur),
			Color:   slide.MustParseHexColor(shadowColor(b)),
		})
	}

	if b.OutlineWidth > 0 {
		s.StrokeText(line, x, baseline, f.px(b.OutlineWidth),
			slide.MustParseHexColor(outlineColor(b)), style)
	}
	s.FillText(line, x, baseline, style)

	if b.EnableShadow {
		s.SetShadow(nil)
	}
}

func blobColor(b *slide.TextBox) string {
	if b.BlobColor != "" {
		return b.BlobColor
	}
	return "#FFFFFF"
}

func shadowColor(b *slide.TextBox) string {
	if b.ShadowColor != "" {
		return b.ShadowColor
	}
	return "#000000"
}

func outlineColor(b *slide.TextBox) string {
	if b.OutlineColor != "" {
		return b.OutlineColor
	}
	return "#000000"
}
