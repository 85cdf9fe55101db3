// Package raster is the headless pixel backend: it renders surface
// primitives into an in-memory RGBA bitmap and encodes it to PNG or
// JPEG. This is the backend batch export and the preview server's
// raster endpoint run on.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/render"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// xform is one replayable coordinate-space operation. Blend and shadow
// compositing draw primitives on a scratch bitmap, and the scratch
// context must see the same rotations and clips as the main one.
type xform struct {
	rotate  bool
	degrees float64
	cx, cy  float64
	clip    layout.Rect
}

type state struct {
	opacity float64
	blend   slide.BlendMode
	shadow  *render.Shadow
	xforms  []xform
}

// Surface renders primitives into an RGBA bitmap.
type Surface struct {
	dc    *gg.Context
	im    *image.RGBA
	faces *fonts.FaceCache

	cur   state
	stack []state
}

// New creates a raster surface of w x h pixels. faces supplies the draw
// faces for text primitives and is normally shared with the engine.
func New(w, h int, faces *fonts.FaceCache) *Surface {
	im := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Surface{
		dc:    gg.NewContextForRGBA(im),
		im:    im,
		faces: faces,
		cur:   state{opacity: 1, blend: slide.BlendNormal},
	}
}

// Image returns the backing bitmap. Valid after rendering completes.
func (s *Surface) Image() *image.RGBA { return s.im }

func (s *Surface) Size() (int, int) {
	return s.im.Bounds().Dx(), s.im.Bounds().Dy()
}

func (s *Surface) Push() {
	s.dc.Push()
	saved := s.cur
	saved.xforms = append([]xform(nil), s.cur.xforms...)
	s.stack = append(s.stack, saved)
}

func (s *Surface) Pop() {
	s.dc.Pop()
	// gg's Pop keeps the clip mask; rebuild it from the restored state.
	s.dc.ResetClip()

	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
	for _, x := range s.cur.xforms {
		if !x.rotate {
			s.dc.DrawRectangle(x.clip.X, x.clip.Y, x.clip.W, x.clip.H)
			s.dc.Clip()
		}
	}
}

func (s *Surface) Rotate(degrees, cx, cy float64) {
	s.dc.RotateAbout(gg.Radians(degrees), cx, cy)
	s.cur.xforms = append(s.cur.xforms, xform{rotate: true, degrees: degrees, cx: cx, cy: cy})
}

func (s *Surface) Clip(r layout.Rect) {
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Clip()
	s.cur.xforms = append(s.cur.xforms, xform{clip: r})
}

func (s *Surface) SetOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	s.cur.opacity = alpha
}

func (s *Surface) SetBlendMode(mode slide.BlendMode) { s.cur.blend = mode }

func (s *Surface) SetShadow(sh *render.Shadow) { s.cur.shadow = sh }

// tint folds the state opacity into a primitive color.
func (s *Surface) tint(c color.NRGBA) color.NRGBA {
	return slide.WithAlpha(c, s.cur.opacity)
}

func (s *Surface) FillRect(r layout.Rect, c color.NRGBA) {
	if fn := blendFunc(s.cur.blend); fn != nil {
		s.composite(fn, func(dc *gg.Context) {
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			dc.SetColor(c)
			dc.Fill()
		})
		return
	}
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.SetColor(s.tint(c))
	s.dc.Fill()
}

func (s *Surface) FillRoundedRect(r layout.Rect, radius float64, c color.NRGBA) {
	s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	s.dc.SetColor(s.tint(c))
	s.dc.Fill()
}

func (s *Surface) FillGradient(r layout.Rect, g *slide.Gradient) {
	if fn := blendFunc(s.cur.blend); fn != nil {
		grad := buildGradient(r, g, 1)
		s.composite(fn, func(dc *gg.Context) {
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			dc.SetFillStyle(grad)
			dc.Fill()
		})
		return
	}
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.SetFillStyle(buildGradient(r, g, s.cur.opacity))
	s.dc.Fill()
}

// buildGradient maps a document gradient to a gg fill pattern, with the
// layer opacity folded into every stop.
func buildGradient(r layout.Rect, g *slide.Gradient, opacity float64) gg.Gradient {
	var grad gg.Gradient
	if g.Type == slide.GradientRadial {
		cx, cy, radius := layout.GradientCircle(r, g.CenterX, g.CenterY)
		grad = gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
	} else {
		x0, y0, x1, y1 := layout.GradientLine(r, g.Angle)
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}

	positions := layout.StopPositions(len(g.Colors))
	for i, hex := range g.Colors {
		grad.AddColorStop(positions[i], slide.WithAlpha(slide.MustParseHexColor(hex), opacity))
	}
	return grad
}

func (s *Surface) DrawImage(img image.Image, r layout.Rect) {
	w := int(math.Round(r.W))
	h := int(math.Round(r.H))
	if w <= 0 || h <= 0 {
		return
	}
	x := int(math.Round(r.X))
	y := int(math.Round(r.Y))

	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	if fn := blendFunc(s.cur.blend); fn != nil {
		s.composite(fn, func(dc *gg.Context) {
			dc.DrawImage(resized, x, y)
		})
		return
	}
	if s.cur.opacity < 1 {
		scaleAlpha(resized, s.cur.opacity)
	}
	s.dc.DrawImage(resized, x, y)
}

func (s *Surface) FillText(text string, x, y float64, style render.TextStyle) {
	s.drawText(text, x, y, 0, style.Color, style)
}

func (s *Surface) StrokeText(text string, x, y, width float64, c color.NRGBA, style render.TextStyle) {
	s.drawText(text, x, y, width, c, style)
}

// drawText paints one text primitive, stroked when strokeWidth > 0,
// preceded by its drop shadow when one is armed.
func (s *Surface) drawText(text string, x, y, strokeWidth float64, c color.NRGBA, style render.TextStyle) {
	face, err := s.faces.DrawFace(style.Asset, style.Size)
	if err != nil {
		// The engine already parsed this asset for measurement; a parse
		// failure would have surfaced there.
		return
	}

	if sh := s.cur.shadow; sh != nil {
		s.drawTextShadow(sh, face, text, x, y, strokeWidth, style)
	}
	s.paintText(s.dc, face, text, x, y, strokeWidth, s.tint(c), style)
}

// paintText draws glyphs at the baseline origin. Strokes are built from
// a ring of offset fills, the usual approach when the rasterizer has no
// glyph outline stroking.
func (s *Surface) paintText(dc *gg.Context, face font.Face, text string, x, y, strokeWidth float64, c color.NRGBA, style render.TextStyle) {
	dc.SetFontFace(face)
	dc.SetColor(c)

	if strokeWidth > 0 {
		const steps = 16
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			s.drawSpaced(dc, face, text, x+strokeWidth*math.Cos(a), y+strokeWidth*math.Sin(a), style)
		}
		return
	}
	s.drawSpaced(dc, face, text, x, y, style)
}

// drawSpaced draws a line with letter and word spacing. The unspaced
// path hands the whole string to gg so kerning stays intact.
func (s *Surface) drawSpaced(dc *gg.Context, face font.Face, text string, x, y float64, style render.TextStyle) {
	if style.LetterSpacing == 0 && style.WordSpacing == 0 {
		dc.DrawString(text, x, y)
		return
	}
	pen := x
	for _, r := range text {
		g := string(r)
		dc.DrawString(g, pen, y)
		pen += fonts.MeasureString(face, g) + style.LetterSpacing
		if r == ' ' {
			pen += style.WordSpacing
		}
	}
}

// drawTextShadow renders the glyph shape offset and tinted on a scratch
// layer, blurs it, and composites it under the upcoming glyph pass.
func (s *Surface) drawTextShadow(sh *render.Shadow, face font.Face, text string, x, y, strokeWidth float64, style render.TextStyle) {
	scratch := image.NewRGBA(s.im.Bounds())
	dc := gg.NewContextForRGBA(scratch)
	s.replay(dc)
	s.paintText(dc, face, text, x+sh.OffsetX, y+sh.OffsetY, strokeWidth,
		slide.WithAlpha(sh.Color, s.cur.opacity), style)

	var out image.Image = scratch
	if sh.Blur > 0 {
		out = imaging.Blur(scratch, sh.Blur/2)
	}
	draw.Draw(s.im, s.im.Bounds(), out, image.Point{}, draw.Over)
}

// replay applies the current rotations and clips to a scratch context.
func (s *Surface) replay(dc *gg.Context) {
	for _, x := range s.cur.xforms {
		if x.rotate {
			dc.RotateAbout(gg.Radians(x.degrees), x.cx, x.cy)
			continue
		}
		dc.DrawRectangle(x.clip.X, x.clip.Y, x.clip.W, x.clip.H)
		dc.Clip()
	}
}

// scaleAlpha multiplies the alpha channel of an image in place.
func scaleAlpha(img *image.NRGBA, opacity float64) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i])*opacity + 0.5)
	}
}
