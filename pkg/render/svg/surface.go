// Package svg is the retained-mode preview backend: it renders surface
// primitives into a standalone SVG document with the fonts embedded, so
// an editor webview can show the slide without fetching anything.
//
// Geometry arrives fully resolved from the engine; this backend only
// translates primitives to markup. Gradient axes are expressed in
// bounding-box percentages, which matches the raster backend exactly for
// axis-aligned angles and approximates oblique angles on non-square
// rects.
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo/float"
	"github.com/disintegration/imaging"

	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/render"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

type state struct {
	opacity  float64
	blend    slide.BlendMode
	shadowID string
	open     int // groups opened in this scope, closed on Pop
}

// Surface renders primitives into an SVG document.
type Surface struct {
	w, h int

	body    bytes.Buffer
	doc     *svgo.SVG
	defs    bytes.Buffer
	defsDoc *svgo.SVG
	nextID  int

	// Embedded font assets, keyed by asset name, in first-use order.
	assets     map[string]embeddedFont
	assetOrder []string

	cur   state
	stack []state
}

type embeddedFont struct {
	cssFamily string
	asset     *fonts.Asset
}

// New creates an SVG surface of w x h user units.
func New(w, h int) *Surface {
	s := &Surface{
		w: w, h: h,
		assets: make(map[string]embeddedFont),
		cur:    state{opacity: 1, blend: slide.BlendNormal},
	}
	s.doc = svgo.New(&s.body)
	s.defsDoc = svgo.New(&s.defs)
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *Surface) Push() {
	s.stack = append(s.stack, s.cur)
	s.cur.open = 0
}

func (s *Surface) Pop() {
	for i := 0; i < s.cur.open; i++ {
		s.doc.Gend()
	}
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *Surface) Rotate(degrees, cx, cy float64) {
	s.doc.Gtransform(fmt.Sprintf("rotate(%.4f,%.4f,%.4f)", degrees, cx, cy))
	s.cur.open++
}

func (s *Surface) Clip(r layout.Rect) {
	id := s.id("clip")
	fmt.Fprintf(&s.defs, "<defs><clipPath id=%q><rect x=\"%.4f\" y=\"%.4f\" width=\"%.4f\" height=\"%.4f\"/></clipPath></defs>\n",
		id, r.X, r.Y, r.W, r.H)
	s.doc.Group(fmt.Sprintf("clip-path=\"url(#%s)\"", id))
	s.cur.open++
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

func (s *Surface) SetShadow(sh *render.Shadow) {
	if sh == nil {
		s.cur.shadowID = ""
		return
	}
	id := s.id("shadow")
	fmt.Fprintf(&s.defs,
		"<defs><filter id=%q x=\"-50%%\" y=\"-50%%\" width=\"200%%\" height=\"200%%\"><feDropShadow dx=\"%.4f\" dy=\"%.4f\" stdDeviation=\"%.4f\" flood-color=%q flood-opacity=\"%.4f\"/></filter></defs>\n",
		id, sh.OffsetX, sh.OffsetY, sh.Blur/2, hexColor(sh.Color), alphaOf(sh.Color))
	s.cur.shadowID = id
}

// fillStyle builds the shared style suffix: opacity, and blend mode when
// not normal.
func (s *Surface) fillStyle(c color.NRGBA) string {
	style := fmt.Sprintf("fill:%s;fill-opacity:%.4f", hexColor(c), alphaOf(c)*s.cur.opacity)
	if s.cur.blend != slide.BlendNormal {
		style += ";mix-blend-mode:" + string(s.cur.blend)
	}
	return style
}

func (s *Surface) FillRect(r layout.Rect, c color.NRGBA) {
	s.doc.Rect(r.X, r.Y, r.W, r.H, s.fillStyle(c))
}

func (s *Surface) FillRoundedRect(r layout.Rect, radius float64, c color.NRGBA) {
	s.doc.Roundrect(r.X, r.Y, r.W, r.H, radius, radius, s.fillStyle(c))
}

func (s *Surface) FillGradient(r layout.Rect, g *slide.Gradient) {
	id := s.id("grad")
	stops := make([]svgo.Offcolor, len(g.Colors))
	positions := layout.StopPositions(len(g.Colors))
	for i, hex := range g.Colors {
		stops[i] = svgo.Offcolor{
			Offset:  uint8(positions[i]*100 + 0.5),
			Color:   hexColor(slide.MustParseHexColor(hex)),
			Opacity: s.cur.opacity,
		}
	}

	s.defsDoc.Def()
	if g.Type == slide.GradientRadial {
		cx, cy, radius := layout.GradientCircle(r, g.CenterX, g.CenterY)
		pcx := boxPercent(cx-r.X, r.W)
		pcy := boxPercent(cy-r.Y, r.H)
		pr := boxPercent(radius, math.Max(r.W, r.H))
		s.defsDoc.RadialGradient(id, pcx, pcy, pr, pcx, pcy, stops)
	} else {
		x0, y0, x1, y1 := layout.GradientLine(r, g.Angle)
		s.defsDoc.LinearGradient(id,
			boxPercent(x0-r.X, r.W), boxPercent(y0-r.Y, r.H),
			boxPercent(x1-r.X, r.W), boxPercent(y1-r.Y, r.H), stops)
	}
	s.defsDoc.DefEnd()

	style := fmt.Sprintf("fill=\"url(#%s)\"", id)
	if s.cur.blend != slide.BlendNormal {
		s.doc.Rect(r.X, r.Y, r.W, r.H, style, "mix-blend-mode:"+string(s.cur.blend))
		return
	}
	s.doc.Rect(r.X, r.Y, r.W, r.H, style)
}

func (s *Surface) DrawImage(img image.Image, r layout.Rect) {
	w := int(math.Round(r.W))
	h := int(math.Round(r.H))
	if w <= 0 || h <= 0 {
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return
	}
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	attrs := []string{"preserveAspectRatio=\"none\""}
	if s.cur.opacity < 1 {
		attrs = append(attrs, fmt.Sprintf("opacity=\"%.4f\"", s.cur.opacity))
	}
	if s.cur.blend != slide.BlendNormal {
		attrs = append(attrs, "mix-blend-mode:"+string(s.cur.blend))
	}
	s.doc.Image(r.X, r.Y, w, h, href, attrs...)
}

func (s *Surface) FillText(text string, x, y float64, style render.TextStyle) {
	css := fmt.Sprintf("%s;fill:%s;fill-opacity:%.4f",
		s.textFont(style), hexColor(style.Color), alphaOf(style.Color)*s.cur.opacity)
	s.drawText(text, x, y, css)
}

func (s *Surface) StrokeText(text string, x, y, width float64, c color.NRGBA, style render.TextStyle) {
	// SVG strokes straddle the outline, so the CSS-style outline width
	// doubles into the stroke width.
	css := fmt.Sprintf("%s;fill:none;stroke:%s;stroke-opacity:%.4f;stroke-width:%.4f;stroke-linejoin:round",
		s.textFont(style), hexColor(c), alphaOf(c)*s.cur.opacity, width*2)
	s.drawText(text, x, y, css)
}

func (s *Surface) drawText(text string, x, y float64, css string) {
	attrs := []string{"xml:space=\"preserve\"", css}
	if s.cur.shadowID != "" {
		attrs = append(attrs, fmt.Sprintf("filter=\"url(#%s)\"", s.cur.shadowID))
	}
	s.doc.Text(x, y, text, attrs...)
}

// textFont registers the style's asset for embedding and returns the
// per-line font CSS.
func (s *Surface) textFont(style render.TextStyle) string {
	font := s.embed(style.Asset)
	css := fmt.Sprintf("font-family:'%s';font-size:%.4fpx", font.cssFamily, style.Size)
	if style.LetterSpacing != 0 {
		css += fmt.Sprintf(";letter-spacing:%.4fpx", style.LetterSpacing)
	}
	if style.WordSpacing != 0 {
		css += fmt.Sprintf(";word-spacing:%.4fpx", style.WordSpacing)
	}
	return css
}

// embed assigns the asset a document-unique CSS family name so variants
// of the same family cannot collide in the @font-face block.
func (s *Surface) embed(a *fonts.Asset) embeddedFont {
	if f, ok := s.assets[a.Name]; ok {
		return f
	}
	f := embeddedFont{
		cssFamily: fmt.Sprintf("slidekit-font-%d", len(s.assetOrder)),
		asset:     a,
	}
	s.assets[a.Name] = f
	s.assetOrder = append(s.assetOrder, a.Name)
	return f
}

// WriteTo assembles the final document: header, embedded fonts, gradient
// and filter definitions, then the recorded body.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	fmt.Fprintf(cw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(cw, "<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		s.w, s.h, s.w, s.h)

	if len(s.assetOrder) > 0 {
		fmt.Fprint(cw, "<style>\n")
		for _, name := range s.assetOrder {
			f := s.assets[name]
			fmt.Fprintf(cw, "@font-face{font-family:'%s';src:url(data:font/ttf;base64,%s);}\n",
				f.cssFamily, base64.StdEncoding.EncodeToString(f.asset.Data))
		}
		fmt.Fprint(cw, "</style>\n")
	}

	cw.Write(s.defs.Bytes())
	cw.Write(s.body.Bytes())
	fmt.Fprint(cw, "</svg>\n")
	return cw.n, cw.err
}

// Bytes assembles the final document into memory.
func (s *Surface) Bytes() []byte {
	var buf bytes.Buffer
	s.WriteTo(&buf)
	return buf.Bytes()
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func alphaOf(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

func boxPercent(v, extent float64) uint8 {
	if extent <= 0 {
		return 0
	}
	p := v / extent * 100
	if p < 0 {
		p = 0
	}
	if p > 255 {
		p = 255
	}
	return uint8(p + 0.5)
}
