package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Op is one recorded surface primitive.
type Op struct {
	Kind  string
	Rect  layout.Rect
	Color color.NRGBA
	Text  string
	X, Y  float64
}

// Recorder is a Surface that records primitives instead of drawing them.
// Tests use it to assert paint order and geometry without rasterizing,
// and to compare the primitive streams two backends would receive.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a recording surface of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) record(op Op) { r.Ops = append(r.Ops, op) }

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Push() { r.record(Op{Kind: "push"}) }
func (r *Recorder) Pop()  { r.record(Op{Kind: "pop"}) }

func (r *Recorder) Rotate(degrees, cx, cy float64) {
	r.record(Op{Kind: "rotate", X: cx, Y: cy, Text: fmt.Sprintf("%g", degrees)})
}

func (r *Recorder) Clip(rect layout.Rect) {
	r.record(Op{Kind: "clip", Rect: rect})
}

func (r *Recorder) SetOpacity(alpha float64) {
	r.record(Op{Kind: "opacity", X: alpha})
}

func (r *Recorder) SetBlendMode(mode slide.BlendMode) {
	r.record(Op{Kind: "blend", Text: string(mode)})
}

func (r *Recorder) SetShadow(s *Shadow) {
	if s == nil {
		r.record(Op{Kind: "shadow-off"})
		return
	}
	r.record(Op{Kind: "shadow", Color: s.Color, X: s.OffsetX, Y: s.OffsetY})
}

func (r *Recorder) FillRect(rect layout.Rect, c color.NRGBA) {
	r.record(Op{Kind: "rect", Rect: rect, Color: c})
}

func (r *Recorder) FillRoundedRect(rect layout.Rect, radius float64, c color.NRGBA) {
	r.record(Op{Kind: "rounded-rect", Rect: rect, Color: c, X: radius})
}

func (r *Recorder) FillGradient(rect layout.Rect, g *slide.Gradient) {
	r.record(Op{Kind: "gradient", Rect: rect, Text: string(g.Type)})
}

func (r *Recorder) DrawImage(img image.Image, rect layout.Rect) {
	r.record(Op{Kind: "image", Rect: rect})
}

func (r *Recorder) FillText(text string, x, y float64, style TextStyle) {
	r.record(Op{Kind: "text", Text: text, X: x, Y: y, Color: style.Color})
}

func (r *Recorder) StrokeText(text string, x, y, width float64, c color.NRGBA, style TextStyle) {
	r.record(Op{Kind: "stroke-text", Text: text, X: x, Y: y, Color: c})
}

// OpsOfKind filters the recorded stream by primitive kind.
func (r *Recorder) OpsOfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
