package render

import (
	"context"
	"fmt"
	"sort"

	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/observability"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// fallbackGradient replaces a background layer whose image failed to
// load. A render never fails because of one broken asset reference.
var fallbackGradient = slide.Gradient{
	Type:   slide.GradientLinear,
	Colors: []string{"#E0E0E0", "#B0B0B0"},
	Angle:  90,
}

// indexedLayer pairs a layer with its document position, which survives
// the z-index sort for diagnostics.
type indexedLayer struct {
	idx   int
	layer *slide.BackgroundLayer
}

// drawLayers paints the background stack in ascending z-index order.
// Equal z-indexes keep document order.
func (e *Engine) drawLayers(ctx context.Context, s Surface, sl *slide.Slide, f frame, rep *Report) {
	layers := make([]indexedLayer, len(sl.BackgroundLayers))
	for i := range sl.BackgroundLayers {
		layers[i] = indexedLayer{idx: i, layer: &sl.BackgroundLayers[i]}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].layer.ZIndex < layers[j].layer.ZIndex
	})

	for _, il := range layers {
		e.drawLayer(ctx, s, il, f, rep)
	}
}

func (e *Engine) drawLayer(ctx context.Context, s Surface, il indexedLayer, f frame, rep *Report) {
	l := il.layer
	rect := f.apply(layout.ResolveLayer(l, f.target))
	if rect.Empty() {
		return
	}

	s.Push()
	defer s.Pop()

	if l.Rotation != 0 {
		cx, cy := rect.Center()
		s.Rotate(l.Rotation, cx, cy)
	}
	s.SetOpacity(l.Opacity)
	s.SetBlendMode(l.BlendMode)

	switch l.Type {
	case slide.LayerColor:
		s.FillRect(rect, slide.MustParseHexColor(l.Color))

	case slide.LayerGradient:
		s.FillGradient(rect, l.Gradient)

	case slide.LayerImage:
		e.drawImageLayer(ctx, s, il, rect, rep)
	}
}

func (e *Engine) drawImageLayer(ctx context.Context, s Surface, il indexedLayer, box layout.Rect, rep *Report) {
	l := il.layer

	img, err := e.images.Load(ctx, l)
	if err != nil {
		e.logger.Warn("background layer image failed, substituting gradient",
			"layer", il.idx, "error", err)
		observability.Render().OnLayerFallback(ctx, il.idx, err)
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("layer %d: image unavailable, rendered fallback gradient: %v", il.idx, err))
		s.FillGradient(box, &fallbackGradient)
		return
	}

	b := img.Bounds()
	placed := layout.PlaceImage(b.Dx(), b.Dy(), box, l.FitMode, l.X, l.Y, l.Zoom)
	if placed.Empty() {
		return
	}

	// Cover and zoomed placements overflow the layer box; crop to it.
	s.Clip(box)
	s.DrawImage(img, placed)
}
