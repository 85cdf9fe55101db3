package svg

import (
	"bytes"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// Rasterize renders an SVG document to pixels at w x h.
//
// oksvg covers the geometry subset of SVG (paths, fills, gradients) but
// skips text elements, so this is a debugging aid for comparing layer
// geometry between backends, not a substitute for the raster backend.
func Rasterize(data []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse SVG document")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}
