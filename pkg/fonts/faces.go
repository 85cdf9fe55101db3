package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// FaceCache parses font assets once and hands out sized faces.
//
// It produces two faces per (asset, size): a draw face with full hinting
// for crisp raster output, and a measure face with hinting disabled.
// Layout always measures with the unhinted face so line breaks come out
// the same regardless of which backend eventually draws the glyphs.
type FaceCache struct {
	mu      sync.Mutex
	parsed  map[string]*opentype.Font
	draw    map[faceKey]font.Face
	measure map[faceKey]font.Face
}

type faceKey struct {
	asset string
	size  float64
}

// NewFaceCache creates an empty face cache.
func NewFaceCache() *FaceCache {
	return &FaceCache{
		parsed:  make(map[string]*opentype.Font),
		draw:    make(map[faceKey]font.Face),
		measure: make(map[faceKey]font.Face),
	}
}

// DrawFace returns a hinted face for rasterizing glyphs at size px.
func (c *FaceCache) DrawFace(a *Asset, size float64) (font.Face, error) {
	return c.face(a, size, font.HintingFull, true)
}

// MeasureFace returns an unhinted face for measuring text at size px.
func (c *FaceCache) MeasureFace(a *Asset, size float64) (font.Face, error) {
	return c.face(a, size, font.HintingNone, false)
}

func (c *FaceCache) face(a *Asset, size float64, hinting font.Hinting, draw bool) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{asset: a.Name, size: size}
	pool := c.measure
	if draw {
		pool = c.draw
	}
	if f, ok := pool[key]; ok {
		return f, nil
	}

	parsed, ok := c.parsed[a.Name]
	if !ok {
		var err error
		parsed, err = opentype.Parse(a.Data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontUnavailable, err,
				"failed to parse font %s", a.Name)
		}
		c.parsed[a.Name] = parsed
	}

	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontUnavailable, err,
			"failed to create %gpx face for %s", size, a.Name)
	}
	pool[key] = f
	return f, nil
}

// MeasureString returns the advance width of s in pixels, with subpixel
// precision.
func MeasureString(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
