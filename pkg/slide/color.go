package slide

import (
	"image/color"
	"strings"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// ParseHexColor parses a 6-hex-digit color with an optional leading #.
func ParseHexColor(s string) (color.NRGBA, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return color.NRGBA{}, err
	}
	hex := strings.TrimPrefix(s, "#")
	var v uint32
	for _, r := range hex {
		v = v<<4 | uint32(hexDigit(r))
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// MustParseHexColor parses a hex color, falling back to opaque black for
// invalid input. Draw paths use it after validation has already run.
func MustParseHexColor(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// WithAlpha returns c with its alpha scaled by opacity in [0,1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}

func hexDigit(r rune) uint8 {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0')
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10
	}
	return 0
}
