package raster

import (
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// DefaultJPEGQuality applies when a JPEG export does not specify one.
const DefaultJPEGQuality = 0.9

// Encode writes img in the named format ("png" or "jpeg"/"jpg").
// quality applies to JPEG only, as a fraction in (0,1]; zero means the
// default.
func Encode(w io.Writer, img image.Image, format string, quality float64) error {
	switch strings.ToLower(format) {
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "jpeg", "jpg":
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		q := int(quality*100 + 0.5)
		if q > 100 {
			q = 100
		}
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q))
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}
}
