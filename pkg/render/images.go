package render

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"os"

	// Register the decoders for the formats source images arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/httputil"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Loader resolves a layer's image reference to decoded pixels.
//
// Remote fetches pass through an optional file cache so repeated renders
// of the same document do not re-download source images.
type Loader struct {
	client *http.Client
	disk   *httputil.Cache
}

// NewLoader creates an image loader. client may be nil for the default
// client; disk may be nil to skip caching of remote fetches.
func NewLoader(client *http.Client, disk *httputil.Cache) *Loader {
	if disk != nil {
		disk = disk.Namespace("images")
	}
	return &Loader{client: client, disk: disk}
}

// Load fetches and decodes the image referenced by a layer. Exactly one
// of ImageData, ImagePath, or ImageURL must be set; they are consulted in
// that order.
func (l *Loader) Load(ctx context.Context, layer *slide.BackgroundLayer) (image.Image, error) {
	data, err := l.fetch(ctx, layer)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedFormat, err,
			"failed to decode image %s", layer.ImageURL+layer.ImagePath)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, layer *slide.BackgroundLayer) ([]byte, error) {
	switch {
	case len(layer.ImageData) > 0:
		return layer.ImageData, nil

	case layer.ImagePath != "":
		data, err := os.ReadFile(layer.ImagePath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
				"failed to read image %s", layer.ImagePath)
		}
		return data, nil

	case layer.ImageURL != "":
		if err := errors.ValidateURL(layer.ImageURL); err != nil {
			return nil, err
		}
		return l.fetchRemote(ctx, layer.ImageURL)

	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "image layer has no image source")
	}
}

func (l *Loader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	if l.disk != nil {
		if ok, err := l.disk.Get(url, &data); err == nil && ok {
			return data, nil
		}
	}

	data, err := httputil.FetchBytes(ctx, l.client, url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "failed to fetch image %s", url)
	}

	if l.disk != nil {
		// Cache write failures are not fetch failures.
		_ = l.disk.Set(url, data)
	}
	return data, nil
}
