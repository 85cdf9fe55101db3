package fonts

import (
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Fallback candidates tried in order when a family is not registered.
// System fonts are preferred; the embedded Go fonts are the last resort
// so resolution succeeds even in a scratch container with no fontconfig.
var (
	sansFallbacks  = []string{"DejaVu Sans", "Liberation Sans", "Arial", "Helvetica"}
	serifFallbacks = []string{"DejaVu Serif", "Liberation Serif", "Times New Roman", "Georgia"}
)

// wantsSerif guesses the generic class of an unregistered family name.
func wantsSerif(family string) bool {
	name := strings.ToLower(family)
	if strings.Contains(name, "sans") {
		return false
	}
	return strings.Contains(name, "serif") ||
		strings.Contains(name, "times") ||
		strings.Contains(name, "georgia") ||
		strings.Contains(name, "garamond")
}

// fallbackAsset builds a substitute asset for an unregistered family. It
// never fails: a system font found via fontconfig paths wins, otherwise
// the matching embedded Go font is used.
func fallbackAsset(family string, weight int, italic bool) *Asset {
	candidates := sansFallbacks
	if wantsSerif(family) {
		candidates = serifFallbacks
	}

	for _, name := range candidates {
		path, err := findfont.Find(name + ".ttf")
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return &Asset{
			Family:   family,
			Weight:   weight,
			Italic:   italic,
			Name:     name,
			Data:     data,
			Fallback: true,
		}
	}

	return &Asset{
		Family:   family,
		Weight:   weight,
		Italic:   italic,
		Name:     embeddedName(weight, italic),
		Data:     embeddedData(weight, italic),
		Fallback: true,
	}
}

func embeddedData(weight int, italic bool) []byte {
	bold := weight >= 600
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

func embeddedName(weight int, italic bool) string {
	bold := weight >= 600
	switch {
	case bold && italic:
		return "Go Bold Italic"
	case bold:
		return "Go Bold"
	case italic:
		return "Go Italic"
	default:
		return "Go Regular"
	}
}
