package slide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// Validate checks the whole document and collects every violation into a
// single INVALID_SLIDE error, so a caller fixing a document sees all
// problems at once instead of one per round trip.
//
// Validation runs before the engine; geometry code assumes a validated
// document and produces empty output (never a fault) for degenerate but
// technically valid input such as zero-area boxes.
func (s *Slide) Validate() error {
	var problems []string

	if s.Canvas.Width < MinCanvasDim || s.Canvas.Width > MaxCanvasDim {
		problems = append(problems, fmt.Sprintf("canvas width %d out of range [%d,%d]", s.Canvas.Width, MinCanvasDim, MaxCanvasDim))
	}
	if s.Canvas.Height < MinCanvasDim || s.Canvas.Height > MaxCanvasDim {
		problems = append(problems, fmt.Sprintf("canvas height %d out of range [%d,%d]", s.Canvas.Height, MinCanvasDim, MaxCanvasDim))
	}

	for i := range s.BackgroundLayers {
		l := &s.BackgroundLayers[i]
		for _, p := range validateLayer(l) {
			problems = append(problems, fmt.Sprintf("layer %d: %s", i, p))
		}
	}

	for i := range s.TextBoxes {
		b := &s.TextBoxes[i]
		for _, p := range validateTextBox(b) {
			problems = append(problems, fmt.Sprintf("text box %d: %s", i, p))
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidSlide, "invalid slide: %s", strings.Join(problems, "; "))
	}
	return nil
}

func validateLayer(l *BackgroundLayer) []string {
	var problems []string

	switch l.Type {
	case LayerImage:
		if !l.HasImageSource() {
			problems = append(problems, "image layer requires imageUrl, imagePath, or imageData")
		}
	case LayerColor:
		if err := errors.ValidateHexColor(l.Color); err != nil {
			problems = append(problems, "color layer: "+errors.UserMessage(err))
		}
	case LayerGradient:
		if l.Gradient == nil {
			problems = append(problems, "gradient layer requires a gradient")
		} else {
			problems = append(problems, validateGradient(l.Gradient)...)
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown layer type %q", l.Type))
	}

	if l.X < -5 || l.X > 5 {
		problems = append(problems, fmt.Sprintf("x %g out of range [-5,5]", l.X))
	}
	if l.Y < -5 || l.Y > 5 {
		problems = append(problems, fmt.Sprintf("y %g out of range [-5,5]", l.Y))
	}
	if l.Width < 0.01 || l.Width > 10 {
		problems = append(problems, fmt.Sprintf("width %g out of range [0.01,10]", l.Width))
	}
	if l.Height < 0.01 || l.Height > 10 {
		problems = append(problems, fmt.Sprintf("height %g out of range [0.01,10]", l.Height))
	}
	if l.Opacity < 0 || l.Opacity > 1 {
		problems = append(problems, fmt.Sprintf("opacity %g out of range [0,1]", l.Opacity))
	}
	if !ValidFitModes[l.FitMode] {
		problems = append(problems, fmt.Sprintf("unknown fit mode %q", l.FitMode))
	}
	if !ValidBlendModes[l.BlendMode] {
		problems = append(problems, fmt.Sprintf("unknown blend mode %q", l.BlendMode))
	}
	if l.ZIndex < 1 || l.ZIndex > 100 {
		problems = append(problems, fmt.Sprintf("zIndex %d out of range [1,100]", l.ZIndex))
	}

	return problems
}

func validateGradient(g *Gradient) []string {
	var problems []string

	if g.Type != GradientLinear && g.Type != GradientRadial {
		problems = append(problems, fmt.Sprintf("unknown gradient type %q", g.Type))
	}
	if len(g.Colors) < MinGradientStops || len(g.Colors) > MaxGradientStops {
		problems = append(problems, fmt.Sprintf("gradient needs %d-%d stop colors, got %d", MinGradientStops, MaxGradientStops, len(g.Colors)))
	}
	for _, c := range g.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			problems = append(problems, "gradient stop: "+errors.UserMessage(err))
		}
	}

	return problems
}

func validateTextBox(b *TextBox) []string {
	var problems []string

	if b.Text == "" {
		problems = append(problems, "text cannot be empty")
	}
	if len(b.Text) > MaxTextLen {
		problems = append(problems, fmt.Sprintf("text length %d exceeds %d", len(b.Text), MaxTextLen))
	}
	if b.X < -1 || b.X > 2 {
		problems = append(problems, fmt.Sprintf("x %g out of range [-1,2]", b.X))
	}
	if b.Y < -1 || b.Y > 2 {
		problems = append(problems, fmt.Sprintf("y %g out of range [-1,2]", b.Y))
	}
	if b.Width <= 0 || b.Width > 2 {
		problems = append(problems, fmt.Sprintf("width %g out of range (0,2]", b.Width))
	}
	if b.Height <= 0 || b.Height > 2 {
		problems = append(problems, fmt.Sprintf("height %g out of range (0,2]", b.Height))
	}
	if b.FontSize < MinFontSize || b.FontSize > MaxFontSize {
		problems = append(problems, fmt.Sprintf("fontSize %g out of range [%d,%d]", b.FontSize, MinFontSize, MaxFontSize))
	}
	if err := errors.ValidateFontFamily(b.FontFamily); err != nil {
		problems = append(problems, errors.UserMessage(err))
	}
	if _, ok := ParseFontWeight(b.FontWeight); !ok {
		problems = append(problems, fmt.Sprintf("unknown font weight %q", b.FontWeight))
	}
	if b.FontStyle != StyleNormal && b.FontStyle != StyleItalic && b.FontStyle != StyleOblique {
		problems = append(problems, fmt.Sprintf("unknown font style %q", b.FontStyle))
	}
	if err := errors.ValidateHexColor(b.Color); err != nil {
		problems = append(problems, "color: "+errors.UserMessage(err))
	}
	if !ValidTextAligns[b.TextAlign] {
		problems = append(problems, fmt.Sprintf("unknown text align %q", b.TextAlign))
	}
	if b.LineHeight < 0.5 || b.LineHeight > 3 {
		problems = append(problems, fmt.Sprintf("lineHeight %g out of range [0.5,3]", b.LineHeight))
	}
	if !ValidWrapModes[b.TextWrap] {
		problems = append(problems, fmt.Sprintf("unknown text wrap %q", b.TextWrap))
	}
	if b.EnableShadow && b.ShadowColor != "" {
		if err := errors.ValidateHexColor(b.ShadowColor); err != nil {
			problems = append(problems, "shadow color: "+errors.UserMessage(err))
		}
	}
	if b.OutlineWidth < 0 {
		problems = append(problems, fmt.Sprintf("outlineWidth %g cannot be negative", b.OutlineWidth))
	}
	if b.OutlineWidth > 0 && b.OutlineColor != "" {
		if err := errors.ValidateHexColor(b.OutlineColor); err != nil {
			problems = append(problems, "outline color: "+errors.UserMessage(err))
		}
	}
	if b.EnableBlobBackground {
		if b.BlobColor != "" {
			if err := errors.ValidateHexColor(b.BlobColor); err != nil {
				problems = append(problems, "blob color: "+errors.UserMessage(err))
			}
		}
		if b.BlobOpacity < 0 || b.BlobOpacity > 1 {
			problems = append(problems, fmt.Sprintf("blobOpacity %g out of range [0,1]", b.BlobOpacity))
		}
	}
	if b.ZIndex < 1 || b.ZIndex > 10000 {
		problems = append(problems, fmt.Sprintf("zIndex %d out of range [1,10000]", b.ZIndex))
	}

	return problems
}

// ParseFontWeight maps a CSS-ish weight string to a numeric weight.
// Accepts "normal", "bold", and "100"-"900" in steps of 100.
func ParseFontWeight(w string) (int, bool) {
	switch w {
	case "", "normal":
		return 400, true
	case "bold":
		return 700, true
	}
	n, err := strconv.Atoi(w)
	if err != nil || n < 100 || n > 900 || n%100 != 0 {
		return 0, false
	}
	return n, true
}

// Italic reports whether the box's font style resolves to an italic face.
func (b *TextBox) Italic() bool {
	return b.FontStyle == StyleItalic || b.FontStyle == StyleOblique
}
