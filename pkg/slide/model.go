// Package slide defines the declarative slide document: canvas size,
// stacked background layers, and styled text boxes.
//
// A Slide is an immutable input to the rendering engine. Positions and
// sizes are relative fractions of the canvas so the same document renders
// at any target pixel size. The package also provides the JSON codec,
// validation, and the content hash used as the render cache key.
package slide

// Canvas size limits in pixels.
const (
	MinCanvasDim = 100
	MaxCanvasDim = 4000
)

// Text content and typography limits.
const (
	MaxTextLen  = 2000
	MinFontSize = 8
	MaxFontSize = 200
)

// CanvasSize defines the absolute raster dimensions everything else is
// mapped onto.
type CanvasSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport is the view transform applied while previewing a slide in the
// editor. It is not baked into exported pixels unless the caller explicitly
// requests a viewport-relative export.
type Viewport struct {
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// LayerType discriminates the background layer union.
type LayerType string

// Background layer types.
const (
	LayerImage    LayerType = "image"
	LayerColor    LayerType = "color"
	LayerGradient LayerType = "gradient"
)

// FitMode is the policy for scaling an image into a target rect.
type FitMode string

// Fit modes.
const (
	FitCover     FitMode = "cover"     // fill the box, cropping overflow
	FitContain   FitMode = "contain"   // fit fully inside, possibly underfilling
	FitFill      FitMode = "fill"      // stretch both axes, ignoring aspect ratio
	FitWidth     FitMode = "fit-width" // match the box width exactly
	FitHeight    FitMode = "fit-height"
)

// ValidFitModes is the set of supported fit modes.
var ValidFitModes = map[FitMode]bool{
	FitCover:   true,
	FitContain: true,
	FitFill:    true,
	FitWidth:   true,
	FitHeight:  true,
}

// BlendMode selects the compositing operation for a layer.
// Blending math is delegated to the raster surface, never implemented here.
type BlendMode string

// Blend modes.
const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
	BlendHue        BlendMode = "hue"
	BlendSaturation BlendMode = "saturation"
	BlendColor      BlendMode = "color"
	BlendLuminosity BlendMode = "luminosity"
)

// ValidBlendModes is the set of supported blend modes.
var ValidBlendModes = map[BlendMode]bool{
	BlendNormal: true, BlendMultiply: true, BlendScreen: true,
	BlendOverlay: true, BlendDarken: true, BlendLighten: true,
	BlendDifference: true, BlendExclusion: true, BlendHue: true,
	BlendSaturation: true, BlendColor: true, BlendLuminosity: true,
}

// GradientType discriminates linear and radial gradients.
type GradientType string

// Gradient types.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Gradient stop count limits.
const (
	MinGradientStops = 2
	MaxGradientStops = 5
)

// Gradient describes a linear or radial multi-stop gradient.
// Angle applies to linear gradients (0 = left-to-right, degrees clockwise);
// CenterX/CenterY are fractions of the filled rect for radial gradients.
type Gradient struct {
	Type    GradientType `json:"type"`
	Colors  []string     `json:"colors"`
	Angle   float64      `json:"angle,omitempty"`
	CenterX float64      `json:"centerX,omitempty"`
	CenterY float64      `json:"centerY,omitempty"`
}

// BackgroundLayer is one element of the background stack, drawn beneath all
// text boxes in ascending ZIndex order.
//
// Width and Height are fractions of the canvas. For color and gradient
// layers, X and Y position the layer rect (fractions of the canvas, may
// exceed [0,1] for layers that hang off the edge). For image layers, X and
// Y act as anchor fractions that pan the scaled bitmap inside the layer
// box, which is why their range extends to [-5,5].
type BackgroundLayer struct {
	Type LayerType `json:"type"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`

	FitMode   FitMode   `json:"fitMode,omitempty"`
	Opacity   float64   `json:"opacity"`
	BlendMode BlendMode `json:"blendMode,omitempty"`
	ZIndex    int       `json:"zIndex"`

	// Image variant. The reference is already resolved by the caller:
	// an http(s) URL, a local file path, or raw bytes.
	ImageURL  string  `json:"imageUrl,omitempty"`
	ImagePath string  `json:"imagePath,omitempty"`
	ImageData []byte  `json:"imageData,omitempty"`
	Zoom      float64 `json:"zoom,omitempty"`

	// Color variant: 6-hex-digit color, optional leading #.
	Color string `json:"color,omitempty"`

	// Gradient variant.
	Gradient *Gradient `json:"gradient,omitempty"`
}

// HasImageSource reports whether the layer carries a resolvable image
// reference.
func (l *BackgroundLayer) HasImageSource() bool {
	return l.ImageURL != "" || l.ImagePath != "" || len(l.ImageData) > 0
}

// TextAlign is the horizontal alignment of text lines within a box.
type TextAlign string

// Text alignments. Justify is treated as left; inter-word stretching is an
// optional enhancement the engine does not implement.
const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// ValidTextAligns is the set of supported alignments.
var ValidTextAligns = map[TextAlign]bool{
	AlignLeft: true, AlignCenter: true, AlignRight: true, AlignJustify: true,
}

// TextWrapMode controls line breaking.
type TextWrapMode string

// Wrap modes.
const (
	WrapNone     TextWrapMode = "none"     // single line per paragraph, may overflow
	WrapWords    TextWrapMode = "wrap"     // greedy word wrapping
	WrapEllipsis TextWrapMode = "ellipsis" // truncate overflow with a trailing ellipsis
)

// ValidWrapModes is the set of supported wrap modes.
var ValidWrapModes = map[TextWrapMode]bool{
	WrapNone: true, WrapWords: true, WrapEllipsis: true,
}

// FontStyle is the slant of a font face.
type FontStyle string

// Font styles. Oblique resolves to the italic variant.
const (
	StyleNormal  FontStyle = "normal"
	StyleItalic  FontStyle = "italic"
	StyleOblique FontStyle = "oblique"
)

// Padding is per-side interior padding of a text box, in pixels at the
// document's canvas size.
type Padding struct {
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
}

// TextBox is a styled, positioned block of text. Text boxes always draw
// above all background layers; ZIndex orders them among themselves.
type TextBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Text string `json:"text"`

	FontSize      float64   `json:"fontSize"`
	FontFamily    string    `json:"fontFamily"`
	FontWeight    string    `json:"fontWeight,omitempty"` // normal, bold, or 100-900
	FontStyle     FontStyle `json:"fontStyle,omitempty"`
	Color         string    `json:"color"`
	TextAlign     TextAlign `json:"textAlign,omitempty"`
	LineHeight    float64   `json:"lineHeight"`
	LetterSpacing float64   `json:"letterSpacing,omitempty"`
	WordSpacing   float64   `json:"wordSpacing,omitempty"`

	TextWrap TextWrapMode `json:"textWrap,omitempty"`
	Padding  Padding      `json:"padding,omitempty"`

	// Drop shadow, active for the stroke and fill passes of each line.
	EnableShadow  bool    `json:"enableShadow,omitempty"`
	ShadowColor   string  `json:"shadowColor,omitempty"`
	ShadowBlur    float64 `json:"shadowBlur,omitempty"`
	ShadowOffsetX float64 `json:"shadowOffsetX,omitempty"`
	ShadowOffsetY float64 `json:"shadowOffsetY,omitempty"`

	// Outline stroked behind the glyph fill.
	OutlineWidth float64 `json:"outlineWidth,omitempty"`
	OutlineColor string  `json:"outlineColor,omitempty"`

	// Soft rounded backdrop drawn behind each line.
	EnableBlobBackground bool    `json:"enableBlobBackground,omitempty"`
	BlobColor            string  `json:"blobColor,omitempty"`
	BlobOpacity          float64 `json:"blobOpacity,omitempty"`
	BlobSpread           float64 `json:"blobSpread,omitempty"`
	BlobRoundness        float64 `json:"blobRoundness,omitempty"`

	ZIndex int `json:"zIndex"`
}

// Slide is the declarative description of one frame to render.
type Slide struct {
	Canvas           CanvasSize        `json:"canvas"`
	Viewport         *Viewport         `json:"viewport,omitempty"`
	BackgroundLayers []BackgroundLayer `json:"backgroundLayers"`
	TextBoxes        []TextBox         `json:"textBoxes"`
}

// Deck is an ordered carousel of slides, the wire form used by batch
// export and the preview server.
type Deck struct {
	Slides []Slide `json:"slides"`
}
