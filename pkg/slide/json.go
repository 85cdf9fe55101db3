package slide

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// Defaults applied at decode time. Field absence is indistinguishable from
// the zero value after unmarshal, so defaults are seeded into the decode
// target before parsing.
const (
	DefaultOpacity    = 1.0
	DefaultFontSize   = 32.0
	DefaultFontFamily = "Inter"
	DefaultFontWeight = "normal"
	DefaultColor      = "#000000"
	DefaultLineHeight = 1.2
)

// UnmarshalJSON decodes a layer with defaults pre-seeded: full-canvas size,
// opacity 1, cover fit, normal blending, zIndex 1.
func (l *BackgroundLayer) UnmarshalJSON(data []byte) error {
	type alias BackgroundLayer
	aux := alias{
		Width:     1,
		Height:    1,
		Opacity:   DefaultOpacity,
		FitMode:   FitCover,
		BlendMode: BlendNormal,
		ZIndex:    1,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = BackgroundLayer(aux)
	return nil
}

// textBoxAlias strips TextBox's methods so the wire struct below can be
// unmarshaled without recursing into TextBox.UnmarshalJSON.
type textBoxAlias TextBox

// textBoxWire is the wire form of TextBox, including legacy fields that
// older CMS documents still carry.
type textBoxWire struct {
	textBoxAlias

	// Legacy border fields, folded into the structured outline at decode
	// time. There is no second, string-parsed styling path.
	BorderWidth float64 `json:"borderWidth,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
}

// UnmarshalJSON decodes a text box with typography defaults pre-seeded and
// legacy borderWidth/borderColor normalized into the outline fields. The
// legacy fields apply only when no structured outline is present.
func (b *TextBox) UnmarshalJSON(data []byte) error {
	aux := textBoxWire{
		textBoxAlias: textBoxAlias{
			FontSize:   DefaultFontSize,
			FontFamily: DefaultFontFamily,
			FontWeight: DefaultFontWeight,
			FontStyle:  StyleNormal,
			Color:      DefaultColor,
			TextAlign:  AlignLeft,
			LineHeight: DefaultLineHeight,
			TextWrap:   WrapWords,
			ZIndex:     1,
		},
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.OutlineWidth == 0 && aux.BorderWidth > 0 {
		aux.OutlineWidth = aux.BorderWidth
		aux.OutlineColor = aux.BorderColor
	}

	*b = TextBox(aux.textBoxAlias)
	return nil
}

// DecodeSlide parses a single slide document from r.
func DecodeSlide(r io.Reader) (*Slide, error) {
	var s Slide
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode slide document")
	}
	return &s, nil
}

// DecodeDeck parses a deck document from r. A bare slide document (an
// object without a "slides" array) is accepted as a one-slide deck, so
// every command that takes a deck also takes a single slide.
func DecodeDeck(r io.Reader) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read deck document")
	}

	var probe struct {
		Slides json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck document")
	}

	if probe.Slides != nil {
		var d Deck
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck document")
		}
		return &d, nil
	}

	s, err := DecodeSlide(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Deck{Slides: []Slide{*s}}, nil
}

// Encode serializes the slide as indented JSON.
func (s *Slide) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
