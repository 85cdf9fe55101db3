package layout

import (
	"strings"

	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Measurer reports the pixel width of a string in the active font.
// Implementations must include letter and word spacing so wrapping
// decisions match the eventual draw exactly.
type Measurer interface {
	MeasureWidth(s string) float64
}

// ellipsis is the truncation marker appended by WrapEllipsis.
const ellipsis = "…"

// Wrap splits text into drawable lines for the given interior width.
//
// Text splits on explicit newlines into paragraphs first. A paragraph
// consisting only of whitespace yields one preserved blank line — blank
// lines are content, not noise. Per wrap mode:
//   - none: each paragraph stays a single line and may overflow
//   - wrap: greedy word packing; a word wider than the interior gets its
//     own overflowing line rather than being broken mid-word
//   - ellipsis: each paragraph stays a single line, truncated with a
//     trailing … once it would overflow
func Wrap(m Measurer, text string, interiorWidth float64, mode slide.TextWrapMode) []string {
	paragraphs := strings.Split(text, "\n")
	lines := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			lines = append(lines, "")
			continue
		}

		switch mode {
		case slide.WrapNone:
			lines = append(lines, p)
		case slide.WrapEllipsis:
			lines = append(lines, truncateWithEllipsis(m, p, interiorWidth))
		default:
			lines = append(lines, wrapParagraph(m, p, interiorWidth)...)
		}
	}

	return lines
}

// wrapParagraph greedily packs words into lines not exceeding maxWidth.
func wrapParagraph(m Measurer, paragraph string, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.MeasureWidth(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	lines = append(lines, current)

	return lines
}

// truncateWithEllipsis trims runes off the end of line until it fits in
// maxWidth with the ellipsis appended. A line that already fits is
// returned untouched. If nothing fits, the bare ellipsis remains.
func truncateWithEllipsis(m Measurer, line string, maxWidth float64) string {
	if m.MeasureWidth(line) <= maxWidth {
		return line
	}

	runes := []rune(strings.TrimRight(line, " "))
	for len(runes) > 0 {
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		if m.MeasureWidth(candidate) <= maxWidth {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return ellipsis
}

// BlockHeight is the total pixel height of a wrapped line block.
func BlockHeight(lineCount int, fontSize, lineHeight float64) float64 {
	return float64(lineCount) * fontSize * lineHeight
}

// BlockTop computes the y of the block's first line top: the block is
// centered vertically within the interior (the box minus padding), then
// clamped so an overflowing block anchors to the box top instead of
// drifting above it.
func BlockTop(box Rect, padTop, padBottom, blockHeight float64) float64 {
	interiorTop := box.Y + padTop
	interiorHeight := box.H - padTop - padBottom
	if interiorHeight < 0 {
		interiorHeight = 0
	}

	top := interiorTop + (interiorHeight-blockHeight)/2

	// Clamp: the block's top must not rise above the box, and when the
	// block fits, its bottom must not sink below it.
	if top < box.Y {
		top = box.Y
	}
	if bottomLimit := box.Y + box.H - blockHeight; bottomLimit >= box.Y && top > bottomLimit {
		top = bottomLimit
	}
	return top
}

// LineX computes the x of a line's left edge within the box interior.
// justify anchors like left; inter-word stretching is an optional
// enhancement the engine does not implement.
func LineX(align slide.TextAlign, box Rect, padLeft, padRight, lineWidth float64) float64 {
	interiorLeft := box.X + padLeft
	interiorWidth := box.W - padLeft - padRight
	if interiorWidth < 0 {
		interiorWidth = 0
	}

	switch align {
	case slide.AlignCenter:
		return interiorLeft + (interiorWidth-lineWidth)/2
	case slide.AlignRight:
		return interiorLeft + interiorWidth - lineWidth
	default:
		return interiorLeft
	}
}
