package layout

import "github.com/kobzarvs/micronaut/internal/document"

// ColorPair is a foreground/background combination.
type ColorPair struct {
	Fg document.Color
	Bg document.Color
}

// Theme holds the colours the engine applies on top of document styles.
type Theme struct {
	Headings [3]ColorPair
	Field    ColorPair
	// Partial colours the placeholder shown for partials; nil leaves the
	// terminal default.
	Partial *document.Color
}

func DefaultTheme() Theme {
	return Theme{
		Headings: [3]ColorPair{
			{Fg: document.Color{R: 0x22, G: 0x22, B: 0x22}, Bg: document.Color{R: 0xbb, G: 0xbb, B: 0xbb}},
			{Fg: document.Color{R: 0x11, G: 0x11, B: 0x11}, Bg: document.Color{R: 0x99, G: 0x99, B: 0x99}},
			{Fg: document.Color{R: 0x00, G: 0x00, B: 0x00}, Bg: document.Color{R: 0x77, G: 0x77, B: 0x77}},
		},
		Field: ColorPair{Fg: document.Color{}, Bg: document.Color{R: 0xff, G: 0xff, B: 0xff}},
	}
}

// heading returns the colours for a heading level, clamped to 1-3.
func (t Theme) heading(level int) CellStyle {
	pair := t.Headings[min(max(level, 1), 3)-1]
	return CellStyle{Fg: &pair.Fg, Bg: &pair.Bg}
}
