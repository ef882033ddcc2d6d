// Package term draws laid out pages onto a tcell screen.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/micronaut/internal/document"
	"github.com/kobzarvs/micronaut/internal/layout"
)

type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one row of a page ready to be drawn.
type Line []Span

// Renderer lays pages out with a layout.Engine and converts the result to
// tcell styles.
type Renderer struct {
	engine *layout.Engine
}

func NewRenderer(engine *layout.Engine) *Renderer {
	if engine == nil {
		engine = layout.NewEngine()
	}
	return &Renderer{engine: engine}
}

var _ layout.Renderer[[]Line] = (*Renderer)(nil)

func (r *Renderer) Render(doc *document.Document, width int, form *layout.FormState, selected int) layout.Output[[]Line] {
	out := r.engine.Render(doc, width, form, selected)
	lines := make([]Line, len(out.Content))
	for i, row := range out.Content {
		line := make(Line, len(row))
		for j, span := range row {
			line[j] = Span{Text: span.Text, Style: Style(span.Style)}
		}
		lines[i] = line
	}
	return layout.Output[[]Line]{Content: lines, Hitboxes: out.Hitboxes, Height: out.Height}
}

// Color converts a document colour to a true colour tcell.Color.
func Color(c document.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func Style(s layout.CellStyle) tcell.Style {
	st := tcell.StyleDefault
	if s.Fg != nil {
		st = st.Foreground(Color(*s.Fg))
	}
	if s.Bg != nil {
		st = st.Background(Color(*s.Bg))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Draw paints lines starting at lines[scroll] into the screen rows
// y0 .. y0+height-1. Cells past the end of a line are cleared.
func Draw(s tcell.Screen, lines []Line, scroll, y0, height int) {
	width, _ := s.Size()
	for i := 0; i < height; i++ {
		y := y0 + i
		x := 0
		if idx := scroll + i; idx >= 0 && idx < len(lines) {
			x = drawLine(s, lines[idx], y, width)
		}
		for ; x < width; x++ {
			s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func drawLine(s tcell.Screen, line Line, y, width int) int {
	x := 0
	lastX, last := -1, rune(0)
	var comb []rune
	var lastStyle tcell.Style
	for _, span := range line {
		for _, r := range span.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				if lastX >= 0 {
					comb = append(comb, r)
					s.SetContent(lastX, y, last, comb, lastStyle)
				}
				continue
			}
			if x+w > width {
				return x
			}
			s.SetContent(x, y, r, nil, span.Style)
			lastX, last, comb, lastStyle = x, r, nil, span.Style
			x += w
		}
	}
	return x
}

// Print writes text at (x, y), clipped to width columns and padded with
// spaces in the same style. It returns the column after the text.
func Print(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	end := x + width
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	next := x
	for ; x < end; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
	return next
}
