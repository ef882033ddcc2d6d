package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/micronaut/internal/document"
)

const (
	// DefaultFieldWidth is the width of a text field that gives none.
	DefaultFieldWidth = 24
	sectionIndent     = 2
)

// Engine lays out documents into rows of styled spans. It keeps no state
// between calls.
type Engine struct {
	Theme             Theme
	DefaultFieldWidth int
}

func NewEngine() *Engine {
	return &Engine{Theme: DefaultTheme(), DefaultFieldWidth: DefaultFieldWidth}
}

var _ Renderer[[]Row] = (*Engine)(nil)

// Render lays out doc for a viewport width columns wide. Row numbers in the
// hit map count from the top of the document.
func (e *Engine) Render(doc *document.Document, width int, form *FormState, selected int) Output[[]Row] {
	if form == nil {
		form = NewFormState()
	}
	r := &render{engine: e, width: max(width, 0), form: form, selected: selected}
	for i := range doc.Lines {
		r.line(&doc.Lines[i])
	}
	return Output[[]Row]{Content: r.rows, Hitboxes: r.hitboxes, Height: len(r.rows)}
}

type render struct {
	engine   *Engine
	width    int
	form     *FormState
	selected int

	rows     []Row
	hitboxes []Hitbox
	index    int
}

// piece is a run of text waiting to be wrapped. target is nil for plain
// text.
type piece struct {
	text   string
	style  CellStyle
	target Interactable
	index  int
}

func indentOf(l *document.Line) int {
	return max(l.IndentDepth-1, 0) * sectionIndent
}

func indentSpan(n int) Span {
	return Span{Text: strings.Repeat(" ", n)}
}

func (r *render) line(l *document.Line) {
	switch l.Kind {
	case document.LineComment:
	case document.LineDivider:
		r.divider(l)
	case document.LineHeading:
		r.heading(l)
	default:
		r.normal(l)
	}
}

func (r *render) divider(l *document.Line) {
	indent := indentOf(l)
	avail := max(r.width-indent, 0)
	glyph := l.Glyph
	if glyph == 0 {
		glyph = document.DefaultDividerGlyph
	}
	gw := max(runewidth.RuneWidth(glyph), 1)
	var row Row
	if indent > 0 {
		row = append(row, indentSpan(indent))
	}
	row = append(row, Span{Text: strings.Repeat(string(glyph), avail/gw)})
	r.rows = append(r.rows, row)
}

func (r *render) heading(l *document.Line) {
	indent := indentOf(l)
	avail := max(r.width-indent, 0)
	var row Row
	if indent > 0 {
		row = append(row, indentSpan(indent))
	}
	row = append(row, Span{Text: pad(l.PlainText(), avail, l.Alignment), Style: r.engine.Theme.heading(l.Level)})
	r.rows = append(r.rows, row)
}

// pad aligns text within width columns. Text wider than width is returned
// as is.
func pad(text string, width int, align document.Alignment) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case document.AlignRight:
		return strings.Repeat(" ", gap) + text
	case document.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

func (r *render) normal(l *document.Line) {
	indent := indentOf(l)
	avail := r.width - indent

	pieces := make([]piece, 0, len(l.Elements))
	for _, el := range l.Elements {
		if p, ok := r.piece(el); ok {
			pieces = append(pieces, p)
		}
	}
	if avail <= 0 {
		r.rows = append(r.rows, Row{})
		return
	}

	w := &wrapper{width: avail, indent: indent, rowIndex: len(r.rows)}
	w.startRow()
	for _, p := range pieces {
		w.place(p)
	}
	w.finish()
	r.rows = append(r.rows, w.rows...)
	r.hitboxes = append(r.hitboxes, w.hitboxes...)
}

// piece converts an element into wrappable text. Interactive elements take
// the next logical index whether or not anything gets drawn.
func (r *render) piece(el document.Element) (piece, bool) {
	idx := -1
	if document.Interactive(el) {
		idx = r.next()
	}
	switch e := el.(type) {
	case *document.Text:
		return piece{text: e.Text, style: fromStyle(e.Style)}, true
	case *document.Link:
		style := fromStyle(e.Style)
		style.Underline = true
		style.Reverse = idx == r.selected
		return piece{text: e.Label, style: style, target: LinkTarget{URL: e.URL, Fields: e.Fields}, index: idx}, true
	case *document.Field:
		return r.field(e, idx), true
	case *document.Partial:
		return piece{text: "[partial:" + e.URL + "]", style: CellStyle{Fg: r.engine.Theme.Partial}}, true
	}
	return piece{}, false
}

func (r *render) next() int {
	idx := r.index
	r.index++
	return idx
}

func (r *render) field(f *document.Field, idx int) piece {
	theme := r.engine.Theme.Field
	style := CellStyle{Fg: &theme.Fg, Bg: &theme.Bg, Reverse: idx == r.selected}
	p := piece{style: style, index: idx}

	switch f.Kind {
	case document.FieldCheckbox:
		on, ok := r.form.Checkboxes[f.Name]
		if !ok {
			on = f.Checked
		}
		p.text = "[ ]"
		if on {
			p.text = "[X]"
		}
		p.target = CheckboxTarget{Name: f.Name, Checked: f.Checked}
	case document.FieldRadio:
		on := f.Checked
		if sel, ok := r.form.Radios[f.Name]; ok {
			on = sel == f.Value
		}
		p.text = "( )"
		if on {
			p.text = "(X)"
		}
		p.target = RadioTarget{Name: f.Name, Value: f.Value, Checked: f.Checked}
	default:
		width := f.Width
		if width <= 0 {
			width = r.engine.DefaultFieldWidth
		}
		if width <= 0 {
			width = DefaultFieldWidth
		}
		value, ok := r.form.Fields[f.Name]
		if !ok {
			value = f.Default
		}
		var shown string
		if f.Masked {
			shown = strings.Repeat("*", min(utf8.RuneCountInString(value), width))
		} else {
			shown = runewidth.Truncate(value, width, "")
		}
		p.text = runewidth.FillRight(shown, width)
		p.style.Underline = r.form.Editing != "" && r.form.Editing == f.Name
		p.target = TextFieldTarget{Name: f.Name, Default: f.Default, Masked: f.Masked}
	}
	return p
}

// wrapper packs pieces into rows of a fixed content width, cutting
// between any two characters.
type wrapper struct {
	width    int
	indent   int
	rowIndex int

	rows     []Row
	cur      Row
	col      int
	hitboxes []Hitbox
}

func (w *wrapper) startRow() {
	w.cur = nil
	w.col = 0
	if w.indent > 0 {
		w.cur = Row{indentSpan(w.indent)}
	}
}

func (w *wrapper) breakRow() {
	w.rows = append(w.rows, w.cur)
	w.startRow()
}

func (w *wrapper) place(p piece) {
	rest := p.text
	for rest != "" {
		remaining := w.width - w.col
		if remaining <= 0 {
			w.breakRow()
			continue
		}
		n, cols := 0, 0
		for n < len(rest) {
			ch, size := utf8.DecodeRuneInString(rest[n:])
			cw := runewidth.RuneWidth(ch)
			if cols+cw > remaining {
				break
			}
			cols += cw
			n += size
		}
		if n == 0 {
			if w.col > 0 {
				w.breakRow()
				continue
			}
			// A rune wider than the whole row still has to go somewhere.
			ch, size := utf8.DecodeRuneInString(rest)
			n, cols = size, runewidth.RuneWidth(ch)
		}
		chunk := rest[:n]
		rest = rest[n:]
		if p.target != nil {
			start := w.indent + w.col
			w.hitboxes = append(w.hitboxes, Hitbox{
				Row:      w.rowIndex + len(w.rows),
				ColStart: start,
				ColEnd:   start + cols,
				Index:    p.index,
				Target:   p.target,
			})
		}
		w.cur = append(w.cur, Span{Text: chunk, Style: p.style})
		w.col += cols
	}
}

func (w *wrapper) finish() {
	if len(w.cur) > 0 || len(w.rows) == 0 {
		w.rows = append(w.rows, w.cur)
	}
}
