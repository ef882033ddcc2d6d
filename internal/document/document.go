// Package document holds the parsed form of a micron page: lines of styled
// text, links, form fields and partial placeholders.
package document

// DefaultDividerGlyph is the rune a bare "-" divider line repeats.
const DefaultDividerGlyph = '─'

type LineKind int

const (
	LineNormal LineKind = iota
	LineHeading
	LineDivider
	LineComment
)

func (k LineKind) String() string {
	switch k {
	case LineHeading:
		return "heading"
	case LineDivider:
		return "divider"
	case LineComment:
		return "comment"
	default:
		return "normal"
	}
}

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Document is an ordered list of lines. It is never edited in place; a new
// page produces a new Document.
type Document struct {
	Lines []Line
}

// Line is one physical line of the source.
// Level is set for headings (1-3) and Glyph for dividers.
type Line struct {
	Kind        LineKind
	Level       int
	Glyph       rune
	IndentDepth int
	Alignment   Alignment
	Elements    []Element
}

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Style is the effective text style at one point of the page.
type Style struct {
	Fg        *Color
	Bg        *Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return colorEqual(s.Fg, o.Fg) && colorEqual(s.Bg, o.Bg) &&
		s.Bold == o.Bold && s.Italic == o.Italic && s.Underline == o.Underline
}

func colorEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// RGB returns a pointer to a colour, handy for building styles.
func RGB(r, g, b uint8) *Color {
	return &Color{R: r, G: g, B: b}
}

// Element is one of *Text, *Link, *Field or *Partial.
type Element interface {
	element()
}

// Text is a run of characters sharing one style.
type Text struct {
	Text  string
	Style Style
}

// Link points at another page. Fields lists the form field specifiers
// submitted with it: a name, a name=literal pair or "*".
type Link struct {
	Label  string
	URL    string
	Fields []string
	Style  Style
}

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldCheckbox
	FieldRadio
)

func (k FieldKind) String() string {
	switch k {
	case FieldCheckbox:
		return "checkbox"
	case FieldRadio:
		return "radio"
	default:
		return "text"
	}
}

// Field is a form control. Width is 0 when the markup gives none.
// Value is the value written for a checkbox or radio button and Checked
// its initial state.
type Field struct {
	Name    string
	Default string
	Width   int
	Masked  bool
	Kind    FieldKind
	Value   string
	Checked bool
}

// Partial references content fetched from elsewhere. The browser core never
// resolves it.
type Partial struct {
	URL     string
	Refresh *int
	Fields  []string
}

func (*Text) element()    {}
func (*Link) element()    {}
func (*Field) element()   {}
func (*Partial) element() {}

// Interactive reports whether an element can be selected and activated.
func Interactive(e Element) bool {
	switch e.(type) {
	case *Link, *Field:
		return true
	default:
		return false
	}
}

// PlainText concatenates the text and link labels of a line, the way
// headings are displayed.
func (l Line) PlainText() string {
	var out []byte
	for _, e := range l.Elements {
		switch el := e.(type) {
		case *Text:
			out = append(out, el.Text...)
		case *Link:
			out = append(out, el.Label...)
		}
	}
	return string(out)
}
