// Package layout turns a document into styled rows and the hit map used to
// route clicks and keyboard selection.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/micronaut/internal/document"
)

// CellStyle is the style of one run of terminal cells. A nil colour means
// the terminal default.
type CellStyle struct {
	Fg        *document.Color
	Bg        *document.Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
}

func fromStyle(s document.Style) CellStyle {
	return CellStyle{Fg: s.Fg, Bg: s.Bg, Bold: s.Bold, Italic: s.Italic, Underline: s.Underline}
}

type Span struct {
	Text  string
	Style CellStyle
}

// Row is one rendered line of output.
type Row []Span

// String returns the row's text without styling.
func (r Row) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the number of terminal columns the row occupies.
func (r Row) Width() int {
	return runewidth.StringWidth(r.String())
}

// Hitbox maps the half-open column range [ColStart, ColEnd) of Row to an
// interactable element. Every fragment of a wrapped element shares its
// Index, the element's position among the page's interactive elements.
type Hitbox struct {
	Row      int
	ColStart int
	ColEnd   int
	Index    int
	Target   Interactable
}

// Contains reports whether the cell at (col, row) lies inside the hitbox.
func (h Hitbox) Contains(col, row int) bool {
	return h.Row == row && col >= h.ColStart && col < h.ColEnd
}

// Interactable is one of LinkTarget, TextFieldTarget, CheckboxTarget or
// RadioTarget.
type Interactable interface {
	interactable()
}

type LinkTarget struct {
	URL    string
	Fields []string
}

type TextFieldTarget struct {
	Name    string
	Default string
	Masked  bool
}

// CheckboxTarget carries the checkbox name and its state in the document.
type CheckboxTarget struct {
	Name    string
	Checked bool
}

// RadioTarget carries one button of a radio group.
type RadioTarget struct {
	Name    string
	Value   string
	Checked bool
}

func (LinkTarget) interactable()      {}
func (TextFieldTarget) interactable() {}
func (CheckboxTarget) interactable()  {}
func (RadioTarget) interactable()     {}

// Output is the result of laying out a document: backend specific content,
// the hit map and the number of rows.
type Output[T any] struct {
	Content  T
	Hitboxes []Hitbox
	Height   int
}

// Renderer lays out a document for one output representation. selected is
// the logical index of the highlighted interactable, or -1.
type Renderer[T any] interface {
	Render(doc *document.Document, width int, form *FormState, selected int) Output[T]
}
