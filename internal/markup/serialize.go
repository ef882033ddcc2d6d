package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kobzarvs/micronaut/internal/document"
)

// Serialize writes a Document as markup. Parsing the output of Serialize
// gives back a Document equal to one produced by Parse.
func Serialize(doc *document.Document) string {
	w := &writer{}
	for i := range doc.Lines {
		w.line(&doc.Lines[i])
	}
	out := strings.Join(w.lines, "\n")
	if n := len(w.lines); n > 0 && w.lines[n-1] == "" {
		out += "\n"
	}
	return out
}

// writer mirrors the parser's state so it only emits commands where the
// state has to change.
type writer struct {
	lines    []string
	lastKind document.LineKind
	style    document.Style
	align    document.Alignment
	depth    int
}

func (w *writer) line(l *document.Line) {
	// Lines without elements take the alignment already in force, so a
	// change has to ride on the end of the line before.
	if (len(l.Elements) == 0 || l.Kind == document.LineDivider || l.Kind == document.LineComment) && l.Alignment != w.align {
		if n := len(w.lines); n > 0 && (w.lastKind == document.LineNormal || w.lastKind == document.LineHeading) {
			w.lines[n-1] += alignMarker(l.Alignment)
			w.align = l.Alignment
		}
	}

	var b strings.Builder
	switch l.Kind {
	case document.LineComment:
		b.WriteByte('#')
	case document.LineDivider:
		b.WriteByte('-')
		if l.Glyph >= ' ' && l.Glyph != document.DefaultDividerGlyph {
			b.WriteRune(l.Glyph)
		}
	case document.LineHeading:
		level := min(max(l.Level, 1), 3)
		b.WriteString(strings.Repeat(">", level))
		w.depth = level
		body := w.body(l, true)
		if strings.HasPrefix(body, ">") {
			b.WriteByte('\\')
		}
		b.WriteString(body)
	default:
		body := w.body(l, false)
		switch {
		case l.IndentDepth == 0 && w.depth != 0:
			b.WriteByte('<')
			w.depth = 0
		case body != "" && strings.ContainsRune("#<>-", rune(body[0])):
			b.WriteByte('\\')
		}
		b.WriteString(body)
	}
	line := b.String()
	if strings.HasSuffix(line, "\r") {
		// A trailing CR is dropped when lines are split.
		line += "`="
	}
	w.lines = append(w.lines, line)
	w.lastKind = l.Kind
}

func (w *writer) body(l *document.Line, heading bool) string {
	var b strings.Builder
	if len(l.Elements) > 0 && l.Alignment != w.align {
		b.WriteString(alignMarker(l.Alignment))
		w.align = l.Alignment
	}
	prevText := false
	for _, e := range l.Elements {
		switch el := e.(type) {
		case *document.Text:
			// Two runs with one style need a no-op command between them or
			// they would read back as a single run.
			if !w.setStyle(&b, el.Style) && prevText {
				b.WriteString("`=")
			}
			b.WriteString(escapeText(el.Text, heading))
		case *document.Link:
			w.setStyle(&b, el.Style)
			writeLink(&b, el)
		case *document.Field:
			writeField(&b, el)
		case *document.Partial:
			writePartial(&b, el)
		}
		_, prevText = e.(*document.Text)
	}
	return b.String()
}

// setStyle writes the commands that turn the current style into s and
// reports whether it wrote any.
func (w *writer) setStyle(b *strings.Builder, s document.Style) bool {
	start := b.Len()
	if s.Bold != w.style.Bold {
		b.WriteString("`!")
	}
	if s.Italic != w.style.Italic {
		b.WriteString("`*")
	}
	if s.Underline != w.style.Underline {
		b.WriteString("`_")
	}
	if !sameColor(s.Fg, w.style.Fg) {
		if s.Fg == nil {
			b.WriteString("`f")
		} else {
			b.WriteString("`F" + encodeColor(*s.Fg))
		}
	}
	if !sameColor(s.Bg, w.style.Bg) {
		if s.Bg == nil {
			b.WriteString("`b")
		} else {
			b.WriteString("`B" + encodeColor(*s.Bg))
		}
	}
	w.style = s
	return b.Len() > start
}

func sameColor(a, b *document.Color) bool {
	return document.Style{Fg: a}.Equal(document.Style{Fg: b})
}

func alignMarker(a document.Alignment) string {
	switch a {
	case document.AlignCenter:
		return "`c"
	case document.AlignRight:
		return "`r"
	default:
		return "`a"
	}
}

// encodeColor picks the three character code that decodes to c: hex nibbles
// when every channel is a multiple of 17, a gray level when one fits, and
// the nearest nibble triple otherwise.
func encodeColor(c document.Color) string {
	if c.R%17 == 0 && c.G%17 == 0 && c.B%17 == 0 {
		return fmt.Sprintf("%x%x%x", c.R/17, c.G/17, c.B/17)
	}
	if c.R == c.G && c.G == c.B {
		for level := 0; level <= 99; level++ {
			if level*255/99 == int(c.R) {
				return fmt.Sprintf("g%02d", level)
			}
		}
	}
	round := func(v uint8) int { return (int(v) + 8) / 17 }
	return fmt.Sprintf("%x%x%x", round(c.R), round(c.G), round(c.B))
}

var (
	textEscaper    = strings.NewReplacer(`\`, `\\`, "`", "\\`")
	headingEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "<", `\<`)
)

func escapeText(s string, heading bool) string {
	if heading {
		return headingEscaper.Replace(s)
	}
	return textEscaper.Replace(s)
}

func writeLink(b *strings.Builder, l *document.Link) {
	b.WriteString("`[")
	switch {
	case len(l.Fields) > 0:
		if l.Label != l.URL {
			b.WriteString(l.Label)
		}
		b.WriteString("`" + l.URL + "`" + strings.Join(l.Fields, "|"))
	case l.Label != l.URL:
		b.WriteString(l.Label + "`" + l.URL)
	default:
		b.WriteString(l.URL)
	}
	b.WriteByte(']')
}

func writeField(b *strings.Builder, f *document.Field) {
	b.WriteString("`<")
	switch f.Kind {
	case document.FieldCheckbox, document.FieldRadio:
		if f.Kind == document.FieldCheckbox {
			b.WriteByte('?')
		} else {
			b.WriteByte('^')
		}
		b.WriteString("|" + f.Name + "|" + f.Value)
		if f.Checked {
			b.WriteString("|*")
		}
	default:
		if f.Masked {
			b.WriteByte('!')
		}
		switch {
		case f.Width > 0:
			b.WriteString(strconv.Itoa(f.Width) + "|")
		case strings.Contains(f.Name, "|") || strings.HasPrefix(f.Name, "!") ||
			strings.HasPrefix(f.Name, "?") || strings.HasPrefix(f.Name, "^"):
			b.WriteByte('|')
		}
		b.WriteString(f.Name)
	}
	b.WriteString("`" + f.Default + ">")
}

func writePartial(b *strings.Builder, p *document.Partial) {
	b.WriteString("`{" + p.URL)
	if p.Refresh != nil || len(p.Fields) > 0 {
		b.WriteByte('`')
		if p.Refresh != nil {
			b.WriteString(strconv.Itoa(*p.Refresh))
		}
	}
	if len(p.Fields) > 0 {
		b.WriteString("`" + strings.Join(p.Fields, "|"))
	}
	b.WriteByte('}')
}
