// Package markup converts between micron markup text and document.Document.
package markup

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/micronaut/internal/document"
)

// literalToggle is the line that switches literal mode on and off.
const literalToggle = "`="

// parseState is carried from line to line. Style, alignment and depth only
// change when markup says so; a line break never resets them.
type parseState struct {
	literal   bool
	depth     int
	fg        *document.Color
	bg        *document.Color
	bold      bool
	italic    bool
	underline bool
	align     document.Alignment
}

func (s *parseState) style() document.Style {
	st := document.Style{Bold: s.bold, Italic: s.italic, Underline: s.underline}
	if s.fg != nil {
		c := *s.fg
		st.Fg = &c
	}
	if s.bg != nil {
		c := *s.bg
		st.Bg = &c
	}
	return st
}

func (s *parseState) reset() {
	s.fg = nil
	s.bg = nil
	s.bold = false
	s.italic = false
	s.underline = false
	s.align = document.AlignLeft
}

// Parse turns markup text into a Document. It never fails: malformed
// commands are dropped or read as plain text.
func Parse(text string) *document.Document {
	st := &parseState{}
	doc := &document.Document{}
	for _, raw := range splitLines(text) {
		if line, ok := parseLine(raw, st); ok {
			doc.Lines = append(doc.Lines, line)
		}
	}
	return doc
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func parseLine(raw string, st *parseState) (document.Line, bool) {
	if raw == literalToggle {
		st.literal = !st.literal
		return document.Line{}, false
	}
	if st.literal {
		return literalLine(raw, st), true
	}

	line := raw
	if strings.HasPrefix(line, ">") && strings.Contains(line, "`<") {
		line = strings.TrimLeft(line, ">")
	}
	escaped := false
	if strings.HasPrefix(line, `\`) {
		line = line[1:]
		escaped = true
	}

	if !escaped {
		switch {
		case strings.HasPrefix(line, "#"):
			return document.Line{
				Kind:        document.LineComment,
				IndentDepth: st.depth,
				Alignment:   st.align,
			}, true
		case strings.HasPrefix(line, "<"):
			st.depth = 0
			elems, align := scanInline(line[1:], st, false)
			return document.Line{Kind: document.LineNormal, Alignment: align, Elements: elems}, true
		case strings.HasPrefix(line, ">"):
			level := 0
			for level < 3 && level < len(line) && line[level] == '>' {
				level++
			}
			st.depth = level
			rest := line[level:]
			heading := document.Line{Kind: document.LineHeading, Level: level, IndentDepth: level, Alignment: st.align}
			if rest != "" {
				heading.Elements, heading.Alignment = scanInline(rest, st, false)
			}
			return heading, true
		case strings.HasPrefix(line, "-"):
			glyph := document.DefaultDividerGlyph
			if r, size := utf8.DecodeRuneInString(line[1:]); size > 0 && r >= ' ' {
				glyph = r
			}
			return document.Line{
				Kind:        document.LineDivider,
				Glyph:       glyph,
				IndentDepth: st.depth,
				Alignment:   st.align,
			}, true
		}
	}

	elems, align := scanInline(line, st, escaped)
	return document.Line{Kind: document.LineNormal, IndentDepth: st.depth, Alignment: align, Elements: elems}, true
}

func literalLine(raw string, st *parseState) document.Line {
	l := document.Line{Kind: document.LineNormal, IndentDepth: st.depth, Alignment: st.align}
	text := strings.ReplaceAll(raw, "\\"+literalToggle, literalToggle)
	if text != "" {
		l.Elements = []document.Element{&document.Text{Text: text}}
	}
	return l
}

// scanner reads the inline content of one line.
type scanner struct {
	st     *parseState
	src    []rune
	pos    int
	buf    strings.Builder
	elems  []document.Element
	align  document.Alignment
	frozen bool
}

// scanInline returns the elements of a line and the line's alignment, which
// is the alignment in force when its first element was emitted.
func scanInline(text string, st *parseState, escaped bool) ([]document.Element, document.Alignment) {
	s := &scanner{st: st, src: []rune(text), align: st.align}
	escape := escaped
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == '\\':
			if escape {
				s.buf.WriteRune(r)
			}
			escape = !escape
			s.pos++
		case r == '`' && !escape:
			s.flush()
			s.pos++
			s.command()
		default:
			s.buf.WriteRune(r)
			escape = false
			s.pos++
		}
	}
	s.flush()
	return s.elems, s.align
}

func (s *scanner) emit(e document.Element) {
	if !s.frozen {
		s.align = s.st.align
		s.frozen = true
	}
	s.elems = append(s.elems, e)
}

func (s *scanner) flush() {
	if s.buf.Len() == 0 {
		return
	}
	s.emit(&document.Text{Text: s.buf.String(), Style: s.st.style()})
	s.buf.Reset()
}

func (s *scanner) at(i int) rune {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// command runs the backtick command at s.pos. An unknown command character
// is left in place and read as text.
func (s *scanner) command() {
	if s.pos >= len(s.src) {
		return
	}
	st := s.st
	switch s.src[s.pos] {
	case '!':
		st.bold = !st.bold
	case '*':
		st.italic = !st.italic
	case '_':
		st.underline = !st.underline
	case 'F':
		s.pos++
		if c, ok := s.color(); ok {
			st.fg = c
		}
		return
	case 'f':
		st.fg = nil
	case 'B':
		s.pos++
		if c, ok := s.color(); ok {
			st.bg = c
		}
		return
	case 'b':
		st.bg = nil
	case '`':
		st.reset()
	case 'c':
		st.align = document.AlignCenter
	case 'l', 'a':
		st.align = document.AlignLeft
	case 'r':
		st.align = document.AlignRight
	case '=':
	case '[':
		if link, end, ok := s.link(s.pos + 1); ok {
			s.emit(link)
			s.pos = end
		}
		return
	case '<':
		if field, end, ok := s.field(s.pos + 1); ok {
			s.emit(field)
			s.pos = end
		}
		return
	case '{':
		if partial, end, ok := s.partial(s.pos + 1); ok {
			s.emit(partial)
			s.pos = end
		}
		return
	default:
		return
	}
	s.pos++
}

// color reads a three character colour code. Codes cut short by the end of
// the line are ignored without consuming anything.
func (s *scanner) color() (*document.Color, bool) {
	if len(s.src)-s.pos < 3 {
		return nil, false
	}
	code := s.src[s.pos : s.pos+3]
	s.pos += 3
	c := decodeColor(code)
	return &c, true
}

func decodeColor(code []rune) document.Color {
	if code[0] == 'g' {
		level := 0
		if isDigit(code[1]) && isDigit(code[2]) {
			level = int(code[1]-'0')*10 + int(code[2]-'0')
		}
		v := uint8(level * 255 / 99)
		return document.Color{R: v, G: v, B: v}
	}
	return document.Color{R: nibble(code[0]) * 17, G: nibble(code[1]) * 17, B: nibble(code[2]) * 17}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func nibble(r rune) uint8 {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0')
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10
	default:
		return 0
	}
}

// until returns the text from p up to the first stop rune and the index of
// that rune. ok is false when the line ends first.
func (s *scanner) until(p int, stops ...rune) (string, int, bool) {
	for i := p; i < len(s.src); i++ {
		for _, stop := range stops {
			if s.src[i] == stop {
				return string(s.src[p:i]), i, true
			}
		}
	}
	return string(s.src[p:]), len(s.src), false
}

// link parses `[label`url`fields] starting after the '['.
func (s *scanner) link(p int) (*document.Link, int, bool) {
	body, end, ok := s.until(p, ']')
	if !ok {
		return nil, 0, false
	}
	parts := strings.SplitN(body, "`", 3)
	link := &document.Link{Style: s.st.style()}
	switch len(parts) {
	case 1:
		link.URL = parts[0]
	case 2:
		link.Label, link.URL = parts[0], parts[1]
	default:
		link.Label, link.URL = parts[0], parts[1]
		if parts[2] != "" {
			link.Fields = strings.Split(parts[2], "|")
		}
	}
	if link.Label == "" {
		link.Label = link.URL
	}
	return link, end + 1, true
}

// field parses `<...> starting after the '<'.
func (s *scanner) field(p int) (*document.Field, int, bool) {
	f := &document.Field{}
	if s.at(p) == '!' {
		f.Masked = true
		p++
	}
	checkbox := s.at(p) == '?'
	if checkbox {
		p++
	}
	radio := s.at(p) == '^'
	if radio {
		p++
	}

	if checkbox || radio {
		f.Masked = false
		if s.at(p) == '|' {
			p++
		}
		name, i, ok := s.until(p, '|')
		if !ok {
			return nil, 0, false
		}
		value, i, _ := s.until(i+1, '`', '|')
		if s.at(i) == '|' && s.at(i+1) == '*' {
			f.Checked = true
			i += 2
		}
		if s.at(i) != '`' {
			return nil, 0, false
		}
		label, end, ok := s.until(i+1, '>')
		if !ok {
			return nil, 0, false
		}
		f.Name, f.Default, f.Value = name, label, value
		f.Kind = document.FieldCheckbox
		if !checkbox {
			f.Kind = document.FieldRadio
			if value == "" {
				f.Value = label
			}
		}
		return f, end + 1, true
	}

	spec, i, ok := s.until(p, '`')
	if !ok {
		return nil, 0, false
	}
	def, end, ok := s.until(i+1, '>')
	if !ok {
		return nil, 0, false
	}
	f.Name = spec
	if w, name, found := strings.Cut(spec, "|"); found {
		f.Name = name
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			f.Width = n
		}
	}
	f.Default = def
	return f, end + 1, true
}

// partial parses `{url`refresh`fields} starting after the '{'.
func (s *scanner) partial(p int) (*document.Partial, int, bool) {
	url, i, _ := s.until(p, '`', '}')
	part := &document.Partial{URL: url}
	if s.at(i) == '`' {
		var refresh string
		refresh, i, _ = s.until(i+1, '`', '}')
		if n, err := strconv.Atoi(refresh); err == nil && n >= 0 {
			part.Refresh = &n
		}
	}
	if s.at(i) == '`' {
		fields, end, ok := s.until(i+1, '}')
		if !ok {
			return nil, 0, false
		}
		part.Fields = strings.Split(fields, "|")
		i = end
	}
	if s.at(i) != '}' {
		return nil, 0, false
	}
	return part, i + 1, true
}
