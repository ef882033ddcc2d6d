package document

// Builder assembles a Document in code, bypassing the markup parser.
type Builder struct {
	doc Document
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Line appends a line and returns the builder.
func (b *Builder) Line(l *LineBuilder) *Builder {
	b.doc.Lines = append(b.doc.Lines, l.line)
	return b
}

func (b *Builder) Document() *Document {
	lines := make([]Line, len(b.doc.Lines))
	copy(lines, b.doc.Lines)
	return &Document{Lines: lines}
}

// LineBuilder builds a single Line.
type LineBuilder struct {
	line Line
}

func NewLine() *LineBuilder {
	return &LineBuilder{line: Line{Kind: LineNormal}}
}

// Heading clamps level to 1-3 and uses it as the indent depth, as the
// parser does.
func Heading(level int) *LineBuilder {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &LineBuilder{line: Line{Kind: LineHeading, Level: level, IndentDepth: level}}
}

func Divider(glyph rune) *LineBuilder {
	if glyph < ' ' {
		glyph = DefaultDividerGlyph
	}
	return &LineBuilder{line: Line{Kind: LineDivider, Glyph: glyph}}
}

func Comment() *LineBuilder {
	return &LineBuilder{line: Line{Kind: LineComment}}
}

func (lb *LineBuilder) Indent(depth int) *LineBuilder {
	if depth < 0 {
		depth = 0
	}
	if depth > 3 {
		depth = 3
	}
	lb.line.IndentDepth = depth
	return lb
}

func (lb *LineBuilder) Align(a Alignment) *LineBuilder {
	lb.line.Alignment = a
	return lb
}

func (lb *LineBuilder) Center() *LineBuilder { return lb.Align(AlignCenter) }
func (lb *LineBuilder) Right() *LineBuilder  { return lb.Align(AlignRight) }

func (lb *LineBuilder) Text(s string) *LineBuilder {
	return lb.Styled(s, Style{})
}

func (lb *LineBuilder) Bold(s string) *LineBuilder {
	return lb.Styled(s, Style{Bold: true})
}

func (lb *LineBuilder) Italic(s string) *LineBuilder {
	return lb.Styled(s, Style{Italic: true})
}

func (lb *LineBuilder) Underline(s string) *LineBuilder {
	return lb.Styled(s, Style{Underline: true})
}

func (lb *LineBuilder) Styled(s string, style Style) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, &Text{Text: s, Style: style})
	return lb
}

// Link adds a link; an empty label shows the URL.
func (lb *LineBuilder) Link(label, url string, fields ...string) *LineBuilder {
	if label == "" {
		label = url
	}
	lb.line.Elements = append(lb.line.Elements, &Link{Label: label, URL: url, Fields: fields})
	return lb
}

func (lb *LineBuilder) TextField(name, def string, width int) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, &Field{Name: name, Default: def, Width: width})
	return lb
}

func (lb *LineBuilder) Password(name string, width int) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, &Field{Name: name, Width: width, Masked: true})
	return lb
}

func (lb *LineBuilder) Checkbox(name, label string, checked bool) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, &Field{Name: name, Default: label, Kind: FieldCheckbox, Checked: checked})
	return lb
}

// Radio adds a radio button; an empty value submits the label.
func (lb *LineBuilder) Radio(name, value, label string, checked bool) *LineBuilder {
	if value == "" {
		value = label
	}
	lb.line.Elements = append(lb.line.Elements, &Field{Name: name, Default: label, Kind: FieldRadio, Value: value, Checked: checked})
	return lb
}

func (lb *LineBuilder) Partial(url string, refresh *int, fields ...string) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, &Partial{URL: url, Refresh: refresh, Fields: fields})
	return lb
}

func (lb *LineBuilder) Element(e Element) *LineBuilder {
	lb.line.Elements = append(lb.line.Elements, e)
	return lb
}
