// Package browser is the page viewer state machine: history, scrolling,
// selection, form values and the render cache.
package browser

import (
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/micronaut/internal/document"
	"github.com/kobzarvs/micronaut/internal/layout"
	"github.com/kobzarvs/micronaut/internal/logger"
	"github.com/kobzarvs/micronaut/internal/markup"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// HistoryEntry is a page as it was when the user left it.
type HistoryEntry struct {
	URL     string
	Content string
	Scroll  int
}

// Interaction is what the host must act on after Interact or Click: a
// LinkInteraction or an EditInteraction.
type Interaction interface {
	interaction()
}

// LinkInteraction asks the host to follow URL, submitting FormData.
type LinkInteraction struct {
	URL      string
	Fields   []string
	FormData map[string]string
}

// EditInteraction asks the host to collect new text for a field and hand
// it back through SetFieldValue.
type EditInteraction struct {
	Name   string
	Value  string
	Masked bool
}

func (LinkInteraction) interaction() {}
func (EditInteraction) interaction() {}

// staleness says how much of the render cache has to be recomputed.
type staleness uint8

const (
	fresh staleness = iota
	// visualStale re-runs layout for new content but keeps the hit map.
	visualStale
	// hitboxesStale needs a full layout.
	hitboxesStale
)

// Browser shows one page at a time. It is not safe for concurrent use.
type Browser[T any] struct {
	renderer layout.Renderer[T]

	url     string
	content string
	loaded  bool
	doc     *document.Document

	back    []HistoryEntry
	forward []HistoryEntry

	width  int
	height int
	scroll int

	selected int
	hitboxes []layout.Hitbox
	form     *layout.FormState

	output        T
	contentHeight int
	stale         staleness
}

func New[T any](renderer layout.Renderer[T]) *Browser[T] {
	return &Browser[T]{
		renderer: renderer,
		width:    DefaultWidth,
		height:   DefaultHeight,
		form:     layout.NewFormState(),
	}
}

// SetContent shows a new page. The current page, if any, goes onto the
// back stack and the forward stack is dropped.
func (b *Browser[T]) SetContent(url, text string) {
	if b.loaded {
		b.back = append(b.back, b.entry())
	}
	b.forward = nil
	b.load(HistoryEntry{URL: url, Content: text})
	b.trace("set content", "bytes", len(text))
}

// Back returns to the previous page. It reports false when there is none.
func (b *Browser[T]) Back() bool {
	if len(b.back) == 0 {
		return false
	}
	entry := b.back[len(b.back)-1]
	b.back = b.back[:len(b.back)-1]
	if b.loaded {
		b.forward = append(b.forward, b.entry())
	}
	b.load(entry)
	b.trace("back")
	return true
}

// Forward undoes a Back. It reports false when there is nothing to redo.
func (b *Browser[T]) Forward() bool {
	if len(b.forward) == 0 {
		return false
	}
	entry := b.forward[len(b.forward)-1]
	b.forward = b.forward[:len(b.forward)-1]
	if b.loaded {
		b.back = append(b.back, b.entry())
	}
	b.load(entry)
	b.trace("forward")
	return true
}

// trace logs a browser event. Every entry carries the page, history and
// viewport fields so a log can be followed page by page.
func (b *Browser[T]) trace(event string, kv ...any) {
	fields := []any{"url", b.url, "back", len(b.back), "forward", len(b.forward),
		"scroll", b.scroll, "selected", b.selected}
	logger.Debug("browser: "+event, append(fields, kv...)...)
}

func (b *Browser[T]) entry() HistoryEntry {
	return HistoryEntry{URL: b.url, Content: b.content, Scroll: b.scroll}
}

func (b *Browser[T]) load(e HistoryEntry) {
	b.url = e.URL
	b.content = e.Content
	b.loaded = true
	b.doc = markup.Parse(e.Content)
	b.form.Reset()
	b.selected = 0
	b.hitboxes = nil
	b.rebuild(0)
	b.scroll = b.clamp(e.Scroll)
}

// Resize sets the viewport size. A new width lays the page out again.
func (b *Browser[T]) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	widthChanged := width != b.width
	b.width, b.height = width, height
	if widthChanged && b.loaded {
		b.invalidate(hitboxesStale)
		b.refresh()
	}
	b.ScrollTo(b.scroll)
}

// rebuild runs a full layout. hint is the logical index that should stay
// selected; the first hitbox carrying it becomes the selection.
func (b *Browser[T]) rebuild(hint int) {
	out := b.renderer.Render(b.doc, b.width, b.form, hint)
	b.hitboxes = out.Hitboxes
	b.contentHeight = out.Height
	b.output = out.Content
	b.stale = fresh

	b.selected = 0
	for i, hb := range b.hitboxes {
		if hb.Index == hint {
			b.selected = i
			break
		}
	}
	if b.selectedIndex() != hint {
		b.stale = visualStale
	}
	if b.form.Seed(b.hitboxes) > 0 {
		b.stale = visualStale
	}
	b.trace("rebuild", "width", b.width, "height", b.contentHeight, "hitboxes", len(b.hitboxes))
}

func (b *Browser[T]) invalidate(s staleness) {
	b.stale = max(b.stale, s)
}

// refresh brings the cached output up to date.
func (b *Browser[T]) refresh() {
	switch b.stale {
	case hitboxesStale:
		b.rebuild(b.selectedIndex())
	case visualStale:
		out := b.renderer.Render(b.doc, b.width, b.form, b.selectedIndex())
		b.output = out.Content
		b.stale = fresh
	}
}

// Render returns the page laid out for the current viewport. ok is false
// until a page has been loaded.
func (b *Browser[T]) Render() (out T, ok bool) {
	if !b.loaded {
		return out, false
	}
	b.refresh()
	return b.output, true
}

func (b *Browser[T]) clamp(y int) int {
	return min(max(y, 0), max(b.contentHeight-b.height, 0))
}

// ScrollTo moves the viewport so row y is at the top, as far as the page
// allows.
func (b *Browser[T]) ScrollTo(y int) {
	y = b.clamp(y)
	if y != b.scroll {
		b.scroll = y
		b.invalidate(visualStale)
	}
}

func (b *Browser[T]) ScrollBy(delta int) {
	b.ScrollTo(b.scroll + delta)
}

// SelectNext moves the selection to the next hitbox, wrapping around.
func (b *Browser[T]) SelectNext() {
	if len(b.hitboxes) == 0 {
		return
	}
	b.selected = (b.selected + 1) % len(b.hitboxes)
	b.selectionMoved()
}

// SelectPrev moves the selection to the previous hitbox, wrapping around.
func (b *Browser[T]) SelectPrev() {
	if len(b.hitboxes) == 0 {
		return
	}
	b.selected = (b.selected - 1 + len(b.hitboxes)) % len(b.hitboxes)
	b.selectionMoved()
}

func (b *Browser[T]) selectionMoved() {
	row := b.hitboxes[b.selected].Row
	switch {
	case row < b.scroll:
		b.scroll = row
	case row >= b.scroll+b.height:
		b.scroll = row - b.height + 1
	}
	b.invalidate(visualStale)
}

// selectedIndex is the logical index of the selected interactable, or -1.
func (b *Browser[T]) selectedIndex() int {
	if b.selected < 0 || b.selected >= len(b.hitboxes) {
		return -1
	}
	return b.hitboxes[b.selected].Index
}

// Click activates whatever lies under viewport cell (x, y). A click that
// hits nothing ends any field edit and returns nil.
func (b *Browser[T]) Click(x, y int) Interaction {
	row := y + b.scroll
	for i, hb := range b.hitboxes {
		if hb.Contains(x, row) {
			if i != b.selected {
				b.selected = i
				b.invalidate(visualStale)
			}
			return b.Interact()
		}
	}
	b.CancelEdit()
	return nil
}

// Interact activates the selected element. Links and text fields return
// an Interaction for the host; checkboxes and radio buttons change the form
// in place and return nil.
func (b *Browser[T]) Interact() Interaction {
	if b.selected < 0 || b.selected >= len(b.hitboxes) {
		return nil
	}
	switch t := b.hitboxes[b.selected].Target.(type) {
	case layout.LinkTarget:
		b.trace("follow link", "target", t.URL, "fields", t.Fields)
		return LinkInteraction{URL: t.URL, Fields: t.Fields, FormData: b.collectFormData(t.Fields)}
	case layout.TextFieldTarget:
		b.form.Editing = t.Name
		b.invalidate(visualStale)
		return EditInteraction{Name: t.Name, Value: b.form.Fields[t.Name], Masked: t.Masked}
	case layout.CheckboxTarget:
		b.form.Checkboxes[t.Name] = !b.form.Checkboxes[t.Name]
		b.invalidate(visualStale)
	case layout.RadioTarget:
		b.form.Radios[t.Name] = t.Value
		b.invalidate(visualStale)
	}
	return nil
}

// collectFormData evaluates link field specs in order: "name=value" adds a
// literal, "*" adds every control and a bare name adds that control.
// Checkboxes only contribute when checked, as "1".
func (b *Browser[T]) collectFormData(specs []string) map[string]string {
	data := map[string]string{}
	for _, spec := range specs {
		if name, value, ok := strings.Cut(spec, "="); ok {
			data[name] = value
			continue
		}
		if spec == "*" {
			for name, value := range b.form.Fields {
				data[name] = value
			}
			for name, on := range b.form.Checkboxes {
				if on {
					data[name] = "1"
				}
			}
			for name, value := range b.form.Radios {
				data[name] = value
			}
			continue
		}
		if value, ok := b.form.Fields[spec]; ok {
			data[spec] = value
		}
		if b.form.Checkboxes[spec] {
			data[spec] = "1"
		}
		if value, ok := b.form.Radios[spec]; ok {
			data[spec] = value
		}
	}
	return data
}

// SetFieldValue replaces the text of a field on the current page. Names
// that are not text fields of the page are ignored and reported as false.
func (b *Browser[T]) SetFieldValue(name, value string) bool {
	if _, ok := b.form.Fields[name]; !ok {
		return false
	}
	b.form.Fields[name] = value
	b.invalidate(visualStale)
	return true
}

// IsEditing reports whether a text field is taking keystrokes.
func (b *Browser[T]) IsEditing() bool {
	return b.form.Editing != ""
}

// CancelEdit stops editing. The typed text is kept.
func (b *Browser[T]) CancelEdit() {
	if b.form.Editing != "" {
		b.form.Editing = ""
		b.invalidate(visualStale)
	}
}

// InputRune appends r to the field being edited and reports whether there
// was one.
func (b *Browser[T]) InputRune(r rune) bool {
	name := b.form.Editing
	if name == "" {
		return false
	}
	b.form.Fields[name] += string(r)
	b.invalidate(visualStale)
	return true
}

// Backspace removes the last rune of the field being edited.
func (b *Browser[T]) Backspace() bool {
	name := b.form.Editing
	if name == "" {
		return false
	}
	if v := b.form.Fields[name]; v != "" {
		_, size := utf8.DecodeLastRuneInString(v)
		b.form.Fields[name] = v[:len(v)-size]
		b.invalidate(visualStale)
	}
	return true
}

// URL returns the address of the current page, or "" before the first
// SetContent.
func (b *Browser[T]) URL() string { return b.url }

func (b *Browser[T]) HasContent() bool   { return b.loaded }
func (b *Browser[T]) CanGoBack() bool    { return len(b.back) > 0 }
func (b *Browser[T]) CanGoForward() bool { return len(b.forward) > 0 }
func (b *Browser[T]) ScrollOffset() int  { return b.scroll }

// Height is the number of rows the whole page occupies.
func (b *Browser[T]) Height() int { return b.contentHeight }

// Size returns the viewport width and height.
func (b *Browser[T]) Size() (int, int) { return b.width, b.height }

// Selected returns the index of the selected hitbox.
func (b *Browser[T]) Selected() int { return b.selected }

// SelectedHitbox returns the selected hitbox, if there is one.
func (b *Browser[T]) SelectedHitbox() (layout.Hitbox, bool) {
	if b.selected < 0 || b.selected >= len(b.hitboxes) {
		return layout.Hitbox{}, false
	}
	return b.hitboxes[b.selected], true
}

// SelectedLink returns the URL of the selected link.
func (b *Browser[T]) SelectedLink() (string, bool) {
	hb, ok := b.SelectedHitbox()
	if !ok {
		return "", false
	}
	link, ok := hb.Target.(layout.LinkTarget)
	return link.URL, ok
}

func (b *Browser[T]) Hitboxes() []layout.Hitbox {
	return b.hitboxes
}

// Document returns the parsed current page, or nil.
func (b *Browser[T]) Document() *document.Document {
	return b.doc
}

// FormState returns a copy of the current form values.
func (b *Browser[T]) FormState() *layout.FormState {
	return b.form.Clone()
}
