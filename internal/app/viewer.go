package app

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/micronaut/internal/browser"
	"github.com/kobzarvs/micronaut/internal/config"
	"github.com/kobzarvs/micronaut/internal/layout"
	"github.com/kobzarvs/micronaut/internal/logger"
	"github.com/kobzarvs/micronaut/internal/term"
)

//go:embed sample.mu
var samplePage string

// SampleURL is the address of the built-in page.
const SampleURL = "about:sample"

type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeNavigate
)

// Viewer binds a Browser to a tcell screen: it turns key and mouse events
// into browser calls and draws the page with a status line underneath.
type Viewer struct {
	browser    *browser.Browser[[]term.Line]
	keymap     config.Keymap
	scrollStep int

	// root is the directory that links starting with "/" resolve against.
	root string

	mode       Mode
	prompt     []rune
	editName   string
	editOrig   string
	editMasked bool
	status     string
	mouseDown  bool

	styleStatus tcell.Style
	stylePrompt tcell.Style
}

func NewViewer(cfg config.Config, root string) (*Viewer, error) {
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	sfg, sbg, err := cfg.Theme.Statusline()
	if err != nil {
		return nil, err
	}
	pfg, pbg, err := cfg.Theme.Prompt()
	if err != nil {
		return nil, err
	}
	step := cfg.Browser.ScrollStep
	if step <= 0 {
		step = 3
	}
	return &Viewer{
		browser:     browser.New[[]term.Line](term.NewRenderer(engine)),
		keymap:      cfg.Keymap,
		scrollStep:  step,
		root:        root,
		styleStatus: tcell.StyleDefault.Foreground(term.Color(sfg)).Background(term.Color(sbg)),
		stylePrompt: tcell.StyleDefault.Foreground(term.Color(pfg)).Background(term.Color(pbg)),
	}, nil
}

func (v *Viewer) Mode() Mode { return v.mode }

func (v *Viewer) Status() string { return v.status }

func (v *Viewer) Browser() *browser.Browser[[]term.Line] { return v.browser }

// Open loads a page from disk.
func (v *Viewer) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	v.browser.SetContent(path, string(data))
	logger.Info("page opened", "path", path, "bytes", len(data))
	return nil
}

func (v *Viewer) OpenSample() {
	v.browser.SetContent(SampleURL, samplePage)
}

// resolve maps a link target to a file. Targets starting with "/" are
// relative to the root directory, others to the current page. A
// "destination:" prefix in front of the path is ignored.
func (v *Viewer) resolve(target string) (string, error) {
	if target == "" {
		return "", errors.New("empty link")
	}
	if strings.Contains(target, "://") {
		return "", fmt.Errorf("%s: remote pages are not supported", target)
	}
	if _, p, ok := strings.Cut(target, ":/"); ok {
		target = "/" + p
	}
	if strings.HasPrefix(target, "/") {
		return filepath.Join(v.root, filepath.FromSlash(target)), nil
	}
	base := v.root
	if cur := v.browser.URL(); cur != "" && cur != SampleURL {
		base = filepath.Dir(cur)
	}
	return filepath.Join(base, filepath.FromSlash(target)), nil
}

func (v *Viewer) navigate(target string) error {
	if target == SampleURL {
		v.OpenSample()
		return nil
	}
	path, err := v.resolve(target)
	if err != nil {
		return err
	}
	return v.Open(path)
}

func (v *Viewer) follow(link browser.LinkInteraction) {
	if err := v.navigate(link.URL); err != nil {
		logger.Warn("follow link failed", "url", link.URL, "error", err)
		v.status = err.Error()
		return
	}
	if len(link.FormData) > 0 {
		q := url.Values{}
		for k, val := range link.FormData {
			q.Set(k, val)
		}
		v.status = "sent " + q.Encode()
	}
}

func (v *Viewer) handle(in browser.Interaction) {
	switch in := in.(type) {
	case browser.LinkInteraction:
		v.follow(in)
	case browser.EditInteraction:
		v.mode = ModeEdit
		v.editName, v.editOrig, v.editMasked = in.Name, in.Value, in.Masked
	}
}

func (v *Viewer) endEdit(keep bool) {
	if !keep {
		v.browser.SetFieldValue(v.editName, v.editOrig)
	}
	v.browser.CancelEdit()
	v.mode = ModeBrowse
	v.editName, v.editOrig = "", ""
}

// HandleEvent processes one screen event and reports whether the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.HandleKey(ev)
	case *tcell.EventMouse:
		v.HandleMouse(ev)
	}
	return false
}

func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	key := keyString(ev)
	switch v.mode {
	case ModeEdit:
		v.editKey(key, ev)
		return false
	case ModeNavigate:
		v.navigateKey(key, ev)
		return false
	}

	v.status = ""
	_, height := v.browser.Size()
	switch v.keymap.Browse[key] {
	case "quit":
		return true
	case "select_next":
		v.browser.SelectNext()
	case "select_prev":
		v.browser.SelectPrev()
	case "interact":
		v.handle(v.browser.Interact())
	case "back":
		if !v.browser.Back() {
			v.status = "no previous page"
		}
	case "forward":
		if !v.browser.Forward() {
			v.status = "no next page"
		}
	case "scroll_up":
		v.browser.ScrollBy(-1)
	case "scroll_down":
		v.browser.ScrollBy(1)
	case "page_up":
		v.browser.ScrollBy(-max(height-1, 1))
	case "page_down":
		v.browser.ScrollBy(max(height-1, 1))
	case "top":
		v.browser.ScrollTo(0)
	case "bottom":
		v.browser.ScrollTo(v.browser.Height())
	case "navigate":
		v.mode = ModeNavigate
		v.prompt = v.prompt[:0]
	}
	return false
}

func (v *Viewer) editKey(key string, ev *tcell.EventKey) {
	switch v.keymap.Prompt[key] {
	case "commit":
		v.endEdit(true)
	case "cancel":
		v.endEdit(false)
	case "delete_char":
		v.browser.Backspace()
	case "clear_line":
		v.browser.SetFieldValue(v.editName, "")
	default:
		if ev.Key() == tcell.KeyRune {
			v.browser.InputRune(ev.Rune())
		}
	}
}

func (v *Viewer) navigateKey(key string, ev *tcell.EventKey) {
	switch v.keymap.Prompt[key] {
	case "commit":
		v.mode = ModeBrowse
		if target := strings.TrimSpace(string(v.prompt)); target != "" {
			if err := v.navigate(target); err != nil {
				v.status = err.Error()
			}
		}
	case "cancel":
		v.mode = ModeBrowse
	case "delete_char":
		if n := len(v.prompt); n > 0 {
			v.prompt = v.prompt[:n-1]
		}
	case "clear_line":
		v.prompt = v.prompt[:0]
	default:
		if ev.Key() == tcell.KeyRune {
			v.prompt = append(v.prompt, ev.Rune())
		}
	}
}

// HandleMouse scrolls on the wheel and clicks on a button 1 press.
func (v *Viewer) HandleMouse(ev *tcell.EventMouse) {
	switch ev.Buttons() {
	case tcell.WheelUp:
		v.browser.ScrollBy(-v.scrollStep)
	case tcell.WheelDown:
		v.browser.ScrollBy(v.scrollStep)
	case tcell.Button1:
		if v.mouseDown {
			return
		}
		v.mouseDown = true
		x, y := ev.Position()
		if _, h := v.browser.Size(); y >= h {
			return
		}
		switch v.mode {
		case ModeEdit:
			v.endEdit(true)
		case ModeNavigate:
			v.mode = ModeBrowse
		}
		v.status = ""
		v.handle(v.browser.Click(x, y))
	default:
		v.mouseDown = false
	}
}

// Render sizes the browser to the screen, draws the visible rows and the
// status line, and shows the result.
func (v *Viewer) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	viewHeight := h - 1
	v.browser.Resize(w, viewHeight)
	lines, _ := v.browser.Render()
	term.Draw(s, lines, v.browser.ScrollOffset(), 0, viewHeight)
	v.drawStatus(s, h-1, w)
	s.Show()
}

func (v *Viewer) drawStatus(s tcell.Screen, y, w int) {
	switch v.mode {
	case ModeEdit:
		value := v.browser.FormState().Fields[v.editName]
		if v.editMasked {
			value = strings.Repeat("*", len([]rune(value)))
		}
		x := term.Print(s, 0, y, w, v.editName+": "+value, v.stylePrompt)
		s.ShowCursor(min(x, w-1), y)
		return
	case ModeNavigate:
		x := term.Print(s, 0, y, w, "go: "+string(v.prompt), v.stylePrompt)
		s.ShowCursor(min(x, w-1), y)
		return
	}
	s.HideCursor()

	left := v.status
	if left == "" {
		left = v.browser.URL()
	}
	term.Print(s, 0, y, w, left, v.styleStatus)
	right := v.selectionLabel()
	rw := runewidth.StringWidth(right)
	if right != "" && runewidth.StringWidth(left)+rw+2 <= w {
		term.Print(s, w-rw-1, y, rw+1, right, v.styleStatus)
	}
}

func (v *Viewer) selectionLabel() string {
	hb, ok := v.browser.SelectedHitbox()
	if !ok {
		return ""
	}
	switch t := hb.Target.(type) {
	case layout.LinkTarget:
		return t.URL
	case layout.TextFieldTarget:
		return "field " + t.Name
	case layout.CheckboxTarget:
		return "checkbox " + t.Name
	case layout.RadioTarget:
		return "radio " + t.Name + "=" + t.Value
	}
	return ""
}
