package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kobzarvs/micronaut/internal/document"
	"github.com/kobzarvs/micronaut/internal/layout"
)

type Keymap struct {
	Browse map[string]string `toml:"browse"`
	Prompt map[string]string `toml:"prompt"`
}

type BrowserOptions struct {
	DefaultFieldWidth int    `toml:"default-field-width"`
	ScrollStep        int    `toml:"scroll-step"`
	Debug             bool   `toml:"debug"`
	Home              string `toml:"home"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Heading1Foreground   string `toml:"heading1-foreground"`
	Heading1Background   string `toml:"heading1-background"`
	Heading2Foreground   string `toml:"heading2-foreground"`
	Heading2Background   string `toml:"heading2-background"`
	Heading3Foreground   string `toml:"heading3-foreground"`
	Heading3Background   string `toml:"heading3-background"`
	FieldForeground      string `toml:"field-foreground"`
	FieldBackground      string `toml:"field-background"`
	PartialForeground    string `toml:"partial-foreground"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	PromptForeground     string `toml:"prompt-foreground"`
	PromptBackground     string `toml:"prompt-background"`
}

type Config struct {
	Browser BrowserOptions `toml:"browser"`
	Theme   Theme          `toml:"theme"`
	Keymap  Keymap         `toml:"keymap"`
}

func Default() Config {
	return Config{
		Browser: BrowserOptions{
			DefaultFieldWidth: layout.DefaultFieldWidth,
			ScrollStep:        3,
		},
		Theme: Theme{
			Theme:                "default",
			Heading1Foreground:   "#222222",
			Heading1Background:   "#bbbbbb",
			Heading2Foreground:   "#111111",
			Heading2Background:   "#999999",
			Heading3Foreground:   "#000000",
			Heading3Background:   "#777777",
			FieldForeground:      "#000000",
			FieldBackground:      "#ffffff",
			StatuslineForeground: "#dddddd",
			StatuslineBackground: "#303030",
			PromptForeground:     "#ffffff",
			PromptBackground:     "#000000",
		},
		Keymap: Keymap{
			Browse: map[string]string{
				"tab":       "select_next",
				"j":         "select_next",
				"shift+tab": "select_prev",
				"k":         "select_prev",
				"enter":     "interact",
				"space":     "interact",
				"left":      "back",
				"backspace": "back",
				"h":         "back",
				"right":     "forward",
				"l":         "forward",
				"up":        "scroll_up",
				"down":      "scroll_down",
				"pgup":      "page_up",
				"pgdn":      "page_down",
				"home":      "top",
				"end":       "bottom",
				"g":         "navigate",
				"q":         "quit",
				"esc":       "quit",
				"ctrl+c":    "quit",
			},
			Prompt: map[string]string{
				"enter":     "commit",
				"esc":       "cancel",
				"ctrl+c":    "cancel",
				"backspace": "delete_char",
				"ctrl+u":    "clear_line",
			},
		},
	}
}

// Load reads config.toml and the theme file it names on top of Default.
// Missing files are not an error.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var user Config
	if _, err := toml.Decode(string(data), &user); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if user.Browser.DefaultFieldWidth > 0 {
		cfg.Browser.DefaultFieldWidth = user.Browser.DefaultFieldWidth
	}
	if user.Browser.ScrollStep > 0 {
		cfg.Browser.ScrollStep = user.Browser.ScrollStep
	}
	if user.Browser.Debug {
		cfg.Browser.Debug = true
	}
	if user.Browser.Home != "" {
		cfg.Browser.Home = user.Browser.Home
	}

	themeName := user.Theme.Theme
	if themeName != "" && themeName != "default" {
		theme, err := LoadTheme(themeName)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
		cfg.Theme.Theme = themeName
	}
	mergeTheme(&cfg.Theme, user.Theme)

	for k, v := range user.Keymap.Browse {
		cfg.Keymap.Browse[k] = v
	}
	for k, v := range user.Keymap.Prompt {
		cfg.Keymap.Prompt[k] = v
	}
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Heading1Foreground, src.Heading1Foreground)
	set(&dst.Heading1Background, src.Heading1Background)
	set(&dst.Heading2Foreground, src.Heading2Foreground)
	set(&dst.Heading2Background, src.Heading2Background)
	set(&dst.Heading3Foreground, src.Heading3Foreground)
	set(&dst.Heading3Background, src.Heading3Background)
	set(&dst.FieldForeground, src.FieldForeground)
	set(&dst.FieldBackground, src.FieldBackground)
	set(&dst.PartialForeground, src.PartialForeground)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.PromptForeground, src.PromptForeground)
	set(&dst.PromptBackground, src.PromptBackground)
}

// LoadTheme reads theme/<name>.toml from the config dir. The keys may sit at
// the top level or under a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", name, err)
	}
	var theme Theme
	if _, err := toml.Decode(string(data), &theme); err == nil && theme != (Theme{}) {
		return theme, nil
	}
	var wrapped struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrapped); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", name, err)
	}
	return wrapped.Theme, nil
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// ParseColor accepts "#rrggbb" and "#rgb".
func ParseColor(s string) (document.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return document.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return document.Color{R: r, G: g, B: b}, nil
}

// Layout converts the theme to the colours the layout engine uses.
func (t Theme) Layout() (layout.Theme, error) {
	var out layout.Theme
	pairs := []struct {
		dst    *layout.ColorPair
		fg, bg string
	}{
		{&out.Headings[0], t.Heading1Foreground, t.Heading1Background},
		{&out.Headings[1], t.Heading2Foreground, t.Heading2Background},
		{&out.Headings[2], t.Heading3Foreground, t.Heading3Background},
		{&out.Field, t.FieldForeground, t.FieldBackground},
	}
	for _, p := range pairs {
		fg, bg, err := t.pair(p.fg, p.bg)
		if err != nil {
			return layout.Theme{}, err
		}
		*p.dst = layout.ColorPair{Fg: fg, Bg: bg}
	}
	if t.PartialForeground != "" {
		c, err := ParseColor(t.PartialForeground)
		if err != nil {
			return layout.Theme{}, err
		}
		out.Partial = &c
	}
	return out, nil
}

// Statusline returns the status bar colours.
func (t Theme) Statusline() (fg, bg document.Color, err error) {
	return t.pair(t.StatuslineForeground, t.StatuslineBackground)
}

// Prompt returns the colours of the edit and navigate prompts.
func (t Theme) Prompt() (fg, bg document.Color, err error) {
	return t.pair(t.PromptForeground, t.PromptBackground)
}

func (t Theme) pair(fg, bg string) (document.Color, document.Color, error) {
	f, err := ParseColor(fg)
	if err != nil {
		return document.Color{}, document.Color{}, err
	}
	b, err := ParseColor(bg)
	if err != nil {
		return document.Color{}, document.Color{}, err
	}
	return f, b, nil
}

// Engine builds a layout engine configured from cfg.
func (cfg Config) Engine() (*layout.Engine, error) {
	theme, err := cfg.Theme.Layout()
	if err != nil {
		return nil, err
	}
	e := layout.NewEngine()
	e.Theme = theme
	if cfg.Browser.DefaultFieldWidth > 0 {
		e.DefaultFieldWidth = cfg.Browser.DefaultFieldWidth
	}
	return e, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("MICRONAUT_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "micronaut"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "micronaut"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
