package app

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/micronaut/internal/config"
	"github.com/kobzarvs/micronaut/internal/logger"
)

// App is the top-level runtime for micronaut.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Browser.Debug); err == nil {
		defer logger.Close()
	}

	start := cfg.Browser.Home
	if len(a.args) > 0 {
		start = a.args[0]
	}
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	if start != "" {
		abs, err := filepath.Abs(start)
		if err != nil {
			return err
		}
		start, root = abs, filepath.Dir(abs)
	}

	v, err := NewViewer(cfg, root)
	if err != nil {
		return err
	}
	if start == "" {
		v.OpenSample()
	} else if err := v.Open(start); err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	return loop(s, v)
}

func loop(s tcell.Screen, v *Viewer) error {
	v.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		if v.HandleEvent(ev) {
			logger.Info("quit", "url", v.Browser().URL())
			return nil
		}
		v.Render(s)
	}
}
