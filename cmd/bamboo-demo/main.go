// Command bamboo-demo opens one window against the selected engine and
// wires a few handlers, enough to exercise the bridge end to end. With
// the headless engine it runs a scripted page and exits; with the
// remote engine it waits for a surface process to dial in.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/bambooui/bamboo"
	"github.com/bambooui/bamboo/internal/bridge"
	"github.com/bambooui/bamboo/internal/engine"
	"github.com/bambooui/bamboo/internal/engine/headless"
	"github.com/bambooui/bamboo/internal/engine/remote"
	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/shared/jsv"
	"github.com/bambooui/bamboo/internal/style"
	"github.com/bambooui/bamboo/internal/window"
)

func main() {
	engineName := flag.String("engine", "headless", "Engine: headless or remote")
	url := flag.String("url", "app://index.html", "Initial page")
	preset := flag.String("style", "default", "Style preset: default, fullCustom, macosModern, windows11Mica")
	dev := flag.Bool("dev", false, "Development logging")
	flag.Parse()

	logger := logging.NewDefault()
	if *dev {
		logger = logging.NewDevelopment()
	}
	defer logger.Sync()

	cfg := config.LoadOrDefault()
	if err := cfg.EnsureDirs(); err != nil {
		logger.Warn("cache directory unavailable", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", bamboo.Version),
		zap.String("engine", *engineName),
		zap.String("userAgent", cfg.ResolvedUserAgent()))

	var eng engine.Engine
	switch *engineName {
	case "headless":
		eng = headless.New(logger)
	case "remote":
		if cfg.Engine.RemoteAddress == "" {
			cfg.Engine.RemoteAddress = "localhost:9223"
		}
		eng = remote.New(logger)
	default:
		log.Fatalf("unknown engine %q", *engineName)
	}

	app := engine.Shared()
	if err := app.Initialize(eng, cfg, logger); err != nil {
		log.Fatalf("initialize: %v", err)
	}

	st := pickStyle(*preset)
	w, err := app.NewWindow(window.Config{
		Title: cfg.App.Name,
		URL:   *url,
		Style: &st,
	}, window.WithEvents(window.Events{
		OnLoad: func(url string) {
			logger.Info("page loaded", zap.String("url", url))
		},
		OnTitleChange: func(title string) {
			logger.Info("title changed", zap.String("title", title))
		},
		OnNavigation: func(url string) bool {
			// Keep the demo inside its own scheme.
			if !strings.HasPrefix(url, "app://") {
				logger.Warn("blocked navigation", zap.String("url", url))
				return false
			}
			return true
		},
		OnClosed: func() {
			app.Quit()
		},
	}))
	if err != nil {
		log.Fatalf("create window: %v", err)
	}

	w.Bind("add", func(args []jsv.Value) (jsv.Value, error) {
		if len(args) != 2 {
			return jsv.Absent(), fmt.Errorf("add wants two numbers")
		}
		a, _ := args[0].AsNumber()
		b, _ := args[1].AsNumber()
		return jsv.Number(a + b), nil
	})
	w.Bind("appVersion", func([]jsv.Value) (jsv.Value, error) {
		return jsv.String(bamboo.Version), nil
	})
	w.Bind("greet", func(args []jsv.Value) (jsv.Value, error) {
		who := "there"
		if len(args) > 0 {
			if s, ok := args[0].AsString(); ok {
				who = s
			}
		}
		return jsv.String("hello, " + who), nil
	})
	dark := false
	w.Bind("toggleDark", func([]jsv.Value) (jsv.Value, error) {
		dark = !dark
		w.UpdateStyle(func(s *style.WindowStyle) {
			if dark {
				s.BackgroundColor = style.RGB(30, 30, 30)
			} else {
				s.BackgroundColor = style.White()
			}
		})
		return jsv.Bool(dark), nil
	})

	// Titlebar strip stays draggable under a custom chrome.
	w.SetDragRegions([]style.DragRegion{
		{X: 0, Y: 0, Width: 1024, Height: 38, Draggable: true},
	})

	if he, ok := eng.(*headless.Engine); ok {
		runScriptedPage(he, w, logger)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() { errChan <- app.Run() }()

	select {
	case <-sigChan:
		logger.Info("shutting down")
	case err := <-errChan:
		if err != nil {
			logger.Error("engine stopped", zap.Error(err))
		}
	}
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func pickStyle(preset string) style.WindowStyle {
	switch preset {
	case "fullCustom":
		return style.FullCustom()
	case "macosModern":
		return style.MacOSModern(style.VibrancySidebar)
	case "windows11Mica":
		return style.Windows11Mica()
	default:
		return style.Default()
	}
}

// runScriptedPage plays the part of page script so the headless demo
// shows traffic in both directions before closing itself.
func runScriptedPage(eng *headless.Engine, w *window.Window, logger *logging.Logger) {
	w.EvalJS("6 * 7", func(v jsv.Value, err *bridge.CallError) {
		if err != nil {
			logger.Warn("eval failed", zap.String("error", err.Message))
			return
		}
		n, _ := v.AsNumber()
		logger.Info("eval result", zap.Float64("value", n))
	})

	w.On("sum", func(data json.RawMessage) {
		logger.Info("page reported sum", zap.ByteString("sum", data))
	})

	script := `
		window.bamboo.on("greeting", function (p) {
			window.bamboo.setTitle("greeted: " + p);
		});
		window.bamboo.call("add", 19, 23).then(function (v) {
			window.bamboo.send("sum", v);
		});
	`
	if err := eng.RunScript(w, script); err != nil {
		logger.Warn("page script failed", zap.Error(err))
	}
	w.Send("greeting", "bamboo")
	logger.Info("window title after greeting", zap.String("title", w.Title()))

	w.Close()
}
