// Package engine defines the contract between the framework and an
// embedded browser engine, plus the interface-thread loop and the
// application singleton that owns engine lifecycle.
package engine

import (
	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/window"
)

// Engine abstracts one embedded browser engine. Implementations must
// call window notification methods from the interface thread only.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string

	// Initialize prepares the engine process-wide. Called once, before
	// any window exists.
	Initialize(cfg *config.Config) error

	// CreateWindow allocates a surface for w and attaches it through
	// w.NotifyCreated.
	CreateWindow(w *window.Window) error

	// Run pumps the engine's event loop until Quit. Blocks.
	Run() error

	// Quit asks Run to return.
	Quit()

	// Shutdown releases engine resources. Called once, after Run
	// returns.
	Shutdown() error
}
