package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/window"
)

type fakeEngine struct {
	initialized int
	created     int
	shutdowns   int
	quit        chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{quit: make(chan struct{})}
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Initialize(cfg *config.Config) error {
	e.initialized++
	return nil
}

func (e *fakeEngine) CreateWindow(w *window.Window) error {
	e.created++
	return nil
}

func (e *fakeEngine) Run() error {
	<-e.quit
	return nil
}

func (e *fakeEngine) Quit() { close(e.quit) }

func (e *fakeEngine) Shutdown() error {
	e.shutdowns++
	return nil
}

func TestInitializeIsIdempotent(t *testing.T) {
	a := NewApp()
	eng := newFakeEngine()

	require.NoError(t, a.Initialize(eng, config.Default(), nil))
	require.NoError(t, a.Initialize(eng, config.Default(), nil))
	assert.Equal(t, 1, eng.initialized)
}

type failingEngine struct{ fakeEngine }

func (e *failingEngine) Initialize(cfg *config.Config) error {
	return errors.New("no display")
}

func TestInitializeWrapsEngineFailure(t *testing.T) {
	a := NewApp()
	err := a.Initialize(&failingEngine{}, config.Default(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitialization)
}

func TestNewWindowRequiresInitialize(t *testing.T) {
	a := NewApp()
	_, err := a.NewWindow(window.Config{})
	assert.Error(t, err)
}

func TestNewWindowRegistersAndCreates(t *testing.T) {
	a := NewApp()
	eng := newFakeEngine()
	require.NoError(t, a.Initialize(eng, config.Default(), nil))
	defer a.Shutdown()

	w, err := a.NewWindow(window.Config{Title: "w"})
	require.NoError(t, err)
	assert.Equal(t, 1, eng.created)

	got, ok := a.Window(w.ID())
	require.True(t, ok)
	assert.Same(t, w, got)
	assert.Len(t, a.Windows(), 1)
}

func TestRunQuitShutdownOnce(t *testing.T) {
	a := NewApp()
	eng := newFakeEngine()
	require.NoError(t, a.Initialize(eng, config.Default(), nil))

	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	a.Quit()
	require.NoError(t, <-done)

	require.NoError(t, a.Shutdown())
	require.NoError(t, a.Shutdown())
	assert.Equal(t, 1, eng.shutdowns)
}
