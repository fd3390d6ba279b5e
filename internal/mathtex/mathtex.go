// Package mathtex abstracts math-notation rendering. An Engine converts a
// LaTeX string into presentational markup; the document renderer calls it
// through an adapter that falls back to the raw notation when rendering
// fails, so a broken formula never takes down the surrounding document.
package mathtex

import (
	"errors"
	"sync"
)

// Options controls a single engine invocation.
type Options struct {
	// Display selects block (display-style) rendering over inline.
	Display bool
}

// Engine renders LaTeX notation to a markup string.
type Engine interface {
	RenderToString(latex string, opts Options) (string, error)
}

// ErrNoEngine is returned by the default handle when no engine has been
// registered for the process.
var ErrNoEngine = errors.New("mathtex: no engine registered")

var (
	mu            sync.RWMutex
	defaultEngine Engine
)

// SetDefault installs the process-wide engine. Pass nil to clear it.
func SetDefault(e Engine) {
	mu.Lock()
	defer mu.Unlock()
	defaultEngine = e
}

// Default returns the process-wide engine, or nil when none is set.
func Default() Engine {
	mu.RLock()
	defer mu.RUnlock()
	return defaultEngine
}

// DefaultFunc is an EngineFunc that delegates to the registered default
// engine and fails with ErrNoEngine when it is absent. This is exactly
// the condition the render adapter's local fallback handles.
var DefaultFunc = EngineFunc(func(latex string, opts Options) (string, error) {
	e := Default()
	if e == nil {
		return "", ErrNoEngine
	}
	return e.RenderToString(latex, opts)
})

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(latex string, opts Options) (string, error)

func (f EngineFunc) RenderToString(latex string, opts Options) (string, error) {
	return f(latex, opts)
}
