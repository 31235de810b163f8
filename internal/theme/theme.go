// Package theme holds the dark mode state and the palettes derived from it.
package theme

import (
	"context"
	"sync"

	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/prefs"
)

// State is the shared dark mode flag. It is loaded once when the session
// starts and persisted on every toggle.
type State struct {
	mu    sync.RWMutex
	store kv.Store
	dark  bool
}

// New returns a state bound to s with the default (light) value. Call Load
// to read the persisted value.
func New(s kv.Store) *State {
	return &State{store: s, dark: prefs.DefaultDarkMode}
}

// Load reads the persisted flag. On error the current value is kept.
func (t *State) Load(ctx context.Context) error {
	dark, err := prefs.DarkMode(ctx, t.store)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.dark = dark
	t.mu.Unlock()
	return nil
}

// DarkMode reports the in-memory flag.
func (t *State) DarkMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Toggle sets the in-memory flag and persists it. The in-memory value is
// kept even if the write fails.
func (t *State) Toggle(ctx context.Context, value bool) error {
	t.mu.Lock()
	t.dark = value
	t.mu.Unlock()
	return prefs.SetDarkMode(ctx, t.store, value)
}

// Palette returns the palette for the current flag.
func (t *State) Palette() Palette {
	if t.DarkMode() {
		return Dark()
	}
	return Light()
}
