// Package theme holds the dark/light display preference and its storage adapters.
package theme

import (
	"fmt"
	"log"
	"sync"
)

// Mode is a display theme.
type Mode string

// Supported modes.
const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Default is the mode used when nothing has been stored.
const Default = Dark

// ParseMode validates a stored or user-supplied mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Dark, Light:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Persistence loads and stores the preference.
// Load returns Default with a nil error when nothing is stored.
type Persistence interface {
	Load() (Mode, error)
	Save(Mode) error
}

// Context is the current preference, read once from storage at construction
// and written back on every change.
type Context struct {
	mu    sync.Mutex
	mode  Mode
	store Persistence
}

// NewContext loads the stored mode. An unreadable or invalid value falls back to Default.
func NewContext(store Persistence) *Context {
	mode, err := store.Load()
	if err != nil {
		log.Printf("[theme] falling back to %s: %v", Default, err)
		mode = Default
	}
	return &Context{mode: mode, store: store}
}

// Mode returns the current mode.
func (c *Context) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle switches modes and persists the result. The in-memory mode changes
// even when saving fails.
func (c *Context) Toggle() (Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = c.mode.Opposite()
	if err := c.store.Save(c.mode); err != nil {
		return c.mode, fmt.Errorf("failed to save theme: %w", err)
	}
	return c.mode, nil
}

// Set changes to mode and persists it.
func (c *Context) Set(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	if err := c.store.Save(mode); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
