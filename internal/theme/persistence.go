package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MemoryPersistence keeps the preference in memory.
type MemoryPersistence struct {
	mu    sync.Mutex
	mode  Mode
	saves int
}

// NewMemoryPersistence starts with mode stored; an empty mode means nothing stored.
func NewMemoryPersistence(mode Mode) *MemoryPersistence {
	return &MemoryPersistence{mode: mode}
}

// Load implements Persistence.
func (m *MemoryPersistence) Load() (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == "" {
		return Default, nil
	}
	return ParseMode(string(m.mode))
}

// Save implements Persistence.
func (m *MemoryPersistence) Save(mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryPersistence) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type fileRecord struct {
	Theme Mode `json:"theme"`
}

// FilePersistence stores the preference as JSON, e.g. {"theme":"dark"}.
type FilePersistence struct {
	Path string
}

// DefaultFilePath returns the per-user preference file location.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "visual-thesis", "theme.json"), nil
}

// Load implements Persistence.
func (f *FilePersistence) Load() (Mode, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Default, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read theme file: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to parse theme file: %w", err)
	}
	return ParseMode(string(rec.Theme))
}

// Save implements Persistence.
func (f *FilePersistence) Save(mode Mode) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	data, err := json.Marshal(fileRecord{Theme: mode})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o644)
}

// CookieName is the cookie holding the preference.
const CookieName = "theme"

// CookiePersistence reads the preference from a request and writes it to a response.
type CookiePersistence struct {
	Request *http.Request
	Writer  http.ResponseWriter
}

// Load implements Persistence.
func (c *CookiePersistence) Load() (Mode, error) {
	cookie, err := c.Request.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return Default, nil
	}
	if err != nil {
		return "", err
	}
	return ParseMode(cookie.Value)
}

// Save implements Persistence.
func (c *CookiePersistence) Save(mode Mode) error {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    string(mode),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
