package theme

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("light")
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	_, err = ParseMode("sepia")
	assert.Error(t, err)
}

func TestContext_DefaultsToDark(t *testing.T) {
	c := NewContext(NewMemoryPersistence(""))
	assert.Equal(t, Dark, c.Mode())
}

func TestContext_ToggleRoundTrip(t *testing.T) {
	store := NewMemoryPersistence(Dark)
	c := NewContext(store)

	mode, err := c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Light, mode)

	mode, err = c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)
	assert.Equal(t, 2, store.Saves())

	reloaded := NewContext(store)
	assert.Equal(t, Dark, reloaded.Mode())
}

type failingStore struct{}

func (failingStore) Load() (Mode, error) { return "", errors.New("corrupt") }
func (failingStore) Save(Mode) error     { return errors.New("read-only") }

func TestContext_StorageFailures(t *testing.T) {
	c := NewContext(failingStore{})
	assert.Equal(t, Default, c.Mode())

	mode, err := c.Toggle()
	assert.Error(t, err)
	assert.Equal(t, Light, mode)
	assert.Equal(t, Light, c.Mode())
}

func TestContext_Set(t *testing.T) {
	c := NewContext(NewMemoryPersistence(Dark))

	require.NoError(t, c.Set(Light))
	assert.Equal(t, Light, c.Mode())
	assert.Error(t, c.Set("sepia"))
}

func TestFilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.json")
	store := &FilePersistence{Path: path}

	mode, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default, mode)

	require.NoError(t, store.Save(Light))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"light"}`, string(data))

	mode, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Light, mode)
}

func TestFilePersistence_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"neon"}`), 0o644))

	_, err := (&FilePersistence{Path: path}).Load()
	assert.Error(t, err)

	c := NewContext(&FilePersistence{Path: path})
	assert.Equal(t, Default, c.Mode())
}

func TestCookiePersistence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "light"})
	rec := httptest.NewRecorder()

	c := NewContext(&CookiePersistence{Request: req, Writer: rec})
	assert.Equal(t, Light, c.Mode())

	_, err := c.Toggle()
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)
}

func TestCookiePersistence_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mode, err := (&CookiePersistence{Request: req, Writer: httptest.NewRecorder()}).Load()
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)
}
