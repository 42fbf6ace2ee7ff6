package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, styles, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 4*time.Second, cfg.ToastDuration)
	assert.Equal(t, filepath.Join(dir, "styles.json"), cfg.StylesFile)
	assert.Equal(t, "a", cfg.KeyMap["createtodo"])
	assert.Equal(t, DefaultStyles(), styles)

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "styles.json"))
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "api_url": "https://todos.example.com",
  "timeout": "3s",
  "keymap": {"deletetodo": "x"}
}`), 0644))
	t.Setenv("TODOBOARD_TOKEN", "secret")

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://todos.example.com", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "x", cfg.KeyMap["deletetodo"])
}

func TestDefaultsFileNeverContainsEnvToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("TODOBOARD_TOKEN", "do-not-persist")

	_, _, err := Load(viper.New(), path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "do-not-persist")
}

func TestLoadStylesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"accent_color":"99"}`), 0644))

	styles, err := LoadStyles(path)
	require.NoError(t, err)
	assert.Equal(t, "99", styles.AccentColor)
	assert.Equal(t, DefaultStyles().BorderColor, styles.BorderColor)
}
