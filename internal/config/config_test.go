package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finterm/internal/scheme"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	path := filepath.Join(t.TempDir(), "config.json")

	store, err := LoadFrom(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, scheme.Classic, store.Theme())
	assert.Equal(t, scheme.KindCandlestick, store.Renderer())
	assert.Equal(t, "DEMO", store.Config.Symbol)
	assert.True(t, store.Config.Overlay)
	assert.NotEmpty(t, store.Config.Timezone)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	path := filepath.Join(t.TempDir(), "config.json")

	store, err := LoadFrom(path)
	require.NoError(t, err)
	store.SetTheme(scheme.Dark)
	store.SetRenderer(scheme.KindFootprint)
	store.Config.CustomScheme = " neon "
	store.Config.Timezone = "Europe/Berlin"
	require.NoError(t, store.Save())

	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Dark, again.Theme())
	assert.Equal(t, "DARK", again.Config.Theme)
	assert.Equal(t, scheme.KindFootprint, again.Renderer())
	assert.Equal(t, "neon", again.Config.CustomScheme)
	assert.Equal(t, "Europe/Berlin", again.Location().String())
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"SAND","renderer":"candlestick"}`), 0o644))
	t.Setenv(envTheme, "blackberry")
	t.Setenv(envRenderer, "hilo")

	store, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Blackberry, store.Theme())
	assert.Equal(t, scheme.KindHighLow, store.Renderer())
}

func TestSessionOverridesAreNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	_, err := LoadFrom(path)
	require.NoError(t, err)

	t.Setenv(envTheme, "dark")
	t.Setenv(envRenderer, "footprint")
	store, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, scheme.Dark, store.Theme())
	store.Config.Overlay = false
	require.NoError(t, store.Save())

	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Classic, again.Theme())
	assert.Equal(t, scheme.KindCandlestick, again.Renderer())
	assert.False(t, again.Config.Overlay)
}

func TestOverrideThemeIsNotSaved(t *testing.T) {
	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	path := filepath.Join(t.TempDir(), "config.json")

	store, err := LoadFrom(path)
	require.NoError(t, err)
	store.OverrideTheme(scheme.Sand)
	assert.Equal(t, scheme.Sand, store.Theme())
	require.NoError(t, store.Save())

	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Classic, again.Theme())

	again.OverrideTheme(scheme.Sand)
	again.SetTheme(scheme.Blackberry)
	require.NoError(t, again.Save())
	last, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Blackberry, last.Theme())
}

func TestUnknownValuesFallBack(t *testing.T) {
	t.Setenv(envTheme, "")
	t.Setenv(envRenderer, "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"neon","renderer":"line","timezone":"Nowhere/Land"}`), 0o644))

	store, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, scheme.Classic, store.Theme())
	assert.Equal(t, scheme.KindCandlestick, store.Renderer())
	assert.Equal(t, time.UTC, store.Location())
}

func TestLoadFromRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestNilStore(t *testing.T) {
	var s *Store
	assert.Equal(t, time.UTC, s.Location())
	assert.Equal(t, scheme.Classic, s.Theme())
	assert.Error(t, s.Save())
}
