package chart

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesheetsParse(t *testing.T) {
	t.Parallel()

	paths, err := fs.Glob(Stylesheets, "stylesheets/*.toml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		data, err := fs.ReadFile(Stylesheets, p)
		require.NoError(t, err)
		_, err = ParseStylesheet(data)
		assert.NoError(t, err, p)
	}
}

func TestLoadStylesheets_LaterOverrides(t *testing.T) {
	t.Parallel()

	sheet, err := LoadStylesheets(Stylesheets, []string{"stylesheets/chart.toml", "stylesheets/chart-dark.toml"})
	require.NoError(t, err)
	assert.Equal(t, "#2f2f2f", sheet.Plot.Background)
	assert.Equal(t, "#89e278", sheet.Series.Color)
	assert.True(t, sheet.Title.Bold, "base sheet flag survives")
	assert.Contains(t, sheet.Images, "sand")
}

func TestLoadStylesheets_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"bad.toml":    {Data: []byte("[plot\nbackground=")},
		"colour.toml": {Data: []byte("[plot]\nbackground = \"mauve-ish\"\n")},
		"image.toml":  {Data: []byte("[images.x]\nforeground = \"#000000\"\n")},
	}
	for _, p := range []string{"missing.toml", "bad.toml", "colour.toml", "image.toml"} {
		_, err := LoadStylesheets(fsys, []string{p})
		assert.Error(t, err, p)
	}

	sheet, err := LoadStylesheets(fsys, nil)
	require.NoError(t, err)
	assert.Equal(t, fallbackSheet, sheet)
}
