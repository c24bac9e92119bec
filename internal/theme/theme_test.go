package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"finterm/internal/scheme"
)

func TestForScheme(t *testing.T) {
	cases := []struct {
		theme scheme.Theme
		dark  bool
		title string
	}{
		{scheme.Classic, false, "25"},
		{scheme.Clearlook, false, "25"},
		{scheme.Sand, false, "94"},
		{scheme.Blackberry, true, "213"},
		{scheme.Dark, true, "213"},
		{scheme.Theme("NEON"), true, "213"},
	}
	for _, tc := range cases {
		t.Run(string(tc.theme), func(t *testing.T) {
			th := ForScheme(tc.theme)
			assert.Equal(t, tc.dark, th.Dark)
			assert.Equal(t, lipgloss.Color(tc.title), th.Title.GetForeground())
			assert.True(t, th.Title.GetBold())
		})
	}
}

func TestDefaultIsDark(t *testing.T) {
	assert.True(t, Default().Dark)
	assert.Equal(t, ForScheme(scheme.Dark).Primary.GetForeground(), Default().Primary.GetForeground())
}
