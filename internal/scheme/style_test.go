package scheme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	spec, err := ParseStyle(" strokeWidth=1.5;candleLongColor = #298988 ;; candleVolumeLongColor=rgba(139,199,194,0.4); ")
	require.NoError(t, err)
	assert.Equal(t, []string{"strokeWidth", "candleLongColor", "candleVolumeLongColor"}, spec.Keys())

	v, ok := spec.Get("candleLongColor")
	require.True(t, ok)
	assert.Equal(t, "#298988", v)

	_, ok = spec.Get("missing")
	assert.False(t, ok)

	empty, err := ParseStyle("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseStyle_Errors(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"strokeWidth", "a=1; =2", "a=1; b"} {
		_, err := ParseStyle(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseStyle_LastKeyWins(t *testing.T) {
	t.Parallel()

	spec, err := ParseStyle("strokeColor=black; strokeColor=white")
	require.NoError(t, err)
	v, _ := spec.Get("strokeColor")
	assert.Equal(t, "white", v)
}

func TestStyleTables_RoundTripThroughGrammar(t *testing.T) {
	t.Parallel()

	for _, tables := range []map[Kind]map[Theme]StyleSpec{seriesStyles, overlayStyles} {
		for kind, byTheme := range tables {
			for theme, spec := range byTheme {
				parsed, err := ParseStyle(spec.String())
				require.NoError(t, err, "%s/%s", kind, theme)
				assert.Equal(t, spec, parsed, "%s/%s", kind, theme)

				for _, a := range spec {
					if a.Key == "strokeWidth" || a.Key == "highLowBodyLineWidth" || a.Key == "highLowTickLineWidth" {
						continue
					}
					_, _, err := ParseColor(a.Value)
					assert.NoError(t, err, "%s/%s %s", kind, theme, a.Key)
				}
			}
		}
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		hex   string
		alpha float64
	}{
		{in: "green", hex: "#008000", alpha: 1},
		{in: "WhiteSmoke", hex: "#f5f5f5", alpha: 1},
		{in: "#00022e", hex: "#00022e", alpha: 1},
		{in: "#fff", hex: "#ffffff", alpha: 1},
		{in: "rgba(139,199,194,0.4)", hex: "#8bc7c2", alpha: 0.4},
		{in: "rgb( 47, 47, 47 )", hex: "#2f2f2f", alpha: 1},
	}
	for _, tt := range tests {
		c, alpha, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hex, c.Hex(), tt.in)
		assert.InDelta(t, tt.alpha, alpha, 1e-9, tt.in)
	}

	for _, bad := range []string{"", "chartreuse-ish", "#12", "rgba(1,2,3)", "rgb(300,0,0)", "rgba(1,2,3,1.5)", "1.6"} {
		_, _, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	got, err := ParseTheme(" dark ")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	_, err = ParseTheme("neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	assert.Equal(t, Clearlook, Classic.Next())
	assert.Equal(t, Classic, Dark.Next())
	assert.Equal(t, Classic, Theme("NEON").Next())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Kind{"Candlestick": KindCandlestick, "high-low": KindHighLow, "ohlc": KindHighLow, "footprint": KindFootprint} {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseKind("position-overlay")
	assert.Error(t, err)
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestWriteCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf))

	var entries []CatalogEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, len(Themes()))

	byTheme := map[string]CatalogEntry{}
	for _, e := range entries {
		byTheme[e.Theme] = e
	}
	dark := byTheme["DARK"]
	assert.Contains(t, dark.Series["candlestick"], "candleLongColor=#298988")
	assert.Contains(t, dark.Overlays["position-overlay"], "positionTriangleExitColor=white")
	require.NotNil(t, dark.Decoration)
	assert.Equal(t, "fill:#2f2f2f", dark.Decoration.Background)
	assert.Equal(t, "hidden", dark.Decoration.Grid["vertical_minor"])

	assert.Nil(t, byTheme["CLASSIC"].Decoration)
	assert.Equal(t, "image:sand", byTheme["SAND"].Decoration.Background)
}
