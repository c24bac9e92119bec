package scheme

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesStyle_ContainsKindKeys(t *testing.T) {
	t.Parallel()

	expected := map[Kind][]string{
		KindCandlestick: {"strokeWidth", "candleLongColor", "candleShortColor"},
		KindHighLow:     {"highLowBodyLineWidth", "highLowLongColor", "highLowShortColor"},
		KindFootprint:   {"footprintLongColor", "footprintShortColor", "footprintPocColor"},
	}

	for _, kind := range SeriesKinds() {
		for _, theme := range Themes() {
			kind, theme := kind, theme
			t.Run(kind.String()+"/"+string(theme), func(t *testing.T) {
				t.Parallel()

				ds := &fakeDataset{}
				r := NewResolver(nil)
				require.NoError(t, r.ApplyThemeStyle(theme, ds, &fakeRenderer{kind: kind}))
				require.Len(t, ds.writes, 1)
				require.NotEmpty(t, ds.style())

				spec, err := ParseStyle(ds.style())
				require.NoError(t, err)
				for _, key := range expected[kind] {
					_, ok := spec.Get(key)
					assert.True(t, ok, "missing %s", key)
				}
			})
		}
	}
}

func TestSeriesStyle_LiteralValues(t *testing.T) {
	t.Parallel()

	spec, ok, err := SeriesStyle(Classic, KindCandlestick)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "strokeWidth=1.6; candleLongColor=green; candleShortColor=red; candleLongWickColor=green; "+
		"candleShortWickColor=red; candleVolumeLongColor=rgba(139,199,194,0.4); candleVolumeShortColor=rgba(235,160,159,0.4)",
		spec.String())

	spec, _, err = OverlayStyle(Dark, KindPositionOverlay)
	require.NoError(t, err)
	exit, _ := spec.Get("positionTriangleExitColor")
	assert.Equal(t, "white", exit)
}

func TestSeriesStyle_ReturnsCopy(t *testing.T) {
	t.Parallel()

	spec, _, err := SeriesStyle(Dark, KindHighLow)
	require.NoError(t, err)
	spec[0].Value = "mutated"

	again, _, err := SeriesStyle(Dark, KindHighLow)
	require.NoError(t, err)
	assert.Equal(t, "2.0", again[0].Value)
}

func TestApplySeriesStyle_OverrideWins(t *testing.T) {
	t.Parallel()

	const override = "candleLongColor=pink; strokeWidth=3"
	themes := append(Themes(), Theme("NEON"), Theme(""))
	kinds := append(SeriesKinds(), KindUnstyled, KindPositionOverlay)

	for _, theme := range themes {
		for _, kind := range kinds {
			overlay := &fakeDataset{}
			renderer := &fakeAwareRenderer{fakeRenderer{
				kind:       kind,
				extensions: []Extension{&fakeDataExtension{kind: KindPositionOverlay, ds: overlay}},
			}}
			ds := &fakeDataset{}

			err := NewResolver(nil).ApplySeriesStyle(theme, override, ds, renderer)
			require.NoError(t, err)
			assert.Equal(t, []string{override}, ds.writes, "theme=%s kind=%s", theme, kind)
			assert.Empty(t, overlay.writes, "override must not style overlays")
		}
	}
}

func TestApplySeriesStyle_UnsupportedTheme(t *testing.T) {
	t.Parallel()

	for _, kind := range SeriesKinds() {
		ds := &fakeDataset{}
		err := NewResolver(nil).ApplyThemeStyle("NEON", ds, &fakeRenderer{kind: kind})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedTheme))

		var unsupported *UnsupportedThemeError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, kind, unsupported.Kind)
		assert.Equal(t, Theme("NEON"), unsupported.Theme)
		assert.Contains(t, err.Error(), "NEON")
		assert.Contains(t, err.Error(), kind.String())
		assert.Empty(t, ds.writes)
	}
}

func TestApplySeriesStyle_UnstyledKindIgnored(t *testing.T) {
	t.Parallel()

	ds := &fakeDataset{}
	err := NewResolver(nil).ApplyThemeStyle("NEON", ds, &fakeRenderer{kind: KindUnstyled})
	require.NoError(t, err)
	assert.Empty(t, ds.writes)
}

func TestApplySeriesStyle_PositionOverlay(t *testing.T) {
	t.Parallel()

	overlay := &fakeDataset{}
	other := &fakeDataset{}
	renderer := &fakeAwareRenderer{fakeRenderer{
		kind: KindHighLow,
		extensions: []Extension{
			&fakeExtension{kind: KindPositionOverlay},
			&fakeDataExtension{kind: KindUnstyled, ds: other},
			&fakeDataExtension{kind: KindPositionOverlay, ds: overlay},
			&fakeDataExtension{kind: KindPositionOverlay, ds: nil},
		},
	}}
	ds := &fakeDataset{}

	require.NoError(t, NewResolver(nil).ApplyThemeStyle(Classic, ds, renderer))

	want, _, err := OverlayStyle(Classic, KindPositionOverlay)
	require.NoError(t, err)
	assert.Equal(t, []string{want.String()}, overlay.writes)
	assert.Empty(t, other.writes)
	assert.Len(t, ds.writes, 1)
}

func TestApplySeriesStyle_OverlayFailsIndependently(t *testing.T) {
	t.Parallel()

	overlay := &fakeDataset{}
	renderer := &fakeAwareRenderer{fakeRenderer{
		kind:       KindUnstyled,
		extensions: []Extension{&fakeDataExtension{kind: KindPositionOverlay, ds: overlay}},
	}}

	err := NewResolver(nil).ApplyThemeStyle("NEON", &fakeDataset{}, renderer)
	var unsupported *UnsupportedThemeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, KindPositionOverlay, unsupported.Kind)
	assert.Empty(t, overlay.writes)
}

func TestApplyTo_RendererScopeWins(t *testing.T) {
	t.Parallel()

	shared := &fakeDataset{name: "shared"}
	candles := &fakeRenderer{kind: KindCandlestick, datasets: []Dataset{shared}}
	hilo := &fakeRenderer{kind: KindHighLow}

	c := newFakeChart()
	c.datasets = []Dataset{shared}
	c.renderers = []Renderer{candles, hilo}

	require.NoError(t, NewResolver(nil).ApplyTo(Sand, c))

	candleSpec, _, _ := SeriesStyle(Sand, KindCandlestick)
	hiloSpec, _, _ := SeriesStyle(Sand, KindHighLow)
	assert.Equal(t, []string{candleSpec.String(), hiloSpec.String(), candleSpec.String()}, shared.writes)
	assert.Equal(t, candleSpec.String(), shared.style())
}

func TestApplyTo_ErrorAbortsRemainder(t *testing.T) {
	t.Parallel()

	first := &fakeDataset{}
	second := &fakeDataset{}
	c := newFakeChart()
	c.renderers = []Renderer{
		&fakeRenderer{kind: KindUnstyled, datasets: []Dataset{first}},
		&fakeRenderer{kind: KindFootprint, datasets: []Dataset{second}},
	}

	err := NewResolver(nil).ApplyTo("NEON", c)
	require.ErrorIs(t, err, ErrUnsupportedTheme)
	assert.Empty(t, c.stylesheets)
	assert.Nil(t, c.background)
	assert.Nil(t, c.title)
}

func TestApplyTo_UnknownThemeDecorationIsNoop(t *testing.T) {
	t.Parallel()

	c := newFakeChart()
	c.renderers = []Renderer{&fakeRenderer{kind: KindUnstyled, datasets: []Dataset{&fakeDataset{}}}}

	require.NoError(t, NewResolver(nil).ApplyTo("NEON", c))
	assert.Equal(t, []string{"stylesheets/chart.toml"}, c.stylesheets)
	assert.Nil(t, c.background)
	assert.Zero(t, c.grid.hMajor.calls+c.grid.hMinor.calls+c.grid.vMajor.calls+c.grid.vMinor.calls)
}

func TestApplyTo_LightThemesLeaveDecorationUntouched(t *testing.T) {
	t.Parallel()

	for _, theme := range []Theme{Classic, Clearlook} {
		c := newFakeChart()
		require.NoError(t, NewResolver(nil).ApplyTo(theme, c))

		assert.Nil(t, c.background, theme)
		assert.Nil(t, c.title, theme)
		assert.Zero(t, c.grid.hMajor.calls+c.grid.hMinor.calls+c.grid.vMajor.calls+c.grid.vMinor.calls, theme)
		assert.Nil(t, c.x.(*fillAxis).fill, theme)
		assert.Nil(t, c.y.(*fillAxis).fill, theme)
		assert.Len(t, c.stylesheets, 1)
	}
}

func TestApplyTo_DecorationTable(t *testing.T) {
	t.Parallel()

	type lineWant struct {
		visible *bool
		stroke  string
	}
	on, off := true, false

	tests := []struct {
		theme      Theme
		background BackgroundKind
		fill       string
		hMajor     lineWant
		hMinor     lineWant
		vMajor     lineWant
		vMinor     lineWant
		title      string
		tickFill   string
	}{
		{
			theme:      Sand,
			background: BackgroundImage,
			hMajor:     lineWant{visible: &on, stroke: "#a9a9a9"},
			vMajor:     lineWant{visible: &on, stroke: "#a9a9a9"},
			vMinor:     lineWant{visible: &on},
			tickFill:   "#000000",
		},
		{
			theme:      Blackberry,
			background: BackgroundFill,
			fill:       "#00022e",
			hMajor:     lineWant{visible: &off},
			vMajor:     lineWant{visible: &off},
			vMinor:     lineWant{visible: &off},
			title:      "#ffffff",
			tickFill:   "#f5f5f5",
		},
		{
			theme:      Dark,
			background: BackgroundFill,
			fill:       "#2f2f2f",
			hMajor:     lineWant{visible: &on, stroke: "#6a6a6a"},
			hMinor:     lineWant{visible: &off},
			vMajor:     lineWant{visible: &off},
			vMinor:     lineWant{visible: &off},
			title:      "#ffffff",
			tickFill:   "#c2c2c2",
		},
	}

	checkLine := func(t *testing.T, name string, got fakeLine, want lineWant) {
		t.Helper()
		if want.visible == nil {
			assert.Nil(t, got.visible, name)
		} else {
			require.NotNil(t, got.visible, name)
			assert.Equal(t, *want.visible, *got.visible, name)
		}
		if want.stroke == "" {
			assert.Nil(t, got.stroke, name)
		} else {
			require.NotNil(t, got.stroke, name)
			assert.Equal(t, want.stroke, got.stroke.Hex(), name)
		}
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.theme), func(t *testing.T) {
			t.Parallel()

			c := newFakeChart()
			require.NoError(t, NewResolver(nil).ApplyTo(tt.theme, c))

			require.NotNil(t, c.background)
			assert.Equal(t, tt.background, c.background.Kind)
			if tt.background == BackgroundImage {
				assert.Equal(t, SandImage, c.background.Image)
			} else {
				assert.Equal(t, tt.fill, c.background.Fill.Hex())
			}

			checkLine(t, "horizontal major", c.grid.hMajor, tt.hMajor)
			checkLine(t, "horizontal minor", c.grid.hMinor, tt.hMinor)
			checkLine(t, "vertical major", c.grid.vMajor, tt.vMajor)
			checkLine(t, "vertical minor", c.grid.vMinor, tt.vMinor)

			if tt.title == "" {
				assert.Nil(t, c.title)
			} else {
				require.NotNil(t, c.title)
				assert.Equal(t, tt.title, c.title.Hex())
			}
			for _, axis := range []Axis{c.x, c.y} {
				fill := axis.(*fillAxis).fill
				require.NotNil(t, fill)
				assert.Equal(t, tt.tickFill, fill.Hex())
			}
		})
	}
}

func TestApplyTo_AxisWithoutTickLabelFillSkipped(t *testing.T) {
	t.Parallel()

	c := newFakeChart()
	c.x = &plainAxis{name: "category"}

	require.NoError(t, NewResolver(nil).ApplyTo(Dark, c))
	fill := c.y.(*fillAxis).fill
	require.NotNil(t, fill)
	assert.Equal(t, "#c2c2c2", fill.Hex())
}

func TestApplyTo_RoundTripHasNoAccumulation(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	build := func() (*fakeChart, *fakeDataset) {
		ds := &fakeDataset{}
		c := newFakeChart()
		c.renderers = []Renderer{&fakeRenderer{kind: KindFootprint, datasets: []Dataset{ds}}}
		return c, ds
	}

	cycled, cycledDS := build()
	require.NoError(t, r.ApplyTo(Dark, cycled))
	require.NoError(t, r.ApplyTo(Classic, cycled))
	require.NoError(t, r.ApplyTo(Dark, cycled))

	direct, directDS := build()
	require.NoError(t, r.ApplyTo(Dark, direct))

	assert.Equal(t, directDS.style(), cycledDS.style())
}

func TestApplyTo_SkipsNilEntries(t *testing.T) {
	t.Parallel()

	own := &fakeDataset{}
	global := &fakeDataset{}
	c := newFakeChart()
	c.datasets = []Dataset{nil, global}
	c.renderers = []Renderer{nil, &fakeRenderer{kind: KindCandlestick, datasets: []Dataset{nil, own}}}

	require.NotPanics(t, func() {
		require.NoError(t, NewResolver(nil).ApplyTo(Dark, c))
	})
	want, _, err := SeriesStyle(Dark, KindCandlestick)
	require.NoError(t, err)
	assert.Equal(t, []string{want.String()}, global.writes)
	assert.Equal(t, []string{want.String()}, own.writes)
	assert.NoError(t, NewResolver(nil).ApplySeriesStyle(Dark, "strokeColor=red", nil, nil))
}

func TestApplyToWithOverride(t *testing.T) {
	t.Parallel()

	global := &fakeDataset{}
	own := &fakeDataset{}
	c := newFakeChart()
	c.datasets = []Dataset{global}
	c.renderers = []Renderer{&fakeRenderer{kind: KindCandlestick, datasets: []Dataset{own}}}

	require.NoError(t, NewResolver(nil).ApplyToWithOverride("NEON", "strokeColor=blue", c))
	assert.Equal(t, "strokeColor=blue", global.style())
	assert.Equal(t, "strokeColor=blue", own.style())
}

func TestStylesheetPath(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"stylesheets/chart.toml":      {Data: []byte("")},
		"stylesheets/chart-dark.toml": {Data: []byte("")},
	}
	var logged bytes.Buffer
	r := NewResolver(fsys, WithLogger(log.New(&logged, "", 0)))

	assert.Equal(t, "stylesheets/chart-dark.toml", r.StylesheetPath(Dark))
	assert.Empty(t, logged.String())
	assert.Equal(t, "stylesheets/chart.toml", r.StylesheetPath(Sand))
	assert.Contains(t, logged.String(), "chart-sand.toml")

	custom := NewResolver(fstest.MapFS{"themes/plot-dark.toml": {}}, WithStylesheetBase("themes/plot"))
	assert.Equal(t, "themes/plot-dark.toml", custom.StylesheetPath(Dark))
	assert.Equal(t, "themes/plot.toml", custom.StylesheetPath(Classic))

	assert.Equal(t, "stylesheets/chart.toml", NewResolver(nil).StylesheetPath(Dark))
}
