package chart

import (
	"io/fs"

	"github.com/lucasb-eyer/go-colorful"

	"finterm/internal/scheme"
)

// GridLine is one family of grid lines.
type GridLine struct {
	Visible   bool
	Stroke    colorful.Color
	StrokeSet bool
}

func (l *GridLine) SetVisible(visible bool) { l.Visible = visible }

func (l *GridLine) SetStroke(c colorful.Color) {
	l.Stroke = c
	l.StrokeSet = true
}

// Grid holds the four grid line families. Major lines start visible, minor
// lines hidden.
type Grid struct {
	HMajor GridLine
	HMinor GridLine
	VMajor GridLine
	VMinor GridLine
}

func newGrid() Grid {
	return Grid{
		HMajor: GridLine{Visible: true},
		VMajor: GridLine{Visible: true},
	}
}

func (g *Grid) HorizontalMajor() scheme.GridLine { return &g.HMajor }
func (g *Grid) HorizontalMinor() scheme.GridLine { return &g.HMinor }
func (g *Grid) VerticalMajor() scheme.GridLine   { return &g.VMajor }
func (g *Grid) VerticalMinor() scheme.GridLine   { return &g.VMinor }

// NumericAxis is a value axis with a themable tick label colour.
type NumericAxis struct {
	name     string
	unit     string
	tickFill colorful.Color
	fillSet  bool
}

func NewNumericAxis(name, unit string) *NumericAxis {
	return &NumericAxis{name: name, unit: unit}
}

func (a *NumericAxis) Name() string { return a.name }
func (a *NumericAxis) Unit() string { return a.unit }

func (a *NumericAxis) SetTickLabelFill(c colorful.Color) {
	a.tickFill = c
	a.fillSet = true
}

// TickLabelFill returns the themed tick label colour, if any.
func (a *NumericAxis) TickLabelFill() (colorful.Color, bool) {
	return a.tickFill, a.fillSet
}

// CategoryAxis labels columns by name and keeps the stylesheet colour.
type CategoryAxis struct {
	name string
}

func NewCategoryAxis(name string) *CategoryAxis { return &CategoryAxis{name: name} }

func (a *CategoryAxis) Name() string { return a.name }

// Chart is a terminal financial chart. It is not safe for concurrent use.
type Chart struct {
	Title string

	datasets    []*OHLCVDataset
	renderers   []SeriesRenderer
	background  scheme.Background
	grid        Grid
	xAxis       scheme.Axis
	yAxis       scheme.Axis
	stylesheets []string
	sheetFS     fs.FS
	titlePaint  colorful.Color
	titleSet    bool
}

// New returns an empty chart with time/price numeric axes and the embedded
// stylesheets.
func New(title string) *Chart {
	return &Chart{
		Title:   title,
		grid:    newGrid(),
		xAxis:   NewNumericAxis("time", "iso"),
		yAxis:   NewNumericAxis("price", "points"),
		sheetFS: Stylesheets,
	}
}

// SetAxes replaces the X and Y axes.
func (c *Chart) SetAxes(x, y scheme.Axis) {
	c.xAxis = x
	c.yAxis = y
}

// SetStylesheetFS changes where stylesheet paths are read from.
func (c *Chart) SetStylesheetFS(fsys fs.FS) { c.sheetFS = fsys }

// AddDataset attaches a chart-global dataset. Global datasets are drawn by
// the first renderer.
func (c *Chart) AddDataset(ds *OHLCVDataset) { c.datasets = append(c.datasets, ds) }

func (c *Chart) AddRenderer(r SeriesRenderer) { c.renderers = append(c.renderers, r) }

func (c *Chart) Datasets() []scheme.Dataset {
	out := make([]scheme.Dataset, 0, len(c.datasets))
	for _, ds := range c.datasets {
		out = append(out, ds)
	}
	return out
}

func (c *Chart) Renderers() []scheme.Renderer {
	out := make([]scheme.Renderer, 0, len(c.renderers))
	for _, r := range c.renderers {
		out = append(out, r)
	}
	return out
}

func (c *Chart) SetPlotBackground(bg scheme.Background) { c.background = bg }

func (c *Chart) PlotBackground() scheme.Background { return c.background }

func (c *Chart) GridRenderer() scheme.GridRenderer { return &c.grid }

// Grid exposes the concrete grid state.
func (c *Chart) Grid() *Grid { return &c.grid }

func (c *Chart) XAxis() scheme.Axis { return c.xAxis }
func (c *Chart) YAxis() scheme.Axis { return c.yAxis }

func (c *Chart) AddStylesheet(path string) { c.stylesheets = append(c.stylesheets, path) }

// Stylesheets returns the stylesheet paths in application order.
func (c *Chart) Stylesheets() []string {
	out := make([]string, len(c.stylesheets))
	copy(out, c.stylesheets)
	return out
}

func (c *Chart) SetTitlePaint(col colorful.Color) {
	c.titlePaint = col
	c.titleSet = true
}

// TitlePaint returns the themed title colour, if any.
func (c *Chart) TitlePaint() (colorful.Color, bool) { return c.titlePaint, c.titleSet }

var _ scheme.Chart = (*Chart)(nil)
