package scheme

import "github.com/lucasb-eyer/go-colorful"

type fakeDataset struct {
	name   string
	writes []string
}

func (d *fakeDataset) SetStyle(style string) { d.writes = append(d.writes, style) }

func (d *fakeDataset) style() string {
	if len(d.writes) == 0 {
		return ""
	}
	return d.writes[len(d.writes)-1]
}

type fakeRenderer struct {
	kind       Kind
	datasets   []Dataset
	extensions []Extension
}

func (r *fakeRenderer) Kind() Kind          { return r.kind }
func (r *fakeRenderer) Datasets() []Dataset { return r.datasets }

type fakeAwareRenderer struct {
	fakeRenderer
}

func (r *fakeAwareRenderer) PaintAfterExtensions() []Extension { return r.extensions }

type fakeExtension struct {
	kind Kind
}

func (e *fakeExtension) Kind() Kind { return e.kind }

type fakeDataExtension struct {
	kind Kind
	ds   Dataset
}

func (e *fakeDataExtension) Kind() Kind       { return e.kind }
func (e *fakeDataExtension) Dataset() Dataset { return e.ds }

type fakeLine struct {
	visible *bool
	stroke  *colorful.Color
	calls   int
}

func (l *fakeLine) SetVisible(v bool) {
	l.calls++
	l.visible = &v
}

func (l *fakeLine) SetStroke(c colorful.Color) {
	l.calls++
	l.stroke = &c
}

type fakeGrid struct {
	hMajor, hMinor, vMajor, vMinor fakeLine
}

func (g *fakeGrid) HorizontalMajor() GridLine { return &g.hMajor }
func (g *fakeGrid) HorizontalMinor() GridLine { return &g.hMinor }
func (g *fakeGrid) VerticalMajor() GridLine   { return &g.vMajor }
func (g *fakeGrid) VerticalMinor() GridLine   { return &g.vMinor }

type plainAxis struct{ name string }

func (a *plainAxis) Name() string { return a.name }

type fillAxis struct {
	plainAxis
	fill *colorful.Color
}

func (a *fillAxis) SetTickLabelFill(c colorful.Color) { a.fill = &c }

type fakeChart struct {
	datasets    []Dataset
	renderers   []Renderer
	background  *Background
	grid        fakeGrid
	x, y        Axis
	stylesheets []string
	title       *colorful.Color
}

func newFakeChart() *fakeChart {
	return &fakeChart{
		x: &fillAxis{plainAxis: plainAxis{name: "time"}},
		y: &fillAxis{plainAxis: plainAxis{name: "price"}},
	}
}

func (c *fakeChart) Datasets() []Dataset              { return c.datasets }
func (c *fakeChart) Renderers() []Renderer            { return c.renderers }
func (c *fakeChart) SetPlotBackground(bg Background)  { c.background = &bg }
func (c *fakeChart) GridRenderer() GridRenderer       { return &c.grid }
func (c *fakeChart) XAxis() Axis                      { return c.x }
func (c *fakeChart) YAxis() Axis                      { return c.y }
func (c *fakeChart) AddStylesheet(path string)        { c.stylesheets = append(c.stylesheets, path) }
func (c *fakeChart) SetTitlePaint(col colorful.Color) { c.title = &col }
