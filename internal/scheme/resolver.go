package scheme

import (
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Dataset is the single write operation the resolver needs from a series.
type Dataset interface {
	SetStyle(style string)
}

// Renderer is a chart drawing strategy with its own datasets.
type Renderer interface {
	Kind() Kind
	Datasets() []Dataset
}

// Extension is a paint-after hook attached to a renderer.
type Extension interface {
	Kind() Kind
}

// ExtensionPointAware renderers expose their paint-after extensions.
type ExtensionPointAware interface {
	PaintAfterExtensions() []Extension
}

// DatasetAware extensions carry their own dataset.
type DatasetAware interface {
	Dataset() Dataset
}

// GridLine is one family of grid lines (e.g. horizontal major).
type GridLine interface {
	SetVisible(visible bool)
	SetStroke(c colorful.Color)
}

// GridRenderer groups the four grid line families of a chart.
type GridRenderer interface {
	HorizontalMajor() GridLine
	HorizontalMinor() GridLine
	VerticalMajor() GridLine
	VerticalMinor() GridLine
}

// Axis is a chart axis. Axes that implement TickLabelFiller get their tick
// label colour themed.
type Axis interface {
	Name() string
}

// TickLabelFiller is implemented by axes whose tick label colour can be set.
type TickLabelFiller interface {
	SetTickLabelFill(c colorful.Color)
}

// Chart is the chart surface the resolver decorates.
type Chart interface {
	Datasets() []Dataset
	Renderers() []Renderer
	SetPlotBackground(bg Background)
	GridRenderer() GridRenderer
	XAxis() Axis
	YAxis() Axis
	AddStylesheet(path string)
	SetTitlePaint(c colorful.Color)
}

const (
	// DefaultStylesheetBase is the base stylesheet path without extension.
	DefaultStylesheetBase = "stylesheets/chart"
	stylesheetFormat      = "%s.toml"
)

// Resolver applies themes to charts and series. It holds no per-call state
// and is safe to reuse; callers must not mutate a chart concurrently with
// ApplyTo.
type Resolver struct {
	stylesheets fs.FS
	base        string
	logger      *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger enables logging of stylesheet fallbacks.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithStylesheetBase overrides DefaultStylesheetBase.
func WithStylesheetBase(base string) Option {
	return func(r *Resolver) { r.base = base }
}

// NewResolver builds a resolver that checks per-theme stylesheets in fsys.
// A nil fsys always resolves the base stylesheet.
func NewResolver(fsys fs.FS, opts ...Option) *Resolver {
	r := &Resolver{stylesheets: fsys, base: DefaultStylesheetBase}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplySeriesStyle writes the style for (theme, renderer kind) to ds. A
// non-empty override is written verbatim instead and skips every lookup,
// including the renderer's position overlays. A nil dataset or renderer is
// skipped.
func (r *Resolver) ApplySeriesStyle(theme Theme, override string, ds Dataset, renderer Renderer) error {
	if ds == nil || renderer == nil {
		return nil
	}
	if override != "" {
		ds.SetStyle(override)
		return nil
	}
	spec, ok, err := SeriesStyle(theme, renderer.Kind())
	if err != nil {
		return err
	}
	if ok {
		ds.SetStyle(spec.String())
	}

	aware, ok := renderer.(ExtensionPointAware)
	if !ok {
		return nil
	}
	for _, ext := range aware.PaintAfterExtensions() {
		withData, ok := ext.(DatasetAware)
		if !ok || ext.Kind() != KindPositionOverlay {
			continue
		}
		spec, _, err := OverlayStyle(theme, ext.Kind())
		if err != nil {
			return err
		}
		if target := withData.Dataset(); target != nil {
			target.SetStyle(spec.String())
		}
	}
	return nil
}

// ApplyThemeStyle is ApplySeriesStyle without an override.
func (r *Resolver) ApplyThemeStyle(theme Theme, ds Dataset, renderer Renderer) error {
	return r.ApplySeriesStyle(theme, "", ds, renderer)
}

// ApplyTo themes every series of c and decorates the chart.
func (r *Resolver) ApplyTo(theme Theme, c Chart) error {
	return r.ApplyToWithOverride(theme, "", c)
}

// ApplyToWithOverride themes c, writing override to every series instead of
// the theme styles when it is non-empty. Global datasets are styled against
// every renderer first; each renderer's own datasets are styled afterwards
// and win. The first error aborts the call.
func (r *Resolver) ApplyToWithOverride(theme Theme, override string, c Chart) error {
	renderers := c.Renderers()
	for _, ds := range c.Datasets() {
		for _, renderer := range renderers {
			if err := r.ApplySeriesStyle(theme, override, ds, renderer); err != nil {
				return fmt.Errorf("style chart dataset: %w", err)
			}
		}
	}
	for _, renderer := range renderers {
		if renderer == nil {
			continue
		}
		for _, ds := range renderer.Datasets() {
			if err := r.ApplySeriesStyle(theme, override, ds, renderer); err != nil {
				return fmt.Errorf("style %s dataset: %w", renderer.Kind(), err)
			}
		}
	}

	c.AddStylesheet(r.StylesheetPath(theme))

	if spec, ok := Decoration(theme); ok {
		spec.apply(c)
	}
	return nil
}

// StylesheetPath returns the per-theme stylesheet when it exists and the
// base stylesheet otherwise.
func (r *Resolver) StylesheetPath(theme Theme) string {
	base := fmt.Sprintf(stylesheetFormat, r.base)
	if r.stylesheets == nil {
		return base
	}
	themed := fmt.Sprintf(stylesheetFormat, r.base+"-"+strings.ToLower(string(theme)))
	if _, err := fs.Stat(r.stylesheets, themed); err != nil {
		if r.logger != nil {
			r.logger.Printf("scheme: no stylesheet %s, using %s", themed, base)
		}
		return base
	}
	return themed
}
