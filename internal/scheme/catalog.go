package scheme

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// CatalogEntry is one theme's style strings and decoration summary.
type CatalogEntry struct {
	Theme      string             `yaml:"theme"`
	Series     map[string]string  `yaml:"series"`
	Overlays   map[string]string  `yaml:"overlays"`
	Decoration *DecorationSummary `yaml:"decoration,omitempty"`
}

// DecorationSummary is the printable form of a DecorationSpec.
type DecorationSummary struct {
	Background    string            `yaml:"background,omitempty"`
	Grid          map[string]string `yaml:"grid,omitempty"`
	TitlePaint    string            `yaml:"title_paint,omitempty"`
	TickLabelFill string            `yaml:"tick_label_fill,omitempty"`
}

// Catalog lists every built-in theme with its resolved tables.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(defaultThemes))
	for _, theme := range defaultThemes {
		entry := CatalogEntry{
			Theme:    string(theme),
			Series:   map[string]string{},
			Overlays: map[string]string{},
		}
		for _, kind := range sortedKinds(seriesStyles) {
			if spec, ok, err := SeriesStyle(theme, kind); ok && err == nil {
				entry.Series[kind.String()] = spec.String()
			}
		}
		for _, kind := range sortedKinds(overlayStyles) {
			if spec, ok, err := OverlayStyle(theme, kind); ok && err == nil {
				entry.Overlays[kind.String()] = spec.String()
			}
		}
		if spec, ok := Decoration(theme); ok && spec != (DecorationSpec{}) {
			entry.Decoration = summarize(spec)
		}
		entries = append(entries, entry)
	}
	return entries
}

// WriteCatalog encodes Catalog as YAML.
func WriteCatalog(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Catalog()); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

func sortedKinds(tables map[Kind]map[Theme]StyleSpec) []Kind {
	kinds := make([]Kind, 0, len(tables))
	for k := range tables {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func summarize(spec DecorationSpec) *DecorationSummary {
	out := &DecorationSummary{Grid: map[string]string{}}
	switch spec.Background.Kind {
	case BackgroundImage:
		out.Background = "image:" + spec.Background.Image
	case BackgroundFill:
		out.Background = "fill:" + spec.Background.Fill.Hex()
	}
	lines := map[string]GridLineSpec{
		"horizontal_major": spec.HorizontalMajor,
		"horizontal_minor": spec.HorizontalMinor,
		"vertical_major":   spec.VerticalMajor,
		"vertical_minor":   spec.VerticalMinor,
	}
	for name, line := range lines {
		var desc string
		switch line.Visibility {
		case Shown:
			desc = "shown"
		case Hidden:
			desc = "hidden"
		}
		if line.Stroke.Set {
			if desc != "" {
				desc += " "
			}
			desc += line.Stroke.Color.Hex()
		}
		if desc != "" {
			out.Grid[name] = desc
		}
	}
	if spec.TitlePaint.Set {
		out.TitlePaint = spec.TitlePaint.Color.Hex()
	}
	if spec.TickLabelFill.Set {
		out.TickLabelFill = spec.TickLabelFill.Color.Hex()
	}
	return out
}
