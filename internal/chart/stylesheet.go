package chart

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"finterm/internal/scheme"
)

// Stylesheets holds the built-in chart stylesheets under stylesheets/.
//
//go:embed stylesheets/*.toml
var Stylesheets embed.FS

// Stylesheet is the chart chrome read from TOML stylesheets.
type Stylesheet struct {
	Plot   sheetPlot             `toml:"plot"`
	Title  sheetTitle            `toml:"title"`
	Axis   sheetAxis             `toml:"axis"`
	Grid   sheetGrid             `toml:"grid"`
	Series sheetSeries           `toml:"series"`
	Images map[string]sheetImage `toml:"images"`
}

type sheetPlot struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
}

type sheetTitle struct {
	Color string `toml:"color"`
	Bold  bool   `toml:"bold"`
}

type sheetAxis struct {
	Line      string `toml:"line"`
	TickLabel string `toml:"tick_label"`
}

type sheetGrid struct {
	Major string `toml:"major"`
	Minor string `toml:"minor"`
}

type sheetSeries struct {
	Color string `toml:"color"`
}

type sheetImage struct {
	Glyph      string `toml:"glyph"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// fallbackSheet keeps rendering possible when no stylesheet was applied.
var fallbackSheet = Stylesheet{
	Plot:   sheetPlot{Background: "#ffffff", Foreground: "#303030"},
	Title:  sheetTitle{Color: "#000000"},
	Axis:   sheetAxis{Line: "#808080", TickLabel: "#303030"},
	Grid:   sheetGrid{Major: "#d3d3d3", Minor: "#ececec"},
	Series: sheetSeries{Color: "#4682b4"},
	Images: map[string]sheetImage{
		scheme.SandImage: {Glyph: "░", Foreground: "#dccda7", Background: "#efe5cb"},
	},
}

// ParseStylesheet decodes one TOML stylesheet.
func ParseStylesheet(data []byte) (Stylesheet, error) {
	var s Stylesheet
	if err := toml.Unmarshal(data, &s); err != nil {
		return Stylesheet{}, fmt.Errorf("stylesheet: parse TOML: %w", err)
	}
	if err := s.validate(); err != nil {
		return Stylesheet{}, err
	}
	return s, nil
}

// LoadStylesheets reads paths from fsys in order, later sheets overriding
// the fields they set.
func LoadStylesheets(fsys fs.FS, paths []string) (Stylesheet, error) {
	merged := fallbackSheet
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Stylesheet{}, fmt.Errorf("stylesheet: read %s: %w", path, err)
		}
		sheet, err := ParseStylesheet(data)
		if err != nil {
			return Stylesheet{}, fmt.Errorf("%s: %w", path, err)
		}
		merged = merged.merge(sheet)
	}
	return merged, nil
}

func (s Stylesheet) merge(o Stylesheet) Stylesheet {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&s.Plot.Background, o.Plot.Background)
	pick(&s.Plot.Foreground, o.Plot.Foreground)
	pick(&s.Title.Color, o.Title.Color)
	s.Title.Bold = s.Title.Bold || o.Title.Bold
	pick(&s.Axis.Line, o.Axis.Line)
	pick(&s.Axis.TickLabel, o.Axis.TickLabel)
	pick(&s.Grid.Major, o.Grid.Major)
	pick(&s.Grid.Minor, o.Grid.Minor)
	pick(&s.Series.Color, o.Series.Color)
	if len(o.Images) > 0 {
		images := make(map[string]sheetImage, len(s.Images)+len(o.Images))
		for k, v := range s.Images {
			images[k] = v
		}
		for k, v := range o.Images {
			images[k] = v
		}
		s.Images = images
	}
	return s
}

func (s Stylesheet) validate() error {
	colors := map[string]string{
		"plot.background": s.Plot.Background,
		"plot.foreground": s.Plot.Foreground,
		"title.color":     s.Title.Color,
		"axis.line":       s.Axis.Line,
		"axis.tick_label": s.Axis.TickLabel,
		"grid.major":      s.Grid.Major,
		"grid.minor":      s.Grid.Minor,
		"series.color":    s.Series.Color,
	}
	for name, img := range s.Images {
		if img.Glyph == "" {
			return fmt.Errorf("stylesheet: image %q needs a glyph", name)
		}
		colors["images."+name+".foreground"] = img.Foreground
		colors["images."+name+".background"] = img.Background
	}
	for field, value := range colors {
		if value == "" {
			continue
		}
		if _, _, err := scheme.ParseColor(value); err != nil {
			return fmt.Errorf("stylesheet: field %q: %w", field, err)
		}
	}
	return nil
}

// sheetColor parses a validated stylesheet colour, falling back to def.
func sheetColor(value string, def colorful.Color) colorful.Color {
	if value == "" {
		return def
	}
	c, _, err := scheme.ParseColor(value)
	if err != nil {
		return def
	}
	return c
}
