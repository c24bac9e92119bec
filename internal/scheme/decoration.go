package scheme

import "github.com/lucasb-eyer/go-colorful"

// Visibility is a tri-state grid line toggle.
type Visibility uint8

const (
	Unchanged Visibility = iota
	Shown
	Hidden
)

// Paint is an optional colour assignment.
type Paint struct {
	Color colorful.Color
	Set   bool
}

func paint(value string) Paint {
	return Paint{Color: MustColor(value), Set: true}
}

// BackgroundKind distinguishes tiled images from solid fills.
type BackgroundKind uint8

const (
	BackgroundNone BackgroundKind = iota
	BackgroundImage
	BackgroundFill
)

// Background describes the plot area background.
type Background struct {
	Kind  BackgroundKind
	Image string
	Fill  colorful.Color
}

// GridLineSpec is the decoration applied to one grid line family.
type GridLineSpec struct {
	Visibility Visibility
	Stroke     Paint
}

// DecorationSpec is the set of chart-level mutations for one theme.
type DecorationSpec struct {
	Background      Background
	HorizontalMajor GridLineSpec
	HorizontalMinor GridLineSpec
	VerticalMajor   GridLineSpec
	VerticalMinor   GridLineSpec
	TitlePaint      Paint
	TickLabelFill   Paint
}

// SandImage names the tiled background used by the SAND theme.
const SandImage = "sand"

// The SAND and BLACKBERRY rows leave the horizontal minor grid untouched.
var decorations = map[Theme]DecorationSpec{
	Classic:   {},
	Clearlook: {},
	Sand: {
		Background:      Background{Kind: BackgroundImage, Image: SandImage},
		VerticalMinor:   GridLineSpec{Visibility: Shown},
		VerticalMajor:   GridLineSpec{Visibility: Shown, Stroke: paint("darkgrey")},
		HorizontalMajor: GridLineSpec{Visibility: Shown, Stroke: paint("darkgrey")},
		TickLabelFill:   paint("black"),
	},
	Blackberry: {
		Background:      Background{Kind: BackgroundFill, Fill: MustColor("rgb(0,2,46)")},
		VerticalMinor:   GridLineSpec{Visibility: Hidden},
		VerticalMajor:   GridLineSpec{Visibility: Hidden},
		HorizontalMajor: GridLineSpec{Visibility: Hidden},
		TitlePaint:      paint("white"),
		TickLabelFill:   paint("whitesmoke"),
	},
	Dark: {
		Background:      Background{Kind: BackgroundFill, Fill: MustColor("rgb(47,47,47)")},
		VerticalMinor:   GridLineSpec{Visibility: Hidden},
		VerticalMajor:   GridLineSpec{Visibility: Hidden},
		HorizontalMajor: GridLineSpec{Visibility: Shown, Stroke: paint("rgb(106,106,106)")},
		HorizontalMinor: GridLineSpec{Visibility: Hidden},
		TitlePaint:      paint("white"),
		TickLabelFill:   paint("rgb(194,194,194)"),
	},
}

// Decoration returns the chart decoration for a theme. ok is false for
// themes without an entry.
func Decoration(theme Theme) (DecorationSpec, bool) {
	spec, ok := decorations[theme]
	return spec, ok
}

func (s DecorationSpec) apply(c Chart) {
	if s.Background.Kind != BackgroundNone {
		c.SetPlotBackground(s.Background)
	}
	if grid := c.GridRenderer(); grid != nil {
		s.VerticalMinor.apply(grid.VerticalMinor())
		s.VerticalMajor.apply(grid.VerticalMajor())
		s.HorizontalMajor.apply(grid.HorizontalMajor())
		s.HorizontalMinor.apply(grid.HorizontalMinor())
	}
	if s.TitlePaint.Set {
		c.SetTitlePaint(s.TitlePaint.Color)
	}
	if s.TickLabelFill.Set {
		for _, axis := range []Axis{c.XAxis(), c.YAxis()} {
			if filler, ok := axis.(TickLabelFiller); ok {
				filler.SetTickLabelFill(s.TickLabelFill.Color)
			}
		}
	}
}

func (s GridLineSpec) apply(line GridLine) {
	if line == nil {
		return
	}
	switch s.Visibility {
	case Shown:
		line.SetVisible(true)
	case Hidden:
		line.SetVisible(false)
	}
	if s.Stroke.Set {
		line.SetStroke(s.Stroke.Color)
	}
}
