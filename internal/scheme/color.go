package scheme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":      "#000000",
	"white":      "#ffffff",
	"red":        "#ff0000",
	"green":      "#008000",
	"blue":       "#0000ff",
	"yellow":     "#ffff00",
	"grey":       "#808080",
	"gray":       "#808080",
	"darkgrey":   "#a9a9a9",
	"darkgray":   "#a9a9a9",
	"lightgrey":  "#d3d3d3",
	"lightgray":  "#d3d3d3",
	"whitesmoke": "#f5f5f5",
	"orange":     "#ffa500",
}

// ParseColor reads a style value as a colour: a named colour, #rgb/#rrggbb,
// rgb(r,g,b) or rgba(r,g,b,a). Alpha is 1 unless given.
func ParseColor(value string) (colorful.Color, float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	switch {
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("parse colour %q: %w", value, err)
		}
		return c, 1, nil
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseRGBFunc(value, v[len("rgba("):len(v)-1], 4)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseRGBFunc(value, v[len("rgb("):len(v)-1], 3)
	}
	return colorful.Color{}, 0, fmt.Errorf("parse colour %q: unrecognised format", value)
}

// MustColor is ParseColor for package-level tables.
func MustColor(value string) colorful.Color {
	c, _, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRGBFunc(original, args string, want int) (colorful.Color, float64, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return colorful.Color{}, 0, fmt.Errorf("parse colour %q: expected %d components", original, want)
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return colorful.Color{}, 0, fmt.Errorf("parse colour %q: component %d out of range", original, i+1)
		}
		rgb[i] = float64(n) / 255
	}
	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return colorful.Color{}, 0, fmt.Errorf("parse colour %q: alpha out of range", original)
		}
		alpha = a
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha, nil
}
