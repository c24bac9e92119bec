package scheme

import (
	"fmt"
	"strings"
)

// Theme names a visual preset controlling series colours and chart chrome.
type Theme string

const (
	Classic    Theme = "CLASSIC"
	Clearlook  Theme = "CLEARLOOK"
	Sand       Theme = "SAND"
	Blackberry Theme = "BLACKBERRY"
	Dark       Theme = "DARK"
)

var defaultThemes = [...]Theme{Classic, Clearlook, Sand, Blackberry, Dark}

// Themes returns the built-in themes in display order.
func Themes() []Theme {
	out := make([]Theme, len(defaultThemes))
	copy(out, defaultThemes[:])
	return out
}

// ParseTheme matches a theme name case-insensitively against the built-in set.
func ParseTheme(name string) (Theme, error) {
	norm := Theme(strings.ToUpper(strings.TrimSpace(name)))
	for _, t := range defaultThemes {
		if t == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// Next returns the built-in theme following t, wrapping around. Unknown
// themes start over at the first one.
func (t Theme) Next() Theme {
	for i, candidate := range defaultThemes {
		if candidate == t {
			return defaultThemes[(i+1)%len(defaultThemes)]
		}
	}
	return defaultThemes[0]
}

// Kind tags the drawing strategy of a renderer or paint-after extension.
type Kind int

const (
	// KindUnstyled is any renderer the resolver does not style.
	KindUnstyled Kind = iota
	KindCandlestick
	KindHighLow
	KindFootprint
	KindPositionOverlay
)

var kindNames = map[Kind]string{
	KindUnstyled:        "unstyled",
	KindCandlestick:     "candlestick",
	KindHighLow:         "high-low",
	KindFootprint:       "footprint",
	KindPositionOverlay: "position-overlay",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a renderer name to its Kind. Only series renderers are
// accepted; the overlay kind is attached as an extension, never chosen.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "candlestick", "candle", "candles":
		return KindCandlestick, nil
	case "high-low", "highlow", "hilo", "ohlc":
		return KindHighLow, nil
	case "footprint":
		return KindFootprint, nil
	}
	return KindUnstyled, fmt.Errorf("unknown renderer %q", name)
}

// SeriesKinds lists the renderer kinds that carry a series style table.
func SeriesKinds() []Kind {
	return []Kind{KindCandlestick, KindHighLow, KindFootprint}
}
