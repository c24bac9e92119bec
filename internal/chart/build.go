package chart

import (
	"finterm/internal/scheme"
)

// Spec describes a single-instrument chart.
type Spec struct {
	Title   string
	Symbol  string
	Kind    scheme.Kind
	Bars    []Bar
	Trades  []Trade
	Overlay bool
}

// Build assembles a chart with one renderer of spec.Kind over the bars and,
// when requested, a position overlay for the trades.
func Build(spec Spec) (*Chart, error) {
	ohlcv := NewOHLCVDataset(spec.Symbol, spec.Bars)
	r, err := NewRenderer(spec.Kind, ohlcv)
	if err != nil {
		return nil, err
	}
	if spec.Overlay {
		r.AddExtension(NewPositionOverlay(NewTradeDataset(spec.Symbol+" trades", spec.Trades)))
	}
	title := spec.Title
	if title == "" {
		title = spec.Symbol
	}
	c := New(title)
	c.AddRenderer(r)
	return c, nil
}
