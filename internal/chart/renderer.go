package chart

import (
	"fmt"

	"finterm/internal/scheme"
)

// SeriesRenderer is a renderer the chart can draw.
type SeriesRenderer interface {
	scheme.Renderer
	scheme.ExtensionPointAware
	AddDataset(ds *OHLCVDataset)
	AddExtension(ext scheme.Extension)
	ownSets() []*OHLCVDataset
	draw(cv *canvas, sets []*OHLCVDataset)
}

type baseRenderer struct {
	datasets   []*OHLCVDataset
	extensions []scheme.Extension
}

func (b *baseRenderer) Datasets() []scheme.Dataset {
	out := make([]scheme.Dataset, 0, len(b.datasets))
	for _, ds := range b.datasets {
		out = append(out, ds)
	}
	return out
}

func (b *baseRenderer) PaintAfterExtensions() []scheme.Extension { return b.extensions }

func (b *baseRenderer) AddDataset(ds *OHLCVDataset) { b.datasets = append(b.datasets, ds) }

func (b *baseRenderer) ownSets() []*OHLCVDataset { return b.datasets }

func (b *baseRenderer) AddExtension(ext scheme.Extension) { b.extensions = append(b.extensions, ext) }

// CandlestickRenderer draws bodies between open and close with high/low wicks.
type CandlestickRenderer struct{ baseRenderer }

// HighLowRenderer draws a high/low bar with open and close ticks.
type HighLowRenderer struct{ baseRenderer }

// FootprintRenderer draws shaded bodies with a point-of-control marker.
type FootprintRenderer struct{ baseRenderer }

func (*CandlestickRenderer) Kind() scheme.Kind { return scheme.KindCandlestick }
func (*HighLowRenderer) Kind() scheme.Kind     { return scheme.KindHighLow }
func (*FootprintRenderer) Kind() scheme.Kind   { return scheme.KindFootprint }

// NewRenderer builds the renderer for kind with the given datasets attached.
func NewRenderer(kind scheme.Kind, datasets ...*OHLCVDataset) (SeriesRenderer, error) {
	var r SeriesRenderer
	switch kind {
	case scheme.KindCandlestick:
		r = &CandlestickRenderer{}
	case scheme.KindHighLow:
		r = &HighLowRenderer{}
	case scheme.KindFootprint:
		r = &FootprintRenderer{}
	default:
		return nil, fmt.Errorf("no renderer for kind %s", kind)
	}
	for _, ds := range datasets {
		r.AddDataset(ds)
	}
	return r, nil
}

// PositionOverlay is a paint-after extension marking trades on the chart.
type PositionOverlay struct {
	trades *TradeDataset
}

func NewPositionOverlay(trades *TradeDataset) *PositionOverlay {
	return &PositionOverlay{trades: trades}
}

func (*PositionOverlay) Kind() scheme.Kind { return scheme.KindPositionOverlay }

// Dataset returns the overlay's trades, or nil when it has none.
func (p *PositionOverlay) Dataset() scheme.Dataset {
	if p.trades == nil {
		return nil
	}
	return p.trades
}

func (p *PositionOverlay) Trades() *TradeDataset { return p.trades }

var (
	_ SeriesRenderer      = (*CandlestickRenderer)(nil)
	_ SeriesRenderer      = (*HighLowRenderer)(nil)
	_ SeriesRenderer      = (*FootprintRenderer)(nil)
	_ scheme.DatasetAware = (*PositionOverlay)(nil)
)
