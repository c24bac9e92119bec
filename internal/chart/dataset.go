package chart

import (
	"sort"
	"time"
)

// Bar is one OHLCV sample.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Long reports whether the bar closed at or above its open.
func (b Bar) Long() bool {
	return b.Close >= b.Open
}

// OHLCVDataset is a named series of bars carrying a style string.
type OHLCVDataset struct {
	name  string
	bars  []Bar
	style string
}

// NewOHLCVDataset sorts bars by time and wraps them in a dataset.
func NewOHLCVDataset(name string, bars []Bar) *OHLCVDataset {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	return &OHLCVDataset{name: name, bars: sorted}
}

func (d *OHLCVDataset) Name() string { return d.name }

// Bars returns the bars in time order. The slice must not be modified.
func (d *OHLCVDataset) Bars() []Bar { return d.bars }

func (d *OHLCVDataset) Len() int { return len(d.bars) }

func (d *OHLCVDataset) Style() string { return d.style }

// SetStyle replaces the dataset's style string.
func (d *OHLCVDataset) SetStyle(style string) { d.style = style }

// Side is the direction of a trade marker.
type Side int

const (
	SideLong Side = iota
	SideShort
	SideExit
)

func (s Side) String() string {
	switch s {
	case SideLong:
		return "long"
	case SideShort:
		return "short"
	case SideExit:
		return "exit"
	}
	return "unknown"
}

// Trade is an executed position change drawn by the position overlay.
type Trade struct {
	Time        time.Time
	Price       float64
	Side        Side
	Description string
}

// TradeDataset holds the trades of one instrument.
type TradeDataset struct {
	name   string
	trades []Trade
	style  string
}

func NewTradeDataset(name string, trades []Trade) *TradeDataset {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	return &TradeDataset{name: name, trades: sorted}
}

func (d *TradeDataset) Name() string          { return d.name }
func (d *TradeDataset) Trades() []Trade       { return d.trades }
func (d *TradeDataset) Style() string         { return d.style }
func (d *TradeDataset) SetStyle(style string) { d.style = style }
