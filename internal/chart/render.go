package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"finterm/internal/scheme"
)

const (
	minWidth       = 24
	minHeight      = 8
	labelWidth     = 10
	majorRowStep   = 4
	majorColStep   = 10
	volumeFraction = 5
	// Body and wick colours closer than this to the background are drawn
	// hollow in the stroke colour.
	hollowDistance = 0.08
)

type cell struct {
	glyph rune
	fg    colorful.Color
	bg    colorful.Color
}

type canvas struct {
	cols, rows  int
	priceRows   int
	cells       [][]cell
	background  colorful.Color
	foreground  colorful.Color
	seriesColor colorful.Color
	min, max    float64
	times       []time.Time
}

func (cv *canvas) set(x, y int, glyph rune, fg colorful.Color) {
	if x < 0 || x >= cv.cols || y < 0 || y >= cv.rows {
		return
	}
	cv.cells[y][x].glyph = glyph
	cv.cells[y][x].fg = fg
}

// row maps a price to a row of the price area.
func (cv *canvas) row(price float64) int {
	if cv.max <= cv.min {
		return cv.priceRows / 2
	}
	frac := (cv.max - price) / (cv.max - cv.min)
	return int(math.Round(frac * float64(cv.priceRows-1)))
}

// window returns the trailing bars of ds that fit and the column of the first.
func (cv *canvas) window(ds *OHLCVDataset) ([]Bar, int) {
	bars := ds.Bars()
	if len(bars) > cv.cols {
		bars = bars[len(bars)-cv.cols:]
	}
	return bars, cv.cols - len(bars)
}

// column finds the column of the last visible bar at or before t.
func (cv *canvas) column(t time.Time) (int, bool) {
	col := -1
	for i, bt := range cv.times {
		if bt.After(t) {
			break
		}
		col = i
	}
	if col < 0 {
		return 0, false
	}
	return cv.cols - len(cv.times) + col, true
}

// seriesStyle reads a dataset style string, ignoring what cannot be parsed.
type seriesStyle struct {
	spec scheme.StyleSpec
	cv   *canvas
}

func newSeriesStyle(raw string, cv *canvas) seriesStyle {
	spec, err := scheme.ParseStyle(raw)
	if err != nil {
		spec = nil
	}
	return seriesStyle{spec: spec, cv: cv}
}

func (s seriesStyle) color(key string, def colorful.Color) colorful.Color {
	v, ok := s.spec.Get(key)
	if !ok {
		return def
	}
	c, alpha, err := scheme.ParseColor(v)
	if err != nil {
		return def
	}
	if alpha < 1 {
		return s.cv.background.BlendRgb(c, alpha).Clamped()
	}
	return c
}

func (s seriesStyle) number(key string, def float64) float64 {
	v, ok := s.spec.Get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// visible nudges a colour that vanishes into the background to the stroke.
func (s seriesStyle) visible(c colorful.Color) (colorful.Color, bool) {
	if c.DistanceLab(s.cv.background) >= hollowDistance {
		return c, false
	}
	return s.color("strokeColor", s.cv.foreground), true
}

func (cv *canvas) drawVolume(bars []Bar, start int, long, short colorful.Color) {
	volRows := cv.rows - cv.priceRows
	if volRows <= 0 {
		return
	}
	maxVol := 0.0
	for _, b := range bars {
		maxVol = math.Max(maxVol, b.Volume)
	}
	if maxVol <= 0 {
		return
	}
	for i, b := range bars {
		height := int(math.Round(b.Volume / maxVol * float64(volRows)))
		c := short
		if b.Long() {
			c = long
		}
		for h := 0; h < height; h++ {
			cv.set(start+i, cv.rows-1-h, '█', c)
		}
	}
}

func (r *CandlestickRenderer) draw(cv *canvas, sets []*OHLCVDataset) {
	for _, ds := range sets {
		st := newSeriesStyle(ds.Style(), cv)
		long := st.color("candleLongColor", cv.seriesColor)
		short := st.color("candleShortColor", cv.seriesColor)
		longWick := st.color("candleLongWickColor", long)
		shortWick := st.color("candleShortWickColor", short)
		body := '┃'
		if st.number("strokeWidth", 1) >= 1.5 {
			body = '█'
		}

		bars, start := cv.window(ds)
		cv.drawVolume(bars, start,
			st.color("candleVolumeLongColor", cv.seriesColor),
			st.color("candleVolumeShortColor", cv.seriesColor))
		for i, b := range bars {
			x := start + i
			bodyColor, wickColor := short, shortWick
			if b.Long() {
				bodyColor, wickColor = long, longWick
			}
			wickColor, _ = st.visible(wickColor)
			for y := cv.row(b.High); y <= cv.row(b.Low); y++ {
				cv.set(x, y, '│', wickColor)
			}
			glyph := body
			bodyColor, hollow := st.visible(bodyColor)
			if hollow {
				glyph = '▯'
			}
			top, bottom := cv.row(math.Max(b.Open, b.Close)), cv.row(math.Min(b.Open, b.Close))
			for y := top; y <= bottom; y++ {
				cv.set(x, y, glyph, bodyColor)
			}
		}
	}
}

func (r *HighLowRenderer) draw(cv *canvas, sets []*OHLCVDataset) {
	for _, ds := range sets {
		st := newSeriesStyle(ds.Style(), cv)
		long := st.color("highLowLongColor", cv.seriesColor)
		short := st.color("highLowShortColor", cv.seriesColor)
		longTick := st.color("highLowLongTickColor", long)
		shortTick := st.color("highLowShortTickColor", short)
		heavy := st.number("highLowTickLineWidth", 1) >= 2

		bars, start := cv.window(ds)
		cv.drawVolume(bars, start,
			st.color("highLowVolumeLongColor", cv.seriesColor),
			st.color("highLowVolumeShortColor", cv.seriesColor))
		for i, b := range bars {
			x := start + i
			lineColor, tickColor := short, shortTick
			if b.Long() {
				lineColor, tickColor = long, longTick
			}
			lineColor, _ = st.visible(lineColor)
			tickColor, _ = st.visible(tickColor)
			for y := cv.row(b.High); y <= cv.row(b.Low); y++ {
				cv.set(x, y, '│', lineColor)
			}
			openRow, closeRow := cv.row(b.Open), cv.row(b.Close)
			openGlyph, closeGlyph := '├', '┤'
			if heavy {
				openGlyph, closeGlyph = '┝', '┥'
			}
			if openRow == closeRow {
				cv.set(x, openRow, '┼', tickColor)
				continue
			}
			cv.set(x, openRow, openGlyph, tickColor)
			cv.set(x, closeRow, closeGlyph, tickColor)
		}
	}
}

func (r *FootprintRenderer) draw(cv *canvas, sets []*OHLCVDataset) {
	for _, ds := range sets {
		st := newSeriesStyle(ds.Style(), cv)
		long := st.color("footprintLongColor", cv.seriesColor)
		short := st.color("footprintShortColor", cv.seriesColor)
		cross := st.color("footprintCrossLineColor", cv.foreground)
		poc := st.color("footprintPocColor", cv.foreground)

		bars, start := cv.window(ds)
		cv.drawVolume(bars, start,
			st.color("footprintVolumeLongColor", cv.seriesColor),
			st.color("footprintVolumeShortColor", cv.seriesColor))
		for i, b := range bars {
			x := start + i
			bodyColor := short
			if b.Long() {
				bodyColor = long
			}
			bodyColor, _ = st.visible(bodyColor)
			for y := cv.row(b.High); y <= cv.row(b.Low); y++ {
				cv.set(x, y, '┊', cross)
			}
			top, bottom := cv.row(math.Max(b.Open, b.Close)), cv.row(math.Min(b.Open, b.Close))
			for y := top; y <= bottom; y++ {
				cv.set(x, y, '▒', bodyColor)
			}
			// Typical price stands in for the volume point of control.
			cv.set(x, cv.row((b.High+b.Low+b.Close)/3), '◆', poc)
		}
	}
}

func (p *PositionOverlay) draw(cv *canvas) {
	if p.trades == nil {
		return
	}
	st := newSeriesStyle(p.trades.Style(), cv)
	colors := map[Side]colorful.Color{
		SideLong:  st.color("positionTriangleLongColor", cv.foreground),
		SideShort: st.color("positionTriangleShortColor", cv.foreground),
		SideExit:  st.color("positionTriangleExitColor", cv.foreground),
	}
	glyphs := map[Side]rune{SideLong: '▲', SideShort: '▼', SideExit: '◇'}
	for _, t := range p.trades.Trades() {
		x, ok := cv.column(t.Time)
		if !ok || t.Price < cv.min || t.Price > cv.max {
			continue
		}
		cv.set(x, cv.row(t.Price), glyphs[t.Side], colors[t.Side])
	}
}

// Render draws the chart into a width×height block of styled text.
func (c *Chart) Render(width, height int) (string, error) {
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	sheet, err := LoadStylesheets(c.sheetFS, c.stylesheets)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	cv := c.newCanvas(sheet, width-labelWidth, height-2)
	c.drawGrid(cv, sheet)
	for i, r := range c.renderers {
		sets := r.ownSets()
		if i == 0 {
			sets = append(append([]*OHLCVDataset{}, c.datasets...), sets...)
		}
		r.draw(cv, sets)
		for _, ext := range r.PaintAfterExtensions() {
			if overlay, ok := ext.(*PositionOverlay); ok {
				overlay.draw(cv)
			}
		}
	}

	lines := make([]string, 0, height)
	lines = append(lines, c.renderTitle(sheet, width))
	tickFill := c.tickLabelColor(c.yAxis, sheet)
	for y := 0; y < cv.rows; y++ {
		lines = append(lines, renderCells(cv.cells[y])+c.priceLabel(cv, y, tickFill))
	}
	lines = append(lines, c.timeLabels(cv, c.tickLabelColor(c.xAxis, sheet)))
	return strings.Join(lines, "\n"), nil
}

func (c *Chart) newCanvas(sheet Stylesheet, cols, rows int) *canvas {
	cv := &canvas{
		cols:        cols,
		rows:        rows,
		priceRows:   rows - rows/volumeFraction,
		foreground:  sheetColor(sheet.Plot.Foreground, colorful.Color{}),
		seriesColor: sheetColor(sheet.Series.Color, colorful.Color{B: 1}),
	}
	fill := cell{glyph: ' '}
	switch c.background.Kind {
	case scheme.BackgroundFill:
		fill.bg = c.background.Fill
	case scheme.BackgroundImage:
		if img, ok := sheet.Images[c.background.Image]; ok {
			fill.glyph, _ = utf8.DecodeRuneInString(img.Glyph)
			fill.fg = sheetColor(img.Foreground, colorful.Color{})
			fill.bg = sheetColor(img.Background, colorful.Color{R: 1, G: 1, B: 1})
		} else {
			fill.bg = sheetColor(sheet.Plot.Background, colorful.Color{R: 1, G: 1, B: 1})
		}
	default:
		fill.bg = sheetColor(sheet.Plot.Background, colorful.Color{R: 1, G: 1, B: 1})
	}
	cv.background = fill.bg
	cv.cells = make([][]cell, rows)
	for y := range cv.cells {
		cv.cells[y] = make([]cell, cols)
		for x := range cv.cells[y] {
			cv.cells[y][x] = fill
		}
	}

	cv.min, cv.max = math.Inf(1), math.Inf(-1)
	all := append([]*OHLCVDataset{}, c.datasets...)
	for _, r := range c.renderers {
		all = append(all, r.ownSets()...)
	}
	for _, ds := range all {
		bars, _ := cv.window(ds)
		for _, b := range bars {
			cv.min = math.Min(cv.min, b.Low)
			cv.max = math.Max(cv.max, b.High)
		}
		if len(bars) > len(cv.times) {
			cv.times = cv.times[:0]
			for _, b := range bars {
				cv.times = append(cv.times, b.Time)
			}
		}
	}
	if math.IsInf(cv.min, 0) {
		cv.min, cv.max = 0, 1
	}
	return cv
}

func (c *Chart) drawGrid(cv *canvas, sheet Stylesheet) {
	stroke := func(l GridLine, def string) colorful.Color {
		if l.StrokeSet {
			return l.Stroke
		}
		return sheetColor(def, cv.foreground)
	}
	g := c.grid
	for y := 0; y < cv.priceRows; y++ {
		switch {
		case y%majorRowStep == 0 && g.HMajor.Visible:
			for x := 0; x < cv.cols; x++ {
				cv.set(x, y, '─', stroke(g.HMajor, sheet.Grid.Major))
			}
		case y%majorRowStep == majorRowStep/2 && g.HMinor.Visible:
			for x := 0; x < cv.cols; x++ {
				cv.set(x, y, '┄', stroke(g.HMinor, sheet.Grid.Minor))
			}
		}
	}
	for x := cv.cols - 1; x >= 0; x-- {
		offset := cv.cols - 1 - x
		switch {
		case offset%majorColStep == 0 && g.VMajor.Visible:
			for y := 0; y < cv.priceRows; y++ {
				glyph := '│'
				if cv.cells[y][x].glyph == '─' {
					glyph = '┼'
				}
				cv.set(x, y, glyph, stroke(g.VMajor, sheet.Grid.Major))
			}
		case offset%majorColStep == majorColStep/2 && g.VMinor.Visible:
			for y := 0; y < cv.priceRows; y++ {
				cv.set(x, y, '┊', stroke(g.VMinor, sheet.Grid.Minor))
			}
		}
	}
}

func (c *Chart) renderTitle(sheet Stylesheet, width int) string {
	color := sheetColor(sheet.Title.Color, colorful.Color{})
	if paint, ok := c.TitlePaint(); ok {
		color = paint
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color.Hex())).
		Bold(sheet.Title.Bold).
		Width(width).
		Align(lipgloss.Center)
	return style.Render(runewidth.Truncate(c.Title, width, "…"))
}

func (c *Chart) tickLabelColor(axis scheme.Axis, sheet Stylesheet) colorful.Color {
	if a, ok := axis.(*NumericAxis); ok {
		if fill, set := a.TickLabelFill(); set {
			return fill
		}
	}
	return sheetColor(sheet.Axis.TickLabel, colorful.Color{})
}

func (c *Chart) priceLabel(cv *canvas, y int, fill colorful.Color) string {
	if y >= cv.priceRows || (y%majorRowStep != 0 && y != cv.priceRows-1) {
		return strings.Repeat(" ", labelWidth)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fill.Hex()))
	price := cv.max
	if cv.priceRows > 1 {
		price = cv.max - (cv.max-cv.min)*float64(y)/float64(cv.priceRows-1)
	}
	label := runewidth.Truncate(fmt.Sprintf(" %*.2f", labelWidth-1, price), labelWidth, "…")
	return style.Render(runewidth.FillRight(label, labelWidth))
}

func (c *Chart) timeLabels(cv *canvas, fill colorful.Color) string {
	line := []rune(strings.Repeat(" ", cv.cols))
	for x := cv.cols - 1; x >= 0; x -= majorColStep {
		i := x - (cv.cols - len(cv.times))
		if i < 0 {
			break
		}
		label := []rune(cv.times[i].Format("01-02"))
		start := x - len(label) + 1
		if start < 0 {
			continue
		}
		copy(line[start:], label)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fill.Hex())).Render(string(line))
}

// renderCells styles runs of cells that share colours.
func renderCells(cells []cell) string {
	var b strings.Builder
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && cells[end].fg == cells[start].fg && cells[end].bg == cells[start].bg {
			end++
		}
		run := make([]rune, 0, end-start)
		for _, cl := range cells[start:end] {
			run = append(run, cl.glyph)
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(cells[start].fg.Hex())).
			Background(lipgloss.Color(cells[start].bg.Hex()))
		b.WriteString(style.Render(string(run)))
		start = end
	}
	return b.String()
}
