package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"finterm/internal/chart"
	"finterm/internal/config"
	"finterm/internal/scheme"
)

const (
	barLimit      = 500
	defaultWidth  = 100
	defaultHeight = 30
	chromeLines   = 3
)

type chartModel struct {
	theme    scheme.Theme
	kind     scheme.Kind
	overlay  bool
	symbol   string
	symbols  []string
	bars     []chart.Bar
	trades   []chart.Trade
	rendered string
	status   string
	err      string
}

func newChartModel(cfg *config.Store) chartModel {
	return chartModel{
		theme:   cfg.Theme(),
		kind:    cfg.Renderer(),
		overlay: cfg.Config.Overlay,
		symbol:  cfg.Config.Symbol,
	}
}

// nextKind cycles through the renderer kinds that carry theme styles.
func nextKind(k scheme.Kind) scheme.Kind {
	kinds := scheme.SeriesKinds()
	for i, candidate := range kinds {
		if candidate == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func nextSymbol(symbols []string, current string) string {
	if len(symbols) == 0 {
		return current
	}
	for i, s := range symbols {
		if strings.EqualFold(s, current) {
			return symbols[(i+1)%len(symbols)]
		}
	}
	return symbols[0]
}

// chartSize fits the plot inside the terminal, leaving room for the status
// and help lines.
func chartSize(width, height int) (int, int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height - chromeLines
}

func (m *model) loadChartData() {
	ctx := context.Background()
	cm := &m.chart
	cm.err = ""
	symbols, err := m.store.ListSymbols(ctx)
	if err != nil {
		cm.err = fmt.Sprintf("load symbols: %v", err)
		return
	}
	cm.symbols = symbols
	bars, err := m.store.ListBars(ctx, cm.symbol, barLimit)
	if err != nil {
		cm.err = fmt.Sprintf("load bars: %v", err)
		return
	}
	cm.bars = bars
	trades, err := m.store.ListTrades(ctx, cm.symbol)
	if err != nil {
		cm.err = fmt.Sprintf("load trades: %v", err)
		return
	}
	cm.trades = trades
}

// customOverride resolves the configured custom scheme to its style string.
// An unknown scheme is reported and ignored.
func (m *model) customOverride() string {
	name := m.cfg.Config.CustomScheme
	if name == "" {
		return ""
	}
	sc, err := m.store.SchemeByName(context.Background(), name)
	if err != nil {
		m.chart.status = fmt.Sprintf("custom scheme %q: %v", name, err)
		return ""
	}
	return sc.Style
}

// renderChart rebuilds the chart from scratch so stylesheets and decoration
// from a previous theme never leak into the next one.
func (m *model) renderChart() {
	cm := &m.chart
	cm.status = ""
	override := m.customOverride()

	c, err := chart.Build(chart.Spec{
		Symbol:  cm.symbol,
		Kind:    cm.kind,
		Bars:    cm.bars,
		Trades:  cm.trades,
		Overlay: cm.overlay,
	})
	if err != nil {
		cm.err = fmt.Sprintf("build chart: %v", err)
		cm.rendered = ""
		return
	}
	if err := m.resolver.ApplyToWithOverride(cm.theme, override, c); err != nil {
		cm.status = fmt.Sprintf("apply theme: %v", err)
	}
	width, height := chartSize(m.width, m.height)
	out, err := c.Render(width, height)
	if err != nil {
		cm.err = err.Error()
		cm.rendered = ""
		return
	}
	cm.err = ""
	cm.rendered = out
}

// CHART
func (m *model) updateChart(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.Type {
	case tea.KeyEsc:
		return m.goBack()
	case tea.KeyRunes:
	default:
		return nil
	}
	switch key.String() {
	case "t":
		m.setTheme(m.chart.theme.Next())
	case "r":
		m.chart.kind = nextKind(m.chart.kind)
		m.cfg.SetRenderer(m.chart.kind)
		if err := m.cfg.Save(); err != nil {
			m.errMessage = fmt.Sprintf("save config: %v", err)
		}
	case "o":
		m.chart.overlay = !m.chart.overlay
	case "s":
		m.chart.symbol = nextSymbol(m.chart.symbols, m.chart.symbol)
		m.loadChartData()
	case "/", "q":
		return m.goBack()
	default:
		return nil
	}
	m.renderChart()
	return nil
}

func (m *model) viewChart() string {
	cm := m.chart
	var lines []string
	switch {
	case cm.err != "":
		lines = append(lines, m.theme.Danger.Render(cm.err))
	case len(cm.bars) == 0:
		lines = append(lines, m.theme.Warning.Render(fmt.Sprintf("No bars for %s. Import a CSV from the main menu.", cm.symbol)))
	default:
		lines = append(lines, cm.rendered)
	}

	status := fmt.Sprintf("%s · %s · %s · overlay %s", cm.symbol, cm.theme, cm.kind, onOff(cm.overlay))
	if name := m.cfg.Config.CustomScheme; name != "" {
		status += " · custom " + name
	}
	lines = append(lines, m.theme.Subtitle.Render(status))
	if cm.status != "" {
		lines = append(lines, m.theme.Danger.Render(cm.status))
	} else {
		help := []string{
			m.theme.HelpKey.Render("t") + " " + m.theme.HelpValue.Render("theme"),
			m.theme.HelpKey.Render("r") + " " + m.theme.HelpValue.Render("renderer"),
			m.theme.HelpKey.Render("o") + " " + m.theme.HelpValue.Render("overlay"),
			m.theme.HelpKey.Render("s") + " " + m.theme.HelpValue.Render("symbol"),
			m.theme.HelpKey.Render("/") + " " + m.theme.HelpValue.Render("back"),
		}
		lines = append(lines, strings.Join(help, "  "))
	}
	return strings.Join(lines, "\n") + "\n"
}
