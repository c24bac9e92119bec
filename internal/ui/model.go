package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"finterm/internal/config"
	"finterm/internal/scheme"
	"finterm/internal/storage"
	"finterm/internal/theme"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive charting session.
func NewProgram(store *storage.Store, cfg *config.Store, resolver *scheme.Resolver) *Program {
	m := newModel(store, cfg, resolver)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen())}
}

// Start launches the Bubble Tea program.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	_, err := p.program.Run()
	return err
}

type viewState int

type settingsMode int

type schemeStage int

const (
	stateMainMenu viewState = iota
	stateChart
	stateThemes
	stateImport
	stateSchemes
	stateSettings
)

const (
	settingsViewing settingsMode = iota
	settingsEditingSymbol
	settingsEditingTimezone
)

const (
	schemeStageList schemeStage = iota
	schemeStageName
	schemeStageStyle
)

const dividerWidth = 40

const (
	menuPlaceholder     = "Choose an option"
	themesPlaceholder   = "Theme number or name, / to go back"
	schemesPlaceholder  = "n=new  d <name>=delete  <name>=use  off  /"
	settingsPlaceholder = "1=Symbol  2=Timezone  3=Overlay  4=Back"
)

type model struct {
	state       viewState
	prevStates  []viewState
	store       *storage.Store
	cfg         *config.Store
	resolver    *scheme.Resolver
	theme       theme.Theme
	width       int
	height      int
	infoMessage string
	errMessage  string
	showSplash  bool

	menuInput textinput.Model

	chart chartModel

	importForm importForm

	schemes schemesModel

	settings settingsModel
}

type importForm struct {
	symbolInput textinput.Model
	pathInput   textinput.Model
	onPath      bool
	err         string
}

type schemesModel struct {
	stage      schemeStage
	list       []storage.Scheme
	nameInput  textinput.Model
	styleInput textinput.Model
	name       string
	err        string
}

type settingsModel struct {
	mode  settingsMode
	input textinput.Model
	err   string
}

type menuOption struct {
	id       string
	keywords []string
	synonyms []string
}

const (
	menuChart    = "chart"
	menuThemes   = "themes"
	menuImport   = "import"
	menuSchemes  = "schemes"
	menuSettings = "settings"
	menuQuit     = "quit"
)

var mainMenuOptions = []menuOption{
	{
		id:       menuChart,
		keywords: []string{"chart", "view"},
		synonyms: []string{"1", "c", "chart", "view chart"},
	},
	{
		id:       menuThemes,
		keywords: []string{"themes", "colours", "colors"},
		synonyms: []string{"2", "theme", "themes", "color scheme", "colour scheme"},
	},
	{
		id:       menuImport,
		keywords: []string{"import", "csv"},
		synonyms: []string{"3", "import", "csv", "import csv"},
	},
	{
		id:       menuSchemes,
		keywords: []string{"custom", "schemes", "override"},
		synonyms: []string{"4", "custom", "custom scheme", "schemes"},
	},
	{
		id:       menuSettings,
		keywords: []string{"settings", "help"},
		synonyms: []string{"5", "settings", "help", "settings & help"},
	},
	{
		id:       menuQuit,
		keywords: []string{"quit", "exit"},
		synonyms: []string{"6", "quit", "exit", "exit.", "q"},
	},
}

const splashBanner = `    _____            __                    
   / __(_)___  _____/ /____  _________ ___ 
  / /_/ / __ \/ ___/ __/ _ \/ ___/ __ '__ \
 / __/ / / / / /  / /_/  __/ /  / / / / / /
/_/ /_/_/ /_/_/   \__/\___/_/  /_/ /_/ /_/ 
`

func newModel(store *storage.Store, cfg *config.Store, resolver *scheme.Resolver) *model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = menuPlaceholder
	ti.CharLimit = 32
	ti.Focus()

	m := model{
		state:      stateMainMenu,
		store:      store,
		cfg:        cfg,
		resolver:   resolver,
		theme:      theme.ForScheme(cfg.Theme()),
		menuInput:  ti,
		chart:      newChartModel(cfg),
		importForm: newImportForm(cfg.Config.Symbol),
		schemes:    newSchemesModel(),
		settings:   settingsModel{mode: settingsViewing, input: textinput.New()},
		showSplash: true,
	}
	m.settings.input.Prompt = ""
	m.settings.input.CharLimit = 64
	return &m
}

func newImportForm(symbol string) importForm {
	sym := textinput.New()
	sym.Placeholder = "Symbol"
	sym.CharLimit = 16
	sym.SetValue(symbol)
	sym.Focus()

	path := textinput.New()
	path.Placeholder = "Path to CSV (time,open,high,low,close,volume)"
	path.CharLimit = 256

	return importForm{symbolInput: sym, pathInput: path}
}

func newSchemesModel() schemesModel {
	name := textinput.New()
	name.Placeholder = "Scheme name"
	name.CharLimit = 48

	style := textinput.New()
	style.Placeholder = "strokeColor=lime; fillColor=rgba(0,255,0,0.4); strokeWidth=1"
	style.CharLimit = 512

	return schemesModel{stage: schemeStageList, nameInput: name, styleInput: style}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == stateChart {
			m.renderChart()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateMainMenu:
		cmd = m.updateMainMenu(msg)
	case stateChart:
		cmd = m.updateChart(msg)
	case stateThemes:
		cmd = m.updateThemes(msg)
	case stateImport:
		cmd = m.updateImport(msg)
	case stateSchemes:
		cmd = m.updateSchemes(msg)
	case stateSettings:
		cmd = m.updateSettings(msg)
	default:
		m.state = stateMainMenu
		cmd = m.updateMainMenu(msg)
	}
	return m, cmd
}

func (m *model) View() string {
	switch m.state {
	case stateMainMenu:
		return m.viewMainMenu()
	case stateChart:
		return m.viewChart()
	case stateThemes:
		return m.viewThemes()
	case stateImport:
		return m.viewImport()
	case stateSchemes:
		return m.viewSchemes()
	case stateSettings:
		return m.viewSettings()
	default:
		return ""
	}
}

// Navigation helpers
func (m *model) pushState(next viewState) {
	m.prevStates = append(m.prevStates, m.state)
	m.state = next
}

func (m *model) popState() {
	if len(m.prevStates) == 0 {
		m.state = stateMainMenu
		return
	}
	idx := len(m.prevStates) - 1
	m.state = m.prevStates[idx]
	m.prevStates = m.prevStates[:idx]
}

// goHome drops the navigation stack and refocuses the main menu.
func (m *model) goHome() tea.Cmd {
	m.prevStates = nil
	m.state = stateMainMenu
	return m.setMenuInput(menuPlaceholder, 32)
}

// goBack pops one state and refocuses the main menu when it lands there.
func (m *model) goBack() tea.Cmd {
	m.popState()
	if m.state == stateMainMenu {
		return m.setMenuInput(menuPlaceholder, 32)
	}
	return nil
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
}

func (m *model) setMenuInput(placeholder string, limit int) tea.Cmd {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	if limit > 0 {
		input.CharLimit = limit
	}
	cmd := input.Focus()
	m.menuInput = input
	return cmd
}

func (m *model) ensureMenuInput(placeholder string, limit int) tea.Cmd {
	if strings.TrimSpace(m.menuInput.Placeholder) == placeholder {
		if limit <= 0 || m.menuInput.CharLimit == limit {
			if !m.menuInput.Focused() {
				return m.menuInput.Focus()
			}
			return nil
		}
	}
	return m.setMenuInput(placeholder, limit)
}

// setTheme switches the chart theme and the UI palette together and
// persists the choice.
func (m *model) setTheme(t scheme.Theme) {
	m.chart.theme = t
	m.theme = theme.ForScheme(t)
	m.cfg.SetTheme(t)
	if err := m.cfg.Save(); err != nil {
		m.errMessage = fmt.Sprintf("save config: %v", err)
	}
}

func (m *model) divider() string {
	return m.theme.Border.Render(strings.Repeat("─", dividerWidth))
}

func resolveMainMenuSelection(input string) (string, bool) {
	return resolveOption(mainMenuOptions, input)
}

func resolveOption(options []menuOption, input string) (string, bool) {
	value := strings.TrimSpace(strings.ToLower(input))
	if value == "" {
		return "", false
	}
	// direct matches first
	for _, option := range options {
		for _, syn := range option.synonyms {
			if value == syn {
				return option.id, true
			}
		}
	}

	matches := make(map[string]struct{})
	for _, option := range options {
		for _, keyword := range option.keywords {
			if strings.HasPrefix(keyword, value) {
				matches[option.id] = struct{}{}
				break
			}
		}
	}
	if len(matches) == 1 {
		for id := range matches {
			return id, true
		}
	}
	return "", false
}

// resolveThemeSelection accepts a 1-based index into scheme.Themes or a
// theme name.
func resolveThemeSelection(input string) (scheme.Theme, bool) {
	value := strings.TrimSpace(input)
	if value == "" {
		return "", false
	}
	themes := scheme.Themes()
	if idx, err := strconv.Atoi(value); err == nil {
		if idx >= 1 && idx <= len(themes) {
			return themes[idx-1], true
		}
		return "", false
	}
	t, err := scheme.ParseTheme(value)
	if err != nil {
		return "", false
	}
	return t, true
}

func expandPath(p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			switch {
			case len(trimmed) == 1:
				trimmed = home
			case trimmed[1] == '/', trimmed[1] == '\\':
				trimmed = filepath.Join(home, trimmed[2:])
			}
		}
	}
	return filepath.Abs(trimmed)
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}

// global command helpers
func isExitCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "exit." || v == "quit"
}

func isBackCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "/" || v == "back"
}

// MAIN MENU
func (m *model) updateMainMenu(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput(menuPlaceholder, 32); focus != nil {
		cmds = append(cmds, focus)
	}

	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		choice := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
		m.menuInput.SetValue("")
		m.showSplash = false
		action, ok := resolveMainMenuSelection(choice)
		if !ok {
			if choice == "" || choice == "0" {
				return batchCmds(cmds)
			}
			m.errMessage = "Unknown choice"
			return batchCmds(cmds)
		}
		switch action {
		case menuChart:
			m.resetMessages()
			m.pushState(stateChart)
			m.menuInput.Blur()
			m.loadChartData()
			m.renderChart()
		case menuThemes:
			m.resetMessages()
			m.pushState(stateThemes)
			if focus := m.setMenuInput(themesPlaceholder, 48); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuImport:
			m.resetMessages()
			m.importForm = newImportForm(m.cfg.Config.Symbol)
			m.pushState(stateImport)
		case menuSchemes:
			m.resetMessages()
			m.schemes = newSchemesModel()
			m.refreshSchemes()
			m.pushState(stateSchemes)
			if focus := m.setMenuInput(schemesPlaceholder, 64); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuSettings:
			m.resetMessages()
			m.settings = settingsModel{mode: settingsViewing, input: textinput.New()}
			m.settings.input.CharLimit = 64
			m.settings.input.Prompt = ""
			m.pushState(stateSettings)
			if focus := m.setMenuInput(settingsPlaceholder, 40); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuQuit:
			cmds = append(cmds, tea.Quit)
		}
	}

	return batchCmds(cmds)
}

func (m *model) viewMainMenu() string {
	lines := []string{}
	if m.showSplash {
		lines = append(lines, splashBanner)
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Title.Render("finterm"))
	lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("%s · %s · %s", m.cfg.Config.Symbol, m.chart.theme, m.chart.kind)))
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	menu := []string{
		"1. Chart",
		"2. Themes",
		"3. Import bars (CSV)",
		"4. Custom schemes",
		"5. Settings & Help",
		"6. Quit",
	}
	lines = append(lines, m.divider())
	for _, item := range menu {
		lines = append(lines, m.theme.Primary.Render(item))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// THEMES
func (m *model) updateThemes(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput(themesPlaceholder, 48); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		input := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(input):
			cmds = append(cmds, m.goHome())
		case isBackCommand(input):
			cmds = append(cmds, m.goBack())
		default:
			t, ok := resolveThemeSelection(input)
			if !ok {
				m.errMessage = fmt.Sprintf("Unknown theme %q", input)
				break
			}
			m.errMessage = ""
			m.setTheme(t)
			m.infoMessage = fmt.Sprintf("Theme set to %s", t)
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewThemes() string {
	lines := []string{m.theme.Title.Render("Themes")}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, 'exit.' returns home."))
	lines = append(lines, m.divider())
	for i, entry := range scheme.Catalog() {
		marker := "  "
		style := m.theme.Secondary
		if entry.Theme == string(m.chart.theme) {
			marker = "▸ "
			style = m.theme.Highlight
		}
		line := style.Render(fmt.Sprintf("%s%d. %s", marker, i+1, entry.Theme))
		if entry.Decoration != nil && entry.Decoration.Background != "" {
			line += " " + m.theme.Faint.Render(entry.Decoration.Background)
		}
		lines = append(lines, line)
		if style, ok := entry.Series[m.chart.kind.String()]; ok {
			lines = append(lines, m.theme.Faint.Render("     "+style))
		}
	}
	lines = append(lines, "")
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// IMPORT
func (m *model) updateImport(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	form := &m.importForm
	active := &form.symbolInput
	if form.onPath {
		active = &form.pathInput
	}
	if !active.Focused() {
		if focus := active.Focus(); focus != nil {
			cmds = append(cmds, focus)
		}
	}
	var cmd tea.Cmd
	*active, cmd = active.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(active.Value())
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.goHome())
		case isBackCommand(value):
			if form.onPath {
				form.onPath = false
				form.pathInput.SetValue("")
				form.pathInput.Blur()
			} else {
				cmds = append(cmds, m.goBack())
			}
		case value == "":
			if form.onPath {
				form.err = "Provide a CSV path"
			} else {
				form.err = "Symbol cannot be empty"
			}
		case !form.onPath:
			form.err = ""
			form.symbolInput.SetValue(strings.ToUpper(value))
			form.symbolInput.Blur()
			form.onPath = true
		default:
			symbol := form.symbolInput.Value()
			if m.handleBarImport(symbol, value) {
				m.cfg.Config.Symbol = symbol
				if err := m.cfg.Save(); err != nil {
					m.errMessage = fmt.Sprintf("save config: %v", err)
				}
				cmds = append(cmds, m.goBack())
			}
		}
	}
	return batchCmds(cmds)
}

// handleBarImport loads a CSV of bars for symbol and reports whether
// anything was imported.
func (m *model) handleBarImport(symbol, path string) bool {
	m.infoMessage = ""
	m.importForm.err = ""
	resolved, err := expandPath(path)
	if err != nil {
		m.importForm.err = fmt.Sprintf("import path: %v", err)
		return false
	}
	file, err := os.Open(resolved)
	if err != nil {
		m.importForm.err = fmt.Sprintf("open file: %v", err)
		return false
	}
	defer file.Close()
	result, err := m.store.ImportBarsCSV(context.Background(), file, symbol, m.cfg.Location())
	if err != nil {
		m.importForm.err = fmt.Sprintf("import csv: %v", err)
		return false
	}
	m.infoMessage = importSummary(symbol, result)
	if len(result.Errors) > 0 {
		m.errMessage = strings.Join(result.Errors, "; ")
	} else {
		m.errMessage = ""
	}
	return result.Created > 0
}

func importSummary(symbol string, result storage.ImportResult) string {
	parts := []string{fmt.Sprintf("Imported %d bar(s) for %s", result.Created, symbol)}
	if result.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d", result.Skipped))
	}
	return strings.Join(parts, ", ")
}

func (m *model) viewImport() string {
	form := m.importForm
	lines := []string{m.theme.Title.Render("Import Bars")}
	lines = append(lines, m.theme.Faint.Render("Header row must name time, open, high, low, close; volume is optional."))
	lines = append(lines, "")
	if !form.onPath {
		lines = append(lines, m.theme.Secondary.Render("Symbol:"))
		lines = append(lines, form.symbolInput.View())
	} else {
		lines = append(lines, m.theme.Secondary.Render("Symbol: "+form.symbolInput.Value()))
		lines = append(lines, m.theme.Secondary.Render("CSV path:"))
		lines = append(lines, form.pathInput.View())
	}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, 'exit.' returns home."))
	if form.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(form.err))
	}
	return strings.Join(lines, "\n") + "\n"
}

// CUSTOM SCHEMES
func (m *model) refreshSchemes() {
	list, err := m.store.ListSchemes(context.Background())
	if err != nil {
		m.schemes.err = fmt.Sprintf("load schemes: %v", err)
		return
	}
	m.schemes.list = list
}

func (m *model) updateSchemes(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	sm := &m.schemes
	switch sm.stage {
	case schemeStageList:
		if focus := m.ensureMenuInput(schemesPlaceholder, 64); focus != nil {
			cmds = append(cmds, focus)
		}
		var cmd tea.Cmd
		m.menuInput, cmd = m.menuInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			input := strings.TrimSpace(m.menuInput.Value())
			m.menuInput.SetValue("")
			lower := strings.ToLower(input)
			switch {
			case isExitCommand(input):
				cmds = append(cmds, m.goHome())
			case isBackCommand(input):
				cmds = append(cmds, m.goBack())
			case lower == "n" || lower == "new":
				sm.err = ""
				sm.stage = schemeStageName
				sm.nameInput.SetValue("")
				sm.styleInput.SetValue("")
				m.menuInput.Blur()
			case lower == "off" || lower == "none":
				m.useScheme("")
			case strings.HasPrefix(lower, "d "):
				m.deleteScheme(strings.TrimSpace(input[2:]))
			case input == "":
			default:
				sc, err := m.store.SchemeByName(context.Background(), input)
				if err != nil {
					sm.err = fmt.Sprintf("Scheme %q not found", input)
					break
				}
				m.useScheme(sc.Name)
			}
		}
	case schemeStageName:
		cmds = append(cmds, m.updateSchemeInput(&sm.nameInput, msg, func(value string) {
			sm.name = value
			sm.stage = schemeStageStyle
			sm.nameInput.Blur()
		}))
	case schemeStageStyle:
		cmds = append(cmds, m.updateSchemeInput(&sm.styleInput, msg, m.saveScheme))
	}
	return batchCmds(cmds)
}

func (m *model) updateSchemeInput(input *textinput.Model, msg tea.Msg, submit func(string)) tea.Cmd {
	var cmds []tea.Cmd
	if !input.Focused() {
		if focus := input.Focus(); focus != nil {
			cmds = append(cmds, focus)
		}
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(input.Value())
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.goHome())
		case isBackCommand(value):
			input.Blur()
			m.schemes.stage = schemeStageList
		case value == "":
			m.schemes.err = "Value cannot be empty"
		default:
			m.schemes.err = ""
			submit(value)
		}
	}
	return batchCmds(cmds)
}

func (m *model) saveScheme(style string) {
	if _, err := scheme.ParseStyle(style); err != nil {
		m.schemes.err = err.Error()
		return
	}
	sc := &storage.Scheme{Name: m.schemes.name, Style: style}
	if err := m.store.SaveScheme(context.Background(), sc); err != nil {
		if errors.Is(err, storage.ErrSchemeExists) {
			m.schemes.err = fmt.Sprintf("A scheme named %q already exists", m.schemes.name)
		} else {
			m.schemes.err = err.Error()
		}
		return
	}
	m.schemes.styleInput.Blur()
	m.schemes.stage = schemeStageList
	m.refreshSchemes()
	m.infoMessage = fmt.Sprintf("Saved scheme %s", sc.Name)
}

func (m *model) deleteScheme(name string) {
	if err := m.store.DeleteScheme(context.Background(), name); err != nil {
		m.schemes.err = fmt.Sprintf("delete %q: %v", name, err)
		return
	}
	if strings.EqualFold(m.cfg.Config.CustomScheme, name) {
		m.useScheme("")
	}
	m.refreshSchemes()
	m.infoMessage = fmt.Sprintf("Deleted scheme %s", name)
}

// useScheme selects the custom override written to every series; an empty
// name goes back to theme styles.
func (m *model) useScheme(name string) {
	m.schemes.err = ""
	m.cfg.Config.CustomScheme = name
	if err := m.cfg.Save(); err != nil {
		m.schemes.err = fmt.Sprintf("save config: %v", err)
		return
	}
	if name == "" {
		m.infoMessage = "Using theme styles"
	} else {
		m.infoMessage = fmt.Sprintf("Using custom scheme %s", name)
	}
}

func (m *model) viewSchemes() string {
	sm := m.schemes
	lines := []string{m.theme.Title.Render("Custom Schemes")}
	lines = append(lines, m.theme.Faint.Render("A custom scheme replaces every theme style on the chart."))
	lines = append(lines, "")
	switch sm.stage {
	case schemeStageList:
		if len(sm.list) == 0 {
			lines = append(lines, m.theme.Faint.Render("No custom schemes yet."))
		}
		for _, sc := range sm.list {
			style := m.theme.Secondary
			if strings.EqualFold(sc.Name, m.cfg.Config.CustomScheme) {
				style = m.theme.Highlight
			}
			lines = append(lines, style.Render(sc.Name)+"  "+m.theme.Faint.Render(sc.Style))
		}
		lines = append(lines, "")
		if m.infoMessage != "" {
			lines = append(lines, m.theme.Success.Render(m.infoMessage))
		}
		lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	case schemeStageName:
		lines = append(lines, m.theme.Secondary.Render("Scheme name:"))
		lines = append(lines, sm.nameInput.View())
	case schemeStageStyle:
		lines = append(lines, m.theme.Secondary.Render("Style for "+sm.name+" (key=value; key=value):"))
		lines = append(lines, sm.styleInput.View())
	}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, 'exit.' returns home."))
	if sm.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(sm.err))
	}
	return strings.Join(lines, "\n") + "\n"
}

// SETTINGS
func (m *model) updateSettings(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch m.settings.mode {
	case settingsViewing:
		if focus := m.ensureMenuInput(settingsPlaceholder, 40); focus != nil {
			cmds = append(cmds, focus)
		}
		var cmd tea.Cmd
		m.menuInput, cmd = m.menuInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			input := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
			m.menuInput.SetValue("")
			switch input {
			case "1", "symbol":
				m.settings.mode = settingsEditingSymbol
				cmds = append(cmds, m.openSettingsInput(m.cfg.Config.Symbol))
			case "2", "timezone":
				m.settings.mode = settingsEditingTimezone
				cmds = append(cmds, m.openSettingsInput(m.cfg.Config.Timezone))
			case "3", "overlay":
				m.cfg.Config.Overlay = !m.cfg.Config.Overlay
				m.chart.overlay = m.cfg.Config.Overlay
				m.saveSettings(fmt.Sprintf("Position overlay %s", onOff(m.cfg.Config.Overlay)))
			case "4", "back", "/":
				cmds = append(cmds, m.goBack())
			case "exit.", "exit", "quit":
				cmds = append(cmds, m.goHome())
			default:
				m.settings.err = "Choose 1, 2 or 3 to edit settings"
			}
		}
	case settingsEditingSymbol, settingsEditingTimezone:
		if !m.settings.input.Focused() {
			if focus := m.settings.input.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		var cmd tea.Cmd
		m.settings.input, cmd = m.settings.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.settings.input.Value())
			switch {
			case isExitCommand(value):
				cmds = append(cmds, m.goHome())
			case isBackCommand(value):
				m.settings.mode = settingsViewing
			case value == "":
				m.settings.err = "Value cannot be empty"
			case m.settings.mode == settingsEditingSymbol:
				m.cfg.Config.Symbol = strings.ToUpper(value)
				m.chart.symbol = m.cfg.Config.Symbol
				m.saveSettings("Symbol updated")
			default:
				if _, err := time.LoadLocation(value); err != nil {
					m.settings.err = "Invalid timezone"
					break
				}
				m.cfg.Config.Timezone = value
				m.saveSettings("Timezone updated")
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) openSettingsInput(value string) tea.Cmd {
	m.settings.input = textinput.New()
	m.settings.input.Prompt = ""
	m.settings.input.CharLimit = 64
	m.settings.input.SetValue(value)
	return m.settings.input.Focus()
}

func (m *model) saveSettings(message string) {
	if err := m.cfg.Save(); err != nil {
		m.settings.err = err.Error()
		return
	}
	m.settings.err = ""
	m.infoMessage = message
	m.settings.mode = settingsViewing
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *model) viewSettings() string {
	lines := []string{m.theme.Title.Render("Settings & Help")}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, 'exit.' returns home."))
	lines = append(lines, m.divider())
	lines = append(lines, m.theme.Secondary.Render("Symbol: "+m.cfg.Config.Symbol))
	lines = append(lines, m.theme.Secondary.Render("Timezone: "+m.cfg.Config.Timezone))
	lines = append(lines, m.theme.Secondary.Render("Position overlay: "+onOff(m.cfg.Config.Overlay)))
	lines = append(lines, m.theme.Secondary.Render("Config: "+m.cfg.Path()))
	lines = append(lines, m.theme.Secondary.Render("Database: "+m.store.Path()))
	lines = append(lines, "")
	lines = append(lines, m.theme.Highlight.Render("Chart keys"))
	lines = append(lines, m.theme.HelpKey.Render("t")+" → "+m.theme.HelpValue.Render("Next theme"))
	lines = append(lines, m.theme.HelpKey.Render("r")+" → "+m.theme.HelpValue.Render("Next renderer"))
	lines = append(lines, m.theme.HelpKey.Render("o")+" → "+m.theme.HelpValue.Render("Toggle position overlay"))
	lines = append(lines, m.theme.HelpKey.Render("s")+" → "+m.theme.HelpValue.Render("Next symbol"))
	lines = append(lines, m.theme.HelpKey.Render("/")+" → "+m.theme.HelpValue.Render("Back"))
	lines = append(lines, m.theme.HelpKey.Render("Ctrl+C")+" → "+m.theme.HelpValue.Render("Quit"))
	lines = append(lines, "")

	switch m.settings.mode {
	case settingsViewing:
		lines = append(lines, m.theme.Secondary.Render("1. Update symbol"))
		lines = append(lines, m.theme.Secondary.Render("2. Update timezone"))
		lines = append(lines, m.theme.Secondary.Render("3. Toggle position overlay"))
		lines = append(lines, m.theme.Faint.Render("4. Back"))
		lines = append(lines, "")
		lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	case settingsEditingSymbol:
		lines = append(lines, m.theme.Secondary.Render("Enter symbol:"))
		lines = append(lines, m.settings.input.View())
	case settingsEditingTimezone:
		lines = append(lines, m.theme.Secondary.Render("Enter timezone (e.g. America/New_York):"))
		lines = append(lines, m.settings.input.View())
	}
	if m.settings.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.settings.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}
