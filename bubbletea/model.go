// Package bubbletea provides a terminal UI for music video analysis reports
// using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mvreport"
)

// appTitle is the heading shown above the form.
const appTitle = "Analisador de Vídeos Musicais"

// Focus identifies the area receiving keys.
type Focus int

// Focus areas.
const (
	FocusInput Focus = iota
	FocusOptions
	FocusResults
)

// Tab identifies the results view.
type Tab int

// Tabs.
const (
	TabTable Tab = iota
	TabJSON
)

// Tab labels.
const (
	tabTableLabel = "Tabela"
	tabJSONLabel  = "JSON"
)

// optionLabels name the analysis options in Options field order.
var optionLabels = [...]string{
	"Extrair acordes",
	"Detectar instrumentos",
	"Analisar estrutura",
	"Extrair tablatura",
}

// Reserved lines around the results viewport.
const (
	formChromeHeight     = 8 // title, bordered input, options, banner, tabs, help
	readOnlyChromeHeight = 4 // title, banner, tabs, help
	minViewportHeight    = 3
)

// analysisDoneMsg carries a finished analysis call back to the update loop.
type analysisDoneMsg struct {
	outcome mvreport.Outcome
}

// copyDoneMsg carries the result of a clipboard write.
type copyDoneMsg struct {
	err error
}

// copyRevertMsg restores the copy button label for a confirmation generation.
type copyRevertMsg struct {
	generation int
}

// submitMsg triggers an analysis of the current input.
type submitMsg struct{}

// Model is the Bubble Tea model for requesting and viewing analysis reports.
type Model struct {
	ctx         context.Context
	coordinator *mvreport.Coordinator
	status      *Banner
	clipboard   mvreport.Clipboard
	highlighter mvreport.Highlighter
	logger      *slog.Logger
	readOnly    bool
	autoSubmit  bool

	// Form
	input        textinput.Model
	options      mvreport.Options
	optionCursor int

	// Results
	report      *mvreport.Report
	panels      *mvreport.Panels
	panelCursor int
	panelLines  []int
	copyButton  *mvreport.CopyButton
	tab         Tab
	notice      string

	// UI state
	focus    Focus
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keymap   KeyMap
	styles   styles
	width    int
	height   int
	ready    bool
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	ctx         context.Context
	renderer    *lipgloss.Renderer
	theme       mvreport.Theme
	highlighter mvreport.Highlighter
	clipboard   mvreport.Clipboard
	logger      *slog.Logger
	url         string
	autoSubmit  bool
	options     *mvreport.Options
	report      *mvreport.Report
}

// WithContext sets the context analysis calls run under.
func WithContext(ctx context.Context) ModelOption {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t mvreport.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithHighlighter sets the JSON syntax highlighter.
func WithHighlighter(h mvreport.Highlighter) ModelOption {
	return func(cfg *modelConfig) {
		cfg.highlighter = h
	}
}

// WithClipboard sets the clipboard used by the copy button.
func WithClipboard(c mvreport.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithLogger sets the logger passed to the coordinator.
func WithLogger(l *slog.Logger) ModelOption {
	return func(cfg *modelConfig) {
		cfg.logger = l
	}
}

// WithURL prefills the URL input.
func WithURL(url string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.url = url
	}
}

// WithAutoSubmit analyzes the prefilled URL on start.
func WithAutoSubmit() ModelOption {
	return func(cfg *modelConfig) {
		cfg.autoSubmit = true
	}
}

// WithOptions sets the initial analysis options. All options are on by default.
func WithOptions(o mvreport.Options) ModelOption {
	return func(cfg *modelConfig) {
		cfg.options = &o
	}
}

// WithReport shows report instead of the form.
func WithReport(r *mvreport.Report) ModelOption {
	return func(cfg *modelConfig) {
		cfg.report = r
	}
}

// NewModel creates a Model that analyzes URLs with analyzer.
// A nil analyzer makes the model read-only: it shows the report passed with
// WithReport and hides the form.
func NewModel(analyzer mvreport.Analyzer, opts ...ModelOption) Model {
	cfg := &modelConfig{
		ctx:    context.Background(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var palette mvreport.Palette
	if cfg.theme != nil {
		palette = cfg.theme.Palette()
	} else {
		palette = defaultPalette()
	}

	status := NewBanner()

	input := textinput.New()
	input.Prompt = "URL: "
	input.Placeholder = "https://www.youtube.com/watch?v=..."
	input.CharLimit = 2048
	input.SetValue(cfg.url)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	options := mvreport.AllOptions()
	if cfg.options != nil {
		options = *cfg.options
	}

	m := Model{
		ctx:         cfg.ctx,
		status:      status,
		clipboard:   cfg.clipboard,
		highlighter: cfg.highlighter,
		logger:      cfg.logger,
		autoSubmit:  cfg.autoSubmit,
		input:       input,
		options:     options,
		copyButton:  mvreport.NewCopyButton(mvreport.CopyLabel),
		spinner:     sp,
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		styles:      newStyles(palette, cfg.renderer),
	}
	m.spinner.Style = m.styles.loading

	if analyzer != nil {
		m.coordinator = mvreport.NewCoordinator(analyzer, status, mvreport.WithLogger(cfg.logger))
		m.input.Focus()
	} else {
		m.readOnly = true
		m.focus = FocusResults
	}

	if cfg.report != nil {
		m.setReport(cfg.report)
		status.ShowResults()
	}
	return m
}

// defaultPalette is used when no theme is configured.
func defaultPalette() mvreport.Palette {
	return mvreport.Palette{
		Foreground:   "#cdd6f4",
		Key:          "#89b4fa",
		String:       "#a6e3a1",
		Number:       "#fab387",
		Constant:     "#cba6f7",
		Punctuation:  "#9399b2",
		Loading:      "#89dceb",
		Success:      "#a6e3a1",
		Error:        "#f38ba8",
		ScoreHigh:    "#a6e3a1",
		ScoreMid:     "#f9e2af",
		ScoreLow:     "#f38ba8",
		UIBackground: "#313244",
		UIForeground: "#a6adc8",
		UIAccent:     "#89b4fa",
		Muted:        "#6c7086",
	}
}

// Focus returns the area receiving keys.
func (m Model) Focus() Focus { return m.focus }

// Tab returns the selected results tab.
func (m Model) Tab() Tab { return m.tab }

// Options returns the analysis options currently selected.
func (m Model) Options() mvreport.Options { return m.options }

// Report returns the report of the latest successful analysis.
func (m Model) Report() *mvreport.Report { return m.report }

// Status returns the status banner.
func (m Model) Status() *Banner { return m.status }

// Panels returns the JSON panels of the current report.
func (m Model) Panels() *mvreport.Panels { return m.panels }

// CopyLabel returns the text on the copy button.
func (m Model) CopyLabel() string { return m.copyButton.Label() }

// Notice returns the blocking notice, or "" if none is shown.
func (m Model) Notice() string { return m.notice }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !m.readOnly {
		cmds = append(cmds, textinput.Blink)
		if m.autoSubmit && strings.TrimSpace(m.input.Value()) != "" {
			cmds = append(cmds, func() tea.Msg { return submitMsg{} })
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil

	case submitMsg:
		return m.submit()

	case analysisDoneMsg:
		report, err := m.coordinator.Complete(msg.outcome)
		if err == nil {
			m.setReport(report)
			m.setFocus(FocusResults)
		} else if m.focus == FocusResults {
			m.setFocus(FocusInput)
		}
		m.refresh()
		return m, nil

	case copyDoneMsg:
		return m.handleCopyDone(msg)

	case copyRevertMsg:
		m.copyButton.Revert(msg.generation)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.status.Kind() != StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m, tea.Quit
	}

	// The copy failure notice blocks everything until acknowledged.
	if m.notice != "" {
		if key.Matches(msg, m.keymap.Dismiss) {
			m.notice = ""
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.NextFocus) {
		m.cycleFocus()
		return m, nil
	}

	switch m.focus {
	case FocusInput:
		if key.Matches(msg, m.keymap.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case FocusOptions:
		return m.handleOptionKey(msg)

	default:
		return m.handleResultsKey(msg)
	}
}

func (m Model) handleOptionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.PrevOption):
		m.optionCursor = (m.optionCursor + len(optionLabels) - 1) % len(optionLabels)
	case key.Matches(msg, m.keymap.NextOption):
		m.optionCursor = (m.optionCursor + 1) % len(optionLabels)
	case key.Matches(msg, m.keymap.ToggleOption):
		p := optionField(&m.options, m.optionCursor)
		*p = !*p
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.SwitchTab):
		if m.tab == TabTable {
			m.tab = TabJSON
		} else {
			m.tab = TabTable
		}
		m.refresh()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keymap.Copy):
		return m.copy()

	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keymap.GotoTop):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keymap.GotoBottom):
		m.viewport.GotoBottom()
	}

	if m.tab != TabJSON || m.panels == nil || !m.status.ResultsVisible() {
		return m, nil
	}

	titles := m.panels.Titles()
	switch {
	case key.Matches(msg, m.keymap.PrevPanel):
		if m.panelCursor > 0 {
			m.panelCursor--
		}
		m.refresh()
		m.scrollToPanel()
	case key.Matches(msg, m.keymap.NextPanel):
		if m.panelCursor < len(titles)-1 {
			m.panelCursor++
		}
		m.refresh()
		m.scrollToPanel()
	case key.Matches(msg, m.keymap.TogglePanel):
		if m.panelCursor < len(titles) {
			m.panels.Toggle(titles[m.panelCursor])
		}
		m.refresh()
	case key.Matches(msg, m.keymap.ExpandAll):
		m.panels.ExpandAll()
		m.refresh()
	case key.Matches(msg, m.keymap.CollapseAll):
		m.panels.CollapseAll()
		m.refresh()
	}
	return m, nil
}

// submit validates the input and starts the analysis off the update loop.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.coordinator == nil {
		return m, nil
	}
	call, err := m.coordinator.Submit(m.input.Value(), m.options)
	if m.focus == FocusResults {
		m.setFocus(FocusInput)
	}
	m.refresh()
	if err != nil {
		return m, nil
	}
	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return analysisDoneMsg{outcome: call.Do(ctx)}
	})
}

// copy exports the current full document. Nothing happens while results are hidden.
func (m Model) copy() (tea.Model, tea.Cmd) {
	if m.report == nil || !m.status.ResultsVisible() {
		return m, nil
	}
	if m.clipboard == nil {
		m.notice = mvreport.CopyFailedNotice
		return m, nil
	}
	cb, doc := m.clipboard, m.report.Document.Full
	return m, func() tea.Msg {
		return copyDoneMsg{err: mvreport.Export(cb, doc)}
	}
}

func (m Model) handleCopyDone(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, mvreport.ErrNoDocument) {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("copy to clipboard failed", "error", msg.err)
		m.notice = mvreport.CopyFailedNotice
		return m, nil
	}
	gen := m.copyButton.Confirm()
	m.refresh()
	return m, tea.Tick(mvreport.CopyFeedbackDelay, func(time.Time) tea.Msg {
		return copyRevertMsg{generation: gen}
	})
}

// setReport replaces the report and rebuilds panel state from scratch.
func (m *Model) setReport(r *mvreport.Report) {
	m.report = r
	m.panels = mvreport.NewPanels(r.Document.Sections, nil)
	m.panelCursor = 0
	m.viewport.GotoTop()
	m.refresh()
}

func (m *Model) cycleFocus() {
	if m.readOnly {
		return
	}
	next := (m.focus + 1) % 3
	if next == FocusResults && !m.status.ResultsVisible() {
		next = FocusInput
	}
	m.setFocus(next)
	m.refresh()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) scrollToPanel() {
	if m.panelCursor >= len(m.panelLines) {
		return
	}
	line := m.panelLines[m.panelCursor]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line)
	}
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-6, 10)

	chrome := formChromeHeight
	if m.readOnly {
		chrome = readOnlyChromeHeight
	}
	height := max(msg.Height-chrome, minViewportHeight)

	if !m.ready {
		m.viewport = viewport.New(msg.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = height
	}
	m.refresh()
}

// refresh re-renders the results into the viewport.
func (m *Model) refresh() {
	if !m.ready || m.report == nil {
		return
	}
	switch m.tab {
	case TabJSON:
		focused := -1
		if m.focus == FocusResults {
			focused = m.panelCursor
		}
		view := renderJSON(m.panels, m.report.Document, m.copyButton.Label(), m.copyButton.Copied(), focused, m.styles, m.highlighter)
		m.panelLines = view.panelLines
		m.viewport.SetContent(view.content)
	default:
		m.viewport.SetContent(renderTable(m.report.Table, m.styles, m.width))
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.notice != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.notice.Width(min(60, max(m.width-4, 20))).Render(m.notice+"\n\n"+m.styles.muted.Render("[esc] ok")))
	}

	parts := []string{m.styles.title.Render(appTitle)}
	if !m.readOnly {
		parts = append(parts, m.inputView(), m.optionsView())
	}
	parts = append(parts, m.bannerView())
	if m.report != nil && m.status.ResultsVisible() {
		parts = append(parts, m.tabsView(), m.viewport.View())
	}
	parts = append(parts, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) inputView() string {
	style := m.styles.input
	if m.focus == FocusInput {
		style = m.styles.inputFocused
	}
	return style.Render(m.input.View())
}

func (m Model) optionsView() string {
	items := make([]string, len(optionLabels))
	for i, label := range optionLabels {
		box := "[ ]"
		if *optionField(&m.options, i) {
			box = "[x]"
		}
		style := m.styles.option
		if m.focus == FocusOptions && i == m.optionCursor {
			style = m.styles.optionCursor
		}
		items[i] = style.Render(box + " " + label)
	}
	return strings.Join(items, "  ")
}

func (m Model) bannerView() string {
	switch m.status.Kind() {
	case StatusLoading:
		return m.spinner.View() + " " + m.styles.loading.Render(m.status.Message())
	case StatusSuccess:
		return m.styles.success.Render(m.status.Message())
	case StatusError:
		return m.styles.failure.Render(m.status.Message())
	default:
		return ""
	}
}

func (m Model) tabsView() string {
	render := func(label string, active bool) string {
		if active {
			return m.styles.tabActive.Render(label)
		}
		return m.styles.tab.Render(label)
	}
	return render(tabTableLabel, m.tab == TabTable) + "│" + render(tabJSONLabel, m.tab == TabJSON)
}

// optionField returns the option at index i in optionLabels order.
func optionField(o *mvreport.Options, i int) *bool {
	switch i {
	case 0:
		return &o.ExtractChords
	case 1:
		return &o.DetectInstruments
	case 2:
		return &o.AnalyzeStructure
	default:
		return &o.ExtractTablature
	}
}
