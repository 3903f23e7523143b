package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/mvreport"
	"github.com/fwojciec/mvreport/bubbletea"
	"github.com/fwojciec/mvreport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lessonDoc = `{"avaliacaoVideo":"Lesson","urlVideo":"https://youtu.be/abc","pontuacaoGeral":4,"acordesIdentificados":["C","G","Am"]}`

func parse(t *testing.T, doc string) *mvreport.Result {
	t.Helper()
	r, err := mvreport.ParseResult([]byte(doc))
	require.NoError(t, err)
	return r
}

func lessonReport(t *testing.T) *mvreport.Report {
	t.Helper()
	report, err := mvreport.NewReport(parse(t, lessonDoc))
	require.NoError(t, err)
	return report
}

func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

// sized returns m after its first window size message.
func sized(m bubbletea.Model) bubbletea.Model {
	return update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
}

func update(m bubbletea.Model, msg tea.Msg) bubbletea.Model {
	next, _ := m.Update(msg)
	return next.(bubbletea.Model)
}

func press(m bubbletea.Model, r rune) bubbletea.Model {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// runCmd executes cmd and feeds its messages back into m. Commands returned
// by Update are dropped so timers never block the test.
func runCmd(m bubbletea.Model, cmd tea.Cmd) bubbletea.Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(m, c)
		}
	case spinner.TickMsg, nil:
	default:
		m = update(m, msg)
	}
	return m
}

func pressCmd(m bubbletea.Model, msg tea.KeyMsg) (bubbletea.Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(bubbletea.Model), cmd
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func tab() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }

func TestModel_ViewBeforeWindowSize(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(nil, bubbletea.WithReport(lessonReport(t)))

	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ReadOnlyReport(t *testing.T) {
	t.Parallel()

	t.Run("shows the table without the form", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil,
			bubbletea.WithReport(lessonReport(t)),
			bubbletea.WithRenderer(plainRenderer()),
		))
		view := m.View()

		assert.Equal(t, bubbletea.FocusResults, m.Focus())
		assert.Contains(t, view, mvreport.TitleGeneral)
		assert.Contains(t, view, "Lesson")
		assert.Contains(t, view, "4/5")
		assert.Contains(t, view, "https://youtu.be/abc")
		assert.Contains(t, view, mvreport.TitleChords)
		assert.NotContains(t, view, "URL: ")
		assert.NotContains(t, view, "Extrair acordes")
	})

	t.Run("switches to the JSON tab with collapsed panels", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil,
			bubbletea.WithReport(lessonReport(t)),
			bubbletea.WithRenderer(plainRenderer()),
		))
		m = press(m, 't')
		view := m.View()

		assert.Equal(t, bubbletea.TabJSON, m.Tab())
		assert.Contains(t, view, "▸ "+mvreport.TitleGeneral)
		assert.Contains(t, view, "▸ "+mvreport.TitleChords)
		assert.Contains(t, view, mvreport.TitleFullDocument)
		assert.Contains(t, view, mvreport.CopyLabel)

		m = press(m, 't')
		assert.Equal(t, bubbletea.TabTable, m.Tab())
	})

	t.Run("toggles the focused panel", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil,
			bubbletea.WithReport(lessonReport(t)),
			bubbletea.WithRenderer(plainRenderer()),
		))
		m = press(m, 't')
		m = press(m, ']')
		m = update(m, enter())

		assert.Equal(t, mvreport.Collapsed, m.Panels().State(mvreport.TitleGeneral))
		assert.Equal(t, mvreport.Expanded, m.Panels().State(mvreport.TitleChords))
		assert.Contains(t, m.View(), "▾ "+mvreport.TitleChords)
		assert.Contains(t, m.View(), `"acordes": [`)

		m = update(m, enter())
		assert.Equal(t, mvreport.Collapsed, m.Panels().State(mvreport.TitleChords))
	})

	t.Run("expands and collapses all panels", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil, bubbletea.WithReport(lessonReport(t))))
		m = press(m, 't')
		m = press(m, 'e')

		for _, title := range m.Panels().Titles() {
			assert.Equal(t, mvreport.Expanded, m.Panels().State(title), title)
		}

		m = press(m, 'c')
		for _, title := range m.Panels().Titles() {
			assert.Equal(t, mvreport.Collapsed, m.Panels().State(title), title)
		}
	})

	t.Run("panel keys are ignored on the table tab", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil, bubbletea.WithReport(lessonReport(t))))
		m = press(m, 'e')

		assert.Equal(t, mvreport.Collapsed, m.Panels().State(mvreport.TitleGeneral))
	})
}

func TestModel_Copy(t *testing.T) {
	t.Parallel()

	t.Run("copies the full document and confirms", func(t *testing.T) {
		t.Parallel()

		var copied string
		cb := &mock.Clipboard{CopyFn: func(content string) error {
			copied = content
			return nil
		}}
		report := lessonReport(t)
		m := sized(bubbletea.NewModel(nil, bubbletea.WithReport(report), bubbletea.WithClipboard(cb)))
		m = press(m, 't')

		m, cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
		require.NotNil(t, cmd)
		m = runCmd(m, cmd)

		assert.Equal(t, report.Document.Full, copied)
		assert.Equal(t, mvreport.CopiedLabel, m.CopyLabel())
		assert.Contains(t, m.View(), mvreport.CopiedLabel)
		assert.Empty(t, m.Notice())
	})

	t.Run("failure shows a notice until dismissed", func(t *testing.T) {
		t.Parallel()

		cb := &mock.Clipboard{CopyFn: func(string) error {
			return errors.New("no clipboard")
		}}
		m := sized(bubbletea.NewModel(nil,
			bubbletea.WithReport(lessonReport(t)),
			bubbletea.WithClipboard(cb),
			bubbletea.WithRenderer(plainRenderer()),
		))

		m, cmd := pressCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
		m = runCmd(m, cmd)

		assert.Equal(t, mvreport.CopyFailedNotice, m.Notice())
		assert.Equal(t, mvreport.CopyLabel, m.CopyLabel())
		assert.Contains(t, m.View(), "Não foi possível copiar")

		m = press(m, 't')
		assert.Equal(t, bubbletea.TabTable, m.Tab(), "keys are blocked while the notice is shown")

		m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Empty(t, m.Notice())
	})

	t.Run("missing clipboard shows the notice", func(t *testing.T) {
		t.Parallel()

		m := sized(bubbletea.NewModel(nil, bubbletea.WithReport(lessonReport(t))))
		m = press(m, 'y')

		assert.Equal(t, mvreport.CopyFailedNotice, m.Notice())
	})
}

func TestModel_Options(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{}
	m := sized(bubbletea.NewModel(analyzer))

	assert.Equal(t, mvreport.AllOptions(), m.Options())
	assert.Equal(t, bubbletea.FocusInput, m.Focus())

	m = update(m, tab())
	require.Equal(t, bubbletea.FocusOptions, m.Focus())

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, mvreport.Options{
		ExtractChords:     false,
		DetectInstruments: true,
		AnalyzeStructure:  false,
		ExtractTablature:  true,
	}, m.Options())

	m = update(m, tab())
	assert.Equal(t, bubbletea.FocusInput, m.Focus(), "results are skipped while hidden")
}

func TestModel_Submit(t *testing.T) {
	t.Parallel()

	t.Run("invalid url is rejected without calling the service", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, mvreport.Request) (*mvreport.Result, error) {
			calls.Add(1)
			return nil, nil
		}}
		m := sized(bubbletea.NewModel(analyzer, bubbletea.WithURL("https://example.com/video")))

		m, cmd := pressCmd(m, enter())
		m = runCmd(m, cmd)

		assert.Equal(t, bubbletea.StatusError, m.Status().Kind())
		assert.Equal(t, mvreport.MessageInvalidURL, m.Status().Message())
		assert.Zero(t, calls.Load())
	})

	t.Run("successful analysis shows the report", func(t *testing.T) {
		t.Parallel()

		var got mvreport.Request
		analyzer := &mock.Analyzer{AnalyzeFn: func(_ context.Context, req mvreport.Request) (*mvreport.Result, error) {
			got = req
			return parse(t, lessonDoc), nil
		}}
		m := sized(bubbletea.NewModel(analyzer,
			bubbletea.WithURL("https://youtu.be/abc"),
			bubbletea.WithRenderer(plainRenderer()),
		))

		m, cmd := pressCmd(m, enter())
		assert.Equal(t, bubbletea.StatusLoading, m.Status().Kind())
		assert.False(t, m.Status().ResultsVisible())

		m = runCmd(m, cmd)

		assert.Equal(t, "https://youtu.be/abc", got.URL)
		assert.Equal(t, mvreport.AllOptions(), got.Options)
		assert.Equal(t, bubbletea.StatusSuccess, m.Status().Kind())
		assert.Equal(t, mvreport.MessageSuccess, m.Status().Message())
		assert.True(t, m.Status().ResultsVisible())
		assert.Equal(t, bubbletea.FocusResults, m.Focus())
		require.NotNil(t, m.Report())
		assert.Contains(t, m.View(), mvreport.TitleChords)
	})

	t.Run("service error hides previous results", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, mvreport.Request) (*mvreport.Result, error) {
			return nil, &mvreport.ServiceError{Status: 400, Message: "URL inválida"}
		}}
		m := sized(bubbletea.NewModel(analyzer,
			bubbletea.WithURL("https://youtu.be/abc"),
			bubbletea.WithReport(lessonReport(t)),
			bubbletea.WithRenderer(plainRenderer()),
		))
		require.Contains(t, m.View(), mvreport.TitleGeneral)

		m, cmd := pressCmd(m, enter())
		m = runCmd(m, cmd)

		assert.Equal(t, bubbletea.StatusError, m.Status().Kind())
		assert.Equal(t, "Erro na análise: URL inválida", m.Status().Message())
		assert.False(t, m.Status().ResultsVisible())
		assert.NotContains(t, m.View(), mvreport.TitleGeneral)
	})
}

func TestModel_Interactive(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{AnalyzeFn: func(context.Context, mvreport.Request) (*mvreport.Result, error) {
		return parse(t, lessonDoc), nil
	}}
	m := bubbletea.NewModel(analyzer, bubbletea.WithRenderer(plainRenderer()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Type("https://youtu.be/abc")
	tm.Send(enter())

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(mvreport.MessageSuccess))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(mvreport.TitleFullDocument))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final := tm.FinalModel(t).(bubbletea.Model)
	require.NotNil(t, final.Report())
	assert.Equal(t, bubbletea.TabJSON, final.Tab())
}

func TestModel_ForceQuitFromInput(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(&mock.Analyzer{})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("q")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
