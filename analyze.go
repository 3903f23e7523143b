package mvreport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Options selects which optional analyses the service performs.
type Options struct {
	ExtractChords     bool
	DetectInstruments bool
	AnalyzeStructure  bool
	ExtractTablature  bool
}

// AllOptions enables every optional analysis.
func AllOptions() Options {
	return Options{
		ExtractChords:     true,
		DetectInstruments: true,
		AnalyzeStructure:  true,
		ExtractTablature:  true,
	}
}

// Request is a single analysis call.
type Request struct {
	URL     string
	Options Options
}

// Analyzer performs the remote analysis call.
type Analyzer interface {
	// Analyze returns the service's report, a *ServiceError if the service
	// refused, or a *TransportError if the call could not complete.
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// StatusSignal is the status banner and result-visibility gate.
type StatusSignal interface {
	ShowLoading(message string)
	ShowSuccess(message string)
	ShowError(message string)
	HideResults()
	ShowResults()
}

// Report is a result rendered into both views.
type Report struct {
	Result   *Result
	Table    []TableSection
	Document Document
}

// NewReport projects a result into the table and JSON views.
func NewReport(r *Result) (*Report, error) {
	doc, err := Sectionize(r)
	if err != nil {
		return nil, fmt.Errorf("sectionize result: %w", err)
	}
	return &Report{
		Result:   r,
		Table:    ProjectTable(r),
		Document: doc,
	}, nil
}

// User-facing status messages.
const (
	MessageEmptyURL        = "Por favor, insira um link do YouTube válido."
	MessageInvalidURL      = "O URL inserido não parece ser um link válido do YouTube."
	MessageLoading         = "Analisando vídeo... Por favor, aguarde. Este processo pode levar alguns minutos."
	MessageSuccess         = "Análise concluída com sucesso!"
	MessageServicePrefix   = "Erro na análise: "
	MessageTransportPrefix = "Erro ao conectar com a API. Verifique se ela está rodando e o IP está correto. Detalhe: "
	UnknownServiceError    = "Erro desconhecido"
)

var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// ValidURL reports whether s looks like a video URL the service accepts.
func ValidURL(s string) bool {
	return videoURLPattern.MatchString(s)
}

// Coordinator drives one analysis from user input to rendered report.
// Submit and Complete touch the status signal and must run on the UI loop;
// Call.Do is the only blocking step.
type Coordinator struct {
	analyzer Analyzer
	status   StatusSignal
	logger   *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(analyzer Analyzer, status StatusSignal, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		analyzer: analyzer,
		status:   status,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call is a validated analysis call waiting to run.
type Call struct {
	req      Request
	analyzer Analyzer
	logger   *slog.Logger
}

// Request returns the request the call will send.
func (c *Call) Request() Request {
	return c.req
}

// Outcome is the result of running a Call.
type Outcome struct {
	Request  Request
	Result   *Result
	Err      error
	Duration time.Duration
}

// Submit validates the input and signals loading. Rejected input is signaled
// as an error and returned as an *InputError; no call is created for it.
func (c *Coordinator) Submit(url string, opts Options) (*Call, error) {
	url = strings.TrimSpace(url)

	var msg string
	switch {
	case url == "":
		msg = MessageEmptyURL
	case !ValidURL(url):
		msg = MessageInvalidURL
	}
	if msg != "" {
		c.logger.Warn("rejected video url", "url", url)
		c.status.ShowError(msg)
		c.status.HideResults()
		return nil, &InputError{URL: url, Message: msg}
	}

	c.status.ShowLoading(MessageLoading)
	c.status.HideResults()

	return &Call{
		req:      Request{URL: url, Options: opts},
		analyzer: c.analyzer,
		logger:   c.logger,
	}, nil
}

// Do performs the analysis call. It never touches the status signal.
func (c *Call) Do(ctx context.Context) Outcome {
	c.logger.Info("analysis requested", "url", c.req.URL, "options", c.req.Options)
	start := time.Now()
	result, err := c.analyzer.Analyze(ctx, c.req)
	return Outcome{
		Request:  c.req,
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	}
}

// Complete renders a successful outcome and signals the final status.
func (c *Coordinator) Complete(o Outcome) (*Report, error) {
	err := o.Err
	if err == nil && o.Result == nil {
		err = &ServiceError{Message: "resposta vazia do serviço"}
	}

	var report *Report
	if err == nil {
		report, err = NewReport(o.Result)
		if err != nil {
			err = &ServiceError{Message: err.Error()}
		}
	}

	if err != nil {
		c.logger.Error("analysis failed", "url", o.Request.URL, "duration", o.Duration, "error", err)
		c.status.ShowError(ErrorMessage(err))
		c.status.HideResults()
		return nil, err
	}

	c.logger.Info("analysis completed", "url", o.Request.URL, "duration", o.Duration, "sections", len(report.Table))
	c.status.ShowSuccess(MessageSuccess)
	c.status.ShowResults()
	return report, nil
}

// Analyze runs Submit, Do and Complete in sequence.
func (c *Coordinator) Analyze(ctx context.Context, url string, opts Options) (*Report, error) {
	call, err := c.Submit(url, opts)
	if err != nil {
		return nil, err
	}
	return c.Complete(call.Do(ctx))
}

// ErrorMessage returns the user-facing message for an analysis error.
func ErrorMessage(err error) string {
	var (
		inputErr     *InputError
		serviceErr   *ServiceError
		transportErr *TransportError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.As(err, &serviceErr):
		msg := serviceErr.Message
		if msg == "" {
			msg = UnknownServiceError
		}
		return MessageServicePrefix + msg
	case errors.As(err, &transportErr):
		return MessageTransportPrefix + transportErr.Err.Error()
	default:
		return MessageTransportPrefix + err.Error()
	}
}
