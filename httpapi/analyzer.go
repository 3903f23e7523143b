// Package httpapi provides an Analyzer that calls the analysis service over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/mvreport"
)

// DefaultEndpoint is the service's analysis route on its default host and port.
const DefaultEndpoint = "http://127.0.0.1:5000/analyze"

// messageInvalidResponse is reported when a 2xx body is not a result document.
const messageInvalidResponse = "resposta inválida do serviço"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 16 * 1024 * 1024

// Compile-time interface verification.
var _ mvreport.Analyzer = (*Analyzer)(nil)

// Analyzer implements mvreport.Analyzer against the service's POST endpoint.
type Analyzer struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout sets a client-side timeout. Zero means no timeout; analyses can
// legitimately take minutes.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client. The client is not modified;
// a timeout set with WithTimeout applies to a copy.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Analyzer) {
		a.httpClient = c
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates an Analyzer posting to endpoint.
// An empty endpoint selects DefaultEndpoint.
func NewAnalyzer(endpoint string, opts ...Option) *Analyzer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	a := &Analyzer{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{}
	}
	if a.timeout > 0 {
		c := *a.httpClient
		c.Timeout = a.timeout
		a.httpClient = &c
	}
	return a
}

// Endpoint returns the URL requests are posted to.
func (a *Analyzer) Endpoint() string {
	return a.endpoint
}

// request is the service's request body.
type request struct {
	URL     string         `json:"url"`
	Options requestOptions `json:"optionsAnalise"`
}

type requestOptions struct {
	ExtractChords     bool `json:"extrairAcordes"`
	DetectInstruments bool `json:"detectarInstrumentos"`
	AnalyzeStructure  bool `json:"analisarEstrutura"`
	ExtractTablature  bool `json:"extrairTablatura"`
}

// errorResponse is the body the service sends with a non-2xx status.
type errorResponse struct {
	Erro json.RawMessage `json:"erro"`
}

// Analyze posts req to the service and decodes the report.
func (a *Analyzer) Analyze(ctx context.Context, req mvreport.Request) (*mvreport.Result, error) {
	body, err := json.Marshal(request{
		URL: req.URL,
		Options: requestOptions{
			ExtractChords:     req.Options.ExtractChords,
			DetectInstruments: req.Options.DetectInstruments,
			AnalyzeStructure:  req.Options.AnalyzeStructure,
			ExtractTablature:  req.Options.ExtractTablature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &mvreport.TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		a.logger.Error("analysis request failed", "endpoint", a.endpoint, "error", err)
		return nil, &mvreport.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &mvreport.TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}
	if len(respBody) > maxResponseSize {
		a.logger.Warn("analysis response too large", "endpoint", a.endpoint, "status", resp.StatusCode)
		return nil, &mvreport.ServiceError{Status: resp.StatusCode, Message: messageInvalidResponse}
	}

	a.logger.Info("analysis response",
		"endpoint", a.endpoint,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &mvreport.ServiceError{
			Status:  resp.StatusCode,
			Message: serviceMessage(respBody),
		}
	}

	result, err := mvreport.ParseResult(respBody)
	if err != nil {
		a.logger.Warn("invalid analysis response", "error", err)
		return nil, &mvreport.ServiceError{Status: resp.StatusCode, Message: messageInvalidResponse}
	}
	return result, nil
}

// serviceMessage extracts the service's "erro" field. Non-string values keep
// their JSON form; a missing field, null or an unparsable body yields "".
func serviceMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil || len(e.Erro) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Erro, &s); err == nil {
		return s
	}
	if string(e.Erro) == "null" {
		return ""
	}
	return string(e.Erro)
}
