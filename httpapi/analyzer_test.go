package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/mvreport"
	"github.com/fwojciec/mvreport/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func analyze(t *testing.T, endpoint string) (*mvreport.Result, error) {
	t.Helper()
	a := httpapi.NewAnalyzer(endpoint)
	return a.Analyze(context.Background(), mvreport.Request{URL: "https://youtu.be/abc", Options: mvreport.AllOptions()})
}

func TestAnalyzer_SendsRequest(t *testing.T) {
	t.Parallel()

	var (
		method, contentType string
		got                 map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	a := httpapi.NewAnalyzer(srv.URL)
	_, err := a.Analyze(context.Background(), mvreport.Request{
		URL:     "https://www.youtube.com/watch?v=abc",
		Options: mvreport.Options{ExtractChords: true, AnalyzeStructure: true},
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{
		"url": "https://www.youtube.com/watch?v=abc",
		"optionsAnalise": map[string]any{
			"extrairAcordes":       true,
			"detectarInstrumentos": false,
			"analisarEstrutura":    true,
			"extrairTablatura":     false,
		},
	}, got)
}

func TestAnalyzer_Success(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `{"avaliacaoVideo":"Lesson","pontuacaoGeral":4,"acordesIdentificados":["C","G","Am"]}`)

	r, err := analyze(t, srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Lesson", r.Video.String())
	assert.Equal(t, []string{"C", "G", "Am"}, r.Chords)
	assert.JSONEq(t, `{"avaliacaoVideo":"Lesson","pontuacaoGeral":4,"acordesIdentificados":["C","G","Am"]}`, string(r.Raw()))
}

func TestAnalyzer_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message from erro", http.StatusTooManyRequests, `{"erro":"limite excedido"}`, "limite excedido"},
		{"no erro field", http.StatusInternalServerError, `{"detalhe":"x"}`, ""},
		{"null erro", http.StatusBadRequest, `{"erro":null}`, ""},
		{"non-string erro", http.StatusBadRequest, `{"erro":42}`, "42"},
		{"html body", http.StatusBadGateway, `<html>Bad Gateway</html>`, ""},
		{"invalid 2xx body", http.StatusOK, `not json`, "resposta inválida do serviço"},
		{"2xx array body", http.StatusOK, `[1,2]`, "resposta inválida do serviço"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := serve(t, tt.status, tt.body)

			r, err := analyze(t, srv.URL)

			assert.Nil(t, r)
			var serviceErr *mvreport.ServiceError
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, tt.status, serviceErr.Status)
			assert.Equal(t, tt.message, serviceErr.Message)
		})
	}
}

func TestAnalyzer_ServiceErrorMessage(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusTooManyRequests, `{"erro":"limite excedido"}`)

	_, err := analyze(t, srv.URL)

	assert.Equal(t, "Erro na análise: limite excedido", mvreport.ErrorMessage(err))
}

func TestAnalyzer_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := analyze(t, endpoint)

	var transportErr *mvreport.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, mvreport.ErrorMessage(err), mvreport.MessageTransportPrefix)
}

func TestAnalyzer_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	a := httpapi.NewAnalyzer(srv.URL, httpapi.WithTimeout(50*time.Millisecond))
	_, err := a.Analyze(context.Background(), mvreport.Request{URL: "https://youtu.be/abc"})

	var transportErr *mvreport.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestAnalyzer_TimeoutLeavesClientUntouched(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `{}`)
	client := &http.Client{}

	a := httpapi.NewAnalyzer(srv.URL, httpapi.WithHTTPClient(client), httpapi.WithTimeout(time.Minute))
	_, err := a.Analyze(context.Background(), mvreport.Request{URL: "https://youtu.be/abc"})

	require.NoError(t, err)
	assert.Zero(t, client.Timeout)
}

func TestAnalyzer_TimeoutWithSharedDefaultClient(t *testing.T) {
	t.Parallel()

	httpapi.NewAnalyzer("", httpapi.WithTimeout(time.Minute), httpapi.WithHTTPClient(http.DefaultClient))
	httpapi.NewAnalyzer("", httpapi.WithHTTPClient(http.DefaultClient), httpapi.WithTimeout(time.Minute))

	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestAnalyzer_NilHTTPClient(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `{"avaliacaoVideo":"ok"}`)

	var a *httpapi.Analyzer
	require.NotPanics(t, func() {
		a = httpapi.NewAnalyzer(srv.URL, httpapi.WithHTTPClient(nil), httpapi.WithTimeout(time.Minute))
	})
	r, err := a.Analyze(context.Background(), mvreport.Request{URL: "https://youtu.be/abc"})

	require.NoError(t, err)
	assert.Equal(t, "ok", r.Video.String())
}

func TestAnalyzer_OversizedResponse(t *testing.T) {
	t.Parallel()

	body := `{"comentariosGerais":"` + strings.Repeat("x", 16*1024*1024) + `"}`
	srv := serve(t, http.StatusOK, body)

	r, err := analyze(t, srv.URL)

	assert.Nil(t, r)
	var serviceErr *mvreport.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusOK, serviceErr.Status)
	assert.Equal(t, "resposta inválida do serviço", serviceErr.Message)
}

func TestAnalyzer_ContextCancel(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := httpapi.NewAnalyzer(srv.URL).Analyze(ctx, mvreport.Request{URL: "https://youtu.be/abc"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAnalyzer_DefaultEndpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, httpapi.DefaultEndpoint, httpapi.NewAnalyzer("").Endpoint())
	assert.Equal(t, "http://example.test/analyze", httpapi.NewAnalyzer("http://example.test/analyze").Endpoint())
}
