package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/njchilds90/symplot"
	"github.com/njchilds90/symplot/server"
)

type telemetry struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
}

func newTestServer(t *testing.T, logs io.Writer) (*httptest.Server, *telemetry) {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	h, err := server.NewHandler(server.Config{
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
		Tracer: tp.Tracer("test"),
		Meter:  mp.Meter("test"),
	})
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, &telemetry{spans: spans, reader: reader}
}

// counter sums the data points of the named Int64 counter.
func (tm *telemetry) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, tm.reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s has data %T", name, m.Data)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func postTool(t *testing.T, srv *httptest.Server, body string) (*http.Response, symplot.ToolResponse) {
	t.Helper()
	res, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var out symplot.ToolResponse
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	}
	return res, out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, io.Discard)
	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestSchema(t *testing.T) {
	srv, _ := newTestServer(t, io.Discard)
	res, err := http.Get(srv.URL + "/schema")
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t, symplot.MCPToolSpec(), string(data))
}

func TestTool_Simplify(t *testing.T) {
	srv, tm := newTestServer(t, io.Discard)
	body := `{"tool":"simplify","params":{"expr":{"type":"sqrt","arg":{"type":"var","name":"x"}},"subs":{"x":9}}}`
	res, out := postTool(t, srv, body)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, out.Error)
	assert.Equal(t, "3; -3", out.String)

	ended := tm.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "tool:simplify", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("symplot.tool", "simplify"))
	assert.Equal(t, codes.Unset, ended[0].Status().Code)

	assert.Equal(t, int64(1), tm.counter(t, "symplot.tool.calls"))
	assert.Equal(t, int64(0), tm.counter(t, "symplot.tool.failures"))
}

func TestTool_ErrorIsLoggedAndTraced(t *testing.T) {
	var logs bytes.Buffer
	srv, tm := newTestServer(t, &logs)
	res, out := postTool(t, srv, `{"tool":"nope","params":{}}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "unknown tool: nope", out.Error)
	assert.Contains(t, logs.String(), "tool call failed")

	ended := tm.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "unknown tool: nope", ended[0].Status().Description)
	assert.Equal(t, int64(1), tm.counter(t, "symplot.tool.failures"))
}

func TestTool_BadRequests(t *testing.T) {
	srv, tm := newTestServer(t, io.Discard)

	res, err := http.Get(srv.URL + "/tool")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	for _, body := range []string{
		`{"tool":"variables","params":{}} {}`,
		`{"tool":"variables","extra":1}`,
		`not json`,
	} {
		res, _ := postTool(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}
	assert.Empty(t, tm.spans.Ended(), "rejected requests never reach a tool")
}
