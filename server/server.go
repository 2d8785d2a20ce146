// Package server exposes the symplot tool interface over HTTP.
//
//	POST /tool   — execute a tool call
//	GET  /schema — tool schema for agent registration
//	GET  /health — liveness check
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/njchilds90/symplot"
)

const maxBodyBytes = 1 << 20 // 1 MiB

const instrumentationName = "github.com/njchilds90/symplot/server"

// Config configures the handler. Zero values use slog.Default and the
// global OpenTelemetry tracer and meter providers.
type Config struct {
	Logger *slog.Logger
	Tracer trace.Tracer
	Meter  metric.Meter
}

// toolMetrics records tool call counts and latency.
type toolMetrics struct {
	calls    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func newToolMetrics(meter metric.Meter) (*toolMetrics, error) {
	calls, err := meter.Int64Counter("symplot.tool.calls",
		metric.WithDescription("Number of tool calls"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("symplot.tool.failures",
		metric.WithDescription("Number of tool calls that returned an error"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("symplot.tool.duration",
		metric.WithDescription("Duration of tool calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &toolMetrics{calls: calls, failures: failures, duration: duration}, nil
}

func (m *toolMetrics) record(ctx context.Context, tool string, failed bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("tool", tool))
	m.calls.Add(ctx, 1, attrs)
	if failed {
		m.failures.Add(ctx, 1, attrs)
	}
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// NewHandler returns the HTTP handler serving the tool endpoints. It fails
// only if the meter rejects an instrument.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	meter := cfg.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	metrics, err := newToolMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("server: metrics: %w", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in /tool", "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req symplot.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(logger, w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		ctx, span := tracer.Start(r.Context(), "tool:"+req.Tool,
			trace.WithAttributes(attribute.String("symplot.tool", req.Tool)))
		start := time.Now()
		resp := symplot.HandleToolCall(req)
		elapsed := time.Since(start)
		if resp.Error != "" {
			span.SetStatus(codes.Error, resp.Error)
			logger.Warn("tool call failed", "tool", req.Tool, "error", resp.Error)
		} else {
			logger.Debug("tool call", "tool", req.Tool, "elapsed", elapsed)
		}
		metrics.record(ctx, req.Tool, resp.Error != "", elapsed)
		span.End()

		writeJSON(logger, w, http.StatusOK, resp)
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, symplot.MCPToolSpec())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(logger, w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux, nil
}

// New returns an http.Server for addr with conservative timeouts.
func New(addr string, cfg Config) (*http.Server, error) {
	h, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// writeJSON encodes v before committing status, so a value that cannot be
// encoded becomes a 500 instead of a truncated 200.
func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Debug("write response", "error", err)
	}
}
