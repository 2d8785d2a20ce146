// cmd/mcp-server/main.go — Standalone HTTP MCP server for symplot
//
// Exposes symplot tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/njchilds90/symplot/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	addr := fmt.Sprintf(":%d", *port)
	srv, err := server.New(addr, server.Config{Logger: logger})
	if err != nil {
		logger.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	logger.Info("symplot MCP server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
