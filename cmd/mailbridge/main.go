// Package main is the entry point for the mailbridge MCP server.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sewoong/mailbridge/internal/gateway"
	"github.com/sewoong/mailbridge/internal/logging"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to JSON or YAML configuration file (optional; environment variables take precedence)")
	flag.Parse()

	// stdout carries the MCP protocol stream, so every diagnostic goes to
	// stderr. The initial level comes from the environment; the gateway
	// re-applies the configured level once the lazy config load runs.
	logging.Setup(os.Getenv("LOG_LEVEL"))

	gw := gateway.New(*configPath)

	s := mcpserver.NewMCPServer("mailbridge", version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	gw.Register(s)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	slog.Info("starting mailbridge", "version", version)

	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(os.Stderr, "mailbridge: ", log.LstdFlags))

	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("mailbridge stopped")
}
