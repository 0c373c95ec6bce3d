package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"moltbook/pkg/moltbook"
)

func main() {
	apiKey := strings.TrimSpace(os.Getenv("MOLTBOOK_API_KEY"))
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "MOLTBOOK_API_KEY is required")
		os.Exit(1)
	}

	// stdout carries the protocol; zap's production config logs to stderr.
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	opts := []moltbook.Option{moltbook.WithLogger(logger)}
	if baseURL := strings.TrimSpace(os.Getenv("MOLTBOOK_BASE_URL")); baseURL != "" {
		opts = append(opts, moltbook.WithBaseURL(baseURL))
	}
	cl, err := moltbook.New(apiKey, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newServer(cl).Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
