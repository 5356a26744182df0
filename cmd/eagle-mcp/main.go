// Command eagle-mcp serves the Eagle app's local API as MCP tools, over stdio
// or HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eagle-mcp/internal/config"
	"eagle-mcp/internal/eagle"
	"eagle-mcp/internal/logger"
	"eagle-mcp/internal/mcpserver"
	"eagle-mcp/internal/operation"
	"eagle-mcp/internal/server"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eagle-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Init(logger.Config{Level: level, Format: cfg.LogFormat, Output: os.Stderr})
	log := logger.ForComponent("main")

	client := eagle.New(cfg.EagleBaseURL, nil)
	reg, unknown, err := operation.NewRegistryFrom(operation.Catalog(), cfg.DisabledTools)
	if err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	for _, name := range unknown {
		log.Warn("EAGLE_DISABLED_TOOLS names an unknown tool", "tool", name)
	}
	log.Info("starting", "transport", cfg.Transport, "eagle", client.BaseURL, "tools", len(reg.Names()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, cfg, client, reg, log)
	default:
		srv, err := mcpserver.New(reg, client, version)
		if err != nil {
			return err
		}
		return mcpserver.ServeStdio(ctx, srv, os.Stdin, os.Stdout)
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, client *eagle.Client, reg *operation.Registry, log *slog.Logger) error {
	if cfg.Token == "" {
		log.Warn("MCP_TOKEN not set; endpoints will be open. Set MCP_TOKEN to secure.")
	}
	srv := server.New(server.Config{Port: cfg.Port, Token: cfg.Token}, client, reg)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting MCP HTTP server", "addr", httpSrv.Addr, "tls", cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errc <- httpSrv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
