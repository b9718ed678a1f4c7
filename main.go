// Norwegian ID MCP Server - A Model Context Protocol server for Norwegian
// identity numbers. Provides tools for validating, generating and enumerating
// organization numbers, birth numbers (fødselsnummer) and D-numbers.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/infra"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/norway"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"
	"github.com/olgasafonova/norwegian-id-mcp-server/tools"
	"github.com/olgasafonova/norwegian-id-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// recoverPanic logs a recovered panic instead of crashing the server.
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "norwegian-id-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Norwegian ID MCP Server validates and generates Norwegian identity numbers.

Available tools:
- nin_validate: Validate an organization number, birth number or D-number and explain failures
- nin_detect: Find out which kind of identifier a number is
- nin_generate: Random valid identifiers for test data
- nin_generate_pattern: Random identifier matching a pattern with ? wildcards
- nin_generate_in_range: Birth number or D-number for a birth date range and gender
- nin_generate_many: Distinct identifiers sampled from the whole domain (slow)
- nin_enumerate: Page through all legal identifiers in order
- nin_variation_count: Number of legal identifiers per kind
- nin_resolve_year: Birth year from two-digit year and individual number
- nin_individual_numbers: Individual numbers issued for a birth year

Numbers are computed locally; nothing is looked up in external registers.

Configure via environment variables:
- NIN_MAX_TRIES: Retry budget for pattern and date range generation (default 1000)
- NIN_SEED: Seed for reproducible generation
- NIN_MAX_MANY: Largest count accepted by nin_generate_many (default 10000)
- NIN_MAX_ENUMERATIONS: Concurrent full-domain walks (default 2)`

func main() {
	httpAddr := flag.String("http", "", "serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	rateLimit := flag.Int("rate-limit", 60, "HTTP requests per minute per IP, 0 disables")
	maxBody := flag.Int64("max-body", DefaultMaxBodySize, "maximum HTTP request body in bytes")
	flag.Parse()

	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// stdout carries MCP protocol frames
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traceConfig := tracing.DefaultConfig()
	traceConfig.ServiceVersion = ServerVersion
	shutdownTracing, err := tracing.Setup(ctx, traceConfig)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	service := norway.NewService(
		norway.WithLogger(logger),
		norway.WithGenerator(nin.NewGenerator(config.GeneratorOptions()...)),
		norway.WithCache(infra.NewCache[registry.ValidationResult](config.CacheEntries, config.CacheTTL)),
		norway.WithLimiter(infra.NewLimiter(config.MaxEnumerations)),
		norway.WithMaxMany(config.MaxMany),
	)
	defer service.Close()

	server := newServer(service, logger)

	logger.Info("Starting Norwegian ID MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"seeded", config.Seed != nil,
		"max_tries", config.MaxTries,
		"max_many", config.MaxMany,
	)

	if *httpAddr == "" {
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	security := SecurityConfig{RateLimit: *rateLimit, MaxBodySize: *maxBody}
	if err := serveHTTP(ctx, *httpAddr, server, logger, security); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// newServer creates the MCP server with every tool registered.
func newServer(service *norway.Service, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})
	tools.NewHandlerRegistry(service, logger).RegisterAll(server)
	return server
}

// newHTTPHandler routes /mcp through the security middleware and exposes
// Prometheus metrics and a health check alongside it.
func newHTTPHandler(server *mcp.Server, logger *slog.Logger, security SecurityConfig) (http.Handler, func()) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	sm := NewSecurityMiddleware(mux, logger, security)
	return sm, sm.Close
}

func serveHTTP(ctx context.Context, addr string, server *mcp.Server, logger *slog.Logger, security SecurityConfig) error {
	handler, closeHandler := newHTTPHandler(server, logger, security)
	defer closeHandler()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer recoverPanic(logger, "http shutdown")
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed", "error", err)
		}
	}()

	logger.Info("Serving streamable HTTP",
		"addr", addr,
		"rate_limit_per_minute", security.RateLimit,
		"max_body_bytes", security.MaxBodySize,
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
