package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/norway"
	"github.com/olgasafonova/norwegian-id-mcp-server/metrics"
	"github.com/olgasafonova/norwegian-id-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	service *norway.Service
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(service *norway.Service, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		service: service,
		logger:  logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)
	s := h.service

	switch spec.Method {
	case "Validate":
		register(h, server, tool, spec, s.ValidateMCP)
	case "Detect":
		register(h, server, tool, spec, s.DetectMCP)
	case "Generate":
		register(h, server, tool, spec, s.GenerateMCP)
	case "GeneratePattern":
		register(h, server, tool, spec, s.GeneratePatternMCP)
	case "GenerateInRange":
		register(h, server, tool, spec, s.GenerateInRangeMCP)
	case "GenerateMany":
		register(h, server, tool, spec, s.GenerateManyMCP)
	case "Enumerate":
		register(h, server, tool, spec, s.EnumerateMCP)
	case "VariationCount":
		register(h, server, tool, spec, s.VariationCountMCP)
	case "ResolveYear":
		register(h, server, tool, spec, s.ResolveYearMCP)
	case "IndividualNumbers":
		register(h, server, tool, spec, s.IndividualNumbersMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the service method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, handler(h, spec, method))
}

// handler builds the typed MCP handler for a service method.
func handler[Args, Result any](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) mcp.ToolHandlerFor[Args, Result] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, result Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(
			attribute.String("mcp.tool.kinds", strings.Join(spec.Kinds, ",")),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	}
}

// recoverPanic recovers from panics in tool handlers and turns them into a
// tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details. Birth numbers and D-numbers are
// personal data, so only kinds, counts and outcomes are logged, never the
// numbers themselves.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case norway.ValidateArgs:
		attrs = append(attrs, "kind", a.Kind)
	case norway.GenerateArgs:
		attrs = append(attrs, "kind", a.Kind, "count", a.Count)
	case norway.GeneratePatternArgs:
		attrs = append(attrs, "kind", a.Kind)
	case norway.GenerateInRangeArgs:
		attrs = append(attrs, "kind", a.Kind, "from", a.From, "to", a.To, "gender", a.Gender)
	case norway.GenerateManyArgs:
		attrs = append(attrs, "kind", a.Kind, "count", a.Count)
	case norway.EnumerateArgs:
		attrs = append(attrs, "kind", a.Kind, "offset", a.Offset, "limit", a.Limit)
	case norway.VariationCountArgs:
		attrs = append(attrs, "kind", a.Kind, "verify", a.Verify)
	case norway.ResolveYearArgs:
		attrs = append(attrs, "two_digit_year", a.TwoDigitYear, "individual_number", a.IndividualNumber)
	case norway.IndividualNumbersArgs:
		attrs = append(attrs, "year", a.Year, "gender", a.Gender)
	}

	switch r := result.(type) {
	case norway.ValidateResult:
		attrs = append(attrs, "valid", r.Valid, "code", r.CodeName, "cached", r.Cached)
	case norway.DetectResult:
		attrs = append(attrs, "found", r.Found)
		if r.Identifier != nil {
			attrs = append(attrs, "detected_kind", r.Identifier.Kind)
		}
	case norway.GenerateResult:
		attrs = append(attrs, "generated", r.Count)
	case norway.GeneratePatternResult:
		attrs = append(attrs, "found", r.Found)
	case norway.GenerateInRangeResult:
		attrs = append(attrs, "found", r.Found)
	case norway.GenerateManyResult:
		attrs = append(attrs, "generated", r.Count, "possible", r.Possible)
	case norway.EnumerateResult:
		attrs = append(attrs, "returned", len(r.Numbers), "has_more", r.HasMore)
	case norway.VariationCountResult:
		attrs = append(attrs, "kinds", len(r.Counts))
	case norway.ResolveYearResult:
		attrs = append(attrs, "resolved", r.Resolved, "year", r.Year)
	case norway.IndividualNumbersResult:
		attrs = append(attrs, "count", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}
