package norway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/base"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/infra"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"
	"github.com/olgasafonova/norwegian-id-mcp-server/metrics"
	"github.com/olgasafonova/norwegian-id-mcp-server/tracing"
)

// cancelCheckEvery is how many identifiers a walk visits between context checks.
const cancelCheckEvery = 1 << 20

// Service validates, generates and enumerates Norwegian identifiers
type Service struct {
	*base.Service
}

// ServiceOption configures the Service (re-export base.ServiceOption)
type ServiceOption = base.ServiceOption

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ServiceOption {
	return base.WithLogger(l)
}

// WithGenerator sets the random generator
func WithGenerator(g *nin.Generator) ServiceOption {
	return base.WithGenerator(g)
}

// WithCache sets the validation cache
func WithCache(c *infra.Cache[registry.ValidationResult]) ServiceOption {
	return base.WithCache(c)
}

// WithLimiter sets the limiter for concurrent domain walks
func WithLimiter(l *infra.Limiter) ServiceOption {
	return base.WithLimiter(l)
}

// WithMaxMany caps the count accepted by generation tools
func WithMaxMany(n int) ServiceOption {
	return base.WithMaxMany(n)
}

// NewService creates a new identifier service
func NewService(opts ...ServiceOption) *Service {
	return &Service{Service: base.NewService(opts...)}
}

// Validate checks number against kind, or detects the kind when kind is
// zero. Results are cached by kind and cleaned number; the second result
// reports a cache hit.
func (s *Service) Validate(number string, kind nin.Kind) (registry.ValidationResult, bool) {
	label := "any"
	if kind != 0 {
		label = kind.String()
	}
	cacheKey := label + ":" + registry.CleanNumber(number)

	r, hit := s.CachedValidation(cacheKey, func() registry.ValidationResult {
		if kind == 0 {
			return registry.ValidateAny(number)
		}
		return registry.Validate(number, kind)
	})
	r.Input = number

	metrics.RecordCacheAccess(hit)
	metrics.SetCacheSize(s.Cache.Size())
	metrics.RecordValidation(r.Kind, r.CodeName)
	return r, hit
}

// Sample draws count distinct identifiers of kind. The reservoir walk runs
// on a fork of the shared generator while holding a walk slot.
func (s *Service) Sample(ctx context.Context, kind nin.Kind, count int) ([]nin.Identifier, error) {
	ctx, span := tracing.StartSpan(ctx, "nin.sample")
	defer span.End()
	tracing.AddIdentifierAttributes(span, kind.String(), "sample")

	var ids []nin.Identifier
	err := s.walk(ctx, kind, "sample", func() error {
		ids = s.Generator.Fork().ManyRandom(kind, count)
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	tracing.AddEnumerationAttributes(span, kind.String(), nin.PossibleVariations(kind), len(ids))
	return ids, nil
}

// Page returns up to limit identifiers of kind starting at offset in the
// ordered enumeration.
func (s *Service) Page(ctx context.Context, kind nin.Kind, offset, limit int) ([]nin.Identifier, error) {
	ctx, span := tracing.StartSpan(ctx, "nin.enumerate")
	defer span.End()
	tracing.AddIdentifierAttributes(span, kind.String(), "enumerate")

	page := make([]nin.Identifier, 0, limit)
	visited := 0
	err := s.walk(ctx, kind, "page", func() error {
		if limit == 0 {
			return nil
		}
		for id := range nin.All(kind) {
			visited++
			if visited%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if visited <= offset {
				continue
			}
			page = append(page, id)
			if len(page) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	tracing.AddEnumerationAttributes(span, kind.String(), visited, len(page))
	return page, nil
}

// CountVariations returns the size of kind's legal domain. With verify set
// the domain is walked and the walked count is returned as well; concurrent
// verifications of the same kind share one walk.
func (s *Service) CountVariations(ctx context.Context, kind nin.Kind, verify bool) (count, walked int, err error) {
	count = nin.PossibleVariations(kind)
	if !verify {
		return count, 0, nil
	}

	ctx, span := tracing.StartSpan(ctx, "nin.count")
	defer span.End()
	tracing.AddIdentifierAttributes(span, kind.String(), "count")

	start := time.Now()
	walked, shared, err := s.Coalesced(ctx, "count:"+kind.String(), func() (int, error) {
		metrics.EnumerationsInFlight.Inc()
		defer metrics.EnumerationsInFlight.Dec()

		n := 0
		for range nin.All(kind) {
			n++
			if n%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return n, err
				}
			}
		}
		return n, nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return count, 0, fmt.Errorf("counting %s: %w", kind.Name(), err)
	}
	metrics.RecordEnumeration(kind.String(), time.Since(start).Seconds(), shared)
	tracing.AddEnumerationAttributes(span, kind.String(), walked, 0)

	if walked != count {
		s.Logger.Error("Enumeration size mismatch",
			"kind", kind.String(),
			"expected", count,
			"walked", walked,
		)
	}
	return count, walked, nil
}

// walk runs fn under a walk slot with enumeration logging and metrics.
func (s *Service) walk(ctx context.Context, kind nin.Kind, operation string, fn func() error) error {
	start := time.Now()
	err := s.Walk(ctx, func() error {
		metrics.EnumerationsInFlight.Inc()
		defer metrics.EnumerationsInFlight.Dec()

		s.Logger.Debug("Enumeration started", "kind", kind.String(), "operation", operation)
		return fn()
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", operation, kind.Name(), err)
	}

	elapsed := time.Since(start)
	metrics.RecordEnumeration(kind.String(), elapsed.Seconds(), false)
	s.Logger.Debug("Enumeration finished",
		"kind", kind.String(),
		"operation", operation,
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}
