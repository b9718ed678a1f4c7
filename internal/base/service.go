// Package base provides shared infrastructure for identifier services:
// logging, the random generator, a validation cache, coalescing of
// identical enumerations and a limit on concurrent domain walks.
package base

import (
	"context"
	"log/slog"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/infra"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"
)

const (
	// DefaultCacheTTL for cached validation results
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheEntries bounds the validation cache
	DefaultCacheEntries = 1000

	// DefaultMaxMany caps the count of a single many-random request
	DefaultMaxMany = 10000

	// MaxEnumerationPage caps the page size of an enumeration listing
	MaxEnumerationPage = 1000
)

// Service bundles the infrastructure that identifier operations share.
type Service struct {
	Logger    *slog.Logger
	Generator *nin.Generator
	Cache     *infra.Cache[registry.ValidationResult]
	Dedup     *infra.RequestDeduplicator[int]
	Limiter   *infra.Limiter
	MaxMany   int
}

// ServiceOption configures the Service
type ServiceOption func(*Service)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.Logger = l
	}
}

// WithGenerator sets the random generator, e.g. a seeded one for
// reproducible output.
func WithGenerator(g *nin.Generator) ServiceOption {
	return func(s *Service) {
		s.Generator = g
	}
}

// WithCache sets a custom validation cache
func WithCache(c *infra.Cache[registry.ValidationResult]) ServiceOption {
	return func(s *Service) {
		s.Cache = c
	}
}

// WithLimiter sets the limiter for concurrent domain walks
func WithLimiter(l *infra.Limiter) ServiceOption {
	return func(s *Service) {
		s.Limiter = l
	}
}

// WithMaxMany caps the count accepted by many-random generation.
func WithMaxMany(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.MaxMany = n
		}
	}
}

// NewService creates a service with default settings
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		Logger:  slog.Default(),
		Dedup:   infra.NewRequestDeduplicator[int](),
		MaxMany: DefaultMaxMany,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.Generator == nil {
		s.Generator = nin.NewGenerator()
	}
	if s.Cache == nil {
		s.Cache = infra.NewCache[registry.ValidationResult](DefaultCacheEntries, DefaultCacheTTL)
	}
	if s.Limiter == nil {
		s.Limiter = infra.NewLimiter(infra.DefaultMaxEnumerations)
	}
	return s
}

// Close releases resources held by the service
func (s *Service) Close() {
	if s.Cache != nil {
		s.Cache.Close()
	}
}

// DedupStats returns the number of enumerations currently being computed
func (s *Service) DedupStats() int {
	return s.Dedup.Stats()
}

// CacheStats returns validation cache usage
func (s *Service) CacheStats() infra.CacheStats {
	return s.Cache.Stats()
}

// AcquireSlot blocks until a domain walk may start or ctx is canceled
func (s *Service) AcquireSlot(ctx context.Context) error {
	return s.Limiter.Acquire(ctx)
}

// ReleaseSlot releases a domain walk slot
func (s *Service) ReleaseSlot() {
	s.Limiter.Release()
}

// CachedValidation returns the cached result for key, computing and storing
// it with fn on a miss. The second result reports a cache hit.
func (s *Service) CachedValidation(key string, fn func() registry.ValidationResult) (registry.ValidationResult, bool) {
	if r, ok := s.Cache.Get(key); ok {
		return r, true
	}
	r := fn()
	s.Cache.Set(key, r)
	return r, false
}

// Walk runs fn while holding a domain walk slot.
func (s *Service) Walk(ctx context.Context, fn func() error) error {
	if err := s.AcquireSlot(ctx); err != nil {
		return err
	}
	defer s.ReleaseSlot()
	return fn()
}

// Coalesced runs a deterministic domain walk through the deduplicator, so
// that concurrent identical requests share one walk and one slot.
func (s *Service) Coalesced(ctx context.Context, key string, fn func() (int, error)) (int, bool, error) {
	return s.Dedup.Do(ctx, key, func() (int, error) {
		var n int
		err := s.Walk(ctx, func() error {
			var err error
			n, err = fn()
			return err
		})
		return n, err
	})
}
