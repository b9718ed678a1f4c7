package main

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/metrics"
)

// DefaultMaxBodySize bounds request bodies on the HTTP transport.
const DefaultMaxBodySize = 1 << 20

// RateLimiter is a per-IP token bucket. Each IP gets rate tokens per
// interval; a bucket is refilled in full once interval has passed since its
// last refill.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether ip may make another request and takes a token if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.lastRefill) >= rl.interval {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[ip] = b
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Close stops the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() {
		close(rl.stopCh)
	})
}

// cleanupLoop drops buckets that would be refilled on their next use.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastRefill) >= rl.interval {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

// SecurityConfig configures the HTTP security middleware.
type SecurityConfig struct {
	RateLimit   int   // requests per minute per IP, 0 disables
	MaxBodySize int64 // bytes, 0 selects DefaultMaxBodySize
}

// SecurityMiddleware limits request rate and body size and records HTTP
// metrics for the wrapped handler.
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	limiter *RateLimiter
}

// NewSecurityMiddleware wraps next with the configured protections.
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	sm := &SecurityMiddleware{
		next:   next,
		logger: logger,
		config: config,
	}
	if config.RateLimit > 0 {
		sm.limiter = NewRateLimiter(config.RateLimit, time.Minute)
	}
	return sm
}

// Close stops the rate limiter, if any.
func (sm *SecurityMiddleware) Close() {
	if sm.limiter != nil {
		sm.limiter.Close()
	}
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, routeLabel(r.URL.Path)).Observe(time.Since(start).Seconds())
	}()

	if sm.limiter != nil {
		ip := clientIP(r)
		if !sm.limiter.Allow(ip) {
			metrics.RateLimitRejections.Inc()
			sm.logger.Warn("Rate limit exceeded", "remote_ip", ip, "path", r.URL.Path)
			http.Error(rec, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
	}

	r.Body = http.MaxBytesReader(rec, r.Body, sm.config.MaxBodySize)
	sm.next.ServeHTTP(rec, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// routeLabel keeps the path label bounded.
func routeLabel(path string) string {
	switch path {
	case "/mcp", "/metrics", "/healthz":
		return path
	default:
		return "other"
	}
}
