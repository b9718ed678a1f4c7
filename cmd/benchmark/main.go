package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/norway"
)

func newService() *norway.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return norway.NewService(
		norway.WithLogger(logger),
		norway.WithGenerator(nin.NewGenerator(nin.WithSeed(1))),
	)
}

// measureCachePerformance compares a first validation with a cached repeat
func measureCachePerformance(service *norway.Service) {
	fmt.Println("=== Validation Cache Test ===")
	fmt.Println()

	numbers := []string{"987654325", "01020398767", "41020398750", "12345"}
	for _, number := range numbers {
		start := time.Now()
		r, _ := service.Validate(number, 0)
		first := time.Since(start)

		start = time.Now()
		_, hit := service.Validate(number, 0)
		second := time.Since(start)

		fmt.Printf("   %-12s %-20s first: %-10v cached: %-10v hit: %v\n", number, r.CodeName, first, second, hit)
	}
	fmt.Println()
}

// measureGeneration times the random generation paths
func measureGeneration() {
	fmt.Println("=== Generation Performance ===")
	fmt.Println()

	gen := nin.NewGenerator(nin.WithSeed(2))
	const draws = 10000

	for _, kind := range nin.Kinds() {
		start := time.Now()
		gen.QuickManyRandom(kind, draws)
		elapsed := time.Since(start)
		fmt.Printf("   OneRandom %-20s %d draws in %v (%v each)\n", kind, draws, elapsed, elapsed/draws)
	}
	fmt.Println()

	patterns := map[nin.Kind]string{
		nin.OrganizationNumber: "99???????",
		nin.BirthNumber:        "150185?????",
		nin.DNumber:            "010203?????",
	}
	for _, kind := range nin.Kinds() {
		start := time.Now()
		_, found, err := gen.OneRandomPattern(kind, patterns[kind])
		fmt.Printf("   Pattern   %-20s %-12s found: %-5v err: %v in %v\n", kind, patterns[kind], found, err, time.Since(start))
	}

	from := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	start := time.Now()
	for range draws {
		_, _, _ = gen.OneRandomInRange(nin.BirthNumber, from, to, nin.Female)
	}
	elapsed := time.Since(start)
	fmt.Printf("   InRange   birth_number 1990s female: %d draws in %v (%v each)\n", draws, elapsed, elapsed/draws)
	fmt.Println()
}

// measureEnumeration times full domain walks, optionally including the
// reservoir sample and the coalescing of concurrent counts
func measureEnumeration(service *norway.Service, full bool) {
	fmt.Println("=== Enumeration Performance ===")
	fmt.Println()
	ctx := context.Background()

	for _, offset := range []int{0, 1_000_000, 10_000_000} {
		start := time.Now()
		page, err := service.Page(ctx, nin.OrganizationNumber, offset, 10)
		if err != nil {
			fmt.Printf("   Error: %v\n", err)
			return
		}
		fmt.Printf("   Page of %d organization numbers at offset %-10d %v\n", len(page), offset, time.Since(start))
	}
	fmt.Println()

	if !full {
		fmt.Println("   Full domain walks skipped (use -full)")
		fmt.Println()
		return
	}

	for _, kind := range nin.Kinds() {
		start := time.Now()
		count, walked, err := service.CountVariations(ctx, kind, true)
		if err != nil {
			fmt.Printf("   Error: %v\n", err)
			return
		}
		fmt.Printf("   Walk   %-20s %d identifiers (expected %d) in %v\n", kind, walked, count, time.Since(start))
	}

	start := time.Now()
	ids, err := service.Sample(ctx, nin.BirthNumber, 1000)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	fmt.Printf("   Sample birth_number         %d distinct in %v\n", len(ids), time.Since(start))
	fmt.Println()

	// Concurrent identical counts share one walk
	const callers = 4
	var wg sync.WaitGroup
	start = time.Now()
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = service.CountVariations(ctx, nin.DNumber, true)
		}()
	}
	wg.Wait()
	fmt.Printf("   %d concurrent d_number counts in %v (one walk shared)\n", callers, time.Since(start))
	fmt.Println()
}

func main() {
	full := flag.Bool("full", false, "include full domain walks (tens of millions of identifiers)")
	flag.Parse()

	fmt.Println("Norwegian ID MCP Server - Performance Measurements")
	fmt.Println("==================================================")
	fmt.Println()

	service := newService()
	defer service.Close()

	measureCachePerformance(service)
	measureGeneration()
	measureEnumeration(service, *full)

	stats := service.CacheStats()
	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Printf("• Validation cache: %d entries, %d hits, %d misses\n", stats.Size, stats.Hits, stats.Misses)
	fmt.Println("• Generation: single draws are cheap; pattern and date range draws are bounded by NIN_MAX_TRIES")
	fmt.Println("• Enumeration: pages cost time proportional to their offset; concurrent counts share a walk")
}
