package norway

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/infra"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

func ctx() context.Context {
	return context.Background()
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithGenerator(nin.NewGenerator(nin.WithSeed(42))),
	}, opts...)
	s := NewService(opts...)
	t.Cleanup(s.Close)
	return s
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(WithLogger(logger))
	defer s.Close()

	if s.Logger != logger {
		t.Error("custom logger was not set")
	}
}

func TestWithLimiter(t *testing.T) {
	limiter := infra.NewLimiter(3)
	s := NewService(WithLimiter(limiter))
	defer s.Close()

	if s.Limiter != limiter {
		t.Error("custom limiter was not set")
	}
}

func TestService_Validate(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name      string
		number    string
		kind      nin.Kind
		wantValid bool
		wantKind  string
	}{
		{"organization number", "987654325", nin.OrganizationNumber, true, "organization_number"},
		{"birth number detected", "15018512464", 0, true, "birth_number"},
		{"D-number detected", "41020398750", 0, true, "d_number"},
		{"wrong kind", "41020398750", nin.BirthNumber, false, "birth_number"},
		{"nothing matches", "12345", 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := s.Validate(tt.number, tt.kind)
			if r.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (%s)", r.Valid, tt.wantValid, r.Message)
			}
			if r.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", r.Kind, tt.wantKind)
			}
		})
	}
}

func TestService_ValidateCachesByCleanedNumber(t *testing.T) {
	s := newTestService(t)

	first, hit := s.Validate("987 654 325", nin.OrganizationNumber)
	if hit {
		t.Error("first validation should not be cached")
	}
	second, hit := s.Validate("987-654-325", nin.OrganizationNumber)
	if !hit {
		t.Error("second validation should be served from cache")
	}
	if first.Input != "987 654 325" || second.Input != "987-654-325" {
		t.Errorf("inputs = %q, %q", first.Input, second.Input)
	}
	if second.Number != "987654325" || !second.Valid {
		t.Errorf("cached result = %+v", second)
	}

	// A different kind is a different cache entry
	if _, hit := s.Validate("987654325", 0); hit {
		t.Error("detection should not share the kind-specific entry")
	}
}

func TestService_PageFromStart(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		kind nin.Kind
		want []string
	}{
		{nin.OrganizationNumber, []string{"800000009", "800000017", "800000025"}},
		{nin.BirthNumber, []string{"01015450068", "01015450149", "01015450300"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ids, err := s.Page(ctx(), tt.kind, 0, 3)
			if err != nil {
				t.Fatalf("Page failed: %v", err)
			}
			if got := numbers(ids); !slices.Equal(got, tt.want) {
				t.Errorf("Page = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_PageOffset(t *testing.T) {
	s := newTestService(t)

	ids, err := s.Page(ctx(), nin.OrganizationNumber, 1, 2)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if got := numbers(ids); !slices.Equal(got, []string{"800000017", "800000025"}) {
		t.Errorf("Page = %v", got)
	}
	if s.Limiter.Active() != 0 {
		t.Errorf("walk slot not released, Active() = %d", s.Limiter.Active())
	}
}

func TestService_PageLastOrganizationNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the full organization number domain")
	}
	s := newTestService(t)

	ids, err := s.Page(ctx(), nin.OrganizationNumber, nin.OrganizationNumberVariations-1, 10)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if got := numbers(ids); !slices.Equal(got, []string{"999999999"}) {
		t.Errorf("Page = %v, want [999999999]", got)
	}
}

func TestService_WalkWaitsForSlot(t *testing.T) {
	s := newTestService(t, WithLimiter(infra.NewLimiter(1)))

	if !s.Limiter.TryAcquire() {
		t.Fatal("could not take the only slot")
	}
	defer s.Limiter.Release()

	canceled, cancel := context.WithCancel(ctx())
	cancel()

	if _, err := s.Page(canceled, nin.OrganizationNumber, 0, 1); err == nil {
		t.Error("Page should fail while no slot is free")
	}
	if _, err := s.Sample(canceled, nin.OrganizationNumber, 1); err == nil {
		t.Error("Sample should fail while no slot is free")
	}
}

func TestService_CountVariationsWithoutWalk(t *testing.T) {
	s := newTestService(t)

	for _, kind := range nin.Kinds() {
		count, walked, err := s.CountVariations(ctx(), kind, false)
		if err != nil {
			t.Fatalf("CountVariations(%s) failed: %v", kind, err)
		}
		if count != nin.PossibleVariations(kind) || walked != 0 {
			t.Errorf("CountVariations(%s) = %d, %d", kind, count, walked)
		}
	}
}

func TestService_CountVariationsVerified(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the full organization number domain")
	}
	s := newTestService(t)

	count, walked, err := s.CountVariations(ctx(), nin.OrganizationNumber, true)
	if err != nil {
		t.Fatalf("CountVariations failed: %v", err)
	}
	if count != nin.OrganizationNumberVariations || walked != count {
		t.Errorf("count = %d, walked = %d", count, walked)
	}
}

func TestService_CountVariationsCanceled(t *testing.T) {
	s := newTestService(t)

	canceled, cancel := context.WithCancel(ctx())
	cancel()

	if _, _, err := s.CountVariations(canceled, nin.DNumber, true); err == nil {
		t.Error("expected error for canceled context")
	}
}
