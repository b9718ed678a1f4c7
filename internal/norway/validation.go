package norway

import (
	"fmt"
	"strings"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

// Accepted date layouts for date-range arguments.
var dateLayouts = []string{
	time.DateOnly, // 2006-01-02
	"02.01.2006",
}

// ParseKind resolves a kind argument. Empty input is an error.
func ParseKind(kind string) (nin.Kind, error) {
	k, err := nin.ParseKind(kind)
	if err != nil {
		return 0, fmt.Errorf("invalid kind: %w", err)
	}
	return k, nil
}

// ParseOptionalKind resolves a kind argument, where empty means any kind
// (returned as zero).
func ParseOptionalKind(kind string) (nin.Kind, error) {
	if strings.TrimSpace(kind) == "" {
		return 0, nil
	}
	return ParseKind(kind)
}

// ParseDateBasedKind resolves a kind argument that must encode a birth date.
func ParseDateBasedKind(kind string) (nin.Kind, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return 0, err
	}
	if !k.IsDateBased() {
		return 0, fmt.Errorf("%s does not encode a birth date", k.Name())
	}
	return k, nil
}

// ParseDate parses a date as YYYY-MM-DD or dd.mm.yyyy.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or dd.mm.yyyy", s)
}

// ValidateCount validates a requested number of identifiers.
func ValidateCount(count, max int) error {
	if count < 0 {
		return fmt.Errorf("count cannot be negative")
	}
	if count > max {
		return fmt.Errorf("count cannot exceed %d", max)
	}
	return nil
}

// ValidatePage validates enumeration paging.
func ValidatePage(offset, limit, max int) error {
	if offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	if limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if limit > max {
		return fmt.Errorf("limit cannot exceed %d", max)
	}
	return nil
}

// ValidateTwoDigitYear validates the YY field of a date-based identifier.
func ValidateTwoDigitYear(yy int) error {
	if yy < 0 || yy > 99 {
		return fmt.Errorf("two-digit year must be between 0 and 99, got %d", yy)
	}
	return nil
}

// ValidateIndividualNumber validates the three-digit individual number.
func ValidateIndividualNumber(n int) error {
	if n < 0 || n > 999 {
		return fmt.Errorf("individual number must be between 0 and 999, got %d", n)
	}
	return nil
}
