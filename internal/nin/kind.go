// Package nin validates and generates Norwegian structured identifiers:
// organization numbers (9 digits), birth numbers (fødselsnummer, 11 digits)
// and D-numbers (11 digits, day of month stored with 40 added).
//
// Validation is pure and deterministic. Generation draws from a Generator,
// which owns its random source and is safe for concurrent use.
package nin

import (
	"fmt"
	"strings"
)

// Kind is one of the closed set of identifier variants.
type Kind int

const (
	OrganizationNumber Kind = iota + 1
	BirthNumber
	DNumber

	// syntheticNumber is the +80 day-offset variant accepted by the legacy
	// boolean validator. It is deliberately not part of Kinds().
	syntheticNumber
)

// Day offsets applied to the day-of-month field of date-based kinds.
const (
	dNumberDayOffset   = 40
	syntheticDayOffset = 80
)

// Kinds returns the public kinds in detection order.
func Kinds() []Kind {
	return []Kind{OrganizationNumber, BirthNumber, DNumber}
}

// Name returns the human-readable (Norwegian) name of the kind.
func (k Kind) Name() string {
	switch k {
	case OrganizationNumber:
		return "Organisasjonsnummer"
	case BirthNumber:
		return "Fødselsnummer"
	case DNumber:
		return "D-nummer"
	case syntheticNumber:
		return "Syntetisk nummer"
	default:
		return "Ukjent"
	}
}

// String returns the machine-friendly name used in tool arguments and logs.
func (k Kind) String() string {
	switch k {
	case OrganizationNumber:
		return "organization_number"
	case BirthNumber:
		return "birth_number"
	case DNumber:
		return "d_number"
	case syntheticNumber:
		return "synthetic_number"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Length returns the fixed digit count of the kind.
func (k Kind) Length() int {
	if k == OrganizationNumber {
		return 9
	}
	return 11
}

// IsDateBased reports whether the first six digits encode a date.
func (k Kind) IsDateBased() bool {
	return k == BirthNumber || k == DNumber || k == syntheticNumber
}

func (k Kind) valid() bool {
	return k >= OrganizationNumber && k <= syntheticNumber
}

func (k Kind) dayOffset() int {
	switch k {
	case DNumber:
		return dNumberDayOffset
	case syntheticNumber:
		return syntheticDayOffset
	default:
		return 0
	}
}

// ParseKind accepts a machine name, a Norwegian name, or an abbreviation.
// As on the nin command line, the first letter is enough:
// "o" for organization numbers, "b" (or "f") for birth numbers and "d" for
// D-numbers. Letter case is ignored.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return 0, fmt.Errorf("identifier kind is required")
	}
	switch norm[0] {
	case 'o':
		return OrganizationNumber, nil
	case 'b', 'f':
		return BirthNumber, nil
	case 'd':
		return DNumber, nil
	}
	return 0, fmt.Errorf("unknown identifier kind %q: use organization_number, birth_number or d_number", s)
}
