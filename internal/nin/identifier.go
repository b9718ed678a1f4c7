package nin

import (
	"time"
)

// Identifier is a validated identifier. The zero value is not valid; every
// non-zero Identifier satisfies all rules of its kind.
type Identifier struct {
	kind   Kind
	number string
}

// Kind returns the identifier variant.
func (id Identifier) Kind() Kind { return id.kind }

// Name returns the human-readable kind name.
func (id Identifier) Name() string { return id.kind.Name() }

// Number returns the digit string.
func (id Identifier) Number() string { return id.number }

func (id Identifier) String() string { return id.number }

// IsZero reports whether id is the zero value (no identifier).
func (id Identifier) IsZero() bool { return id.number == "" }

// IndividualNumber returns the three-digit individual number of a date-based
// identifier.
func (id Identifier) IndividualNumber() (int, bool) {
	if !id.kind.IsDateBased() || len(id.number) != 11 {
		return 0, false
	}
	return atoi(id.number[6:9]), true
}

// BirthDate decodes the date encoded in a date-based identifier, with the
// century resolved from the individual number.
func (id Identifier) BirthDate() (time.Time, bool) {
	individual, ok := id.IndividualNumber()
	if !ok {
		return time.Time{}, false
	}
	year, ok := ResolveYear(atoi(id.number[4:6]), individual)
	if !ok {
		return time.Time{}, false
	}
	day := atoi(id.number[0:2]) - id.kind.dayOffset()
	month := time.Month(atoi(id.number[2:4]))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// Gender returns the gender implied by the individual number, or AnyGender
// for organization numbers.
func (id Identifier) Gender() Gender {
	individual, ok := id.IndividualNumber()
	if !ok {
		return AnyGender
	}
	if individual%2 == 0 {
		return Female
	}
	return Male
}

// atoi parses a short run of ASCII digits already known to be valid.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
