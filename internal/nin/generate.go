package nin

import (
	"fmt"
	"time"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
)

// generatable reports whether kind can be produced by the generation
// operations.
func generatable(kind Kind) bool {
	return kind == OrganizationNumber || kind == BirthNumber || kind == DNumber
}

func unknownKind(kind Kind) error {
	return fmt.Errorf("cannot generate identifiers of kind %s", kind)
}

// OneRandom draws a uniformly random identifier from the full legal domain
// of kind. Candidates whose check digit computation hits the remainder-10
// sentinel, or whose individual number does not fit the drawn year, are
// discarded and redrawn. The loop is unbounded: each check digit rejects
// about one draw in eleven, so a full attempt for a date-based kind fails
// roughly one time in six and the expected number of attempts stays below
// two. Unknown kinds yield the zero Identifier.
func (g *Generator) OneRandom(kind Kind) Identifier {
	if !generatable(kind) {
		return Identifier{}
	}
	for {
		var number []byte
		if kind == OrganizationNumber {
			number = g.organizationCandidate()
		} else {
			number = g.dateBasedCandidate(kind, g.dateInRange(FirstPossible, LastPossible), 1000, nil)
		}
		if number == nil {
			continue
		}
		if id, ok := Create(kind, string(number)); ok {
			return id
		}
	}
}

// OneRandomPattern fills the wildcards of pattern until a valid identifier of
// kind results, giving up after MaxTries attempts. An invalid pattern fails
// immediately with a *errors.ValidationError. Exhausting the retry budget is
// not an error: the second result is false.
//
// For D-numbers the pattern describes the underlying date; the day offset is
// added to the first digit after the pattern has been filled.
func (g *Generator) OneRandomPattern(kind Kind, pattern string) (Identifier, bool, error) {
	if !generatable(kind) {
		return Identifier{}, false, unknownKind(kind)
	}
	if err := ValidatePattern(pattern, kind.Length()); err != nil {
		return Identifier{}, false, err
	}
	if kind == OrganizationNumber {
		if c := pattern[0]; c != Wildcard && c != '8' && c != '9' {
			return Identifier{}, false, apierrors.NewValidationError(apierrors.BadPattern, "Pattern", pattern,
				"must start with 8, 9 or a wildcard")
		}
	}
	for try := 0; try < g.maxTries; try++ {
		var number []byte
		if kind == OrganizationNumber {
			number = g.organizationFromPattern(pattern)
		} else {
			number = g.dateBasedFromPattern(kind, pattern)
		}
		if number == nil {
			continue
		}
		if id, ok := Create(kind, string(number)); ok {
			return id, true, nil
		}
	}
	return Identifier{}, false, nil
}

// OneRandomInRange draws a date-based identifier whose birth date lies in
// [from, to] and whose individual number matches gender. Only the calendar
// dates of from and to are used. Bounds outside [FirstPossible, LastPossible]
// or from after to fail immediately with BadDate. Exhausting MaxTries yields
// false without an error.
func (g *Generator) OneRandomInRange(kind Kind, from, to time.Time, gender Gender) (Identifier, bool, error) {
	if kind != BirthNumber && kind != DNumber {
		return Identifier{}, false, unknownKind(kind)
	}
	from, to = truncateDay(from), truncateDay(to)
	switch {
	case from.Before(FirstPossible):
		return Identifier{}, false, apierrors.NewValidationError(apierrors.BadDate, "From date", from.Format(time.DateOnly),
			fmt.Sprintf("cannot be earlier than %s", FirstPossible.Format(time.DateOnly)))
	case to.After(LastPossible):
		return Identifier{}, false, apierrors.NewValidationError(apierrors.BadDate, "To date", to.Format(time.DateOnly),
			fmt.Sprintf("cannot be later than %s", LastPossible.Format(time.DateOnly)))
	case from.After(to):
		return Identifier{}, false, apierrors.NewValidationError(apierrors.BadDate, "From date", from.Format(time.DateOnly),
			fmt.Sprintf("cannot be later than the to date %s", to.Format(time.DateOnly)))
	}
	for try := 0; try < g.maxTries; try++ {
		date := g.dateInRange(from, to)
		numbers, err := legalNumbersFor(date.Year(), gender)
		if err != nil {
			return Identifier{}, false, err
		}
		number := g.dateBasedCandidate(kind, date, len(numbers), numbers)
		if number == nil {
			continue
		}
		if id, ok := Create(kind, string(number)); ok {
			return id, true, nil
		}
	}
	return Identifier{}, false, nil
}

// QuickManyRandom returns count independent OneRandom draws. Unlike
// ManyRandom it may return duplicates, but it never walks the domain.
func (g *Generator) QuickManyRandom(kind Kind, count int) []Identifier {
	if count <= 0 || !generatable(kind) {
		return nil
	}
	ids := make([]Identifier, count)
	for i := range ids {
		ids[i] = g.OneRandom(kind)
	}
	return ids
}

// organizationCandidate returns a random organization number with a leading
// 8 or 9, or nil when the check digit hits the sentinel.
func (g *Generator) organizationCandidate() []byte {
	number := make([]byte, 9)
	number[0] = byte('8' + g.intN(2))
	for i := 1; i < 8; i++ {
		number[i] = g.digit()
	}
	check, ok := checkDigit(organizationWeights, number)
	if !ok {
		return nil
	}
	number[8] = check
	return number
}

// dateBasedCandidate composes date, an individual number and both check
// digits. The individual number is numbers[i] for a random i below n, or i
// itself when numbers is nil. It returns nil on a sentinel check digit.
func (g *Generator) dateBasedCandidate(kind Kind, date time.Time, n int, numbers []int) []byte {
	individual := g.intN(n)
	if numbers != nil {
		individual = numbers[individual]
	}
	number := make([]byte, 11)
	putDate(number, date, kind.dayOffset())
	putDigits(number[6:9], individual)
	if !appendCheckDigits(number) {
		return nil
	}
	return number
}

func (g *Generator) organizationFromPattern(pattern string) []byte {
	number := []byte(pattern)
	if number[0] == Wildcard {
		number[0] = byte('8' + g.intN(2))
	}
	for i := 1; i < 8; i++ {
		if number[i] == Wildcard {
			number[i] = g.digit()
		}
	}
	if number[8] == Wildcard {
		check, ok := checkDigit(organizationWeights, number)
		if !ok {
			return nil
		}
		number[8] = check
	}
	return number
}

// dateBasedFromPattern fills a date-based pattern. A fully wildcarded date
// is drawn from the whole legal date range instead of digit by digit, so
// that impossible dates such as day 32 are not generated.
func (g *Generator) dateBasedFromPattern(kind Kind, pattern string) []byte {
	number := []byte(pattern)
	if pattern[:6] == "??????" {
		putDate(number, g.dateInRange(FirstPossible, LastPossible), 0)
	}
	for i := 0; i < 9; i++ {
		if number[i] == Wildcard {
			number[i] = g.digit()
		}
	}
	if offset := kind.dayOffset(); offset > 0 {
		number[0] += byte(offset / 10)
		if number[0] > '9' {
			return nil
		}
	}
	if number[9] == Wildcard {
		check, ok := checkDigit(firstCheckWeights, number)
		if !ok {
			return nil
		}
		number[9] = check
	}
	if number[10] == Wildcard {
		check, ok := checkDigit(secondCheckWeights, number)
		if !ok {
			return nil
		}
		number[10] = check
	}
	return number
}

// putDate writes DDMMYY into the first six bytes of number, with offset
// added to the day.
func putDate(number []byte, date time.Time, offset int) {
	putDigits(number[0:2], date.Day()+offset)
	putDigits(number[2:4], int(date.Month()))
	putDigits(number[4:6], date.Year()%100)
}

// putDigits writes v as zero-padded decimal filling dst.
func putDigits(dst []byte, v int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte('0' + v%10)
		v /= 10
	}
}

// appendCheckDigits fills positions 9 and 10 of an 11-digit number. It
// reports false when either check digit hits the sentinel.
func appendCheckDigits(number []byte) bool {
	c1, ok := checkDigit(firstCheckWeights, number)
	if !ok {
		return false
	}
	number[9] = c1
	c2, ok := checkDigit(secondCheckWeights, number)
	if !ok {
		return false
	}
	number[10] = c2
	return true
}
