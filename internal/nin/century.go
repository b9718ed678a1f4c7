package nin

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
)

// Gender filters individual numbers by parity: even numbers are female,
// odd numbers are male.
type Gender int

const (
	AnyGender Gender = iota
	Female
	Male
)

func (g Gender) String() string {
	switch g {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return "any"
	}
}

// ParseGender accepts "female"/"male"/"any" or their first letter. The
// empty string means any.
func ParseGender(s string) (Gender, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return AnyGender, nil
	}
	switch norm[0] {
	case 'a':
		return AnyGender, nil
	case 'f', 'k': // kvinne
		return Female, nil
	case 'm':
		return Male, nil
	}
	return AnyGender, fmt.Errorf("unknown gender %q: use female, male or any", s)
}

// Representable years for date-based identifiers.
const (
	FirstYear = 1854
	LastYear  = 2039
)

// FirstPossible and LastPossible bound the birth dates a date-based
// identifier can encode.
var (
	FirstPossible = time.Date(FirstYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	LastPossible  = time.Date(LastYear, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// band is one record of the year/individual-number range table.
type band struct {
	fromYear, toYear             int
	fromIndividual, toIndividual int
}

// bands partitions the legal (year, individual number) plane. The two
// 1940-1999 records overlap in years but not in individual numbers.
var bands = []band{
	{fromYear: 1854, toYear: 1899, fromIndividual: 500, toIndividual: 749},
	{fromYear: 1900, toYear: 1999, fromIndividual: 0, toIndividual: 499},
	{fromYear: 1940, toYear: 1999, fromIndividual: 900, toIndividual: 999},
	{fromYear: 2000, toYear: 2039, fromIndividual: 500, toIndividual: 999},
}

// periods are the year spans within which the set of legal individual
// numbers is constant.
var periods = [...]struct{ fromYear, toYear int }{
	{1854, 1899},
	{1900, 1939},
	{1940, 1999},
	{2000, 2039},
}

// legalNumbers[period][gender] lists legal individual numbers in ascending order.
var legalNumbers [len(periods)][3][]int

func init() {
	for p, span := range periods {
		var all, female, male []int
		for _, b := range bands {
			if span.fromYear < b.fromYear || span.toYear > b.toYear {
				continue
			}
			for n := b.fromIndividual; n <= b.toIndividual; n++ {
				all = append(all, n)
				if n%2 == 0 {
					female = append(female, n)
				} else {
					male = append(male, n)
				}
			}
		}
		legalNumbers[p][AnyGender] = all
		legalNumbers[p][Female] = female
		legalNumbers[p][Male] = male
	}
}

func periodOf(year int) (int, error) {
	for i, span := range periods {
		if year >= span.fromYear && year <= span.toYear {
			return i, nil
		}
	}
	return 0, apierrors.NewValidationError(apierrors.BadYear, "", "",
		fmt.Sprintf("%d is not a legal year in the range %d to %d", year, FirstYear, LastYear))
}

func legalNumbersFor(year int, gender Gender) ([]int, error) {
	p, err := periodOf(year)
	if err != nil {
		return nil, err
	}
	if gender < AnyGender || gender > Male {
		gender = AnyGender
	}
	return legalNumbers[p][gender], nil
}

// LegalIndividualNumbers returns, in ascending order, the individual numbers
// that may be combined with a birth year, filtered by gender. Years outside
// [FirstYear, LastYear] fail with BadYear.
func LegalIndividualNumbers(year int, gender Gender) ([]int, error) {
	numbers, err := legalNumbersFor(year, gender)
	if err != nil {
		return nil, err
	}
	return slices.Clone(numbers), nil
}

// ResolveYear maps a two-digit year and an individual number to a four-digit
// year. The rules are applied in order; false means the combination is
// illegal and must not be retried.
func ResolveYear(twoDigitYear, individual int) (int, bool) {
	switch {
	case individual <= 499:
		return 1900 + twoDigitYear, true
	case individual <= 749 && twoDigitYear >= 54:
		return 1800 + twoDigitYear, true
	case individual >= 900 && twoDigitYear >= 40:
		return 1900 + twoDigitYear, true
	case twoDigitYear <= 39:
		return 2000 + twoDigitYear, true
	}
	return 0, false
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
