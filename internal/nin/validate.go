package nin

import (
	"fmt"
	"time"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
)

// Validate checks text against the rules of kind and returns the first
// violated rule as a *errors.ValidationError. Rules run in a fixed order:
// presence, length, digits, structure (first digit, or date and century),
// then check digits.
func Validate(kind Kind, text string) (Identifier, error) {
	var err error
	switch {
	case kind == OrganizationNumber:
		err = validateOrganizationNumber(text)
	case kind.IsDateBased():
		err = validateDateBased(kind, text)
	default:
		return Identifier{}, fmt.Errorf("unknown identifier kind %d", int(kind))
	}
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{kind: kind, number: text}, nil
}

// Create is Validate without the diagnosis: any failure yields false.
func Create(kind Kind, text string) (Identifier, bool) {
	id, err := Validate(kind, text)
	if err != nil {
		return Identifier{}, false
	}
	return id, true
}

// Detect tries each public kind in the order organization number, birth
// number, D-number and returns the first that accepts text.
func Detect(text string) (Identifier, bool) {
	for _, kind := range Kinds() {
		if id, ok := Create(kind, text); ok {
			return id, true
		}
	}
	return Identifier{}, false
}

// IsValid reports whether text is a valid identifier of any public kind.
func IsValid(text string) bool {
	_, ok := Detect(text)
	return ok
}

// IsValidOrganizationNumber reports whether text is a valid organization number.
func IsValidOrganizationNumber(text string) bool {
	_, ok := Create(OrganizationNumber, text)
	return ok
}

// IsValidBirthNumber reports whether text is a valid birth number.
func IsValidBirthNumber(text string) bool {
	_, ok := Create(BirthNumber, text)
	return ok
}

// IsValidDNumber reports whether text is a valid D-number.
func IsValidDNumber(text string) bool {
	_, ok := Create(DNumber, text)
	return ok
}

func validateOrganizationNumber(number string) error {
	kind := OrganizationNumber
	if err := assertNotEmpty(kind, number); err != nil {
		return err
	}
	if err := assertLength(kind, number, 9); err != nil {
		return err
	}
	if err := assertDigitsOnly(kind, number); err != nil {
		return err
	}
	if number[0] != '8' && number[0] != '9' {
		return apierrors.NewValidationError(apierrors.BadFirstDigit, kind.Name(), number,
			"does not start with 8 or 9")
	}
	return assertCheckDigit(kind, organizationWeights, number[:8], number[8])
}

func validateDateBased(kind Kind, number string) error {
	if err := assertNotEmpty(kind, number); err != nil {
		return err
	}
	if err := assertLength(kind, number, 11); err != nil {
		return err
	}
	if err := assertDigitsOnly(kind, number); err != nil {
		return err
	}
	if err := assertDayAndMonth(kind, number); err != nil {
		return err
	}
	year, ok := ResolveYear(atoi(number[4:6]), atoi(number[6:9]))
	if !ok {
		return apierrors.NewValidationError(apierrors.BadYearIndividualCombination, kind.Name(), number,
			"does not have a valid combination of year and individual number")
	}
	if err := assertDateInYear(kind, number, year); err != nil {
		return err
	}
	if err := assertCheckDigit(kind, firstCheckWeights, number[:9], number[9]); err != nil {
		return err
	}
	return assertCheckDigit(kind, secondCheckWeights, number[:10], number[10])
}

// assertDayAndMonth accepts the day/month if it exists in 19yy or 20yy.
// The exact century is checked later, once the individual number has
// resolved it.
func assertDayAndMonth(kind Kind, number string) error {
	month := atoi(number[2:4])
	day := atoi(number[0:2]) - kind.dayOffset()
	yy := atoi(number[4:6])
	if month >= 1 && month <= 12 && day >= 1 &&
		(day <= daysIn(1900+yy, time.Month(month)) || day <= daysIn(2000+yy, time.Month(month))) {
		return nil
	}
	return apierrors.NewValidationError(apierrors.BadDate, kind.Name(), number[:6],
		"is not a valid date in the form DDMMYY"+offsetNote(kind))
}

func assertDateInYear(kind Kind, number string, year int) error {
	month := atoi(number[2:4])
	day := atoi(number[0:2]) - kind.dayOffset()
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return apierrors.NewValidationError(apierrors.BadDate, kind.Name(), number[:4],
			fmt.Sprintf("is not a valid day and month for the year %d%s", year, offsetNote(kind)))
	}
	return nil
}

func offsetNote(kind Kind) string {
	if offset := kind.dayOffset(); offset > 0 {
		return fmt.Sprintf(" (day increased by %d)", offset)
	}
	return ""
}
