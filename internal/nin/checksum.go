package nin

import (
	"fmt"
	"unicode/utf8"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
)

// Wildcard marks a pattern position to be filled randomly.
const Wildcard = '?'

// MOD11 weight vectors.
var (
	organizationWeights = []int{3, 2, 7, 6, 5, 4, 3, 2}
	firstCheckWeights   = []int{3, 7, 6, 1, 8, 9, 4, 5, 2}
	secondCheckWeights  = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

// checkDigit computes the MOD11 check digit for the leading len(weights)
// characters of digits. The second result is false when no legal check digit
// exists: the remainder calls for 10, or a character is not an ASCII digit.
func checkDigit[T ~string | ~[]byte](weights []int, digits T) (byte, bool) {
	if len(digits) < len(weights) {
		return 0, false
	}
	sum := 0
	for i, w := range weights {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		sum += int(c-'0') * w
	}
	rest := 11 - sum%11
	if rest == 11 {
		rest = 0
	}
	if rest == 10 {
		return 0, false
	}
	return byte('0' + rest), true
}

func assertNotEmpty(kind Kind, s string) error {
	if s == "" {
		return apierrors.NewValidationError(apierrors.NullOrEmpty, kind.Name(), "", "is missing")
	}
	return nil
}

// assertLength counts characters, not bytes, so that "12Ø45678901" is
// reported as bad characters rather than bad length.
func assertLength(kind Kind, s string, n int) error {
	if utf8.RuneCountInString(s) != n {
		return apierrors.NewValidationError(apierrors.BadLength, kind.Name(), s,
			fmt.Sprintf("does not consist of exactly %d characters", n))
	}
	return nil
}

func assertDigitsOnly(kind Kind, s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return apierrors.NewValidationError(apierrors.BadCharacters, kind.Name(), s,
				"does not consist of digits only")
		}
	}
	return nil
}

func assertCheckDigit(kind Kind, weights []int, number string, expected byte) error {
	got, ok := checkDigit(weights, number)
	if !ok || got != expected {
		return apierrors.NewValidationError(apierrors.BadCheckDigit, kind.Name(), number,
			fmt.Sprintf("has an invalid check digit '%c'", expected))
	}
	return nil
}

// ValidatePattern checks that pattern has exactly n characters, each a digit
// or Wildcard, and that at least one is a Wildcard.
func ValidatePattern(pattern string, n int) error {
	if pattern == "" {
		return apierrors.NewValidationError(apierrors.PatternNullOrEmpty, "", "", "pattern is missing")
	}
	if utf8.RuneCountInString(pattern) != n {
		return apierrors.NewValidationError(apierrors.BadPatternLength, "Pattern", pattern,
			fmt.Sprintf("must consist of exactly %d characters", n))
	}
	wildcards := 0
	for _, r := range pattern {
		switch {
		case r == Wildcard:
			wildcards++
		case r >= '0' && r <= '9':
		default:
			return apierrors.NewValidationError(apierrors.BadPattern, "Pattern", pattern,
				fmt.Sprintf("may only contain digits 0-9 and wildcards (%c)", Wildcard))
		}
	}
	if wildcards == 0 {
		return apierrors.NewValidationError(apierrors.BadPattern, "Pattern", pattern,
			fmt.Sprintf("contains no wildcards (%c)", Wildcard))
	}
	return nil
}
