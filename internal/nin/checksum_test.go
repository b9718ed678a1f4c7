package nin

import (
	"testing"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		digits  string
		want    byte
		wantOK  bool
	}{
		{"organization number", organizationWeights, "98765432", '5', true},
		{"organization number with 8", organizationWeights, "80123456", '9', true},
		{"remainder 11 folds to 0", organizationWeights, "00000000", '0', true},
		{"first check digit", firstCheckWeights, "010203987", '6', true},
		{"second check digit", secondCheckWeights, "0102039876", '7', true},
		{"remainder 10 is sentinel", firstCheckWeights, "810203984", 0, false},
		{"non-digit is sentinel", organizationWeights, "9876543A", 0, false},
		{"too short", firstCheckWeights, "0102", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := checkDigit(tt.weights, tt.digits)
			if ok != tt.wantOK {
				t.Fatalf("checkDigit(%q) ok = %v, want %v", tt.digits, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("checkDigit(%q) = %c, want %c", tt.digits, got, tt.want)
			}
		})
	}
}

func TestCheckDigitBytes(t *testing.T) {
	got, ok := checkDigit(organizationWeights, []byte("987654320"))
	if !ok || got != '5' {
		t.Errorf("checkDigit([]byte) = %c, %v; want 5, true", got, ok)
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		n       int
		want    apierrors.Code
	}{
		{"empty", "", 11, apierrors.PatternNullOrEmpty},
		{"too short", "??????????", 11, apierrors.BadPatternLength},
		{"too long", "????????????", 11, apierrors.BadPatternLength},
		{"organization too short", "????????", 9, apierrors.BadPatternLength},
		{"organization too long", "??????????", 9, apierrors.BadPatternLength},
		{"letter", "C??????????", 11, apierrors.BadPattern},
		{"lowercase letter", "?d?????????", 11, apierrors.BadPattern},
		{"non-ASCII letter", "??Æ????????", 11, apierrors.BadPattern},
		{"lowercase non-ASCII", "???ø???????", 11, apierrors.BadPattern},
		{"hash", "????#??????", 11, apierrors.BadPattern},
		{"pipe", "?????|?????", 11, apierrors.BadPattern},
		{"no wildcard", "01234567890", 11, apierrors.BadPattern},
		{"organization no wildcard", "987654321", 9, apierrors.BadPattern},
		{"all wildcards", "???????????", 11, apierrors.OK},
		{"mixed", "31?????????", 11, apierrors.OK},
		{"organization mixed", "?1234567?", 9, apierrors.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.pattern, tt.n)
			if got := apierrors.CodeOf(err); got != tt.want {
				t.Errorf("ValidatePattern(%q, %d) code = %v, want %v (err: %v)", tt.pattern, tt.n, got, tt.want, err)
			}
		})
	}
}
