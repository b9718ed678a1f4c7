package norway

import (
	"testing"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    nin.Kind
		wantErr bool
	}{
		{"machine name", "organization_number", nin.OrganizationNumber, false},
		{"abbreviation", "b", nin.BirthNumber, false},
		{"norwegian name", "D-nummer", nin.DNumber, false},
		{"empty", "", 0, true},
		{"unknown", "passport", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOptionalKind(t *testing.T) {
	k, err := ParseOptionalKind("  ")
	if err != nil || k != 0 {
		t.Errorf("ParseOptionalKind(blank) = %v, %v", k, err)
	}
	k, err = ParseOptionalKind("org")
	if err != nil || k != nin.OrganizationNumber {
		t.Errorf("ParseOptionalKind(org) = %v, %v", k, err)
	}
}

func TestParseDateBasedKind(t *testing.T) {
	if _, err := ParseDateBasedKind("org"); err == nil {
		t.Error("organization numbers should be rejected")
	}
	k, err := ParseDateBasedKind("dnumber")
	if err != nil || k != nin.DNumber {
		t.Errorf("ParseDateBasedKind(dnumber) = %v, %v", k, err)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(1985, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"iso", "1985-01-15", false},
		{"norwegian", "15.01.1985", false},
		{"padded", "  1985-01-15 ", false},
		{"empty", "", true},
		{"slashes", "15/01/1985", true},
		{"impossible day", "1985-02-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"valid count", 50, false},
		{"zero", 0, false},
		{"max count", 100, false},
		{"negative", -1, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCount(tt.input, 100)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name          string
		offset, limit int
		wantErr       bool
	}{
		{"first page", 0, 10, false},
		{"far offset", 26_000_000, 1000, false},
		{"negative offset", -1, 10, true},
		{"negative limit", 0, -5, true},
		{"limit too large", 0, 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePage(tt.offset, tt.limit, 1000)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePage(%d, %d) error = %v, wantErr %v", tt.offset, tt.limit, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTwoDigitYearAndIndividualNumber(t *testing.T) {
	for _, yy := range []int{0, 54, 99} {
		if err := ValidateTwoDigitYear(yy); err != nil {
			t.Errorf("ValidateTwoDigitYear(%d) = %v", yy, err)
		}
	}
	for _, yy := range []int{-1, 100} {
		if err := ValidateTwoDigitYear(yy); err == nil {
			t.Errorf("ValidateTwoDigitYear(%d) should fail", yy)
		}
	}
	for _, n := range []int{0, 499, 999} {
		if err := ValidateIndividualNumber(n); err != nil {
			t.Errorf("ValidateIndividualNumber(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, 1000} {
		if err := ValidateIndividualNumber(n); err == nil {
			t.Errorf("ValidateIndividualNumber(%d) should fail", n)
		}
	}
}
