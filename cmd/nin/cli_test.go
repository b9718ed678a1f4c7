package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

// runCLI runs the command line with a seeded generator and returns the exit
// code and the lines written to stdout.
func runCLI(t *testing.T, stdin string, args ...string) (int, []string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, nin.NewGenerator(nin.WithSeed(7)))
	out := strings.TrimRight(stdout.String(), "\n")
	if out == "" {
		return code, nil
	}
	return code, strings.Split(out, "\n")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantLine string
	}{
		{"organization number", []string{"-q", "validate", "o", "987654325"}, 0, ""},
		{"any kind detects organization number", []string{"validate", "987654325"}, 0, "0: Organisasjonsnummer"},
		{"any kind detects birth number", []string{"validate", "01020398767"}, 0, "0: Fødselsnummer"},
		{"any kind detects D-number", []string{"validate", "41020398750"}, 0, "0: D-nummer"},
		{"explicit kind prints Ok", []string{"validate", "birth", "01020398767"}, 0, "0: Ok"},
		{"bad check digit", []string{"validate", "org", "987654321"}, 7, "7: "},
		{"bad length", []string{"validate", "b", "0102039876"}, 2, "2: "},
		{"no kind matches", []string{"validate", "12345"}, 11, "11: "},
		{"alias", []string{"v", "d", "41020398750"}, 0, "0: Ok"},
		{"text that is no kind is validated", []string{"validate", "abc"}, 11, "11: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, lines := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantLine == "" {
				if len(lines) != 0 {
					t.Errorf("quiet run printed %q", lines)
				}
				return
			}
			if len(lines) != 2 {
				t.Fatalf("expected heading and result, got %q", lines)
			}
			if !strings.HasPrefix(lines[0], "Norwegian identity numbers") {
				t.Errorf("heading = %q", lines[0])
			}
			if tt.wantLine == lines[1] || (strings.HasSuffix(tt.wantLine, " ") && strings.HasPrefix(lines[1], tt.wantLine)) {
				return
			}
			t.Errorf("result = %q, want %q", lines[1], tt.wantLine)
		})
	}
}

func TestValidateRepeat(t *testing.T) {
	stdin := "987654325\n12345\n\n01020398767\n"

	code, lines := runCLI(t, stdin, "--quiet", "validate", "--repeat")

	if code != 11 {
		t.Errorf("exit code = %d, want the last result code 11", code)
	}
	if len(lines) != 2 {
		t.Fatalf("expected one line per number before the empty line, got %q", lines)
	}
	if lines[0] != "0: Organisasjonsnummer" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "11: ") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestValidateRepeatWithKind(t *testing.T) {
	code, lines := runCLI(t, "01020398767\n41020398750\n", "-q", "validate", "b", "-r")

	if code == 0 {
		t.Error("a D-number is not a birth number")
	}
	if len(lines) != 2 || lines[0] != "0: Ok" {
		t.Errorf("lines = %q", lines)
	}
}

func TestValidateRepeatEmptyInput(t *testing.T) {
	code, lines := runCLI(t, "", "-q", "validate", "--repeat")
	if code != 0 || len(lines) != 0 {
		t.Errorf("code = %d, lines = %q", code, lines)
	}
}

func TestGenerateOne(t *testing.T) {
	for _, kind := range []string{"org", "birth", "d"} {
		t.Run(kind, func(t *testing.T) {
			code, lines := runCLI(t, "", "generate", kind)
			if code != 0 {
				t.Fatalf("exit code = %d", code)
			}
			if len(lines) != 3 {
				t.Fatalf("expected heading, number and result, got %q", lines)
			}
			if !nin.IsValid(lines[1]) {
				t.Errorf("generated %q is not valid", lines[1])
			}
			if lines[2] != "0: Ok" {
				t.Errorf("result = %q", lines[2])
			}
		})
	}
}

func TestGeneratePattern(t *testing.T) {
	code, lines := runCLI(t, "", "-q", "generate", "b", "150185?????")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if len(lines) != 1 {
		t.Fatalf("quiet output should be the number only, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "150185") || !nin.IsValidBirthNumber(lines[0]) {
		t.Errorf("generated %q", lines[0])
	}
}

func TestGenerateInRange(t *testing.T) {
	code, lines := runCLI(t, "", "-q", "g", "d", "01.01.1990", "31.12.1999", "female")

	if code != 0 || len(lines) != 1 {
		t.Fatalf("code = %d, lines = %q", code, lines)
	}
	id, ok := nin.Create(nin.DNumber, lines[0])
	if !ok {
		t.Fatalf("generated %q is not a D-number", lines[0])
	}
	if id.Gender() != nin.Female {
		t.Errorf("gender = %v, want female", id.Gender())
	}
	born, _ := id.BirthDate()
	if born.Before(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) || born.After(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("birth date %v outside range", born)
	}
}

func TestGenerateMany(t *testing.T) {
	if testing.Short() {
		t.Skip("walks every organization number")
	}

	code, lines := runCLI(t, "", "-q", "generate", "o", "3")

	if code != 0 || len(lines) != 3 {
		t.Fatalf("code = %d, lines = %q", code, lines)
	}
	seen := make(map[string]bool)
	for _, line := range lines {
		if !nin.IsValidOrganizationNumber(line) {
			t.Errorf("%q is not valid", line)
		}
		if seen[line] {
			t.Errorf("%q drawn twice", line)
		}
		seen[line] = true
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"pattern too short", []string{"generate", "o", "12?"}, 9},
		{"pattern with bad first digit", []string{"generate", "o", "1????????"}, 10},
		{"date before range", []string{"generate", "b", "01.01.1800", "02.01.1800"}, 5},
		{"dates reversed", []string{"generate", "b", "02.01.2000", "01.01.2000"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, lines := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if len(lines) == 0 || !strings.HasPrefix(lines[len(lines)-1], fmt.Sprintf("%d: ", tt.wantCode)) {
				t.Errorf("lines = %q", lines)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"frobnicate"}},
		{"validate without number", []string{"validate"}},
		{"validate with kind only", []string{"validate", "o"}},
		{"validate with unknown kind", []string{"validate", "x", "123"}},
		{"validate with number and repeat", []string{"validate", "123", "--repeat"}},
		{"generate without kind", []string{"generate"}},
		{"generate unknown kind", []string{"generate", "passport"}},
		{"generate from without to", []string{"generate", "b", "01.01.1990"}},
		{"generate bad gender", []string{"generate", "b", "01.01.1990", "31.12.1990", "x"}},
		{"generate organization number by date", []string{"generate", "o", "01.01.1990", "31.12.1990"}},
		{"generate zero count", []string{"generate", "o", "0"}},
		{"generate junk", []string{"generate", "o", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(""), &stdout, &stderr, nin.NewGenerator(nin.WithSeed(1)))
			if code != syntaxCode {
				t.Errorf("exit code = %d, want %d", code, syntaxCode)
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Errorf("stderr lacks usage: %q", stderr.String())
			}
		})
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		r    result
		want string
	}{
		{result{}, "0: Ok"},
		{result{Code: 11, Message: "No ID number found."}, "11: No ID number found."},
		{noMatch, "11: No ID number found."},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsPattern(t *testing.T) {
	tests := map[string]bool{
		"9????????": true,
		"?":         true,
		"12?45":     true,
		"123":       false,
		"":          false,
		"12a?":      false,
		"01.01.?":   false,
	}
	for in, want := range tests {
		if got := isPattern(in); got != want {
			t.Errorf("isPattern(%q) = %v, want %v", in, got, want)
		}
	}
}
