package nin

import "testing"

func TestSyntheticNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"day 1 plus 80", "81020398744", true},
		{"wrong check digit", "81020398745", false},
		{"birth number", "01020398767", false},
		{"D-number", "41020398750", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidSynthetic(tt.input); got != tt.want {
				t.Errorf("isValidSynthetic(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSyntheticNumberIsNotPublic(t *testing.T) {
	if IsValid("81020398744") {
		t.Error("synthetic numbers must not be accepted by IsValid")
	}
	for _, kind := range Kinds() {
		if kind == syntheticNumber {
			t.Error("synthetic kind must not be listed by Kinds")
		}
	}
	if PossibleVariations(syntheticNumber) != 0 {
		t.Error("synthetic kind must not be enumerable")
	}
}
