package nin

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"o", OrganizationNumber, false},
		{"org", OrganizationNumber, false},
		{"organization_number", OrganizationNumber, false},
		{"Organisasjonsnummer", OrganizationNumber, false},
		{"b", BirthNumber, false},
		{"birth_number", BirthNumber, false},
		{"fødselsnummer", BirthNumber, false},
		{"D", DNumber, false},
		{"d_number", DNumber, false},
		{"  dnumber ", DNumber, false},
		{"", 0, true},
		{"synthetic", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
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

func TestKindProperties(t *testing.T) {
	tests := []struct {
		kind      Kind
		length    int
		dateBased bool
		offset    int
		str       string
	}{
		{OrganizationNumber, 9, false, 0, "organization_number"},
		{BirthNumber, 11, true, 0, "birth_number"},
		{DNumber, 11, true, 40, "d_number"},
		{syntheticNumber, 11, true, 80, "synthetic_number"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.kind.Length() != tt.length {
				t.Errorf("Length() = %d, want %d", tt.kind.Length(), tt.length)
			}
			if tt.kind.IsDateBased() != tt.dateBased {
				t.Errorf("IsDateBased() = %v", tt.kind.IsDateBased())
			}
			if tt.kind.dayOffset() != tt.offset {
				t.Errorf("dayOffset() = %d, want %d", tt.kind.dayOffset(), tt.offset)
			}
			if tt.kind.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.str)
			}
		})
	}
}

func TestKindsOrder(t *testing.T) {
	kinds := Kinds()
	want := []Kind{OrganizationNumber, BirthNumber, DNumber}
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Kinds()[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}
