package nin

import (
	"testing"
)

func TestAllStartsInOrder(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{OrganizationNumber, []string{"800000009", "800000017", "800000025"}},
		{BirthNumber, []string{"01015450068", "01015450149", "01015450300"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var got []string
			for id := range All(tt.kind) {
				got = append(got, id.Number())
				if len(got) == len(tt.want) {
					break
				}
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("All(%s)[%d] = %q, want %q", tt.kind, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAllUnknownKindIsEmpty(t *testing.T) {
	for range All(syntheticNumber) {
		t.Fatal("synthetic kind yielded a value")
	}
	if ids := AllPossible(Kind(0)); len(ids) != 0 {
		t.Errorf("AllPossible(0) = %d identifiers", len(ids))
	}
}

func TestAllExhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the full domain")
	}
	tests := []struct {
		kind  Kind
		count int
		first string
		last  string
	}{
		{OrganizationNumber, OrganizationNumberVariations, "800000009", "999999999"},
		{BirthNumber, BirthNumberVariations, "01015450068", "31123999935"},
		{DNumber, DNumberVariations, "41015450051", "71123999929"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			count := 0
			var first, last string
			for id := range All(tt.kind) {
				if count == 0 {
					first = id.Number()
				}
				// Every thousandth value is revalidated to keep the walk fast.
				if count%1000 == 0 {
					if _, err := Validate(tt.kind, id.Number()); err != nil {
						t.Fatalf("element %d %q does not validate: %v", count, id.Number(), err)
					}
				}
				if tt.kind == OrganizationNumber && last != "" && id.Number() <= last {
					t.Fatalf("not ascending: %q after %q", id.Number(), last)
				}
				last = id.Number()
				count++
			}
			if count != tt.count {
				t.Errorf("count = %d, want %d", count, tt.count)
			}
			if count != PossibleVariations(tt.kind) {
				t.Errorf("count = %d, PossibleVariations = %d", count, PossibleVariations(tt.kind))
			}
			if first != tt.first || last != tt.last {
				t.Errorf("first/last = %q/%q, want %q/%q", first, last, tt.first, tt.last)
			}
		})
	}
}

func TestManyRandomSmall(t *testing.T) {
	g := NewGenerator(WithSeed(9))
	if got := g.ManyRandom(OrganizationNumber, 0); got != nil {
		t.Errorf("ManyRandom(0) = %v, want nil", got)
	}
	if got := g.ManyRandom(syntheticNumber, 10); got != nil {
		t.Errorf("ManyRandom(synthetic) = %v, want nil", got)
	}
}

func TestManyRandomDistinct(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the full domain")
	}
	g := NewGenerator(WithSeed(9))
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			ids := g.ManyRandom(kind, 500)
			if len(ids) != 500 {
				t.Fatalf("len = %d, want 500", len(ids))
			}
			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				if seen[id.Number()] {
					t.Fatalf("duplicate %q", id.Number())
				}
				seen[id.Number()] = true
				if _, err := Validate(kind, id.Number()); err != nil {
					t.Fatalf("%q does not validate: %v", id.Number(), err)
				}
			}
		})
	}
}

func TestManyRandomAboveTotalReturnsAll(t *testing.T) {
	if testing.Short() {
		t.Skip("materializes the full domain")
	}
	g := NewGenerator(WithSeed(9))
	ids := g.ManyRandom(OrganizationNumber, OrganizationNumberVariations+1)
	if len(ids) != OrganizationNumberVariations {
		t.Fatalf("len = %d, want %d", len(ids), OrganizationNumberVariations)
	}
	if ids[0].Number() != "800000009" || ids[len(ids)-1].Number() != "999999999" {
		t.Errorf("first/last = %q/%q", ids[0].Number(), ids[len(ids)-1].Number())
	}
}

func BenchmarkAllOrganizationNumbers(b *testing.B) {
	for i := 0; i < b.N; i++ {
		n := 0
		for range All(OrganizationNumber) {
			n++
		}
	}
}
