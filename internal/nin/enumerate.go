package nin

import (
	"iter"
	"time"
)

// Sizes of the legal domains produced by All.
const (
	OrganizationNumberVariations = 18_181_818
	BirthNumberVariations        = 26_412_179
	DNumberVariations            = 26_412_204
)

// PossibleVariations returns the number of legal identifiers of kind, or 0
// for kinds that cannot be enumerated.
func PossibleVariations(kind Kind) int {
	switch kind {
	case OrganizationNumber:
		return OrganizationNumberVariations
	case BirthNumber:
		return BirthNumberVariations
	case DNumber:
		return DNumberVariations
	default:
		return 0
	}
}

// All yields every legal identifier of kind in a stable order. Organization
// numbers ascend numerically. Date-based kinds ascend by year, then day of
// year, then individual number. Combinations whose check digits hit the
// sentinel are skipped.
func All(kind Kind) iter.Seq[Identifier] {
	return func(yield func(Identifier) bool) {
		walk(kind, func(number []byte) bool {
			return yield(Identifier{kind: kind, number: string(number)})
		})
	}
}

// AllPossible materializes All. The result holds tens of millions of
// identifiers; prefer All or ManyRandom when memory matters.
func AllPossible(kind Kind) []Identifier {
	ids := make([]Identifier, 0, PossibleVariations(kind))
	for id := range All(kind) {
		ids = append(ids, id)
	}
	return ids
}

// ManyRandom draws count distinct identifiers, uniformly without
// replacement, from the legal domain of kind. When count reaches the size of
// the domain the full enumeration is returned in order. Otherwise a
// reservoir of count identifiers is kept while the domain is streamed, so
// memory stays proportional to count; the order of the sample is not
// meaningful.
func (g *Generator) ManyRandom(kind Kind, count int) []Identifier {
	total := PossibleVariations(kind)
	if count <= 0 || total == 0 {
		return nil
	}
	if count >= total {
		return AllPossible(kind)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sample := make([]Identifier, 0, count)
	seen := 0
	walk(kind, func(number []byte) bool {
		if seen < count {
			sample = append(sample, Identifier{kind: kind, number: string(number)})
		} else if j := g.rnd.IntN(seen + 1); j < count {
			sample[j] = Identifier{kind: kind, number: string(number)}
		}
		seen++
		return true
	})
	return sample
}

// walk streams the legal numbers of kind through yield, reusing one buffer.
// yield must copy the bytes it keeps and returns false to stop.
func walk(kind Kind, yield func(number []byte) bool) {
	switch kind {
	case OrganizationNumber:
		walkOrganizationNumbers(yield)
	case BirthNumber, DNumber:
		walkDateBased(kind, yield)
	}
}

func walkOrganizationNumbers(yield func([]byte) bool) {
	number := make([]byte, 9)
	for body := 80_000_000; body <= 99_999_999; body++ {
		putDigits(number[:8], body)
		check, ok := checkDigit(organizationWeights, number)
		if !ok {
			continue
		}
		number[8] = check
		if !yield(number) {
			return
		}
	}
}

func walkDateBased(kind Kind, yield func([]byte) bool) {
	number := make([]byte, 11)
	offset := kind.dayOffset()
	for year := FirstYear; year <= LastYear; year++ {
		numbers, err := legalNumbersFor(year, AnyGender)
		if err != nil {
			return
		}
		for day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == year; day = day.AddDate(0, 0, 1) {
			putDate(number, day, offset)
			for _, individual := range numbers {
				putDigits(number[6:9], individual)
				if !appendCheckDigits(number) {
					continue
				}
				if !yield(number) {
					return
				}
			}
		}
	}
}
