package norway

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/base"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"
	"github.com/olgasafonova/norwegian-id-mcp-server/metrics"
)

// DefaultPageSize is used when an enumeration request gives no limit
const DefaultPageSize = 100

// MCP Tool wrapper methods
// These methods wrap the service methods with Args/Result types for MCP integration.

// ValidateMCP is the MCP wrapper for Validate
func (s *Service) ValidateMCP(_ context.Context, args ValidateArgs) (ValidateResult, error) {
	kind, err := ParseOptionalKind(args.Kind)
	if err != nil {
		return ValidateResult{}, err
	}
	r, cached := s.Validate(args.Number, kind)
	return ValidateResult{ValidationResult: r, Cached: cached}, nil
}

// DetectMCP is the MCP wrapper for kind detection
func (s *Service) DetectMCP(_ context.Context, args DetectArgs) (DetectResult, error) {
	tried := make([]string, 0, len(nin.Kinds()))
	for _, k := range nin.Kinds() {
		tried = append(tried, k.String())
	}

	r, _ := s.Validate(args.Number, 0)
	if !r.Valid {
		return DetectResult{Tried: tried, Message: r.Message}, nil
	}
	return DetectResult{Found: true, Identifier: &r, Tried: tried}, nil
}

// GenerateMCP is the MCP wrapper for unrestricted random generation
func (s *Service) GenerateMCP(_ context.Context, args GenerateArgs) (GenerateResult, error) {
	kind, err := ParseKind(args.Kind)
	if err != nil {
		return GenerateResult{}, err
	}
	count := args.Count
	if count == 0 {
		count = 1
	}
	if err := ValidateCount(count, s.MaxMany); err != nil {
		return GenerateResult{}, err
	}

	ids := s.Generator.QuickManyRandom(kind, count)
	metrics.RecordGeneration(kind.String(), "random", metrics.OutcomeFound, len(ids))

	summaries := make([]IdentifierSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, summarize(id))
	}
	return GenerateResult{
		Kind:        kind.String(),
		Identifiers: summaries,
		Count:       len(summaries),
	}, nil
}

// GeneratePatternMCP is the MCP wrapper for pattern-guided generation
func (s *Service) GeneratePatternMCP(_ context.Context, args GeneratePatternArgs) (GeneratePatternResult, error) {
	kind, err := ParseKind(args.Kind)
	if err != nil {
		return GeneratePatternResult{}, err
	}

	id, found, err := s.Generator.OneRandomPattern(kind, args.Pattern)
	if err != nil {
		metrics.RecordGeneration(kind.String(), "pattern", metrics.OutcomeRejected, 0)
		return GeneratePatternResult{}, fmt.Errorf("invalid pattern: %w", err)
	}

	result := GeneratePatternResult{
		Found:    found,
		Pattern:  args.Pattern,
		MaxTries: s.Generator.MaxTries(),
	}
	if !found {
		metrics.RecordGeneration(kind.String(), "pattern", metrics.OutcomeExhausted, 0)
		s.Logger.Warn("Pattern generation exhausted",
			"kind", kind.String(),
			"pattern", args.Pattern,
			"max_tries", s.Generator.MaxTries(),
		)
		result.Message = fmt.Sprintf("no valid %s matched the pattern in %d tries", kind.Name(), s.Generator.MaxTries())
		return result, nil
	}

	metrics.RecordGeneration(kind.String(), "pattern", metrics.OutcomeFound, 1)
	summary := summarize(id)
	result.Identifier = &summary
	return result, nil
}

// GenerateInRangeMCP is the MCP wrapper for date-range generation
func (s *Service) GenerateInRangeMCP(_ context.Context, args GenerateInRangeArgs) (GenerateInRangeResult, error) {
	kind, err := ParseDateBasedKind(args.Kind)
	if err != nil {
		return GenerateInRangeResult{}, err
	}
	from, err := ParseDate(args.From)
	if err != nil {
		return GenerateInRangeResult{}, fmt.Errorf("from: %w", err)
	}
	to, err := ParseDate(args.To)
	if err != nil {
		return GenerateInRangeResult{}, fmt.Errorf("to: %w", err)
	}
	gender, err := nin.ParseGender(args.Gender)
	if err != nil {
		return GenerateInRangeResult{}, err
	}

	id, found, err := s.Generator.OneRandomInRange(kind, from, to, gender)
	if err != nil {
		metrics.RecordGeneration(kind.String(), "range", metrics.OutcomeRejected, 0)
		return GenerateInRangeResult{}, fmt.Errorf("invalid date range: %w", err)
	}

	result := GenerateInRangeResult{
		Found:  found,
		From:   from.Format(time.DateOnly),
		To:     to.Format(time.DateOnly),
		Gender: gender.String(),
	}
	if !found {
		metrics.RecordGeneration(kind.String(), "range", metrics.OutcomeExhausted, 0)
		s.Logger.Warn("Date range generation exhausted",
			"kind", kind.String(),
			"from", result.From,
			"to", result.To,
			"gender", result.Gender,
			"max_tries", s.Generator.MaxTries(),
		)
		result.Message = fmt.Sprintf("no valid %s found in the range within %d tries", kind.Name(), s.Generator.MaxTries())
		return result, nil
	}

	metrics.RecordGeneration(kind.String(), "range", metrics.OutcomeFound, 1)
	summary := summarize(id)
	result.Identifier = &summary
	return result, nil
}

// GenerateManyMCP is the MCP wrapper for distinct random sampling
func (s *Service) GenerateManyMCP(ctx context.Context, args GenerateManyArgs) (GenerateManyResult, error) {
	kind, err := ParseKind(args.Kind)
	if err != nil {
		return GenerateManyResult{}, err
	}
	if err := ValidateCount(args.Count, s.MaxMany); err != nil {
		return GenerateManyResult{}, err
	}

	ids, err := s.Sample(ctx, kind, args.Count)
	if err != nil {
		return GenerateManyResult{}, err
	}
	metrics.RecordGeneration(kind.String(), "many", metrics.OutcomeFound, len(ids))

	return GenerateManyResult{
		Kind:      kind.String(),
		Numbers:   numbers(ids),
		Count:     len(ids),
		Requested: args.Count,
		Possible:  nin.PossibleVariations(kind),
	}, nil
}

// EnumerateMCP is the MCP wrapper for paging through all legal identifiers
func (s *Service) EnumerateMCP(ctx context.Context, args EnumerateArgs) (EnumerateResult, error) {
	kind, err := ParseKind(args.Kind)
	if err != nil {
		return EnumerateResult{}, err
	}
	limit := args.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}
	if err := ValidatePage(args.Offset, limit, base.MaxEnumerationPage); err != nil {
		return EnumerateResult{}, err
	}

	total := nin.PossibleVariations(kind)
	result := EnumerateResult{
		Kind:    kind.String(),
		Numbers: []string{},
		Offset:  args.Offset,
		Total:   total,
	}
	if args.Offset >= total {
		return result, nil
	}

	ids, err := s.Page(ctx, kind, args.Offset, limit)
	if err != nil {
		return EnumerateResult{}, err
	}
	result.Numbers = numbers(ids)
	if next := args.Offset + len(ids); next < total {
		result.HasMore = true
		result.NextOffset = next
	}
	return result, nil
}

// VariationCountMCP is the MCP wrapper for domain size statistics. Verified
// counts for several kinds are walked in parallel, bounded by the limiter.
func (s *Service) VariationCountMCP(ctx context.Context, args VariationCountArgs) (VariationCountResult, error) {
	kind, err := ParseOptionalKind(args.Kind)
	if err != nil {
		return VariationCountResult{}, err
	}
	kinds := nin.Kinds()
	if kind != 0 {
		kinds = []nin.Kind{kind}
	}

	counts := make([]VariationCount, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			count, walked, err := s.CountVariations(gctx, k, args.Verify)
			if err != nil {
				return err
			}
			counts[i] = VariationCount{
				Kind:     k.String(),
				KindName: k.Name(),
				Count:    count,
				Verified: args.Verify && walked == count,
				Walked:   walked,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return VariationCountResult{}, err
	}
	return VariationCountResult{Counts: counts}, nil
}

// ResolveYearMCP is the MCP wrapper for century resolution
func (s *Service) ResolveYearMCP(_ context.Context, args ResolveYearArgs) (ResolveYearResult, error) {
	if err := ValidateTwoDigitYear(args.TwoDigitYear); err != nil {
		return ResolveYearResult{}, err
	}
	if err := ValidateIndividualNumber(args.IndividualNumber); err != nil {
		return ResolveYearResult{}, err
	}

	year, ok := nin.ResolveYear(args.TwoDigitYear, args.IndividualNumber)
	if !ok {
		return ResolveYearResult{
			Message: fmt.Sprintf("individual number %03d is not used for year %02d in any century",
				args.IndividualNumber, args.TwoDigitYear),
		}, nil
	}
	return ResolveYearResult{Resolved: true, Year: year}, nil
}

// IndividualNumbersMCP is the MCP wrapper for listing legal individual numbers
func (s *Service) IndividualNumbersMCP(_ context.Context, args IndividualNumbersArgs) (IndividualNumbersResult, error) {
	gender, err := nin.ParseGender(args.Gender)
	if err != nil {
		return IndividualNumbersResult{}, err
	}
	legal, err := nin.LegalIndividualNumbers(args.Year, gender)
	if err != nil {
		return IndividualNumbersResult{}, err
	}

	step := 1
	if gender != nin.AnyGender {
		step = 2
	}
	return IndividualNumbersResult{
		Year:   args.Year,
		Gender: gender.String(),
		Count:  len(legal),
		Ranges: compressRanges(legal, step),
	}, nil
}

// summarize describes a generated identifier
func summarize(id nin.Identifier) IdentifierSummary {
	r := registry.Describe(id)
	return IdentifierSummary{
		Number:           r.Number,
		FormattedNumber:  r.FormattedNumber,
		BirthDate:        r.BirthDate,
		Gender:           r.Gender,
		IndividualNumber: r.IndividualNumber,
	}
}

func numbers(ids []nin.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Number()
	}
	return out
}

// compressRanges folds ascending values into runs with the given step.
func compressRanges(values []int, step int) []NumberRange {
	var ranges []NumberRange
	for _, v := range values {
		if n := len(ranges); n > 0 && ranges[n-1].To+step == v {
			ranges[n-1].To = v
			continue
		}
		ranges = append(ranges, NumberRange{From: v, To: v, Step: step})
	}
	return ranges
}
