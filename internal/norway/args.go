package norway

import "github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"

// ValidateArgs contains parameters for validating a number
type ValidateArgs struct {
	Number string `json:"number" jsonschema:"required" jsonschema_description:"Number to validate. Spaces, hyphens and dots are ignored"`
	Kind   string `json:"kind,omitempty" jsonschema_description:"organization_number, birth_number or d_number (or o, b, d). Omit to detect the kind"`
}

// ValidateResult is the result of a validation
type ValidateResult struct {
	registry.ValidationResult
	Cached bool `json:"cached,omitempty"`
}

// DetectArgs contains parameters for detecting the kind of a number
type DetectArgs struct {
	Number string `json:"number" jsonschema:"required" jsonschema_description:"Number whose kind should be detected"`
}

// DetectResult is the result of kind detection
type DetectResult struct {
	Found      bool                       `json:"found"`
	Identifier *registry.ValidationResult `json:"identifier,omitempty"`
	Tried      []string                   `json:"tried"`
	Message    string                     `json:"message,omitempty"`
}

// IdentifierSummary is a compact description of a generated identifier
type IdentifierSummary struct {
	Number           string `json:"number"`
	FormattedNumber  string `json:"formatted_number"`
	BirthDate        string `json:"birth_date,omitempty"`
	Gender           string `json:"gender,omitempty"`
	IndividualNumber *int   `json:"individual_number,omitempty"`
}

// GenerateArgs contains parameters for unrestricted random generation
type GenerateArgs struct {
	Kind  string `json:"kind" jsonschema:"required" jsonschema_description:"organization_number, birth_number or d_number"`
	Count int    `json:"count,omitempty" jsonschema_description:"Number of identifiers (default 1). Duplicates are possible"`
}

// GenerateResult is the result of random generation
type GenerateResult struct {
	Kind        string              `json:"kind"`
	Identifiers []IdentifierSummary `json:"identifiers"`
	Count       int                 `json:"count"`
}

// GeneratePatternArgs contains parameters for pattern-guided generation
type GeneratePatternArgs struct {
	Kind    string `json:"kind" jsonschema:"required" jsonschema_description:"organization_number, birth_number or d_number"`
	Pattern string `json:"pattern" jsonschema:"required" jsonschema_description:"Digits and ? wildcards, full length (9 or 11). For D-numbers give the real day; 40 is added"`
}

// GeneratePatternResult is the result of pattern-guided generation
type GeneratePatternResult struct {
	Found      bool               `json:"found"`
	Identifier *IdentifierSummary `json:"identifier,omitempty"`
	Pattern    string             `json:"pattern"`
	MaxTries   int                `json:"max_tries"`
	Message    string             `json:"message,omitempty"`
}

// GenerateInRangeArgs contains parameters for date-range generation
type GenerateInRangeArgs struct {
	Kind   string `json:"kind" jsonschema:"required" jsonschema_description:"birth_number or d_number"`
	From   string `json:"from" jsonschema:"required" jsonschema_description:"Earliest birth date (YYYY-MM-DD or dd.mm.yyyy), not before 1854-01-01"`
	To     string `json:"to" jsonschema:"required" jsonschema_description:"Latest birth date (YYYY-MM-DD or dd.mm.yyyy), not after 2039-12-31"`
	Gender string `json:"gender,omitempty" jsonschema_description:"female, male or any (default any)"`
}

// GenerateInRangeResult is the result of date-range generation
type GenerateInRangeResult struct {
	Found      bool               `json:"found"`
	Identifier *IdentifierSummary `json:"identifier,omitempty"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Gender     string             `json:"gender"`
	Message    string             `json:"message,omitempty"`
}

// GenerateManyArgs contains parameters for distinct random sampling
type GenerateManyArgs struct {
	Kind  string `json:"kind" jsonschema:"required" jsonschema_description:"organization_number, birth_number or d_number"`
	Count int    `json:"count" jsonschema:"required" jsonschema_description:"Number of distinct identifiers to draw"`
}

// GenerateManyResult is the result of distinct random sampling
type GenerateManyResult struct {
	Kind      string   `json:"kind"`
	Numbers   []string `json:"numbers"`
	Count     int      `json:"count"`
	Requested int      `json:"requested"`
	Possible  int      `json:"possible"`
}

// EnumerateArgs contains parameters for paging through all legal identifiers
type EnumerateArgs struct {
	Kind   string `json:"kind" jsonschema:"required" jsonschema_description:"organization_number, birth_number or d_number"`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Position in the ordered enumeration (0-indexed)"`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Numbers per page (default 100, max 1000)"`
}

// EnumerateResult is one page of the ordered enumeration
type EnumerateResult struct {
	Kind       string   `json:"kind"`
	Numbers    []string `json:"numbers"`
	Offset     int      `json:"offset"`
	Total      int      `json:"total"`
	HasMore    bool     `json:"has_more"`
	NextOffset int      `json:"next_offset,omitempty"`
}

// VariationCountArgs contains parameters for domain size statistics
type VariationCountArgs struct {
	Kind   string `json:"kind,omitempty" jsonschema_description:"Restrict to one kind. Omit for all kinds"`
	Verify bool   `json:"verify,omitempty" jsonschema_description:"Walk the full domain to confirm the count (slow, seconds per kind)"`
}

// VariationCountResult is the result of domain size statistics
type VariationCountResult struct {
	Counts []VariationCount `json:"counts"`
}

// VariationCount is the size of one kind's legal domain
type VariationCount struct {
	Kind     string `json:"kind"`
	KindName string `json:"kind_name"`
	Count    int    `json:"count"`
	Verified bool   `json:"verified,omitempty"`
	Walked   int    `json:"walked,omitempty"`
}

// ResolveYearArgs contains parameters for century resolution
type ResolveYearArgs struct {
	TwoDigitYear     int `json:"two_digit_year" jsonschema:"required" jsonschema_description:"YY digits of the birth date (0-99)"`
	IndividualNumber int `json:"individual_number" jsonschema:"required" jsonschema_description:"Digits 7-9 of the number (0-999)"`
}

// ResolveYearResult is the result of century resolution
type ResolveYearResult struct {
	Resolved bool   `json:"resolved"`
	Year     int    `json:"year,omitempty"`
	Message  string `json:"message,omitempty"`
}

// IndividualNumbersArgs contains parameters for listing legal individual numbers
type IndividualNumbersArgs struct {
	Year   int    `json:"year" jsonschema:"required" jsonschema_description:"Four-digit birth year (1854-2039)"`
	Gender string `json:"gender,omitempty" jsonschema_description:"female, male or any (default any)"`
}

// IndividualNumbersResult lists the legal individual numbers of a year
type IndividualNumbersResult struct {
	Year   int           `json:"year"`
	Gender string        `json:"gender"`
	Count  int           `json:"count"`
	Ranges []NumberRange `json:"ranges"`
}

// NumberRange is an arithmetic run of individual numbers
type NumberRange struct {
	From int `json:"from"`
	To   int `json:"to"`
	Step int `json:"step"`
}
