package tools

import "slices"

var (
	allKinds       = []string{"organization_number", "birth_number", "d_number"}
	dateBasedKinds = []string{"birth_number", "d_number"}
)

// AllTools contains all tool specifications for the Norwegian ID MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// VALIDATION TOOLS
	// ==========================================================================
	{
		Name:     "nin_validate",
		Method:   "Validate",
		Title:    "Validate Norwegian Number",
		Category: "validation",
		Kinds:    allKinds,
		Description: `Check whether a Norwegian organization number, birth number (fødselsnummer) or D-number is valid.

USE WHEN: User asks "is 987654325 a valid org number", "check this fødselsnummer", "why is this D-number rejected".

NOT FOR: Finding out which kind a number is when you only need the kind (use nin_detect). Creating test numbers (use nin_generate).

PARAMETERS:
- number: The number (required). Spaces, hyphens and dots are ignored
- kind: organization_number, birth_number or d_number (optional; omitted = detect)

RETURNS: valid flag, result code and name (Ok, BadLength, BadDate, BadCheckDigit, ...), message naming the failed rule, and for persons the birth date, gender and individual number.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "nin_detect",
		Method:   "Detect",
		Title:    "Detect Number Kind",
		Category: "validation",
		Kinds:    allKinds,
		Description: `Identify which kind of Norwegian identifier a number is.

USE WHEN: User pastes a number and asks "what is this", "is this a person or a company number".

NOT FOR: Explaining why a number of a known kind is invalid (use nin_validate with kind).

PARAMETERS:
- number: The number (required)

RETURNS: found flag, the matching kind with decoded fields, and the kinds tried in order.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// GENERATION TOOLS
	// ==========================================================================
	{
		Name:     "nin_generate",
		Method:   "Generate",
		Title:    "Generate Random Numbers",
		Category: "generation",
		Kinds:    allKinds,
		Description: `Generate random valid identifiers for test data.

USE WHEN: User needs "a random org number", "5 test fødselsnummer", "some D-numbers for a fixture".

NOT FOR: Numbers with fixed digits (use nin_generate_pattern). Numbers for a birth date range or gender (use nin_generate_in_range). Guaranteed-distinct batches (use nin_generate_many).

PARAMETERS:
- kind: organization_number, birth_number or d_number (required)
- count: How many (default 1). Duplicates are possible

RETURNS: Numbers with formatted form and, for persons, birth date and gender.`,
		ReadOnly: true,
	},
	{
		Name:     "nin_generate_pattern",
		Method:   "GeneratePattern",
		Title:    "Generate From Pattern",
		Category: "generation",
		Kinds:    allKinds,
		Description: `Generate a valid identifier matching a pattern of digits and ? wildcards.

USE WHEN: User asks "an org number starting with 99", "a fødselsnummer born 15.01.85", "fill in the check digits for 01020398???".

NOT FOR: Date ranges (use nin_generate_in_range).

PARAMETERS:
- kind: organization_number, birth_number or d_number (required)
- pattern: Full length (9 or 11 characters), at least one ? (required). Organization numbers must start with 8, 9 or ?. For D-numbers write the real day; 40 is added

RETURNS: found flag and the identifier. found=false means no match within the retry budget, which is not an error.`,
		ReadOnly: true,
	},
	{
		Name:     "nin_generate_in_range",
		Method:   "GenerateInRange",
		Title:    "Generate For Birth Date Range",
		Category: "generation",
		Kinds:    dateBasedKinds,
		Description: `Generate a birth number or D-number for a person born within a date range, optionally of a given gender.

USE WHEN: User needs "a fødselsnummer for a woman born in the 1970s", "a D-number for someone born 2000-02-29".

NOT FOR: Organization numbers, which have no birth date.

PARAMETERS:
- kind: birth_number or d_number (required)
- from, to: Dates as YYYY-MM-DD or dd.mm.yyyy, inside 1854-01-01..2039-12-31 (required)
- gender: female, male or any (default any)

RETURNS: found flag and the identifier with decoded birth date and gender.`,
		ReadOnly: true,
	},
	{
		Name:     "nin_generate_many",
		Method:   "GenerateMany",
		Title:    "Generate Distinct Numbers",
		Category: "generation",
		Kinds:    allKinds,
		Description: `Draw distinct identifiers uniformly from every legal number of a kind.

USE WHEN: User needs "1000 unique org numbers", "a sample of distinct test persons".

NOT FOR: One or a few numbers (use nin_generate, which is much faster).

PARAMETERS:
- kind: organization_number, birth_number or d_number (required)
- count: How many distinct numbers (required, capped by the server)

RETURNS: The numbers, how many were returned and the size of the domain. Walks the whole domain and may take seconds.`,
		ReadOnly: true,
	},

	// ==========================================================================
	// ENUMERATION TOOLS
	// ==========================================================================
	{
		Name:     "nin_enumerate",
		Method:   "Enumerate",
		Title:    "List All Numbers",
		Category: "enumeration",
		Kinds:    allKinds,
		Description: `Page through every legal identifier of a kind in a stable order.

USE WHEN: User asks "what is the first valid org number", "list birth numbers in order", "show numbers 1000-1100".

NOT FOR: Random samples (use nin_generate_many).

PARAMETERS:
- kind: organization_number, birth_number or d_number (required)
- offset: Position to start at (default 0)
- limit: Page size (default 100, max 1000)

RETURNS: The numbers, total count, has_more and next_offset. Large offsets take longer.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "nin_variation_count",
		Method:   "VariationCount",
		Title:    "Count Legal Numbers",
		Category: "enumeration",
		Kinds:    allKinds,
		Description: `Report how many legal identifiers exist per kind.

USE WHEN: User asks "how many valid org numbers are there", "how many D-numbers are possible".

PARAMETERS:
- kind: Restrict to one kind (optional)
- verify: Walk the domains to confirm the counts (default false, slow)

RETURNS: Counts per kind, with verified=true when a walk confirmed them.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// REFERENCE TOOLS
	// ==========================================================================
	{
		Name:     "nin_resolve_year",
		Method:   "ResolveYear",
		Title:    "Resolve Birth Year",
		Category: "reference",
		Kinds:    dateBasedKinds,
		Description: `Resolve the four-digit birth year from the two-digit year and the individual number.

USE WHEN: User asks "which century is 010150 600xx", "is individual number 912 legal for year 39".

PARAMETERS:
- two_digit_year: YY (required)
- individual_number: Digits 7-9 (required)

RETURNS: resolved flag and the year, or a message when the combination is never issued.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "nin_individual_numbers",
		Method:   "IndividualNumbers",
		Title:    "Legal Individual Numbers",
		Category: "reference",
		Kinds:    dateBasedKinds,
		Description: `List the individual numbers that may be issued for a birth year.

USE WHEN: User asks "which individual numbers are used for people born in 1950", "what range do girls born 2010 get".

PARAMETERS:
- year: Birth year 1854-2039 (required)
- gender: female, male or any (default any)

RETURNS: Count and compact ranges (from, to, step).`,
		ReadOnly:   true,
		Idempotent: true,
	},
}

// ToolsByCategory returns the tools in a category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// ToolsByKind returns the tools that accept an identifier kind.
func ToolsByKind(kind string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if slices.Contains(spec.Kinds, kind) {
			out = append(out, spec)
		}
	}
	return out
}
