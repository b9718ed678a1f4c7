package registry

import (
	"time"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

// ValidationResult describes the outcome of validating one number.
type ValidationResult struct {
	Input            string `json:"input"`
	Number           string `json:"number"`
	FormattedNumber  string `json:"formatted_number,omitempty"`
	Kind             string `json:"kind,omitempty"`
	KindName         string `json:"kind_name,omitempty"`
	Valid            bool   `json:"valid"`
	Code             int    `json:"code"`
	CodeName         string `json:"code_name"`
	Message          string `json:"message"`
	BirthDate        string `json:"birth_date,omitempty"`
	Gender           string `json:"gender,omitempty"`
	IndividualNumber *int   `json:"individual_number,omitempty"`
}

// Validate checks number, after cleaning, against the rules of kind.
func Validate(number string, kind nin.Kind) ValidationResult {
	cleaned := CleanNumber(number)
	id, err := nin.Validate(kind, cleaned)
	if err != nil {
		return failure(number, cleaned, kind, err)
	}
	return success(number, id)
}

// ValidateAny detects the kind of number and describes it. When no kind
// matches, the result carries NoMatchFound.
func ValidateAny(number string) ValidationResult {
	id, err := Detect(number)
	if err != nil {
		return failure(number, CleanNumber(number), 0, err)
	}
	return success(number, id)
}

// Describe builds the result for an identifier that is already known to be
// valid, such as a generated one.
func Describe(id nin.Identifier) ValidationResult {
	return success(id.Number(), id)
}

func success(input string, id nin.Identifier) ValidationResult {
	r := ValidationResult{
		Input:           input,
		Number:          id.Number(),
		FormattedNumber: FormatNumber(id.Number(), id.Kind()),
		Kind:            id.Kind().String(),
		KindName:        id.Name(),
		Valid:           true,
		Code:            int(apierrors.OK),
		CodeName:        apierrors.OK.String(),
		Message:         "Valid " + id.Name(),
	}
	if born, ok := id.BirthDate(); ok {
		r.BirthDate = born.Format(time.DateOnly)
		r.Gender = id.Gender().String()
	}
	if n, ok := id.IndividualNumber(); ok {
		r.IndividualNumber = &n
	}
	return r
}

func failure(input, cleaned string, kind nin.Kind, err error) ValidationResult {
	code := apierrors.CodeOf(err)
	r := ValidationResult{
		Input:    input,
		Number:   cleaned,
		Code:     int(code),
		CodeName: code.String(),
		Message:  err.Error(),
	}
	if kind != 0 {
		r.Kind = kind.String()
		r.KindName = kind.Name()
	}
	return r
}
