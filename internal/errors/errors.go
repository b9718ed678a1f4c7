// Package errors provides the shared error taxonomy for Norwegian identifier
// validation and generation.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies the cause of a failure. The numeric values are stable and
// double as process exit codes for the command-line interpreter.
type Code int

const (
	OK Code = iota
	NullOrEmpty
	BadLength
	BadCharacters
	BadFirstDigit // organization numbers only
	BadDate
	BadYearIndividualCombination
	BadCheckDigit
	PatternNullOrEmpty
	BadPatternLength
	BadPattern // illegal character or no wildcard
	NoMatchFound
	BadYear
)

var codeNames = map[Code]string{
	OK:                           "ok",
	NullOrEmpty:                  "null_or_empty",
	BadLength:                    "bad_length",
	BadCharacters:                "bad_characters",
	BadFirstDigit:                "bad_first_digit",
	BadDate:                      "bad_date",
	BadYearIndividualCombination: "bad_year_individual_combination",
	BadCheckDigit:                "bad_check_digit",
	PatternNullOrEmpty:           "pattern_null_or_empty",
	BadPatternLength:             "bad_pattern_length",
	BadPattern:                   "bad_pattern",
	NoMatchFound:                 "no_match_found",
	BadYear:                      "bad_year",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// ValidationError reports the first violated rule for an identifier, a
// pattern, or a generation argument.
type ValidationError struct {
	Code    Code
	Kind    string // human-readable kind name, e.g. "Organisasjonsnummer"
	Value   string // the offending input (may be empty)
	Message string
}

func (e *ValidationError) Error() string {
	if e.Kind != "" && e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Kind, e.Value, e.Message)
	}
	if e.Kind != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(code Code, kind, value, message string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Kind:    kind,
		Value:   value,
		Message: message,
	}
}

// NotFoundError indicates that a value matched none of the known kinds.
type NotFoundError struct {
	Identifier string
	Kinds      []string // kinds that were tried, in order
}

func (e *NotFoundError) Error() string {
	if len(e.Kinds) == 0 {
		return fmt.Sprintf("no identifier kind matches %q", e.Identifier)
	}
	return fmt.Sprintf("%q is neither %s", e.Identifier, joinKinds(e.Kinds))
}

// NewNotFoundError creates a NotFoundError for a detection attempt.
func NewNotFoundError(identifier string, kinds ...string) *NotFoundError {
	return &NotFoundError{
		Identifier: identifier,
		Kinds:      kinds,
	}
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CodeOf extracts the Code carried by err. A nil error maps to OK and an
// error outside the taxonomy maps to -1.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	if IsNotFound(err) {
		return NoMatchFound
	}
	return -1
}

func joinKinds(kinds []string) string {
	switch len(kinds) {
	case 1:
		return kinds[0]
	case 2:
		return kinds[0] + " nor " + kinds[1]
	}
	s := ""
	for i, k := range kinds {
		switch {
		case i == 0:
			s = k
		case i == len(kinds)-1:
			s += " nor " + k
		default:
			s += ", " + k
		}
	}
	return s
}
