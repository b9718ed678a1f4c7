// Package registry turns free-form identifier text into display-ready
// validation results: it cleans and formats numbers, detects the kind of an
// unlabelled number and describes the outcome of validation.
package registry

import (
	"strings"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

// IdentifierFormat describes how a kind is written and checked.
type IdentifierFormat struct {
	Kind      nin.Kind
	Length    int
	Layout    string // display grouping, # is a digit
	Algorithm string
}

var identifierFormats = []IdentifierFormat{
	{Kind: nin.OrganizationNumber, Length: 9, Layout: "### ### ###", Algorithm: "MOD11"},
	{Kind: nin.BirthNumber, Length: 11, Layout: "###### #####", Algorithm: "MOD11 x2"},
	{Kind: nin.DNumber, Length: 11, Layout: "###### #####", Algorithm: "MOD11 x2"},
}

// Formats returns the display formats of the public kinds.
func Formats() []IdentifierFormat {
	return identifierFormats
}

// FormatOf returns the display format of kind.
func FormatOf(kind nin.Kind) (IdentifierFormat, bool) {
	for _, f := range identifierFormats {
		if f.Kind == kind {
			return f, true
		}
	}
	return IdentifierFormat{}, false
}

// CleanNumber removes the separators people type into identifiers: spaces,
// hyphens and dots.
func CleanNumber(number string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(number))
}

// FormatNumber renders a number in the grouping of kind, e.g. 987 654 325
// or 010203 98767. Numbers of the wrong length are returned unchanged.
func FormatNumber(number string, kind nin.Kind) string {
	cleaned := CleanNumber(number)
	f, ok := FormatOf(kind)
	if !ok || len(cleaned) != f.Length {
		return number
	}

	var b strings.Builder
	i := 0
	for _, c := range f.Layout {
		if c == '#' {
			b.WriteByte(cleaned[i])
			i++
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Detect cleans number and tries each public kind in detection order. A
// number matching no kind yields a *errors.NotFoundError.
func Detect(number string) (nin.Identifier, error) {
	cleaned := CleanNumber(number)
	if id, ok := nin.Detect(cleaned); ok {
		return id, nil
	}
	kinds := nin.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name()
	}
	return nin.Identifier{}, apierrors.NewNotFoundError(cleaned, names...)
}
