package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	MinNameLength    = 2
	MinMessageLength = 10
	MaxMessageLength = 500
)

const (
	ReasonNameRequired    = "Name is required"
	ReasonNameTooShort    = "Name must be at least 2 characters"
	ReasonNameCharacters  = "Name can only contain letters and spaces"
	ReasonEmailRequired   = "Email is required"
	ReasonEmailInvalid    = "Please enter a valid email address"
	ReasonMessageRequired = "Message is required"
	ReasonMessageTooShort = "Message must be at least 10 characters"
	ReasonMessageTooLong  = "Message must not exceed 500 characters"
	ReasonUnknownField    = "Unknown field"
)

// whitespace mirrors model.IsSpace inside a character class.
const whitespace = `\t\n\v\f\r\p{Z}\x{FEFF}`

// Patterns are exported as source so schema documents can reuse them.
const (
	NamePatternSource  = `^[a-zA-Z` + whitespace + `]+$`
	EmailPatternSource = `^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`
)

var (
	namePattern  = regexp.MustCompile(NamePatternSource)
	emailPattern = regexp.MustCompile(EmailPatternSource)
)

// EmailPattern returns the compiled email heuristic. It accepts anything of
// the form local@domain.tld without whitespace and is not an RFC validator.
func EmailPattern() *regexp.Regexp {
	return emailPattern
}

// ValidateName checks the name field.
func ValidateName(raw string) model.Verdict {
	value := model.TrimValue(raw)
	switch {
	case value == "":
		return model.Invalid(ReasonNameRequired)
	case length(value) < MinNameLength:
		return model.Invalid(ReasonNameTooShort)
	case !namePattern.MatchString(value):
		return model.Invalid(ReasonNameCharacters)
	default:
		return model.Valid()
	}
}

// ValidateEmail checks the email field.
func ValidateEmail(raw string) model.Verdict {
	value := model.TrimValue(raw)
	switch {
	case value == "":
		return model.Invalid(ReasonEmailRequired)
	case !emailPattern.MatchString(value):
		return model.Invalid(ReasonEmailInvalid)
	default:
		return model.Valid()
	}
}

// ValidateMessage checks the message field.
func ValidateMessage(raw string) model.Verdict {
	value := model.TrimValue(raw)
	n := length(value)
	switch {
	case value == "":
		return model.Invalid(ReasonMessageRequired)
	case n < MinMessageLength:
		return model.Invalid(ReasonMessageTooShort)
	case n > MaxMessageLength:
		return model.Invalid(ReasonMessageTooLong)
	default:
		return model.Valid()
	}
}

// Validate dispatches to the validator registered for kind.
func Validate(kind model.FieldKind, value string) model.Verdict {
	switch kind {
	case model.FieldName:
		return ValidateName(value)
	case model.FieldEmail:
		return ValidateEmail(value)
	case model.FieldMessage:
		return ValidateMessage(value)
	default:
		return model.Invalid(ReasonUnknownField)
	}
}

// length counts characters, not bytes.
func length(value string) int {
	return utf8.RuneCountInString(value)
}
