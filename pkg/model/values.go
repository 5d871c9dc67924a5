package model

import (
	"strings"
	"unicode"
)

// Values holds the raw text of every field.
type Values struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Message string `json:"message" yaml:"message"`
}

// Get returns the value for kind. Unknown kinds yield an empty string.
func (v Values) Get(kind FieldKind) string {
	switch kind {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// Set stores value for kind and reports whether kind was recognised.
func (v *Values) Set(kind FieldKind, value string) bool {
	switch kind {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	default:
		return false
	}
	return true
}

// Trimmed returns the submitted payload shape of the values.
func (v Values) Trimmed() Payload {
	return Payload{
		Name:    TrimValue(v.Name),
		Email:   TrimValue(v.Email),
		Message: TrimValue(v.Message),
	}
}

// Payload is the record emitted by an accepted submission.
type Payload struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Message string `json:"message" yaml:"message"`
}

// Map exposes the payload as a generic document, the shape schema validators
// and template engines consume.
func (p Payload) Map() map[string]any {
	return map[string]any{
		"name":    p.Name,
		"email":   p.Email,
		"message": p.Message,
	}
}

// TrimValue strips leading and trailing whitespace the way browser form
// controls do: ASCII whitespace, vertical tab, Unicode space separators and
// the byte order mark. U+0085 is not whitespace here.
func TrimValue(raw string) string {
	return strings.TrimFunc(raw, IsSpace)
}

// IsSpace reports whether r counts as whitespace for trimming and patterns.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}
