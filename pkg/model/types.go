package model

import (
	"fmt"
	"strings"
)

// FieldKind identifies one of the contact form inputs.
type FieldKind string

const (
	FieldName    FieldKind = "name"
	FieldEmail   FieldKind = "email"
	FieldMessage FieldKind = "message"
)

// FieldKinds returns the field identifiers in submit order.
func FieldKinds() []FieldKind {
	return []FieldKind{FieldName, FieldEmail, FieldMessage}
}

// ParseFieldKind resolves an identifier case-insensitively.
func ParseFieldKind(raw string) (FieldKind, error) {
	switch FieldKind(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldName:
		return FieldName, nil
	case FieldEmail:
		return FieldEmail, nil
	case FieldMessage:
		return FieldMessage, nil
	default:
		return "", fmt.Errorf("model: unknown field %q", raw)
	}
}

// Valid reports whether k is one of the known identifiers.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldName, FieldEmail, FieldMessage:
		return true
	default:
		return false
	}
}

// Label returns the human readable caption for the field.
func (k FieldKind) Label() string {
	switch k {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	default:
		return string(k)
	}
}

// InputType returns the control renderers should use for the field.
func (k FieldKind) InputType() string {
	switch k {
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "textarea"
	default:
		return "text"
	}
}

// Validity is the outcome of the last validator run for a field.
type Validity string

const (
	ValidityUnknown Validity = "unknown"
	ValidityValid   Validity = "valid"
	ValidityInvalid Validity = "invalid"
)

// Verdict is the result of a field validator.
type Verdict struct {
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Valid returns a passing verdict.
func Valid() Verdict {
	return Verdict{Valid: true}
}

// Invalid returns a failing verdict carrying reason.
func Invalid(reason string) Verdict {
	return Verdict{Reason: reason}
}

// Validity maps the verdict onto the field validity enum.
func (v Verdict) Validity() Validity {
	if v.Valid {
		return ValidityValid
	}
	return ValidityInvalid
}

// Field is the live state of a single input.
type Field struct {
	Kind     FieldKind `json:"kind"`
	Value    string    `json:"value"`
	Validity Validity  `json:"validity"`
	Reason   string    `json:"reason,omitempty"`
}

// HasError reports whether the error marker is shown.
func (f Field) HasError() bool {
	return f.Validity == ValidityInvalid
}

// HasSuccess reports whether the success marker is shown.
func (f Field) HasSuccess() bool {
	return f.Validity == ValidityValid
}

// Phase tracks the submission state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseAccepted   Phase = "accepted"
	PhaseRejected   Phase = "rejected"
)

// Trigger names the UI event that caused a handler to run.
type Trigger string

const (
	TriggerBlur   Trigger = "blur"
	TriggerInput  Trigger = "input"
	TriggerSubmit Trigger = "submit"
)
