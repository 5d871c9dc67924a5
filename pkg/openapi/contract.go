package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	// PayloadSchemaName is the component schema describing model.Payload.
	PayloadSchemaName = "ContactPayload"
	// SubmitOperationID identifies the submission operation.
	SubmitOperationID = "submitContact"
)

//go:embed contact.yaml
var contactDocument []byte

// ErrPayloadRejected is wrapped by every contract violation error.
var ErrPayloadRejected = errors.New("openapi: payload rejected by contract")

// Raw returns a copy of the embedded YAML document.
func Raw() []byte {
	return append([]byte(nil), contactDocument...)
}

// Contract is the loaded, validated payload document.
type Contract struct {
	doc    *openapi3.T
	schema *openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadFromData(ctx, contactDocument)
}

// LoadFromData parses and validates a contract document. It must define the
// ContactPayload component schema.
func LoadFromData(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}

	if doc.Components == nil {
		return nil, errors.New("openapi: document has no components")
	}
	ref, ok := doc.Components.Schemas[PayloadSchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %q not found", PayloadSchemaName)
	}

	return &Contract{doc: doc, schema: ref.Value}, nil
}

// MustLoad panics when the embedded document fails to load.
func MustLoad() *Contract {
	contract, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return contract
}

// Document exposes the parsed kin-openapi document.
func (c *Contract) Document() *openapi3.T {
	return c.doc
}

// Fields lists the payload properties in name order.
func (c *Contract) Fields() []string {
	names := make([]string, 0, len(c.schema.Properties))
	for name := range c.schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Violation is one failed schema rule.
type Violation struct {
	Path    string          `json:"path" yaml:"path"`
	Field   model.FieldKind `json:"field,omitempty" yaml:"field,omitempty"`
	Message string          `json:"message" yaml:"message"`
}

// ViolationError carries every violation found for a payload. It unwraps to
// ErrPayloadRejected.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Path+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrPayloadRejected, strings.Join(parts, "; "))
}

func (e *ViolationError) Unwrap() error {
	return ErrPayloadRejected
}

// Messages groups violation messages by JSON pointer, the shape
// render.RenderOptions.Errors accepts.
func (e *ViolationError) Messages() map[string][]string {
	out := make(map[string][]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Path] = append(out[v.Path], v.Message)
	}
	return out
}

// ValidatePayload checks payload against the contract schema, reporting every
// violation rather than the first.
func (c *Contract) ValidatePayload(ctx context.Context, payload model.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.schema.VisitJSON(payload.Map(), openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	violations := collectViolations(err, nil)
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Path < violations[j].Path
	})
	return &ViolationError{Violations: violations}
}

func collectViolations(err error, out []Violation) []Violation {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			out = collectViolations(inner, out)
		}
		return out
	case *openapi3.SchemaError:
		segments := e.JSONPointer()
		violation := Violation{
			Path:    "/" + strings.Join(segments, "/"),
			Message: e.Reason,
		}
		if len(segments) > 0 {
			if kind, parseErr := model.ParseFieldKind(segments[0]); parseErr == nil {
				violation.Field = kind
			}
		}
		if violation.Message == "" {
			violation.Message = e.Error()
		}
		return append(out, violation)
	default:
		return append(out, Violation{Path: "/", Message: err.Error()})
	}
}
