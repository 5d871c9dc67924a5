// Package contactform re-exports the pieces most callers need: a form
// constructor, the pure validators and the options that configure a form.
package contactform

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/schedule"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Form is the stateful contact form.
type Form = orchestrator.Orchestrator

// Option configures a Form.
type Option = orchestrator.Option

// Model aliases.
type (
	Field   = model.Field
	Values  = model.Values
	Payload = model.Payload
	Verdict = model.Verdict
)

// Outcome is the result of DecideSubmission.
type Outcome = validation.Outcome

// RenderOptions carries per-request render overrides.
type RenderOptions = render.RenderOptions

// Sink receives accepted payloads.
type Sink = orchestrator.Sink

// View mirrors presentation changes into a UI.
type View = orchestrator.View

// Field identifiers.
const (
	FieldName    = model.FieldName
	FieldEmail   = model.FieldEmail
	FieldMessage = model.FieldMessage
)

// DefaultResetDelay is how long an accepted form stays filled in.
const DefaultResetDelay = orchestrator.DefaultResetDelay

// New constructs a form.
func New(options ...Option) *Form {
	return orchestrator.New(options...)
}

// Validate runs the validator for kind against value.
func Validate(kind model.FieldKind, value string) Verdict {
	return validation.Validate(kind, value)
}

// DecideSubmission validates every field and, when all pass, returns the
// trimmed payload. It has no side effects.
func DecideSubmission(values Values) Outcome {
	return validation.DecideSubmission(values)
}

// WithScheduler injects the capability used for the delayed reset.
func WithScheduler(scheduler schedule.Scheduler) Option {
	return orchestrator.WithScheduler(scheduler)
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(delay time.Duration) Option {
	return orchestrator.WithResetDelay(delay)
}

// WithSink replaces the default log sink.
func WithSink(sink Sink) Option {
	return orchestrator.WithSink(sink)
}

// WithView attaches a view.
func WithView(view View) Option {
	return orchestrator.WithView(view)
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return orchestrator.WithLogger(logger)
}

// WithContractGuard checks accepted payloads against the embedded OpenAPI
// contract before they reach sink.
func WithContractGuard(ctx context.Context, sink Sink, logger *zap.Logger) (Option, error) {
	contract, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = orchestrator.LogSink(logger)
	}
	return orchestrator.WithSink(openapi.Guard(contract, sink, logger)), nil
}
