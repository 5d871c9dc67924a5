package orchestrator

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Sink receives the payload of an accepted submission. It stands in for the
// network send the form does not perform.
type Sink interface {
	Send(ctx context.Context, payload model.Payload) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, payload model.Payload) error

// Send calls the underlying function.
func (fn SinkFunc) Send(ctx context.Context, payload model.Payload) error {
	return fn(ctx, payload)
}

type logSink struct {
	logger *zap.Logger
}

// LogSink writes each payload as a single structured log line.
func LogSink(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logSink{logger: logger}
}

func (s logSink) Send(_ context.Context, payload model.Payload) error {
	s.logger.Info("form data",
		zap.String("name", payload.Name),
		zap.String("email", payload.Email),
		zap.String("message", payload.Message),
	)
	return nil
}

// MultiSink fans a payload out to every sink, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, payload model.Payload) error {
		for _, sink := range sinks {
			if sink == nil {
				continue
			}
			if err := sink.Send(ctx, payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// View mirrors presentation changes into a concrete UI.
type View interface {
	FieldUpdated(field model.Field)
	BannerUpdated(visible bool)
}

// ViewFuncs adapts optional callbacks into a View.
type ViewFuncs struct {
	OnField  func(model.Field)
	OnBanner func(bool)
}

// FieldUpdated forwards to OnField when set.
func (v ViewFuncs) FieldUpdated(field model.Field) {
	if v.OnField != nil {
		v.OnField(field)
	}
}

// BannerUpdated forwards to OnBanner when set.
func (v ViewFuncs) BannerUpdated(visible bool) {
	if v.OnBanner != nil {
		v.OnBanner(visible)
	}
}
