//go:build js && wasm

// Command contactform-wasm binds the contact form rules to a page that uses
// the contactForm, name, email, message, nameError, emailError, messageError
// and successMessage element IDs.
package main

import (
	"context"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
)

const (
	formID   = "contactForm"
	bannerID = "successMessage"
)

func main() {
	logger, err := logging.BuildLogger("info", "dev")
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	document := js.Global().Get("document")
	view, err := newDOMView(document)
	if err != nil {
		logger.Error("contact form markup not found", zap.Error(err))
		return
	}

	form := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithView(view),
		orchestrator.WithSink(orchestrator.MultiSink(orchestrator.LogSink(logger), consoleSink())),
	)
	dispatcher := orchestrator.DefaultDispatcher(form)

	ctx := context.Background()
	dispatch := func(kind model.FieldKind, trigger model.Trigger, value string) {
		if err := dispatcher.Dispatch(ctx, orchestrator.Event{Field: kind, Trigger: trigger, Value: value}); err != nil {
			logger.Warn("dispatch failed",
				zap.String("field", string(kind)),
				zap.String("trigger", string(trigger)),
				zap.Error(err),
			)
		}
	}

	// Callbacks live for the page lifetime and are never released.
	for _, kind := range model.FieldKinds() {
		input := view.inputs[kind]
		input.Call("addEventListener", "blur", js.FuncOf(func(js.Value, []js.Value) any {
			dispatch(kind, model.TriggerBlur, "")
			return nil
		}))
		input.Call("addEventListener", "input", js.FuncOf(func(this js.Value, _ []js.Value) any {
			dispatch(kind, model.TriggerInput, this.Get("value").String())
			return nil
		}))
	}

	view.form.Call("addEventListener", "submit", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		if err := form.SetValues(view.values()); err != nil {
			logger.Warn("sync values", zap.Error(err))
			return nil
		}
		dispatch(model.FieldName, model.TriggerSubmit, "")
		return nil
	}))

	logger.Info("contact form bound", zap.String("form", formID))
	select {}
}

// consoleSink prints accepted payloads to the browser console as an object.
func consoleSink() orchestrator.Sink {
	console := js.Global().Get("console")
	return orchestrator.SinkFunc(func(_ context.Context, payload model.Payload) error {
		console.Call("log", "Form Data:", js.ValueOf(payload.Map()))
		return nil
	})
}
