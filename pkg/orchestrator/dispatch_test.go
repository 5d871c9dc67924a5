package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/testsupport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestDefaultDispatcher_Routes(t *testing.T) {
	h := newHarness(t)
	routes := orchestrator.DefaultDispatcher(h.form).Routes()

	got := make([]string, 0, len(routes))
	for _, route := range routes {
		got = append(got, route.String())
	}
	want := []string{
		"email:blur", "email:input", "email:submit",
		"message:blur", "message:input", "message:submit",
		"name:blur", "name:input", "name:submit",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultDispatcher_DrivesForm(t *testing.T) {
	h := newHarness(t)
	d := orchestrator.DefaultDispatcher(h.form)
	ctx := testsupport.Context()

	events := []orchestrator.Event{
		{Field: model.FieldName, Trigger: model.TriggerInput, Value: "J"},
		{Field: model.FieldName, Trigger: model.TriggerBlur},
		{Field: model.FieldName, Trigger: model.TriggerInput, Value: "Jo"},
		{Field: model.FieldEmail, Trigger: model.TriggerInput, Value: "jo@example.com"},
		{Field: model.FieldMessage, Trigger: model.TriggerInput, Value: "Ten chars!"},
		{Field: model.FieldMessage, Trigger: model.TriggerSubmit},
	}
	for _, event := range events {
		if err := d.Dispatch(ctx, event); err != nil {
			t.Fatalf("dispatch %+v: %v", event, err)
		}
	}

	want := []model.Payload{{Name: "Jo", Email: "jo@example.com", Message: "Ten chars!"}}
	if diff := cmp.Diff(want, h.sink.Payloads()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcher_MissingRoute(t *testing.T) {
	d := orchestrator.NewDispatcher()
	err := d.Dispatch(context.Background(), orchestrator.Event{Field: model.FieldName, Trigger: model.TriggerBlur})
	if !errors.Is(err, orchestrator.ErrNoHandler) {
		t.Fatalf("expected ErrNoHandler, got %v", err)
	}

	err = d.Dispatch(context.Background(), orchestrator.Event{Field: "phone", Trigger: model.TriggerBlur})
	if !errors.Is(err, orchestrator.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDispatcher_RegisterRejectsDuplicates(t *testing.T) {
	d := orchestrator.NewDispatcher()
	noop := func(context.Context, orchestrator.Event) error { return nil }

	if err := d.Register(model.FieldEmail, model.TriggerBlur, noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Register(model.FieldEmail, model.TriggerBlur, noop); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := d.Register(model.FieldEmail, model.TriggerInput, nil); err == nil {
		t.Fatalf("expected nil handler error")
	}
}

func TestDispatcher_HandlerErrorPropagates(t *testing.T) {
	d := orchestrator.NewDispatcher()
	boom := errors.New("boom")
	if err := d.Register(model.FieldName, model.TriggerSubmit, func(context.Context, orchestrator.Event) error {
		return boom
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := d.Dispatch(context.Background(), orchestrator.Event{Field: model.FieldName, Trigger: model.TriggerSubmit}); !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestPresenter_ExclusiveMarkers(t *testing.T) {
	h := newHarness(t)
	sequence := []string{"", "A", "Anna", "Anna1", "Anna Lee"}
	for _, value := range sequence {
		if _, err := h.form.Input(model.FieldName, value); err != nil {
			t.Fatalf("input: %v", err)
		}
		verdict, err := h.form.Blur(model.FieldName)
		if err != nil {
			t.Fatalf("blur: %v", err)
		}
		field, _ := h.form.Field(model.FieldName)
		if field.HasError() == field.HasSuccess() {
			t.Fatalf("value %q: field carries both or neither marker: %+v", value, field)
		}
		if diff := cmp.Diff(validation.ValidateName(value), verdict); diff != "" {
			t.Fatalf("value %q verdict mismatch (-want +got):\n%s", value, diff)
		}
	}
}
