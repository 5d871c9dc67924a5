package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/schedule"
	"github.com/goliatone/go-contactform/pkg/testsupport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

type harness struct {
	form  *orchestrator.Orchestrator
	clock *schedule.Manual
	sink  *testsupport.RecordingSink
	view  *testsupport.RecordingView
	logs  *observer.ObservedLogs
}

func newHarness(t *testing.T, extra ...orchestrator.Option) harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	h := harness{
		clock: schedule.NewManual(time.Unix(0, 0)),
		sink:  &testsupport.RecordingSink{},
		view:  &testsupport.RecordingView{},
		logs:  logs,
	}
	options := []orchestrator.Option{
		orchestrator.WithScheduler(h.clock),
		orchestrator.WithSink(h.sink),
		orchestrator.WithView(h.view),
		orchestrator.WithLogger(zap.New(core)),
	}
	h.form = orchestrator.New(append(options, extra...)...)
	return h
}

func validValues() model.Values {
	return model.Values{
		Name:    "  Anna Lee ",
		Email:   "anna@example.com",
		Message: "Hello there, friend",
	}
}

func TestSubmit_AcceptedShowsBannerAndSendsTrimmedPayload(t *testing.T) {
	h := newHarness(t)
	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}

	outcome, err := h.form.Submit(testsupport.Context())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("expected accepted outcome, got %+v", outcome.Issues())
	}

	want := []model.Payload{{Name: "Anna Lee", Email: "anna@example.com", Message: "Hello there, friend"}}
	if diff := cmp.Diff(want, h.sink.Payloads()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	snap := h.form.Snapshot()
	if !snap.BannerShown {
		t.Fatalf("expected banner to be shown")
	}
	if snap.Phase != model.PhaseAccepted {
		t.Fatalf("phase = %q, want %q", snap.Phase, model.PhaseAccepted)
	}
	for _, field := range snap.Fields {
		if !field.HasSuccess() || field.HasError() {
			t.Fatalf("field %s: expected success marker only, got %+v", field.Kind, field)
		}
	}
	if diff := cmp.Diff([]bool{false, true}, h.view.Banners()); diff != "" {
		t.Fatalf("banner updates mismatch (-want +got):\n%s", diff)
	}
	if got := h.clock.Pending(); got != 1 {
		t.Fatalf("expected one scheduled reset, got %d", got)
	}
}

func TestSubmit_ResetFiresAfterDelay(t *testing.T) {
	h := newHarness(t)
	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if _, err := h.form.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	h.clock.Advance(1999 * time.Millisecond)
	if snap := h.form.Snapshot(); !snap.BannerShown || snap.Values().Name == "" {
		t.Fatalf("form reset before the delay elapsed: %+v", snap)
	}

	h.view.Reset()
	h.clock.Advance(time.Millisecond)
	if diff := cmp.Diff(model.EmptySnapshot(), h.form.Snapshot()); diff != "" {
		t.Fatalf("snapshot after reset mismatch (-want +got):\n%s", diff)
	}
	if got := h.clock.Pending(); got != 0 {
		t.Fatalf("expected no pending callbacks, got %d", got)
	}
	if len(h.view.Fields()) == 0 {
		t.Fatalf("expected the reset to publish field updates")
	}
	for _, field := range h.view.Fields() {
		if field.Value != "" {
			t.Fatalf("reset published a non-empty value: %+v", field)
		}
	}
	if diff := cmp.Diff([]bool{false}, h.view.Banners()); diff != "" {
		t.Fatalf("banner updates mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_CustomResetDelay(t *testing.T) {
	h := newHarness(t, orchestrator.WithResetDelay(5*time.Second))
	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if _, err := h.form.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	h.clock.Advance(orchestrator.DefaultResetDelay)
	if !h.form.Snapshot().BannerShown {
		t.Fatalf("banner hidden before custom delay")
	}
	h.clock.Advance(3 * time.Second)
	if h.form.Snapshot().BannerShown {
		t.Fatalf("banner still shown after custom delay")
	}
}

func TestSubmit_RejectedPresentsEveryError(t *testing.T) {
	h := newHarness(t)
	if err := h.form.SetValues(model.Values{Name: "", Email: "test@domain", Message: "short"}); err != nil {
		t.Fatalf("set values: %v", err)
	}

	outcome, err := h.form.Submit(testsupport.Context())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted {
		t.Fatalf("expected rejection")
	}
	if got := len(h.sink.Payloads()); got != 0 {
		t.Fatalf("expected no payload, got %d", got)
	}
	if got := h.clock.Pending(); got != 0 {
		t.Fatalf("expected no reset to be scheduled, got %d", got)
	}

	snap := h.form.Snapshot()
	want := map[model.FieldKind]string{
		model.FieldName:    validation.ReasonNameRequired,
		model.FieldEmail:   validation.ReasonEmailInvalid,
		model.FieldMessage: validation.ReasonMessageTooShort,
	}
	if diff := cmp.Diff(want, snap.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if snap.BannerShown {
		t.Fatalf("banner must stay hidden on rejection")
	}
	if snap.Phase != model.PhaseIdle {
		t.Fatalf("phase = %q, want %q", snap.Phase, model.PhaseIdle)
	}

	entries := h.logs.FilterMessage("form validation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one rejection log line, got %d", len(entries))
	}
}

func TestSubmit_SingleInvalidFieldKeepsOthersSuccessful(t *testing.T) {
	h := newHarness(t)
	values := validValues()
	values.Email = "invalid-email"
	if err := h.form.SetValues(values); err != nil {
		t.Fatalf("set values: %v", err)
	}

	if _, err := h.form.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := h.form.Snapshot()
	name, _ := snap.Field(model.FieldName)
	email, _ := snap.Field(model.FieldEmail)
	if !name.HasSuccess() {
		t.Fatalf("expected name success marker, got %+v", name)
	}
	if !email.HasError() || email.Reason != validation.ReasonEmailInvalid {
		t.Fatalf("expected email error, got %+v", email)
	}
}

func TestSubmit_SinkErrorIsReturnedWithoutRollback(t *testing.T) {
	h := newHarness(t)
	h.sink.Err = errors.New("boom")
	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}

	outcome, err := h.form.Submit(testsupport.Context())
	if err == nil || !errors.Is(err, h.sink.Err) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("outcome should still be accepted")
	}
	if !h.form.Snapshot().BannerShown {
		t.Fatalf("banner should remain shown")
	}
	if got := h.clock.Pending(); got != 1 {
		t.Fatalf("expected reset to remain scheduled, got %d", got)
	}
}

func TestSubmit_OverlappingResetsBothFire(t *testing.T) {
	h := newHarness(t)
	ctx := testsupport.Context()

	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if _, err := h.form.Submit(ctx); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	h.clock.Advance(time.Second)
	if _, err := h.form.Submit(ctx); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if got := h.clock.Pending(); got != 2 {
		t.Fatalf("expected two pending resets, got %d", got)
	}

	h.clock.Advance(time.Second)
	if h.form.Snapshot().BannerShown {
		t.Fatalf("first reset should hide the banner")
	}
	h.clock.Advance(time.Second)
	if diff := cmp.Diff(model.EmptySnapshot(), h.form.Snapshot()); diff != "" {
		t.Fatalf("final snapshot mismatch (-want +got):\n%s", diff)
	}
	if got := len(h.sink.Payloads()); got != 2 {
		t.Fatalf("expected two payloads, got %d", got)
	}
}

func TestReset_KeepsErrorMarkers(t *testing.T) {
	h := newHarness(t)
	ctx := testsupport.Context()

	if err := h.form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if _, err := h.form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := h.form.Input(model.FieldName, "x"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, err := h.form.Blur(model.FieldName); err != nil {
		t.Fatalf("blur: %v", err)
	}

	h.clock.Advance(orchestrator.DefaultResetDelay)

	name, _ := h.form.Field(model.FieldName)
	want := model.Field{
		Kind:     model.FieldName,
		Validity: model.ValidityInvalid,
		Reason:   validation.ReasonNameTooShort,
	}
	if diff := cmp.Diff(want, name); diff != "" {
		t.Fatalf("name after reset mismatch (-want +got):\n%s", diff)
	}
	email, _ := h.form.Field(model.FieldEmail)
	if email.Validity != model.ValidityUnknown || email.Value != "" {
		t.Fatalf("expected email cleared, got %+v", email)
	}
}

func TestBlur_PresentsVerdict(t *testing.T) {
	h := newHarness(t)
	if _, err := h.form.Input(model.FieldEmail, "test@"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, ok := h.view.Last(model.FieldEmail); ok {
		t.Fatalf("input on an unvalidated field must not present anything")
	}

	verdict, err := h.form.Blur(model.FieldEmail)
	if err != nil {
		t.Fatalf("blur: %v", err)
	}
	if diff := cmp.Diff(model.Invalid(validation.ReasonEmailInvalid), verdict); diff != "" {
		t.Fatalf("verdict mismatch (-want +got):\n%s", diff)
	}
	last, ok := h.view.Last(model.FieldEmail)
	if !ok || !last.HasError() {
		t.Fatalf("expected view to receive error marker, got %+v", last)
	}
}

func TestInput_RevalidatesOnlyInvalidFields(t *testing.T) {
	h := newHarness(t)

	if _, err := h.form.Input(model.FieldName, "A"); err != nil {
		t.Fatalf("input: %v", err)
	}
	field, _ := h.form.Field(model.FieldName)
	if field.Validity != model.ValidityUnknown {
		t.Fatalf("untouched field must not be validated on input, got %+v", field)
	}

	if _, err := h.form.Blur(model.FieldName); err != nil {
		t.Fatalf("blur: %v", err)
	}
	field, err := h.form.Input(model.FieldName, "Al")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if !field.HasSuccess() {
		t.Fatalf("invalid field should revalidate on input, got %+v", field)
	}

	field, err = h.form.Input(model.FieldName, "A")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if !field.HasSuccess() || field.Value != "A" {
		t.Fatalf("valid field keeps its marker until blur, got %+v", field)
	}
}

func TestUnknownField(t *testing.T) {
	h := newHarness(t)
	if _, err := h.form.Blur(model.FieldKind("phone")); !errors.Is(err, orchestrator.ErrUnknownField) {
		t.Fatalf("blur error = %v, want ErrUnknownField", err)
	}
	if _, err := h.form.Input(model.FieldKind("phone"), "x"); !errors.Is(err, orchestrator.ErrUnknownField) {
		t.Fatalf("input error = %v, want ErrUnknownField", err)
	}
}

func TestDefaultSink_LogsPayload(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	form := orchestrator.New(
		orchestrator.WithLogger(zap.New(core)),
		orchestrator.WithScheduler(schedule.NewManual(time.Unix(0, 0))),
	)
	if err := form.SetValues(validValues()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries := logs.FilterMessage("form data").All()
	if len(entries) != 1 {
		t.Fatalf("expected one payload log line, got %d", len(entries))
	}
	want := map[string]any{
		"name":    "Anna Lee",
		"email":   "anna@example.com",
		"message": "Hello there, friend",
	}
	if diff := cmp.Diff(want, entries[0].ContextMap()); diff != "" {
		t.Fatalf("log fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DefaultRenderer(t *testing.T) {
	h := newHarness(t)
	if _, err := h.form.Input(model.FieldName, "A"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, err := h.form.Blur(model.FieldName); err != nil {
		t.Fatalf("blur: %v", err)
	}

	out, err := h.form.Render(testsupport.Context(), "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected markup")
	}

	if _, err := h.form.Render(testsupport.Context(), "missing", render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

type phaseRenderer struct{}

func (phaseRenderer) Name() string        { return "phase" }
func (phaseRenderer) ContentType() string { return "text/plain" }

func (phaseRenderer) Render(_ context.Context, snapshot model.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(snapshot.Phase), nil
}

func TestRender_CustomRegistryAndDefault(t *testing.T) {
	h := newHarness(t,
		orchestrator.WithRegistry(render.NewRegistry(phaseRenderer{})),
		orchestrator.WithDefaultRenderer("phase"),
	)

	out, err := h.form.Render(testsupport.Context(), "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != string(model.PhaseIdle) {
		t.Fatalf("render output = %q, want %q", got, model.PhaseIdle)
	}
}
