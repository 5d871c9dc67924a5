package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/schedule"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const (
	// DefaultResetDelay is how long an accepted form stays filled in before
	// it is cleared.
	DefaultResetDelay = 2000 * time.Millisecond

	defaultRendererName = "vanilla"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithScheduler injects the capability used to delay the post-submission
// reset.
func WithScheduler(scheduler schedule.Scheduler) Option {
	return func(o *Orchestrator) {
		o.scheduler = scheduler
	}
}

// WithResetDelay overrides DefaultResetDelay. Non-positive values are ignored.
func WithResetDelay(delay time.Duration) Option {
	return func(o *Orchestrator) {
		if delay > 0 {
			o.resetDelay = delay
		}
	}
}

// WithSink replaces the default log sink that receives accepted payloads.
func WithSink(sink Sink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

// WithView attaches a view that mirrors presentation changes. Multiple views
// are notified in registration order.
func WithView(view View) Option {
	return func(o *Orchestrator) {
		if view != nil {
			o.views = append(o.views, view)
		}
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRegistry injects a renderer registry used by Render.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without a name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// Orchestrator is the contact form context: it owns field state and the
// success banner, and runs validation in response to blur, input and submit
// events.
type Orchestrator struct {
	mu sync.Mutex

	presenter *Presenter
	banner    bool
	phase     model.Phase
	pending   []func(View)

	scheduler       schedule.Scheduler
	resetDelay      time.Duration
	sink            Sink
	views           []View
	logger          *zap.Logger
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to a real-time scheduler, a log sink and the vanilla
// renderer.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		phase:           model.PhaseIdle,
		resetDelay:      DefaultResetDelay,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.scheduler == nil {
		o.scheduler = schedule.Realtime()
	}
	if o.sink == nil {
		o.sink = LogSink(o.logger)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	o.presenter = newPresenter(func(field model.Field) {
		o.pending = append(o.pending, func(v View) { v.FieldUpdated(field) })
	})
}

// Blur runs the validator for kind and presents its verdict. It is the
// primary validation trigger.
func (o *Orchestrator) Blur(kind model.FieldKind) (model.Verdict, error) {
	if !kind.Valid() {
		return model.Verdict{}, fmt.Errorf("%w: %q", ErrUnknownField, kind)
	}

	o.mu.Lock()
	verdict := o.validateLocked(kind)
	updates := o.drainLocked()
	o.mu.Unlock()

	o.notify(updates)
	return verdict, nil
}

// Input stores value for kind. A field currently marked invalid is
// revalidated immediately; any other field waits for blur or submit.
func (o *Orchestrator) Input(kind model.FieldKind, value string) (model.Field, error) {
	if !kind.Valid() {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, kind)
	}

	o.mu.Lock()
	o.presenter.setValue(kind, value, false)
	current, _ := o.presenter.Field(kind)
	if current.HasError() {
		o.validateLocked(kind)
	}
	field, _ := o.presenter.Field(kind)
	updates := o.drainLocked()
	o.mu.Unlock()

	o.notify(updates)
	return field, nil
}

// SetValues feeds every field through Input.
func (o *Orchestrator) SetValues(values model.Values) error {
	for _, kind := range model.FieldKinds() {
		if _, err := o.Input(kind, values.Get(kind)); err != nil {
			return err
		}
	}
	return nil
}

// Submit runs every validator in submit order, presenting each verdict. When
// all pass the success banner is shown, the trimmed payload goes to the sink
// and a reset is scheduled after the reset delay. Otherwise the form returns
// to idle with the error markers in place.
func (o *Orchestrator) Submit(ctx context.Context) (validation.Outcome, error) {
	if ctx == nil {
		return validation.Outcome{}, errors.New("orchestrator: context is required")
	}

	o.mu.Lock()
	o.setBannerLocked(false)
	o.phase = model.PhaseValidating

	outcome := validation.DecideSubmission(o.presenter.values())
	for _, result := range outcome.Results {
		o.presenter.Present(result.Field, result.Verdict)
	}

	if !outcome.Accepted {
		o.phase = model.PhaseRejected
		updates := o.drainLocked()
		o.phase = model.PhaseIdle
		o.mu.Unlock()

		o.notify(updates)
		o.logger.Info("form validation failed", zap.Strings("invalid", issueFields(outcome.Issues())))
		return outcome, nil
	}

	o.phase = model.PhaseAccepted
	o.setBannerLocked(true)
	updates := o.drainLocked()
	o.mu.Unlock()

	o.notify(updates)
	o.scheduler.After(o.resetDelay, o.reset)

	if err := o.sink.Send(ctx, *outcome.Payload); err != nil {
		o.logger.Error("send payload", zap.Error(err))
		return outcome, fmt.Errorf("orchestrator: send payload: %w", err)
	}
	return outcome, nil
}

// reset clears every value, drops success markers and hides the banner.
// Overlapping submissions each schedule their own reset; whichever fires last
// governs the final state.
func (o *Orchestrator) reset() {
	o.mu.Lock()
	for _, kind := range model.FieldKinds() {
		o.presenter.setValue(kind, "", true)
		o.presenter.ClearSuccess(kind)
	}
	o.setBannerLocked(false)
	o.phase = model.PhaseIdle
	updates := o.drainLocked()
	o.mu.Unlock()

	o.notify(updates)
	o.logger.Debug("form reset")
}

// Snapshot returns a copy of the current form state.
func (o *Orchestrator) Snapshot() model.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return model.Snapshot{
		Fields:      o.presenter.snapshotFields(),
		BannerShown: o.banner,
		Phase:       o.phase,
	}
}

// Field returns the current state of kind.
func (o *Orchestrator) Field(kind model.FieldKind) (model.Field, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presenter.Field(kind)
}

// Render renders the current snapshot with the named renderer, falling back to
// the default renderer when name is empty.
func (o *Orchestrator) Render(ctx context.Context, name string, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, o.Snapshot(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) validateLocked(kind model.FieldKind) model.Verdict {
	field, _ := o.presenter.Field(kind)
	verdict := validation.Validate(kind, field.Value)
	o.presenter.Present(kind, verdict)
	return verdict
}

func (o *Orchestrator) setBannerLocked(visible bool) {
	o.banner = visible
	o.pending = append(o.pending, func(v View) { v.BannerUpdated(visible) })
}

func (o *Orchestrator) drainLocked() []func(View) {
	updates := o.pending
	o.pending = nil
	return updates
}

func (o *Orchestrator) notify(updates []func(View)) {
	if len(updates) == 0 || len(o.views) == 0 {
		return
	}
	for _, view := range o.views {
		for _, update := range updates {
			update(view)
		}
	}
}

func issueFields(issues []validation.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, string(issue.Field))
	}
	return out
}
