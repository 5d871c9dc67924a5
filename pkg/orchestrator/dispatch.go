package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Event is a UI event translated into form terms. Value is only read for
// input events.
type Event struct {
	Field   model.FieldKind
	Trigger model.Trigger
	Value   string
}

// Route identifies a dispatch table entry.
type Route struct {
	Field   model.FieldKind
	Trigger model.Trigger
}

func (r Route) String() string {
	return string(r.Field) + ":" + string(r.Trigger)
}

// Handler reacts to an Event.
type Handler func(ctx context.Context, event Event) error

// Dispatcher maps (field, trigger) pairs to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Route]Handler
}

// NewDispatcher returns an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Route]Handler)}
}

// Register binds handler to the field and trigger. Registering the same route
// twice is an error.
func (d *Dispatcher) Register(field model.FieldKind, trigger model.Trigger, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("orchestrator: nil handler for %s:%s", field, trigger)
	}
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	route := Route{Field: field, Trigger: trigger}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[route]; exists {
		return fmt.Errorf("orchestrator: handler %q already registered", route)
	}
	d.handlers[route] = handler
	return nil
}

// Dispatch runs the handler registered for the event.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	if !event.Field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, event.Field)
	}

	route := Route{Field: event.Field, Trigger: event.Trigger}

	d.mu.RLock()
	handler, ok := d.handlers[route]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, route)
	}
	return handler(ctx, event)
}

// Routes lists registered routes sorted by field then trigger.
func (d *Dispatcher) Routes() []Route {
	d.mu.RLock()
	defer d.mu.RUnlock()

	routes := make([]Route, 0, len(d.handlers))
	for route := range d.handlers {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].String() < routes[j].String()
	})
	return routes
}

// DefaultDispatcher wires blur, input and submit for every field of form.
// Submit on any field submits the whole form.
func DefaultDispatcher(form *Orchestrator) *Dispatcher {
	d := NewDispatcher()
	for _, kind := range model.FieldKinds() {
		// Registration on a fresh table cannot collide.
		_ = d.Register(kind, model.TriggerBlur, func(_ context.Context, e Event) error {
			_, err := form.Blur(e.Field)
			return err
		})
		_ = d.Register(kind, model.TriggerInput, func(_ context.Context, e Event) error {
			_, err := form.Input(e.Field, e.Value)
			return err
		})
		_ = d.Register(kind, model.TriggerSubmit, func(ctx context.Context, _ Event) error {
			_, err := form.Submit(ctx)
			return err
		})
	}
	return d
}
