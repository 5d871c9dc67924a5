//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// domView mirrors presenter changes onto the page by toggling the same
// classes the server-side renderer emits.
type domView struct {
	form   js.Value
	banner js.Value
	inputs map[model.FieldKind]js.Value
	errors map[model.FieldKind]js.Value
}

func newDOMView(document js.Value) (*domView, error) {
	byID := func(id string) (js.Value, error) {
		el := document.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return js.Value{}, fmt.Errorf("element #%s not found", id)
		}
		return el, nil
	}

	v := &domView{
		inputs: map[model.FieldKind]js.Value{},
		errors: map[model.FieldKind]js.Value{},
	}
	var err error
	if v.form, err = byID(formID); err != nil {
		return nil, err
	}
	if v.banner, err = byID(bannerID); err != nil {
		return nil, err
	}
	for _, kind := range model.FieldKinds() {
		if v.inputs[kind], err = byID(string(kind)); err != nil {
			return nil, err
		}
		if v.errors[kind], err = byID(string(kind) + "Error"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *domView) FieldUpdated(field model.Field) {
	input, ok := v.inputs[field.Kind]
	if !ok {
		return
	}
	classes := input.Get("classList")
	classes.Call("toggle", string(vanilla.ClassError), field.HasError())
	classes.Call("toggle", string(vanilla.ClassSuccess), field.HasSuccess())
	if field.HasError() {
		input.Call("setAttribute", "aria-invalid", "true")
	} else {
		input.Call("setAttribute", "aria-invalid", "false")
	}

	if input.Get("value").String() != field.Value {
		input.Set("value", field.Value)
	}
	if span, ok := v.errors[field.Kind]; ok {
		span.Set("textContent", field.Reason)
	}
}

func (v *domView) BannerUpdated(visible bool) {
	v.banner.Get("classList").Call("toggle", string(vanilla.ClassShow), visible)
}

func (v *domView) values() model.Values {
	var values model.Values
	for kind, input := range v.inputs {
		values.Set(kind, input.Get("value").String())
	}
	return values
}
