package orchestrator

import "github.com/goliatone/go-contactform/pkg/model"

// Presenter applies verdicts to field markers. It is the only code that
// changes a field's validity or reason text, so a field can never carry both
// the error and the success marker. Every change is reported through emit.
type Presenter struct {
	fields map[model.FieldKind]*model.Field
	emit   func(model.Field)
}

func newPresenter(emit func(model.Field)) *Presenter {
	fields := make(map[model.FieldKind]*model.Field, 3)
	for _, kind := range model.FieldKinds() {
		fields[kind] = &model.Field{Kind: kind, Validity: model.ValidityUnknown}
	}
	if emit == nil {
		emit = func(model.Field) {}
	}
	return &Presenter{fields: fields, emit: emit}
}

// PresentError swaps the success marker for the error marker and shows
// message.
func (p *Presenter) PresentError(kind model.FieldKind, message string) {
	field, ok := p.fields[kind]
	if !ok {
		return
	}
	field.Validity = model.ValidityInvalid
	field.Reason = message
	p.emit(*field)
}

// PresentSuccess swaps the error marker for the success marker and clears the
// reason text.
func (p *Presenter) PresentSuccess(kind model.FieldKind) {
	field, ok := p.fields[kind]
	if !ok {
		return
	}
	field.Validity = model.ValidityValid
	field.Reason = ""
	p.emit(*field)
}

// Present applies verdict to kind.
func (p *Presenter) Present(kind model.FieldKind, verdict model.Verdict) {
	if verdict.Valid {
		p.PresentSuccess(kind)
		return
	}
	p.PresentError(kind, verdict.Reason)
}

// ClearSuccess drops the success marker. Error markers are left alone.
func (p *Presenter) ClearSuccess(kind model.FieldKind) {
	field, ok := p.fields[kind]
	if !ok || field.Validity != model.ValidityValid {
		return
	}
	field.Validity = model.ValidityUnknown
	field.Reason = ""
	p.emit(*field)
}

// Field returns a copy of the state for kind.
func (p *Presenter) Field(kind model.FieldKind) (model.Field, bool) {
	field, ok := p.fields[kind]
	if !ok {
		return model.Field{}, false
	}
	return *field, true
}

func (p *Presenter) setValue(kind model.FieldKind, value string, notify bool) {
	field, ok := p.fields[kind]
	if !ok {
		return
	}
	field.Value = value
	if notify {
		p.emit(*field)
	}
}

func (p *Presenter) values() model.Values {
	var out model.Values
	for kind, field := range p.fields {
		out.Set(kind, field.Value)
	}
	return out
}

func (p *Presenter) snapshotFields() []model.Field {
	out := make([]model.Field, 0, len(p.fields))
	for _, kind := range model.FieldKinds() {
		out = append(out, *p.fields[kind])
	}
	return out
}
