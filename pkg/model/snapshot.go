package model

// Snapshot is a point-in-time copy of the form handed to renderers.
type Snapshot struct {
	Fields      []Field `json:"fields"`
	BannerShown bool    `json:"bannerShown"`
	Phase       Phase   `json:"phase"`
}

// Field returns the state for kind.
func (s Snapshot) Field(kind FieldKind) (Field, bool) {
	for _, field := range s.Fields {
		if field.Kind == kind {
			return field, true
		}
	}
	return Field{}, false
}

// Values collects the raw field values.
func (s Snapshot) Values() Values {
	var out Values
	for _, field := range s.Fields {
		out.Set(field.Kind, field.Value)
	}
	return out
}

// Errors returns the presented reason per invalid field.
func (s Snapshot) Errors() map[FieldKind]string {
	var out map[FieldKind]string
	for _, field := range s.Fields {
		if !field.HasError() {
			continue
		}
		if out == nil {
			out = make(map[FieldKind]string)
		}
		out[field.Kind] = field.Reason
	}
	return out
}

// EmptySnapshot returns an idle snapshot with every field blank.
func EmptySnapshot() Snapshot {
	fields := make([]Field, 0, 3)
	for _, kind := range FieldKinds() {
		fields = append(fields, Field{Kind: kind, Validity: ValidityUnknown})
	}
	return Snapshot{Fields: fields, Phase: PhaseIdle}
}
