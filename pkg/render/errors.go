package render

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// ErrorMapping splits error messages into field-level and form-level groups.
type ErrorMapping struct {
	Fields map[model.FieldKind][]string
	Form   []string
}

// For returns the messages attached to kind.
func (m ErrorMapping) For(kind model.FieldKind) []string {
	return m.Fields[kind]
}

// Empty reports whether the mapping holds no messages at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves external error paths (JSON pointers, dotted paths,
// request wrappers such as "body") onto form fields. Paths that name no field
// are kept as form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		kind, ok := fieldForPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[model.FieldKind][]string)
		}
		mapping.Fields[kind] = normalizeMessages(append(mapping.Fields[kind], normalized...))
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// SnapshotErrors combines the reasons presented on the snapshot with any
// external errors from options. Presented reasons come first.
func SnapshotErrors(snapshot model.Snapshot, options RenderOptions) ErrorMapping {
	external := MapErrorPayload(options.Errors)

	mapping := ErrorMapping{Form: external.Form}
	for _, kind := range model.FieldKinds() {
		var messages []string
		if field, ok := snapshot.Field(kind); ok && field.HasError() {
			messages = append(messages, field.Reason)
		}
		messages = normalizeMessages(append(messages, external.For(kind)...))
		if len(messages) == 0 {
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[model.FieldKind][]string)
		}
		mapping.Fields[kind] = messages
	}
	return mapping
}

func fieldForPath(raw string) (model.FieldKind, bool) {
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	kind, err := model.ParseFieldKind(segments[0])
	if err != nil {
		return "", false
	}
	return kind, true
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}
