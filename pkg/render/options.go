package render

import (
	"sort"
	"strings"
)

// RenderOptions carry per-request presentation data. Field state always comes
// from the snapshot; options only add chrome around it.
type RenderOptions struct {
	// Title heads the form. Renderers fall back to their own default.
	Title string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
	// BannerText overrides the success banner content. Renderers that emit
	// markup sanitise it before output.
	BannerText string
	// Action and Method populate the form element. Empty values keep the form
	// client-side only.
	Action string
	Method string
	// Hidden adds hidden inputs, e.g. a CSRF token.
	Hidden map[string]string
	// Errors surfaces externally produced messages keyed by field path
	// ("email", "/body/email"). Unknown paths become form-level errors.
	Errors map[string][]string
}

// HiddenField is a name/value pair emitted as a hidden input.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CSRFToken returns a hidden map entry for a CSRF token under name.
func CSRFToken(name, token string) map[string]string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return map[string]string{name: token}
}

// SortedHiddenFields orders hidden inputs by name for deterministic output.
// Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		result = append(result, HiddenField{Name: key, Value: value})
	}
	if len(result) == 0 {
		return nil
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
