package validation

import "github.com/goliatone/go-contactform/pkg/model"

// Issue is a failing field verdict flattened for logs and summaries.
type Issue struct {
	Field   model.FieldKind `json:"field" yaml:"field"`
	Message string          `json:"message" yaml:"message"`
}

// FieldResult pairs a field with the verdict it received.
type FieldResult struct {
	Field   model.FieldKind `json:"field" yaml:"field"`
	Verdict model.Verdict   `json:"verdict" yaml:"verdict"`
}

// Outcome is the result of deciding a submission.
type Outcome struct {
	Accepted bool           `json:"accepted" yaml:"accepted"`
	Results  []FieldResult  `json:"results" yaml:"results"`
	Payload  *model.Payload `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Verdict returns the verdict recorded for kind.
func (o Outcome) Verdict(kind model.FieldKind) (model.Verdict, bool) {
	for _, result := range o.Results {
		if result.Field == kind {
			return result.Verdict, true
		}
	}
	return model.Verdict{}, false
}

// Issues lists the failing fields in submit order.
func (o Outcome) Issues() []Issue {
	var issues []Issue
	for _, result := range o.Results {
		if result.Verdict.Valid {
			continue
		}
		issues = append(issues, Issue{Field: result.Field, Message: result.Verdict.Reason})
	}
	return issues
}

// DecideSubmission runs every validator in submit order without
// short-circuiting. The submission is accepted only when all of them pass, in
// which case the trimmed payload is attached.
func DecideSubmission(values model.Values) Outcome {
	outcome := Outcome{Accepted: true}
	for _, kind := range model.FieldKinds() {
		verdict := Validate(kind, values.Get(kind))
		outcome.Results = append(outcome.Results, FieldResult{Field: kind, Verdict: verdict})
		if !verdict.Valid {
			outcome.Accepted = false
		}
	}
	if outcome.Accepted {
		payload := values.Trimmed()
		outcome.Payload = &payload
	}
	return outcome
}
