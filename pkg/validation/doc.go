// Package validation holds the pure contact form validators. Each validator
// trims its input and evaluates ordered rules where the first failing rule
// supplies the reason. Nothing here touches presentation; callers hand the
// returned Verdict to a presenter.
package validation
