// Package orchestrator owns the live contact form: the field state, the
// presenter that applies verdicts to it, the submit state machine and the
// blur/input revalidation triggers. An Orchestrator is the context object
// adapters construct once and drive through its methods or through the
// (field, trigger) dispatch table. Scheduling of the post-submission reset,
// payload delivery, view updates and logging are injected through options so
// tests can run without a UI or a real clock.
package orchestrator
