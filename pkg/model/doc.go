// Package model defines the typed contact form model shared by validators, the
// orchestrator and renderers. Field identifiers are the stable logical names
// `name`, `email` and `message`; every field carries its raw value, the
// validity produced by its last validator run and the reason text presented
// next to it. A Snapshot is the read-only view renderers consume: fields in
// submit order, the success banner flag and the orchestrator phase. Payload is
// the trimmed record emitted when a submission is accepted.
package model
