// Package openapi publishes the contact payload as an OpenAPI 3 document and
// checks payloads against it with kin-openapi. The document uses ECMA-262
// pattern syntax so client tooling can consume it directly.
package openapi
