// Package model defines the flat form model consumed by renderers. Builders
// live in internal/model and read the request body schema of an OpenAPI
// operation; string properties become fields, the `format` keyword selects the
// input kind (email, password, text) and `x-regform-placeholder`,
// `x-regform-autocomplete` and `x-regform-help-text` extensions fill in the
// presentation attributes. Controllers later overlay values, errors and field
// status through form.Control.Snapshot.
package model
