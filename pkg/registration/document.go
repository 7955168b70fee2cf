package registration

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationID names the registration operation in the embedded document.
const OperationID = "registerUser"

//go:embed openapi.yaml
var documentYAML []byte

// DocumentSource returns a copy of the embedded OpenAPI document (YAML).
func DocumentSource() []byte {
	return append([]byte(nil), documentYAML...)
}

// Document loads and validates the embedded OpenAPI document describing the
// registration form.
func Document(ctx context.Context) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("registration: context is required")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(documentYAML)
	if err != nil {
		return nil, fmt.Errorf("registration: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("registration: validate document: %w", err)
	}
	return doc, nil
}

// RequestSchema returns the resolved request body schema of the registration
// operation. The document is loaded once; the schema is shared and must be
// treated as read-only.
func RequestSchema(ctx context.Context) (*openapi3.Schema, error) {
	if ctx == nil {
		return nil, errors.New("registration: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return requestSchema()
}

var requestSchema = sync.OnceValues(func() (*openapi3.Schema, error) {
	doc, err := Document(context.Background())
	if err != nil {
		return nil, err
	}
	item := doc.Paths.Find("/register")
	if item == nil || item.Post == nil {
		return nil, errors.New("registration: POST /register not declared")
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, errors.New("registration: request body not declared")
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("registration: application/json schema not declared")
	}
	return media.Schema.Value, nil
})
