package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation is the slice of an OpenAPI operation the form builder needs.
type Operation struct {
	ID            string
	Method        string
	Path          string
	Summary       string
	Description   string
	Extensions    map[string]any
	RequestSchema *openapi3.Schema
}

// Operations indexes every operation of doc by operationId. Operations without
// an id are keyed as "<method>:<path>".
func Operations(ctx context.Context, doc *openapi3.T) (map[string]Operation, error) {
	if ctx == nil {
		return nil, errors.New("openapi parser: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("openapi parser: document is nil")
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			collectOperation(operations, method, path, operation)
		}
	}

	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// Lookup returns a single operation or an error naming the known ids.
func Lookup(ctx context.Context, doc *openapi3.T, operationID string) (Operation, error) {
	operations, err := Operations(ctx, doc)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		known := make([]string, 0, len(operations))
		for id := range operations {
			known = append(known, id)
		}
		sort.Strings(known)
		return Operation{}, fmt.Errorf("openapi parser: operation %q not found (known: %s)", operationID, strings.Join(known, ", "))
	}
	return op, nil
}

func collectOperation(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	method = strings.ToUpper(method)
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	target[opID] = Operation{
		ID:            opID,
		Method:        method,
		Path:          path,
		Summary:       operation.Summary,
		Description:   operation.Description,
		Extensions:    operation.Extensions,
		RequestSchema: requestSchema(operation.RequestBody),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
