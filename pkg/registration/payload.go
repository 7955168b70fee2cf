package registration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Shape issue codes reported by CheckShape.
const (
	CodeType    = "type"
	CodeUnknown = "unknown_field"
)

// CheckShape validates a decoded JSON payload against the request schema of
// the embedded document and reports structural problems only: wrong types and
// unexpected keys. Content rules (required, length, email, match) are left to
// the Go schema so the messages stay identical across surfaces. Issue paths are
// JSON pointers into the payload.
func CheckShape(ctx context.Context, payload any) ([]schema.Issue, error) {
	requestSchema, err := RequestSchema(ctx)
	if err != nil {
		return nil, err
	}
	verr := requestSchema.VisitJSON(payload, openapi3.MultiErrors())
	if verr == nil {
		return nil, nil
	}

	var issues []schema.Issue
	for _, serr := range flattenSchemaErrors(verr) {
		switch serr.SchemaField {
		case "type":
			issues = append(issues, schema.Issue{
				Path:    pointer(serr.JSONPointer()),
				Code:    CodeType,
				Message: serr.Reason,
			})
		case "additionalProperties", "properties":
			issues = append(issues, schema.Issue{
				Path:    pointer(serr.JSONPointer()),
				Code:    CodeUnknown,
				Message: serr.Reason,
			})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues, nil
}

// Decode converts a shape-checked payload into a FormRecord. Missing keys stay
// empty so the schema reports them with the usual messages.
func Decode(payload map[string]any) (FormRecord, error) {
	var record FormRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &record,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return FormRecord{}, fmt.Errorf("registration: decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return FormRecord{}, fmt.Errorf("registration: decode payload: %w", err)
	}
	return record, nil
}

func flattenSchemaErrors(err error) []*openapi3.SchemaError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []*openapi3.SchemaError
		for _, inner := range multi {
			out = append(out, flattenSchemaErrors(inner)...)
		}
		return out
	}
	var serr *openapi3.SchemaError
	if errors.As(err, &serr) {
		return []*openapi3.SchemaError{serr}
	}
	return nil
}

func pointer(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		escaped = append(escaped, segment)
	}
	return "/" + strings.Join(escaped, "/")
}
