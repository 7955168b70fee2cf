package model

import (
	"github.com/goliatone/go-regform/internal/model"
	"github.com/goliatone/go-regform/internal/openapi/parser"
)

// Builder converts an OpenAPI operation into a form model.
type Builder interface {
	Build(op parser.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler     func(string) string
	submitLabel string
}

// WithLabeler overrides the label used when a property has no title.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithSubmitLabel sets the button label used when the operation does not
// declare x-regform-submit-label.
func WithSubmitLabel(label string) BuilderOption {
	return func(opts *builderOptions) {
		opts.submitLabel = label
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(model.Options{
		Labeler:     cfg.labeler,
		SubmitLabel: cfg.submitLabel,
	})
}
