package model

// Decorator enriches a form model after it has been built from the document,
// for example with UI schema copy overrides.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Chain applies decorators in order and stops at the first error. Nil entries
// are skipped.
func Chain(decorators ...Decorator) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for _, decorator := range decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(form); err != nil {
				return err
			}
		}
		return nil
	})
}
