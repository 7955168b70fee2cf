package model

const defaultSubmitLabel = "Submit"

// Options configures the Builder. The public adapter in pkg/model fills these
// in before calling New.
type Options struct {
	Labeler     func(string) string
	SubmitLabel string
}

func defaultOptions() Options {
	return Options{
		Labeler:     DefaultLabeler,
		SubmitLabel: defaultSubmitLabel,
	}
}
