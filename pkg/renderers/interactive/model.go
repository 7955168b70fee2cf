package interactive

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/uischema"
)

// SubmittedMsg is emitted after a submit the controller accepted.
type SubmittedMsg struct{}

// CancelledMsg is emitted when the user cancels the form.
type CancelledMsg struct{}

type fieldState struct {
	field model.Field
	input textinput.Model
}

// Model is the bubbletea model of the form. Field values, errors and states
// live in the form control; the model only owns focus and the text inputs.
type Model struct {
	ctx     context.Context
	form    model.FormModel
	control form.Control
	fields  []fieldState
	// focused indexes fields; len(fields) is the submit button.
	focused int

	formError string
	submitted bool
	cancelled bool

	keys   keyMap
	styles Styles
}

var _ tea.Model = Model{}

// NewModel builds a model over the controlled fields of fm. ctx is passed to
// the control on submit.
func NewModel(ctx context.Context, fm model.FormModel, control form.Control, styles Styles) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	controlled := make(map[string]bool)
	for _, path := range control.Paths() {
		controlled[path] = true
	}

	m := Model{
		ctx:     ctx,
		form:    fm,
		control: control,
		keys:    defaultKeyMap(),
		styles:  styles,
	}
	for _, field := range fm.Fields {
		if !controlled[field.Name] {
			continue
		}
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = field.Placeholder
		if field.Kind == model.InputPassword {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		input.SetValue(control.Value(field.Name))
		m.fields = append(m.fields, fieldState{field: field, input: input})
	}
	m.focus(0)
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Submitted reports whether the form was submitted successfully.
func (m Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user cancelled the form.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Focused returns the name of the focused field, or "" when the submit
// button has focus.
func (m Model) Focused() string {
	if m.focused < len(m.fields) {
		return m.fields[m.focused].field.Name
	}
	return ""
}

// Update handles key presses and forwards everything else to the focused
// input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg, CancelledMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelled = true
		return m, func() tea.Msg { return CancelledMsg{} }

	case key.Matches(msg, m.keys.Next):
		m = m.move(1)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Prev):
		m = m.move(-1)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Submit):
		if m.focused < len(m.fields)-1 {
			m = m.move(1)
			return m, textinput.Blink
		}
		return m.submit()
	}
	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focused >= len(m.fields) {
		return m, nil
	}
	fs := &m.fields[m.focused]
	before := fs.input.Value()

	var cmd tea.Cmd
	fs.input, cmd = fs.input.Update(msg)

	if value := fs.input.Value(); value != before {
		if err := m.control.Change(fs.field.Name, value); err != nil {
			m.formError = err.Error()
		}
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m = m.blurFocused()
	m.formError = ""

	ok, err := m.control.SubmitForm(m.ctx)
	if err != nil {
		m.formError = err.Error()
		return m, nil
	}
	if !ok {
		for i, fs := range m.fields {
			if len(m.control.FieldErrors(fs.field.Name)) > 0 {
				m.focus(i)
				break
			}
		}
		return m, textinput.Blink
	}

	m.submitted = true
	return m, func() tea.Msg { return SubmittedMsg{} }
}

// move blurs the focused field and focuses the next stop, wrapping around
// the submit button.
func (m Model) move(delta int) Model {
	m = m.blurFocused()
	stops := len(m.fields) + 1
	m.focus(((m.focused+delta)%stops + stops) % stops)
	return m
}

func (m Model) blurFocused() Model {
	if m.focused >= len(m.fields) {
		return m
	}
	fs := &m.fields[m.focused]
	fs.input.Blur()
	if err := m.control.Blur(fs.field.Name); err != nil {
		m.formError = err.Error()
	}
	return m
}

func (m *Model) focus(index int) {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	m.focused = index
	if index < len(m.fields) {
		m.fields[index].input.Focus()
	}
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder
	if m.form.Title != "" {
		b.WriteString(m.styles.Title.Render(m.form.Title))
		b.WriteString("\n")
	}

	for i, fs := range m.fields {
		b.WriteString(m.styles.Label.Render(fs.field.Label))
		b.WriteString("\n")

		style := m.styles.Input
		switch {
		case m.control.State(fs.field.Name) == model.StatusInvalid:
			style = m.styles.InputError
		case i == m.focused:
			style = m.styles.InputFocused
		}
		b.WriteString(style.Render(fs.input.View()))
		b.WriteString("\n")

		if errs := m.control.FieldErrors(fs.field.Name); len(errs) > 0 {
			b.WriteString(m.styles.Error.Render(errs[0]))
			b.WriteString("\n")
		} else if help := uischema.PlainText(fs.field.HelpText); help != "" {
			b.WriteString(m.styles.Help.Render(help))
			b.WriteString("\n")
		}
	}

	label := m.form.SubmitLabel
	if label == "" {
		label = "submit"
	}
	button := m.styles.Button
	if m.focused >= len(m.fields) {
		button = m.styles.ButtonActive
	}
	b.WriteString("\n")
	b.WriteString(button.Render(label))
	b.WriteString("\n")

	if m.formError != "" {
		b.WriteString(m.styles.Error.Render(m.formError))
		b.WriteString("\n")
	}
	if m.submitted && m.form.SuccessMessage != "" {
		b.WriteString(m.styles.Success.Render(m.form.SuccessMessage))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.keys.help()))
	return b.String()
}
