package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is one labelled text input.
type formField struct {
	label string
	input textinput.Model
}

// form is a vertical list of inputs with tab focus cycling, shared by the
// login, register and recovery pages.
type form struct {
	fields []formField
	focus  int
}

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 48
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

// missing returns the label of the first empty field, or "".
func (f *form) missing() string {
	for i := range f.fields {
		if f.value(i) == "" {
			return f.fields[i].label
		}
	}
	return ""
}

func (f *form) focusOn(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.focusOn(0)
}

// update handles focus keys and forwards everything else to the focused
// input. It reports whether msg was consumed as a focus change.
func (f *form) update(msg tea.Msg) (bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			f.focusOn(f.focus + 1)
			return true, nil
		case key.Matches(keyMsg, keys.backtab):
			f.focusOn(f.focus - 1)
			return true, nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, cmd
}

func (f *form) view(b *strings.Builder) {
	width := 0
	for _, field := range f.fields {
		if len(field.label) > width {
			width = len(field.label)
		}
	}
	for _, field := range f.fields {
		b.WriteString(field.label)
		b.WriteString(strings.Repeat(" ", width-len(field.label)))
		b.WriteString(" │ [")
		b.WriteString(field.input.View())
		b.WriteString("]\n")
	}
}
