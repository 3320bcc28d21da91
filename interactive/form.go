package interactive

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/session"
)

var boolOptions = []string{"false", "true"}

// paramField is one argument input. Fields with options cycle through
// them, the others are free text. Unsupported argument types are inert.
// An option field has no choice (-1) until one is picked or seeded.
type paramField struct {
	arg     catalog.ArgSpec
	input   textinput.Model
	options []string
	choice  int
	inert   bool
}

func newParamField(arg catalog.ArgSpec, values []string) paramField {
	field := paramField{arg: arg}
	switch {
	case arg.Kind() == catalog.KindUnsupported:
		field.inert = true
	case arg.Kind() == catalog.KindBool:
		field.options = boolOptions
	case arg.HasChoices():
		field.options = arg.Choices
	}
	if len(field.options) > 0 {
		field.choice = -1
		if len(values) > 0 {
			for at, option := range field.options {
				if option == values[0] {
					field.choice = at
				}
			}
		}
		return field
	}
	field.input = textinput.New()
	field.input.Prompt = ""
	field.input.Placeholder = arg.Type
	field.input.SetValue(session.FormText(arg, values))
	field.input.CursorEnd()
	return field
}

func (it *paramField) values() []string {
	switch {
	case it.inert, it.choice < 0:
		return nil
	case len(it.options) > 0:
		return []string{it.options[it.choice]}
	default:
		return session.FormValues(it.arg, it.input.Value())
	}
}

func (it *paramField) cycle(delta int) {
	if len(it.options) == 0 {
		return
	}
	if it.choice < 0 && delta < 0 {
		it.choice = 0
	}
	it.choice = (it.choice + delta + len(it.options)) % len(it.options)
}

// paramForm edits the params of one panel.
type paramForm struct {
	panel  session.ID
	fields []paramField
	focus  int
}

func newParamForm(entry *session.Entry) *paramForm {
	form := &paramForm{panel: entry.ID}
	if entry.Cmd == nil {
		return form
	}
	for _, arg := range entry.Cmd.Args {
		form.fields = append(form.fields, newParamField(arg, entry.Params[arg.Name]))
	}
	return form
}

func (it *paramForm) Len() int {
	return len(it.fields)
}

// focusOn moves the focus, blurring the previous text input.
func (it *paramForm) focusOn(at int) tea.Cmd {
	if len(it.fields) == 0 {
		return nil
	}
	at = (at + len(it.fields)) % len(it.fields)
	if current := &it.fields[it.focus]; current.input.Focused() {
		current.input.Blur()
	}
	it.focus = at
	if field := &it.fields[at]; !field.inert && len(field.options) == 0 {
		return field.input.Focus()
	}
	return nil
}

func (it *paramForm) blur() {
	for at := range it.fields {
		it.fields[at].input.Blur()
	}
}

// update handles one key while the form has focus.
func (it *paramForm) update(msg tea.KeyMsg) tea.Cmd {
	if len(it.fields) == 0 {
		return nil
	}
	switch msg.String() {
	case "tab", "down":
		return it.focusOn(it.focus + 1)
	case "shift+tab", "up":
		return it.focusOn(it.focus - 1)
	}
	field := &it.fields[it.focus]
	switch {
	case field.inert:
		return nil
	case len(field.options) > 0:
		switch {
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Right):
			field.cycle(1)
		case key.Matches(msg, keys.Left):
			field.cycle(-1)
		}
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

// commit writes every field into the panel params.
func (it *paramForm) commit(list *session.List) {
	for at := range it.fields {
		field := &it.fields[at]
		if field.inert {
			continue
		}
		list.SetParam(it.panel, field.arg.Name, field.values()...)
	}
}

func (it *paramForm) render(styles *Styles, editing bool, width int) string {
	if len(it.fields) == 0 {
		return styles.Subtle.Render("No arguments")
	}
	var b strings.Builder
	for at := range it.fields {
		field := &it.fields[at]
		focused := editing && at == it.focus
		label := styles.FieldLabel.Render(field.arg.Name)
		if focused {
			label = styles.FieldFocused.Render(field.arg.Name)
		}
		b.WriteString(label)
		b.WriteString(" ")
		switch {
		case field.inert:
			b.WriteString(styles.FieldInert.Render("unsupported type " + field.arg.Type))
		case len(field.options) > 0:
			b.WriteString(renderOptions(styles, field, focused))
		default:
			field.input.Width = width - 20
			b.WriteString(field.input.View())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderOptions(styles *Styles, field *paramField, focused bool) string {
	parts := make([]string, 0, len(field.options))
	for at, option := range field.options {
		switch {
		case at == field.choice && focused:
			parts = append(parts, styles.ListItemSelected.Render(option))
		case at == field.choice:
			parts = append(parts, styles.Highlight.Render(option))
		default:
			parts = append(parts, styles.Subtle.Render(option))
		}
	}
	return strings.Join(parts, " ")
}
