package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshyorko/sakdash/render"
	"github.com/joshyorko/sakdash/session"
)

const panelListWidth = 30

// SessionsView shows the open command panels, the argument form of the
// selected one and its latest result.
type SessionsView struct {
	state     *State
	styles    *Styles
	width     int
	height    int
	selected  int
	form      *paramForm
	editing   bool
	prompting bool
	prompt    textinput.Model
	result    viewport.Model
	chart     bool
}

// NewSessionsView creates a new sessions view
func NewSessionsView(state *State, styles *Styles) *SessionsView {
	prompt := textinput.New()
	prompt.Prompt = ": "
	prompt.Placeholder = "/command/path name=value ..."

	return &SessionsView{
		state:  state,
		styles: styles,
		width:  120,
		height: 30,
		prompt: prompt,
		result: viewport.New(80, 10),
	}
}

// Init implements View
func (v *SessionsView) Init() tea.Cmd {
	return nil
}

// Capturing is true while the user types into the form or the prompt.
func (v *SessionsView) Capturing() bool {
	return v.editing || v.prompting
}

// Update implements View
func (v *SessionsView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case openPanelMsg:
		cmd = v.open(msg)
	case tea.KeyMsg:
		cmd = v.handleKey(msg)
	case runFinishedMsg, spinner.TickMsg:
	default:
		return v, nil
	}
	v.refresh()
	return v, cmd
}

func (v *SessionsView) open(msg openPanelMsg) tea.Cmd {
	id, err := v.state.openInto(msg)
	if id == 0 {
		return ShowErrorToast(err.Error())
	}
	v.selectID(id)
	v.form = nil
	var cmds []tea.Cmd
	if err != nil {
		cmds = append(cmds, ShowWarningToast(err.Error()))
	}
	if msg.run {
		cmds = append(cmds, runPanel(v.state, id))
	}
	return tea.Batch(cmds...)
}

func (v *SessionsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case v.prompting:
		return v.handlePrompt(msg)
	case v.editing:
		return v.handleForm(msg)
	}

	entry := v.current()
	switch {
	case key.Matches(msg, keys.Down):
		v.selected++
	case key.Matches(msg, keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, keys.Top):
		v.selected = 0
	case key.Matches(msg, keys.Bottom):
		v.selected = v.state.Sessions.Len() - 1
	case key.Matches(msg, keys.PageDown):
		v.result.SetYOffset(v.result.YOffset + v.result.Height)
	case key.Matches(msg, keys.PageUp):
		v.result.SetYOffset(v.result.YOffset - v.result.Height)
	case key.Matches(msg, keys.Prompt):
		v.prompting = true
		v.prompt.SetValue("")
		return v.prompt.Focus()
	case key.Matches(msg, keys.Chart):
		v.chart = !v.chart
	case entry == nil:
		return nil
	case key.Matches(msg, keys.Select), key.Matches(msg, keys.Tab):
		v.ensureForm(entry)
		if v.form.Len() > 0 {
			v.editing = true
			return v.form.focusOn(v.form.focus)
		}
	case key.Matches(msg, keys.Run):
		return v.run(entry.ID)
	case key.Matches(msg, keys.Delete):
		v.state.Sessions.RemoveByID(entry.ID)
		v.form = nil
	case key.Matches(msg, keys.Reset):
		v.state.Sessions.ResetByID(entry.ID)
		v.state.Sessions.SeedDefaults(entry.ID)
		v.form = nil
		v.result.GotoTop()
	}
	return nil
}

func (v *SessionsView) handlePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Select):
		line := v.prompt.Value()
		v.stopPrompt()
		return v.quickRun(line)
	case key.Matches(msg, keys.Back):
		v.stopPrompt()
		return nil
	}
	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return cmd
}

func (v *SessionsView) stopPrompt() {
	v.prompting = false
	v.prompt.Blur()
}

// quickRun opens and runs a panel from a line like `/a/b x=1 y="two words"`.
func (v *SessionsView) quickRun(line string) tea.Cmd {
	path, assignments, err := session.ParseCommandLine(line)
	if err != nil {
		return ShowErrorToast(err.Error())
	}
	return openPanel(path, assignments, true)
}

func (v *SessionsView) handleForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		v.leaveForm()
		return nil
	case key.Matches(msg, keys.Select):
		v.leaveForm()
		return v.run(v.form.panel)
	}
	cmd := v.form.update(msg)
	v.form.commit(v.state.Sessions)
	return cmd
}

func (v *SessionsView) leaveForm() {
	v.form.commit(v.state.Sessions)
	v.form.blur()
	v.editing = false
}

func (v *SessionsView) run(id session.ID) tea.Cmd {
	if v.form != nil && v.form.panel == id {
		v.form.commit(v.state.Sessions)
	}
	v.result.GotoTop()
	return runPanel(v.state, id)
}

func (v *SessionsView) current() *session.Entry {
	entries := v.state.Sessions.Entries()
	if len(entries) == 0 {
		v.selected = 0
		return nil
	}
	if v.selected >= len(entries) {
		v.selected = len(entries) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	return entries[v.selected]
}

func (v *SessionsView) selectID(id session.ID) {
	for at, entry := range v.state.Sessions.Entries() {
		if entry.ID == id {
			v.selected = at
			return
		}
	}
}

func (v *SessionsView) ensureForm(entry *session.Entry) {
	if v.form == nil || v.form.panel != entry.ID {
		v.form = newParamForm(entry)
		v.editing = false
	}
}

func (v *SessionsView) detailWidth() int {
	width := v.width - panelListWidth - 6
	if width < 30 {
		width = 30
	}
	return width
}

func (v *SessionsView) contentHeight() int {
	height := v.height - 5
	if height < 8 {
		height = 8
	}
	return height
}

// refresh syncs the form and the result viewport with the selected panel.
func (v *SessionsView) refresh() {
	entry := v.current()
	if entry == nil {
		v.form = nil
		v.editing = false
		v.result.SetContent("")
		return
	}
	v.ensureForm(entry)
	width := v.detailWidth() - 4
	height := v.contentHeight() - v.form.Len() - 6
	if height < 3 {
		height = 3
	}
	v.result.Width = width
	v.result.Height = height
	v.result.SetContent(render.Render(entry.Response, render.Options{
		Width:   width,
		Spinner: v.state.Frame,
		Chart:   v.chart,
		Styles:  v.styles.Results(),
	}))
}

// View implements View
func (v *SessionsView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.PanelTitle.Render("Command Panels"))
	b.WriteString("\n")
	if v.prompting {
		b.WriteString(v.prompt.View())
	} else {
		b.WriteString(v.styles.Subtle.Render(fmt.Sprintf("%d open, press : to run a command by path", v.state.Sessions.Len())))
	}
	b.WriteString("\n\n")

	height := v.contentHeight()
	entries := v.state.Sessions.Entries()
	list := v.styles.Panel.Width(panelListWidth).Height(height).Render(v.buildList(entries))
	detail := v.styles.Panel
	if v.editing {
		detail = v.styles.PanelActive
	}
	right := detail.Width(v.detailWidth()).Height(height).Render(v.buildDetail())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", right))
	return b.String()
}

func (v *SessionsView) buildList(entries []*session.Entry) string {
	if len(entries) == 0 {
		return v.styles.Subtle.Render("No panels open.\n\nPick a command in the\ncatalog (1) and press\nEnter.")
	}
	var b strings.Builder
	for at, entry := range entries {
		title := entry.ID.String()
		if entry.Cmd != nil {
			title += " " + entry.Cmd.Title()
		}
		title = ansi.Truncate(title, panelListWidth-12, "…")
		badge := v.styles.Subtle.Render(render.ModeFor(entry.Response).String())
		if at == v.selected {
			b.WriteString(v.styles.ListItemSelected.Render(title))
		} else {
			b.WriteString(v.styles.ListItem.Render(title))
		}
		b.WriteString(" " + badge + "\n")
	}
	return b.String()
}

func (v *SessionsView) buildDetail() string {
	entry := v.current()
	if entry == nil || v.form == nil {
		return v.styles.Subtle.Render("Nothing selected")
	}
	var b strings.Builder
	title := entry.ID.String()
	if entry.Cmd != nil {
		title += " " + entry.Cmd.Title()
		b.WriteString(v.styles.Highlight.Render(title))
		b.WriteString(" " + v.styles.Subtle.Render(entry.Cmd.Path))
	} else {
		b.WriteString(v.styles.Highlight.Render(title))
	}
	if entry.Runs > 0 {
		b.WriteString(" " + v.styles.Badge.Render(fmt.Sprintf("runs %d", entry.Runs)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.form.render(v.styles, v.editing, v.detailWidth()-4))
	b.WriteString(v.styles.Divider.Render(strings.Repeat("─", v.detailWidth()-4)))
	b.WriteString("\n")
	if entry.Response == nil {
		b.WriteString(v.styles.Subtle.Render("Not run yet, press r to run"))
	} else {
		b.WriteString(v.result.View())
	}
	return b.String()
}

// Name implements View
func (v *SessionsView) Name() string {
	return "Panels"
}

// ShortHelp implements View
func (v *SessionsView) ShortHelp() string {
	return "j/k:nav enter:edit r:run x:reset d:close ::quick-run c:chart"
}
