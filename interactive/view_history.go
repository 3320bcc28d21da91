package interactive

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/joshyorko/sakdash/session"
)

const historyVisible = 12

// HistoryView displays finished calls
type HistoryView struct {
	state    *State
	styles   *Styles
	width    int
	height   int
	entries  []RunHistoryEntry
	selected int
}

// NewHistoryView creates a new history view
func NewHistoryView(state *State, styles *Styles) *HistoryView {
	return &HistoryView{
		state:  state,
		styles: styles,
		width:  120,
		height: 30,
	}
}

// Init implements View
func (v *HistoryView) Init() tea.Cmd {
	return nil
}

func (v *HistoryView) reload() {
	v.entries = v.state.History.GetLatest(maxHistoryEntries)
	if v.selected >= len(v.entries) {
		v.selected = len(v.entries) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Update implements View
func (v *HistoryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case runFinishedMsg:
		v.reload()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Down):
			if v.selected < len(v.entries)-1 {
				v.selected++
			}
		case key.Matches(msg, keys.Up):
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, keys.Top):
			v.selected = 0
		case key.Matches(msg, keys.Bottom):
			if len(v.entries) > 0 {
				v.selected = len(v.entries) - 1
			}
		case key.Matches(msg, keys.Refresh):
			v.reload()
		case key.Matches(msg, keys.Run), key.Matches(msg, keys.Select):
			if v.selected < len(v.entries) {
				return v, rerun(v.entries[v.selected])
			}
		case key.Matches(msg, keys.Clear):
			v.state.History.Clear()
			v.reload()
			return v, ShowInfoToast("History cleared")
		}
	}
	return v, nil
}

// rerun opens a fresh panel with the params of a past call.
func rerun(entry RunHistoryEntry) tea.Cmd {
	assignments := make([]session.Assignment, 0, len(entry.Params))
	for name, values := range entry.Params {
		for _, value := range values {
			assignments = append(assignments, session.Assignment{Name: name, Value: value})
		}
	}
	return openPanel(entry.Path, assignments, true)
}

// View implements View
func (v *HistoryView) View() string {
	vs := NewViewStyles(v.styles.theme)
	box := NewViewBox(v.width, v.styles.theme)

	var b strings.Builder
	b.WriteString(RenderHeader(vs, "Call History", fmt.Sprintf("(%d calls)", len(v.entries)), box.ContentWidth))

	if len(v.entries) == 0 {
		b.WriteString(vs.Subtext.Render("No calls yet"))
		b.WriteString("\n\n")
		b.WriteString(vs.Label.Render("Tip "))
		b.WriteString(vs.Text.Render("Run a panel to start tracking history"))
		b.WriteString("\n")
	}

	start := 0
	if v.selected >= historyVisible {
		start = v.selected - historyVisible + 1
	}
	for at := start; at < len(v.entries) && at < start+historyVisible; at++ {
		entry := v.entries[at]
		selected := at == v.selected

		icon, style := "✓", vs.Success
		switch entry.Status {
		case RunFailed:
			icon, style = "✗", vs.Error
		case RunDropped:
			icon, style = "~", vs.Warning
		}

		if selected {
			b.WriteString(vs.Selected.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(style.Render(icon) + " ")
		path := ansi.Truncate(entry.Path, 36, "…")
		if selected {
			b.WriteString(vs.Selected.Render(path))
		} else {
			b.WriteString(vs.Text.Render(path))
		}
		b.WriteString("  " + vs.Subtext.Render(entry.Panel.String()))
		b.WriteString("  " + vs.Subtext.Render(humanize.Time(entry.StartTime)))
		b.WriteString("  " + vs.Info.Render(entry.Duration.Round(time.Millisecond).String()))
		b.WriteString("  " + vs.Accent.Render(entry.Result))
		b.WriteString("\n")

		if selected && len(entry.Params) > 0 {
			b.WriteString(vs.Label.Render("    Params "))
			b.WriteString(vs.Subtext.Render(ansi.Truncate(entry.Params.Encode(), box.ContentWidth-18, "…")))
			b.WriteString("\n")
		}
	}
	if remaining := len(v.entries) - start - historyVisible; remaining > 0 {
		b.WriteString(vs.Subtext.Render(fmt.Sprintf("  ... +%d more", remaining)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := []KeyHint{
		{"j/k", "nav"},
		{"r/Enter", "re-run"},
		{"C", "clear"},
		{"R", "refresh"},
	}
	b.WriteString(RenderFooter(vs, hints, box.ContentWidth))

	return box.Render(b.String(), v.width, v.height)
}

// Name implements View
func (v *HistoryView) Name() string {
	return "History"
}

// ShortHelp implements View
func (v *HistoryView) ShortHelp() string {
	return "j/k:nav r:re-run C:clear R:refresh"
}
