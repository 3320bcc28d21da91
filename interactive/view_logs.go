package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// LogsView displays activity logs captured while the dashboard runs
type LogsView struct {
	state  *State
	styles *Styles
	width  int
	height int
	scroll int // lines up from the newest entry
}

// NewLogsView creates a new logs view
func NewLogsView(state *State, styles *Styles) *LogsView {
	return &LogsView{
		state:  state,
		styles: styles,
		width:  120,
		height: 30,
	}
}

// Init implements View
func (v *LogsView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *LogsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			v.scroll++
		case key.Matches(msg, keys.Down):
			if v.scroll > 0 {
				v.scroll--
			}
		case key.Matches(msg, keys.Top):
			v.scroll = v.state.Logs.Len()
		case key.Matches(msg, keys.Bottom):
			v.scroll = 0
		case key.Matches(msg, keys.Clear):
			v.state.Logs.Clear()
			v.scroll = 0
		}
	}
	return v, nil
}

func (v *LogsView) panelSize() (int, int) {
	height := v.height - 6
	if height < 10 {
		height = 10
	}
	width := v.width - 4
	if width < 40 {
		width = 40
	}
	return width, height
}

// View implements View
func (v *LogsView) View() string {
	width, height := v.panelSize()

	var content strings.Builder
	content.WriteString(FormatLogStats(v.state.Logs, v.styles))
	content.WriteString("\n")
	content.WriteString(v.styles.Divider.Render(strings.Repeat("─", width-4)))
	content.WriteString("\n")
	content.WriteString(v.buildLogContent(height-4, width-4))

	var b strings.Builder
	b.WriteString(v.styles.PanelTitle.Render("Activity Logs"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Panel.Width(width).Height(height).Render(content.String()))
	return b.String()
}

func (v *LogsView) buildLogContent(lines, width int) string {
	total := v.state.Logs.Len()
	if total == 0 {
		return v.styles.Subtle.Render("\n    [i] No activity logs yet\n\n    Backend calls and catalog loads will appear here\n")
	}
	if v.scroll > total-1 {
		v.scroll = total - 1
	}
	entries := v.state.Logs.Recent(lines + v.scroll)
	end := len(entries) - v.scroll
	if end < 0 {
		end = 0
	}
	start := end - lines
	if start < 0 {
		start = 0
	}
	first := total - len(entries) + start + 1
	numbers := len(fmt.Sprintf("%d", total))
	if numbers < 3 {
		numbers = 3
	}

	rows := make([]string, 0, end-start)
	for at := start; at < end; at++ {
		number := v.styles.Subtle.Render(fmt.Sprintf("%*d", numbers, first+at-start))
		line := number + " " + v.styles.Divider.Render("│") + " " + FormatLogEntry(entries[at], v.styles, true)
		rows = append(rows, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(rows, "\n")
}

// Name implements View
func (v *LogsView) Name() string {
	return "Logs"
}

// ShortHelp implements View
func (v *LogsView) ShortHelp() string {
	return "j/k:scroll g/G:top/bot C:clear"
}
