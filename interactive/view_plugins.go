package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshyorko/sakdash/settings"
)

// PluginsView lists the plugins the backend has loaded
type PluginsView struct {
	state    *State
	styles   *Styles
	width    int
	height   int
	selected int
	loading  bool
}

// NewPluginsView creates a new plugins view
func NewPluginsView(state *State, styles *Styles) *PluginsView {
	return &PluginsView{
		state:   state,
		styles:  styles,
		width:   120,
		height:  30,
		loading: settings.Global.PluginsEnabled(),
	}
}

// Init implements View
func (v *PluginsView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *PluginsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case pluginsLoadedMsg:
		v.loading = false
		if v.selected >= len(v.state.Plugins) {
			v.selected = 0
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Down):
			if v.selected < len(v.state.Plugins)-1 {
				v.selected++
			}
		case key.Matches(msg, keys.Up):
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, keys.Refresh):
			if cmd := loadPlugins(v.state); cmd != nil {
				v.loading = true
				return v, cmd
			}
		}
	}
	return v, nil
}

// View implements View
func (v *PluginsView) View() string {
	vs := NewViewStyles(v.styles.theme)
	box := NewViewBox(v.width, v.styles.theme)

	var b strings.Builder
	b.WriteString(RenderHeader(vs, "Plugins", fmt.Sprintf("(%d loaded)", len(v.state.Plugins)), box.ContentWidth))

	switch {
	case !settings.Global.PluginsEnabled():
		b.WriteString(vs.Subtext.Render("Plugin listing is turned off (plugins: false)"))
		b.WriteString("\n")
	case v.loading:
		b.WriteString(vs.Subtext.Render("Loading plugins..."))
		b.WriteString("\n")
	case v.state.PluginsErr != nil:
		b.WriteString(vs.Error.Render(ansi.Wordwrap(v.state.PluginsErr.Error(), box.ContentWidth, " /")))
		b.WriteString("\n")
	case len(v.state.Plugins) == 0:
		b.WriteString(vs.Subtext.Render("The backend reported no plugins"))
		b.WriteString("\n")
	}

	for at, plugin := range v.state.Plugins {
		name := ansi.Truncate(plugin.Name, 24, "…")
		if at == v.selected {
			b.WriteString(vs.Selected.Render("> " + name))
		} else {
			b.WriteString("  " + vs.Text.Render(name))
		}
		b.WriteString("  ")
		b.WriteString(vs.Subtext.Render(ansi.Truncate(plugin.Path, box.ContentWidth-30, "…")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderFooter(vs, []KeyHint{{"j/k", "nav"}, {"R", "refresh"}}, box.ContentWidth))
	return box.Render(b.String(), v.width, v.height)
}

// Name implements View
func (v *PluginsView) Name() string {
	return "Plugins"
}

// ShortHelp implements View
func (v *PluginsView) ShortHelp() string {
	return "j/k:nav R:refresh"
}
